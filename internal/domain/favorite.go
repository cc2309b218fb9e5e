package domain

import "time"

// Favorite is a user's bookmark of a resource. One bookmark per
// user/resource pair; removed automatically when the resource goes away.
type Favorite struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id"`
	UserID     int64     `gorm:"column:user_id;uniqueIndex:idx_user_resource" json:"user_id"`
	ResourceID int64     `gorm:"column:resource_id;uniqueIndex:idx_user_resource" json:"resource_id"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Favorite) TableName() string { return "favorites" }
