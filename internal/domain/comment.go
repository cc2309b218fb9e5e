package domain

import "time"

// Comment is a user's remark on a resource. Comments never outlive their
// resource: the moderation service cascades them away on decline/delete.
type Comment struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id"`
	UserID     int64     `gorm:"column:user_id;index" json:"user_id"`
	ResourceID int64     `gorm:"column:resource_id;index" json:"resource_id"`
	Body       string    `gorm:"column:body" json:"body"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Comment) TableName() string { return "comments" }
