package domain

import "time"

// Faculty is a topical grouping that resources belong to.
type Faculty struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Faculty) TableName() string { return "faculties" }
