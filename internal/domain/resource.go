package domain

import "time"

// Resource is a submitted document under moderation. It is invisible to
// general readers until an admin authorizes it. DocumentPath and CoverPath
// reference files in the blob store and must stay valid for as long as the
// row exists.
//
// Title carries a unique index so a duplicate submission fails at the
// storage level instead of in a check-then-create sequence.
type Resource struct {
	ID              int64     `gorm:"column:id;primaryKey" json:"id"`
	UserID          int64     `gorm:"column:user_id;index" json:"user_id"`
	FacultyID       int64     `gorm:"column:faculty_id;index" json:"faculty_id"`
	Title           string    `gorm:"column:title;uniqueIndex" json:"title"`
	AuthorFirstName string    `gorm:"column:author_first_name" json:"author_first_name"`
	AuthorLastName  string    `gorm:"column:author_last_name" json:"author_last_name"`
	Description     string    `gorm:"column:description" json:"description"`
	RelatedLink     string    `gorm:"column:related_link" json:"related_link,omitempty"`
	DocumentPath    string    `gorm:"column:document_path" json:"-"`
	DocumentSize    int64     `gorm:"column:document_size" json:"document_size"`
	CoverPath       string    `gorm:"column:cover_path" json:"-"`
	Authorized      bool      `gorm:"column:authorized" json:"authorized"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Resource) TableName() string { return "resources" }

// AuthorFullName is the "first last" form used by search.
func (r Resource) AuthorFullName() string {
	return r.AuthorFirstName + " " + r.AuthorLastName
}
