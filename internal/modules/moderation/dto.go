package moderation

import "io"

// FileInput is one uploaded file as handed over by the transport layer.
type FileInput struct {
	Reader   io.Reader
	Filename string
}

type SubmitRequest struct {
	Title       string
	FirstName   string
	LastName    string
	Description string
	RelatedLink string

	Document *FileInput
	Cover    *FileInput
}

// CleanupReport tells the caller whether the best-effort cleanup around a
// completed state transition left anything behind. An empty Warnings slice
// means full success.
type CleanupReport struct {
	FavoritesDeleted int64    `json:"favorites_deleted"`
	CommentsDeleted  int64    `json:"comments_deleted"`
	Warnings         []string `json:"warnings,omitempty"`
}
