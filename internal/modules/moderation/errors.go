package moderation

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("resource not found")
	ErrFacultyNotFound  = errors.New("faculty not found")
	ErrForbidden        = errors.New("not allowed to delete this resource")
	ErrTitleTaken       = errors.New("title already exists")
	ErrUpload           = errors.New("file upload failed")
	ErrAlreadyModerated = errors.New("resource already moderated")
)
