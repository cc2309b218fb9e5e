package catalog

import "errors"

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrFacultyNotFound  = errors.New("faculty not found")
	ErrFileMissing      = errors.New("stored file is missing")
)
