package blob

import (
	"context"
	"errors"
	"io"
)

// Kind selects the MIME allowlist a stored file is checked against.
type Kind int

const (
	KindDocument Kind = iota // pdf
	KindCover                // raster images
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrInvalidMimeType = errors.New("file type is not allowed")
	ErrNotFound        = errors.New("blob not found")
)

// Store holds uploaded file bytes addressed by an opaque reference.
// Delete is idempotent: a missing reference is not an error, cascade
// cleanup relies on that.
type Store interface {
	Put(ctx context.Context, r io.Reader, originalName string, kind Kind) (ref string, size int64, err error)
	Delete(ref string) error
	Exists(ref string) bool
	Open(ref string) (io.ReadSeekCloser, error)
}
