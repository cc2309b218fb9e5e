package catalog

import (
	"context"
	"io"

	"fdrs/internal/domain"
)

type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	ListByFaculty(ctx context.Context, facultyID int64) ([]domain.Resource, error)
	Search(ctx context.Context, facultyID int64, term string) ([]domain.Resource, error)
	ListPending(ctx context.Context) ([]domain.Resource, error)
}

type CommentRepository interface {
	ListByResource(ctx context.Context, resourceID int64) ([]domain.Comment, error)
	CountByResource(ctx context.Context, resourceID int64) (int64, error)
}

type FacultyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Faculty, error)
	List(ctx context.Context) ([]domain.Faculty, error)
}

type BlobStore interface {
	Open(ref string) (io.ReadSeekCloser, error)
}
