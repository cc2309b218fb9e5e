package moderation

import (
	"context"
	"io"

	"fdrs/internal/blob"
	"fdrs/internal/domain"
)

type ResourceRepository interface {
	Create(ctx context.Context, res *domain.Resource) error
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	Authorize(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type CommentRepository interface {
	DeleteByResource(ctx context.Context, resourceID int64) (int64, error)
}

type FavoriteRepository interface {
	DeleteByResource(ctx context.Context, resourceID int64) (int64, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type FacultyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Faculty, error)
}

type BlobStore interface {
	Put(ctx context.Context, r io.Reader, originalName string, kind blob.Kind) (string, int64, error)
	Delete(ref string) error
}

type Mailer interface {
	Send(ctx context.Context, toEmail, toName, subject, htmlContent string) error
}
