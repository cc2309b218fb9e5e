package catalog

import (
	"context"
	"errors"
	"io"

	"fdrs/internal/domain"

	"gorm.io/gorm"
)

// Service is the read side: listing, detail and search, always scoped to
// authorized resources except for the privileged pending listing.
type Service struct {
	resources ResourceRepository
	comments  CommentRepository
	faculties FacultyRepository
	blobs     BlobStore
}

func NewService(resources ResourceRepository, comments CommentRepository, faculties FacultyRepository, blobs BlobStore) *Service {
	return &Service{
		resources: resources,
		comments:  comments,
		faculties: faculties,
		blobs:     blobs,
	}
}

func (s *Service) ListFaculties(ctx context.Context) ([]domain.Faculty, error) {
	return s.faculties.List(ctx)
}

// List returns authorized resources for a faculty, title ascending.
func (s *Service) List(ctx context.Context, facultyID int64) ([]domain.Resource, error) {
	if _, err := s.faculties.GetByID(ctx, facultyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		return nil, err
	}

	return s.resources.ListByFaculty(ctx, facultyID)
}

// Detail returns a resource in any state together with its comments.
func (s *Service) Detail(ctx context.Context, resourceID int64) (*DetailResponse, error) {
	res, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	comments, err := s.comments.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	count, err := s.comments.CountByResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	return &DetailResponse{
		Resource:     res,
		Comments:     comments,
		CommentCount: count,
	}, nil
}

// Search matches title or author full name, case-insensitively, within the
// faculty. An empty result is NoMatch, not an error.
func (s *Service) Search(ctx context.Context, facultyID int64, term string) (*SearchResult, error) {
	if _, err := s.faculties.GetByID(ctx, facultyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		return nil, err
	}

	found, err := s.resources.Search(ctx, facultyID, term)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Resources: found,
		NoMatch:   len(found) == 0,
	}, nil
}

// ListPending returns every pending resource across faculties. The handler
// keeps this behind the admin gate.
func (s *Service) ListPending(ctx context.Context) ([]domain.Resource, error) {
	return s.resources.ListPending(ctx)
}

// OpenDocument streams the stored document for download.
func (s *Service) OpenDocument(ctx context.Context, resourceID int64) (io.ReadSeekCloser, *domain.Resource, error) {
	return s.openBlob(ctx, resourceID, func(r *domain.Resource) string { return r.DocumentPath })
}

// OpenCover streams the stored cover image.
func (s *Service) OpenCover(ctx context.Context, resourceID int64) (io.ReadSeekCloser, *domain.Resource, error) {
	return s.openBlob(ctx, resourceID, func(r *domain.Resource) string { return r.CoverPath })
}

func (s *Service) openBlob(ctx context.Context, resourceID int64, ref func(*domain.Resource) string) (io.ReadSeekCloser, *domain.Resource, error) {
	res, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrResourceNotFound
		}
		return nil, nil, err
	}

	f, err := s.blobs.Open(ref(res))
	if err != nil {
		return nil, nil, ErrFileMissing
	}
	return f, res, nil
}
