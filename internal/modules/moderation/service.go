package moderation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"fdrs/internal/blob"
	"fdrs/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	decisionSubject = "Resource Approval Status"
	approvedBody    = "<p>Your resource has been approved.</p>"
	declinedBody    = "<p>Your resource has been declined.</p>"
)

// Service is the moderation engine: it owns the pending → authorized /
// removed transitions and keeps blob and notification side effects
// consistent with the stored record.
type Service struct {
	resources ResourceRepository
	comments  CommentRepository
	favorites FavoriteRepository
	users     UserRepository
	faculties FacultyRepository
	blobs     BlobStore
	mail      Mailer
}

func NewService(
	resources ResourceRepository,
	comments CommentRepository,
	favorites FavoriteRepository,
	users UserRepository,
	faculties FacultyRepository,
	blobs BlobStore,
	mail Mailer,
) *Service {
	return &Service{
		resources: resources,
		comments:  comments,
		favorites: favorites,
		users:     users,
		faculties: faculties,
		blobs:     blobs,
		mail:      mail,
	}
}

// Submit stores both blobs, then creates the record. If the record cannot
// be created the blobs are removed again, so a resource row never exists
// without its files and orphan files never survive a failed create.
// Admin submitters start authorized; everyone else starts pending.
func (s *Service) Submit(ctx context.Context, ownerID, facultyID int64, ownerIsAdmin bool, req SubmitRequest) (*domain.Resource, error) {
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.FirstName) == "" ||
		strings.TrimSpace(req.LastName) == "" ||
		strings.TrimSpace(req.Description) == "" {
		return nil, ErrValidation
	}

	if _, err := s.faculties.GetByID(ctx, facultyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		return nil, err
	}

	if req.Document == nil || req.Cover == nil {
		return nil, ErrUpload
	}

	docRef, docSize, err := s.blobs.Put(ctx, req.Document.Reader, req.Document.Filename, blob.KindDocument)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	coverRef, _, err := s.blobs.Put(ctx, req.Cover.Reader, req.Cover.Filename, blob.KindCover)
	if err != nil {
		_ = s.blobs.Delete(docRef)
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	res := &domain.Resource{
		UserID:          ownerID,
		FacultyID:       facultyID,
		Title:           strings.TrimSpace(req.Title),
		AuthorFirstName: strings.TrimSpace(req.FirstName),
		AuthorLastName:  strings.TrimSpace(req.LastName),
		Description:     strings.TrimSpace(req.Description),
		RelatedLink:     strings.TrimSpace(req.RelatedLink),
		DocumentPath:    docRef,
		DocumentSize:    docSize,
		CoverPath:       coverRef,
		Authorized:      ownerIsAdmin,
	}

	if err := s.resources.Create(ctx, res); err != nil {
		_ = s.blobs.Delete(docRef)
		_ = s.blobs.Delete(coverRef)
		if isUniqueViolation(err) {
			return nil, ErrTitleTaken
		}
		return nil, err
	}

	return res, nil
}

// Approve transitions a pending resource to authorized. The flag change is
// persisted first; a notification failure afterwards is reported as a
// warning, never rolled back.
func (s *Service) Approve(ctx context.Context, resourceID int64) (*domain.Resource, []string, error) {
	res, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if res.Authorized {
		return nil, nil, ErrAlreadyModerated
	}

	rows, err := s.resources.Authorize(ctx, resourceID)
	if err != nil {
		return nil, nil, err
	}
	if rows == 0 {
		// someone else moderated it between the read and the update
		return nil, nil, ErrAlreadyModerated
	}
	res.Authorized = true

	var warnings []string
	if warn := s.notifyOwner(ctx, res.UserID, approvedBody); warn != "" {
		warnings = append(warnings, warn)
	}

	return res, warnings, nil
}

// Decline removes a pending resource entirely: record first, then the
// cascade of favorites, comments and both blobs, then the owner
// notification. Cleanup failures after the record is gone are warnings.
func (s *Service) Decline(ctx context.Context, resourceID int64) (*CleanupReport, error) {
	res, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if res.Authorized {
		return nil, ErrAlreadyModerated
	}

	report, err := s.removeResource(ctx, res)
	if err != nil {
		return nil, err
	}

	if warn := s.notifyOwner(ctx, res.UserID, declinedBody); warn != "" {
		report.Warnings = append(report.Warnings, warn)
	}

	return report, nil
}

// Delete is the authorization-checked hard delete: owner or admin, any
// state, same cascade as Decline, no notification.
func (s *Service) Delete(ctx context.Context, resourceID, requesterID int64, requesterIsAdmin bool) (*CleanupReport, error) {
	res, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !requesterIsAdmin && res.UserID != requesterID {
		return nil, ErrForbidden
	}

	return s.removeResource(ctx, res)
}

// removeResource is the single cascade routine: favorites and comments can
// never outlive their resource because every destruction path funnels
// through here. Record deletion is attempted first; everything after a
// successful delete is best effort and only produces warnings.
func (s *Service) removeResource(ctx context.Context, res *domain.Resource) (*CleanupReport, error) {
	rows, err := s.resources.Delete(ctx, res.ID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	report := &CleanupReport{}

	if n, err := s.favorites.DeleteByResource(ctx, res.ID); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("failed to delete favorites: %v", err))
		log.Printf("moderation: cascade favorites for resource %d: %v", res.ID, err)
	} else {
		report.FavoritesDeleted = n
	}

	if n, err := s.comments.DeleteByResource(ctx, res.ID); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("failed to delete comments: %v", err))
		log.Printf("moderation: cascade comments for resource %d: %v", res.ID, err)
	} else {
		report.CommentsDeleted = n
	}

	if err := s.blobs.Delete(res.DocumentPath); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("failed to delete document file: %v", err))
		log.Printf("moderation: delete document blob %s: %v", res.DocumentPath, err)
	}
	if err := s.blobs.Delete(res.CoverPath); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("failed to delete cover file: %v", err))
		log.Printf("moderation: delete cover blob %s: %v", res.CoverPath, err)
	}

	return report, nil
}

// notifyOwner sends the decision email. Returns a warning string instead of
// an error: notification failure never fails the already-committed
// transition.
func (s *Service) notifyOwner(ctx context.Context, ownerID int64, body string) string {
	if s.mail == nil {
		return ""
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		log.Printf("moderation: owner %d lookup for notification: %v", ownerID, err)
		return fmt.Sprintf("owner notification skipped: %v", err)
	}

	if err := s.mail.Send(ctx, owner.Email, owner.Username, decisionSubject, body); err != nil {
		log.Printf("moderation: notify %s: %v", owner.Email, err)
		return fmt.Sprintf("owner notification failed: %v", err)
	}
	return ""
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// sqlite (dev/test driver) reports constraint hits as plain strings
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
