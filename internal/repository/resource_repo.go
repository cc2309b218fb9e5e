package repository

import (
	"context"
	"strings"

	"fdrs/internal/domain"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) Create(ctx context.Context, res *domain.Resource) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	var res domain.Resource
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// Authorize flips the flag for a still-pending resource. Returns the number
// of rows touched: 0 means the resource was missing or already authorized,
// so the check-then-update in the service cannot race with itself.
func (r *ResourceRepository) Authorize(ctx context.Context, id int64) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Resource{}).
		Where("id = ? AND authorized = ?", id, false).
		Update("authorized", true)
	return tx.RowsAffected, tx.Error
}

func (r *ResourceRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tx := r.db.WithContext(ctx).Delete(&domain.Resource{}, id)
	return tx.RowsAffected, tx.Error
}

// ListByFaculty returns authorized resources for a faculty, title ascending.
func (r *ResourceRepository) ListByFaculty(ctx context.Context, facultyID int64) ([]domain.Resource, error) {
	var out []domain.Resource
	err := r.db.WithContext(ctx).
		Where("faculty_id = ? AND authorized = ?", facultyID, true).
		Order("title ASC").
		Find(&out).Error
	return out, err
}

// Search matches authorized resources in a faculty whose title or author
// full name contains term, case-insensitively.
func (r *ResourceRepository) Search(ctx context.Context, facultyID int64, term string) ([]domain.Resource, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"

	var out []domain.Resource
	err := r.db.WithContext(ctx).
		Where("faculty_id = ? AND authorized = ?", facultyID, true).
		Where(
			"LOWER(title) LIKE ? OR LOWER(author_first_name || ' ' || author_last_name) LIKE ?",
			pattern, pattern,
		).
		Order("title ASC").
		Find(&out).Error
	return out, err
}

func (r *ResourceRepository) ListPending(ctx context.Context) ([]domain.Resource, error) {
	var out []domain.Resource
	err := r.db.WithContext(ctx).
		Where("authorized = ?", false).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *ResourceRepository) ListByOwner(ctx context.Context, userID int64) ([]domain.Resource, error) {
	var out []domain.Resource
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
