package repository

import (
	"context"

	"fdrs/internal/domain"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// ListByResource returns comments oldest first.
func (r *CommentRepository) ListByResource(ctx context.Context, resourceID int64) ([]domain.Comment, error) {
	var out []domain.Comment
	err := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *CommentRepository) CountByResource(ctx context.Context, resourceID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("resource_id = ?", resourceID).
		Count(&n).Error
	return n, err
}

// DeleteByResource removes every comment referencing the resource and
// reports how many rows went away.
func (r *CommentRepository) DeleteByResource(ctx context.Context, resourceID int64) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Delete(&domain.Comment{})
	return tx.RowsAffected, tx.Error
}
