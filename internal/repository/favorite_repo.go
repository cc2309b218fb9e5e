package repository

import (
	"context"
	"errors"

	"fdrs/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrAlreadyFavorite = errors.New("resource already in favorites")
	ErrFavoriteMissing = errors.New("favorite not found")
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, resourceID int64) (*domain.Favorite, error) {
	exists, err := r.Exists(ctx, userID, resourceID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorite
	}

	fav := &domain.Favorite{
		UserID:     userID,
		ResourceID: resourceID,
	}
	if err := r.db.WithContext(ctx).Create(fav).Error; err != nil {
		return nil, err
	}
	return fav, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, resourceID int64) error {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND resource_id = ?", userID, resourceID).
		Delete(&domain.Favorite{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrFavoriteMissing
	}
	return nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, resourceID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("user_id = ? AND resource_id = ?", userID, resourceID).
		Count(&n).Error
	return n > 0, err
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	var out []domain.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// DeleteByResource removes every favorite referencing the resource and
// reports how many rows went away.
func (r *FavoriteRepository) DeleteByResource(ctx context.Context, resourceID int64) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Delete(&domain.Favorite{})
	return tx.RowsAffected, tx.Error
}
