package repository

import (
	"context"

	"fdrs/internal/domain"

	"gorm.io/gorm"
)

type FacultyRepository struct {
	db *gorm.DB
}

func NewFacultyRepository(db *gorm.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

func (r *FacultyRepository) Create(ctx context.Context, f *domain.Faculty) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*domain.Faculty, error) {
	var f domain.Faculty
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FacultyRepository) List(ctx context.Context) ([]domain.Faculty, error) {
	var out []domain.Faculty
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}
