package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/grocery/internal/models"
)

type gormCategories struct {
	db *gorm.DB
}

func (r *gormCategories) Create(ctx context.Context, category *models.Category) error {
	return translate(r.db.WithContext(ctx).Create(category).Error)
}

func (r *gormCategories) FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Category, error) {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var category models.Category
	if err := query.First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *gormCategories) Update(ctx context.Context, category *models.Category) error {
	res := r.db.WithContext(ctx).Model(category).Select("*").Omit("id", "created_at").Updates(category)
	return rowsOrNotFound(res)
}

func (r *gormCategories) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	query := r.db.WithContext(ctx).Model(&models.Category{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var categories []models.Category
	if err := query.Order("created_at asc").Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
