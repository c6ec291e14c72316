package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/utils"
)

type gormProducts struct {
	db *gorm.DB
}

func (r *gormProducts) Create(ctx context.Context, product *models.Product) error {
	return translate(r.db.WithContext(ctx).Create(product).Error)
}

func (r *gormProducts) FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error) {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var product models.Product
	if err := query.First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *gormProducts) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(product).Select("*").Omit("id", "created_at").Updates(product)
	return rowsOrNotFound(res)
}

func (r *gormProducts) List(ctx context.Context, filter ProductFilter, pg utils.Pagination) ([]models.Product, int64, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at asc"
	if filter.NewestFirst {
		order = "created_at desc"
	}

	var products []models.Product
	if err := query.Order(order).Order("id").
		Limit(pg.Size).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *gormProducts) Count(ctx context.Context, filter ProductFilter) (int64, error) {
	var total int64
	err := r.filtered(ctx, filter).Count(&total).Error
	return total, err
}

func (r *gormProducts) filtered(ctx context.Context, filter ProductFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.InStock != nil {
		query = query.Where("in_stock = ?", *filter.InStock)
	}
	if filter.StockBelow != nil {
		query = query.Where("stock_count < ?", *filter.StockBelow)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		q := containsPattern(search)
		// tags are stored as a JSON array, so an exact tag is the quoted element.
		tag := `%"` + likeEscaper.Replace(search) + `"%`
		query = query.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\'`,
			q, q, tag,
		)
	}
	return query
}
