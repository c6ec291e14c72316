package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/utils"
)

type gormOrders struct {
	db *gorm.DB
}

func (r *gormOrders) Create(ctx context.Context, order *models.Order) error {
	for i := range order.Items {
		order.Items[i].Position = i
	}
	return translate(r.db.WithContext(ctx).Create(order).Error)
}

func (r *gormOrders) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items", orderedItems).First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *gormOrders) Update(ctx context.Context, order *models.Order) error {
	res := r.db.WithContext(ctx).Model(order).
		Select("status", "notes", "updated_at").
		Omit(clause.Associations).
		Updates(order)
	return rowsOrNotFound(res)
}

func (r *gormOrders) List(ctx context.Context, filter OrderFilter, pg utils.Pagination) ([]models.Order, int64, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := query.Preload("Items", orderedItems).
		Order("created_at desc").Order("id").
		Limit(pg.Size).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *gormOrders) Count(ctx context.Context, filter OrderFilter) (int64, error) {
	var total int64
	err := r.filtered(ctx, filter).Count(&total).Error
	return total, err
}

func (r *gormOrders) Revenue(ctx context.Context, filter OrderFilter) (float64, error) {
	var total float64
	err := r.filtered(ctx, filter).Select("COALESCE(SUM(total_price), 0)").Scan(&total).Error
	return total, err
}

func (r *gormOrders) TopProducts(ctx context.Context, limit int) ([]models.ProductSales, error) {
	var rows []models.ProductSales
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Select("product_id, MAX(name) AS name, SUM(quantity) AS total_quantity, SUM(price * quantity) AS total_revenue").
		Group("product_id").
		Order("total_quantity desc").Order("product_id").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormOrders) Recent(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items", orderedItems).
		Order("created_at desc").Order("id").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrders) filtered(ctx context.Context, filter OrderFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if !filter.CreatedFrom.IsZero() {
		query = query.Where("created_at >= ?", filter.CreatedFrom)
	}
	if !filter.CreatedTo.IsZero() {
		query = query.Where("created_at < ?", filter.CreatedTo)
	}
	return query
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}
