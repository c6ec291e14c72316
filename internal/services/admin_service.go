package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/example/grocery/internal/apperr"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/utils"
)

const (
	recentOrdersLimit = 10
	topProductsLimit  = 5
	lowStockThreshold = 10
)

type OrderStats struct {
	Total     int64 `json:"total"`
	Today     int64 `json:"today"`
	ThisMonth int64 `json:"this_month"`
	LastMonth int64 `json:"last_month"`
}

type RevenueStats struct {
	Total     float64 `json:"total"`
	ThisMonth float64 `json:"this_month"`
}

type ProductStats struct {
	Total      int64 `json:"total"`
	OutOfStock int64 `json:"out_of_stock"`
	LowStock   int64 `json:"low_stock"`
}

type UserStats struct {
	Total    int64 `json:"total"`
	NewToday int64 `json:"new_today"`
}

type DashboardStats struct {
	Orders   OrderStats   `json:"orders"`
	Revenue  RevenueStats `json:"revenue"`
	Products ProductStats `json:"products"`
	Users    UserStats    `json:"users"`
}

// Dashboard is the admin overview. Every figure is read live.
type Dashboard struct {
	Stats        DashboardStats        `json:"stats"`
	RecentOrders []models.Order        `json:"recent_orders"`
	TopProducts  []models.ProductSales `json:"top_products"`
}

// AdminService aggregates store-wide figures for administrators.
type AdminService struct {
	store *repository.Store
	now   func() time.Time
	log   *slog.Logger
}

// NewAdminService constructs AdminService.
func NewAdminService(store *repository.Store, log *slog.Logger) *AdminService {
	return &AdminService{store: store, now: time.Now, log: log}
}

// WithClock replaces the time source used to compute day and month boundaries.
func (s *AdminService) WithClock(now func() time.Time) *AdminService {
	s.now = now
	return s
}

// Dashboard computes the overview. Day and month boundaries are taken in UTC.
func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var (
		d   Dashboard
		err error
	)
	orders := s.store.Orders

	count := func(dst *int64, filter repository.OrderFilter) {
		if err == nil {
			*dst, err = orders.Count(ctx, filter)
		}
	}
	count(&d.Stats.Orders.Total, repository.OrderFilter{})
	count(&d.Stats.Orders.Today, repository.OrderFilter{CreatedFrom: today})
	count(&d.Stats.Orders.ThisMonth, repository.OrderFilter{CreatedFrom: thisMonth})
	count(&d.Stats.Orders.LastMonth, repository.OrderFilter{CreatedFrom: lastMonth, CreatedTo: thisMonth})

	if err == nil {
		d.Stats.Revenue.Total, err = orders.Revenue(ctx, repository.OrderFilter{})
	}
	if err == nil {
		d.Stats.Revenue.ThisMonth, err = orders.Revenue(ctx, repository.OrderFilter{CreatedFrom: thisMonth})
	}

	outOfStock := false
	lowStock := lowStockThreshold
	countProducts := func(dst *int64, filter repository.ProductFilter) {
		if err == nil {
			*dst, err = s.store.Products.Count(ctx, filter)
		}
	}
	countProducts(&d.Stats.Products.Total, repository.ProductFilter{})
	countProducts(&d.Stats.Products.OutOfStock, repository.ProductFilter{InStock: &outOfStock})
	countProducts(&d.Stats.Products.LowStock, repository.ProductFilter{StockBelow: &lowStock})

	countUsers := func(dst *int64, filter repository.UserFilter) {
		if err == nil {
			*dst, err = s.store.Users.Count(ctx, filter)
		}
	}
	countUsers(&d.Stats.Users.Total, repository.UserFilter{Role: models.RoleCustomer})
	countUsers(&d.Stats.Users.NewToday, repository.UserFilter{Role: models.RoleCustomer, CreatedSince: today})

	if err == nil {
		d.RecentOrders, err = orders.Recent(ctx, recentOrdersLimit)
	}
	if err == nil {
		d.TopProducts, err = orders.TopProducts(ctx, topProductsLimit)
	}

	if err != nil {
		return nil, apperr.Upstream("Failed to get dashboard data", err)
	}
	return &d, nil
}

// ListUsers pages through active users, optionally of one role.
func (s *AdminService) ListUsers(ctx context.Context, role string, pg utils.Pagination) ([]models.User, int64, error) {
	var filter repository.UserFilter
	if role != "" {
		r := models.Role(role)
		if !r.Valid() {
			return nil, 0, apperr.Validation("Invalid role")
		}
		filter.Role = r
	}

	users, total, err := s.store.Users.List(ctx, filter, pg)
	if err != nil {
		return nil, 0, apperr.Upstream("Failed to get users", err)
	}
	return users, total, nil
}
