// Package repository defines the storage contracts shared by every backend
// and the relational implementation built on GORM.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/utils"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate key")
)

// UserFilter narrows user listings and counts.
type UserFilter struct {
	Role            models.Role
	CreatedSince    time.Time
	IncludeInactive bool
}

// ProductFilter narrows product listings and counts. Search matches the name or
// description case-insensitively, or a tag exactly.
type ProductFilter struct {
	Category        string
	CategoryID      *uuid.UUID
	Search          string
	InStock         *bool
	StockBelow      *int
	IncludeInactive bool
	NewestFirst     bool
}

// OrderFilter narrows order listings, counts and revenue sums. Zero values are ignored.
type OrderFilter struct {
	UserID      *uuid.UUID
	Status      models.OrderStatus
	CreatedFrom time.Time
	CreatedTo   time.Time
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, filter UserFilter, pg utils.Pagination) ([]models.User, int64, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	List(ctx context.Context, filter ProductFilter, pg utils.Pagination) ([]models.Product, int64, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	List(ctx context.Context, includeInactive bool) ([]models.Category, error)
}

// OrderRepository stores orders together with their item snapshots. Update
// persists only status and notes; items and totals never change after Create.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	List(ctx context.Context, filter OrderFilter, pg utils.Pagination) ([]models.Order, int64, error)
	Count(ctx context.Context, filter OrderFilter) (int64, error)
	Revenue(ctx context.Context, filter OrderFilter) (float64, error)
	TopProducts(ctx context.Context, limit int) ([]models.ProductSales, error)
	Recent(ctx context.Context, limit int) ([]models.Order, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, tx *models.PaymentTransaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentTransaction, error)
	FindBySession(ctx context.Context, sessionID string) (*models.PaymentTransaction, error)
	Update(ctx context.Context, tx *models.PaymentTransaction) error
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PaymentTransaction, error)
	List(ctx context.Context, pg utils.Pagination) ([]models.PaymentTransaction, int64, error)
}

// Store bundles the repositories of one backend. Every component receives the
// Store it works against; nothing reaches for a package-level handle.
type Store struct {
	Users      UserRepository
	Products   ProductRepository
	Categories CategoryRepository
	Orders     OrderRepository
	Payments   PaymentRepository

	closer func(context.Context) error
}

// NewStore assembles a Store. closer may be nil.
func NewStore(users UserRepository, products ProductRepository, categories CategoryRepository,
	orders OrderRepository, payments PaymentRepository, closer func(context.Context) error) *Store {
	return &Store{
		Users:      users,
		Products:   products,
		Categories: categories,
		Orders:     orders,
		Payments:   payments,
		closer:     closer,
	}
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer(ctx)
}
