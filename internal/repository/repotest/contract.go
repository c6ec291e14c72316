// Package repotest holds the behaviour every repository.Store backend must share.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/utils"
)

// Run exercises a backend. newStore must return an empty store for every call.
func Run(t *testing.T, newStore func(t *testing.T) *repository.Store) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("Products", func(t *testing.T) { testProducts(t, newStore(t)) })
	t.Run("Categories", func(t *testing.T) { testCategories(t, newStore(t)) })
	t.Run("Orders", func(t *testing.T) { testOrders(t, newStore(t)) })
	t.Run("Payments", func(t *testing.T) { testPayments(t, newStore(t)) })
}

func page(t *testing.T, p, size int) utils.Pagination {
	t.Helper()
	pg, err := utils.NewPagination(p, size)
	require.NoError(t, err)
	return pg
}

func testUsers(t *testing.T, store *repository.Store) {
	ctx := context.Background()
	repo := store.Users

	ann := &models.User{Name: "Ann", Email: "ann@example.com", Role: models.RoleCustomer, IsActive: true,
		Address: models.Address{City: "Springfield"}, Preferences: models.DefaultPreferences()}
	require.NoError(t, repo.Create(ctx, ann))
	require.NotEqual(t, uuid.Nil, ann.ID)

	dup := &models.User{Name: "Other", Email: "ann@example.com", Role: models.RoleCustomer, IsActive: true}
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicate)

	admin := &models.User{Name: "Root", Email: "root@example.com", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, repo.Create(ctx, admin))
	gone := &models.User{Name: "Gone", Email: "gone@example.com", Role: models.RoleCustomer}
	require.NoError(t, repo.Create(ctx, gone))

	found, err := repo.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, found.ID)
	assert.Equal(t, "Springfield", found.Address.City)
	assert.True(t, found.Preferences.Notifications)

	_, err = repo.FindByEmail(ctx, "ANN@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	found.Phone = "555"
	found.Preferences.DarkMode = true
	require.NoError(t, repo.Update(ctx, found))
	again, err := repo.FindByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "555", again.Phone)
	assert.True(t, again.Preferences.DarkMode)

	assert.ErrorIs(t, repo.Update(ctx, &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "x@example.com"}), repository.ErrNotFound)

	customers, total, err := repo.List(ctx, repository.UserFilter{Role: models.RoleCustomer}, page(t, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, customers, 1)
	assert.Equal(t, "Ann", customers[0].Name)

	n, err := repo.Count(ctx, repository.UserFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repo.Count(ctx, repository.UserFilter{CreatedSince: time.Now().UTC().Add(time.Hour)})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func testProducts(t *testing.T, store *repository.Store) {
	ctx := context.Background()
	repo := store.Products
	catID := uuid.New()
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)

	fixtures := []*models.Product{
		{Name: "Fresh Organic Apples", Price: 4.99, Category: "Fruits", CategoryID: catID, InStock: true, StockCount: 24,
			Description: "Crisp and sweet", Tags: []string{"organic", "fresh"}, IsActive: true},
		{Name: "Premium Avocados", Price: 3.49, Category: "Fruits", CategoryID: catID, InStock: true, StockCount: 5,
			Description: "Creamy", Tags: []string{"healthy"}, IsActive: true},
		{Name: "Whole Milk", Price: 4.29, Category: "Dairy", InStock: false, StockCount: 0,
			Description: "Farm fresh 100% milk", Tags: []string{"dairy"}, IsActive: true},
		{Name: "Retired Bread", Price: 5.49, Category: "Bakery", InStock: true, StockCount: 50, IsActive: false},
	}
	for i, p := range fixtures {
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, p))
	}

	got, total, err := repo.List(ctx, repository.ProductFilter{}, page(t, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, got, 2)
	assert.Equal(t, "Fresh Organic Apples", got[0].Name)
	assert.Equal(t, []string{"organic", "fresh"}, got[0].Tags)

	got, _, err = repo.List(ctx, repository.ProductFilter{}, page(t, 2, 2))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Whole Milk", got[0].Name)

	names := func(filter repository.ProductFilter) []string {
		t.Helper()
		list, _, err := repo.List(ctx, filter, page(t, 1, 100))
		require.NoError(t, err)
		out := []string{}
		for _, p := range list {
			out = append(out, p.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Fresh Organic Apples", "Premium Avocados"}, names(repository.ProductFilter{Category: "Fruits"}))
	assert.Equal(t, []string{"Fresh Organic Apples", "Premium Avocados"}, names(repository.ProductFilter{CategoryID: &catID}))
	assert.Equal(t, []string{"Premium Avocados"}, names(repository.ProductFilter{Search: "AVOCADO"}))
	assert.Equal(t, []string{"Fresh Organic Apples", "Whole Milk"}, names(repository.ProductFilter{Search: "fresh"}))
	assert.Equal(t, []string{"Premium Avocados"}, names(repository.ProductFilter{Search: "healthy"}))
	assert.Equal(t, []string{"Whole Milk"}, names(repository.ProductFilter{Search: "100%"}))
	assert.Empty(t, names(repository.ProductFilter{Search: "bread"}))

	outOfStock := false
	assert.Equal(t, []string{"Whole Milk"}, names(repository.ProductFilter{InStock: &outOfStock}))
	low := 10
	assert.Equal(t, []string{"Premium Avocados", "Whole Milk"}, names(repository.ProductFilter{StockBelow: &low}))
	assert.Equal(t,
		[]string{"Retired Bread", "Whole Milk", "Premium Avocados", "Fresh Organic Apples"},
		names(repository.ProductFilter{IncludeInactive: true, NewestFirst: true}))

	_, err = repo.FindByID(ctx, fixtures[3].ID, false)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	retired, err := repo.FindByID(ctx, fixtures[3].ID, true)
	require.NoError(t, err)
	assert.False(t, retired.IsActive)

	apples, err := repo.FindByID(ctx, fixtures[0].ID, false)
	require.NoError(t, err)
	apples.IsActive = false
	apples.OriginalPrice = nil
	require.NoError(t, repo.Update(ctx, apples))
	n, err := repo.Count(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func testCategories(t *testing.T, store *repository.Store) {
	ctx := context.Background()
	repo := store.Categories
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)

	fruits := &models.Category{Name: "Fruits", Icon: "🍎", Color: "bg-red-100", IsActive: true}
	fruits.CreatedAt = base
	dairy := &models.Category{Name: "Dairy", Icon: "🥛", IsActive: true}
	dairy.CreatedAt = base.Add(time.Minute)
	require.NoError(t, repo.Create(ctx, fruits))
	require.NoError(t, repo.Create(ctx, dairy))

	list, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Fruits", list[0].Name)

	fruits.ProductCount = 7
	fruits.IsActive = false
	require.NoError(t, repo.Update(ctx, fruits))

	list, err = repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Dairy", list[0].Name)

	_, err = repo.FindByID(ctx, fruits.ID, false)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	stored, err := repo.FindByID(ctx, fruits.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.ProductCount)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testOrders(t *testing.T, store *repository.Store) {
	ctx := context.Background()
	repo := store.Orders
	ann, bob := uuid.New(), uuid.New()
	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	first := &models.Order{
		UserID: ann,
		Items: []models.OrderItem{
			{ProductID: "p-apples", Name: "Apples", Price: 4.99, Quantity: 3},
			{ProductID: "p-milk", Name: "Milk", Price: 4.29, Quantity: 1},
		},
		Subtotal: 19.26, TotalPrice: 27.18, Status: models.OrderStatusPending,
		DeliveryAddress: models.Address{Street: "1 Main"}, DeliveryOption: models.DefaultDeliveryOption,
	}
	first.CreatedAt = monthStart.Add(-24 * time.Hour)
	second := &models.Order{
		UserID:     bob,
		Items:      []models.OrderItem{{ProductID: "p-milk", Name: "Milk", Price: 4.29, Quantity: 5}},
		TotalPrice: 23.60, Status: models.OrderStatusDelivered,
	}
	second.CreatedAt = monthStart.Add(2 * time.Hour)
	empty := &models.Order{UserID: ann, TotalPrice: 5.99, Status: models.OrderStatusCancelled}
	empty.CreatedAt = monthStart.Add(3 * time.Hour)

	for _, o := range []*models.Order{first, second, empty} {
		require.NoError(t, repo.Create(ctx, o))
	}

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "p-apples", got.Items[0].ProductID)
	assert.Equal(t, "p-milk", got.Items[1].ProductID)
	assert.Equal(t, "1 Main", got.DeliveryAddress.Street)

	got.Status = models.OrderStatusConfirmed
	got.Notes = "leave at door"
	got.TotalPrice = 1
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, got.Status)
	assert.Equal(t, "leave at door", got.Notes)
	assert.Equal(t, 27.18, got.TotalPrice)

	assert.ErrorIs(t, repo.Update(ctx, &models.Order{BaseModel: models.BaseModel{ID: uuid.New()}}), repository.ErrNotFound)
	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, total, err := repo.List(ctx, repository.OrderFilter{UserID: &ann}, page(t, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, empty.ID, list[0].ID)
	assert.Len(t, list[1].Items, 2)

	n, err := repo.Count(ctx, repository.OrderFilter{Status: models.OrderStatusDelivered})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Count(ctx, repository.OrderFilter{CreatedFrom: monthStart, CreatedTo: monthStart.AddDate(0, 1, 0)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	revenue, err := repo.Revenue(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.InDelta(t, 27.18+23.60+5.99, revenue, 1e-9)

	revenue, err = repo.Revenue(ctx, repository.OrderFilter{CreatedFrom: monthStart.AddDate(1, 0, 0)})
	require.NoError(t, err)
	assert.Zero(t, revenue)

	top, err := repo.TopProducts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "p-milk", top[0].ProductID)
	assert.Equal(t, int64(6), top[0].TotalQuantity)
	assert.InDelta(t, 4.29*6, top[0].TotalRevenue, 1e-9)
	assert.Equal(t, "Apples", top[1].Name)

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, empty.ID, recent[0].ID)
	assert.Equal(t, second.ID, recent[1].ID)
}

func testPayments(t *testing.T, store *repository.Store) {
	ctx := context.Background()
	repo := store.Payments
	userID := uuid.New()

	tx := &models.PaymentTransaction{
		UserID:        &userID,
		SessionID:     "cs_test_1",
		Amount:        12.5,
		Currency:      models.DefaultCurrency,
		PaymentStatus: models.PaymentStatusInitiated,
		Metadata:      map[string]string{"source": "grocery_ecommerce"},
	}
	require.NoError(t, repo.Create(ctx, tx))
	assert.ErrorIs(t, repo.Create(ctx, &models.PaymentTransaction{SessionID: "cs_test_1"}), repository.ErrDuplicate)

	anonymous := &models.PaymentTransaction{SessionID: "cs_test_2", Currency: "eur", PaymentStatus: models.PaymentStatusInitiated}
	require.NoError(t, repo.Create(ctx, anonymous))

	found, err := repo.FindBySession(ctx, "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, tx.ID, found.ID)
	require.NotNil(t, found.UserID)
	assert.Equal(t, userID, *found.UserID)
	assert.Nil(t, found.OrderID)
	assert.Equal(t, "grocery_ecommerce", found.Metadata["source"])

	_, err = repo.FindBySession(ctx, "cs_missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	found.PaymentStatus = models.PaymentStatusPaid
	found.Amount = 13
	require.NoError(t, repo.Update(ctx, found))
	byID, err := repo.FindByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, byID.PaymentStatus)
	assert.Equal(t, 13.0, byID.Amount)

	mine, err := repo.ListForUser(ctx, userID, 100)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "cs_test_1", mine[0].SessionID)

	all, total, err := repo.List(ctx, page(t, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}
