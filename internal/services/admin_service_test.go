package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/grocery/internal/apperr"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/repository"
)

func at(month time.Month, day, hour int) time.Time {
	return time.Date(2026, month, day, hour, 0, 0, 0, time.UTC)
}

func seedDashboard(t *testing.T, store *repository.Store) {
	t.Helper()
	ctx := context.Background()

	users := []models.User{
		{Name: "Today", Email: "today@example.com", Role: models.RoleCustomer, IsActive: true},
		{Name: "Old", Email: "old@example.com", Role: models.RoleCustomer, IsActive: true},
		{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin, IsActive: true},
		{Name: "Gone", Email: "gone@example.com", Role: models.RoleCustomer},
	}
	users[0].CreatedAt = at(time.March, 15, 9)
	users[1].CreatedAt = at(time.February, 1, 9)
	users[2].CreatedAt = at(time.March, 15, 8)
	users[3].CreatedAt = at(time.March, 15, 7)
	for i := range users {
		require.NoError(t, store.Users.Create(ctx, &users[i]))
	}

	products := []models.Product{
		{Name: "Plenty", InStock: true, StockCount: 50, IsActive: true},
		{Name: "Sold out", InStock: false, StockCount: 0, IsActive: true},
		{Name: "Few left", InStock: true, StockCount: 5, IsActive: true},
		{Name: "Retired", InStock: false, StockCount: 1},
	}
	for i := range products {
		require.NoError(t, store.Products.Create(ctx, &products[i]))
	}

	customer := users[0].ID
	orders := []models.Order{
		{UserID: customer, TotalPrice: 10, Status: models.OrderStatusPending, Items: []models.OrderItem{
			{ProductID: "p1", Name: "Apples", Price: 5, Quantity: 2},
		}},
		{UserID: customer, TotalPrice: 20, Status: models.OrderStatusDelivered, Items: []models.OrderItem{
			{ProductID: "p2", Name: "Limes", Price: 1, Quantity: 5},
			{ProductID: "p1", Name: "Apples", Price: 5, Quantity: 1},
		}},
		{UserID: customer, TotalPrice: 30, Status: models.OrderStatusConfirmed},
		{UserID: customer, TotalPrice: 40, Status: models.OrderStatusCancelled},
	}
	orders[0].CreatedAt = at(time.March, 15, 10)
	orders[1].CreatedAt = at(time.March, 5, 10)
	orders[2].CreatedAt = at(time.February, 10, 10)
	orders[3].CreatedAt = at(time.January, 20, 10)
	for i := range orders {
		require.NoError(t, store.Orders.Create(ctx, &orders[i]))
	}
}

func TestDashboard(t *testing.T) {
	store := newTestStore(t)
	seedDashboard(t, store)

	svc := NewAdminService(store, discard).WithClock(func() time.Time { return at(time.March, 15, 12) })
	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OrderStats{Total: 4, Today: 1, ThisMonth: 2, LastMonth: 1}, d.Stats.Orders)
	assert.Equal(t, 100.0, d.Stats.Revenue.Total, "revenue counts every order status")
	assert.Equal(t, 30.0, d.Stats.Revenue.ThisMonth)
	assert.Equal(t, ProductStats{Total: 3, OutOfStock: 1, LowStock: 2}, d.Stats.Products)
	assert.Equal(t, UserStats{Total: 2, NewToday: 1}, d.Stats.Users)

	require.Len(t, d.RecentOrders, 4)
	assert.Equal(t, 10.0, d.RecentOrders[0].TotalPrice)

	require.Len(t, d.TopProducts, 2)
	assert.Equal(t, "p2", d.TopProducts[0].ProductID)
	assert.Equal(t, int64(5), d.TopProducts[0].TotalQuantity)
	assert.Equal(t, "p1", d.TopProducts[1].ProductID)
	assert.Equal(t, int64(3), d.TopProducts[1].TotalQuantity)
	assert.Equal(t, 15.0, d.TopProducts[1].TotalRevenue)
}

func TestDashboardEmptyStore(t *testing.T) {
	svc := NewAdminService(newTestStore(t), discard)
	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, d.Stats.Orders.Total)
	assert.Zero(t, d.Stats.Revenue.Total)
	assert.Empty(t, d.RecentOrders)
	assert.Empty(t, d.TopProducts)
}

func TestAdminListUsers(t *testing.T) {
	store := newTestStore(t)
	createUser(t, store, "ann@example.com", models.RoleCustomer)
	createUser(t, store, "root@example.com", models.RoleAdmin)
	svc := NewAdminService(store, discard)

	all, total, err := svc.ListUsers(context.Background(), "", firstPage(t))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	admins, total, err := svc.ListUsers(context.Background(), "admin", firstPage(t))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "root@example.com", admins[0].Email)

	_, _, err = svc.ListUsers(context.Background(), "owner", firstPage(t))
	requireKind(t, err, apperr.KindValidation)
}
