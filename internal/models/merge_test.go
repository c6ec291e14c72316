package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestProductUpdateApplySetsOnlyPresentFields(t *testing.T) {
	p := Product{
		Name:       "Apples",
		Price:      4.99,
		Tags:       []string{"fresh"},
		InStock:    true,
		StockCount: 24,
	}

	changed := ProductUpdate{
		Price:   ptr(3.99),
		InStock: ptr(false),
		Tags:    ptr([]string{"fresh", "sale"}),
	}.Apply(&p)

	assert.True(t, changed)
	assert.Equal(t, "Apples", p.Name)
	assert.Equal(t, 3.99, p.Price)
	assert.False(t, p.InStock)
	assert.Equal(t, 24, p.StockCount, "stock_count is independent of in_stock")
	assert.Equal(t, []string{"fresh", "sale"}, p.Tags)
}

func TestProductUpdateApplyNoop(t *testing.T) {
	catID := uuid.New()
	p := Product{Name: "Milk", CategoryID: catID, OriginalPrice: ptr(4.99)}

	assert.False(t, ProductUpdate{}.Apply(&p))
	assert.False(t, ProductUpdate{Name: ptr("Milk"), CategoryID: &catID, OriginalPrice: ptr(4.99)}.Apply(&p))
}

func TestProductUpdateApplyDoesNotAliasSlices(t *testing.T) {
	images := []string{"a.png"}
	p := Product{}
	ProductUpdate{Images: &images}.Apply(&p)

	images[0] = "b.png"
	assert.Equal(t, []string{"a.png"}, p.Images)
}

func TestCategoryUpdateApply(t *testing.T) {
	c := Category{Name: "Fruits", Icon: "apple", Color: "red"}

	changed := CategoryUpdate{Color: ptr("green")}.Apply(&c)

	assert.True(t, changed)
	assert.Equal(t, Category{Name: "Fruits", Icon: "apple", Color: "green"}, c)
}

func TestUserUpdateApply(t *testing.T) {
	u := User{Name: "Ann", Phone: "1", Preferences: DefaultPreferences()}

	changed := UserUpdate{
		Address:     &Address{Street: "1 Main", City: "Springfield"},
		Preferences: &Preferences{DarkMode: true},
	}.Apply(&u)

	assert.True(t, changed)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "Springfield", u.Address.City)
	assert.Equal(t, Preferences{DarkMode: true}, u.Preferences)
}

func TestOrderUpdateApply(t *testing.T) {
	o := Order{Status: OrderStatusPending, Notes: "ring bell"}

	assert.False(t, OrderUpdate{Notes: ptr("ring bell")}.Apply(&o))
	assert.True(t, OrderUpdate{Status: ptr(OrderStatusConfirmed)}.Apply(&o))
	assert.Equal(t, OrderStatusConfirmed, o.Status)
	assert.Equal(t, "ring bell", o.Notes)
}

func TestEnums(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleCustomer}).IsAdmin())
	assert.False(t, (*User)(nil).IsAdmin())

	assert.True(t, OrderStatusOutForDelivery.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusPending.Terminal())

	assert.True(t, PaymentStatusExpired.Terminal())
	assert.False(t, PaymentStatusInitiated.Terminal())
}
