package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/grocery/internal/apperr"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/utils"
)

func newCatalog(t *testing.T) *CatalogService {
	store := newTestStore(t)
	return NewCatalogService(store.Products, store.Categories, discard)
}

func TestCreateProductDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog(t)

	product, err := svc.CreateProduct(ctx, models.ProductInput{Name: "Apples", Price: 4.99, StockCount: 0})
	require.NoError(t, err)
	assert.True(t, product.InStock, "in_stock defaults to true regardless of stock_count")
	assert.True(t, product.IsActive)
	assert.Equal(t, []string{}, product.Tags)

	notStocked := false
	product, err = svc.CreateProduct(ctx, models.ProductInput{Name: "Pears", Price: 1, StockCount: 40, InStock: &notStocked})
	require.NoError(t, err)
	assert.False(t, product.InStock)
	assert.Equal(t, 40, product.StockCount)

	_, err = svc.CreateProduct(ctx, models.ProductInput{Name: " "})
	requireKind(t, err, apperr.KindValidation)
	_, err = svc.CreateProduct(ctx, models.ProductInput{Name: "X", Price: -1})
	requireKind(t, err, apperr.KindValidation)
	_, err = svc.CreateProduct(ctx, models.ProductInput{Name: "X", CategoryID: "nope"})
	requireKind(t, err, apperr.KindValidation)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog(t)

	product, err := svc.CreateProduct(ctx, models.ProductInput{Name: "Apples", Price: 4.99, Brand: "Farm", Tags: []string{"fresh"}})
	require.NoError(t, err)

	price := 3.99
	tags := []string{"fresh", "sale"}
	updated, err := svc.UpdateProduct(ctx, product.ID.String(), models.ProductUpdate{Price: &price, Tags: &tags})
	require.NoError(t, err)
	assert.Equal(t, 3.99, updated.Price)
	assert.Equal(t, "Farm", updated.Brand)

	stored, err := svc.GetProduct(ctx, product.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 3.99, stored.Price)
	assert.Equal(t, []string{"fresh", "sale"}, stored.Tags)

	negative := -2.0
	_, err = svc.UpdateProduct(ctx, product.ID.String(), models.ProductUpdate{Price: &negative})
	requireKind(t, err, apperr.KindValidation)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID.String()))
	_, err = svc.GetProduct(ctx, product.ID.String())
	requireKind(t, err, apperr.KindNotFound)
	requireKind(t, svc.DeleteProduct(ctx, product.ID.String()), apperr.KindNotFound)
	_, err = svc.UpdateProduct(ctx, product.ID.String(), models.ProductUpdate{Price: &price})
	requireKind(t, err, apperr.KindNotFound)

	pg, err := utils.NewPagination(1, 10)
	require.NoError(t, err)
	all, total, err := svc.AdminListProducts(ctx, true, pg)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.False(t, all[0].IsActive)

	_, total, err = svc.ListProducts(ctx, ProductQuery{}, pg)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCategoriesAndRecount(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog(t)

	fruits, err := svc.CreateCategory(ctx, models.CategoryInput{Name: "Fruits", Icon: "🍎"})
	require.NoError(t, err)
	dairy, err := svc.CreateCategory(ctx, models.CategoryInput{Name: "Dairy"})
	require.NoError(t, err)

	for _, name := range []string{"Apples", "Pears", "Plums"} {
		_, err := svc.CreateProduct(ctx, models.ProductInput{Name: name, Category: "Fruits", CategoryID: fruits.ID.String()})
		require.NoError(t, err)
	}
	plums, _, err := svc.ListProducts(ctx, ProductQuery{Search: "plum"}, firstPage(t))
	require.NoError(t, err)
	require.Len(t, plums, 1)
	require.NoError(t, svc.DeleteProduct(ctx, plums[0].ID.String()))

	changed, err := svc.RecountCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	got, err := svc.GetCategory(ctx, fruits.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, got.ProductCount)

	changed, err = svc.RecountCategories(ctx)
	require.NoError(t, err)
	assert.Zero(t, changed)

	byCategory, total, err := svc.ProductsByCategory(ctx, fruits.ID.String(), nil, firstPage(t))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, byCategory, 2)

	color := "bg-blue-100"
	updated, err := svc.UpdateCategory(ctx, dairy.ID.String(), models.CategoryUpdate{Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "Dairy", updated.Name)
	assert.Equal(t, color, updated.Color)

	require.NoError(t, svc.DeleteCategory(ctx, dairy.ID.String()))
	list, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Fruits", list[0].Name)

	_, err = svc.GetCategory(ctx, dairy.ID.String())
	requireKind(t, err, apperr.KindNotFound)
}
