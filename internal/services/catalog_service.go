package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/example/grocery/internal/apperr"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/utils"
)

// ProductQuery holds the public product list filters.
type ProductQuery struct {
	Category string
	Search   string
	InStock  *bool
}

// CatalogService manages products and categories.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	log        *slog.Logger
}

// NewCatalogService constructs CatalogService.
func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository, log *slog.Logger) *CatalogService {
	return &CatalogService{products: products, categories: categories, log: log}
}

// ListProducts pages through active products.
func (s *CatalogService) ListProducts(ctx context.Context, q ProductQuery, pg utils.Pagination) ([]models.Product, int64, error) {
	filter := repository.ProductFilter{
		Category: strings.TrimSpace(q.Category),
		Search:   q.Search,
		InStock:  q.InStock,
	}
	return s.listProducts(ctx, filter, pg)
}

// ProductsByCategory pages through the active products of one category,
// optionally only those with the given in_stock flag.
func (s *CatalogService) ProductsByCategory(ctx context.Context, categoryID string, inStock *bool, pg utils.Pagination) ([]models.Product, int64, error) {
	id, err := uuid.Parse(categoryID)
	if err != nil {
		return []models.Product{}, 0, nil
	}
	return s.listProducts(ctx, repository.ProductFilter{CategoryID: &id, InStock: inStock}, pg)
}

// AdminListProducts lists products newest first, optionally including soft-deleted ones.
func (s *CatalogService) AdminListProducts(ctx context.Context, includeInactive bool, pg utils.Pagination) ([]models.Product, int64, error) {
	return s.listProducts(ctx, repository.ProductFilter{IncludeInactive: includeInactive, NewestFirst: true}, pg)
}

func (s *CatalogService) listProducts(ctx context.Context, filter repository.ProductFilter, pg utils.Pagination) ([]models.Product, int64, error) {
	products, total, err := s.products.List(ctx, filter, pg)
	if err != nil {
		return nil, 0, apperr.Upstream("Failed to get products", err)
	}
	return products, total, nil
}

// GetProduct returns an active product.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("Product")
	}
	return s.findProduct(ctx, productID)
}

// CreateProduct validates in and stores it as an active product.
func (s *CatalogService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("Product name is required")
	}
	if err := validatePricing(&in.Price, in.OriginalPrice, &in.StockCount); err != nil {
		return nil, err
	}

	var categoryID uuid.UUID
	if in.CategoryID != "" {
		id, err := uuid.Parse(in.CategoryID)
		if err != nil {
			return nil, apperr.Validation("Invalid category_id")
		}
		categoryID = id
	}

	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}

	product := &models.Product{
		Name:           name,
		Price:          in.Price,
		OriginalPrice:  in.OriginalPrice,
		Image:          in.Image,
		Images:         nonNil(in.Images),
		Category:       strings.TrimSpace(in.Category),
		CategoryID:     categoryID,
		Brand:          in.Brand,
		InStock:        inStock,
		StockCount:     in.StockCount,
		Description:    in.Description,
		Features:       nonNil(in.Features),
		NutritionFacts: in.NutritionFacts,
		Tags:           nonNil(in.Tags),
		Weight:         in.Weight,
		Origin:         in.Origin,
		SKU:            in.SKU,
		IsActive:       true,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperr.Upstream("Failed to create product", err)
	}
	s.log.InfoContext(ctx, "product created", "product_id", product.ID, "sku", product.SKU)
	return product, nil
}

// UpdateProduct merges upd into an active product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, apperr.Validation("Product name cannot be empty")
	}
	if err := validatePricing(upd.Price, upd.OriginalPrice, upd.StockCount); err != nil {
		return nil, err
	}

	if !upd.Apply(product) {
		return product, nil
	}
	if err := s.saveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft-deletes an active product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	product.IsActive = false
	if err := s.saveProduct(ctx, product); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "product deleted", "product_id", product.ID)
	return nil
}

// ListCategories returns every active category.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx, false)
	if err != nil {
		return nil, apperr.Upstream("Failed to get categories", err)
	}
	return categories, nil
}

// GetCategory returns an active category.
func (s *CatalogService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("Category")
	}
	category, err := s.categories.FindByID(ctx, categoryID, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Category")
		}
		return nil, apperr.Upstream("Failed to get category", err)
	}
	return category, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("Category name is required")
	}

	category := &models.Category{
		Name:        name,
		Icon:        in.Icon,
		Color:       in.Color,
		Description: in.Description,
		IsActive:    true,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperr.Upstream("Failed to create category", err)
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, upd models.CategoryUpdate) (*models.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, apperr.Validation("Category name cannot be empty")
	}

	if !upd.Apply(category) {
		return category, nil
	}
	if err := s.saveCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory soft-deletes an active category. Its products are left untouched.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	category.IsActive = false
	return s.saveCategory(ctx, category)
}

// RecountCategories refreshes every category's product_count from its active
// products and returns how many categories changed.
func (s *CatalogService) RecountCategories(ctx context.Context) (int, error) {
	categories, err := s.categories.List(ctx, true)
	if err != nil {
		return 0, apperr.Upstream("Failed to get categories", err)
	}

	changed := 0
	for i := range categories {
		category := &categories[i]
		count, err := s.products.Count(ctx, repository.ProductFilter{CategoryID: &category.ID})
		if err != nil {
			return changed, apperr.Upstream("Failed to count products", err)
		}
		if int(count) == category.ProductCount {
			continue
		}
		category.ProductCount = int(count)
		if err := s.saveCategory(ctx, category); err != nil {
			return changed, err
		}
		changed++
	}

	s.log.InfoContext(ctx, "categories recounted", "categories", len(categories), "changed", changed)
	return changed, nil
}

func (s *CatalogService) findProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Product")
		}
		return nil, apperr.Upstream("Failed to get product", err)
	}
	return product, nil
}

func (s *CatalogService) saveProduct(ctx context.Context, product *models.Product) error {
	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Product")
		}
		return apperr.Upstream("Failed to update product", err)
	}
	return nil
}

func (s *CatalogService) saveCategory(ctx context.Context, category *models.Category) error {
	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Category")
		}
		return apperr.Upstream("Failed to update category", err)
	}
	return nil
}

func validatePricing(price, originalPrice *float64, stock *int) error {
	if price != nil && *price < 0 {
		return apperr.Validation("Price cannot be negative")
	}
	if originalPrice != nil && *originalPrice < 0 {
		return apperr.Validation("Original price cannot be negative")
	}
	if stock != nil && *stock < 0 {
		return apperr.Validation("Stock count cannot be negative")
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
