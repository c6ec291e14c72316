package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/grocery/internal/apperr"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/utils"
)

const placeholderImage = "/placeholder.svg?height=300&width=300"

// SeedResult reports what a seeding run inserted.
type SeedResult struct {
	Categories int  `json:"categories"`
	Products   int  `json:"products"`
	Admin      bool `json:"admin"`
}

// Seeder loads the starter catalog and the administrator account.
// Running it again never duplicates data.
type Seeder struct {
	store   *repository.Store
	catalog *CatalogService
	log     *slog.Logger
}

func NewSeeder(store *repository.Store, catalog *CatalogService, log *slog.Logger) *Seeder {
	return &Seeder{store: store, catalog: catalog, log: log}
}

// Seed inserts the starter catalog when no category exists yet and creates the admin
// account when adminEmail is unknown. An empty adminPassword skips the admin.
func (s *Seeder) Seed(ctx context.Context, adminEmail, adminPassword string) (SeedResult, error) {
	var res SeedResult

	existing, err := s.store.Categories.List(ctx, true)
	if err != nil {
		return res, apperr.Upstream("Failed to get categories", err)
	}
	if len(existing) == 0 {
		if err := s.seedCatalog(ctx, &res); err != nil {
			return res, err
		}
	}

	created, err := s.seedAdmin(ctx, adminEmail, adminPassword)
	if err != nil {
		return res, err
	}
	res.Admin = created

	if _, err := s.catalog.RecountCategories(ctx); err != nil {
		return res, err
	}

	s.log.InfoContext(ctx, "seed complete", "categories", res.Categories, "products", res.Products, "admin", res.Admin)
	return res, nil
}

func (s *Seeder) seedCatalog(ctx context.Context, res *SeedResult) error {
	ids := make(map[string]*models.Category, len(seedCategories))
	for _, in := range seedCategories {
		category, err := s.catalog.CreateCategory(ctx, in)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", in.Name, err)
		}
		ids[category.Name] = category
		res.Categories++
	}

	for _, in := range seedProducts() {
		if category, ok := ids[in.Category]; ok {
			in.CategoryID = category.ID.String()
		}
		product, err := s.catalog.CreateProduct(ctx, in.ProductInput)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", in.Name, err)
		}
		product.Rating = in.rating
		product.ReviewCount = in.reviews
		if err := s.catalog.saveProduct(ctx, product); err != nil {
			return err
		}
		res.Products++
	}
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		s.log.WarnContext(ctx, "admin account not seeded: ADMIN_EMAIL or ADMIN_PASSWORD empty")
		return false, nil
	}

	_, err := s.store.Users.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, apperr.Upstream("Failed to load user", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	admin := &models.User{
		Name:         "Admin User",
		Email:        email,
		Phone:        "+1234567890",
		Role:         models.RoleAdmin,
		Preferences:  models.DefaultPreferences(),
		PasswordHash: hash,
		IsVerified:   true,
		IsActive:     true,
	}
	if err := s.store.Users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, apperr.Upstream("Failed to create admin", err)
	}
	return true, nil
}

var seedCategories = []models.CategoryInput{
	{Name: "Fruits", Icon: "🍎", Color: "bg-red-100 text-red-800", Description: "Fresh, organic fruits"},
	{Name: "Vegetables", Icon: "🥕", Color: "bg-orange-100 text-orange-800", Description: "Farm-fresh vegetables"},
	{Name: "Dairy", Icon: "🥛", Color: "bg-blue-100 text-blue-800", Description: "Fresh dairy products"},
	{Name: "Meat", Icon: "🥩", Color: "bg-red-100 text-red-800", Description: "Premium quality meat"},
	{Name: "Bakery", Icon: "🍞", Color: "bg-yellow-100 text-yellow-800", Description: "Fresh baked goods"},
	{Name: "Beverages", Icon: "🥤", Color: "bg-purple-100 text-purple-800", Description: "Refreshing drinks"},
}

type seedProduct struct {
	models.ProductInput
	rating  float64
	reviews int
}

func seedProducts() []seedProduct {
	price := func(v float64) *float64 { return &v }
	images := func() []string { return []string{placeholderImage} }

	return []seedProduct{
		{ProductInput: models.ProductInput{
			Name: "Fresh Organic Apples", Price: 4.99, OriginalPrice: price(6.99),
			Image: placeholderImage, Images: images(), Category: "Fruits", Brand: "Organic Farm", StockCount: 24,
			Description: "Premium quality organic apples sourced directly from certified organic farms.",
			Features:    []string{"100% Organic certified", "Locally sourced", "No pesticides"},
			NutritionFacts: models.NutritionFacts{Calories: 95, Carbs: "25g", Fiber: "4g", Sugar: "19g", Protein: "0.5g", Fat: "0.3g"},
			Tags:           []string{"organic", "fresh", "healthy"},
			Weight:         "1 lb", Origin: "Local Farm", SKU: "APPLE-ORG-001",
		}, rating: 4.5, reviews: 128},
		{ProductInput: models.ProductInput{
			Name: "Premium Avocados", Price: 3.49, OriginalPrice: price(4.99),
			Image: placeholderImage, Images: images(), Category: "Fruits", Brand: "Fresh Valley", StockCount: 18,
			Description: "Perfectly ripe avocados with creamy texture and rich flavor.",
			Features:    []string{"Hand-picked for ripeness", "Rich in healthy fats"},
			NutritionFacts: models.NutritionFacts{Calories: 234, Carbs: "12g", Fiber: "10g", Sugar: "1g", Protein: "3g", Fat: "21g"},
			Tags:           []string{"healthy fats", "fresh"},
			Weight:         "Each", Origin: "California", SKU: "AVOC-PREM-002",
		}, rating: 4.8, reviews: 89},
		{ProductInput: models.ProductInput{
			Name: "Organic Baby Spinach", Price: 2.99, OriginalPrice: price(3.99),
			Image: placeholderImage, Images: images(), Category: "Vegetables", Brand: "Green Fields", StockCount: 32,
			Description: "Tender, fresh organic baby spinach leaves.",
			Features:    []string{"Organic certified", "Pre-washed", "High in iron"},
			NutritionFacts: models.NutritionFacts{Calories: 23, Carbs: "4g", Fiber: "2g", Sugar: "0g", Protein: "3g", Fat: "0g"},
			Tags:           []string{"organic", "leafy greens"},
			Weight:         "5 oz", Origin: "Local Farm", SKU: "SPIN-ORG-003",
		}, rating: 4.3, reviews: 67},
		{ProductInput: models.ProductInput{
			Name: "Organic Whole Milk", Price: 4.29, OriginalPrice: price(4.99),
			Image: placeholderImage, Images: images(), Category: "Dairy", Brand: "Happy Cows", StockCount: 45,
			Description: "Fresh organic whole milk from grass-fed cows.",
			Features:    []string{"From grass-fed cows", "No rBST hormones"},
			NutritionFacts: models.NutritionFacts{Calories: 150, Carbs: "12g", Fiber: "0g", Sugar: "12g", Protein: "8g", Fat: "8g"},
			Tags:           []string{"organic", "grass-fed"},
			Weight:         "1 gallon", Origin: "Local Dairy", SKU: "MILK-ORG-004",
		}, rating: 4.4, reviews: 203},
		{ProductInput: models.ProductInput{
			Name: "Artisan Sourdough Bread", Price: 5.49, OriginalPrice: price(6.99),
			Image: placeholderImage, Images: images(), Category: "Bakery", Brand: "Local Bakery", StockCount: 12,
			Description: "Handcrafted sourdough bread with crispy crust.",
			Features:    []string{"Traditional starter", "Hand-shaped"},
			NutritionFacts: models.NutritionFacts{Calories: 120, Carbs: "23g", Fiber: "1g", Sugar: "1g", Protein: "4g", Fat: "1g"},
			Tags:           []string{"artisan", "sourdough"},
			Weight:         "1.5 lb", Origin: "Local Bakery", SKU: "BREAD-ART-005",
		}, rating: 4.6, reviews: 94},
		{ProductInput: models.ProductInput{
			Name: "Fresh Orange Juice", Price: 4.99, OriginalPrice: price(5.99),
			Image: placeholderImage, Images: images(), Category: "Beverages", Brand: "Citrus Fresh", StockCount: 34,
			Description: "Freshly squeezed orange juice, no pulp.",
			Features:    []string{"Freshly squeezed", "No pulp"},
			NutritionFacts: models.NutritionFacts{Calories: 112, Carbs: "26g", Fiber: "0g", Sugar: "21g", Protein: "2g", Fat: "0.5g"},
			Tags:           []string{"fresh", "vitamin C"},
			Weight:         "64 oz", Origin: "Florida", SKU: "JUICE-ORG-006",
		}, rating: 4.5, reviews: 167},
	}
}
