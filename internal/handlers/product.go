package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/grocery/internal/apperr"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/services"
	"github.com/example/grocery/internal/utils"
)

// ProductHandler manages product endpoints.
type ProductHandler struct {
	catalog *services.CatalogService
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// RegisterProductRoutes mounts the public product routes and the admin mutations.
func (h *ProductHandler) RegisterProductRoutes(router fiber.Router, admin ...fiber.Handler) {
	router.Get("/", h.ListProducts)
	router.Get("/category/:category_id", h.ListByCategory)
	router.Get("/:id", h.GetProduct)

	router.Post("/", guarded(admin, h.CreateProduct)...)
	router.Put("/:id", guarded(admin, h.UpdateProduct)...)
	router.Delete("/:id", guarded(admin, h.DeleteProduct)...)
}

func guarded(guards []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	chain := make([]fiber.Handler, 0, len(guards)+1)
	chain = append(chain, guards...)
	return append(chain, handler)
}

// ListProducts returns paginated active products with optional filters.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg, err := pagination(c)
	if err != nil {
		return err
	}

	inStock, err := utils.ParseOptionalBool(c.Query("in_stock"))
	if err != nil {
		return apperr.Validation("in_stock must be a boolean")
	}

	products, total, err := h.catalog.ListProducts(c.UserContext(), services.ProductQuery{
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
		InStock:  inStock,
	}, pg)
	if err != nil {
		return err
	}

	return paginated(c, "Products retrieved successfully", products, pg, total)
}

// ListByCategory returns the active products of one category.
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	pg, err := pagination(c)
	if err != nil {
		return err
	}

	inStock, err := utils.ParseOptionalBool(c.Query("in_stock"))
	if err != nil {
		return apperr.Validation("in_stock must be a boolean")
	}

	products, total, err := h.catalog.ProductsByCategory(c.UserContext(), c.Params("category_id"), inStock, pg)
	if err != nil {
		return err
	}

	return paginated(c, "Products retrieved successfully", products, pg, total)
}

// GetProduct loads one active product.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.catalog.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, "Product retrieved successfully", product)
}

// CreateProduct adds a product to the catalog.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req models.ProductInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	product, err := h.catalog.CreateProduct(c.UserContext(), req)
	if err != nil {
		return err
	}
	return ok(c, "Product created successfully", product)
}

// UpdateProduct applies a partial update.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var req models.ProductUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}

	product, err := h.catalog.UpdateProduct(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return ok(c, "Product updated successfully", product)
}

// DeleteProduct hides a product from the catalog.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return ok(c, "Product deleted successfully", nil)
}
