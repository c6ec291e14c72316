package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/services"
)

// CatalogHandler manages category endpoints.
type CatalogHandler struct {
	catalog *services.CatalogService
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListCategories returns every active category.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, "Categories retrieved successfully", categories)
}

// GetCategory returns a category by id.
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	category, err := h.catalog.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, "Category retrieved successfully", category)
}

// CreateCategory inserts a category.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req models.CategoryInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	category, err := h.catalog.CreateCategory(c.UserContext(), req)
	if err != nil {
		return err
	}
	return ok(c, "Category created successfully", category)
}

// UpdateCategory modifies a category.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var req models.CategoryUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}

	category, err := h.catalog.UpdateCategory(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return ok(c, "Category updated successfully", category)
}

// DeleteCategory deactivates a category.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return ok(c, "Category deleted successfully", nil)
}
