package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/grocery/internal/apperr"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/services"
	"github.com/example/grocery/internal/utils"
)

// AdminHandler manages admin-only endpoints.
type AdminHandler struct {
	admin    *services.AdminService
	orders   *services.OrderService
	catalog  *services.CatalogService
	payments *services.PaymentService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(admin *services.AdminService, orders *services.OrderService,
	catalog *services.CatalogService, payments *services.PaymentService) *AdminHandler {
	return &AdminHandler{admin: admin, orders: orders, catalog: catalog, payments: payments}
}

// Dashboard returns aggregate statistics for the admin dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.admin.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, "Dashboard data retrieved successfully", dashboard)
}

// ListOrders pages through every order, optionally filtered by status or user.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	pg, err := pagination(c)
	if err != nil {
		return err
	}

	orders, total, err := h.orders.ListAllOrders(c.UserContext(), c.Query("status"), c.Query("user_id"), pg)
	if err != nil {
		return err
	}
	return paginated(c, "Orders retrieved successfully", orders, pg, total)
}

// UpdateOrder sets any order's status or notes.
func (h *AdminHandler) UpdateOrder(c *fiber.Ctx) error {
	var req models.OrderUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}

	order, err := h.orders.SetOrderStatus(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return ok(c, "Order updated successfully", order)
}

// ListUsers pages through active users, optionally filtered by role.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	pg, err := pagination(c)
	if err != nil {
		return err
	}

	users, total, err := h.admin.ListUsers(c.UserContext(), c.Query("role"), pg)
	if err != nil {
		return err
	}
	return paginated(c, "Users retrieved successfully", users, pg, total)
}

// ListProducts pages through the catalog, including hidden products on request.
func (h *AdminHandler) ListProducts(c *fiber.Ctx) error {
	pg, err := pagination(c)
	if err != nil {
		return err
	}

	includeInactive, err := utils.ParseOptionalBool(c.Query("include_inactive"))
	if err != nil {
		return apperr.Validation("include_inactive must be a boolean")
	}

	products, total, err := h.catalog.AdminListProducts(c.UserContext(), includeInactive != nil && *includeInactive, pg)
	if err != nil {
		return err
	}
	return paginated(c, "Products retrieved successfully", products, pg, total)
}

// ListPayments pages through every payment transaction.
func (h *AdminHandler) ListPayments(c *fiber.Ctx) error {
	pg, err := pagination(c)
	if err != nil {
		return err
	}

	txs, total, err := h.payments.ListAllTransactions(c.UserContext(), pg)
	if err != nil {
		return err
	}
	return paginated(c, "Payment transactions retrieved successfully", txs, pg, total)
}
