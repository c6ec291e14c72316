package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/grocery/internal/middleware"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/services"
)

// OrderHandler manages the caller's orders.
type OrderHandler struct {
	orders *services.OrderService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrder places an order for the authenticated user.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var req services.CreateOrderInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	order, err := h.orders.CreateOrder(c.UserContext(), user, req)
	if err != nil {
		return err
	}
	return ok(c, "Order created successfully", order)
}

// ListOrders returns the authenticated user's orders.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	pg, err := pagination(c)
	if err != nil {
		return err
	}

	orders, total, err := h.orders.ListOrders(c.UserContext(), user, c.Query("status"), pg)
	if err != nil {
		return err
	}
	return paginated(c, "Orders retrieved successfully", orders, pg, total)
}

// GetOrder returns a single order owned by the user.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	order, err := h.orders.GetOrder(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, "Order retrieved successfully", order)
}

// UpdateOrder lets the owner edit the order notes.
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var req models.OrderUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}

	order, err := h.orders.UpdateOrder(c.UserContext(), user, c.Params("id"), req)
	if err != nil {
		return err
	}
	return ok(c, "Order updated successfully", order)
}

// CancelOrder cancels a pending order.
func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	if _, err := h.orders.CancelOrder(c.UserContext(), user, c.Params("id")); err != nil {
		return err
	}
	return ok(c, "Order cancelled successfully", nil)
}
