package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/grocery/internal/middleware"
	"github.com/example/grocery/internal/services"
)

const (
	successPath = "/order-confirmation?session_id={CHECKOUT_SESSION_ID}"
	cancelPath  = "/cart"
)

// PaymentHandler exposes hosted checkout and the caller's payment history.
type PaymentHandler struct {
	payments    *services.PaymentService
	frontendURL string
}

// NewPaymentHandler constructs PaymentHandler. An empty frontendURL makes
// redirect URLs relative to the incoming request's base URL.
func NewPaymentHandler(payments *services.PaymentService, frontendURL string) *PaymentHandler {
	return &PaymentHandler{payments: payments, frontendURL: strings.TrimRight(frontendURL, "/")}
}

// CreateCheckoutSession opens a hosted checkout page for the caller.
func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var req services.CheckoutInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	base := h.frontendURL
	if base == "" {
		base = c.BaseURL()
	}
	req.SuccessURL = base + successPath
	req.CancelURL = base + cancelPath

	result, err := h.payments.CreateCheckoutSession(c.UserContext(), user, req)
	if err != nil {
		return err
	}
	return ok(c, "Checkout session created successfully", result)
}

// CheckoutStatus reconciles a session with the provider and reports its state.
func (h *PaymentHandler) CheckoutStatus(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	status, err := h.payments.Reconcile(c.UserContext(), c.Params("session_id"), user)
	if err != nil {
		return err
	}
	return ok(c, "Checkout status retrieved successfully", status)
}

// ListTransactions returns the caller's latest payment transactions.
func (h *PaymentHandler) ListTransactions(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	txs, err := h.payments.ListTransactions(c.UserContext(), user)
	if err != nil {
		return err
	}
	return ok(c, "Transactions retrieved successfully", txs)
}

// GetTransaction returns one of the caller's transactions.
func (h *PaymentHandler) GetTransaction(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	tx, err := h.payments.GetTransaction(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, "Transaction retrieved successfully", tx)
}
