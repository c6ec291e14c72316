package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/grocery/internal/apperr"
	"github.com/example/grocery/internal/events"
	"github.com/example/grocery/internal/metrics"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/utils"
)

const (
	paymentSource         = "grocery_ecommerce"
	transactionListLimit  = 100
	providerStatusExpired = "expired"
	providerPaymentPaid   = "paid"
	providerPaymentFailed = "failed"
)

var minorUnitsPerMajor = decimal.NewFromInt(100)

// CheckoutRequest is what the provider needs to open a hosted checkout page.
// Either AmountMinor or PriceID is set.
type CheckoutRequest struct {
	AmountMinor int64
	Currency    string
	PriceID     string
	Quantity    int64
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// CheckoutSession identifies a session opened at the provider.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutStatus is the provider's view of a session.
type CheckoutStatus struct {
	SessionID     string            `json:"session_id"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

// CheckoutProvider is the external payment processor.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*CheckoutStatus, error)
}

// CheckoutInput is the client payload for opening a checkout session.
type CheckoutInput struct {
	Amount   *float64       `json:"amount"`
	Currency string         `json:"currency"`
	PriceID  string         `json:"stripe_price_id"`
	Quantity int64          `json:"quantity"`
	OrderID  string         `json:"order_id"`
	Metadata map[string]any `json:"metadata"`

	SuccessURL string `json:"-"`
	CancelURL  string `json:"-"`
}

// CheckoutResult is returned to the client after a session is opened.
type CheckoutResult struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// PaymentService bridges local payment transactions and the checkout provider.
type PaymentService struct {
	payments repository.PaymentRepository
	orders   repository.OrderRepository
	provider CheckoutProvider
	events   events.Publisher
	log      *slog.Logger
}

// NewPaymentService constructs PaymentService. A nil provider disables checkout and reconciliation.
func NewPaymentService(payments repository.PaymentRepository, orders repository.OrderRepository,
	provider CheckoutProvider, pub events.Publisher, log *slog.Logger) *PaymentService {
	return &PaymentService{payments: payments, orders: orders, provider: provider, events: pub, log: log}
}

// MapProviderStatus folds the provider's session and payment states into a local status.
func MapProviderStatus(status, paymentStatus string) models.PaymentStatus {
	switch {
	case paymentStatus == providerPaymentPaid:
		return models.PaymentStatusPaid
	case status == providerStatusExpired:
		return models.PaymentStatusExpired
	case paymentStatus == providerPaymentFailed:
		return models.PaymentStatusFailed
	default:
		return models.PaymentStatusPending
	}
}

// CreateCheckoutSession opens a provider session for user and records it as initiated.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, user *models.User, in CheckoutInput) (*CheckoutResult, error) {
	if s.provider == nil {
		return nil, apperr.ErrProviderDisabled
	}

	currency := strings.ToLower(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = models.DefaultCurrency
	}
	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, apperr.Validation("Quantity must be at least 1")
	}

	metadata := make(map[string]string, len(in.Metadata)+4)
	for k, v := range in.Metadata {
		metadata[k] = fmt.Sprint(v)
	}

	amount := in.Amount
	var orderID *uuid.UUID
	if in.OrderID != "" {
		order, err := s.ownedOrder(ctx, user, in.OrderID)
		if err != nil {
			return nil, err
		}
		orderID = &order.ID
		metadata["order_id"] = order.ID.String()
		if amount == nil && in.PriceID == "" {
			total := order.TotalPrice
			amount = &total
		}
	}

	req := CheckoutRequest{
		Currency:   currency,
		Quantity:   quantity,
		SuccessURL: in.SuccessURL,
		CancelURL:  in.CancelURL,
		Metadata:   metadata,
	}
	switch {
	case amount != nil:
		minor := decimal.NewFromFloat(*amount).Mul(minorUnitsPerMajor).Round(0).IntPart()
		if minor <= 0 {
			return nil, apperr.Validation("Amount must be positive")
		}
		req.AmountMinor = minor
	case in.PriceID != "":
		req.PriceID = in.PriceID
	default:
		return nil, apperr.Validation("Either amount or stripe_price_id must be provided")
	}

	metadata["user_id"] = user.ID.String()
	metadata["user_email"] = user.Email
	metadata["source"] = paymentSource

	session, err := s.provider.CreateSession(ctx, req)
	if err != nil {
		metrics.CheckoutSessions.WithLabelValues("failed").Inc()
		s.log.ErrorContext(ctx, "checkout session failed", "user_id", user.ID, "error", err)
		return nil, apperr.PaymentProvider(err)
	}

	tx := &models.PaymentTransaction{
		UserID:        &user.ID,
		OrderID:       orderID,
		SessionID:     session.ID,
		Currency:      currency,
		PaymentStatus: models.PaymentStatusInitiated,
		Metadata:      metadata,
	}
	if amount != nil {
		tx.Amount = *amount
	}
	if err := s.payments.Create(ctx, tx); err != nil {
		return nil, apperr.Upstream("Failed to store payment transaction", err)
	}

	metrics.CheckoutSessions.WithLabelValues("created").Inc()
	s.log.InfoContext(ctx, "checkout session created", "session_id", session.ID, "user_id", user.ID)
	return &CheckoutResult{URL: session.URL, SessionID: session.ID}, nil
}

// Reconcile refreshes the caller's transaction for sessionID from the provider.
// The stored record changes only when the mapped status differs and is not already terminal.
func (s *PaymentService) Reconcile(ctx context.Context, sessionID string, user *models.User) (*CheckoutStatus, error) {
	if s.provider == nil {
		return nil, apperr.ErrProviderDisabled
	}

	tx, err := s.payments.FindBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ErrTransactionNotFound
		}
		return nil, apperr.Upstream("Failed to load payment transaction", err)
	}
	if !ownedBy(tx, user) {
		return nil, apperr.ErrTransactionNotFound
	}

	status, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		s.log.ErrorContext(ctx, "checkout status failed", "session_id", sessionID, "error", err)
		return nil, apperr.PaymentProvider(err)
	}
	status.SessionID = sessionID

	next := MapProviderStatus(status.Status, status.PaymentStatus)
	if next == tx.PaymentStatus || tx.PaymentStatus.Terminal() {
		return status, nil
	}

	previous := tx.PaymentStatus
	tx.PaymentStatus = next
	tx.Amount = decimal.NewFromInt(status.AmountTotal).Div(minorUnitsPerMajor).InexactFloat64()
	if status.Currency != "" {
		tx.Currency = status.Currency
	}
	if err := s.payments.Update(ctx, tx); err != nil {
		return nil, apperr.Upstream("Failed to update payment transaction", err)
	}

	metrics.PaymentsReconciled.WithLabelValues(string(next)).Inc()
	s.log.InfoContext(ctx, "payment status changed", "session_id", sessionID, "from", previous, "to", next)
	events.Emit(ctx, s.events, s.log, events.PaymentPrefix+string(next), tx)
	return status, nil
}

// ListTransactions returns the caller's latest transactions, newest first.
func (s *PaymentService) ListTransactions(ctx context.Context, user *models.User) ([]models.PaymentTransaction, error) {
	txs, err := s.payments.ListForUser(ctx, user.ID, transactionListLimit)
	if err != nil {
		return nil, apperr.Upstream("Failed to get transactions", err)
	}
	return txs, nil
}

// GetTransaction returns one of the caller's transactions.
func (s *PaymentService) GetTransaction(ctx context.Context, user *models.User, id string) (*models.PaymentTransaction, error) {
	txID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("Transaction")
	}
	tx, err := s.payments.FindByID(ctx, txID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Transaction")
		}
		return nil, apperr.Upstream("Failed to get transaction", err)
	}
	if !ownedBy(tx, user) {
		return nil, apperr.NotFound("Transaction")
	}
	return tx, nil
}

// ListAllTransactions is the administrative listing across users.
func (s *PaymentService) ListAllTransactions(ctx context.Context, pg utils.Pagination) ([]models.PaymentTransaction, int64, error) {
	txs, total, err := s.payments.List(ctx, pg)
	if err != nil {
		return nil, 0, apperr.Upstream("Failed to get payments", err)
	}
	return txs, total, nil
}

func (s *PaymentService) ownedOrder(ctx context.Context, user *models.User, id string) (*models.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("Invalid order_id")
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Order")
		}
		return nil, apperr.Upstream("Failed to load order", err)
	}
	if order.UserID != user.ID {
		return nil, apperr.NotFound("Order")
	}
	return order, nil
}

func ownedBy(tx *models.PaymentTransaction, user *models.User) bool {
	return tx.UserID != nil && *tx.UserID == user.ID
}
