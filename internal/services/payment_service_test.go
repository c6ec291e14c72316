package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/grocery/internal/apperr"
	"github.com/example/grocery/internal/events"
	"github.com/example/grocery/internal/events/eventstest"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/repository"
)

type paymentFixture struct {
	svc      *PaymentService
	orders   *OrderService
	provider *fakeProvider
	store    *repository.Store
	events   *eventstest.Recorder
	ann, bob *models.User
}

func newPayments(t *testing.T) *paymentFixture {
	store := newTestStore(t)
	rec := &eventstest.Recorder{}
	provider := &fakeProvider{}
	return &paymentFixture{
		svc:      NewPaymentService(store.Payments, store.Orders, provider, rec, discard),
		orders:   NewOrderService(store.Orders, events.Noop{}, discard),
		provider: provider,
		store:    store,
		events:   rec,
		ann:      createUser(t, store, "ann@example.com", models.RoleCustomer),
		bob:      createUser(t, store, "bob@example.com", models.RoleCustomer),
	}
}

func amount(v float64) *float64 { return &v }

func TestMapProviderStatus(t *testing.T) {
	tests := []struct {
		status, payment string
		want            models.PaymentStatus
	}{
		{"complete", "paid", models.PaymentStatusPaid},
		{"expired", "paid", models.PaymentStatusPaid},
		{"expired", "unpaid", models.PaymentStatusExpired},
		{"open", "failed", models.PaymentStatusFailed},
		{"open", "unpaid", models.PaymentStatusPending},
		{"", "", models.PaymentStatusPending},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapProviderStatus(tt.status, tt.payment), "%s/%s", tt.status, tt.payment)
	}
}

func TestCheckoutDisabledWithoutProvider(t *testing.T) {
	store := newTestStore(t)
	svc := NewPaymentService(store.Payments, store.Orders, nil, events.Noop{}, discard)
	user := &models.User{Email: "ann@example.com"}

	_, err := svc.CreateCheckoutSession(context.Background(), user, CheckoutInput{Amount: amount(10)})
	assert.ErrorIs(t, err, apperr.ErrProviderDisabled)
	assert.Equal(t, 500, apperr.HTTPStatus(apperr.KindOf(err)))

	_, err = svc.Reconcile(context.Background(), "cs_1", user)
	assert.ErrorIs(t, err, apperr.ErrProviderDisabled)
}

func TestCreateCheckoutSessionWithAmount(t *testing.T) {
	ctx := context.Background()
	f := newPayments(t)

	res, err := f.svc.CreateCheckoutSession(ctx, f.ann, CheckoutInput{
		Amount:     amount(19.99),
		Currency:   "USD",
		Metadata:   map[string]any{"cart": 3, "user_id": "spoofed"},
		SuccessURL: "https://shop.example/order-confirmation?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "https://shop.example/cart",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_a", res.SessionID)
	assert.Equal(t, "https://checkout.example/cs_test_a", res.URL)

	require.Len(t, f.provider.created, 1)
	req := f.provider.created[0]
	assert.Equal(t, int64(1999), req.AmountMinor)
	assert.Equal(t, "usd", req.Currency)
	assert.Equal(t, "3", req.Metadata["cart"])
	assert.Equal(t, f.ann.ID.String(), req.Metadata["user_id"])
	assert.Equal(t, "ann@example.com", req.Metadata["user_email"])
	assert.Equal(t, "grocery_ecommerce", req.Metadata["source"])
	assert.Equal(t, "https://shop.example/cart", req.CancelURL)

	tx, err := f.store.Payments.FindBySession(ctx, "cs_test_a")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusInitiated, tx.PaymentStatus)
	assert.Equal(t, 19.99, tx.Amount)
	assert.Equal(t, "usd", tx.Currency)
	assert.Equal(t, f.ann.ID, *tx.UserID)
}

func TestCreateCheckoutSessionVariants(t *testing.T) {
	ctx := context.Background()
	f := newPayments(t)

	_, err := f.svc.CreateCheckoutSession(ctx, f.ann, CheckoutInput{})
	requireKind(t, err, apperr.KindValidation)
	_, err = f.svc.CreateCheckoutSession(ctx, f.ann, CheckoutInput{Amount: amount(0)})
	requireKind(t, err, apperr.KindValidation)

	_, err = f.svc.CreateCheckoutSession(ctx, f.ann, CheckoutInput{PriceID: "price_123", Quantity: 2})
	require.NoError(t, err)
	req := f.provider.created[0]
	assert.Equal(t, "price_123", req.PriceID)
	assert.Equal(t, int64(2), req.Quantity)
	assert.Zero(t, req.AmountMinor)

	tx, err := f.store.Payments.FindBySession(ctx, "cs_test_a")
	require.NoError(t, err)
	assert.Zero(t, tx.Amount)

	order, err := f.orders.CreateOrder(ctx, f.ann, CreateOrderInput{Items: []models.OrderItem{{ProductID: "p1", Price: 10, Quantity: 2}}})
	require.NoError(t, err)

	_, err = f.svc.CreateCheckoutSession(ctx, f.bob, CheckoutInput{OrderID: order.ID.String()})
	requireKind(t, err, apperr.KindNotFound)

	_, err = f.svc.CreateCheckoutSession(ctx, f.ann, CheckoutInput{OrderID: order.ID.String()})
	require.NoError(t, err)
	req = f.provider.created[1]
	assert.Equal(t, int64(2799), req.AmountMinor)
	assert.Equal(t, order.ID.String(), req.Metadata["order_id"])

	tx, err = f.store.Payments.FindBySession(ctx, "cs_test_b")
	require.NoError(t, err)
	require.NotNil(t, tx.OrderID)
	assert.Equal(t, order.ID, *tx.OrderID)
	assert.Equal(t, order.TotalPrice, tx.Amount)
}

func TestCreateCheckoutSessionProviderFailure(t *testing.T) {
	f := newPayments(t)
	f.provider.createErr = errProviderDown

	_, err := f.svc.CreateCheckoutSession(context.Background(), f.ann, CheckoutInput{Amount: amount(5)})
	requireKind(t, err, apperr.KindUpstream)
	assert.ErrorIs(t, err, errProviderDown)

	_, total, err := f.store.Payments.List(context.Background(), firstPage(t))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	f := newPayments(t)

	_, err := f.svc.CreateCheckoutSession(ctx, f.ann, CheckoutInput{Amount: amount(12.5)})
	require.NoError(t, err)

	_, err = f.svc.Reconcile(ctx, "cs_test_a", f.bob)
	assert.ErrorIs(t, err, apperr.ErrTransactionNotFound)
	_, err = f.svc.Reconcile(ctx, "cs_missing", f.ann)
	assert.ErrorIs(t, err, apperr.ErrTransactionNotFound)
	assert.Zero(t, f.provider.gets, "provider is not called for unknown sessions")

	f.provider.status = CheckoutStatus{Status: "open", PaymentStatus: "unpaid", AmountTotal: 1250, Currency: "usd"}
	st, err := f.svc.Reconcile(ctx, "cs_test_a", f.ann)
	require.NoError(t, err)
	assert.Equal(t, "cs_test_a", st.SessionID)
	tx, err := f.store.Payments.FindBySession(ctx, "cs_test_a")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, tx.PaymentStatus)
	pendingSince := tx.UpdatedAt

	st, err = f.svc.Reconcile(ctx, "cs_test_a", f.ann)
	require.NoError(t, err)
	tx, err = f.store.Payments.FindBySession(ctx, "cs_test_a")
	require.NoError(t, err)
	assert.True(t, pendingSince.Equal(tx.UpdatedAt), "unchanged status does not write")

	f.provider.status = CheckoutStatus{Status: "complete", PaymentStatus: "paid", AmountTotal: 1299, Currency: "eur"}
	st, err = f.svc.Reconcile(ctx, "cs_test_a", f.ann)
	require.NoError(t, err)
	assert.Equal(t, "paid", st.PaymentStatus)
	assert.Equal(t, int64(1299), st.AmountTotal)

	tx, err = f.store.Payments.FindBySession(ctx, "cs_test_a")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, tx.PaymentStatus)
	assert.Equal(t, 12.99, tx.Amount)
	assert.Equal(t, "eur", tx.Currency)

	f.provider.status = CheckoutStatus{Status: "expired", PaymentStatus: "unpaid", AmountTotal: 0}
	_, err = f.svc.Reconcile(ctx, "cs_test_a", f.ann)
	require.NoError(t, err)
	tx, err = f.store.Payments.FindBySession(ctx, "cs_test_a")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, tx.PaymentStatus, "terminal status never reverts")
	assert.Equal(t, 12.99, tx.Amount)

	assert.Equal(t, []string{"payment.pending", "payment.paid"}, f.events.Keys())

	f.provider.getErr = errProviderDown
	_, err = f.svc.Reconcile(ctx, "cs_test_a", f.ann)
	requireKind(t, err, apperr.KindUpstream)
}

func TestTransactions(t *testing.T) {
	ctx := context.Background()
	f := newPayments(t)

	_, err := f.svc.CreateCheckoutSession(ctx, f.ann, CheckoutInput{Amount: amount(1)})
	require.NoError(t, err)
	_, err = f.svc.CreateCheckoutSession(ctx, f.bob, CheckoutInput{Amount: amount(2)})
	require.NoError(t, err)

	mine, err := f.svc.ListTransactions(ctx, f.ann)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	got, err := f.svc.GetTransaction(ctx, f.ann, mine[0].ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Amount)

	_, err = f.svc.GetTransaction(ctx, f.bob, mine[0].ID.String())
	requireKind(t, err, apperr.KindNotFound)
	_, err = f.svc.GetTransaction(ctx, f.ann, "bad")
	requireKind(t, err, apperr.KindNotFound)

	all, total, err := f.svc.ListAllTransactions(ctx, firstPage(t))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}
