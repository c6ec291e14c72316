package services

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
)

const defaultLineItemName = "Grocery order"

// StripeProvider opens and inspects Stripe Checkout sessions.
type StripeProvider struct {
	client session.Client
}

// NewStripeProvider returns a provider authenticated with secretKey.
func NewStripeProvider(secretKey string) *StripeProvider {
	return newStripeProvider(secretKey, stripe.GetBackend(stripe.APIBackend))
}

func newStripeProvider(secretKey string, backend stripe.Backend) *StripeProvider {
	return &StripeProvider{client: session.Client{B: backend, Key: secretKey}}
}

func (p *StripeProvider) CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx

	if req.PriceID != "" {
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(req.PriceID),
			Quantity: stripe.Int64(req.Quantity),
		}}
	} else {
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(req.Currency),
				UnitAmount: stripe.Int64(req.AmountMinor),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(defaultLineItemName),
				},
			},
			Quantity: stripe.Int64(1),
		}}
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := p.client.New(params)
	if err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (p *StripeProvider) GetSession(ctx context.Context, sessionID string) (*CheckoutStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := p.client.Get(sessionID, params)
	if err != nil {
		return nil, err
	}
	return &CheckoutStatus{
		SessionID:     s.ID,
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		Metadata:      s.Metadata,
	}, nil
}
