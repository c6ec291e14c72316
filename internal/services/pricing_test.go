package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/grocery/internal/models"
)

func TestPriceOrder(t *testing.T) {
	tests := []struct {
		name  string
		items []models.OrderItem
		want  models.OrderTotals
	}{
		{
			name:  "empty cart still pays delivery",
			items: nil,
			want:  models.OrderTotals{Subtotal: 0, Tax: 0, DeliveryFee: 5.99, Total: 5.99},
		},
		{
			name:  "below free delivery threshold",
			items: []models.OrderItem{{Price: 4.99, Quantity: 3}, {Price: 4.29, Quantity: 1}},
			want: func() models.OrderTotals {
				subtotal := 0.0
				subtotal += 4.99 * 3
				subtotal += 4.29 * 1
				tax := subtotal * 0.10
				return models.OrderTotals{Subtotal: subtotal, Tax: tax, DeliveryFee: 5.99, Total: subtotal + tax + 5.99}
			}(),
		},
		{
			name:  "exactly at threshold is free",
			items: []models.OrderItem{{Price: 25, Quantity: 2}},
			want:  models.OrderTotals{Subtotal: 50, Tax: 5, DeliveryFee: 0, Total: 55},
		},
		{
			name:  "just under threshold",
			items: []models.OrderItem{{Price: 49.99, Quantity: 1}},
			want: func() models.OrderTotals {
				subtotal, rate := 49.99, 0.10
				tax := subtotal * rate
				return models.OrderTotals{Subtotal: subtotal, Tax: tax, DeliveryFee: 5.99, Total: subtotal + tax + 5.99}
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceOrder(tt.items)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Subtotal+got.Tax+got.DeliveryFee, got.Total)
		})
	}
}

func TestPriceOrderTaxIsTenPercent(t *testing.T) {
	for _, price := range []float64{0.01, 0.99, 4.99, 12.34, 49.99, 50, 99.99, 1234.56} {
		for _, quantity := range []int{1, 3, 7} {
			got := PriceOrder([]models.OrderItem{{Price: price, Quantity: quantity}})
			assert.Equal(t, math.Round(got.Subtotal*10), math.Round(got.Tax*100), "price %v x %d", price, quantity)
		}
	}
}
