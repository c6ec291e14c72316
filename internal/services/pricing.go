package services

import "github.com/example/grocery/internal/models"

const (
	TaxRate               = 0.10
	FreeDeliveryThreshold = 50.0
	StandardDeliveryFee   = 5.99
)

// PriceOrder computes the order breakdown in float64, in this exact order of operations:
// subtotal = sum(price*quantity), tax = subtotal*TaxRate, delivery is free from the threshold up.
func PriceOrder(items []models.OrderItem) models.OrderTotals {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}

	tax := subtotal * TaxRate
	deliveryFee := 0.0
	if subtotal < FreeDeliveryThreshold {
		deliveryFee = StandardDeliveryFee
	}

	return models.OrderTotals{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: deliveryFee,
		Total:       subtotal + tax + deliveryFee,
	}
}
