package models

import "github.com/google/uuid"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further lifecycle step follows s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// DefaultDeliveryOption is used when the client does not choose one.
const DefaultDeliveryOption = "standard"

// OrderItem is a snapshot of a product line captured when the order is placed.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-" bson:"-"`
	OrderID   uuid.UUID `gorm:"type:uuid;index" json:"-" bson:"-"`
	Position  int       `json:"-" bson:"-"`
	ProductID string    `gorm:"index" json:"product_id" bson:"product_id"`
	Name      string    `json:"name" bson:"name"`
	Price     float64   `json:"price" bson:"price"`
	Image     string    `json:"image" bson:"image"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	Category  string    `json:"category" bson:"category"`
}

// Order is a placed order. Totals are fixed at creation.
type Order struct {
	BaseModel       `bson:",inline"`
	UserID          uuid.UUID   `gorm:"type:uuid;index;not null" json:"user_id" bson:"user_id"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"items" bson:"items"`
	Subtotal        float64     `json:"subtotal" bson:"subtotal"`
	Tax             float64     `json:"tax" bson:"tax"`
	DeliveryFee     float64     `json:"delivery_fee" bson:"delivery_fee"`
	TotalPrice      float64     `json:"total_price" bson:"total_price"`
	Status          OrderStatus `gorm:"type:varchar(32);index;not null" json:"status" bson:"status"`
	DeliveryAddress Address     `gorm:"embedded;embeddedPrefix:delivery_" json:"delivery_address" bson:"delivery_address"`
	PaymentMethod   string      `json:"payment_method" bson:"payment_method"`
	PaymentID       string      `json:"payment_id" bson:"payment_id"`
	DeliveryOption  string      `json:"delivery_option" bson:"delivery_option"`
	Notes           string      `json:"notes" bson:"notes"`
}

// OrderTotals is the priced breakdown of a set of items.
type OrderTotals struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}

// OrderUpdate is a partial order update; nil fields are left untouched.
type OrderUpdate struct {
	Status *OrderStatus `json:"status"`
	Notes  *string      `json:"notes"`
}

// Apply merges the set fields of upd into o and reports whether anything changed.
func (upd OrderUpdate) Apply(o *Order) bool {
	changed := false
	changed = setIfPresent(&o.Status, upd.Status) || changed
	changed = setIfPresent(&o.Notes, upd.Notes) || changed
	return changed
}

// ProductSales is one row of the top-selling products aggregation.
type ProductSales struct {
	ProductID     string  `json:"product_id" bson:"_id"`
	Name          string  `json:"name" bson:"name"`
	TotalQuantity int64   `json:"total_quantity" bson:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue" bson:"total_revenue"`
}
