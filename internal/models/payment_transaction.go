package models

import "github.com/google/uuid"

// PaymentStatus is the local view of a checkout session's payment state.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusInitiated PaymentStatus = "initiated"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusExpired   PaymentStatus = "expired"
)

// Terminal reports whether s is final; terminal statuses are never overwritten.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusPaid || s == PaymentStatusFailed || s == PaymentStatusExpired
}

// DefaultCurrency is used when a checkout request does not name one.
const DefaultCurrency = "usd"

// PaymentTransaction stores the local record of an external checkout session.
type PaymentTransaction struct {
	BaseModel     `bson:",inline"`
	UserID        *uuid.UUID        `gorm:"type:uuid;index" json:"user_id" bson:"user_id"`
	OrderID       *uuid.UUID        `gorm:"type:uuid;index" json:"order_id" bson:"order_id"`
	SessionID     string            `gorm:"uniqueIndex;not null" json:"session_id" bson:"session_id"`
	Amount        float64           `json:"amount" bson:"amount"`
	Currency      string            `json:"currency" bson:"currency"`
	PaymentStatus PaymentStatus     `gorm:"type:varchar(16);index" json:"payment_status" bson:"payment_status"`
	Metadata      map[string]string `gorm:"serializer:json" json:"metadata" bson:"metadata"`
}
