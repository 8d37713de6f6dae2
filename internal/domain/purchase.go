package domain

import "time"

// PurchaseOrder tracks a checkout from order creation through verification.
type PurchaseOrder struct {
	OrderID   string // gateway order id
	Receipt   string
	UID       string
	Plan      Plan
	Amount    int64 // smallest currency unit (paise)
	Currency  string
	Status    OrderStatus
	PaymentID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderStatus enumerates checkout states.
type OrderStatus string

const (
	OrderCreated OrderStatus = "created"
	OrderPaid    OrderStatus = "paid"
	OrderFailed  OrderStatus = "failed"
)
