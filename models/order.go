package models

import "time"

// OrderStatus represents the payment state of a web order
type OrderStatus string

const (
	StatusPaymentRequired OrderStatus = "payment_required"
	StatusPaid            OrderStatus = "paid"
	StatusCancelled       OrderStatus = "cancelled"
)

// OrderType is how the customer receives the order
type OrderType string

const (
	OrderPickup   OrderType = "pickup"
	OrderDelivery OrderType = "delivery"
)

type Order struct {
	Record
	FullName        string      `json:"full_name"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	OrderType       OrderType   `json:"order_type" gorm:"size:16;not null"`
	Address         string      `json:"address"`
	ScheduledFor    *time.Time  `json:"scheduled_for"`
	Items           []OrderItem `json:"items" gorm:"serializer:json;type:text"`
	Notes           string      `json:"notes"`
	Subtotal        float64     `json:"subtotal"`
	Taxes           float64     `json:"taxes"`
	Fees            float64     `json:"fees"`
	Total           float64     `json:"total"`
	Currency        string      `json:"currency" gorm:"size:3"`
	Status          OrderStatus `json:"status" gorm:"size:32;index;not null"`
	PaymentIntentID string      `json:"payment_intent_id"`
	PaymentMethod   string      `json:"payment_method"`
	PaymentRef      string      `json:"payment_ref"`
}

func (Order) TableName() string { return "order" }

// OrderItem is a line of an order. UnitPrice is a snapshot supplied with the order,
// Subtotal is always recomputed on the server.
type OrderItem struct {
	ItemSlug  string  `json:"item_slug"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}
