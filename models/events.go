package models

import "time"

// Order lifecycle event types published to Kafka/SNS after a successful
// checkout transaction.
const (
	EventOrderPlaced       = "order.placed"
	EventOrderConfirmed    = "order.confirmed"
	EventCheckoutCancelled = "checkout.cancelled"
)

type OrderEvent struct {
	EventType    string    `json:"event_type"`
	OrderID      string    `json:"order_id"`
	PaymentID    string    `json:"payment_id,omitempty"`
	UserID       string    `json:"user_id,omitempty"`
	RestaurantID string    `json:"restaurant_id,omitempty"`
	Amount       float64   `json:"amount,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
