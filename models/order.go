package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
	OrderStatusExpired        OrderStatus = "EXPIRED"
)

// IsTerminal reports whether no further transition is valid from s.
// PENDING_PAYMENT is the only non-terminal order status.
func (s OrderStatus) IsTerminal() bool {
	return s != OrderStatusPendingPayment
}

// DeliveryInfo is the contact data captured at checkout time.
type DeliveryInfo struct {
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone" bson:"phone"`
}

// Order is an immutable priced snapshot of a cart. Items are a deep copy;
// mutating the source cart never changes an order. Only Status, PaymentID
// and UpdatedAt change after creation.
type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CartID          primitive.ObjectID `json:"cartId" bson:"cartId"`
	RestaurantID    string             `json:"restaurantId" bson:"restaurantId"`
	UserID          string             `json:"userId" bson:"userId"`
	Items           []CartItem         `json:"items" bson:"items"`
	Delivery        DeliveryInfo       `json:"delivery" bson:"delivery"`
	TotalCartAmount float64            `json:"totalCartAmount" bson:"totalCartAmount"`
	GSTCharges      float64            `json:"gstCharges" bson:"gstCharges"`
	PlatformFees    float64            `json:"platformFees" bson:"platformFees"`
	DeliveryCharges float64            `json:"deliveryCharges" bson:"deliveryCharges"`
	GrandTotal      float64            `json:"grandTotalAmount" bson:"grandTotalAmount"`
	PaymentID       primitive.ObjectID `json:"paymentId,omitempty" bson:"paymentId,omitempty"`
	Status          OrderStatus        `json:"status" bson:"status"`
	ExpireAt        time.Time          `json:"expireAt" bson:"expireAt"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}
