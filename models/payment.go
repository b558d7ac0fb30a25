package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type PaymentMode string

const (
	PaymentModeNotSelected PaymentMode = "NOT_SELECTED"
	PaymentModeCOD         PaymentMode = "COD"
	PaymentModeUPI         PaymentMode = "UPI"
	PaymentModeCard        PaymentMode = "CARD"
	PaymentModeNetBanking  PaymentMode = "NETBANKING"
)

// IsValid reports whether m is a selectable payment mode.
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCOD, PaymentModeUPI, PaymentModeCard, PaymentModeNetBanking:
		return true
	}
	return false
}

// Payment is one attempt to settle an order's amount due. At most one
// non-terminal payment exists per order; a FAILED payment is superseded by a
// fresh record, never mutated.
type Payment struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID         string             `json:"userId" bson:"userId"`
	RestaurantID   string             `json:"restaurantId" bson:"restaurantId"`
	OrderID        primitive.ObjectID `json:"orderId" bson:"orderId"`
	FinalAmount    float64            `json:"finalAmount" bson:"finalAmount"`
	Status         PaymentStatus      `json:"paymentStatus" bson:"paymentStatus"`
	Mode           PaymentMode        `json:"paymentMode" bson:"paymentMode"`
	WindowExpireAt time.Time          `json:"paymentWindowExpireAt" bson:"paymentWindowExpireAt"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}
