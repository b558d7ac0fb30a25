package services

import (
	"fmt"
	"math"

	"checkout-service/models"
)

const (
	gstPercentage         = 5.0
	platformFeePercentage = 1.0
	deliveryCharges       = 40.0
)

// CalculatePricing turns a cart subtotal into the itemized charge breakdown:
// 5% GST, 1% platform fee and a flat delivery charge. Monetary values are
// rounded to two decimal places. Pure; the only failure is a negative input.
func CalculatePricing(totalCartAmount float64) (models.Pricing, error) {
	if totalCartAmount < 0 {
		return models.Pricing{}, fmt.Errorf("cart amount must be non-negative, got %v", totalCartAmount)
	}

	gst := totalCartAmount * gstPercentage / 100
	platformFee := totalCartAmount * platformFeePercentage / 100
	grandTotal := totalCartAmount + gst + platformFee + deliveryCharges

	return models.Pricing{
		TotalCartAmount: round2(totalCartAmount),
		GSTCharges:      round2(gst),
		PlatformFees:    round2(platformFee),
		DeliveryCharges: deliveryCharges,
		GrandTotal:      round2(grandTotal),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
