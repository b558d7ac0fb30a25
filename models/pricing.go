package models

// Pricing is the itemized charge breakdown for a cart subtotal. All values
// are rounded to two decimal places.
type Pricing struct {
	TotalCartAmount float64 `json:"totalCartAmount"`
	GSTCharges      float64 `json:"gstCharges"`
	PlatformFees    float64 `json:"platformFees"`
	DeliveryCharges float64 `json:"deliveryCharges"`
	GrandTotal      float64 `json:"grandTotalAmount"`
}
