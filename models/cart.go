package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartStatus string

const (
	CartStatusActive CartStatus = "active"
	CartStatusLocked CartStatus = "locked"
)

// CartItem is one line in a cart. Price is a snapshot of the menu item
// price at the time the line was added.
type CartItem struct {
	MenuItemID string  `json:"menuItemId" bson:"menuItemId"`
	Quantity   int     `json:"quantity" bson:"quantity"`
	Price      float64 `json:"price" bson:"price"`
	TotalPrice float64 `json:"totalPrice" bson:"totalPrice"`
}

// Cart holds the mutable pre-checkout state for a single user. A user has
// at most one cart and all items must belong to the same restaurant.
type Cart struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RestaurantID string             `json:"restaurantId" bson:"restaurantId"`
	UserID       string             `json:"userId" bson:"userId"`
	Items        []CartItem         `json:"items" bson:"items"`
	TotalAmount  float64            `json:"totalAmount" bson:"totalAmount"`
	Status       CartStatus         `json:"status" bson:"status"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Total recomputes the cart total from its line totals.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.TotalPrice
	}
	return total
}
