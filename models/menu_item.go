package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MenuItem is the read-only view this service needs of a restaurant's menu
// entry. The menu catalog itself is owned by another service.
type MenuItem struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RestaurantID      string             `json:"restaurantId" bson:"restaurantId"`
	Name              string             `json:"name" bson:"name"`
	Price             float64            `json:"price" bson:"price"`
	AvailableQuantity int                `json:"availableQuantity" bson:"availableQuantity"`
}
