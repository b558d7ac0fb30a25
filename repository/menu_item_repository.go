package repository

import (
	"context"

	"checkout-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MenuItemRepository reads the menu catalog owned by the restaurant service.
// This service only needs lookups for price snapshots and stock checks.
type MenuItemRepository interface {
	FindByID(ctx context.Context, id string) (*models.MenuItem, error)
}

type mongoMenuItemRepository struct {
	collection *mongo.Collection
}

func NewMenuItemRepository(db *mongo.Database) MenuItemRepository {
	return &mongoMenuItemRepository{collection: db.Collection("menuItems")}
}

func (r *mongoMenuItemRepository) FindByID(ctx context.Context, id string) (*models.MenuItem, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return nil, nil
	}
	var item models.MenuItem
	findErr := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&item)
	if findErr == mongo.ErrNoDocuments {
		return nil, nil
	}
	if findErr != nil {
		return nil, findErr
	}
	return &item, nil
}
