package repository

import (
	"context"
	"time"

	"checkout-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartRepository is the storage contract for carts. Find methods return
// (nil, nil) when no document matches. Every method honors an ambient
// transaction carried in ctx.
type CartRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.Cart, error)
	FindByID(ctx context.Context, id string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) (string, error)
	// UpdateItems replaces the item list and total of an ACTIVE cart.
	// Returns false when the cart is missing or not ACTIVE.
	UpdateItems(ctx context.Context, id string, items []models.CartItem, totalAmount float64) (bool, error)
	// Lock flips ACTIVE to LOCKED; false means a concurrent writer won.
	Lock(ctx context.Context, id string) (bool, error)
	// Unlock flips LOCKED back to ACTIVE.
	Unlock(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{collection: db.Collection("carts")}
}

func (r *mongoCartRepository) FindByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *mongoCartRepository) FindByID(ctx context.Context, id string) (*models.Cart, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return nil, nil
	}
	var cart models.Cart
	findErr := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&cart)
	if findErr == mongo.ErrNoDocuments {
		return nil, nil
	}
	if findErr != nil {
		return nil, findErr
	}
	return &cart, nil
}

func (r *mongoCartRepository) Create(ctx context.Context, cart *models.Cart) (string, error) {
	now := time.Now().UTC()
	cart.Status = models.CartStatusActive
	cart.CreatedAt = now
	cart.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, cart)
	if err != nil {
		return "", err
	}
	return insertedHex(result), nil
}

func (r *mongoCartRepository) UpdateItems(ctx context.Context, id string, items []models.CartItem, totalAmount float64) (bool, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return false, err
	}
	filter := bson.M{"_id": oid, "status": models.CartStatusActive}
	update := bson.M{"$set": bson.M{
		"items":       items,
		"totalAmount": totalAmount,
		"updatedAt":   time.Now().UTC(),
	}}
	result, updateErr := r.collection.UpdateOne(ctx, filter, update)
	if updateErr != nil {
		return false, updateErr
	}
	return result.ModifiedCount > 0, nil
}

func (r *mongoCartRepository) Lock(ctx context.Context, id string) (bool, error) {
	return r.setStatus(ctx, id, models.CartStatusActive, models.CartStatusLocked)
}

func (r *mongoCartRepository) Unlock(ctx context.Context, id string) (bool, error) {
	return r.setStatus(ctx, id, models.CartStatusLocked, models.CartStatusActive)
}

// setStatus is a conditional update keyed on the current status; a losing
// concurrent writer observes a zero-modified result.
func (r *mongoCartRepository) setStatus(ctx context.Context, id string, from, to models.CartStatus) (bool, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return false, err
	}
	filter := bson.M{"_id": oid, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}}
	result, updateErr := r.collection.UpdateOne(ctx, filter, update)
	if updateErr != nil {
		return false, updateErr
	}
	return result.ModifiedCount > 0, nil
}

func (r *mongoCartRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return false, err
	}
	result, delErr := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if delErr != nil {
		return false, delErr
	}
	return result.DeletedCount > 0, nil
}
