package repository

import (
	"context"
	"time"

	"checkout-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PaymentRepository is the storage contract for payment attempts. A FAILED
// payment may be superseded by a newer record for the same order, so
// FindByOrderID returns the most recent one.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) (string, error)
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	// Update applies a dotted-path field map conditionally on the payment
	// still being PENDING; false means a concurrent writer won.
	Update(ctx context.Context, id string, updates bson.M) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type mongoPaymentRepository struct {
	collection *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) PaymentRepository {
	return &mongoPaymentRepository{collection: db.Collection("payments")}
}

func (r *mongoPaymentRepository) Create(ctx context.Context, payment *models.Payment) (string, error) {
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return "", err
	}
	return insertedHex(result), nil
}

func (r *mongoPaymentRepository) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return nil, nil
	}
	var payment models.Payment
	findErr := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&payment)
	if findErr == mongo.ErrNoDocuments {
		return nil, nil
	}
	if findErr != nil {
		return nil, findErr
	}
	return &payment, nil
}

func (r *mongoPaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	oid, err := toObjectID(orderID)
	if err != nil {
		return nil, nil
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var payment models.Payment
	findErr := r.collection.FindOne(ctx, bson.M{"orderId": oid}, opts).Decode(&payment)
	if findErr == mongo.ErrNoDocuments {
		return nil, nil
	}
	if findErr != nil {
		return nil, findErr
	}
	return &payment, nil
}

func (r *mongoPaymentRepository) Update(ctx context.Context, id string, updates bson.M) (bool, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return false, err
	}
	updates["updatedAt"] = time.Now().UTC()
	filter := bson.M{"_id": oid, "paymentStatus": models.PaymentStatusPending}
	result, updateErr := r.collection.UpdateOne(ctx, filter, bson.M{"$set": updates})
	if updateErr != nil {
		return false, updateErr
	}
	return result.ModifiedCount > 0, nil
}

func (r *mongoPaymentRepository) Delete(ctx context.Context, id string) (bool, error) {
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
