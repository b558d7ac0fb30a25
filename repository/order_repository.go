package repository

import (
	"context"
	"time"

	"checkout-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// orderExpiryWindow is how long an order may stay PENDING_PAYMENT before a
// sweeper is allowed to expire it.
const orderExpiryWindow = 10 * time.Minute

// OrderRepository is the storage contract for order snapshots. Find methods
// return (nil, nil) when no document matches.
type OrderRepository interface {
	// CreateFromCart snapshots the cart into a new PENDING_PAYMENT order.
	// Items are deep-copied; later cart mutation never changes the order.
	CreateFromCart(ctx context.Context, cart *models.Cart, pricing models.Pricing, delivery models.DeliveryInfo) (string, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*models.Order, error)
	FindPendingByUserID(ctx context.Context, userID string) (*models.Order, error)
	// Update applies a dotted-path field map to the order document.
	Update(ctx context.Context, id string, updates bson.M) (bool, error)
	// UpdateStatus transitions status conditionally; false means the order
	// was not in the expected source status.
	UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type mongoOrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{collection: db.Collection("orders")}
}

func (r *mongoOrderRepository) CreateFromCart(ctx context.Context, cart *models.Cart, pricing models.Pricing, delivery models.DeliveryInfo) (string, error) {
	now := time.Now().UTC()

	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)

	order := models.Order{
		CartID:          cart.ID,
		RestaurantID:    cart.RestaurantID,
		UserID:          cart.UserID,
		Items:           items,
		Delivery:        delivery,
		TotalCartAmount: pricing.TotalCartAmount,
		GSTCharges:      pricing.GSTCharges,
		PlatformFees:    pricing.PlatformFees,
		DeliveryCharges: pricing.DeliveryCharges,
		GrandTotal:      pricing.GrandTotal,
		Status:          models.OrderStatusPendingPayment,
		ExpireAt:        now.Add(orderExpiryWindow),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return "", err
	}
	return insertedHex(result), nil
}

func (r *mongoOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoOrderRepository) FindByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	oid, err := toObjectID(paymentID)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"paymentId": oid})
}

func (r *mongoOrderRepository) FindPendingByUserID(ctx context.Context, userID string) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"userId": userID, "status": models.OrderStatusPendingPayment})
}

func (r *mongoOrderRepository) findOne(ctx context.Context, filter bson.M) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, filter).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *mongoOrderRepository) Update(ctx context.Context, id string, updates bson.M) (bool, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return false, err
	}
	updates["updatedAt"] = time.Now().UTC()
	result, updateErr := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": updates})
	if updateErr != nil {
		return false, updateErr
	}
	return result.ModifiedCount > 0, nil
}

func (r *mongoOrderRepository) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) (bool, error) {
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

func (r *mongoOrderRepository) Delete(ctx context.Context, id string) (bool, error) {
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
