package services

import (
	"context"

	"checkout-service/models"
)

// EventPublisher pushes order lifecycle events out to the message fabric.
// Implementations must be best-effort; services call it only after the
// owning transaction committed.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event models.OrderEvent)
}

// CartCacher is the best-effort cart read cache. A nil cacher disables
// caching entirely.
type CartCacher interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Set(ctx context.Context, cart *models.Cart) error
	Invalidate(ctx context.Context, userID string) error
}
