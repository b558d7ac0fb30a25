package services

import (
	"context"
	"fmt"
	"time"

	"checkout-service/database"
	apperrors "checkout-service/errors"
	"checkout-service/models"
	"checkout-service/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CheckoutResult struct {
	OrderID   string  `json:"orderId"`
	PaymentID string  `json:"paymentId"`
	Amount    float64 `json:"amount"`
}

type CancelCheckoutResult struct {
	OrderID string `json:"orderId"`
}

// CheckoutService orchestrates the cart -> order -> payment-request saga.
// Every multi-document step runs inside one transaction, so no partial state
// (an order without a locked cart, a lock without an order) is ever visible.
type CheckoutService struct {
	carts      repository.CartRepository
	orders     repository.OrderRepository
	payments   repository.PaymentRepository
	paymentSvc *PaymentService
	tx         database.TxRunner
	cache      CartCacher
	events     EventPublisher
	logger     *zap.Logger
}

func NewCheckoutService(
	carts repository.CartRepository,
	orders repository.OrderRepository,
	payments repository.PaymentRepository,
	paymentSvc *PaymentService,
	tx database.TxRunner,
	cache CartCacher,
	events EventPublisher,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:      carts,
		orders:     orders,
		payments:   payments,
		paymentSvc: paymentSvc,
		tx:         tx,
		cache:      cache,
		events:     events,
		logger:     logger,
	}
}

// PlaceOrder turns the user's cart into a priced order snapshot, locks the
// cart and generates the payment request, atomically.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string, delivery models.DeliveryInfo) (*CheckoutResult, error) {
	result, err := s.tx.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		cart, err := s.carts.FindByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("find cart for user %s: %w", userID, err)
		}
		if cart == nil {
			return nil, apperrors.ErrCartNotFound
		}
		if cart.Status == models.CartStatusLocked {
			return nil, apperrors.ErrCartLocked
		}
		if len(cart.Items) == 0 {
			return nil, apperrors.ErrCartEmpty
		}

		pending, err := s.orders.FindPendingByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("find pending order for user %s: %w", userID, err)
		}
		if pending != nil {
			return nil, apperrors.ErrOldOrderPending
		}

		pricing, err := CalculatePricing(cart.TotalAmount)
		if err != nil {
			return nil, fmt.Errorf("price cart %s: %w", cart.ID.Hex(), err)
		}

		orderID, err := s.orders.CreateFromCart(ctx, cart, pricing, delivery)
		if err != nil {
			return nil, fmt.Errorf("create order from cart %s: %w", cart.ID.Hex(), err)
		}

		locked, err := s.carts.Lock(ctx, cart.ID.Hex())
		if err != nil {
			return nil, fmt.Errorf("lock cart %s: %w", cart.ID.Hex(), err)
		}
		if !locked {
			return nil, apperrors.ErrCartLockFailed
		}

		paymentID, err := s.paymentSvc.generatePaymentRequest(ctx, orderID)
		if err != nil {
			return nil, err
		}

		paymentOID, err := primitive.ObjectIDFromHex(paymentID)
		if err != nil {
			return nil, fmt.Errorf("invalid payment id %q: %w", paymentID, err)
		}
		stamped, err := s.orders.Update(ctx, orderID, bson.M{"paymentId": paymentOID})
		if err != nil {
			return nil, fmt.Errorf("stamp order %s with payment id: %w", orderID, err)
		}
		if !stamped {
			return nil, fmt.Errorf("order %s not updated with payment id", orderID)
		}

		return &CheckoutResult{
			OrderID:   orderID,
			PaymentID: paymentID,
			Amount:    pricing.GrandTotal,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	checkout := result.(*CheckoutResult)

	s.invalidateCart(ctx, userID)
	if s.events != nil {
		s.events.PublishOrderEvent(ctx, models.OrderEvent{
			EventType: models.EventOrderPlaced,
			OrderID:   checkout.OrderID,
			PaymentID: checkout.PaymentID,
			UserID:    userID,
			Amount:    checkout.Amount,
			Timestamp: time.Now().UTC(),
		})
	}

	s.logger.Info("Order placed",
		zap.String("user_id", userID),
		zap.String("order_id", checkout.OrderID),
		zap.String("payment_id", checkout.PaymentID),
		zap.Float64("amount", checkout.Amount),
	)

	return checkout, nil
}

// CancelCheckout reverses a pending checkout: the payment record and the
// order snapshot are deleted and the source cart becomes editable again.
func (s *CheckoutService) CancelCheckout(ctx context.Context, orderID string) (*CancelCheckoutResult, error) {
	result, err := s.tx.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		order, err := s.orders.FindByID(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("find order %s: %w", orderID, err)
		}
		if order == nil || order.Status != models.OrderStatusPendingPayment {
			return nil, apperrors.ErrOrderStatusIsNotPendingPayment
		}

		deleted, err := s.payments.Delete(ctx, order.PaymentID.Hex())
		if err != nil {
			return nil, fmt.Errorf("delete payment %s: %w", order.PaymentID.Hex(), err)
		}
		if !deleted {
			return nil, apperrors.ErrPaymentDeleteFailed
		}

		deleted, err = s.orders.Delete(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("delete order %s: %w", orderID, err)
		}
		if !deleted {
			return nil, apperrors.ErrOrderDeleteFailed
		}

		unlocked, err := s.carts.Unlock(ctx, order.CartID.Hex())
		if err != nil {
			return nil, fmt.Errorf("unlock cart %s: %w", order.CartID.Hex(), err)
		}
		if !unlocked {
			return nil, apperrors.ErrCartUnlockFailed
		}

		return order, nil
	})
	if err != nil {
		return nil, err
	}
	order := result.(*models.Order)

	s.invalidateCart(ctx, order.UserID)
	if s.events != nil {
		s.events.PublishOrderEvent(ctx, models.OrderEvent{
			EventType:    models.EventCheckoutCancelled,
			OrderID:      orderID,
			UserID:       order.UserID,
			RestaurantID: order.RestaurantID,
			Timestamp:    time.Now().UTC(),
		})
	}

	s.logger.Info("Checkout cancelled",
		zap.String("order_id", orderID),
		zap.String("user_id", order.UserID),
	)

	return &CancelCheckoutResult{OrderID: orderID}, nil
}

func (s *CheckoutService) invalidateCart(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("Cart cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}
