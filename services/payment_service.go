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
	"go.uber.org/zap"
)

const (
	// paymentWindow bounds how long a fresh payment request stays payable.
	paymentWindow = 15 * time.Minute
	// codPaymentWindow covers COD, where cash is collected on delivery,
	// not at order time.
	codPaymentWindow = 7 * 24 * time.Hour
)

type PaymentRequestResult struct {
	PaymentID string `json:"paymentId"`
}

type CompletePaymentResult struct {
	PaymentID string `json:"paymentId"`
}

// PaymentService owns payment request generation and payment completion.
type PaymentService struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	carts    repository.CartRepository
	tx       database.TxRunner
	cache    CartCacher
	events   EventPublisher
	logger   *zap.Logger
}

func NewPaymentService(
	orders repository.OrderRepository,
	payments repository.PaymentRepository,
	carts repository.CartRepository,
	tx database.TxRunner,
	cache CartCacher,
	events EventPublisher,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		orders:   orders,
		payments: payments,
		carts:    carts,
		tx:       tx,
		cache:    cache,
		events:   events,
		logger:   logger,
	}
}

// GeneratePaymentRequest creates a PENDING payment record for an order in
// its own transaction.
func (s *PaymentService) GeneratePaymentRequest(ctx context.Context, orderID string) (*PaymentRequestResult, error) {
	result, err := s.tx.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		return s.generatePaymentRequest(ctx, orderID)
	})
	if err != nil {
		return nil, err
	}
	return &PaymentRequestResult{PaymentID: result.(string)}, nil
}

// generatePaymentRequest runs inside an ambient transaction; PlaceOrder
// embeds it in the checkout transaction.
//
// An order with no payment, or whose latest payment terminally FAILED, gets
// a fresh PENDING record. A PENDING or SUCCESS payment blocks a new one.
func (s *PaymentService) generatePaymentRequest(ctx context.Context, orderID string) (string, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("find order %s: %w", orderID, err)
	}
	if order == nil {
		return "", apperrors.ErrOrderNotFound
	}
	if order.Status != models.OrderStatusPendingPayment {
		return "", apperrors.ErrOrderStatusNotPendingPayment
	}

	payment, err := s.payments.FindByOrderID(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("find payment for order %s: %w", orderID, err)
	}
	if payment != nil {
		switch payment.Status {
		case models.PaymentStatusSuccess:
			return "", apperrors.ErrPaymentStatusAlreadySuccess
		case models.PaymentStatusPending:
			return "", apperrors.ErrOldPaymentStatusAlreadyPending
		}
	}

	paymentID, err := s.payments.Create(ctx, &models.Payment{
		UserID:         order.UserID,
		RestaurantID:   order.RestaurantID,
		OrderID:        order.ID,
		FinalAmount:    order.GrandTotal,
		Status:         models.PaymentStatusPending,
		Mode:           models.PaymentModeNotSelected,
		WindowExpireAt: time.Now().UTC().Add(paymentWindow),
	})
	if err != nil {
		return "", fmt.Errorf("create payment for order %s: %w", orderID, err)
	}
	return paymentID, nil
}

// CompletePayment assigns the payment mode (single-use), confirms the owning
// order and disposes of the source cart, all in one transaction.
func (s *PaymentService) CompletePayment(ctx context.Context, paymentID string, paymentMode string) (*CompletePaymentResult, error) {
	mode := models.PaymentMode(paymentMode)
	if !mode.IsValid() {
		return nil, apperrors.ErrPaymentModeNotSupported
	}

	result, err := s.tx.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		payment, err := s.payments.FindByID(ctx, paymentID)
		if err != nil {
			return nil, fmt.Errorf("find payment %s: %w", paymentID, err)
		}
		if payment == nil {
			return nil, apperrors.ErrPaymentRequestNotFound
		}
		if payment.Status != models.PaymentStatusPending {
			return nil, apperrors.ErrPaymentStatusIsNotPending
		}
		if payment.Mode != models.PaymentModeNotSelected {
			return nil, apperrors.ErrPaymentStatusIsNotSelected
		}

		// COD settles on delivery, so the payment window stretches to the
		// delivery horizon. The other modes wait on a gateway integration.
		if mode != models.PaymentModeCOD {
			return nil, apperrors.ErrPaymentModeNotSupported
		}

		updated, err := s.payments.Update(ctx, paymentID, bson.M{
			"paymentMode":           mode,
			"paymentWindowExpireAt": time.Now().UTC().Add(codPaymentWindow),
		})
		if err != nil {
			return nil, fmt.Errorf("update payment %s mode: %w", paymentID, err)
		}
		if !updated {
			return nil, apperrors.ErrFailedToUpdatePaymentMode
		}

		order, err := s.orders.FindByPaymentID(ctx, paymentID)
		if err != nil {
			return nil, fmt.Errorf("find order for payment %s: %w", paymentID, err)
		}
		if order == nil {
			return nil, apperrors.ErrOrderNotFound
		}

		confirmed, err := s.orders.UpdateStatus(ctx, order.ID.Hex(), models.OrderStatusPendingPayment, models.OrderStatusConfirmed)
		if err != nil {
			return nil, fmt.Errorf("confirm order %s: %w", order.ID.Hex(), err)
		}
		if !confirmed {
			return nil, apperrors.ErrOrderStatusNotPendingPayment
		}

		if _, err := s.carts.Delete(ctx, order.CartID.Hex()); err != nil {
			return nil, fmt.Errorf("delete cart %s: %w", order.CartID.Hex(), err)
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
			EventType:    models.EventOrderConfirmed,
			OrderID:      order.ID.Hex(),
			PaymentID:    paymentID,
			UserID:       order.UserID,
			RestaurantID: order.RestaurantID,
			Amount:       order.GrandTotal,
			Timestamp:    time.Now().UTC(),
		})
	}

	s.logger.Info("Payment completed",
		zap.String("payment_id", paymentID),
		zap.String("order_id", order.ID.Hex()),
		zap.String("payment_mode", string(mode)),
	)

	return &CompletePaymentResult{PaymentID: paymentID}, nil
}

func (s *PaymentService) invalidateCart(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("Cart cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}
