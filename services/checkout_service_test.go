package services

import (
	"context"
	"testing"

	apperrors "checkout-service/errors"
	"checkout-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type checkoutHarness struct {
	carts      *fakeCartRepo
	orders     *fakeOrderRepo
	payments   *fakePaymentRepo
	cache      *mockCartCache
	events     *mockEventPublisher
	svc        *CheckoutService
	paymentSvc *PaymentService
}

func newCheckoutHarness() *checkoutHarness {
	carts := newFakeCartRepo()
	orders := newFakeOrderRepo()
	payments := newFakePaymentRepo()
	cache := newMockCartCache()
	events := &mockEventPublisher{}
	logger := zap.NewNop()
	tx := fakeTxRunner{carts: carts, orders: orders, payments: payments}

	paymentSvc := NewPaymentService(orders, payments, carts, tx, cache, events, logger)
	svc := NewCheckoutService(carts, orders, payments, paymentSvc, tx, cache, events, logger)

	return &checkoutHarness{
		carts:      carts,
		orders:     orders,
		payments:   payments,
		cache:      cache,
		events:     events,
		svc:        svc,
		paymentSvc: paymentSvc,
	}
}

func activeCart(userID string, total float64) *models.Cart {
	return &models.Cart{
		RestaurantID: "rest-1",
		UserID:       userID,
		Status:       models.CartStatusActive,
		Items: []models.CartItem{
			{MenuItemID: "item-1", Quantity: 2, Price: total / 2, TotalPrice: total},
		},
		TotalAmount: total,
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	h := newCheckoutHarness()
	cart := h.carts.seed(activeCart("user-1", 500))

	result, err := h.svc.PlaceOrder(context.Background(), "user-1", models.DeliveryInfo{
		Name: "Asha", Address: "12 MG Road", Phone: "9999999999",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.OrderID)
	require.NotEmpty(t, result.PaymentID)
	assert.Equal(t, 570.0, result.Amount)

	locked, err := h.carts.FindByID(context.Background(), cart.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.CartStatusLocked, locked.Status)

	order, err := h.orders.FindByID(context.Background(), result.OrderID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, models.OrderStatusPendingPayment, order.Status)
	assert.Equal(t, result.PaymentID, order.PaymentID.Hex())
	assert.Equal(t, cart.ID, order.CartID)
	assert.Len(t, order.Items, 1)

	payment, err := h.payments.FindByID(context.Background(), result.PaymentID)
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Equal(t, models.PaymentModeNotSelected, payment.Mode)
	assert.Equal(t, 570.0, payment.FinalAmount)

	events := h.events.published()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventOrderPlaced, events[0].EventType)
	assert.Contains(t, h.cache.invalidated, "user-1")
}

func TestPlaceOrderCartNotFound(t *testing.T) {
	h := newCheckoutHarness()

	_, err := h.svc.PlaceOrder(context.Background(), "nobody", models.DeliveryInfo{})
	assert.ErrorIs(t, err, apperrors.ErrCartNotFound)
}

func TestPlaceOrderCartLocked(t *testing.T) {
	h := newCheckoutHarness()
	cart := activeCart("user-1", 500)
	cart.Status = models.CartStatusLocked
	h.carts.seed(cart)

	_, err := h.svc.PlaceOrder(context.Background(), "user-1", models.DeliveryInfo{})
	assert.ErrorIs(t, err, apperrors.ErrCartLocked)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	h := newCheckoutHarness()
	cart := activeCart("user-1", 0)
	cart.Items = nil
	h.carts.seed(cart)

	_, err := h.svc.PlaceOrder(context.Background(), "user-1", models.DeliveryInfo{})
	assert.ErrorIs(t, err, apperrors.ErrCartEmpty)
}

func TestPlaceOrderBlockedByPendingOrder(t *testing.T) {
	h := newCheckoutHarness()
	h.carts.seed(activeCart("user-1", 500))
	h.orders.seed(&models.Order{UserID: "user-1", Status: models.OrderStatusPendingPayment})

	_, err := h.svc.PlaceOrder(context.Background(), "user-1", models.DeliveryInfo{})
	assert.ErrorIs(t, err, apperrors.ErrOldOrderPending)
}

func TestPlaceOrderAllowedAfterTerminalOrder(t *testing.T) {
	h := newCheckoutHarness()
	h.carts.seed(activeCart("user-1", 500))
	h.orders.seed(&models.Order{UserID: "user-1", Status: models.OrderStatusCancelled})

	_, err := h.svc.PlaceOrder(context.Background(), "user-1", models.DeliveryInfo{})
	assert.NoError(t, err)
}

func TestPlaceOrderLockFailureLeavesNoState(t *testing.T) {
	h := newCheckoutHarness()
	cart := h.carts.seed(activeCart("user-1", 500))
	h.carts.failLock = true

	_, err := h.svc.PlaceOrder(context.Background(), "user-1", models.DeliveryInfo{})
	require.ErrorIs(t, err, apperrors.ErrCartLockFailed)

	// the aborted transaction leaves no order or payment behind
	order, err := h.orders.FindPendingByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.Empty(t, h.payments.payments)

	intact, err := h.carts.FindByID(context.Background(), cart.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, intact)
	assert.Equal(t, models.CartStatusActive, intact.Status)

	assert.Empty(t, h.events.published())
}

func TestCancelCheckoutRestoresCart(t *testing.T) {
	h := newCheckoutHarness()
	cart := h.carts.seed(activeCart("user-1", 500))

	placed, err := h.svc.PlaceOrder(context.Background(), "user-1", models.DeliveryInfo{})
	require.NoError(t, err)

	cancelled, err := h.svc.CancelCheckout(context.Background(), placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, placed.OrderID, cancelled.OrderID)

	restored, err := h.carts.FindByID(context.Background(), cart.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, models.CartStatusActive, restored.Status)
	assert.Equal(t, 500.0, restored.TotalAmount)

	order, err := h.orders.FindByID(context.Background(), placed.OrderID)
	require.NoError(t, err)
	assert.Nil(t, order)

	payment, err := h.payments.FindByID(context.Background(), placed.PaymentID)
	require.NoError(t, err)
	assert.Nil(t, payment)

	events := h.events.published()
	require.Len(t, events, 2)
	assert.Equal(t, models.EventCheckoutCancelled, events[1].EventType)
}

func TestCancelCheckoutUnknownOrder(t *testing.T) {
	h := newCheckoutHarness()

	_, err := h.svc.CancelCheckout(context.Background(), "64f000000000000000000000")
	assert.ErrorIs(t, err, apperrors.ErrOrderStatusIsNotPendingPayment)
}

func TestCancelCheckoutConfirmedOrder(t *testing.T) {
	h := newCheckoutHarness()
	order := h.orders.seed(&models.Order{UserID: "user-1", Status: models.OrderStatusConfirmed})

	_, err := h.svc.CancelCheckout(context.Background(), order.ID.Hex())
	assert.ErrorIs(t, err, apperrors.ErrOrderStatusIsNotPendingPayment)
}
