package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// BusinessError is an expected application error with a stable
// machine-readable code. Infrastructure failures are never wrapped in a
// BusinessError; they stay plain errors and surface as a generic 500.
type BusinessError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *BusinessError) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *BusinessError) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new BusinessError
func New(code, message string, status int) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// Cart error types
var (
	ErrCartNotFound     = New("CART_NOT_FOUND", "Cart not found", http.StatusNotFound)
	ErrCartLocked       = New("CART_LOCKED", "Cart is locked", http.StatusConflict)
	ErrCartEmpty        = New("CART_EMPTY", "Cart is empty", http.StatusConflict)
	ErrCartLockFailed   = New("CART_LOCK_FAILED", "Failed to lock cart", http.StatusConflict)
	ErrCartUnlockFailed = New("CART_UNLOCK_FAILED", "Failed to unlock cart", http.StatusConflict)
	ErrCartUpdateFailed = New("CART_UPDATE_FAILED", "Failed to update cart", http.StatusConflict)
)

// Cart item error types
var (
	ErrDifferentRestaurant = New("DIFFERENT_RESTAURANT", "You can add items from only one restaurant at a time", http.StatusBadRequest)
	ErrItemNotInCart       = New("ITEM_NOT_IN_CART", "Item does not exist in cart", http.StatusNotFound)
	ErrMenuItemNotFound    = New("MENU_ITEM_NOT_FOUND", "Menu item not found", http.StatusNotFound)
	ErrMenuItemOutOfStock  = New("MENU_ITEM_OUT_OF_STOCK", "Menu item is out of stock", http.StatusConflict)
)

// Order error types
var (
	ErrOldOrderPending                = New("OLD_ORDER_PENDING", "Old order is still pending", http.StatusConflict)
	ErrOrderNotFound                  = New("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	ErrOrderStatusNotPendingPayment   = New("ORDER_STATUS_NOT_PENDING_PAYMENT", "Order status is not PENDING_PAYMENT", http.StatusConflict)
	ErrOrderStatusIsNotPendingPayment = New("ORDER_STATUS_IS_NOT_PENDING_PAYMENT", "Order status is not PENDING_PAYMENT", http.StatusConflict)
	ErrOrderDeleteFailed              = New("ORDER_DELETE_FAILED", "Failed to delete order", http.StatusConflict)
)

// Payment error types
var (
	ErrPaymentRequestNotFound         = New("PAYMENT_REQUEST_NOT_FOUND", "Payment request not found", http.StatusNotFound)
	ErrPaymentStatusAlreadySuccess    = New("PAYMENT_STATUS_ALREADY_SUCCESS", "Payment status is already success", http.StatusConflict)
	ErrOldPaymentStatusAlreadyPending = New("OLD_PAYMENT_STATUS_ALREADY_PENDING", "Payment status is already pending, retry after the old payment window expires", http.StatusConflict)
	ErrPaymentStatusIsNotPending      = New("PAYMENT_STATUS_IS_NOT_PENDING", "Payment status is not PENDING", http.StatusConflict)
	ErrPaymentStatusIsNotSelected     = New("PAYMENT_STATUS_IS_NOT_SELECTED", "Payment mode is not NOT_SELECTED", http.StatusConflict)
	ErrFailedToUpdatePaymentMode      = New("FAILED_TO_UPDATE_PAYMENT_MODE", "Failed to update payment mode", http.StatusConflict)
	ErrPaymentModeNotSupported        = New("PAYMENT_MODE_NOT_SUPPORTED", "Payment mode is not supported yet", http.StatusBadRequest)
	ErrPaymentDeleteFailed            = New("PAYMENT_DELETE_FAILED", "Failed to delete payment", http.StatusConflict)
)
