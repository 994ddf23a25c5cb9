package order

import (
	"fmt"

	"sheenclassics/internal/coupon"

	"github.com/go-faster/errors"
)

var (
	// -- Authentication/Authorization --
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUnauthorized     = errors.New("unauthorized")

	// -- Checkout --
	ErrEmptyCart                = errors.New("cart is empty")
	ErrProductUnavailable       = errors.New("product unavailable")
	ErrInsufficientStock        = errors.New("insufficient stock")
	ErrInvalidCoupon            = coupon.ErrInvalidCoupon
	ErrBelowMinimumPurchase     = coupon.ErrBelowMinimumPurchase
	ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")
	ErrInvalidContactNumber     = errors.New("invalid contact number")

	// -- Resource State --
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidStatus           = errors.New("invalid order status")

	// -- Database & Operation Failures --
	ErrPersistenceFailure = errors.New("persistence failure")
)

// Error pairs one of the sentinels above with the message shown to the
// customer.
type Error struct {
	Kind    error
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and, for persistence failures, the store error.
func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func persistenceFailure(message string, cause error) *Error {
	return &Error{Kind: ErrPersistenceFailure, Message: message, cause: cause}
}

const (
	msgNotAuthenticated  = "Please login first"
	msgEmptyCart         = "Cart is empty"
	msgOrderNotFound     = "Order not found"
	msgUnauthorized      = "Unauthorized"
	msgPaymentMethod     = "Currently, orders are confirmed only via WhatsApp. Please use your WhatsApp number to place the order."
	msgContactNumber     = "Please enter a valid WhatsApp number in 03XXXXXXXXX or +923XXXXXXXXXX format."
	msgCouponApplied     = "Coupon applied successfully"
	msgInvalidStatus     = "Invalid order status"
	msgCreateFailed      = "Failed to create order"
	msgCancelFailed      = "Failed to cancel order"
	msgStatusFailed      = "Failed to update order status"
	msgSummaryFailed     = "Failed to load order summary"
	msgApplyCouponFailed = "Failed to apply coupon"
)
