package services

import "errors"

// Domain errors returned by the services. Handlers map these to HTTP
// statuses with errors.Is; anything else is treated as an upstream failure
// and surfaced as a generic 500.
var (
	// Checkout preconditions.
	ErrCartEmpty        = errors.New("your cart is empty")
	ErrNoOrderableItems = errors.New("no items to order")

	// Missing records.
	ErrUserNotFound     = errors.New("user not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("item not found in cart")
	ErrAddressNotFound  = errors.New("address not found")

	// Cancellation policy conflicts.
	ErrOrderCancelled     = errors.New("this order is already cancelled")
	ErrOrderDelivered     = errors.New("delivered orders cannot be cancelled")
	ErrCancelWindowClosed = errors.New("orders can only be cancelled within 30 minutes of placement")

	// Status and address-book rules.
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrOrderStatusFinal   = errors.New("order status can no longer change")
	ErrAddressLimit       = errors.New("maximum of 3 addresses allowed")
)
