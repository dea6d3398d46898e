package domain

import "errors"

// Business errors raised by the booking core. All are recoverable,
// caller-facing validation errors; the API layer maps them to 4xx
// responses. Storage failures are not part of this taxonomy and
// propagate as-is after rollback.
var (
	ErrActiveRentalExists = errors.New("user already has an active rental")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidDateRange   = errors.New("invalid rental date range")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductNotRentable = errors.New("product is not rentable")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrIllegalTransition  = errors.New("illegal rental status transition")
	ErrRentalNotFound     = errors.New("rental not found")
)
