package errs

import "errors"

// Shared sentinel errors for the reservation engine. Usecase layers mark
// low-level causes with these; handlers translate them to HTTP statuses.
var (
	// Client-input errors
	ErrResourceNotFound  = errors.New("resource not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrWindowNotFound    = errors.New("availability window not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrInvalidRange      = errors.New("invalid time range")
	ErrWindowOverlap     = errors.New("availability window overlaps an existing window")
	ErrUnavailable       = errors.New("resource is not available for the requested time slot")
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// Payment errors
	ErrPaymentFailed = errors.New("payment failed")
	// ErrPaymentIndeterminate: charge outcome unknown (timeout after
	// dispatch). Requires reconciliation, never blind retry.
	ErrPaymentIndeterminate = errors.New("payment outcome indeterminate")
	// ErrGatewayUnavailable: transient gateway failure before any charge
	// side effect; the whole operation is safe to retry.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	// ErrOrphanedPayment: charge succeeded but persistence failed. Money is
	// held with no record; surfaced on an alerting path, not to the end
	// user as a plain failure.
	ErrOrphanedPayment = errors.New("orphaned payment: charge succeeded but booking persistence failed")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
