package commands

import "bookcore/internal/pkg/errs"

// Closed error taxonomy for the engine. Every rejection is recoverable by
// the caller and carries enough context to drive a user-facing message;
// handlers branch on these with errors.Is.
var (
	ErrValidation              = errs.New("validation failed")
	ErrSlotNotFound            = errs.New("slot not found")
	ErrSlotUnavailable         = errs.New("slot is not available")
	ErrTenantMismatch          = errs.New("slot belongs to another tenant")
	ErrInsufficientCapacity    = errs.New("insufficient capacity")
	ErrLockInvalid             = errs.New("reservation hold invalid")
	ErrSubscriptionNotFound    = errs.New("package subscription not found")
	ErrInsufficientBalance     = errs.New("insufficient package balance")
	ErrInvalidTransition       = errs.New("invalid status transition")
	ErrForbidden               = errs.New("operation forbidden")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)
