package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrResourceInactive = errors.New("resource inactive")

	// Booking errors
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingConflict  = errors.New("booking conflict")
	ErrFacilityClosed   = errors.New("facility closed")
	ErrInvalidInterval  = errors.New("invalid interval")
	ErrBookingLocked    = errors.New("booking starts too soon to modify")
	ErrBookingCancelled = errors.New("booking is already cancelled")

	// Temporary hold errors
	ErrHoldNotFound = errors.New("hold not found")
	ErrHoldExpired  = errors.New("hold expired")
	ErrHoldNotOpen  = errors.New("hold is not in reserved state")

	// Credit ledger errors
	ErrPurchaseNotFound    = errors.New("purchase not found")
	ErrPurchaseNotEligible = errors.New("purchase not eligible")
	ErrInsufficientCredit  = errors.New("insufficient credit")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
