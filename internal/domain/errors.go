package domain

import "errors"

// Domain rule violations surfaced to callers. Handlers map these to HTTP
// statuses, everything else is treated as an internal error.
var (
	ErrInvalidInterval = errors.New("end time must be after start time")
	ErrInactiveCourt   = errors.New("cannot book an inactive court")
	ErrSlotTaken       = errors.New("another booking already exists in this time range")
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("operation not allowed for the current booking status")
	ErrAlreadyClosed   = errors.New("this booking has already been closed")
	ErrTooLateToCancel = errors.New("minimum cancellation notice not met")
	ErrInvalidToken    = errors.New("unknown cancellation code")
	ErrValidation      = errors.New("validation failed")
)
