package service

import "errors"

var (
	ErrInvalidDateRange  = errors.New("check in and check out dates are not valid")
	ErrInvalidPrice      = errors.New("total price is not valid")
	ErrReservationFailed = errors.New("error in reserve room")
	ErrUnknownStep       = errors.New("unknown booking step")
	ErrSessionNotFound   = errors.New("booking session not found")
	ErrNoCurrentUser     = errors.New("no authenticated user")
)

// ValidationError is returned by EvaluateValidation. Reason is
// ErrInvalidDateRange or ErrInvalidPrice.
type ValidationError struct {
	Reason error
}

func (e *ValidationError) Error() string {
	return e.Reason.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// ReservationError reports a failed reservation with a generic message.
// Cause keeps whatever the reservation backend returned.
type ReservationError struct {
	Cause error
}

func (e *ReservationError) Error() string {
	return ErrReservationFailed.Error()
}

func (e *ReservationError) Is(target error) bool {
	return target == ErrReservationFailed
}

func (e *ReservationError) Unwrap() error {
	return e.Cause
}
