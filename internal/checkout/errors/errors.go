package errors

import "errors"

var (
	ErrSessionNotFound = errors.New("checkout session not found")

	ErrBookingNotFound = errors.New("booking not found")

	ErrSessionTerminated = errors.New("checkout session already terminated")

	ErrStepMismatch = errors.New("operation does not match the current step")

	ErrSeatUnavailable = errors.New("seat is held by another checkout")
)
