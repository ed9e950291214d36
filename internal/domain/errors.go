package domain

import "errors"

var (
	ErrFlightNotFound   = errors.New("flight not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrCapacityExceeded = errors.New("not enough seats available on the flight")
	ErrInvalidQuantity  = errors.New("seat count must be positive")
	ErrInvalidFlight    = errors.New("invalid flight")
)
