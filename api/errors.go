package api

import (
	"errors"
	"net/http"

	"github.com/mlitvin/flightbooking/internal/domain"
)

// statusFromError maps the core error taxonomy to HTTP statuses.
// Anything unrecognized is a storage failure and reads as retryable.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound), errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidFlight):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
