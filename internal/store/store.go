package store

import (
	"context"
	"errors"
)

// Key spaces. Each space is an independent ordered map; the store gives
// no atomicity across spaces.
const (
	SpaceFlights  = "flights"
	SpaceBookings = "bookings"
	SpacePayments = "payments"
)

var ErrNotFound = errors.New("record not found")

// Store is an ordered key-value abstraction. List returns values in
// insertion order; a Put on an existing key keeps its original position.
type Store interface {
	Get(ctx context.Context, space, key string) ([]byte, error)
	Put(ctx context.Context, space, key string, value []byte) error
	Delete(ctx context.Context, space, key string) error
	List(ctx context.Context, space string) ([][]byte, error)
}
