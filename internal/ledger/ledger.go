// Package ledger owns the capacity/bookedSeats invariant. All mutations
// of a flight's booked-seat counter go through Reserve and Release, which
// serialize the read-modify-write per flight so concurrent bookings can
// never approve against a stale seat count.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/mlitvin/flightbooking/internal/domain"
	"github.com/mlitvin/flightbooking/internal/repository"
)

type Ledger struct {
	flights repository.FlightRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(flights repository.FlightRepository) *Ledger {
	return &Ledger{
		flights: flights,
		locks:   make(map[string]*sync.Mutex),
	}
}

// flightLock returns the mutex for a flight, creating it on first use.
// Operations on different flights proceed in parallel.
func (l *Ledger) flightLock(flightID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[flightID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[flightID] = lock
	}
	return lock
}

// Reserve increments the flight's booked-seat counter by n. It fails
// without mutating anything if the flight is missing, n is not positive,
// or fewer than n seats remain.
func (l *Ledger) Reserve(ctx context.Context, flightID string, n int) error {
	if n <= 0 {
		return domain.ErrInvalidQuantity
	}

	lock := l.flightLock(flightID)
	lock.Lock()
	defer lock.Unlock()

	flight, err := l.flights.GetByID(ctx, flightID)
	if err != nil {
		return err
	}
	if n > flight.AvailableSeats() {
		return domain.ErrCapacityExceeded
	}

	flight.BookedSeats += n
	if err := l.flights.Save(ctx, flight); err != nil {
		return fmt.Errorf("reserve %d seats on flight %s: %w", n, flightID, err)
	}
	return nil
}

// Release decrements the flight's booked-seat counter by n, clamped at
// zero. A missing flight is a logged no-op: releasing seats on a flight
// that vanished has nothing left to correct.
func (l *Ledger) Release(ctx context.Context, flightID string, n int) error {
	if n <= 0 {
		return nil
	}

	lock := l.flightLock(flightID)
	lock.Lock()
	defer lock.Unlock()

	flight, err := l.flights.GetByID(ctx, flightID)
	if err != nil {
		if errors.Is(err, domain.ErrFlightNotFound) {
			log.Printf("release %d seats: flight %s no longer exists, skipping", n, flightID)
			return nil
		}
		return err
	}

	flight.BookedSeats -= n
	if flight.BookedSeats < 0 {
		flight.BookedSeats = 0
	}
	if err := l.flights.Save(ctx, flight); err != nil {
		return fmt.Errorf("release %d seats on flight %s: %w", n, flightID, err)
	}
	return nil
}
