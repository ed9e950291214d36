package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mlitvin/flightbooking/internal/domain"
	"github.com/mlitvin/flightbooking/internal/repository"
	"github.com/mlitvin/flightbooking/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*Ledger, repository.FlightRepository) {
	t.Helper()
	repo := repository.NewFlightRepository(store.NewMemory())
	return New(repo), repo
}

func seedFlight(t *testing.T, repo repository.FlightRepository, id string, capacity, booked int) {
	t.Helper()
	err := repo.Save(context.Background(), &domain.Flight{
		ID:            id,
		Airline:       "Aeroflot",
		Destination:   "LED",
		DepartureTime: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		Capacity:      capacity,
		BookedSeats:   booked,
		PriceCents:    10000,
	})
	require.NoError(t, err)
}

func bookedSeats(t *testing.T, repo repository.FlightRepository, id string) int {
	t.Helper()
	flight, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return flight.BookedSeats
}

func TestLedger_Reserve_Success(t *testing.T) {
	ledger, repo := newTestLedger(t)
	seedFlight(t, repo, "F1", 10, 3)

	err := ledger.Reserve(context.Background(), "F1", 2)

	assert.NoError(t, err)
	assert.Equal(t, 5, bookedSeats(t, repo, "F1"))
}

func TestLedger_Reserve_CapacityExceeded(t *testing.T) {
	ledger, repo := newTestLedger(t)
	seedFlight(t, repo, "F1", 10, 9)

	err := ledger.Reserve(context.Background(), "F1", 2)

	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, 9, bookedSeats(t, repo, "F1"))
}

func TestLedger_Reserve_ExactRemainingSeats(t *testing.T) {
	ledger, repo := newTestLedger(t)
	seedFlight(t, repo, "F1", 10, 8)

	err := ledger.Reserve(context.Background(), "F1", 2)

	assert.NoError(t, err)
	assert.Equal(t, 10, bookedSeats(t, repo, "F1"))
}

func TestLedger_Reserve_InvalidQuantity(t *testing.T) {
	ledger, repo := newTestLedger(t)
	seedFlight(t, repo, "F1", 10, 0)

	assert.ErrorIs(t, ledger.Reserve(context.Background(), "F1", 0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, ledger.Reserve(context.Background(), "F1", -3), domain.ErrInvalidQuantity)
	assert.Equal(t, 0, bookedSeats(t, repo, "F1"))
}

func TestLedger_Reserve_FlightNotFound(t *testing.T) {
	ledger, _ := newTestLedger(t)

	err := ledger.Reserve(context.Background(), "missing", 1)

	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}

func TestLedger_Release_RoundTrip(t *testing.T) {
	ledger, repo := newTestLedger(t)
	seedFlight(t, repo, "F1", 10, 4)

	require.NoError(t, ledger.Reserve(context.Background(), "F1", 3))
	require.NoError(t, ledger.Release(context.Background(), "F1", 3))

	assert.Equal(t, 4, bookedSeats(t, repo, "F1"))
}

func TestLedger_Release_ClampsAtZero(t *testing.T) {
	ledger, repo := newTestLedger(t)
	seedFlight(t, repo, "F1", 10, 2)

	err := ledger.Release(context.Background(), "F1", 5)

	assert.NoError(t, err)
	assert.Equal(t, 0, bookedSeats(t, repo, "F1"))
}

func TestLedger_Release_MissingFlightIsNoOp(t *testing.T) {
	ledger, _ := newTestLedger(t)

	err := ledger.Release(context.Background(), "vanished", 2)

	assert.NoError(t, err)
}

func TestLedger_ConcurrentReserve_NoOverbooking(t *testing.T) {
	ledger, repo := newTestLedger(t)
	seedFlight(t, repo, "F1", 10, 0)

	const callers = 100
	results := make(chan error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- ledger.Reserve(context.Background(), "F1", 1)
		}()
	}
	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, domain.ErrCapacityExceeded):
			rejected++
		}
	}

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, callers-10, rejected)
	assert.Equal(t, 10, bookedSeats(t, repo, "F1"))
}

func TestLedger_ConcurrentReserveAndRelease_InvariantHolds(t *testing.T) {
	ledger, repo := newTestLedger(t)
	seedFlight(t, repo, "F1", 5, 0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ledger.Reserve(context.Background(), "F1", 1); err == nil {
				_ = ledger.Release(context.Background(), "F1", 1)
			}
		}()
	}
	wg.Wait()

	booked := bookedSeats(t, repo, "F1")
	assert.GreaterOrEqual(t, booked, 0)
	assert.LessOrEqual(t, booked, 5)
	assert.Equal(t, 0, booked)
}
