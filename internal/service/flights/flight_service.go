package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mlitvin/flightbooking/internal/domain"
	"github.com/mlitvin/flightbooking/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Status(ctx context.Context, id string) (string, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

type CreateFlightInput struct {
	Airline       string `json:"airline"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Capacity      int    `json:"capacity"`
	PriceCents    int64  `json:"price_cents"`
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// Status checks the flight exists and reports its status. There is no
// live status feed wired in, so every known flight reports on time.
func (s *FlightService) Status(ctx context.Context, id string) (string, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return "", err
	}
	return domain.FlightStatusOnTime, nil
}

// Create registers a new flight with zero booked seats. Capacity is
// immutable after this point; only the ledger touches bookedSeats.
func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	flight, err := flightFromInput(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, flight); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

func flightFromInput(input CreateFlightInput) (*domain.Flight, error) {
	if input.Airline == "" || input.Destination == "" {
		return nil, fmt.Errorf("%w: airline and destination are required", domain.ErrInvalidFlight)
	}
	if input.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", domain.ErrInvalidFlight)
	}
	departure, err := parseTime(input.DepartureTime)
	if err != nil {
		return nil, fmt.Errorf("%w: departure_time: %v", domain.ErrInvalidFlight, err)
	}
	arrival, err := parseTime(input.ArrivalTime)
	if err != nil {
		return nil, fmt.Errorf("%w: arrival_time: %v", domain.ErrInvalidFlight, err)
	}
	if arrival.Before(departure) {
		return nil, fmt.Errorf("%w: arrival before departure", domain.ErrInvalidFlight)
	}

	return &domain.Flight{
		ID:            uuid.NewString(),
		Airline:       input.Airline,
		Destination:   input.Destination,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		Capacity:      input.Capacity,
		BookedSeats:   0,
		PriceCents:    input.PriceCents,
	}, nil
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("missing timestamp")
	}
	return time.Parse(time.RFC3339, value)
}

var _ FlightUseCase = (*FlightService)(nil)
