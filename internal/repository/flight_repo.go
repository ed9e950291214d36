package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mlitvin/flightbooking/internal/domain"
	"github.com/mlitvin/flightbooking/internal/store"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Save(ctx context.Context, flight *domain.Flight) error
}

type StoreFlightRepository struct {
	store store.Store
}

func NewFlightRepository(s store.Store) FlightRepository {
	return &StoreFlightRepository{store: s}
}

func (r *StoreFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	values, err := r.store.List(ctx, store.SpaceFlights)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	flights := make([]domain.Flight, 0, len(values))
	for _, value := range values {
		var f domain.Flight
		if err := json.Unmarshal(value, &f); err != nil {
			return nil, fmt.Errorf("decode flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, nil
}

func (r *StoreFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	value, err := r.store.Get(ctx, store.SpaceFlights, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, fmt.Errorf("get flight %s: %w", id, err)
	}
	var f domain.Flight
	if err := json.Unmarshal(value, &f); err != nil {
		return nil, fmt.Errorf("decode flight %s: %w", id, err)
	}
	return &f, nil
}

func (r *StoreFlightRepository) Save(ctx context.Context, flight *domain.Flight) error {
	value, err := json.Marshal(flight)
	if err != nil {
		return fmt.Errorf("encode flight %s: %w", flight.ID, err)
	}
	if err := r.store.Put(ctx, store.SpaceFlights, flight.ID, value); err != nil {
		return fmt.Errorf("save flight %s: %w", flight.ID, err)
	}
	return nil
}

var _ FlightRepository = (*StoreFlightRepository)(nil)
