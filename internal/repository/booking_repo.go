package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mlitvin/flightbooking/internal/domain"
	"github.com/mlitvin/flightbooking/internal/store"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Booking, error)
}

type StoreBookingRepository struct {
	store store.Store
}

func NewBookingRepository(s store.Store) BookingRepository {
	return &StoreBookingRepository{store: s}
}

func (r *StoreBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	value, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("encode booking %s: %w", booking.ID, err)
	}
	if err := r.store.Put(ctx, store.SpaceBookings, booking.ID, value); err != nil {
		return fmt.Errorf("save booking %s: %w", booking.ID, err)
	}
	return nil
}

func (r *StoreBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	value, err := r.store.Get(ctx, store.SpaceBookings, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking %s: %w", id, err)
	}
	var b domain.Booking
	if err := json.Unmarshal(value, &b); err != nil {
		return nil, fmt.Errorf("decode booking %s: %w", id, err)
	}
	return &b, nil
}

func (r *StoreBookingRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, store.SpaceBookings, id); err != nil {
		return fmt.Errorf("delete booking %s: %w", id, err)
	}
	return nil
}

func (r *StoreBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	values, err := r.store.List(ctx, store.SpaceBookings)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	bookings := make([]domain.Booking, 0, len(values))
	for _, value := range values {
		var b domain.Booking
		if err := json.Unmarshal(value, &b); err != nil {
			return nil, fmt.Errorf("decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

var _ BookingRepository = (*StoreBookingRepository)(nil)
