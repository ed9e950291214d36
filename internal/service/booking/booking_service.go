package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mlitvin/flightbooking/internal/domain"
	"github.com/mlitvin/flightbooking/internal/kafka"
	"github.com/mlitvin/flightbooking/internal/repository"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*Confirmation, error)
}

// SeatLedger serializes booked-seat mutations per flight.
type SeatLedger interface {
	Reserve(ctx context.Context, flightID string, n int) error
	Release(ctx context.Context, flightID string, n int) error
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	ledger             SeatLedger
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	releaseRetries     int
}

type CreateBookingInput struct {
	FlightID string `json:"flight_id"`
	UserID   string `json:"user_id"`
	Seats    int    `json:"seats"`
}

type Confirmation struct {
	BookingID string `json:"booking_id"`
	Message   string `json:"message"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithReleaseRetries sets how many times a failed seat release is
// retried during cancellation before the booking is kept.
func WithReleaseRetries(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.releaseRetries = n
		}
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	ledger SeatLedger,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:       bookings,
		flights:        flights,
		ledger:         ledger,
		cache:          cache,
		producer:       producer,
		bookingTopic:   bookingTopic,
		releaseRetries: 3,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking reserves seats and persists the booking as one logical
// transaction: if the booking record cannot be written after a
// successful reservation, the reservation is rolled back before the
// storage error surfaces.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.Seats <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Reserve(ctx, input.FlightID, input.Seats); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:              uuid.NewString(),
		FlightID:        input.FlightID,
		UserID:          input.UserID,
		Seats:           input.Seats,
		TotalPriceCents: int64(input.Seats) * flight.PriceCents,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if releaseErr := s.ledger.Release(ctx, input.FlightID, input.Seats); releaseErr != nil {
			log.Printf("rollback of %d seats on flight %s failed: %v", input.Seats, input.FlightID, releaseErr)
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	if err := s.publish(ctx, "booking_created", booking); err != nil {
		log.Printf("WARNING: failed to publish booking_created event for booking %s: %v", booking.ID, err)
	}
	return booking, nil
}

// CancelBooking releases the booking's own recorded seat count and only
// then deletes the record. A failing release is retried; if it keeps
// failing the booking stays so the seats are not lost.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) (*Confirmation, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.releaseWithRetry(ctx, booking.FlightID, booking.Seats); err != nil {
		return nil, fmt.Errorf("release seats for booking %s: %w", bookingID, err)
	}

	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		// Seats are already back in the pool; take them again so the
		// still-visible booking is not double-counted against capacity.
		if reserveErr := s.ledger.Reserve(ctx, booking.FlightID, booking.Seats); reserveErr != nil {
			log.Printf("re-reserve of %d seats on flight %s after failed delete: %v", booking.Seats, booking.FlightID, reserveErr)
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	if err := s.publish(ctx, "booking_cancelled", booking); err != nil {
		log.Printf("WARNING: failed to publish booking_cancelled event for booking %s: %v", booking.ID, err)
	}
	return &Confirmation{
		BookingID: bookingID,
		Message:   fmt.Sprintf("Booking with id=%s has been cancelled", bookingID),
	}, nil
}

func (s *BookingService) releaseWithRetry(ctx context.Context, flightID string, seats int) error {
	var lastErr error
	for i := 0; i < s.releaseRetries; i++ {
		err := s.ledger.Release(ctx, flightID, seats)
		if err == nil {
			return nil
		}
		lastErr = err
		log.Printf("release attempt %d for flight %s failed: %v", i+1, flightID, err)
		if i < s.releaseRetries-1 {
			time.Sleep(time.Duration(i+1) * 100 * time.Millisecond)
		}
	}
	return fmt.Errorf("failed after %d retries: %w", s.releaseRetries, lastErr)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:            eventType,
		BookingID:       booking.ID,
		FlightID:        booking.FlightID,
		UserID:          booking.UserID,
		Seats:           booking.Seats,
		TotalPriceCents: booking.TotalPriceCents,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
