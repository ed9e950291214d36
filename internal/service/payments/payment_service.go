package payments

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mlitvin/flightbooking/internal/domain"
	"github.com/mlitvin/flightbooking/internal/kafka"
	"github.com/mlitvin/flightbooking/internal/repository"
)

type PaymentUseCase interface {
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// PaymentService appends detached payment records. It deliberately does
// not check that the booking exists or that the amount matches the
// booking's price: a payment is a record of money movement, not a side
// effect on inventory.
type PaymentService struct {
	payments repository.PaymentRepository
	producer Producer
	topic    string
}

type RecordPaymentInput struct {
	BookingID   string `json:"booking_id"`
	AmountCents int64  `json:"amount_cents"`
}

func NewPaymentService(payments repository.PaymentRepository, producer Producer, topic string) *PaymentService {
	return &PaymentService{payments: payments, producer: producer, topic: topic}
}

func (s *PaymentService) RecordPayment(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error) {
	payment := &domain.Payment{
		ID:          uuid.NewString(),
		BookingID:   input.BookingID,
		AmountCents: input.AmountCents,
		Timestamp:   time.Now().UTC(),
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	if s.producer != nil && s.topic != "" {
		event := kafka.PaymentEvent{
			Type:        "payment_recorded",
			PaymentID:   payment.ID,
			BookingID:   payment.BookingID,
			AmountCents: payment.AmountCents,
			Timestamp:   payment.Timestamp,
		}
		if err := s.producer.Publish(ctx, s.topic, payment.ID, event); err != nil {
			log.Printf("WARNING: failed to publish payment_recorded event for payment %s: %v", payment.ID, err)
		}
	}
	return payment, nil
}

func (s *PaymentService) List(ctx context.Context) ([]domain.Payment, error) {
	return s.payments.List(ctx)
}

var _ PaymentUseCase = (*PaymentService)(nil)
