package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mlitvin/flightbooking/internal/domain"
	"github.com/mlitvin/flightbooking/internal/store"
)

// Payments are append-only; there is no update or delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	List(ctx context.Context) ([]domain.Payment, error)
}

type StorePaymentRepository struct {
	store store.Store
}

func NewPaymentRepository(s store.Store) PaymentRepository {
	return &StorePaymentRepository{store: s}
}

func (r *StorePaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	value, err := json.Marshal(payment)
	if err != nil {
		return fmt.Errorf("encode payment %s: %w", payment.ID, err)
	}
	if err := r.store.Put(ctx, store.SpacePayments, payment.ID, value); err != nil {
		return fmt.Errorf("save payment %s: %w", payment.ID, err)
	}
	return nil
}

func (r *StorePaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	values, err := r.store.List(ctx, store.SpacePayments)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	payments := make([]domain.Payment, 0, len(values))
	for _, value := range values {
		var p domain.Payment
		if err := json.Unmarshal(value, &p); err != nil {
			return nil, fmt.Errorf("decode payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

var _ PaymentRepository = (*StorePaymentRepository)(nil)
