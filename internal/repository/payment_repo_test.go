package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mlitvin/flightbooking/internal/domain"
	"github.com/mlitvin/flightbooking/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentRepository_CreateAndList(t *testing.T) {
	repo := NewPaymentRepository(store.NewMemory())
	ctx := context.Background()

	first := &domain.Payment{ID: "P1", BookingID: "B1", AmountCents: 20000, Timestamp: time.Date(2026, 8, 30, 16, 0, 0, 0, time.UTC)}
	second := &domain.Payment{ID: "P2", BookingID: "B1", AmountCents: 5000, Timestamp: time.Date(2026, 8, 30, 16, 5, 0, 0, time.UTC)}

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	payments, err := repo.List(ctx)
	assert.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, *first, payments[0])
	assert.Equal(t, *second, payments[1])
}

func TestPaymentRepository_EmptyList(t *testing.T) {
	repo := NewPaymentRepository(store.NewMemory())

	payments, err := repo.List(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, payments)
}
