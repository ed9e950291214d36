package domain

import "time"

// Payment is a detached ledger record of money received for a booking.
// The booking reference may dangle if the booking is cancelled after
// payment; nothing in the inventory depends on it.
type Payment struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"bookingId"`
	AmountCents int64     `json:"amountCents"`
	Timestamp   time.Time `json:"timestamp"`
}
