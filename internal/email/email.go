package email

import (
	"context"
	"fmt"

	"github.com/mlitvin/flightbooking/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("notify user %s about %s for flight %s (%d seats)\n", event.UserID, event.Type, event.FlightID, event.Seats)
	return nil
}
