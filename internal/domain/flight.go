package domain

import "time"

const FlightStatusOnTime = "ON_TIME"

type Flight struct {
	ID            string    `json:"id"`
	Airline       string    `json:"airline"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Capacity      int       `json:"capacity"`
	BookedSeats   int       `json:"bookedSeats"`
	PriceCents    int64     `json:"priceCents"`
}

// AvailableSeats is the number of seats still open for booking.
func (f Flight) AvailableSeats() int {
	return f.Capacity - f.BookedSeats
}
