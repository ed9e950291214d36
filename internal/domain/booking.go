package domain

import "time"

type Booking struct {
	ID              string    `json:"id"`
	FlightID        string    `json:"flightId"`
	UserID          string    `json:"userId"`
	Seats           int       `json:"seats"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	CreatedAt       time.Time `json:"createdAt"`
}
