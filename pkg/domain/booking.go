package domain

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a reservation as returned by the Holidaze API. The client
// never derives bookings locally; it only reflects server records.
// Venue is present only when fetched with _venue=true, Customer only
// for venue-manager views.
type Booking struct {
	ID       uuid.UUID `json:"id"`
	DateFrom time.Time `json:"dateFrom"`
	DateTo   time.Time `json:"dateTo"`
	Guests   int       `json:"guests"`
	Venue    *Venue    `json:"venue,omitempty"`
	Customer *Customer `json:"customer,omitempty"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

// Customer is the guest who placed a booking.
type Customer struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar *Media `json:"avatar,omitempty"`
}

// Range returns the booking's stay as a DateRange.
func (b Booking) Range() DateRange {
	return DateRange{From: b.DateFrom, To: b.DateTo}
}
