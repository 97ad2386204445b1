package flow

import (
	"errors"
	"time"
)

// ErrSessionNotFound is returned when no flow session exists for an id
var ErrSessionNotFound = errors.New("flow session not found")

// FlightContext is the flight the session is booking, captured when the
// session opens (the SPA carries the same fields from the search screen).
type FlightContext struct {
	FlightID      int64     `json:"flight_id"`
	Airline       string    `json:"airline,omitempty"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	Price         float64   `json:"price"`
	Passengers    int       `json:"passengers"`
	TicketClass   string    `json:"ticket_class,omitempty"`
	DepartureDate string    `json:"departure_date,omitempty"` // YYYY-MM-DD, user-picked
	DepartureTime time.Time `json:"departure_time,omitempty"` // flight's own schedule, if known
}

// Route renders the display route ("DEL to BOM")
func (fc FlightContext) Route() string {
	return fc.Origin + " to " + fc.Destination
}

// RouteKey renders the hash key form ("DEL-BOM")
func (fc FlightContext) RouteKey() string {
	return fc.Origin + "-" + fc.Destination
}
