package draft

import (
	"strings"
	"time"

	"simplyfly/internal/flights"
	"simplyfly/internal/flow"
	"simplyfly/internal/upstream"
)

// BookingDraft is the pre-confirmation booking state: everything the
// passenger-details screen needs, carried across navigation. It has no
// backend id yet.
type BookingDraft struct {
	FlightID      int64     `json:"flight_id"`
	Airline       string    `json:"airline"`
	FlightNumber  string    `json:"flight_number"`
	Route         string    `json:"route"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	SelectedSeats string    `json:"selected_seats"` // joined ", " per the backend contract
	Passengers    int       `json:"passengers"`
	UnitPrice     float64   `json:"unit_price"`
	TotalAmount   float64   `json:"total_amount"`
	TicketType    string    `json:"ticket_type"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CreatedAt     time.Time `json:"created_at"`
}

// SeatList splits the joined seat string back into individual seat ids
func (d BookingDraft) SeatList() []string {
	if d.SelectedSeats == "" {
		return nil
	}
	parts := strings.Split(d.SelectedSeats, ", ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CompleteBooking is the draft after the backend assigned an id and the
// passenger records were saved. It replaces the draft slot and lives until
// the payment step resolves.
type CompleteBooking struct {
	BookingDraft
	BookingID  int64                      `json:"booking_id"`
	Records    []upstream.PassengerDetail `json:"passengers"`
	PromotedAt time.Time                  `json:"promoted_at"`
}

const (
	defaultTicketType = "Economy"

	// The backend does not expose per-flight arrival schedules to the flow,
	// so arrival is approximated as departure + 3h. Known simplification.
	arrivalOffset = 3 * time.Hour

	departureFallback = 2 * time.Hour
	boardingHour      = 10
	boardingMinute    = 30
)

// NewDraft builds a BookingDraft from the session's flight context and the
// confirmed seat selection. Departure resolution order: user-picked date at
// 10:30, then the flight's own schedule, then now+2h.
func NewDraft(fc flow.FlightContext, seats []string, now time.Time) BookingDraft {
	var departure time.Time
	switch {
	case fc.DepartureDate != "":
		if day, err := time.Parse("2006-01-02", fc.DepartureDate); err == nil {
			departure = time.Date(day.Year(), day.Month(), day.Day(), boardingHour, boardingMinute, 0, 0, now.Location())
		}
	case !fc.DepartureTime.IsZero():
		departure = fc.DepartureTime
	}
	if departure.IsZero() {
		if !fc.DepartureTime.IsZero() {
			departure = fc.DepartureTime
		} else {
			departure = now.Add(departureFallback)
		}
	}

	ticketType := fc.TicketClass
	if ticketType == "" {
		ticketType = defaultTicketType
	}

	airline := flights.AirlineForRoute(fc.Airline, fc.RouteKey())

	return BookingDraft{
		FlightID:      fc.FlightID,
		Airline:       airline.Name,
		FlightNumber:  flights.FlightNumber(airline.Code, fc.RouteKey()),
		Route:         fc.Route(),
		Origin:        fc.Origin,
		Destination:   fc.Destination,
		SelectedSeats: strings.Join(seats, ", "),
		Passengers:    fc.Passengers,
		UnitPrice:     fc.Price,
		TotalAmount:   fc.Price * float64(fc.Passengers),
		TicketType:    ticketType,
		DepartureTime: departure,
		ArrivalTime:   departure.Add(arrivalOffset),
		CreatedAt:     now,
	}
}
