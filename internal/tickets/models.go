package tickets

import (
	"strconv"
	"time"

	"simplyfly/internal/draft"
	"simplyfly/internal/flights"
	"simplyfly/internal/upstream"
)

// Confirmation is the final screen payload.
type Confirmation struct {
	TicketNumber string                     `json:"ticket_number"`
	BookingID    int64                      `json:"booking_id"`
	Airline      string                     `json:"airline"`
	FlightNumber string                     `json:"flight_number"`
	Route        string                     `json:"route"`
	Seats        string                     `json:"seats"`
	Passengers   []upstream.PassengerDetail `json:"passengers"`
	Departure    time.Time                  `json:"departure"`
	Arrival      time.Time                  `json:"arrival"`
	Duration     string                     `json:"duration"` // display value, e.g. "2h 20m"
	TicketType   string                     `json:"ticket_type"`
	TotalAmount  float64                    `json:"total_amount"`
}

// TicketNumber derives the display ticket number from a timestamp:
// "SF" plus the last eight digits of its unix milliseconds.
func TicketNumber(t time.Time) string {
	millis := strconv.FormatInt(t.UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return "SF" + millis
}

func newConfirmation(cb draft.CompleteBooking) Confirmation {
	return Confirmation{
		TicketNumber: TicketNumber(cb.PromotedAt),
		BookingID:    cb.BookingID,
		Airline:      cb.Airline,
		FlightNumber: cb.FlightNumber,
		Route:        cb.Route,
		Seats:        cb.SelectedSeats,
		Passengers:   cb.Records,
		Departure:    cb.DepartureTime,
		Arrival:      cb.ArrivalTime,
		Duration:     flights.FormatDuration(flights.Duration(cb.Origin, cb.Destination)),
		TicketType:   cb.TicketType,
		TotalAmount:  cb.TotalAmount,
	}
}
