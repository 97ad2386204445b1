package upstream

import "time"

// CreateBookingRequest is the payload the reservation backend expects for a
// new booking. Field names follow the backend's JSON contract.
type CreateBookingRequest struct {
	FlightID      int64     `json:"flightId"`
	Flight        string    `json:"flight"`
	Route         string    `json:"route"`
	SelectedSeats string    `json:"selectedSeats"`
	Passengers    int       `json:"passengers"`
	TotalAmount   float64   `json:"totalAmount"`
	TicketType    string    `json:"ticketType"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
}

// CreateBookingResponse carries the backend-assigned booking identifier.
type CreateBookingResponse struct {
	BookingID int64 `json:"bookingId"`
}

// PassengerDetail is one saved passenger record.
type PassengerDetail struct {
	SeatNo         string `json:"seatNo"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	PassportNumber string `json:"passportNumber"`
	Nationality    string `json:"nationality"`
}

// SavePassengersRequest attaches passenger records to a booking.
type SavePassengersRequest struct {
	BookingID  int64             `json:"bookingId"`
	Passengers []PassengerDetail `json:"passengers"`
}
