package payment

import (
	"errors"

	"simplyfly/internal/draft"
	"simplyfly/internal/upstream"
)

var (
	ErrAlreadyPaid    = errors.New("booking already paid")
	ErrInvalidPayment = errors.New("invalid payment details")
)

type Method string

const (
	MethodCard Method = "card"
	MethodUPI  Method = "upi"
)

// PayRequest carries payment details. Card numbers are never stored or
// forwarded; this flow only simulates the charge.
type PayRequest struct {
	Method     Method `json:"method" binding:"required"`
	CardNumber string `json:"card_number,omitempty"`
	CardHolder string `json:"card_holder,omitempty"`
	Expiry     string `json:"expiry,omitempty"`
	CVV        string `json:"cvv,omitempty"`
	UPIID      string `json:"upi_id,omitempty"`
}

// View is the payment screen payload: the booking being paid for plus its
// saved passenger records.
type View struct {
	Booking    draft.CompleteBooking      `json:"booking"`
	Passengers []upstream.PassengerDetail `json:"passengers"`
	Amount     float64                    `json:"amount"`
	Stale      bool                       `json:"stale"` // true when records came from the local copy
}

type PayResponse struct {
	BookingID int64   `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Method    Method  `json:"method"`
	Redirect  string  `json:"redirect"`
}

type AbandonResponse struct {
	BookingID int64  `json:"booking_id,omitempty"`
	CleanedUp bool   `json:"cleaned_up"`
	Redirect  string `json:"redirect"`
}
