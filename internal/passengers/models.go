package passengers

import "strings"

// PassengerForm is one passenger's details as entered on the form. Field
// order matters: the validator reports the first violation in this order.
type PassengerForm struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Age            int    `json:"age" validate:"required,min=1,max=120"`
	Gender         string `json:"gender" validate:"required,oneof=Male Female Other"`
	Nationality    string `json:"nationality" validate:"required"`
	PassportNumber string `json:"passport_number"` // optional, international flights only
}

func (f *PassengerForm) trim() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Gender = strings.TrimSpace(f.Gender)
	f.Nationality = strings.TrimSpace(f.Nationality)
	f.PassportNumber = strings.TrimSpace(f.PassportNumber)
}

// SubmitRequest carries the whole form set
type SubmitRequest struct {
	Passengers []PassengerForm `json:"passengers"`
}

// SubmitResponse is returned after the booking and its passenger records
// are saved upstream
type SubmitResponse struct {
	BookingID  int64  `json:"booking_id"`
	Passengers int    `json:"passengers"`
	Redirect   string `json:"redirect"`
}
