package tickets

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

// buildETicketPDF renders the confirmation as a one-page A4 e-ticket.
func buildETicketPDF(conf Confirmation) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket "+conf.TicketNumber, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SIMPLYFLY E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ticket Number : %s", conf.TicketNumber),
		fmt.Sprintf("Booking Ref   : %d", conf.BookingID),
		fmt.Sprintf("Airline       : %s %s", safe(conf.Airline), conf.FlightNumber),
		fmt.Sprintf("Route         : %s", safe(conf.Route)),
		fmt.Sprintf("Departure     : %s", conf.Departure.Format("02 Jan 2006 15:04")),
		fmt.Sprintf("Arrival       : %s", conf.Arrival.Format("02 Jan 2006 15:04")),
		fmt.Sprintf("Duration      : %s", safe(conf.Duration)),
		fmt.Sprintf("Class         : %s", safe(conf.TicketType)),
		fmt.Sprintf("Seats         : %s", safe(conf.Seats)),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 9, "Passengers")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range conf.Passengers {
		pdf.Cell(0, 7, fmt.Sprintf("%d. %s %s  (seat %s, age %d, %s)",
			i+1, p.FirstName, p.LastName, safe(p.SeatNo), p.Age, p.Nationality))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total Paid    : INR %.2f", conf.TotalAmount))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render e-ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func safe(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
