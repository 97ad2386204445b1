package passengers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"simplyfly/internal/draft"
	"simplyfly/internal/flow"
	"simplyfly/internal/notifications"
	"simplyfly/internal/upstream"
	"simplyfly/pkg/logger"
)

type Service interface {
	// Submit validates the form set, creates the booking upstream, then
	// saves the passenger records against it. Validation failures make no
	// upstream calls at all.
	Submit(ctx context.Context, sessionID string, forms []PassengerForm) (SubmitResponse, error)
}

type service struct {
	flows     *flow.Manager
	drafts    draft.Store
	client    upstream.Client
	publisher notifications.Publisher
	now       func() time.Time
	log       *logger.Logger
}

func NewService(flows *flow.Manager, drafts draft.Store, client upstream.Client, publisher notifications.Publisher) Service {
	return &service{
		flows:     flows,
		drafts:    drafts,
		client:    client,
		publisher: publisher,
		now:       time.Now,
		log:       logger.GetDefault(),
	}
}

func (s *service) Submit(ctx context.Context, sessionID string, forms []PassengerForm) (SubmitResponse, error) {
	d, err := s.drafts.Read(ctx, sessionID)
	if err != nil {
		return SubmitResponse{}, err
	}

	if err := ValidateForms(forms, d.Passengers); err != nil {
		return SubmitResponse{}, err
	}

	bookingID, err := s.client.CreateBooking(ctx, upstream.CreateBookingRequest{
		FlightID:      d.FlightID,
		Flight:        d.FlightNumber,
		Route:         d.Route,
		SelectedSeats: d.SelectedSeats,
		Passengers:    d.Passengers,
		TotalAmount:   d.TotalAmount,
		TicketType:    d.TicketType,
		DepartureTime: d.DepartureTime,
		ArrivalTime:   d.ArrivalTime,
	})
	if err != nil {
		return SubmitResponse{}, fmt.Errorf("failed to create booking: %w", err)
	}
	s.log.LogBookingCreated(ctx, bookingID, strconv.FormatInt(d.FlightID, 10), sessionID)

	// Second call of the two-step protocol. If it fails the booking above
	// stays orphaned upstream; the backend owns reconciling those.
	records := buildRecords(forms, d.SeatList())
	if err := s.client.SavePassengerDetails(ctx, upstream.SavePassengersRequest{
		BookingID:  bookingID,
		Passengers: records,
	}); err != nil {
		return SubmitResponse{}, fmt.Errorf("failed to save passenger details: %w", err)
	}

	cb := draft.CompleteBooking{
		BookingDraft: d,
		BookingID:    bookingID,
		Records:      records,
		PromotedAt:   s.now(),
	}
	if err := s.drafts.PromoteToComplete(ctx, sessionID, cb); err != nil {
		return SubmitResponse{}, fmt.Errorf("failed to store complete booking: %w", err)
	}

	if err := s.flows.Advance(ctx, sessionID, flow.StateDetailsSubmitted); err != nil {
		return SubmitResponse{}, err
	}

	event := notifications.NewBookingEvent(notifications.EventBookingCreated, sessionID)
	event.BookingID = bookingID
	event.FlightID = d.FlightID
	event.Route = d.Route
	event.Passengers = d.Passengers
	event.Amount = d.TotalAmount
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish booking created event", err, map[string]interface{}{
			"booking_id": bookingID,
		})
	}

	return SubmitResponse{
		BookingID:  bookingID,
		Passengers: len(records),
		Redirect:   "/payment",
	}, nil
}

// buildRecords pairs each passenger with their seat from the confirmed
// selection, in form order.
func buildRecords(forms []PassengerForm, seats []string) []upstream.PassengerDetail {
	records := make([]upstream.PassengerDetail, len(forms))
	for i, form := range forms {
		seat := ""
		if i < len(seats) {
			seat = seats[i]
		}
		records[i] = upstream.PassengerDetail{
			SeatNo:         seat,
			FirstName:      form.FirstName,
			LastName:       form.LastName,
			Age:            form.Age,
			Gender:         form.Gender,
			PassportNumber: form.PassportNumber,
			Nationality:    form.Nationality,
		}
	}
	return records
}
