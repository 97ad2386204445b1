package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"simplyfly/internal/draft"
	"simplyfly/internal/flow"
	"simplyfly/internal/notifications"
	"simplyfly/internal/upstream"
	"simplyfly/pkg/logger"
)

type Service interface {
	// Load builds the payment screen view, preferring fresh passenger
	// records from the backend over the stored copy.
	Load(ctx context.Context, sessionID string) (View, error)

	// Pay validates the payment details and marks the booking paid. The
	// paid state is recorded before the response goes out, so a concurrent
	// abandonment can never delete a paid booking.
	Pay(ctx context.Context, sessionID string, req PayRequest) (PayResponse, error)

	// Abandon tears down an unpaid booking: passenger records first, then
	// the booking itself. Cleanup errors are logged and swallowed; the
	// session resets either way. Paid bookings are left untouched.
	Abandon(ctx context.Context, sessionID string) (AbandonResponse, error)
}

type service struct {
	flows          *flow.Manager
	drafts         draft.Store
	client         upstream.Client
	publisher      notifications.Publisher
	cleanupTimeout time.Duration
	log            *logger.Logger
}

func NewService(flows *flow.Manager, drafts draft.Store, client upstream.Client, publisher notifications.Publisher, cleanupTimeout time.Duration) Service {
	if cleanupTimeout <= 0 {
		cleanupTimeout = 3 * time.Second
	}
	return &service{
		flows:          flows,
		drafts:         drafts,
		client:         client,
		publisher:      publisher,
		cleanupTimeout: cleanupTimeout,
		log:            logger.GetDefault(),
	}
}

func (s *service) Load(ctx context.Context, sessionID string) (View, error) {
	cb, err := s.drafts.ReadComplete(ctx, sessionID)
	if err != nil {
		return View{}, err
	}

	view := View{
		Booking:    cb,
		Passengers: cb.Records,
		Amount:     cb.TotalAmount,
	}

	// The backend copy wins when reachable; it may have been corrected
	// through other channels since submission.
	records, err := s.client.GetPassengerDetails(ctx, cb.BookingID)
	if err != nil {
		view.Stale = true
		s.log.WarnContext(ctx, "serving stored passenger records, backend fetch failed",
			"booking_id", cb.BookingID, "error", err.Error())
		return view, nil
	}
	view.Passengers = records
	return view, nil
}

func (s *service) Pay(ctx context.Context, sessionID string, req PayRequest) (PayResponse, error) {
	if err := validatePayment(req); err != nil {
		return PayResponse{}, err
	}

	cb, err := s.drafts.ReadComplete(ctx, sessionID)
	if err != nil {
		return PayResponse{}, err
	}

	state, err := s.flows.State(ctx, sessionID)
	if err != nil {
		return PayResponse{}, err
	}
	if state.AtLeast(flow.StatePaid) {
		return PayResponse{}, ErrAlreadyPaid
	}

	// Record paid before responding. Abandonment checks this state, so
	// once this write lands the booking is safe from cleanup.
	if err := s.flows.Advance(ctx, sessionID, flow.StatePaid); err != nil {
		return PayResponse{}, err
	}

	event := notifications.NewBookingEvent(notifications.EventPaymentCompleted, sessionID)
	event.BookingID = cb.BookingID
	event.FlightID = cb.FlightID
	event.Route = cb.Route
	event.Passengers = cb.Passengers
	event.Amount = cb.TotalAmount
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish payment completed event", err, map[string]interface{}{
			"booking_id": cb.BookingID,
		})
	}

	return PayResponse{
		BookingID: cb.BookingID,
		Amount:    cb.TotalAmount,
		Method:    req.Method,
		Redirect:  "/confirmation",
	}, nil
}

func (s *service) Abandon(ctx context.Context, sessionID string) (AbandonResponse, error) {
	state, err := s.flows.State(ctx, sessionID)
	if err != nil {
		return AbandonResponse{}, err
	}
	if state.AtLeast(flow.StatePaid) {
		return AbandonResponse{CleanedUp: false, Redirect: "/confirmation"}, nil
	}

	resp := AbandonResponse{Redirect: "/home"}

	cb, err := s.drafts.ReadComplete(ctx, sessionID)
	if err == nil {
		resp.BookingID = cb.BookingID
		s.cleanup(ctx, cb.BookingID)
		resp.CleanedUp = true
		s.log.LogBookingAbandoned(ctx, cb.BookingID, sessionID)

		event := notifications.NewBookingEvent(notifications.EventBookingAbandoned, sessionID)
		event.BookingID = cb.BookingID
		event.FlightID = cb.FlightID
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.log.ErrorWithContext(ctx, "failed to publish booking abandoned event", err, map[string]interface{}{
				"booking_id": cb.BookingID,
			})
		}

		if err := s.drafts.ClearComplete(ctx, sessionID); err != nil {
			s.log.LogCleanupFailure(ctx, cb.BookingID, "clear_complete", err)
		}
	}

	if err := s.flows.Reset(ctx, sessionID); err != nil {
		return AbandonResponse{}, fmt.Errorf("failed to reset flow session: %w", err)
	}
	return resp, nil
}

// cleanup deletes passenger records then the booking. Order matters: the
// backend rejects deleting a booking that still has records. Each step's
// failure is logged and swallowed so the user is never stuck on a dead
// payment screen.
func (s *service) cleanup(ctx context.Context, bookingID int64) {
	cctx, cancel := context.WithTimeout(ctx, s.cleanupTimeout)
	defer cancel()

	if err := s.client.DeletePassengerDetails(cctx, bookingID); err != nil {
		s.log.LogCleanupFailure(cctx, bookingID, "delete_passengers", err)
	}
	if err := s.client.DeleteBooking(cctx, bookingID); err != nil {
		s.log.LogCleanupFailure(cctx, bookingID, "delete_booking", err)
	}
}

func validatePayment(req PayRequest) error {
	switch req.Method {
	case MethodCard:
		if len(digitsOnly(req.CardNumber)) < 16 {
			return fmt.Errorf("%w: card number too short", ErrInvalidPayment)
		}
		if strings.TrimSpace(req.CardHolder) == "" {
			return fmt.Errorf("%w: cardholder name is required", ErrInvalidPayment)
		}
		if strings.TrimSpace(req.Expiry) == "" {
			return fmt.Errorf("%w: expiry is required", ErrInvalidPayment)
		}
		if len(req.CVV) < 3 {
			return fmt.Errorf("%w: cvv too short", ErrInvalidPayment)
		}
		return nil
	case MethodUPI:
		if !strings.Contains(req.UPIID, "@") {
			return fmt.Errorf("%w: malformed UPI id", ErrInvalidPayment)
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported method %q", ErrInvalidPayment, req.Method)
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
