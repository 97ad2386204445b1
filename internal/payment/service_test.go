package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"simplyfly/internal/draft"
	"simplyfly/internal/flow"
	"simplyfly/internal/notifications"
	"simplyfly/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	calls        []string
	passengers   []upstream.PassengerDetail
	passengerErr error
	deleteErr    error
}

func (r *recordingClient) GetBookedSeats(ctx context.Context, flightID string) ([]string, error) {
	r.calls = append(r.calls, "GetBookedSeats")
	return nil, nil
}

func (r *recordingClient) CreateBooking(ctx context.Context, req upstream.CreateBookingRequest) (int64, error) {
	r.calls = append(r.calls, "CreateBooking")
	return 0, nil
}

func (r *recordingClient) SavePassengerDetails(ctx context.Context, req upstream.SavePassengersRequest) error {
	r.calls = append(r.calls, "SavePassengerDetails")
	return nil
}

func (r *recordingClient) GetPassengerDetails(ctx context.Context, bookingID int64) ([]upstream.PassengerDetail, error) {
	r.calls = append(r.calls, "GetPassengerDetails")
	return r.passengers, r.passengerErr
}

func (r *recordingClient) DeletePassengerDetails(ctx context.Context, bookingID int64) error {
	r.calls = append(r.calls, "DeletePassengerDetails")
	return r.deleteErr
}

func (r *recordingClient) DeleteBooking(ctx context.Context, bookingID int64) error {
	r.calls = append(r.calls, "DeleteBooking")
	return r.deleteErr
}

type capturingPublisher struct {
	events []*notifications.BookingEvent
}

func (p *capturingPublisher) Publish(_ context.Context, e *notifications.BookingEvent) error {
	p.events = append(p.events, e)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

type fixture struct {
	svc       Service
	flows     *flow.Manager
	drafts    draft.Store
	client    *recordingClient
	publisher *capturingPublisher
	sessionID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	flows := flow.NewManager(flow.NewMemoryStore())
	drafts := draft.NewMemoryStore()
	client := &recordingClient{}
	publisher := &capturingPublisher{}

	sessionID, err := flows.Open(ctx, flow.FlightContext{
		FlightID:    42,
		Origin:      "DEL",
		Destination: "BOM",
		Price:       5000,
		Passengers:  2,
	})
	require.NoError(t, err)

	fc, err := flows.Context(ctx, sessionID)
	require.NoError(t, err)

	d := draft.NewDraft(*fc, []string{"14A", "14C"}, time.Now())
	records := []upstream.PassengerDetail{
		{SeatNo: "14A", FirstName: "Asha", LastName: "Verma", Age: 34, Gender: "Female", Nationality: "Indian"},
		{SeatNo: "14C", FirstName: "Rohan", LastName: "Verma", Age: 36, Gender: "Male", Nationality: "Indian"},
	}
	require.NoError(t, drafts.PromoteToComplete(ctx, sessionID, draft.CompleteBooking{
		BookingDraft: d,
		BookingID:    7001,
		Records:      records,
		PromotedAt:   time.Now(),
	}))
	require.NoError(t, flows.Advance(ctx, sessionID, flow.StateDetailsSubmitted))

	return &fixture{
		svc:       NewService(flows, drafts, client, publisher, time.Second),
		flows:     flows,
		drafts:    drafts,
		client:    client,
		publisher: publisher,
		sessionID: sessionID,
	}
}

func cardRequest() PayRequest {
	return PayRequest{
		Method:     MethodCard,
		CardNumber: "4111 1111 1111 1111",
		CardHolder: "Asha Verma",
		Expiry:     "12/28",
		CVV:        "123",
	}
}

func TestLoadPrefersBackendRecords(t *testing.T) {
	f := newFixture(t)
	f.client.passengers = []upstream.PassengerDetail{{SeatNo: "14A", FirstName: "Corrected"}}

	view, err := f.svc.Load(context.Background(), f.sessionID)
	require.NoError(t, err)

	assert.False(t, view.Stale)
	require.Len(t, view.Passengers, 1)
	assert.Equal(t, "Corrected", view.Passengers[0].FirstName)
	assert.Equal(t, 10000.0, view.Amount)
}

func TestLoadFallsBackToStoredRecords(t *testing.T) {
	f := newFixture(t)
	f.client.passengerErr = errors.New("backend down")

	view, err := f.svc.Load(context.Background(), f.sessionID)
	require.NoError(t, err)

	assert.True(t, view.Stale)
	require.Len(t, view.Passengers, 2)
	assert.Equal(t, "Asha", view.Passengers[0].FirstName)
}

func TestPayAdvancesToPaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Pay(ctx, f.sessionID, cardRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(7001), resp.BookingID)
	assert.Equal(t, 10000.0, resp.Amount)
	assert.Equal(t, "/confirmation", resp.Redirect)

	state, err := f.flows.State(ctx, f.sessionID)
	require.NoError(t, err)
	assert.Equal(t, flow.StatePaid, state)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, notifications.EventPaymentCompleted, f.publisher.events[0].Type)
}

func TestPayValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  PayRequest
	}{
		{"short card number", PayRequest{Method: MethodCard, CardNumber: "4111", CVV: "123"}},
		{"missing cardholder", PayRequest{Method: MethodCard, CardNumber: "4111111111111111", Expiry: "12/28", CVV: "123"}},
		{"blank cardholder", PayRequest{Method: MethodCard, CardNumber: "4111111111111111", CardHolder: "  ", Expiry: "12/28", CVV: "123"}},
		{"missing expiry", PayRequest{Method: MethodCard, CardNumber: "4111111111111111", CardHolder: "Asha Verma", CVV: "123"}},
		{"short cvv", PayRequest{Method: MethodCard, CardNumber: "4111111111111111", CardHolder: "Asha Verma", Expiry: "12/28", CVV: "12"}},
		{"malformed upi", PayRequest{Method: MethodUPI, UPIID: "no-at-sign"}},
		{"unknown method", PayRequest{Method: "cheque"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Pay(ctx, f.sessionID, tt.req)
			assert.ErrorIs(t, err, ErrInvalidPayment)
		})
	}

	// nothing changed
	state, err := f.flows.State(ctx, f.sessionID)
	require.NoError(t, err)
	assert.Equal(t, flow.StateDetailsSubmitted, state)
	assert.Empty(t, f.publisher.events)
}

func TestPayUPI(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Pay(context.Background(), f.sessionID, PayRequest{Method: MethodUPI, UPIID: "asha@okbank"})
	require.NoError(t, err)
	assert.Equal(t, MethodUPI, resp.Method)
}

func TestPayTwiceRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Pay(ctx, f.sessionID, cardRequest())
	require.NoError(t, err)

	_, err = f.svc.Pay(ctx, f.sessionID, cardRequest())
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestAbandonDeletesPassengersThenBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Abandon(ctx, f.sessionID)
	require.NoError(t, err)

	assert.True(t, resp.CleanedUp)
	assert.Equal(t, int64(7001), resp.BookingID)
	assert.Equal(t, "/home", resp.Redirect)

	// passenger records must go before the booking
	assert.Equal(t, []string{"DeletePassengerDetails", "DeleteBooking"}, f.client.calls)

	// complete slot cleared, flow reset
	_, err = f.drafts.ReadComplete(ctx, f.sessionID)
	assert.ErrorIs(t, err, draft.ErrNoCompleteBooking)
	_, err = f.flows.Context(ctx, f.sessionID)
	assert.ErrorIs(t, err, flow.ErrSessionNotFound)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, notifications.EventBookingAbandoned, f.publisher.events[0].Type)
}

func TestAbandonSkipsPaidBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Pay(ctx, f.sessionID, cardRequest())
	require.NoError(t, err)

	resp, err := f.svc.Abandon(ctx, f.sessionID)
	require.NoError(t, err)

	assert.False(t, resp.CleanedUp)
	assert.Equal(t, "/confirmation", resp.Redirect)
	assert.Empty(t, f.client.calls)

	// the paid booking and its state survive
	cb, err := f.drafts.ReadComplete(ctx, f.sessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(7001), cb.BookingID)
}

func TestAbandonSwallowsCleanupErrors(t *testing.T) {
	f := newFixture(t)
	f.client.deleteErr = errors.New("backend down")
	ctx := context.Background()

	resp, err := f.svc.Abandon(ctx, f.sessionID)
	require.NoError(t, err)

	// both deletes attempted despite failures, session still reset
	assert.True(t, resp.CleanedUp)
	assert.Equal(t, []string{"DeletePassengerDetails", "DeleteBooking"}, f.client.calls)
	_, err = f.flows.Context(ctx, f.sessionID)
	assert.ErrorIs(t, err, flow.ErrSessionNotFound)
}

func TestAbandonWithoutBookingStillResets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.drafts.ClearComplete(ctx, f.sessionID))

	resp, err := f.svc.Abandon(ctx, f.sessionID)
	require.NoError(t, err)

	assert.False(t, resp.CleanedUp)
	assert.Empty(t, f.client.calls)
	_, err = f.flows.Context(ctx, f.sessionID)
	assert.ErrorIs(t, err, flow.ErrSessionNotFound)
}
