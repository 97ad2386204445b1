package passengers

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

// recordingClient captures every upstream call for assertions
type recordingClient struct {
	calls          []string
	bookingID      int64
	createErr      error
	saveErr        error
	createRequests []upstream.CreateBookingRequest
	saveRequests   []upstream.SavePassengersRequest
	deleted        []int64
}

func (r *recordingClient) GetBookedSeats(ctx context.Context, flightID string) ([]string, error) {
	r.calls = append(r.calls, "GetBookedSeats")
	return nil, nil
}

func (r *recordingClient) CreateBooking(ctx context.Context, req upstream.CreateBookingRequest) (int64, error) {
	r.calls = append(r.calls, "CreateBooking")
	r.createRequests = append(r.createRequests, req)
	if r.createErr != nil {
		return 0, r.createErr
	}
	return r.bookingID, nil
}

func (r *recordingClient) SavePassengerDetails(ctx context.Context, req upstream.SavePassengersRequest) error {
	r.calls = append(r.calls, "SavePassengerDetails")
	r.saveRequests = append(r.saveRequests, req)
	return r.saveErr
}

func (r *recordingClient) GetPassengerDetails(ctx context.Context, bookingID int64) ([]upstream.PassengerDetail, error) {
	r.calls = append(r.calls, "GetPassengerDetails")
	return nil, nil
}

func (r *recordingClient) DeletePassengerDetails(ctx context.Context, bookingID int64) error {
	r.calls = append(r.calls, "DeletePassengerDetails")
	r.deleted = append(r.deleted, bookingID)
	return nil
}

func (r *recordingClient) DeleteBooking(ctx context.Context, bookingID int64) error {
	r.calls = append(r.calls, "DeleteBooking")
	r.deleted = append(r.deleted, bookingID)
	return nil
}

// capturingPublisher records booking events
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
	client := &recordingClient{bookingID: 7001}
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
	require.NoError(t, drafts.Write(ctx, sessionID, draft.NewDraft(*fc, []string{"14A", "14C"}, time.Now())))
	require.NoError(t, flows.Advance(ctx, sessionID, flow.StateSeatsChosen))

	return &fixture{
		svc:       NewService(flows, drafts, client, publisher),
		flows:     flows,
		drafts:    drafts,
		client:    client,
		publisher: publisher,
		sessionID: sessionID,
	}
}

func twoForms() []PassengerForm {
	return []PassengerForm{
		{FirstName: "Asha", LastName: "Verma", Age: 34, Gender: "Female", Nationality: "Indian"},
		{FirstName: "Rohan", LastName: "Verma", Age: 36, Gender: "Male", Nationality: "Indian", PassportNumber: "Z1234567"},
	}
}

func TestSubmitHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Submit(ctx, f.sessionID, twoForms())
	require.NoError(t, err)

	assert.Equal(t, int64(7001), resp.BookingID)
	assert.Equal(t, 2, resp.Passengers)
	assert.Equal(t, "/payment", resp.Redirect)

	// booking first, then passengers, nothing else
	assert.Equal(t, []string{"CreateBooking", "SavePassengerDetails"}, f.client.calls)

	created := f.client.createRequests[0]
	assert.Equal(t, int64(42), created.FlightID)
	assert.Equal(t, "DEL to BOM", created.Route)
	assert.Equal(t, "14A, 14C", created.SelectedSeats)
	assert.Equal(t, 10000.0, created.TotalAmount)

	saved := f.client.saveRequests[0]
	assert.Equal(t, int64(7001), saved.BookingID)
	require.Len(t, saved.Passengers, 2)
	// seats come from the confirmed selection, in form order
	assert.Equal(t, "14A", saved.Passengers[0].SeatNo)
	assert.Equal(t, "14C", saved.Passengers[1].SeatNo)
	assert.Equal(t, "Asha", saved.Passengers[0].FirstName)

	// draft promoted to complete
	_, err = f.drafts.Read(ctx, f.sessionID)
	assert.ErrorIs(t, err, draft.ErrNoDraft)
	cb, err := f.drafts.ReadComplete(ctx, f.sessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(7001), cb.BookingID)

	// flow advanced
	state, err := f.flows.State(ctx, f.sessionID)
	require.NoError(t, err)
	assert.Equal(t, flow.StateDetailsSubmitted, state)

	// event published
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, notifications.EventBookingCreated, f.publisher.events[0].Type)
	assert.Equal(t, int64(7001), f.publisher.events[0].BookingID)
}

func TestSubmitValidationMakesNoUpstreamCalls(t *testing.T) {
	f := newFixture(t)

	forms := twoForms()
	forms[1].Age = 0

	_, err := f.svc.Submit(context.Background(), f.sessionID, forms)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Index)

	assert.Empty(t, f.client.calls)
	assert.Empty(t, f.publisher.events)
}

func TestSubmitWhitespaceOnlyFieldMakesNoUpstreamCalls(t *testing.T) {
	f := newFixture(t)

	forms := twoForms()
	forms[0].FirstName = "   "
	forms[1].Nationality = "\t "

	_, err := f.svc.Submit(context.Background(), f.sessionID, forms)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "FirstName", verr.Field)

	assert.Empty(t, f.client.calls)
	assert.Empty(t, f.publisher.events)
}

func TestSubmitSavesTrimmedNames(t *testing.T) {
	f := newFixture(t)

	forms := twoForms()
	forms[0].FirstName = "  Asha "
	forms[0].LastName = " Verma\t"

	_, err := f.svc.Submit(context.Background(), f.sessionID, forms)
	require.NoError(t, err)

	saved := f.client.saveRequests[0]
	assert.Equal(t, "Asha", saved.Passengers[0].FirstName)
	assert.Equal(t, "Verma", saved.Passengers[0].LastName)
}

func TestSubmitCountMismatchMakesNoUpstreamCalls(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), f.sessionID, twoForms()[:1])
	assert.ErrorIs(t, err, ErrFormCountMismatch)
	assert.Empty(t, f.client.calls)
}

func TestSubmitWithoutDraft(t *testing.T) {
	f := newFixture(t)
	flows := flow.NewManager(flow.NewMemoryStore())
	sessionID, err := flows.Open(context.Background(), flow.FlightContext{FlightID: 1, Origin: "DEL", Destination: "BOM", Price: 1, Passengers: 2})
	require.NoError(t, err)

	svc := NewService(flows, draft.NewMemoryStore(), f.client, f.publisher)
	_, err = svc.Submit(context.Background(), sessionID, twoForms())
	assert.ErrorIs(t, err, draft.ErrNoDraft)
	assert.Empty(t, f.client.calls)
}

func TestSubmitCreateBookingFails(t *testing.T) {
	f := newFixture(t)
	f.client.createErr = errors.New("backend rejected booking")

	_, err := f.svc.Submit(context.Background(), f.sessionID, twoForms())
	require.Error(t, err)

	// nothing saved, draft untouched, flow not advanced
	assert.Equal(t, []string{"CreateBooking"}, f.client.calls)
	_, err = f.drafts.Read(context.Background(), f.sessionID)
	assert.NoError(t, err)
	state, _ := f.flows.State(context.Background(), f.sessionID)
	assert.Equal(t, flow.StateSeatsChosen, state)
}

func TestSubmitSavePassengersFailsLeavesBooking(t *testing.T) {
	f := newFixture(t)
	f.client.saveErr = errors.New("backend rejected passengers")

	_, err := f.svc.Submit(context.Background(), f.sessionID, twoForms())
	require.Error(t, err)

	// the created booking is not rolled back; the backend reconciles it
	assert.Equal(t, []string{"CreateBooking", "SavePassengerDetails"}, f.client.calls)
	assert.Empty(t, f.client.deleted)

	// flow stays on the details screen so the user can retry
	state, _ := f.flows.State(context.Background(), f.sessionID)
	assert.Equal(t, flow.StateSeatsChosen, state)
}
