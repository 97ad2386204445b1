package flow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() FlightContext {
	return FlightContext{
		FlightID:    42,
		Origin:      "DEL",
		Destination: "BOM",
		Price:       5000,
		Passengers:  2,
	}
}

func TestManagerOpen(t *testing.T) {
	m := NewManager(NewMemoryStore())
	ctx := context.Background()

	sessionID, err := m.Open(ctx, testContext())
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)

	state, err := m.State(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, StateNotStarted, state)

	fc, err := m.Context(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), fc.FlightID)
	assert.Equal(t, "DEL to BOM", fc.Route())
}

func TestManagerOpenDefaultsPassengers(t *testing.T) {
	m := NewManager(NewMemoryStore())
	fc := testContext()
	fc.Passengers = 0

	sessionID, err := m.Open(context.Background(), fc)
	require.NoError(t, err)

	stored, err := m.Context(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Passengers)
}

func TestManagerAdvanceForwardOnly(t *testing.T) {
	m := NewManager(NewMemoryStore())
	ctx := context.Background()
	sessionID, err := m.Open(ctx, testContext())
	require.NoError(t, err)

	require.NoError(t, m.Advance(ctx, sessionID, StateSeatsChosen))
	require.NoError(t, m.Advance(ctx, sessionID, StateDetailsSubmitted))

	// re-asserting the current state is a no-op
	require.NoError(t, m.Advance(ctx, sessionID, StateDetailsSubmitted))

	// moving backwards is rejected
	err = m.Advance(ctx, sessionID, StateSeatsChosen)
	var invalid *ErrInvalidTransition
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, StateDetailsSubmitted, invalid.From)
	assert.Equal(t, StateSeatsChosen, invalid.To)

	state, err := m.State(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, StateDetailsSubmitted, state)
}

func TestManagerRequireDoesNotClear(t *testing.T) {
	m := NewManager(NewMemoryStore())
	ctx := context.Background()
	sessionID, err := m.Open(ctx, testContext())
	require.NoError(t, err)
	require.NoError(t, m.Advance(ctx, sessionID, StateSeatsChosen))

	// passing the same check twice works: navigation back and forward
	// within the session re-enters passed screens
	require.NoError(t, m.Require(ctx, sessionID, StateSeatsChosen))
	require.NoError(t, m.Require(ctx, sessionID, StateSeatsChosen))

	err = m.Require(ctx, sessionID, StatePaid)
	var guard *GuardError
	require.ErrorAs(t, err, &guard)
	assert.Equal(t, StateSeatsChosen, guard.Current)
	assert.Equal(t, StatePaid, guard.Required)
}

func TestManagerReset(t *testing.T) {
	m := NewManager(NewMemoryStore())
	ctx := context.Background()
	sessionID, err := m.Open(ctx, testContext())
	require.NoError(t, err)
	require.NoError(t, m.SetSelection(ctx, sessionID, []string{"14A", "14C"}))
	require.NoError(t, m.Advance(ctx, sessionID, StateSeatsChosen))

	require.NoError(t, m.Reset(ctx, sessionID))

	_, err = m.Context(ctx, sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerSelectionRoundTrip(t *testing.T) {
	m := NewManager(NewMemoryStore())
	ctx := context.Background()
	sessionID, err := m.Open(ctx, testContext())
	require.NoError(t, err)

	seats, err := m.Selection(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, seats)

	require.NoError(t, m.SetSelection(ctx, sessionID, []string{"14A", "14C"}))
	seats, err = m.Selection(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"14A", "14C"}, seats)
}
