package draft

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreDraftRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Read(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoDraft)

	d := BookingDraft{FlightID: 42, Route: "DEL to BOM", Passengers: 2}
	require.NoError(t, store.Write(ctx, "s1", d))

	got, err := store.Read(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, d, got)

	// sessions do not see each other's drafts
	_, err = store.Read(ctx, "s2")
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestMemoryStorePromoteReplacesDraft(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	d := BookingDraft{FlightID: 42, Passengers: 2}
	require.NoError(t, store.Write(ctx, "s1", d))

	cb := CompleteBooking{BookingDraft: d, BookingID: 7001}
	require.NoError(t, store.PromoteToComplete(ctx, "s1", cb))

	// draft slot is gone, complete slot holds the booking
	_, err := store.Read(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoDraft)

	got, err := store.ReadComplete(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(7001), got.BookingID)
}

func TestMemoryStoreClearComplete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.PromoteToComplete(ctx, "s1", CompleteBooking{BookingID: 7001}))
	require.NoError(t, store.ClearComplete(ctx, "s1"))

	_, err := store.ReadComplete(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoCompleteBooking)

	// clearing an empty slot is fine
	assert.NoError(t, store.ClearComplete(ctx, "s1"))
}
