package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(ClientConfig{
		BaseURL:      srv.URL,
		Timeout:      2 * time.Second,
		ServiceToken: "svc-token",
	})
}

func TestGetBookedSeats(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/Bookings/flight/42/seats", r.URL.Path)
		assert.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]string{"7A", "14C"})
	})

	seats, err := client.GetBookedSeats(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, []string{"7A", "14C"}, seats)
}

func TestCreateBooking(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Bookings", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateBookingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(42), req.FlightID)
		assert.Equal(t, "14A, 14C", req.SelectedSeats)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateBookingResponse{BookingID: 7001})
	})

	id, err := client.CreateBooking(context.Background(), CreateBookingRequest{
		FlightID:      42,
		SelectedSeats: "14A, 14C",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7001), id)
}

func TestSavePassengerDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Passenger/details", r.URL.Path)

		var req SavePassengersRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(7001), req.BookingID)
		assert.Len(t, req.Passengers, 1)

		w.WriteHeader(http.StatusOK)
	})

	err := client.SavePassengerDetails(context.Background(), SavePassengersRequest{
		BookingID:  7001,
		Passengers: []PassengerDetail{{SeatNo: "14A", FirstName: "Asha"}},
	})
	assert.NoError(t, err)
}

func TestDeleteOrder(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := context.Background()
	require.NoError(t, client.DeletePassengerDetails(ctx, 7001))
	require.NoError(t, client.DeleteBooking(ctx, 7001))

	assert.Equal(t, []string{"/Passenger/booking/7001", "/Bookings/7001"}, paths)
}

func TestNon2xxSurfacesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "flight is full", http.StatusConflict)
	})

	_, err := client.CreateBooking(context.Background(), CreateBookingRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "flight is full")
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.GetBookedSeats(ctx, "42")
	assert.Error(t, err)
}
