package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is the reservation backend the flow delegates persistence to.
// The flow never retries: a failed call surfaces immediately, except where
// the caller's failure policy says otherwise (seat map fail-open, cleanup).
type Client interface {
	GetBookedSeats(ctx context.Context, flightID string) ([]string, error)
	CreateBooking(ctx context.Context, req CreateBookingRequest) (int64, error)
	SavePassengerDetails(ctx context.Context, req SavePassengersRequest) error
	GetPassengerDetails(ctx context.Context, bookingID int64) ([]PassengerDetail, error)
	DeletePassengerDetails(ctx context.Context, bookingID int64) error
	DeleteBooking(ctx context.Context, bookingID int64) error
}

// HTTPClient talks JSON over HTTP to the reservation backend
type HTTPClient struct {
	baseURL      string
	serviceToken string
	client       *http.Client
}

// ClientConfig configures the reservation backend client
type ClientConfig struct {
	BaseURL      string
	Timeout      time.Duration
	ServiceToken string
}

func NewHTTPClient(cfg ClientConfig) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		serviceToken: cfg.ServiceToken,
		client:       &http.Client{Timeout: timeout},
	}
}

// GetBookedSeats returns the seat identifiers already booked on a flight
func (h *HTTPClient) GetBookedSeats(ctx context.Context, flightID string) ([]string, error) {
	var seats []string
	err := h.do(ctx, http.MethodGet, fmt.Sprintf("/Bookings/flight/%s/seats", flightID), nil, &seats)
	if err != nil {
		return nil, err
	}
	return seats, nil
}

// CreateBooking creates a booking and returns the backend-assigned id
func (h *HTTPClient) CreateBooking(ctx context.Context, req CreateBookingRequest) (int64, error) {
	var resp CreateBookingResponse
	if err := h.do(ctx, http.MethodPost, "/Bookings", req, &resp); err != nil {
		return 0, fmt.Errorf("create booking: %w", err)
	}
	return resp.BookingID, nil
}

// SavePassengerDetails attaches passenger records to an existing booking
func (h *HTTPClient) SavePassengerDetails(ctx context.Context, req SavePassengersRequest) error {
	if err := h.do(ctx, http.MethodPost, "/Passenger/details", req, nil); err != nil {
		return fmt.Errorf("save passenger details: %w", err)
	}
	return nil
}

// GetPassengerDetails fetches the saved passenger records for a booking
func (h *HTTPClient) GetPassengerDetails(ctx context.Context, bookingID int64) ([]PassengerDetail, error) {
	var passengers []PassengerDetail
	if err := h.do(ctx, http.MethodGet, fmt.Sprintf("/Passenger/booking/%d", bookingID), nil, &passengers); err != nil {
		return nil, fmt.Errorf("get passenger details: %w", err)
	}
	return passengers, nil
}

// DeletePassengerDetails removes the passenger records of a booking
func (h *HTTPClient) DeletePassengerDetails(ctx context.Context, bookingID int64) error {
	if err := h.do(ctx, http.MethodDelete, fmt.Sprintf("/Passenger/booking/%d", bookingID), nil, nil); err != nil {
		return fmt.Errorf("delete passenger details: %w", err)
	}
	return nil
}

// DeleteBooking removes a booking
func (h *HTTPClient) DeleteBooking(ctx context.Context, bookingID int64) error {
	if err := h.do(ctx, http.MethodDelete, fmt.Sprintf("/Bookings/%d", bookingID), nil, nil); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

func (h *HTTPClient) do(ctx context.Context, method, path string, body interface{}, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if h.serviceToken != "" {
		req.Header.Set("Authorization", "Bearer "+h.serviceToken)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upstream %s %s returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}
