package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventPaymentCompleted EventType = "payment.completed"
	EventBookingAbandoned EventType = "booking.abandoned"
)

// BookingEvent is the message published for each booking lifecycle change.
// Partitioned by session id so one session's events stay ordered.
type BookingEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	SessionID  string    `json:"session_id"`
	BookingID  int64     `json:"booking_id,omitempty"`
	FlightID   int64     `json:"flight_id,omitempty"`
	Route      string    `json:"route,omitempty"`
	Passengers int       `json:"passengers,omitempty"`
	Amount     float64   `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType EventType, sessionID string) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New(),
		Type:       eventType,
		SessionID:  sessionID,
		OccurredAt: time.Now(),
	}
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey keys messages so a session's events land on one partition
func (e *BookingEvent) GetPartitionKey() string {
	return e.SessionID
}
