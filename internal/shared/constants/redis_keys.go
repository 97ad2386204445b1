package constants

import "time"

// Redis key layout for the booking flow.
// Pattern: simplyfly:{slot}:{session-or-flight-id}

const KEY_PREFIX = "simplyfly"

// Flow state slots (one of each per flow session)
const (
	KEY_FLOW_STATE = KEY_PREFIX + ":flow:state:"   // + session-id -> flow state string
	KEY_FLOW_CTX   = KEY_PREFIX + ":flow:context:" // + session-id -> flight context JSON
	KEY_SELECTION  = KEY_PREFIX + ":flow:seats:"   // + session-id -> selected seat ids JSON
	KEY_DRAFT      = KEY_PREFIX + ":draft:"        // + session-id -> BookingDraft JSON
	KEY_COMPLETE   = KEY_PREFIX + ":complete:"     // + session-id -> CompleteBooking JSON
)

// Short-lived caches
const (
	KEY_BOOKED_SEATS = KEY_PREFIX + ":seatmap:booked:" // + flight-id -> booked seat ids JSON
)

// Default TTLs (overridable via config)
const (
	TTL_FLOW_SESSION = 24 * time.Hour
	TTL_DRAFT        = 30 * time.Minute
	TTL_BOOKED_SEATS = 30 * time.Second
)

func FlowStateKey(sessionID string) string   { return KEY_FLOW_STATE + sessionID }
func FlowContextKey(sessionID string) string { return KEY_FLOW_CTX + sessionID }
func SelectionKey(sessionID string) string   { return KEY_SELECTION + sessionID }
func DraftKey(sessionID string) string       { return KEY_DRAFT + sessionID }
func CompleteKey(sessionID string) string    { return KEY_COMPLETE + sessionID }
func BookedSeatsKey(flightID string) string  { return KEY_BOOKED_SEATS + flightID }
