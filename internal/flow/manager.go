package flow

import (
	"context"
	"fmt"

	"simplyfly/pkg/logger"

	"github.com/google/uuid"
)

// Manager owns flow sessions and enforces the forward-only state machine.
type Manager struct {
	store Store
	log   *logger.Logger
}

func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		log:   logger.GetDefault(),
	}
}

// Open creates a new flow session for a flight and returns its id
func (m *Manager) Open(ctx context.Context, fc FlightContext) (string, error) {
	if fc.Passengers < 1 {
		fc.Passengers = 1
	}
	sessionID := uuid.New().String()
	if err := m.store.CreateSession(ctx, sessionID, fc); err != nil {
		return "", fmt.Errorf("failed to create flow session: %w", err)
	}
	return sessionID, nil
}

// Context returns the flight context the session was opened with
func (m *Manager) Context(ctx context.Context, sessionID string) (*FlightContext, error) {
	return m.store.Context(ctx, sessionID)
}

// State returns the current flow state of a session
func (m *Manager) State(ctx context.Context, sessionID string) (State, error) {
	return m.store.State(ctx, sessionID)
}

// Advance moves a session forward. Re-asserting the current state is a
// no-op; moving backwards is an error (only Reset goes back).
func (m *Manager) Advance(ctx context.Context, sessionID string, to State) error {
	if !to.Valid() {
		return &ErrInvalidTransition{From: "", To: to}
	}

	current, err := m.store.State(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to read flow state: %w", err)
	}

	if current == to {
		return nil
	}
	if !current.CanAdvanceTo(to) {
		return &ErrInvalidTransition{From: current, To: to}
	}

	return m.store.SetState(ctx, sessionID, to)
}

// Require checks that a session has reached min. It never clears state:
// re-entering an already-passed screen succeeds.
func (m *Manager) Require(ctx context.Context, sessionID string, min State) error {
	current, err := m.store.State(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to read flow state: %w", err)
	}
	if !current.AtLeast(min) {
		return &GuardError{SessionID: sessionID, Current: current, Required: min}
	}
	return nil
}

// Selection returns the session's current seat selection
func (m *Manager) Selection(ctx context.Context, sessionID string) ([]string, error) {
	return m.store.Selection(ctx, sessionID)
}

// SetSelection replaces the session's seat selection
func (m *Manager) SetSelection(ctx context.Context, sessionID string, seats []string) error {
	return m.store.SetSelection(ctx, sessionID, seats)
}

// Reset clears the session's flow state entirely. Used on guard rejection
// to prevent partial-flow replay, and after abandonment cleanup.
func (m *Manager) Reset(ctx context.Context, sessionID string) error {
	return m.store.Clear(ctx, sessionID)
}

// GuardError reports a screen entered before its required flow state.
type GuardError struct {
	SessionID string
	Current   State
	Required  State
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("flow state %s has not reached %s", e.Current, e.Required)
}
