package flow

import (
	"context"
	"errors"
	"sync"
	"time"

	"simplyfly/internal/shared/constants"
	"simplyfly/pkg/cache"
)

// Store persists per-session flow position, flight context and the current
// seat selection. Two implementations: Redis for the server, in-memory for
// tests and Redis-less development. State survives navigation, not an
// application restart.
type Store interface {
	CreateSession(ctx context.Context, sessionID string, fc FlightContext) error
	Context(ctx context.Context, sessionID string) (*FlightContext, error)
	State(ctx context.Context, sessionID string) (State, error)
	SetState(ctx context.Context, sessionID string, s State) error
	Selection(ctx context.Context, sessionID string) ([]string, error)
	SetSelection(ctx context.Context, sessionID string, seats []string) error
	Clear(ctx context.Context, sessionID string) error
}

// redisStore keeps flow state in Redis with a session TTL
type redisStore struct {
	cache cache.Service
	ttl   time.Duration
}

func NewRedisStore(cacheService cache.Service, sessionTTL time.Duration) Store {
	if sessionTTL <= 0 {
		sessionTTL = constants.TTL_FLOW_SESSION
	}
	return &redisStore{cache: cacheService, ttl: sessionTTL}
}

func (r *redisStore) CreateSession(ctx context.Context, sessionID string, fc FlightContext) error {
	if err := r.cache.Set(ctx, constants.FlowContextKey(sessionID), fc, r.ttl); err != nil {
		return err
	}
	return r.cache.Set(ctx, constants.FlowStateKey(sessionID), StateNotStarted, r.ttl)
}

func (r *redisStore) Context(ctx context.Context, sessionID string) (*FlightContext, error) {
	var fc FlightContext
	if err := r.cache.Get(ctx, constants.FlowContextKey(sessionID), &fc); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &fc, nil
}

func (r *redisStore) State(ctx context.Context, sessionID string) (State, error) {
	var s State
	if err := r.cache.Get(ctx, constants.FlowStateKey(sessionID), &s); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return StateNotStarted, nil
		}
		return StateNotStarted, err
	}
	return s, nil
}

func (r *redisStore) SetState(ctx context.Context, sessionID string, s State) error {
	return r.cache.Set(ctx, constants.FlowStateKey(sessionID), s, r.ttl)
}

func (r *redisStore) Selection(ctx context.Context, sessionID string) ([]string, error) {
	var seats []string
	if err := r.cache.Get(ctx, constants.SelectionKey(sessionID), &seats); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}
	return seats, nil
}

func (r *redisStore) SetSelection(ctx context.Context, sessionID string, seats []string) error {
	return r.cache.Set(ctx, constants.SelectionKey(sessionID), seats, r.ttl)
}

func (r *redisStore) Clear(ctx context.Context, sessionID string) error {
	for _, key := range []string{
		constants.FlowStateKey(sessionID),
		constants.FlowContextKey(sessionID),
		constants.SelectionKey(sessionID),
	} {
		if err := r.cache.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// memoryStore is the in-process implementation
type memoryStore struct {
	mu        sync.RWMutex
	contexts  map[string]FlightContext
	states    map[string]State
	selection map[string][]string
}

func NewMemoryStore() Store {
	return &memoryStore{
		contexts:  make(map[string]FlightContext),
		states:    make(map[string]State),
		selection: make(map[string][]string),
	}
}

func (m *memoryStore) CreateSession(_ context.Context, sessionID string, fc FlightContext) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contexts[sessionID] = fc
	m.states[sessionID] = StateNotStarted
	return nil
}

func (m *memoryStore) Context(_ context.Context, sessionID string) (*FlightContext, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fc, ok := m.contexts[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	out := fc
	return &out, nil
}

func (m *memoryStore) State(_ context.Context, sessionID string) (State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.states[sessionID]
	if !ok {
		return StateNotStarted, nil
	}
	return s, nil
}

func (m *memoryStore) SetState(_ context.Context, sessionID string, s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[sessionID] = s
	return nil
}

func (m *memoryStore) Selection(_ context.Context, sessionID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seats := m.selection[sessionID]
	out := make([]string, len(seats))
	copy(out, seats)
	return out, nil
}

func (m *memoryStore) SetSelection(_ context.Context, sessionID string, seats []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]string, len(seats))
	copy(stored, seats)
	m.selection[sessionID] = stored
	return nil
}

func (m *memoryStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.contexts, sessionID)
	delete(m.states, sessionID)
	delete(m.selection, sessionID)
	return nil
}
