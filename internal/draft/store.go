package draft

import (
	"context"
	"errors"
	"sync"
	"time"

	"simplyfly/internal/shared/constants"
	"simplyfly/pkg/cache"
)

var (
	ErrNoDraft           = errors.New("no booking draft for session")
	ErrNoCompleteBooking = errors.New("no complete booking for session")
)

// Store persists the per-session draft and, after passenger submission, the
// complete booking. A session holds at most one of each; promoting replaces
// the draft with the complete record.
type Store interface {
	Write(ctx context.Context, sessionID string, d BookingDraft) error
	Read(ctx context.Context, sessionID string) (BookingDraft, error)
	PromoteToComplete(ctx context.Context, sessionID string, cb CompleteBooking) error
	ReadComplete(ctx context.Context, sessionID string) (CompleteBooking, error)
	ClearComplete(ctx context.Context, sessionID string) error
}

type redisStore struct {
	cache cache.Service
	ttl   time.Duration
}

func NewRedisStore(c cache.Service, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = constants.TTL_DRAFT
	}
	return &redisStore{cache: c, ttl: ttl}
}

func (s *redisStore) Write(ctx context.Context, sessionID string, d BookingDraft) error {
	return s.cache.Set(ctx, constants.DraftKey(sessionID), d, s.ttl)
}

func (s *redisStore) Read(ctx context.Context, sessionID string) (BookingDraft, error) {
	var d BookingDraft
	err := s.cache.Get(ctx, constants.DraftKey(sessionID), &d)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return BookingDraft{}, ErrNoDraft
		}
		return BookingDraft{}, err
	}
	return d, nil
}

func (s *redisStore) PromoteToComplete(ctx context.Context, sessionID string, cb CompleteBooking) error {
	if err := s.cache.Set(ctx, constants.CompleteKey(sessionID), cb, s.ttl); err != nil {
		return err
	}
	// Best effort: the complete record supersedes the draft either way
	_ = s.cache.Delete(ctx, constants.DraftKey(sessionID))
	return nil
}

func (s *redisStore) ReadComplete(ctx context.Context, sessionID string) (CompleteBooking, error) {
	var cb CompleteBooking
	err := s.cache.Get(ctx, constants.CompleteKey(sessionID), &cb)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return CompleteBooking{}, ErrNoCompleteBooking
		}
		return CompleteBooking{}, err
	}
	return cb, nil
}

func (s *redisStore) ClearComplete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, constants.CompleteKey(sessionID))
}

// memoryStore backs tests and redis-less development runs.
type memoryStore struct {
	mu       sync.RWMutex
	drafts   map[string]BookingDraft
	complete map[string]CompleteBooking
}

func NewMemoryStore() Store {
	return &memoryStore{
		drafts:   make(map[string]BookingDraft),
		complete: make(map[string]CompleteBooking),
	}
}

func (s *memoryStore) Write(_ context.Context, sessionID string, d BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[sessionID] = d
	return nil
}

func (s *memoryStore) Read(_ context.Context, sessionID string) (BookingDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[sessionID]
	if !ok {
		return BookingDraft{}, ErrNoDraft
	}
	return d, nil
}

func (s *memoryStore) PromoteToComplete(_ context.Context, sessionID string, cb CompleteBooking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.complete[sessionID] = cb
	delete(s.drafts, sessionID)
	return nil
}

func (s *memoryStore) ReadComplete(_ context.Context, sessionID string) (CompleteBooking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cb, ok := s.complete[sessionID]
	if !ok {
		return CompleteBooking{}, ErrNoCompleteBooking
	}
	return cb, nil
}

func (s *memoryStore) ClearComplete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.complete, sessionID)
	return nil
}
