package seatmap

import (
	"context"
	"errors"
	"strconv"
	"time"

	"simplyfly/internal/draft"
	"simplyfly/internal/flow"
	"simplyfly/internal/shared/constants"
	"simplyfly/internal/upstream"
	"simplyfly/pkg/cache"
	"simplyfly/pkg/logger"
)

var ErrSelectionIncomplete = errors.New("seat selection does not match passenger count")

type Service interface {
	// Build renders the cabin for the session's flight with booked seats
	// marked occupied and the session's picks marked selected.
	Build(ctx context.Context, sessionID string) (SeatMap, error)

	// ToggleSeat flips one seat in the session's selection and returns the
	// updated selection.
	ToggleSeat(ctx context.Context, sessionID, seatID string) (Selection, error)

	// ConfirmSeats freezes the selection into a booking draft and moves the
	// flow forward. Fails if the selection size differs from the passenger
	// count.
	ConfirmSeats(ctx context.Context, sessionID string) (draft.BookingDraft, error)
}

// Selection is the toggle response payload
type Selection struct {
	Seats     []string `json:"seats"`
	Count     int      `json:"count"`
	Capacity  int      `json:"capacity"`
	Changed   bool     `json:"changed"`
	Remaining int      `json:"remaining"`
}

type service struct {
	flows    *flow.Manager
	drafts   draft.Store
	client   upstream.Client
	cache    cache.Service // nil disables the booked-seats cache
	cacheTTL time.Duration
	now      func() time.Time
	log      *logger.Logger
}

func NewService(flows *flow.Manager, drafts draft.Store, client upstream.Client, cacheSvc cache.Service, cacheTTL time.Duration) Service {
	if cacheTTL <= 0 {
		cacheTTL = constants.TTL_BOOKED_SEATS
	}
	return &service{
		flows:    flows,
		drafts:   drafts,
		client:   client,
		cache:    cacheSvc,
		cacheTTL: cacheTTL,
		now:      time.Now,
		log:      logger.GetDefault(),
	}
}

func (s *service) Build(ctx context.Context, sessionID string) (SeatMap, error) {
	fc, err := s.flows.Context(ctx, sessionID)
	if err != nil {
		return SeatMap{}, err
	}

	m := Layout(fc.FlightID)
	m.Capacity = fc.Passengers

	booked, fallback := s.bookedSeats(ctx, fc.FlightID)
	m.Fallback = fallback

	selected, err := s.flows.Selection(ctx, sessionID)
	if err != nil {
		return SeatMap{}, err
	}

	occupied := make(map[string]bool, len(booked))
	for _, id := range booked {
		occupied[id] = true
	}
	picked := make(map[string]bool, len(selected))
	for _, id := range selected {
		if !occupied[id] {
			picked[id] = true
			m.Selected = append(m.Selected, id)
		}
	}

	for ri := range m.Rows {
		stamp(m.Rows[ri].Left, occupied, picked)
		stamp(m.Rows[ri].Right, occupied, picked)
	}

	m.Remaining = m.Capacity - len(m.Selected)
	return m, nil
}

func stamp(seats []Seat, occupied, picked map[string]bool) {
	for i := range seats {
		switch {
		case occupied[seats[i].ID]:
			seats[i].Status = StatusOccupied
		case picked[seats[i].ID]:
			seats[i].Status = StatusSelected
		}
	}
}

// bookedSeats fetches the flight's occupied seats, serving from the short
// redis cache when available. Only a failed fetch falls back to an
// all-available map; a cache write failure just skips the cache.
func (s *service) bookedSeats(ctx context.Context, flightID int64) ([]string, bool) {
	id := strconv.FormatInt(flightID, 10)
	key := constants.BookedSeatsKey(id)

	if s.cache != nil {
		var booked []string
		if err := s.cache.Get(ctx, key, &booked); err == nil {
			return booked, false
		}
	}

	booked, err := s.client.GetBookedSeats(ctx, id)
	if err != nil {
		s.log.LogSeatMapFallback(ctx, id, err)
		return nil, true
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, booked, s.cacheTTL); err != nil {
			s.log.WarnContext(ctx, "failed to cache booked seats",
				"flight_id", id, "error", err.Error())
		}
	}
	return booked, false
}

func (s *service) ToggleSeat(ctx context.Context, sessionID, seatID string) (Selection, error) {
	fc, err := s.flows.Context(ctx, sessionID)
	if err != nil {
		return Selection{}, err
	}

	current, err := s.flows.Selection(ctx, sessionID)
	if err != nil {
		return Selection{}, err
	}

	booked, _ := s.bookedSeats(ctx, fc.FlightID)

	set := NewSelectionSet(current, booked, fc.Passengers)
	changed := set.Toggle(seatID)
	if changed {
		if err := s.flows.SetSelection(ctx, sessionID, set.Seats()); err != nil {
			return Selection{}, err
		}
	}

	return Selection{
		Seats:     set.Seats(),
		Count:     set.Count(),
		Capacity:  fc.Passengers,
		Changed:   changed,
		Remaining: fc.Passengers - set.Count(),
	}, nil
}

func (s *service) ConfirmSeats(ctx context.Context, sessionID string) (draft.BookingDraft, error) {
	fc, err := s.flows.Context(ctx, sessionID)
	if err != nil {
		return draft.BookingDraft{}, err
	}

	selected, err := s.flows.Selection(ctx, sessionID)
	if err != nil {
		return draft.BookingDraft{}, err
	}
	if len(selected) != fc.Passengers {
		return draft.BookingDraft{}, ErrSelectionIncomplete
	}

	d := draft.NewDraft(*fc, selected, s.now())
	if err := s.drafts.Write(ctx, sessionID, d); err != nil {
		return draft.BookingDraft{}, err
	}
	s.log.LogDraftWritten(ctx, sessionID, strconv.FormatInt(d.FlightID, 10), d.TotalAmount)

	if err := s.flows.Advance(ctx, sessionID, flow.StateSeatsChosen); err != nil {
		return draft.BookingDraft{}, err
	}
	return d, nil
}
