package seatmap

// SelectionSet applies toggle semantics over a seat selection: clicking a
// selected seat deselects it, clicking an available one selects it as long
// as capacity allows, and occupied seats never change state. Pure value
// type, no locking; the flow store serializes access per session.
type SelectionSet struct {
	seats    []string
	occupied map[string]bool
	capacity int
}

func NewSelectionSet(current []string, occupied []string, capacity int) *SelectionSet {
	occ := make(map[string]bool, len(occupied))
	for _, s := range occupied {
		occ[s] = true
	}
	seats := make([]string, 0, len(current))
	for _, s := range current {
		if !occ[s] {
			seats = append(seats, s)
		}
	}
	return &SelectionSet{seats: seats, occupied: occ, capacity: capacity}
}

// Toggle flips one seat and reports whether anything changed. Selecting
// past capacity is a silent no-op, matching the click behavior users see.
func (s *SelectionSet) Toggle(seatID string) bool {
	if s.occupied[seatID] || !ValidSeatID(seatID) {
		return false
	}
	for i, existing := range s.seats {
		if existing == seatID {
			s.seats = append(s.seats[:i], s.seats[i+1:]...)
			return true
		}
	}
	if s.capacity > 0 && len(s.seats) >= s.capacity {
		return false
	}
	s.seats = append(s.seats, seatID)
	return true
}

func (s *SelectionSet) Count() int { return len(s.seats) }

// Seats returns the selection in click order
func (s *SelectionSet) Seats() []string {
	out := make([]string, len(s.seats))
	copy(out, s.seats)
	return out
}
