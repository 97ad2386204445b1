package seatmap

import "strconv"

// Cabin layout: economy rows 7-26, 3-3 with an aisle between C and D.
const (
	FirstRow = 7
	LastRow  = 26
)

var seatLetters = []string{"A", "B", "C", "D", "E", "F"}

type SeatType string

const (
	SeatWindow SeatType = "window"
	SeatMiddle SeatType = "middle"
	SeatAisle  SeatType = "aisle"
)

type SeatStatus string

const (
	StatusAvailable SeatStatus = "available"
	StatusOccupied  SeatStatus = "occupied"
	StatusSelected  SeatStatus = "selected"
)

type Seat struct {
	ID     string     `json:"id"` // e.g. "14C"
	Row    int        `json:"row"`
	Letter string     `json:"letter"`
	Type   SeatType   `json:"type"`
	Status SeatStatus `json:"status"`
}

// SeatRow groups one physical row; Left is A-C, Right is D-F.
type SeatRow struct {
	Row   int    `json:"row"`
	Left  []Seat `json:"left"`
	Right []Seat `json:"right"`
}

// SeatMap is the full rendered cabin for one flight and session.
type SeatMap struct {
	FlightID  int64     `json:"flight_id"`
	Rows      []SeatRow `json:"rows"`
	Selected  []string  `json:"selected"`
	Capacity  int       `json:"capacity"` // passengers in the session, max selectable
	Remaining int       `json:"remaining"`
	Fallback  bool      `json:"fallback"` // true when booked seats could not be fetched
}

func typeForLetter(letter string) SeatType {
	switch letter {
	case "A", "F":
		return SeatWindow
	case "B", "E":
		return SeatMiddle
	default:
		return SeatAisle
	}
}

// Layout builds the cabin grid with every seat available. Booked and
// selected seats are stamped on top by the service.
func Layout(flightID int64) SeatMap {
	rows := make([]SeatRow, 0, LastRow-FirstRow+1)
	for r := FirstRow; r <= LastRow; r++ {
		row := SeatRow{Row: r}
		for i, letter := range seatLetters {
			seat := Seat{
				ID:     seatID(r, letter),
				Row:    r,
				Letter: letter,
				Type:   typeForLetter(letter),
				Status: StatusAvailable,
			}
			if i < 3 {
				row.Left = append(row.Left, seat)
			} else {
				row.Right = append(row.Right, seat)
			}
		}
		rows = append(rows, row)
	}
	return SeatMap{FlightID: flightID, Rows: rows}
}

func seatID(row int, letter string) string {
	return strconv.Itoa(row) + letter
}

// ValidSeatID reports whether id names a seat in this cabin.
func ValidSeatID(id string) bool {
	if len(id) < 2 {
		return false
	}
	letter := id[len(id)-1:]
	known := false
	for _, l := range seatLetters {
		if l == letter {
			known = true
			break
		}
	}
	if !known {
		return false
	}
	row := 0
	for _, ch := range id[:len(id)-1] {
		if ch < '0' || ch > '9' {
			return false
		}
		row = row*10 + int(ch-'0')
	}
	return row >= FirstRow && row <= LastRow
}
