// Package placement decides whether a calendar slot is occupied and
// how bookings that share one nominal time cell are laid out side by
// side. It is a pure layout/conflict computation over an in-memory
// booking snapshot; it never touches the booking store.
package placement

import "agendamed/internal/model"

// Placement assigns one booking a deterministic sub-slot of a shared
// time cell. Offset and Width are fractions of the cell, so n bookings
// at the same time each get Width 1/n at Offset i/n in stable input
// order.
type Placement struct {
	BookingID string  `json:"booking_id"`
	Index     int     `json:"index"`
	Total     int     `json:"total"`
	Offset    float64 `json:"offset"`
	Width     float64 `json:"width"`
}

// Resolution is the outcome of resolving one (date, start time) cell.
type Resolution struct {
	Occupied   bool        `json:"occupied"`
	Placements []Placement `json:"placements"`
}

// Resolve determines occupancy and placement for a candidate slot.
//
// Occupancy is an exact start-time match: the cell is occupied when any
// non-cancelled booking on that date starts at exactly startTime.
// Bookings overlapping the cell without starting in it do not claim it.
//
// Placements cover every booking sharing the cell regardless of status
// (cancelled bookings are still rendered), indexed in input order.
// Resolving the same snapshot twice yields identical assignments.
func Resolve(date, startTime string, bookings []model.Booking) Resolution {
	var res Resolution
	var cell []model.Booking

	for _, b := range bookings {
		if !b.OnDate(date) || b.StartClock() != startTime {
			continue
		}
		cell = append(cell, b)
		if b.Active() {
			res.Occupied = true
		}
	}

	res.Placements = place(cell)
	return res
}

// Occupied reports whether a non-cancelled booking on the date starts
// exactly at startTime.
func Occupied(date, startTime string, bookings []model.Booking) bool {
	for _, b := range bookings {
		if b.Active() && b.OnDate(date) && b.StartClock() == startTime {
			return true
		}
	}
	return false
}

// DayGrid groups a date's bookings by start time and assigns each
// group its placements, keyed by "HH:MM". Bookings with no parseable
// start clock are skipped.
func DayGrid(date string, bookings []model.Booking) map[string][]Placement {
	cells := make(map[string][]model.Booking)
	var order []string

	for _, b := range bookings {
		if !b.OnDate(date) {
			continue
		}
		ts := b.StartClock()
		if ts == "" {
			continue
		}
		if _, ok := cells[ts]; !ok {
			order = append(order, ts)
		}
		cells[ts] = append(cells[ts], b)
	}

	grid := make(map[string][]Placement, len(order))
	for _, ts := range order {
		grid[ts] = place(cells[ts])
	}
	return grid
}

func place(cell []model.Booking) []Placement {
	n := len(cell)
	if n == 0 {
		return nil
	}

	out := make([]Placement, n)
	for i, b := range cell {
		out[i] = Placement{
			BookingID: b.ID,
			Index:     i,
			Total:     n,
			Offset:    float64(i) / float64(n),
			Width:     1.0 / float64(n),
		}
	}
	return out
}
