package schedule

import "iter"

// Window is a working interval within a single day.
type Window struct {
	Start Clock
	End   Clock
}

// Blocked is a sub-interval during which no slot may start and no
// generated slot may overlap.
type Blocked struct {
	Start Clock
	End   Clock
}

// Slots generates candidate consultation start times for a working
// window. The cursor begins at the window start and advances by
// durationMinutes; a candidate is emitted while it is still strictly
// before the window end, so the final slot's computed end may run past
// the window close. That looser bound is the established behavior and
// callers depend on it; do not tighten to cursor+duration <= end.
//
// A candidate [s, e) with e = s + duration is excluded when, for any
// blocked interval [bs, be):
//
//	s falls inside the block        (s >= bs && s < be), or
//	e falls inside the block        (e > bs && e <= be), or
//	the candidate spans the block   (s < bs && e > be).
//
// The three disjuncts are deliberate: a block can be shorter or longer
// than a slot and a plain two-way overlap test misses neither case the
// same way.
//
// The sequence is finite, ordered, and restartable; a non-positive
// duration or an inverted window yields no slots.
func Slots(w Window, durationMinutes int, blocked []Blocked) iter.Seq[Clock] {
	return func(yield func(Clock) bool) {
		if durationMinutes <= 0 || w.Start >= w.End {
			return
		}

		for cursor := w.Start; cursor < w.End; cursor = cursor.Add(durationMinutes) {
			if isBlocked(cursor, cursor.Add(durationMinutes), blocked) {
				continue
			}
			if !yield(cursor) {
				return
			}
		}
	}
}

func isBlocked(s, e Clock, blocked []Blocked) bool {
	for _, b := range blocked {
		if s >= b.Start && s < b.End {
			return true
		}
		if e > b.Start && e <= b.End {
			return true
		}
		if s < b.Start && e > b.End {
			return true
		}
	}
	return false
}

// GenerateSlots collects Slots into "HH:MM" strings.
func GenerateSlots(w Window, durationMinutes int, blocked []Blocked) []string {
	var out []string
	for c := range Slots(w, durationMinutes, blocked) {
		out = append(out, c.String())
	}
	return out
}
