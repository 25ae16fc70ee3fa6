package schedule

import (
	"sort"

	"agendamed/internal/model"
)

// DefaultConsultationMinutes is used when a professional has no
// configured consultation duration.
const DefaultConsultationMinutes = 30

// Availability maps a weekday key to the sorted, deduplicated set of
// bookable "HH:MM" start times. It is rebuilt from a fresh snapshot on
// every call and never cached by this package.
type Availability map[string][]string

// BuildAvailability expands a professional's recurring schedule into
// per-weekday bookable start times. Breaks are partitioned by weekday
// before generation; breaks on days without a working window simply
// have no effect. Multiple windows on the same weekday are unioned.
// Malformed periods (bad times, start >= end) are skipped without
// affecting other weekdays.
func BuildAvailability(periods []model.SchedulePeriod, durationMinutes int, breaks []model.Break) Availability {
	if durationMinutes <= 0 {
		durationMinutes = DefaultConsultationMinutes
	}

	out := make(Availability)
	for _, p := range periods {
		w, err := parseWindow(p.Start, p.End)
		if err != nil {
			continue
		}

		blocked := blockedForDay(breaks, p.Weekday)
		for c := range Slots(w, durationMinutes, blocked) {
			out[p.Weekday] = append(out[p.Weekday], c.String())
		}
	}

	for day := range out {
		out[day] = dedupeSorted(out[day])
	}
	return out
}

// ProfessionalAvailability builds the availability map for one
// professional from their own schedule, breaks, and duration.
func ProfessionalAvailability(p model.Professional) Availability {
	return BuildAvailability(p.Schedules, p.ConsultationMinutes, p.Breaks)
}

// MergeAvailability unions availability maps per weekday. Used for the
// book-by-specialty flow: a time is offered when at least one of the
// merged professionals offers it.
func MergeAvailability(maps ...Availability) Availability {
	out := make(Availability)
	for _, m := range maps {
		for day, times := range m {
			out[day] = append(out[day], times...)
		}
	}
	for day := range out {
		out[day] = dedupeSorted(out[day])
	}
	return out
}

func parseWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: s, End: e}, nil
}

func blockedForDay(breaks []model.Break, weekday string) []Blocked {
	var blocked []Blocked
	for _, br := range breaks {
		if br.Weekday != weekday {
			continue
		}
		s, err := ParseClock(br.Start)
		if err != nil {
			continue
		}
		e, err := ParseClock(br.End)
		if err != nil {
			continue
		}
		blocked = append(blocked, Blocked{Start: s, End: e})
	}
	return blocked
}

func dedupeSorted(times []string) []string {
	sort.Strings(times)
	out := times[:0]
	for i, t := range times {
		if i == 0 || t != times[i-1] {
			out = append(out, t)
		}
	}
	return out
}
