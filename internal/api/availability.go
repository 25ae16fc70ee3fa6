package api

import (
	"net/http"
	"time"

	"agendamed/internal/metrics"
	"agendamed/internal/model"
	"agendamed/internal/placement"
)

// daySlot is one bookable time on a concrete date.
type daySlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// handleAvailability serves GET /api/availability.
//
// Without a date it returns the professional's full weekly map. With
// ?date=YYYY-MM-DD it narrows to that day and flags each slot against
// the existing bookings, which is what the booking page polls.
func (s *HTTPServer) handleAvailability(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	professionalID := r.URL.Query().Get("professional_id")
	if professionalID == "" {
		writeError(w, http.StatusBadRequest, "professional_id is required")
		return
	}

	avail, err := s.svc.Availability(r.Context(), professionalID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusOK, avail)
		return
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	bookings, err := s.store.BookingsOnDate(r.Context(), date, professionalID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	times := avail[model.WeekdayOf(day)]
	slots := make([]daySlot, 0, len(times))
	for _, t := range times {
		slots = append(slots, daySlot{
			Time:      t,
			Available: !placement.Occupied(date, t, bookings),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":            date,
		"weekday":         model.WeekdayOf(day),
		"professional_id": professionalID,
		"slots":           slots,
	})
}

// handleSpecialtyAvailability serves GET /api/availability/specialty,
// the union of weekly maps across active professionals of a specialty.
func (s *HTTPServer) handleSpecialtyAvailability(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability_specialty")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	specialty := r.URL.Query().Get("specialty")
	if specialty == "" {
		writeError(w, http.StatusBadRequest, "specialty is required")
		return
	}

	avail, err := s.svc.SpecialtyAvailability(r.Context(), specialty)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, avail)
}
