package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"agendamed/internal/metrics"
	"agendamed/internal/model"
	"agendamed/internal/service"
)

// handleBookings serves GET and POST /api/bookings.
func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("bookings")

	switch r.Method {
	case http.MethodGet:
		s.listBookings(w, r)
	case http.MethodPost:
		s.createBooking(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) listBookings(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	professionalID := r.URL.Query().Get("professional_id")

	var (
		bookings []model.Booking
		err      error
	)
	if date != "" {
		bookings, err = s.store.BookingsOnDate(r.Context(), date, professionalID)
	} else {
		bookings, err = s.store.ListBookings(r.Context())
	}
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) createBooking(w http.ResponseWriter, r *http.Request) {
	var req service.BookRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking payload: "+err.Error())
		return
	}

	booking, err := s.svc.Book(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

// handleBookingByID serves /api/bookings/{id} (PUT, DELETE) and
// /api/bookings/{id}/cancel (POST). Deletion removes the record;
// cancelling keeps it so calendars still show the freed slot's history.
func (s *HTTPServer) handleBookingByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("booking_by_id")

	rest := strings.TrimPrefix(r.URL.Path, "/api/bookings/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "booking id is required")
		return
	}

	switch {
	case action == "cancel" && r.Method == http.MethodPost:
		if err := s.svc.Cancel(r.Context(), id); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": model.StatusCancelled})

	case action == "" && r.Method == http.MethodPut:
		if !s.authorized(r) {
			writeError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		s.updateBooking(w, r, id)

	case action == "" && r.Method == http.MethodDelete:
		if !s.authorized(r) {
			writeError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		if err := s.store.DeleteBooking(r.Context(), id); err != nil {
			s.writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) updateBooking(w http.ResponseWriter, r *http.Request, id string) {
	var booking model.Booking
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&booking); err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking payload: "+err.Error())
		return
	}

	booking.ID = id
	if err := s.store.UpdateBooking(r.Context(), booking); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// handleAgenda serves GET /api/agenda?date=YYYY-MM-DD, the rendered
// day view with per-cell placements.
func (s *HTTPServer) handleAgenda(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("agenda")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	agenda, err := s.svc.Agenda(r.Context(), date, r.URL.Query().Get("professional_id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agenda)
}
