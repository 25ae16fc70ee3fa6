// Package api exposes the clinic over REST: public availability and
// professional listings for patients, booking and agenda management
// for the clinic, and report/audit endpoints for operators.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"agendamed/internal/audit"
	"agendamed/internal/report"
	"agendamed/internal/service"
	"agendamed/internal/store"
)

// HTTPServer holds the REST handlers and their collaborators.
type HTTPServer struct {
	svc     *service.BookingService
	store   *store.Store
	reports *report.Builder
	trail   *audit.Trail // optional
	log     *zerolog.Logger
	apiKey  string
	limiter *rate.Limiter
}

// Options configures the HTTP server.
type Options struct {
	// APIKey protects mutating and operator endpoints. Empty disables
	// the check.
	APIKey string
	// RatePerSecond and RateBurst bound the request rate across all
	// endpoints.
	RatePerSecond float64
	RateBurst     int
}

// NewHTTPServer wires the handlers. The audit trail may be nil.
func NewHTTPServer(svc *service.BookingService, st *store.Store, reports *report.Builder, trail *audit.Trail, logger *zerolog.Logger, opts Options) *HTTPServer {
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 20
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 40
	}
	return &HTTPServer{
		svc:     svc,
		store:   st,
		reports: reports,
		trail:   trail,
		log:     logger,
		apiKey:  opts.APIKey,
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSecond), opts.RateBurst),
	}
}

// Handler builds the route table.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/professionals/public", s.handlePublicProfessionals)
	mux.HandleFunc("/api/professionals", s.protect(s.handleProfessionals))
	mux.HandleFunc("/api/availability", s.handleAvailability)
	mux.HandleFunc("/api/availability/specialty", s.handleSpecialtyAvailability)
	mux.HandleFunc("/api/bookings", s.handleBookings)
	mux.HandleFunc("/api/bookings/", s.handleBookingByID)
	mux.HandleFunc("/api/agenda", s.handleAgenda)
	mux.HandleFunc("/api/clinic/config", s.handleClinicConfig)
	mux.HandleFunc("/api/seed", s.protect(s.handleSeed))
	mux.HandleFunc("/api/reports/agenda", s.protect(s.handleAgendaReport))
	mux.HandleFunc("/api/audit", s.protect(s.handleAudit))

	return s.throttle(mux)
}

func (s *HTTPServer) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authorized reports whether the request carries the configured API
// key. With no key configured every request passes.
func (s *HTTPServer) authorized(r *http.Request) bool {
	return s.apiKey == "" || r.Header.Get("X-Api-Key") == s.apiKey
}

// protect requires the API key for every method on a route.
func (s *HTTPServer) protect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authorized(r) {
			writeError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors onto HTTP statuses.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingRequiredFields),
		errors.Is(err, service.ErrInvalidDateTime):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrProfessionalNotFound),
		errors.Is(err, store.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSlotTaken),
		errors.Is(err, service.ErrSlotNotOffered),
		errors.Is(err, service.ErrInactiveProfessional):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
