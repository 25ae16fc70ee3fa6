package api

import (
	"encoding/json"
	"net/http"

	"agendamed/internal/metrics"
	"agendamed/internal/model"
)

// handleClinicConfig serves GET and PUT /api/clinic/config. Reading is
// public (the clinic info page uses it); writing requires the API key.
func (s *HTTPServer) handleClinicConfig(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("clinic_config")

	switch r.Method {
	case http.MethodGet:
		cfg, err := s.store.GetClinicConfig(r.Context())
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)

	case http.MethodPut:
		if !s.authorized(r) {
			writeError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		var cfg model.ClinicConfig
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			writeError(w, http.StatusBadRequest, "invalid clinic config payload: "+err.Error())
			return
		}
		if err := s.store.SaveClinicConfig(r.Context(), cfg); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleSeed serves POST /api/seed. ?force=true overwrites the roster.
func (s *HTTPServer) handleSeed(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("seed")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	force := r.URL.Query().Get("force") == "true"
	if err := s.store.Seed(r.Context(), force); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"seeded": true, "force": force})
}
