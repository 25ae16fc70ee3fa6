package api

import (
	"encoding/json"
	"net/http"

	"agendamed/internal/metrics"
	"agendamed/internal/model"
	"agendamed/internal/schedule"
)

// publicProfessional is the patient-facing projection: contact details
// are trimmed and the weekly availability is expanded inline so the
// booking page renders without a second round trip.
type publicProfessional struct {
	ID                  string                `json:"id"`
	Name                string                `json:"name"`
	Specialty           string                `json:"specialty"`
	Color               string                `json:"color,omitempty"`
	ConsultationMinutes int                   `json:"consultation_minutes"`
	Availability        schedule.Availability `json:"availability"`
}

// handlePublicProfessionals serves GET /api/professionals/public.
func (s *HTTPServer) handlePublicProfessionals(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("professionals_public")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	profs, err := s.store.ActiveProfessionals(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	out := make([]publicProfessional, 0, len(profs))
	for _, p := range profs {
		minutes := p.ConsultationMinutes
		if minutes <= 0 {
			minutes = schedule.DefaultConsultationMinutes
		}
		out = append(out, publicProfessional{
			ID:                  p.ID,
			Name:                p.Name,
			Specialty:           p.Specialty,
			Color:               p.Color,
			ConsultationMinutes: minutes,
			Availability:        schedule.ProfessionalAvailability(p),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleProfessionals serves GET and PUT /api/professionals.
func (s *HTTPServer) handleProfessionals(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("professionals")

	switch r.Method {
	case http.MethodGet:
		profs, err := s.store.ListProfessionals(r.Context())
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profs)

	case http.MethodPut:
		var profs []model.Professional
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&profs); err != nil {
			writeError(w, http.StatusBadRequest, "invalid professionals payload: "+err.Error())
			return
		}
		for _, p := range profs {
			if p.ID == "" || p.Name == "" {
				writeError(w, http.StatusBadRequest, "professional id and name are required")
				return
			}
		}
		if err := s.store.SaveProfessionals(r.Context(), profs); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"saved": len(profs)})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
