package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"agendamed/internal/metrics"
)

// handleAgendaReport serves GET /api/reports/agenda?from=&to= as an
// Excel download. The workbook is buffered before any byte is sent so
// a failed build returns a clean JSON error instead of a torn file.
func (s *HTTPServer) handleAgendaReport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reports_agenda")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if to == "" {
		to = from
	}
	if from == "" {
		writeError(w, http.StatusBadRequest, "from date is required")
		return
	}

	var buf bytes.Buffer
	if err := s.reports.AgendaWorkbook(r.Context(), from, to, &buf); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filename := fmt.Sprintf("agenda_%s_%s.xlsx", from, to)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// handleAudit serves GET /api/audit?limit=N, newest entries first.
// Returns 404 when the deployment runs without an audit trail.
func (s *HTTPServer) handleAudit(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("audit")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.trail == nil {
		writeError(w, http.StatusNotFound, "audit trail is not enabled")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.trail.Recent(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
