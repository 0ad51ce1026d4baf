package transport

import (
	"net/http"

	"github.com/rpggio/siteledger/internal/domain/worklog"
	"github.com/rpggio/siteledger/internal/reconcile"
)

// dashboard serves the filtered, attendance-annotated log list.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := reconcile.Filter{
		Status: q.Get("status"),
		Search: q.Get("search"),
		Date:   q.Get("date"),
	}
	dash, err := s.svc.Reconciler.Dashboard(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (s *Server) submitWorkLog(w http.ResponseWriter, r *http.Request) {
	var log worklog.WorkLog
	if err := decodeBody(r, &log); err != nil {
		s.writeError(w, r, err)
		return
	}
	submitted, err := s.svc.WorkLogs.SubmitForApproval(r.Context(), log)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, submitted)
}

func (s *Server) safetyIssues(w http.ResponseWriter, r *http.Request) {
	logs, err := s.svc.Reconciler.SafetyIssueLogs(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(logs), "logs": logs})
}
