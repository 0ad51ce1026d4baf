package transport

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rpggio/siteledger/internal/domain/attendance"
	"github.com/rpggio/siteledger/internal/domain/calendar"
	"github.com/rpggio/siteledger/internal/domain/faults"
)

func (s *Server) getAttendance(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if strings.TrimSpace(date) == "" {
		s.writeError(w, r, fmt.Errorf("%w: date query parameter is required", faults.ErrValidation))
		return
	}
	day, err := calendar.Normalize(date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	records, err := s.svc.Attendance.RecordsForDate(r.Context(), day)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attendance.Day{Date: day, Employees: records})
}

func (s *Server) saveAttendance(w http.ResponseWriter, r *http.Request) {
	var day attendance.Day
	if err := decodeBody(r, &day); err != nil {
		s.writeError(w, r, err)
		return
	}
	if day.Employees == nil {
		day.Employees = []attendance.Record{}
	}
	if err := s.svc.Attendance.SaveDay(r.Context(), day.Date, day.Employees); err != nil {
		s.writeError(w, r, err)
		return
	}
	// SaveDay accepted the date, so it normalizes.
	day.Date, _ = calendar.Normalize(day.Date)
	writeJSON(w, http.StatusOK, day)
}
