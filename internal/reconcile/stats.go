// Package reconcile joins work logs, attendance and the material ledger into
// read-time statistics. Nothing computed here is persisted.
package reconcile

import (
	"github.com/rpggio/siteledger/internal/domain/attendance"
	"github.com/rpggio/siteledger/internal/domain/worklog"
)

// Stats is the attendance picture for one work log.
type Stats struct {
	Present int `json:"present"`
	Total   int `json:"total"`
}

// StatsFor joins a log to attendance on (date, projectName). Attendance
// records carry only a free-text project label, so the join is by name and
// not by project id; this is the single place that join happens.
func StatsFor(log worklog.WorkLog, ix *attendance.Index) Stats {
	if ix == nil {
		return Stats{}
	}
	return Stats{
		Present: len(ix.PresentWorkers(log.Date, log.ProjectName)),
		Total:   len(ix.TotalWorkers(log.Date, log.ProjectName)),
	}
}
