package reconcile

import (
	"context"
	"log/slog"

	"github.com/rpggio/siteledger/internal/domain/attendance"
	"github.com/rpggio/siteledger/internal/domain/calendar"
	"github.com/rpggio/siteledger/internal/domain/material"
	"github.com/rpggio/siteledger/internal/domain/project"
	"github.com/rpggio/siteledger/internal/domain/worklog"
)

// ProjectSource supplies the project tree.
type ProjectSource interface {
	ListProjects(ctx context.Context) ([]project.Project, error)
}

// AttendanceSource supplies one date's attendance sheet.
type AttendanceSource interface {
	RecordsForDate(ctx context.Context, date string) ([]attendance.Record, error)
}

// MaterialSource supplies the material ledger.
type MaterialSource interface {
	ListMaterials(ctx context.Context) ([]material.Material, error)
}

// LogDates returns the distinct calendar days of logs in first-seen order.
// Logs with unparseable dates are skipped.
func LogDates(logs []worklog.WorkLog) []string {
	seen := make(map[string]bool)
	dates := []string{}
	for _, l := range logs {
		d, err := calendar.Normalize(l.Date)
		if err != nil || seen[d] {
			continue
		}
		seen[d] = true
		dates = append(dates, d)
	}
	return dates
}

// LoadIndex fetches attendance once per date. A failed fetch is logged and
// that date is indexed as having no records; the remaining dates still load.
func LoadIndex(ctx context.Context, src AttendanceSource, dates []string, logger *slog.Logger) *attendance.Index {
	ix := attendance.NewIndex()
	for _, d := range dates {
		if ix.Has(d) {
			continue
		}
		records, err := src.RecordsForDate(ctx, d)
		if err != nil {
			if logger != nil {
				logger.Warn("attendance fetch failed", "date", d, "error", err)
			}
			records = nil
		}
		ix.Put(d, records)
	}
	return ix
}
