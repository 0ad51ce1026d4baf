package reconcile

import (
	"strings"

	"github.com/rpggio/siteledger/internal/domain/calendar"
	"github.com/rpggio/siteledger/internal/domain/worklog"
)

// AllStatus is the status filter value that disables status filtering.
const AllStatus = "All Status"

// Filter narrows the work log list. Blank fields do not filter.
type Filter struct {
	Status string `json:"status,omitempty"`
	Search string `json:"search,omitempty"`
	Date   string `json:"date,omitempty"`
}

// FilterLogs returns the logs passing every filter, in input order. Status
// is an exact match; search is a case-insensitive substring of the project
// name; date compares calendar days. The input slice is not modified.
func FilterLogs(logs []worklog.WorkLog, f Filter) []worklog.WorkLog {
	status := strings.TrimSpace(f.Status)
	if status == AllStatus {
		status = ""
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	day := dayOf(f.Date)

	out := []worklog.WorkLog{}
	for _, l := range logs {
		if status != "" && string(l.Status) != status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(l.ProjectName), search) {
			continue
		}
		if day != "" && dayOf(l.Date) != day {
			continue
		}
		out = append(out, l)
	}
	return out
}

// dayOf normalizes to an ISO day, falling back to the trimmed input for
// values that do not parse.
func dayOf(v string) string {
	if d, err := calendar.Normalize(v); err == nil {
		return d
	}
	return strings.TrimSpace(v)
}
