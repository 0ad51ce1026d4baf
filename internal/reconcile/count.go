package reconcile

import (
	"time"

	"github.com/rpggio/siteledger/internal/domain/calendar"
	"github.com/rpggio/siteledger/internal/domain/worklog"
)

// Category classifies logs for the dashboard counters.
type Category string

const (
	CategoryTotal   Category = "total"
	CategoryWeek    Category = "week"
	CategoryPending Category = "pending"
	CategoryDraft   Category = "draft"
)

// Counts holds every dashboard counter at once.
type Counts struct {
	Total   int `json:"total"`
	Week    int `json:"week"`
	Pending int `json:"pending"`
	Draft   int `json:"draft"`
}

// Matches reports whether log belongs to c. week is the Sun-Sat week
// containing now; pending means submitted and awaiting approval. Unknown
// categories match nothing.
func (c Category) Matches(log worklog.WorkLog, now time.Time) bool {
	switch c {
	case CategoryTotal:
		return true
	case CategoryWeek:
		return calendar.InWeek(log.Date, now)
	case CategoryPending:
		return log.Status == worklog.StatusSubmitted
	case CategoryDraft:
		return log.Status == worklog.StatusDraft
	}
	return false
}

// CountLogs counts the logs in category c.
func CountLogs(c Category, logs []worklog.WorkLog, now time.Time) int {
	n := 0
	for _, l := range logs {
		if c.Matches(l, now) {
			n++
		}
	}
	return n
}

// CountAll fills every counter.
func CountAll(logs []worklog.WorkLog, now time.Time) Counts {
	return Counts{
		Total:   CountLogs(CategoryTotal, logs, now),
		Week:    CountLogs(CategoryWeek, logs, now),
		Pending: CountLogs(CategoryPending, logs, now),
		Draft:   CountLogs(CategoryDraft, logs, now),
	}
}
