package attendance

import (
	"sort"
	"strings"

	"github.com/rpggio/siteledger/internal/domain/calendar"
)

// Index answers "who was present, for which project, on which date". Each
// date is bucketed once when added; lookups are map hits afterwards.
type Index struct {
	days map[string]*dayBucket
}

type dayBucket struct {
	records   []Record
	byProject map[string]*projectBucket
}

type projectBucket struct {
	total   []Record
	present []Record
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{days: make(map[string]*dayBucket)}
}

// Put replaces the records held for date. Record order is preserved within
// every bucket.
func (ix *Index) Put(date string, records []Record) {
	bucket := &dayBucket{
		records:   append([]Record(nil), records...),
		byProject: make(map[string]*projectBucket),
	}
	for _, rec := range records {
		key := ProjectKey(rec.Project)
		pb, ok := bucket.byProject[key]
		if !ok {
			pb = &projectBucket{}
			bucket.byProject[key] = pb
		}
		pb.total = append(pb.total, rec)
		if rec.Status.CountsAsPresent() {
			pb.present = append(pb.present, rec)
		}
	}
	ix.days[dateKey(date)] = bucket
}

// Has reports whether date has been added, even with no records.
func (ix *Index) Has(date string) bool {
	_, ok := ix.days[dateKey(date)]
	return ok
}

// Dates lists the indexed dates in ascending order.
func (ix *Index) Dates() []string {
	dates := make([]string, 0, len(ix.days))
	for d := range ix.days {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// RecordsForDate returns every record for date. A date with no data is an
// empty result, not an error.
func (ix *Index) RecordsForDate(date string) []Record {
	bucket, ok := ix.days[dateKey(date)]
	if !ok {
		return []Record{}
	}
	return append([]Record{}, bucket.records...)
}

// PresentWorkers returns the records for date and project whose status
// counts as present (Present, Late, Half Day).
func (ix *Index) PresentWorkers(date, project string) []Record {
	pb := ix.project(date, project)
	if pb == nil {
		return []Record{}
	}
	return append([]Record{}, pb.present...)
}

// TotalWorkers returns every record for date and project regardless of status.
func (ix *Index) TotalWorkers(date, project string) []Record {
	pb := ix.project(date, project)
	if pb == nil {
		return []Record{}
	}
	return append([]Record{}, pb.total...)
}

func (ix *Index) project(date, project string) *projectBucket {
	bucket, ok := ix.days[dateKey(date)]
	if !ok {
		return nil
	}
	return bucket.byProject[ProjectKey(project)]
}

// dateKey falls back to the trimmed raw value so malformed dates still
// round-trip through Put and lookups consistently.
func dateKey(date string) string {
	if d, err := calendar.Normalize(date); err == nil {
		return d
	}
	return strings.TrimSpace(date)
}
