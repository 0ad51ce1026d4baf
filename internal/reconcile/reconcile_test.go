package reconcile_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/rpggio/siteledger/internal/domain/attendance"
	"github.com/rpggio/siteledger/internal/domain/material"
	"github.com/rpggio/siteledger/internal/domain/project"
	"github.com/rpggio/siteledger/internal/domain/worklog"
	"github.com/rpggio/siteledger/internal/reconcile"
	"github.com/rpggio/siteledger/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

// Wednesday; the week runs Sun 2024-04-28 to Sat 2024-05-04.
var today = time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)

func siteASheet() []attendance.Record {
	statuses := []attendance.Status{
		attendance.StatusPresent, attendance.StatusAbsent, attendance.StatusPresent,
		attendance.StatusLate, attendance.StatusPresent, attendance.StatusHalfDay,
		attendance.StatusAbsent, attendance.StatusPresent, attendance.StatusLate,
		attendance.StatusAbsent,
	}
	records := make([]attendance.Record, 0, len(statuses))
	for i, st := range statuses {
		records = append(records, attendance.Record{EmployeeID: fmt.Sprintf("e%d", i), Project: "Site A", Status: st})
	}
	return records
}

func sampleLogs() []worklog.WorkLog {
	return []worklog.WorkLog{
		{ID: "l1", ProjectName: "Site A", Date: "2024-05-01", Status: worklog.StatusDraft, SafetyIssues: "None"},
		{ID: "l2", ProjectName: "Site B", Date: "2024-04-29T10:00:00Z", Status: worklog.StatusSubmitted, SafetyIssues: "Loose rail"},
		{ID: "l3", ProjectName: "site a annex", Date: "2024-04-20", Status: worklog.StatusApproved},
		{ID: "l4", ProjectName: "Site C", Date: "2024-05-04", Status: worklog.StatusSubmitted, SafetyIssues: " none "},
		{ID: "l5", ProjectName: "Site A", Date: "2024-05-05", Status: worklog.StatusDraft, SafetyIssues: "NONE"},
	}
}

func TestStatsFor_SiteA(t *testing.T) {
	records := siteASheet()
	log := worklog.WorkLog{Date: "2024-05-01", ProjectName: "Site A"}

	for i := 0; i < 5; i++ {
		shuffled := append([]attendance.Record(nil), records...)
		rand.New(rand.NewSource(int64(i))).Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		ix := attendance.NewIndex()
		ix.Put("2024-05-01", shuffled)
		require.Equal(t, reconcile.Stats{Present: 7, Total: 10}, reconcile.StatsFor(log, ix))
	}
}

func TestStatsFor_NoAttendance(t *testing.T) {
	log := worklog.WorkLog{Date: "2024-05-01", ProjectName: "Site A"}
	require.Equal(t, reconcile.Stats{}, reconcile.StatsFor(log, attendance.NewIndex()))
	require.Equal(t, reconcile.Stats{}, reconcile.StatsFor(log, nil))
}

func TestCountLogs(t *testing.T) {
	logs := sampleLogs()
	require.Equal(t, len(logs), reconcile.CountLogs(reconcile.CategoryTotal, logs, today))
	require.Equal(t, 3, reconcile.CountLogs(reconcile.CategoryWeek, logs, today))
	require.Equal(t, 2, reconcile.CountLogs(reconcile.CategoryPending, logs, today))
	require.Equal(t, 2, reconcile.CountLogs(reconcile.CategoryDraft, logs, today))
	require.Zero(t, reconcile.CountLogs("bogus", logs, today))
	require.Zero(t, reconcile.CountLogs(reconcile.CategoryTotal, nil, today))

	require.Equal(t, reconcile.Counts{Total: 5, Week: 3, Pending: 2, Draft: 2}, reconcile.CountAll(logs, today))
}

func TestFilterLogs_Single(t *testing.T) {
	logs := sampleLogs()

	ids := func(ls []worklog.WorkLog) []string {
		out := []string{}
		for _, l := range ls {
			out = append(out, l.ID)
		}
		return out
	}

	require.Equal(t, []string{"l1", "l2", "l3", "l4", "l5"}, ids(reconcile.FilterLogs(logs, reconcile.Filter{})))
	require.Equal(t, []string{"l1", "l2", "l3", "l4", "l5"}, ids(reconcile.FilterLogs(logs, reconcile.Filter{Status: reconcile.AllStatus})))
	require.Equal(t, []string{"l2", "l4"}, ids(reconcile.FilterLogs(logs, reconcile.Filter{Status: "submitted"})))
	require.Equal(t, []string{"l1", "l3", "l5"}, ids(reconcile.FilterLogs(logs, reconcile.Filter{Search: "SITE A"})))
	require.Equal(t, []string{"l2"}, ids(reconcile.FilterLogs(logs, reconcile.Filter{Date: "2024-04-29"})))
	require.Equal(t, []string{"l1"}, ids(reconcile.FilterLogs(logs, reconcile.Filter{Date: "2024-05-01T23:00:00Z"})))
}

func TestFilterLogs_CombinedIsIntersection(t *testing.T) {
	logs := sampleLogs()
	filters := []reconcile.Filter{
		{Status: "draft"},
		{Search: "site a"},
		{Date: "2024-05-01"},
	}

	combined := reconcile.FilterLogs(logs, reconcile.Filter{Status: "draft", Search: "site a", Date: "2024-05-01"})

	inAll := func(id string) bool {
		for _, f := range filters {
			found := false
			for _, l := range reconcile.FilterLogs(logs, f) {
				if l.ID == id {
					found = true
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	var want []string
	for _, l := range logs {
		if inAll(l.ID) {
			want = append(want, l.ID)
		}
	}
	var got []string
	for _, l := range combined {
		got = append(got, l.ID)
	}
	require.Equal(t, want, got)
	require.Equal(t, []string{"l1"}, got)
}

func TestFilterLogs_Pure(t *testing.T) {
	logs := sampleLogs()
	before := sampleLogs()
	f := reconcile.Filter{Status: "submitted", Search: "site"}

	first := reconcile.FilterLogs(logs, f)
	second := reconcile.FilterLogs(logs, f)
	require.Equal(t, first, second)
	require.Equal(t, before, logs)
}

func TestAggregateSafetyIssues(t *testing.T) {
	projects := []project.Project{
		{Name: "Site A", Tasks: []project.Task{
			{WorkLogs: sampleLogs()},
			{WorkLogs: []worklog.WorkLog{{SafetyIssues: "Exposed wiring"}, {SafetyIssues: ""}}},
		}},
		{Name: "Empty"},
	}
	require.Equal(t, 2, reconcile.AggregateSafetyIssues(projects))
	require.Zero(t, reconcile.AggregateSafetyIssues(nil))

	issues := reconcile.SafetyIssues(sampleLogs())
	require.Len(t, issues, 1)
	require.Equal(t, "l2", issues[0].ID)
}

func TestLoadIndex_FailSoftPerDate(t *testing.T) {
	ctx := context.Background()
	src := &mocks.AttendanceSource{}
	src.On("RecordsForDate", ctx, "2024-05-01").Return(siteASheet(), nil).Once()
	src.On("RecordsForDate", ctx, "2024-05-02").Return(nil, errors.New("timeout")).Once()

	ix := reconcile.LoadIndex(ctx, src, []string{"2024-05-01", "2024-05-02", "2024-05-01"}, nil)
	require.Len(t, ix.TotalWorkers("2024-05-01", "Site A"), 10)
	require.True(t, ix.Has("2024-05-02"))
	require.Empty(t, ix.RecordsForDate("2024-05-02"))
	src.AssertExpectations(t)
}

func TestLogDates(t *testing.T) {
	logs := []worklog.WorkLog{
		{Date: "2024-05-02"}, {Date: "2024-05-01T08:00:00Z"}, {Date: "2024-05-02"}, {Date: "garbage"},
	}
	require.Equal(t, []string{"2024-05-02", "2024-05-01"}, reconcile.LogDates(logs))
}

func TestMaterialImpact(t *testing.T) {
	logs := []worklog.WorkLog{
		{MaterialsUsed: []worklog.MaterialUsage{{Name: "Cement", Quantity: "3", Unit: "Nos"}, {Name: "Rebar", Quantity: "4", Unit: "Nos"}}},
		{MaterialsUsed: []worklog.MaterialUsage{{Name: " cement", Quantity: "4.5", Unit: "Nos"}, {Name: "Cement", Quantity: "lots", Unit: "Nos"}}},
	}
	ledger := []material.Material{
		{Name: "Cement", CurrentStock: 5, ReorderLevel: 10, Unit: "bags", Status: material.StatusInStock},
	}

	impact := reconcile.MaterialImpact(logs, ledger)
	require.Len(t, impact, 2)

	cement := impact[0]
	require.Equal(t, "Cement", cement.Material)
	require.True(t, cement.Matched)
	require.Equal(t, "bags", cement.Unit)
	require.InDelta(t, 7.5, cement.Consumed, 1e-9)
	require.Equal(t, 1, cement.UnparsedRows)
	require.Equal(t, 5.0, cement.CurrentStock)
	require.Zero(t, cement.ProjectedStock)
	require.True(t, cement.BelowReorder)

	rebar := impact[1]
	require.Equal(t, "Rebar", rebar.Material)
	require.False(t, rebar.Matched)
	require.Equal(t, 4.0, rebar.Consumed)

	// the ledger itself is untouched
	require.Equal(t, 5.0, ledger[0].CurrentStock)
}
