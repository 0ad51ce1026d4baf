package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/siteledger/internal/domain/attendance"
	"github.com/rpggio/siteledger/internal/domain/calendar"
	"github.com/rpggio/siteledger/internal/domain/material"
	"github.com/rpggio/siteledger/internal/domain/project"
	"github.com/rpggio/siteledger/internal/domain/worklog"
)

// Engine runs reconciliation against a set of sources. The sources may be
// the local services or the REST client.
type Engine struct {
	projects   ProjectSource
	attendance AttendanceSource
	materials  MaterialSource
	logger     *slog.Logger
	now        func() time.Time
}

// NewEngine creates an engine. materials may be nil when only work log
// reconciliation is needed.
func NewEngine(projects ProjectSource, attendance AttendanceSource, materials MaterialSource, logger *slog.Logger) *Engine {
	return &Engine{
		projects:   projects,
		attendance: attendance,
		materials:  materials,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the engine's notion of today.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// AnnotatedLog is a work log with its attendance join.
type AnnotatedLog struct {
	Log        worklog.WorkLog `json:"log"`
	Attendance Stats           `json:"attendance"`
}

// Dashboard is the work log overview: the filtered list annotated with
// attendance, counters over every log, and the safety-issue count.
type Dashboard struct {
	Filter       Filter         `json:"filter"`
	Logs         []AnnotatedLog `json:"logs"`
	Counts       Counts         `json:"counts"`
	SafetyIssues int            `json:"safetyIssues"`
	GeneratedAt  time.Time      `json:"generatedAt"`
}

// Dashboard builds the work log overview for f.
func (e *Engine) Dashboard(ctx context.Context, f Filter) (*Dashboard, error) {
	projects, err := e.projects.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	now := e.now()
	all := project.FlattenWorkLogs(projects)
	filtered := FilterLogs(all, f)
	ix := LoadIndex(ctx, e.attendance, LogDates(filtered), e.logger)

	annotated := make([]AnnotatedLog, 0, len(filtered))
	for _, l := range filtered {
		annotated = append(annotated, AnnotatedLog{Log: l, Attendance: StatsFor(l, ix)})
	}

	return &Dashboard{
		Filter:       f,
		Logs:         annotated,
		Counts:       CountAll(all, now),
		SafetyIssues: AggregateSafetyIssues(projects),
		GeneratedAt:  now,
	}, nil
}

// AttendanceStats answers the join for one date and project label without
// needing a log.
func (e *Engine) AttendanceStats(ctx context.Context, date, projectName string) (Stats, error) {
	day, err := calendar.Normalize(date)
	if err != nil {
		return Stats{}, err
	}
	records, err := e.attendance.RecordsForDate(ctx, day)
	if err != nil {
		return Stats{}, fmt.Errorf("loading attendance: %w", err)
	}
	ix := attendance.NewIndex()
	ix.Put(day, records)
	return StatsFor(worklog.WorkLog{Date: day, ProjectName: projectName}, ix), nil
}

// SafetyIssueCount counts logs reporting a real safety issue.
func (e *Engine) SafetyIssueCount(ctx context.Context) (int, error) {
	projects, err := e.projects.ListProjects(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading projects: %w", err)
	}
	return AggregateSafetyIssues(projects), nil
}

// SafetyIssueLogs lists the logs reporting a real safety issue.
func (e *Engine) SafetyIssueLogs(ctx context.Context) ([]worklog.WorkLog, error) {
	projects, err := e.projects.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	return SafetyIssues(project.FlattenWorkLogs(projects)), nil
}

// InventorySummary returns ledger statistics.
func (e *Engine) InventorySummary(ctx context.Context) (material.Summary, error) {
	materials, err := e.listMaterials(ctx)
	if err != nil {
		return material.Summary{}, err
	}
	return material.Summarize(materials), nil
}

// MaterialImpact projects recorded usage onto the ledger. The ledger is
// only read.
func (e *Engine) MaterialImpact(ctx context.Context) ([]Impact, error) {
	projects, err := e.projects.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	materials, err := e.listMaterials(ctx)
	if err != nil {
		return nil, err
	}
	return MaterialImpact(project.FlattenWorkLogs(projects), materials), nil
}

func (e *Engine) listMaterials(ctx context.Context) ([]material.Material, error) {
	if e.materials == nil {
		return []material.Material{}, nil
	}
	materials, err := e.materials.ListMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading materials: %w", err)
	}
	return materials, nil
}
