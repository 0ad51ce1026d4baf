package worklog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/siteledger/internal/domain/activity"
	"github.com/rpggio/siteledger/internal/domain/attendance"
	"github.com/rpggio/siteledger/internal/domain/calendar"
	"github.com/rpggio/siteledger/internal/domain/faults"
	"github.com/rpggio/siteledger/internal/repository"
)

// Service is the Work-Log Store.
type Service struct {
	logs        Repository
	tasks       TaskLocator
	attendance  AttendanceSource
	activities  ActivityRepository
	stock       StockConsumer
	defaultUnit string
	logger      *slog.Logger
	now         func() time.Time
}

// NewService creates a new work log service. attendance and activities may
// be nil.
func NewService(logs Repository, tasks TaskLocator, attendance AttendanceSource, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{
		logs:        logs,
		tasks:       tasks,
		attendance:  attendance,
		activities:  activities,
		defaultUnit: DefaultUnit,
		logger:      logger,
		now:         time.Now,
	}
}

// WithStockConsumer links recorded usage to the material ledger: every
// usage row of a newly created log is consumed from stock. Without it,
// usage is recorded on the log only.
func (s *Service) WithStockConsumer(c StockConsumer) *Service {
	s.stock = c
	return s
}

// WithDefaultUnit overrides the unit given to usage rows without one.
func (s *Service) WithDefaultUnit(unit string) *Service {
	if strings.TrimSpace(unit) != "" {
		s.defaultUnit = strings.TrimSpace(unit)
	}
	return s
}

// Get fetches a work log by ID.
func (s *Service) Get(ctx context.Context, id string) (*WorkLog, error) {
	log, err := s.logs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("getting work log: %w", err)
	}
	return log, nil
}

// Create saves a new draft log under projectID/taskID.
func (s *Service) Create(ctx context.Context, projectID, taskID string, in Input) (*WorkLog, error) {
	ref, day, err := s.prepare(ctx, projectID, taskID, in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	log := &WorkLog{
		ID:        uuid.NewString(),
		Status:    StatusDraft,
		CreatedAt: now,
	}
	s.apply(ctx, log, ref, day, in, now)

	if err := s.logs.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("creating work log: %w", err)
	}

	s.consumeStock(ctx, log)
	s.logActivity(ctx, log.ID, activity.TypeWorkLogCreated,
		fmt.Sprintf("created work log for %s / %s on %s", log.ProjectName, log.TaskName, log.Date))
	return log, nil
}

// Update replaces the editable fields of an existing log. Status is kept.
func (s *Service) Update(ctx context.Context, projectID, taskID, logID string, in Input) (*WorkLog, error) {
	ref, day, err := s.prepare(ctx, projectID, taskID, in)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(logID) == "" {
		return nil, fmt.Errorf("%w: log id is required", ErrMissingLinkage)
	}

	current, err := s.Get(ctx, logID)
	if err != nil {
		return nil, err
	}
	if current.TaskID != ref.TaskID {
		return nil, ErrLogNotFound
	}
	if current.Status == StatusApproved {
		return nil, ErrLogLocked
	}

	updated := *current
	s.apply(ctx, &updated, ref, day, in, s.now())

	if err := s.logs.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("updating work log: %w", err)
	}

	s.logActivity(ctx, updated.ID, activity.TypeWorkLogUpdated,
		fmt.Sprintf("updated work log for %s / %s on %s", updated.ProjectName, updated.TaskName, updated.Date))
	return &updated, nil
}

// SubmitForApproval moves a log to submitted. The log must carry its own id
// plus the project and task it is stored under; nothing but the status
// changes and the stored log is returned.
func (s *Service) SubmitForApproval(ctx context.Context, log WorkLog) (*WorkLog, error) {
	if strings.TrimSpace(log.ProjectID) == "" || strings.TrimSpace(log.TaskID) == "" || strings.TrimSpace(log.ID) == "" {
		return nil, ErrMissingIdentifiers
	}

	current, err := s.Get(ctx, log.ID)
	if err != nil {
		return nil, err
	}
	if current.ProjectID != log.ProjectID || current.TaskID != log.TaskID {
		return nil, fmt.Errorf("%w: log %s belongs to %s / %s", ErrMissingIdentifiers, log.ID, current.ProjectID, current.TaskID)
	}
	if err := ValidateTransition(current.Status, StatusSubmitted); err != nil {
		return nil, err
	}

	if err := s.logs.UpdateStatus(ctx, log.ID, StatusSubmitted); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("submitting work log: %w", err)
	}

	submitted := *current
	submitted.Status = StatusSubmitted
	s.logActivity(ctx, log.ID, activity.TypeWorkLogSubmitted,
		fmt.Sprintf("submitted work log %s for approval", log.ID))
	return &submitted, nil
}

func (s *Service) prepare(ctx context.Context, projectID, taskID string, in Input) (*TaskRef, string, error) {
	if strings.TrimSpace(projectID) == "" || strings.TrimSpace(taskID) == "" {
		return nil, "", ErrMissingLinkage
	}
	day, err := calendar.Normalize(in.Date)
	if err != nil {
		return nil, "", err
	}
	ref, err := s.tasks.LocateTask(ctx, projectID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, faults.ErrNotFound) {
			return nil, "", ErrTaskNotFound
		}
		return nil, "", fmt.Errorf("locating task: %w", err)
	}
	return ref, day, nil
}

func (s *Service) apply(ctx context.Context, log *WorkLog, ref *TaskRef, day string, in Input, now time.Time) {
	log.ProjectID = ref.ProjectID
	log.ProjectName = ref.ProjectName
	log.TaskID = ref.TaskID
	log.TaskName = ref.TaskName
	log.Date = day
	log.WorkProgress = in.WorkProgress
	log.SafetyIssues = normalizeSafety(in.SafetyIssues)
	log.Weather = in.Weather
	log.MaterialsUsed = NormalizeUsage(in.MaterialsUsed, s.defaultUnit)
	log.Images = append([]string{}, in.Images...)
	log.WorkersPresent = s.snapshotWorkers(ctx, day, ref.ProjectName)
	log.UpdatedAt = now
}

// snapshotWorkers copies who was present for the log's date and project at
// save time. It is not refreshed when attendance changes later. A failed
// attendance fetch yields an empty snapshot rather than blocking the save.
func (s *Service) snapshotWorkers(ctx context.Context, day, projectName string) []WorkerRef {
	workers := []WorkerRef{}
	if s.attendance == nil {
		return workers
	}
	records, err := s.attendance.RecordsForDate(ctx, day)
	if err != nil {
		s.log().Warn("attendance unavailable for worker snapshot", "date", day, "project", projectName, "error", err)
		return workers
	}
	ix := attendance.NewIndex()
	ix.Put(day, records)
	for _, rec := range ix.PresentWorkers(day, projectName) {
		workers = append(workers, WorkerRef{EmployeeID: rec.EmployeeID, Name: rec.Name, Status: rec.Status})
	}
	return workers
}

// consumeStock is a no-op unless a StockConsumer is wired. Failures are
// logged; the log itself is already saved.
func (s *Service) consumeStock(ctx context.Context, log *WorkLog) {
	if s.stock == nil {
		return
	}
	for _, usage := range log.MaterialsUsed {
		qty, ok := ParseQuantity(usage.Quantity)
		if !ok || qty <= 0 {
			s.log().Warn("skipping stock consumption", "log_id", log.ID, "material", usage.Name, "quantity", usage.Quantity)
			continue
		}
		if err := s.stock.Consume(ctx, usage.Name, qty); err != nil {
			s.log().Warn("stock consumption failed", "log_id", log.ID, "material", usage.Name, "error", err)
		}
	}
}

func (s *Service) logActivity(ctx context.Context, id string, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	_ = s.activities.Log(ctx, &activity.Entry{
		EntityType: activity.EntityWorkLog,
		EntityID:   id,
		Type:       typ,
		Summary:    summary,
	})
}

func (s *Service) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}
