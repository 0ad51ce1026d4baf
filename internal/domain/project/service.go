package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rpggio/siteledger/internal/domain/activity"
	"github.com/rpggio/siteledger/internal/domain/worklog"
	"github.com/rpggio/siteledger/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo       Repository
	activities ActivityRepository
	validate   *validator.Validate
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new project service.
func NewService(repo Repository, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		activities: activities,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     logger,
		now:        time.Now,
	}
}

// ListProjects returns the full project tree.
func (s *Service) ListProjects(ctx context.Context) ([]Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	if projects == nil {
		projects = []Project{}
	}
	return projects, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// Create creates a new project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	status := req.Status
	if status == "" {
		status = StatusPlanning
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	workers := req.AssignedWorkers
	if workers == nil {
		workers = []string{}
	}
	proj := &Project{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Status:          status,
		Priority:        req.Priority,
		AssignedWorkers: workers,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Tasks:           []Task{},
		CreatedAt:       s.now(),
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	s.logActivity(ctx, activity.EntityProject, proj.ID, activity.TypeProjectCreated, fmt.Sprintf("created project %s", proj.Name))
	return proj, nil
}

// AddTask adds a task to an existing project.
func (s *Service) AddTask(ctx context.Context, projectID string, req TaskRequest) (*Task, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := s.Get(ctx, projectID); err != nil {
		return nil, err
	}

	task := &Task{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      req.Name,
		WorkLogs:  []worklog.WorkLog{},
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("creating task: %w", err)
	}
	s.logActivity(ctx, activity.EntityTask, task.ID, activity.TypeTaskCreated, fmt.Sprintf("added task %s", task.Name))
	return task, nil
}

// SetTaskCompletion marks a task complete (stamping completedDate) or
// reopens it (clearing completedDate).
func (s *Service) SetTaskCompletion(ctx context.Context, projectID, taskID string, completed bool) error {
	var at *time.Time
	if completed {
		now := s.now()
		at = &now
	}
	if err := s.repo.SetTaskCompletion(ctx, projectID, taskID, at); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("setting task completion: %w", err)
	}
	s.logActivity(ctx, activity.EntityTask, taskID, activity.TypeTaskCompletionChange,
		fmt.Sprintf("task marked completed=%t", completed))
	return nil
}

// LocateTask resolves a project/task pair for work log denormalization.
func (s *Service) LocateTask(ctx context.Context, projectID, taskID string) (*worklog.TaskRef, error) {
	ref, err := s.repo.LocateTask(ctx, projectID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("locating task: %w", err)
	}
	return ref, nil
}

func (s *Service) logActivity(ctx context.Context, entity, id string, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	_ = s.activities.Log(ctx, &activity.Entry{
		EntityType: entity,
		EntityID:   id,
		Type:       typ,
		Summary:    summary,
	})
}
