package project

import (
	"context"
	"time"

	"github.com/rpggio/siteledger/internal/domain/activity"
	"github.com/rpggio/siteledger/internal/domain/worklog"
)

// Repository provides persistence for projects and their tasks.
type Repository interface {
	// List returns every project with tasks and work logs nested.
	List(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id string) (*Project, error)
	Create(ctx context.Context, proj *Project) error
	CreateTask(ctx context.Context, task *Task) error
	SetTaskCompletion(ctx context.Context, projectID, taskID string, completedAt *time.Time) error
	LocateTask(ctx context.Context, projectID, taskID string) (*worklog.TaskRef, error)
}

// ActivityRepository logs project activity.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
}
