package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/siteledger/internal/domain/project"
	"github.com/rpggio/siteledger/internal/domain/worklog"
	"github.com/rpggio/siteledger/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, status, priority, assigned_workers, start_date, end_date, created_at`

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	workers, err := encodeJSON(proj.AssignedWorkers)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		proj.ID,
		proj.Name,
		proj.Status,
		proj.Priority,
		workers,
		proj.StartDate,
		proj.EndDate,
		proj.CreatedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID with its tasks and work logs
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	projects, err := r.load(ctx, "WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, repository.ErrNotFound
	}
	return &projects[0], nil
}

// List returns every project with tasks and work logs nested, in creation
// order at every level
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	return r.load(ctx, "")
}

// load reads projects, then tasks, then logs, one flat query each. Each
// result set is drained before the next query runs.
func (r *ProjectRepository) load(ctx context.Context, where string, args ...any) ([]project.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects `+where+` ORDER BY created_at, rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := []project.Project{}
	index := make(map[string]int)
	for rows.Next() {
		var proj project.Project
		var workers string
		if err := rows.Scan(
			&proj.ID,
			&proj.Name,
			&proj.Status,
			&proj.Priority,
			&workers,
			&proj.StartDate,
			&proj.EndDate,
			&proj.CreatedAt,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		if proj.AssignedWorkers, err = decodeJSON[string](workers); err != nil {
			rows.Close()
			return nil, err
		}
		proj.Tasks = []project.Task{}
		index[proj.ID] = len(projects)
		projects = append(projects, proj)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	rows.Close()

	if len(projects) == 0 {
		return projects, nil
	}

	tasks, err := r.tasks(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := listWorkLogs(ctx, r.db)
	if err != nil {
		return nil, err
	}

	byTask := make(map[string][]worklog.WorkLog)
	for _, l := range logs {
		byTask[l.TaskID] = append(byTask[l.TaskID], l)
	}
	for _, task := range tasks {
		i, ok := index[task.ProjectID]
		if !ok {
			continue
		}
		if found := byTask[task.ID]; found != nil {
			task.WorkLogs = found
		}
		projects[i].Tasks = append(projects[i].Tasks, task)
	}

	return projects, nil
}

func (r *ProjectRepository) tasks(ctx context.Context) ([]project.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, name, is_completed, completed_date
		FROM tasks
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []project.Task
	for rows.Next() {
		var task project.Task
		var completed sql.NullTime
		if err := rows.Scan(&task.ID, &task.ProjectID, &task.Name, &task.IsCompleted, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if completed.Valid {
			at := completed.Time
			task.CompletedDate = &at
		}
		task.WorkLogs = []worklog.WorkLog{}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// CreateTask adds a task to a project
func (r *ProjectRepository) CreateTask(ctx context.Context, task *project.Task) error {
	var completed any
	if task.CompletedDate != nil {
		completed = *task.CompletedDate
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, project_id, name, is_completed, completed_date)
		VALUES (?, ?, ?, ?, ?)
	`, task.ID, task.ProjectID, task.Name, task.IsCompleted, completed)
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// SetTaskCompletion marks a task complete at completedAt, or reopens it when
// completedAt is nil
func (r *ProjectRepository) SetTaskCompletion(ctx context.Context, projectID, taskID string, completedAt *time.Time) error {
	var completed any
	if completedAt != nil {
		completed = *completedAt
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET is_completed = ?, completed_date = ?
		WHERE id = ? AND project_id = ?
	`, completedAt != nil, completed, taskID, projectID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// LocateTask resolves a project/task pair with names for denormalization
func (r *ProjectRepository) LocateTask(ctx context.Context, projectID, taskID string) (*worklog.TaskRef, error) {
	query := `
		SELECT p.id, p.name, t.id, t.name
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE t.id = ? AND p.id = ?
	`

	var ref worklog.TaskRef
	err := r.db.QueryRowContext(ctx, query, taskID, projectID).Scan(
		&ref.ProjectID,
		&ref.ProjectName,
		&ref.TaskID,
		&ref.TaskName,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to locate task: %w", err)
	}

	return &ref, nil
}
