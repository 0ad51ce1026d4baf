package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/siteledger/internal/domain/worklog"
	"github.com/rpggio/siteledger/internal/repository"
)

// WorkLogRepository implements worklog.Repository for SQLite
type WorkLogRepository struct {
	db *DB
}

// NewWorkLogRepository creates a new WorkLogRepository
func NewWorkLogRepository(db *DB) *WorkLogRepository {
	return &WorkLogRepository{db: db}
}

const workLogColumns = `
	l.id, l.project_id, p.name, l.task_id, t.name, l.date, l.work_progress,
	l.safety_issues, l.weather, l.materials_used, l.images, l.workers_present,
	l.status, l.created_at, l.updated_at`

const workLogFrom = `
	FROM work_logs l
	JOIN tasks t ON t.id = l.task_id
	JOIN projects p ON p.id = l.project_id`

type logColumns struct {
	materials string
	images    string
	workers   string
}

func encodeLogColumns(log *worklog.WorkLog) (logColumns, error) {
	var cols logColumns
	var err error
	if cols.materials, err = encodeJSON(log.MaterialsUsed); err != nil {
		return cols, err
	}
	if cols.images, err = encodeJSON(log.Images); err != nil {
		return cols, err
	}
	if cols.workers, err = encodeJSON(log.WorkersPresent); err != nil {
		return cols, err
	}
	return cols, nil
}

// Create inserts a new work log
func (r *WorkLogRepository) Create(ctx context.Context, log *worklog.WorkLog) error {
	cols, err := encodeLogColumns(log)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO work_logs (
			id, project_id, task_id, date, work_progress, safety_issues, weather,
			materials_used, images, workers_present, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		log.ID,
		log.ProjectID,
		log.TaskID,
		log.Date,
		log.WorkProgress,
		log.SafetyIssues,
		log.Weather,
		cols.materials,
		cols.images,
		cols.workers,
		log.Status,
		log.CreatedAt,
		log.UpdatedAt,
	)
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if err != nil {
		return fmt.Errorf("failed to create work log: %w", err)
	}

	return nil
}

// Get retrieves a work log by ID
func (r *WorkLogRepository) Get(ctx context.Context, id string) (*worklog.WorkLog, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workLogColumns+workLogFrom+` WHERE l.id = ?`, id)
	log, err := scanWorkLog(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work log: %w", err)
	}
	return log, nil
}

// Update replaces the editable fields of a work log. Status and creation
// time are not touched.
func (r *WorkLogRepository) Update(ctx context.Context, log *worklog.WorkLog) error {
	cols, err := encodeLogColumns(log)
	if err != nil {
		return err
	}

	query := `
		UPDATE work_logs
		SET date = ?, work_progress = ?, safety_issues = ?, weather = ?,
			materials_used = ?, images = ?, workers_present = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		log.Date,
		log.WorkProgress,
		log.SafetyIssues,
		log.Weather,
		cols.materials,
		cols.images,
		cols.workers,
		log.UpdatedAt,
		log.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update work log: %w", err)
	}

	return requireAffected(result)
}

// UpdateStatus changes only the status of a work log
func (r *WorkLogRepository) UpdateStatus(ctx context.Context, id string, status worklog.Status) error {
	result, err := r.db.ExecContext(ctx, `UPDATE work_logs SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update work log status: %w", err)
	}

	return requireAffected(result)
}

// listWorkLogs reads every work log in creation order
func listWorkLogs(ctx context.Context, db *DB) ([]worklog.WorkLog, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+workLogColumns+workLogFrom+` ORDER BY l.created_at, l.rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list work logs: %w", err)
	}
	defer rows.Close()

	var logs []worklog.WorkLog
	for rows.Next() {
		log, err := scanWorkLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work log: %w", err)
		}
		logs = append(logs, *log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work log rows: %w", err)
	}

	return logs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkLog(row scanner) (*worklog.WorkLog, error) {
	var log worklog.WorkLog
	var cols logColumns
	if err := row.Scan(
		&log.ID,
		&log.ProjectID,
		&log.ProjectName,
		&log.TaskID,
		&log.TaskName,
		&log.Date,
		&log.WorkProgress,
		&log.SafetyIssues,
		&log.Weather,
		&cols.materials,
		&cols.images,
		&cols.workers,
		&log.Status,
		&log.CreatedAt,
		&log.UpdatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if log.MaterialsUsed, err = decodeJSON[worklog.MaterialUsage](cols.materials); err != nil {
		return nil, err
	}
	if log.Images, err = decodeJSON[string](cols.images); err != nil {
		return nil, err
	}
	if log.WorkersPresent, err = decodeJSON[worklog.WorkerRef](cols.workers); err != nil {
		return nil, err
	}
	return &log, nil
}

func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
