package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/siteledger/internal/domain/attendance"
)

// AttendanceRepository implements attendance.Repository for SQLite
type AttendanceRepository struct {
	db *DB
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ListByDate returns the sheet for date in the order it was saved. A date
// with no sheet yields an empty slice.
func (r *AttendanceRepository) ListByDate(ctx context.Context, date string) ([]attendance.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT employee_id, name, project, status, check_in, reason
		FROM attendance
		WHERE date = ?
		ORDER BY id
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := []attendance.Record{}
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(&rec.EmployeeID, &rec.Name, &rec.Project, &rec.Status, &rec.CheckIn, &rec.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", err)
	}

	return records, nil
}

// ReplaceDay swaps the whole sheet for date in one transaction
func (r *AttendanceRepository) ReplaceDay(ctx context.Context, date string, records []attendance.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attendance WHERE date = ?`, date); err != nil {
		return fmt.Errorf("failed to clear attendance: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO attendance (date, employee_id, name, project, status, check_in, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare attendance insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, date, rec.EmployeeID, rec.Name, rec.Project, rec.Status, rec.CheckIn, rec.Reason); err != nil {
			return fmt.Errorf("failed to insert attendance record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
