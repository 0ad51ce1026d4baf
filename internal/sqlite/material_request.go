package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/siteledger/internal/domain/material"
	"github.com/rpggio/siteledger/internal/repository"
)

// MaterialRequestRepository implements material.RequestRepository for SQLite
type MaterialRequestRepository struct {
	db *DB
}

// NewMaterialRequestRepository creates a new MaterialRequestRepository
func NewMaterialRequestRepository(db *DB) *MaterialRequestRepository {
	return &MaterialRequestRepository{db: db}
}

const requestColumns = `id, material_name, quantity, preferred_supplier, required_date, supervisor_name, notes, status, requested_date`

// List returns every request, newest first
func (r *MaterialRequestRepository) List(ctx context.Context) ([]material.Request, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+requestColumns+` FROM material_requests ORDER BY requested_date DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list material requests: %w", err)
	}
	defer rows.Close()

	reqs := []material.Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan material request: %w", err)
		}
		reqs = append(reqs, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating material request rows: %w", err)
	}

	return reqs, nil
}

// Get retrieves a request by ID
func (r *MaterialRequestRepository) Get(ctx context.Context, id string) (*material.Request, error) {
	req, err := scanRequest(r.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM material_requests WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get material request: %w", err)
	}
	return req, nil
}

// Create inserts a request
func (r *MaterialRequestRepository) Create(ctx context.Context, req *material.Request) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO material_requests (`+requestColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		req.ID,
		req.MaterialName,
		req.Quantity,
		req.PreferredSupplier,
		req.RequiredDate,
		req.SupervisorName,
		req.Notes,
		req.Status,
		req.RequestedDate,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create material request: %w", err)
	}
	return nil
}

// Update replaces every field of a request except its requested date
func (r *MaterialRequestRepository) Update(ctx context.Context, req *material.Request) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE material_requests
		SET material_name = ?, quantity = ?, preferred_supplier = ?, required_date = ?,
			supervisor_name = ?, notes = ?, status = ?
		WHERE id = ?
	`,
		req.MaterialName,
		req.Quantity,
		req.PreferredSupplier,
		req.RequiredDate,
		req.SupervisorName,
		req.Notes,
		req.Status,
		req.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update material request: %w", err)
	}
	return requireAffected(result)
}

// Delete removes a request
func (r *MaterialRequestRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM material_requests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete material request: %w", err)
	}
	return requireAffected(result)
}

func scanRequest(row scanner) (*material.Request, error) {
	var req material.Request
	if err := row.Scan(
		&req.ID,
		&req.MaterialName,
		&req.Quantity,
		&req.PreferredSupplier,
		&req.RequiredDate,
		&req.SupervisorName,
		&req.Notes,
		&req.Status,
		&req.RequestedDate,
	); err != nil {
		return nil, err
	}
	return &req, nil
}
