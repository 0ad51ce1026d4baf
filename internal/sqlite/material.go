package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/siteledger/internal/domain/material"
	"github.com/rpggio/siteledger/internal/repository"
)

// MaterialRepository implements material.Repository for SQLite
type MaterialRepository struct {
	db *DB
}

// NewMaterialRepository creates a new MaterialRepository
func NewMaterialRepository(db *DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

const materialColumns = `id, name, category, current_stock, reorder_level, unit, price_per_unit, supplier, status, last_updated`

// List returns every material in insertion order
func (r *MaterialRepository) List(ctx context.Context) ([]material.Material, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	defer rows.Close()

	materials := []material.Material{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating material rows: %w", err)
	}

	return materials, nil
}

// Get retrieves a material by ID
func (r *MaterialRepository) Get(ctx context.Context, id string) (*material.Material, error) {
	m, err := scanMaterial(r.db.QueryRowContext(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return m, nil
}

// Create inserts a material
func (r *MaterialRepository) Create(ctx context.Context, m *material.Material) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO materials (`+materialColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		m.ID,
		m.Name,
		m.Category,
		m.CurrentStock,
		m.ReorderLevel,
		m.Unit,
		m.PricePerUnit,
		m.Supplier,
		m.Status,
		m.LastUpdated,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}
	return nil
}

// Update replaces every field of a material
func (r *MaterialRepository) Update(ctx context.Context, m *material.Material) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE materials
		SET name = ?, category = ?, current_stock = ?, reorder_level = ?, unit = ?,
			price_per_unit = ?, supplier = ?, status = ?, last_updated = ?
		WHERE id = ?
	`,
		m.Name,
		m.Category,
		m.CurrentStock,
		m.ReorderLevel,
		m.Unit,
		m.PricePerUnit,
		m.Supplier,
		m.Status,
		m.LastUpdated,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update material: %w", err)
	}
	return requireAffected(result)
}

func scanMaterial(row scanner) (*material.Material, error) {
	var m material.Material
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Category,
		&m.CurrentStock,
		&m.ReorderLevel,
		&m.Unit,
		&m.PricePerUnit,
		&m.Supplier,
		&m.Status,
		&m.LastUpdated,
	); err != nil {
		return nil, err
	}
	return &m, nil
}
