package material

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rpggio/siteledger/internal/domain/activity"
	"github.com/rpggio/siteledger/internal/repository"
)

// Options tune ledger behavior.
type Options struct {
	// DeriveStatus recomputes status from stock and reorder level on every
	// write instead of keeping the operator-set value.
	DeriveStatus bool
}

// Service is the Material Ledger.
type Service struct {
	repo       Repository
	activities ActivityRepository
	validate   *validator.Validate
	opts       Options
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new ledger service.
func NewService(repo Repository, activities ActivityRepository, opts Options, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		activities: activities,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

// ListMaterials returns every material in the ledger.
func (s *Service) ListMaterials(ctx context.Context) ([]Material, error) {
	materials, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing materials: %w", err)
	}
	if materials == nil {
		materials = []Material{}
	}
	return materials, nil
}

// Get fetches a material by ID.
func (s *Service) Get(ctx context.Context, id string) (*Material, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("getting material: %w", err)
	}
	return m, nil
}

// Upsert creates the material when it has no ID, otherwise replaces every
// field of the stored material. lastUpdated is always set to now.
func (s *Service) Upsert(ctx context.Context, m Material) (*Material, error) {
	m.Name = strings.TrimSpace(m.Name)
	if err := s.validate.Struct(m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if m.Status != "" && !m.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, m.Status)
	}
	if m.Status == "" || s.opts.DeriveStatus {
		m.Status = DeriveStatus(m)
	}
	m.LastUpdated = s.now()

	if strings.TrimSpace(m.ID) == "" {
		m.ID = uuid.NewString()
		if err := s.repo.Create(ctx, &m); err != nil {
			return nil, fmt.Errorf("creating material: %w", err)
		}
		s.logActivity(ctx, m.ID, activity.TypeMaterialCreated, fmt.Sprintf("created material %s", m.Name))
		return &m, nil
	}

	if _, err := s.Get(ctx, m.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("updating material: %w", err)
	}
	s.logActivity(ctx, m.ID, activity.TypeMaterialUpdated, fmt.Sprintf("updated material %s (stock %g)", m.Name, m.CurrentStock))
	return &m, nil
}

// TotalValue returns the ledger's stock value.
func (s *Service) TotalValue(ctx context.Context) (float64, error) {
	materials, err := s.ListMaterials(ctx)
	if err != nil {
		return 0, err
	}
	return TotalValue(materials), nil
}

// CountByStatus counts materials by stored status.
func (s *Service) CountByStatus(ctx context.Context, status Status) (int, error) {
	materials, err := s.ListMaterials(ctx)
	if err != nil {
		return 0, err
	}
	return CountByStatus(materials, status), nil
}

// Summary returns ledger statistics.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	materials, err := s.ListMaterials(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(materials), nil
}

// FindByName returns the first material whose normalized name matches.
func (s *Service) FindByName(ctx context.Context, name string) (*Material, error) {
	materials, err := s.ListMaterials(ctx)
	if err != nil {
		return nil, err
	}
	key := NameKey(name)
	for i := range materials {
		if NameKey(materials[i].Name) == key {
			return &materials[i], nil
		}
	}
	return nil, ErrMaterialNotFound
}

// Consume decrements stock for a recorded usage, flooring at zero. This is
// the link between work-log material usage and the ledger; it only runs
// when stock consumption is enabled in the workflow config.
func (s *Service) Consume(ctx context.Context, name string, quantity float64) (*Material, error) {
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return nil, fmt.Errorf("%w: consumed quantity must be positive", ErrInvalidInput)
	}
	m, err := s.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	updated := *m
	updated.CurrentStock = math.Max(0, m.CurrentStock-quantity)
	if s.opts.DeriveStatus {
		updated.Status = DeriveStatus(updated)
	}
	updated.LastUpdated = s.now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("consuming stock: %w", err)
	}
	s.logActivity(ctx, updated.ID, activity.TypeStockConsumed,
		fmt.Sprintf("consumed %g %s of %s (stock %g -> %g)", quantity, updated.Unit, updated.Name, m.CurrentStock, updated.CurrentStock))
	return &updated, nil
}

func (s *Service) logActivity(ctx context.Context, id string, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	_ = s.activities.Log(ctx, &activity.Entry{
		EntityType: activity.EntityMaterial,
		EntityID:   id,
		Type:       typ,
		Summary:    summary,
	})
}
