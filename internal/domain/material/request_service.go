package material

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
	"github.com/rpggio/siteledger/internal/repository"
)

// RequestService handles material requests and their status workflow.
type RequestService struct {
	repo       RequestRepository
	activities ActivityRepository
	guard      TransitionGuard
	validate   *validator.Validate
	logger     *slog.Logger
	now        func() time.Time
}

// NewRequestService creates a request service. A nil guard keeps status
// changes unrestricted.
func NewRequestService(repo RequestRepository, activities ActivityRepository, guard TransitionGuard, logger *slog.Logger) *RequestService {
	return &RequestService{
		repo:       repo,
		activities: activities,
		guard:      guard,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     logger,
		now:        time.Now,
	}
}

// List returns every material request.
func (s *RequestService) List(ctx context.Context) ([]Request, error) {
	reqs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing material requests: %w", err)
	}
	if reqs == nil {
		reqs = []Request{}
	}
	return reqs, nil
}

// Get fetches a request by ID.
func (s *RequestService) Get(ctx context.Context, id string) (*Request, error) {
	req, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("getting material request: %w", err)
	}
	return req, nil
}

// Create files a new request. Status starts at pending unless given; a
// guarded service only accepts pending.
func (s *RequestService) Create(ctx context.Context, req Request) (*Request, error) {
	if err := s.check(&req); err != nil {
		return nil, err
	}
	if req.Status == "" {
		req.Status = RequestPending
	}
	if s.guard != nil && req.Status != RequestPending {
		return nil, fmt.Errorf("%w: new requests start as %s, got %s", ErrInvalidTransition, RequestPending, req.Status)
	}
	req.ID = uuid.NewString()
	req.RequestedDate = s.now()

	if err := s.repo.Create(ctx, &req); err != nil {
		return nil, fmt.Errorf("creating material request: %w", err)
	}
	s.logActivity(ctx, req.ID, activity.TypeRequestCreated,
		fmt.Sprintf("requested %g of %s", req.Quantity, req.MaterialName))
	return &req, nil
}

// Update replaces every field of a stored request. A status change is
// checked against the guard table.
func (s *RequestService) Update(ctx context.Context, id string, req Request) (*Request, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.check(&req); err != nil {
		return nil, err
	}
	if req.Status == "" {
		req.Status = current.Status
	}
	if !s.guard.Allows(current.Status, req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, req.Status)
	}

	req.ID = current.ID
	req.RequestedDate = current.RequestedDate
	if err := s.repo.Update(ctx, &req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("updating material request: %w", err)
	}

	summary := fmt.Sprintf("updated request for %s", req.MaterialName)
	if current.Status != req.Status {
		summary = fmt.Sprintf("request for %s: %s -> %s", req.MaterialName, current.Status, req.Status)
	}
	s.logActivity(ctx, req.ID, activity.TypeRequestUpdated, summary)
	return &req, nil
}

// Delete removes a request.
func (s *RequestService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("deleting material request: %w", err)
	}
	s.logActivity(ctx, id, activity.TypeRequestDeleted, "deleted material request")
	return nil
}

func (s *RequestService) check(req *Request) error {
	req.MaterialName = strings.TrimSpace(req.MaterialName)
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Status != "" && !req.Status.Valid() {
		return fmt.Errorf("%w: unknown request status %q", ErrInvalidInput, req.Status)
	}
	return nil
}

func (s *RequestService) logActivity(ctx context.Context, id string, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	_ = s.activities.Log(ctx, &activity.Entry{
		EntityType: activity.EntityMaterialRequest,
		EntityID:   id,
		Type:       typ,
		Summary:    summary,
	})
}
