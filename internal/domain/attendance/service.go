package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/rpggio/siteledger/internal/domain/activity"
	"github.com/rpggio/siteledger/internal/domain/calendar"
	"github.com/rpggio/siteledger/internal/repository"
)

// Service handles attendance sheets.
type Service struct {
	repo       Repository
	activities ActivityRepository
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewService creates a new attendance service.
func NewService(repo Repository, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		activities: activities,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     logger,
	}
}

// RecordsForDate returns the attendance sheet for date. Missing data is an
// empty sheet.
func (s *Service) RecordsForDate(ctx context.Context, date string) ([]Record, error) {
	day, err := calendar.Normalize(date)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListByDate(ctx, day)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("listing attendance: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Index builds an index over the sheet for one date.
func (s *Service) Index(ctx context.Context, date string) (*Index, error) {
	records, err := s.RecordsForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	ix := NewIndex()
	ix.Put(date, records)
	return ix, nil
}

// SaveDay replaces the whole sheet for date.
func (s *Service) SaveDay(ctx context.Context, date string, records []Record) error {
	day, err := calendar.Normalize(date)
	if err != nil {
		return err
	}
	for i, rec := range records {
		if err := s.validate.Struct(rec); err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrInvalidRecord, i, err)
		}
		if !rec.Status.Valid() {
			return fmt.Errorf("%w: record %d: %q", ErrInvalidStatus, i, rec.Status)
		}
	}

	if err := s.repo.ReplaceDay(ctx, day, records); err != nil {
		return fmt.Errorf("saving attendance: %w", err)
	}

	if s.activities != nil {
		_ = s.activities.Log(ctx, &activity.Entry{
			EntityType: activity.EntityAttendance,
			EntityID:   day,
			Type:       activity.TypeAttendanceSaved,
			Summary:    fmt.Sprintf("saved %d attendance records for %s", len(records), day),
		})
	}
	s.log().Debug("attendance saved", "date", day, "records", len(records))
	return nil
}

func (s *Service) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}
