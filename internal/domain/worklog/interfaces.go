package worklog

import (
	"context"

	"github.com/rpggio/siteledger/internal/domain/activity"
	"github.com/rpggio/siteledger/internal/domain/attendance"
)

// Repository provides persistence for work logs.
type Repository interface {
	Create(ctx context.Context, log *WorkLog) error
	Get(ctx context.Context, id string) (*WorkLog, error)
	Update(ctx context.Context, log *WorkLog) error
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// TaskLocator resolves the parent task of a log.
type TaskLocator interface {
	LocateTask(ctx context.Context, projectID, taskID string) (*TaskRef, error)
}

// AttendanceSource supplies the sheet used for the workers-present snapshot.
type AttendanceSource interface {
	RecordsForDate(ctx context.Context, date string) ([]attendance.Record, error)
}

// StockConsumer decrements ledger stock for recorded usage.
type StockConsumer interface {
	Consume(ctx context.Context, name string, quantity float64) error
}

// ActivityRepository logs work log activity.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
}

// StockConsumerFunc adapts a function to StockConsumer.
type StockConsumerFunc func(ctx context.Context, name string, quantity float64) error

// Consume calls f.
func (f StockConsumerFunc) Consume(ctx context.Context, name string, quantity float64) error {
	return f(ctx, name, quantity)
}
