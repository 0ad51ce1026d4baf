package attendance

import (
	"context"

	"github.com/rpggio/siteledger/internal/domain/activity"
)

// Repository provides persistence for daily attendance sheets.
type Repository interface {
	ListByDate(ctx context.Context, date string) ([]Record, error)
	ReplaceDay(ctx context.Context, date string, records []Record) error
}

// ActivityRepository logs attendance activity.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
}
