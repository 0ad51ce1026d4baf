package material

import (
	"context"

	"github.com/rpggio/siteledger/internal/domain/activity"
)

// Repository provides persistence for ledger materials.
type Repository interface {
	List(ctx context.Context) ([]Material, error)
	Get(ctx context.Context, id string) (*Material, error)
	Create(ctx context.Context, m *Material) error
	Update(ctx context.Context, m *Material) error
}

// RequestRepository provides persistence for material requests.
type RequestRepository interface {
	List(ctx context.Context) ([]Request, error)
	Get(ctx context.Context, id string) (*Request, error)
	Create(ctx context.Context, req *Request) error
	Update(ctx context.Context, req *Request) error
	Delete(ctx context.Context, id string) error
}

// ActivityRepository logs material activity.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
}
