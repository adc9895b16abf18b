package reservation

import (
	"context"
	"time"
)

// Repository persists reservation attempt outcomes for later inspection.
type Repository interface {
	Create(ctx context.Context, attempt *Attempt) error
	ListSince(ctx context.Context, since time.Time) ([]*Attempt, error)
}
