package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UsageRepository persists per-user daily generation counters.
type UsageRepository interface {
	// GetCount returns the counter for (user, day), creating it at 0 when
	// absent.
	GetCount(ctx context.Context, userID uuid.UUID, day time.Time) (int, error)
	// IncrementIfBelow atomically increments the counter only while it is
	// below limit, and reports whether the increment happened. This closes
	// the check-then-increment race at the SQL level.
	IncrementIfBelow(ctx context.Context, userID uuid.UUID, day time.Time, limit int) (bool, error)
}
