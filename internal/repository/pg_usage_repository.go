package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	getUsageCountQuery = `
        INSERT INTO daily_usage (user_id, usage_date, count)
        VALUES ($1, $2, 0)
        ON CONFLICT (user_id, usage_date) DO UPDATE SET count = daily_usage.count
        RETURNING count
    `
	incrementUsageIfBelowQuery = `
        INSERT INTO daily_usage (user_id, usage_date, count)
        VALUES ($1, $2, 1)
        ON CONFLICT (user_id, usage_date) DO UPDATE SET count = daily_usage.count + 1
        WHERE daily_usage.count < $3
    `
)

type pgUsageRepository struct {
	db     DBTX
	logger *zap.Logger
}

// Compile-time check
var _ UsageRepository = (*pgUsageRepository)(nil)

// NewPgUsageRepository creates a PostgreSQL-backed UsageRepository.
func NewPgUsageRepository(db DBTX, logger *zap.Logger) UsageRepository {
	return &pgUsageRepository{
		db:     db,
		logger: logger.Named("PgUsageRepo"),
	}
}

// truncateToDate drops the time component so one row covers a whole day.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r *pgUsageRepository) GetCount(ctx context.Context, userID uuid.UUID, day time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, getUsageCountQuery, userID, truncateToDate(day)).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to get usage count", zap.String("userID", userID.String()), zap.Error(err))
		return 0, fmt.Errorf("failed to get usage count: %w", err)
	}
	return count, nil
}

func (r *pgUsageRepository) IncrementIfBelow(ctx context.Context, userID uuid.UUID, day time.Time, limit int) (bool, error) {
	commandTag, err := r.db.Exec(ctx, incrementUsageIfBelowQuery, userID, truncateToDate(day), limit)
	if err != nil {
		r.logger.Error("Failed to conditionally increment usage count",
			zap.String("userID", userID.String()), zap.Error(err))
		return false, fmt.Errorf("failed to conditionally increment usage count: %w", err)
	}
	// The conditional UPDATE affects no rows once the limit is reached.
	return commandTag.RowsAffected() > 0, nil
}
