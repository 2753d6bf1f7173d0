package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gameforge-server/internal/models"
	"gameforge-server/internal/repository"
)

// QuotaService enforces the per-user daily generation limit.
type QuotaService interface {
	// Consume atomically claims one generation slot for today and returns
	// models.ErrQuotaExceeded when the daily limit is already reached.
	Consume(ctx context.Context, userID uuid.UUID) error
	// Usage reports today's counter and the configured limit.
	Usage(ctx context.Context, userID uuid.UUID) (used, limit int, err error)
}

type quotaServiceImpl struct {
	usageRepo repository.UsageRepository
	limit     int
	now       func() time.Time
	logger    *zap.Logger
}

var _ QuotaService = (*quotaServiceImpl)(nil)

// NewQuotaService creates the quota service with the given daily limit.
func NewQuotaService(usageRepo repository.UsageRepository, limit int, logger *zap.Logger) QuotaService {
	return &quotaServiceImpl{
		usageRepo: usageRepo,
		limit:     limit,
		now:       time.Now,
		logger:    logger.Named("QuotaService"),
	}
}

func (s *quotaServiceImpl) Consume(ctx context.Context, userID uuid.UUID) error {
	incremented, err := s.usageRepo.IncrementIfBelow(ctx, userID, s.now().UTC(), s.limit)
	if err != nil {
		return fmt.Errorf("failed to consume generation quota: %w", err)
	}
	if !incremented {
		s.logger.Info("Daily generation limit reached",
			zap.String("userID", userID.String()),
			zap.Int("limit", s.limit))
		return models.ErrQuotaExceeded
	}
	return nil
}

func (s *quotaServiceImpl) Usage(ctx context.Context, userID uuid.UUID) (int, int, error) {
	count, err := s.usageRepo.GetCount(ctx, userID, s.now().UTC())
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read generation usage: %w", err)
	}
	return count, s.limit, nil
}
