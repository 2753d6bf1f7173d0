package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gameforge-server/internal/models"
)

const (
	accessKeyPrefix  = "access_uuid:"
	refreshKeyPrefix = "refresh_uuid:"
)

type redisTokenRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// Compile-time check
var _ TokenRepository = (*redisTokenRepository)(nil)

// NewRedisTokenRepository creates a Redis-backed TokenRepository.
func NewRedisTokenRepository(client *redis.Client, logger *zap.Logger) TokenRepository {
	return &redisTokenRepository{
		client: client,
		logger: logger.Named("RedisTokenRepo"),
	}
}

// SetToken stores AccessUUID -> UserID and RefreshUUID -> UserID with TTLs
// matching the token lifetimes.
func (r *redisTokenRepository) SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error {
	now := time.Now()
	accessTTL := time.Unix(td.AtExpires, 0).Sub(now)
	refreshTTL := time.Unix(td.RtExpires, 0).Sub(now)
	userIDStr := userID.String()

	pipe := r.client.Pipeline()
	pipe.Set(ctx, accessKeyPrefix+td.AccessUUID, userIDStr, accessTTL)
	pipe.Set(ctx, refreshKeyPrefix+td.RefreshUUID, userIDStr, refreshTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to store token pair", zap.String("userID", userIDStr), zap.Error(err))
		return fmt.Errorf("failed to store token pair: %w", err)
	}

	r.logger.Debug("Token pair stored", zap.String("userID", userIDStr))
	return nil
}

func (r *redisTokenRepository) GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error) {
	return r.getUserID(ctx, accessKeyPrefix+accessUUID)
}

func (r *redisTokenRepository) GetUserIDByRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error) {
	return r.getUserID(ctx, refreshKeyPrefix+refreshUUID)
}

func (r *redisTokenRepository) getUserID(ctx context.Context, key string) (uuid.UUID, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, models.ErrTokenNotFound
		}
		r.logger.Error("Failed to look up token", zap.String("key", key), zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to look up token: %w", err)
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		r.logger.Error("Stored token maps to malformed user id", zap.String("key", key), zap.Error(err))
		return uuid.Nil, fmt.Errorf("malformed user id in token storage: %w", err)
	}
	return userID, nil
}

func (r *redisTokenRepository) DeleteAccessToken(ctx context.Context, accessUUID string) error {
	return r.deleteToken(ctx, accessKeyPrefix+accessUUID)
}

func (r *redisTokenRepository) DeleteRefreshToken(ctx context.Context, refreshUUID string) error {
	return r.deleteToken(ctx, refreshKeyPrefix+refreshUUID)
}

func (r *redisTokenRepository) deleteToken(ctx context.Context, key string) error {
	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to delete token", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete token: %w", err)
	}
	if deleted == 0 {
		return models.ErrTokenNotFound
	}
	return nil
}
