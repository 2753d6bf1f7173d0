package repository

import (
	"context"

	"github.com/google/uuid"

	"gameforge-server/internal/models"
)

// TokenRepository stores issued token identifiers for verification and
// revocation.
type TokenRepository interface {
	SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error
	// GetUserIDByAccessUUID resolves an access token JTI to a user, or
	// models.ErrTokenNotFound.
	GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error)
	GetUserIDByRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error)
	DeleteAccessToken(ctx context.Context, accessUUID string) error
	DeleteRefreshToken(ctx context.Context, refreshUUID string) error
}
