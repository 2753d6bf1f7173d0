package repository

import (
	"context"

	"github.com/google/uuid"

	"gameforge-server/internal/models"
)

// FavoriteRepository persists user bookmarks of concepts.
type FavoriteRepository interface {
	AddFavorite(ctx context.Context, userID, conceptID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, conceptID uuid.UUID) error
	CheckFavorite(ctx context.Context, userID, conceptID uuid.UUID) (bool, error)
	// ListFavoriteConcepts returns the user's favorited concepts ordered by
	// the time the favorite was created, newest first. Private concepts stay
	// in the list; access control applies only on detail views.
	ListFavoriteConcepts(ctx context.Context, userID uuid.UUID) ([]*models.Concept, error)
}
