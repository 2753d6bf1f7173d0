package repository

import (
	"context"

	"github.com/google/uuid"

	"gameforge-server/internal/models"
)

// ConceptRepository persists generated game concepts.
type ConceptRepository interface {
	Create(ctx context.Context, concept *models.Concept) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Concept, error)
	// ListPublic returns public concepts, newest first. When query is
	// non-empty it is matched case-insensitively against title and genre.
	ListPublic(ctx context.Context, query string) ([]*models.Concept, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Concept, error)
	SetVisibility(ctx context.Context, id uuid.UUID, isPublic bool) error
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
