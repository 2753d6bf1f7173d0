package repository

import (
	"context"

	"github.com/google/uuid"

	"gameforge-server/internal/models"
)

// ImageRepository stores the two illustrative blobs attached to a concept.
type ImageRepository interface {
	SaveImage(ctx context.Context, conceptID uuid.UUID, kind models.ImageKind, data []byte) error
	GetImage(ctx context.Context, conceptID uuid.UUID, kind models.ImageKind) ([]byte, error)
}
