package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"gameforge-server/internal/models"
)

const (
	saveImageQuery = `
        INSERT INTO concept_images (concept_id, kind, data)
        VALUES ($1, $2, $3)
        ON CONFLICT (concept_id, kind) DO UPDATE SET data = EXCLUDED.data
    `
	getImageQuery = `SELECT data FROM concept_images WHERE concept_id = $1 AND kind = $2`
)

type pgImageRepository struct {
	db     DBTX
	logger *zap.Logger
}

// Compile-time check
var _ ImageRepository = (*pgImageRepository)(nil)

// NewPgImageRepository creates a PostgreSQL-backed ImageRepository.
func NewPgImageRepository(db DBTX, logger *zap.Logger) ImageRepository {
	return &pgImageRepository{
		db:     db,
		logger: logger.Named("PgImageRepo"),
	}
}

func (r *pgImageRepository) SaveImage(ctx context.Context, conceptID uuid.UUID, kind models.ImageKind, data []byte) error {
	log := r.logger.With(
		zap.String("conceptID", conceptID.String()),
		zap.String("kind", string(kind)),
		zap.Int("size_bytes", len(data)),
	)
	log.Debug("Saving concept image")

	_, err := r.db.Exec(ctx, saveImageQuery, conceptID, string(kind), data)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			log.Warn("Concept not found for image save")
			return models.ErrConceptNotFound
		}
		log.Error("Failed to save concept image", zap.Error(err))
		return fmt.Errorf("failed to save concept image: %w", err)
	}

	log.Info("Concept image saved")
	return nil
}

func (r *pgImageRepository) GetImage(ctx context.Context, conceptID uuid.UUID, kind models.ImageKind) ([]byte, error) {
	var data []byte
	err := r.db.QueryRow(ctx, getImageQuery, conceptID, string(kind)).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get concept image",
			zap.String("conceptID", conceptID.String()),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get concept image: %w", err)
	}
	return data, nil
}
