package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"gameforge-server/internal/models"
)

const (
	addFavoriteQuery    = `INSERT INTO favorites (user_id, concept_id) VALUES ($1, $2)`
	removeFavoriteQuery = `DELETE FROM favorites WHERE user_id = $1 AND concept_id = $2`
	checkFavoriteQuery  = `SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND concept_id = $2)`

	listFavoriteConceptsQuery = `
        SELECT c.id, c.owner_id, c.title, c.genre, c.ambiance, c.keywords, c.references_text,
               c.universe_text, c.act1_text, c.act2_text, c.act3_text, c.twist_text,
               c.characters, c.locations, c.is_public, c.created_at
        FROM favorites f
        JOIN concepts c ON c.id = f.concept_id
        WHERE f.user_id = $1
        ORDER BY f.created_at DESC
    `
)

type pgFavoriteRepository struct {
	db     DBTX
	logger *zap.Logger
}

// Compile-time check
var _ FavoriteRepository = (*pgFavoriteRepository)(nil)

// NewPgFavoriteRepository creates a PostgreSQL-backed FavoriteRepository.
func NewPgFavoriteRepository(db DBTX, logger *zap.Logger) FavoriteRepository {
	return &pgFavoriteRepository{
		db:     db,
		logger: logger.Named("PgFavoriteRepo"),
	}
}

func (r *pgFavoriteRepository) AddFavorite(ctx context.Context, userID, conceptID uuid.UUID) error {
	logFields := []zap.Field{
		zap.String("userID", userID.String()),
		zap.String("conceptID", conceptID.String()),
	}
	r.logger.Debug("Adding favorite record", logFields...)

	_, err := r.db.Exec(ctx, addFavoriteQuery, userID, conceptID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				r.logger.Warn("Favorite already exists", logFields...)
				return models.ErrFavoriteAlreadyExists
			case "23503": // foreign_key_violation
				r.logger.Warn("Concept not found for favorite", logFields...)
				return models.ErrConceptNotFound
			}
		}
		r.logger.Error("Failed to add favorite record", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	r.logger.Info("Favorite record added", logFields...)
	return nil
}

func (r *pgFavoriteRepository) RemoveFavorite(ctx context.Context, userID, conceptID uuid.UUID) error {
	logFields := []zap.Field{
		zap.String("userID", userID.String()),
		zap.String("conceptID", conceptID.String()),
	}
	r.logger.Debug("Removing favorite record", logFields...)

	commandTag, err := r.db.Exec(ctx, removeFavoriteQuery, userID, conceptID)
	if err != nil {
		r.logger.Error("Failed to remove favorite record", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		r.logger.Warn("Favorite not found to remove", logFields...)
		return models.ErrFavoriteNotFound
	}

	r.logger.Info("Favorite record removed", logFields...)
	return nil
}

func (r *pgFavoriteRepository) CheckFavorite(ctx context.Context, userID, conceptID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, checkFavoriteQuery, userID, conceptID).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check favorite existence",
			zap.String("userID", userID.String()),
			zap.String("conceptID", conceptID.String()),
			zap.Error(err))
		return false, fmt.Errorf("failed to check favorite existence: %w", err)
	}
	return exists, nil
}

func (r *pgFavoriteRepository) ListFavoriteConcepts(ctx context.Context, userID uuid.UUID) ([]*models.Concept, error) {
	var concepts []*models.Concept
	err := pgxscan.Select(ctx, r.db, &concepts, listFavoriteConceptsQuery, userID)
	if err != nil {
		r.logger.Error("Failed to list favorite concepts", zap.String("userID", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list favorite concepts: %w", err)
	}
	if concepts == nil {
		concepts = []*models.Concept{}
	}
	return concepts, nil
}
