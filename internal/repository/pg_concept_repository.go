package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gameforge-server/internal/models"
)

const conceptColumns = `id, owner_id, title, genre, ambiance, keywords, references_text,
        universe_text, act1_text, act2_text, act3_text, twist_text,
        characters, locations, is_public, created_at`

const (
	createConceptQuery = `
        INSERT INTO concepts (id, owner_id, title, genre, ambiance, keywords, references_text,
                              universe_text, act1_text, act2_text, act3_text, twist_text,
                              characters, locations, is_public)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        RETURNING created_at
    `
	getConceptByIDQuery = `SELECT ` + conceptColumns + ` FROM concepts WHERE id = $1`

	listPublicConceptsQuery = `
        SELECT ` + conceptColumns + ` FROM concepts
        WHERE is_public
        ORDER BY created_at DESC
    `
	searchPublicConceptsQuery = `
        SELECT ` + conceptColumns + ` FROM concepts
        WHERE is_public AND (title ILIKE '%' || $1 || '%' OR genre ILIKE '%' || $1 || '%')
        ORDER BY created_at DESC
    `
	listConceptsByOwnerQuery = `
        SELECT ` + conceptColumns + ` FROM concepts
        WHERE owner_id = $1
        ORDER BY created_at DESC
    `
	setConceptVisibilityQuery = `UPDATE concepts SET is_public = $2 WHERE id = $1`
	countConceptsByOwnerQuery = `SELECT COUNT(*) FROM concepts WHERE owner_id = $1`
)

type pgConceptRepository struct {
	db     DBTX
	logger *zap.Logger
}

// Compile-time check
var _ ConceptRepository = (*pgConceptRepository)(nil)

// NewPgConceptRepository creates a PostgreSQL-backed ConceptRepository.
func NewPgConceptRepository(db DBTX, logger *zap.Logger) ConceptRepository {
	return &pgConceptRepository{
		db:     db,
		logger: logger.Named("PgConceptRepo"),
	}
}

func (r *pgConceptRepository) Create(ctx context.Context, concept *models.Concept) error {
	log := r.logger.With(
		zap.String("conceptID", concept.ID.String()),
		zap.String("ownerID", concept.OwnerID.String()),
	)
	log.Debug("Creating concept record")

	err := r.db.QueryRow(ctx, createConceptQuery,
		concept.ID, concept.OwnerID, concept.Title, concept.Genre, concept.Ambiance,
		concept.Keywords, concept.References,
		concept.UniverseText, concept.Act1Text, concept.Act2Text, concept.Act3Text, concept.TwistText,
		concept.Characters, concept.Locations, concept.IsPublic,
	).Scan(&concept.CreatedAt)
	if err != nil {
		log.Error("Failed to create concept record", zap.Error(err))
		return fmt.Errorf("failed to create concept: %w", err)
	}

	log.Info("Concept record created")
	return nil
}

func (r *pgConceptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Concept, error) {
	var concept models.Concept
	err := pgxscan.Get(ctx, r.db, &concept, getConceptByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrConceptNotFound
		}
		r.logger.Error("Failed to get concept by ID", zap.String("conceptID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get concept by id: %w", err)
	}
	return &concept, nil
}

func (r *pgConceptRepository) ListPublic(ctx context.Context, query string) ([]*models.Concept, error) {
	var concepts []*models.Concept
	var err error
	if query == "" {
		err = pgxscan.Select(ctx, r.db, &concepts, listPublicConceptsQuery)
	} else {
		err = pgxscan.Select(ctx, r.db, &concepts, searchPublicConceptsQuery, query)
	}
	if err != nil {
		r.logger.Error("Failed to list public concepts", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("failed to list public concepts: %w", err)
	}
	if concepts == nil {
		concepts = []*models.Concept{}
	}
	return concepts, nil
}

func (r *pgConceptRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Concept, error) {
	var concepts []*models.Concept
	err := pgxscan.Select(ctx, r.db, &concepts, listConceptsByOwnerQuery, ownerID)
	if err != nil {
		r.logger.Error("Failed to list concepts by owner", zap.String("ownerID", ownerID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list concepts by owner: %w", err)
	}
	if concepts == nil {
		concepts = []*models.Concept{}
	}
	return concepts, nil
}

func (r *pgConceptRepository) SetVisibility(ctx context.Context, id uuid.UUID, isPublic bool) error {
	log := r.logger.With(zap.String("conceptID", id.String()), zap.Bool("isPublic", isPublic))

	commandTag, err := r.db.Exec(ctx, setConceptVisibilityQuery, id, isPublic)
	if err != nil {
		log.Error("Failed to update concept visibility", zap.Error(err))
		return fmt.Errorf("failed to update concept visibility: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		log.Warn("Concept not found for visibility update")
		return models.ErrConceptNotFound
	}

	log.Info("Concept visibility updated")
	return nil
}

func (r *pgConceptRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, countConceptsByOwnerQuery, ownerID).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count concepts by owner", zap.String("ownerID", ownerID.String()), zap.Error(err))
		return 0, fmt.Errorf("failed to count concepts by owner: %w", err)
	}
	return count, nil
}
