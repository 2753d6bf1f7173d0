package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gameforge-server/internal/models"
	"gameforge-server/internal/repository"
)

// FavoriteService manages user bookmarks of concepts.
type FavoriteService interface {
	// ToggleFavorite adds or removes the bookmark and returns the new
	// state. The concept must be visible to the user.
	ToggleFavorite(ctx context.Context, userID, conceptID uuid.UUID) (favorited bool, err error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]*models.Concept, error)
	IsFavorite(ctx context.Context, userID, conceptID uuid.UUID) (bool, error)
}

type favoriteServiceImpl struct {
	favoriteRepo repository.FavoriteRepository
	concepts     ConceptService
	logger       *zap.Logger
}

var _ FavoriteService = (*favoriteServiceImpl)(nil)

// NewFavoriteService creates the favorite service.
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, concepts ConceptService, logger *zap.Logger) FavoriteService {
	return &favoriteServiceImpl{
		favoriteRepo: favoriteRepo,
		concepts:     concepts,
		logger:       logger.Named("FavoriteService"),
	}
}

func (s *favoriteServiceImpl) ToggleFavorite(ctx context.Context, userID, conceptID uuid.UUID) (bool, error) {
	// Visibility rules apply to favoriting just like to detail views.
	if _, err := s.concepts.GetConcept(ctx, userID, conceptID); err != nil {
		return false, err
	}

	err := s.favoriteRepo.AddFavorite(ctx, userID, conceptID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, models.ErrFavoriteAlreadyExists) {
		return false, err
	}

	if err := s.favoriteRepo.RemoveFavorite(ctx, userID, conceptID); err != nil {
		// A concurrent toggle may have removed it first; the end state is
		// still "not favorited".
		if errors.Is(err, models.ErrFavoriteNotFound) {
			return false, nil
		}
		return false, err
	}
	return false, nil
}

func (s *favoriteServiceImpl) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*models.Concept, error) {
	return s.favoriteRepo.ListFavoriteConcepts(ctx, userID)
}

func (s *favoriteServiceImpl) IsFavorite(ctx context.Context, userID, conceptID uuid.UUID) (bool, error) {
	return s.favoriteRepo.CheckFavorite(ctx, userID, conceptID)
}
