package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gameforge-server/internal/generation"
	"gameforge-server/internal/models"
	"gameforge-server/internal/repository"
)

// ConceptService orchestrates concept generation, retrieval and visibility.
type ConceptService interface {
	// CreateConcept runs the full pipeline for a user brief: quota gate,
	// generation, section extraction, persistence. New concepts are public.
	CreateConcept(ctx context.Context, userID uuid.UUID, brief models.GenerationBrief) (*models.Concept, error)
	// ExploreConcept generates a concept from a random machine-made brief.
	// It consumes quota like a regular generation.
	ExploreConcept(ctx context.Context, userID uuid.UUID) (*models.Concept, error)
	// GetConcept returns a concept if it is public or owned by the
	// requester. Pass uuid.Nil for anonymous requesters.
	GetConcept(ctx context.Context, requesterID, conceptID uuid.UUID) (*models.Concept, error)
	ListPublic(ctx context.Context, query string) ([]*models.Concept, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Concept, error)
	// ToggleVisibility flips is_public on an owned concept and returns the
	// new value.
	ToggleVisibility(ctx context.Context, userID, conceptID uuid.UUID) (bool, error)
	// GetImage returns one of the concept's image blobs, applying the same
	// access rules as GetConcept.
	GetImage(ctx context.Context, requesterID, conceptID uuid.UUID, kind models.ImageKind) ([]byte, error)
}

type conceptServiceImpl struct {
	conceptRepo  repository.ConceptRepository
	imageRepo    repository.ImageRepository
	quota        QuotaService
	generator    generation.Generator
	imageTimeout time.Duration
	logger       *zap.Logger
}

var _ ConceptService = (*conceptServiceImpl)(nil)

// NewConceptService assembles the concept service.
func NewConceptService(
	conceptRepo repository.ConceptRepository,
	imageRepo repository.ImageRepository,
	quota QuotaService,
	generator generation.Generator,
	imageTimeout time.Duration,
	logger *zap.Logger,
) ConceptService {
	return &conceptServiceImpl{
		conceptRepo:  conceptRepo,
		imageRepo:    imageRepo,
		quota:        quota,
		generator:    generator,
		imageTimeout: imageTimeout,
		logger:       logger.Named("ConceptService"),
	}
}

func (s *conceptServiceImpl) CreateConcept(ctx context.Context, userID uuid.UUID, brief models.GenerationBrief) (*models.Concept, error) {
	if err := validateBrief(&brief); err != nil {
		return nil, err
	}

	// The quota gate is a single conditional increment, so concurrent
	// requests cannot both pass at the limit.
	if err := s.quota.Consume(ctx, userID); err != nil {
		return nil, err
	}

	result := s.generator.Generate(ctx, brief)

	concept := &models.Concept{
		ID:           uuid.New(),
		OwnerID:      userID,
		Title:        brief.Title,
		Genre:        brief.Genre,
		Ambiance:     brief.Ambiance,
		Keywords:     brief.Keywords,
		References:   brief.References,
		UniverseText: result.Sections.Universe,
		Act1Text:     result.Sections.Act1,
		Act2Text:     result.Sections.Act2,
		Act3Text:     result.Sections.Act3,
		TwistText:    result.Sections.Twist,
		Characters:   result.Sections.Characters,
		Locations:    result.Sections.Locations,
		IsPublic:     true,
	}
	if err := s.conceptRepo.Create(ctx, concept); err != nil {
		return nil, fmt.Errorf("failed to persist concept: %w", err)
	}

	s.persistImagesAsync(concept.ID, result)

	s.logger.Info("Concept created",
		zap.String("conceptID", concept.ID.String()),
		zap.String("userID", userID.String()),
		zap.String("genre", concept.Genre))
	return concept, nil
}

func (s *conceptServiceImpl) ExploreConcept(ctx context.Context, userID uuid.UUID) (*models.Concept, error) {
	return s.CreateConcept(ctx, userID, randomBrief())
}

func (s *conceptServiceImpl) GetConcept(ctx context.Context, requesterID, conceptID uuid.UUID) (*models.Concept, error) {
	concept, err := s.conceptRepo.GetByID(ctx, conceptID)
	if err != nil {
		return nil, err
	}
	if !concept.IsPublic && concept.OwnerID != requesterID {
		return nil, models.ErrForbidden
	}
	return concept, nil
}

func (s *conceptServiceImpl) ListPublic(ctx context.Context, query string) ([]*models.Concept, error) {
	return s.conceptRepo.ListPublic(ctx, strings.TrimSpace(query))
}

func (s *conceptServiceImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Concept, error) {
	return s.conceptRepo.ListByOwner(ctx, ownerID)
}

func (s *conceptServiceImpl) ToggleVisibility(ctx context.Context, userID, conceptID uuid.UUID) (bool, error) {
	concept, err := s.conceptRepo.GetByID(ctx, conceptID)
	if err != nil {
		return false, err
	}
	if concept.OwnerID != userID {
		return false, models.ErrForbidden
	}

	newValue := !concept.IsPublic
	if err := s.conceptRepo.SetVisibility(ctx, conceptID, newValue); err != nil {
		return false, err
	}

	s.logger.Info("Concept visibility toggled",
		zap.String("conceptID", conceptID.String()),
		zap.Bool("isPublic", newValue))
	return newValue, nil
}

func (s *conceptServiceImpl) GetImage(ctx context.Context, requesterID, conceptID uuid.UUID, kind models.ImageKind) ([]byte, error) {
	if _, err := s.GetConcept(ctx, requesterID, conceptID); err != nil {
		return nil, err
	}
	return s.imageRepo.GetImage(ctx, conceptID, kind)
}

// persistImagesAsync stores both image blobs in the background so the user
// response does not wait on BYTEA writes.
func (s *conceptServiceImpl) persistImagesAsync(conceptID uuid.UUID, result generation.Result) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.imageTimeout)
		defer cancel()

		for kind, data := range map[models.ImageKind][]byte{
			models.ImageKindCharacter:   result.CharacterImage,
			models.ImageKindEnvironment: result.EnvironmentImage,
		} {
			if len(data) == 0 {
				continue
			}
			if err := s.imageRepo.SaveImage(ctx, conceptID, kind, data); err != nil {
				s.logger.Error("Failed to persist concept image",
					zap.String("conceptID", conceptID.String()),
					zap.String("kind", string(kind)),
					zap.Error(err))
			}
		}
	}()
}

func validateBrief(brief *models.GenerationBrief) error {
	brief.Title = strings.TrimSpace(brief.Title)
	brief.Genre = strings.TrimSpace(brief.Genre)
	brief.Ambiance = strings.TrimSpace(brief.Ambiance)
	brief.Keywords = strings.TrimSpace(brief.Keywords)
	brief.References = strings.TrimSpace(brief.References)

	if brief.Title == "" {
		return fmt.Errorf("%w: title is required", models.ErrInvalidInput)
	}
	if !models.IsValidGenre(brief.Genre) {
		return fmt.Errorf("%w: unknown genre %q", models.ErrInvalidInput, brief.Genre)
	}
	if brief.Ambiance == "" {
		return fmt.Errorf("%w: ambiance is required", models.ErrInvalidInput)
	}
	return nil
}

// Brief components for explore mode.
var (
	exploreAmbiances = []string{
		"sombre et mélancolique", "onirique et coloré", "rétro-futuriste",
		"post-apocalyptique", "féerique et lumineux", "cyberpunk néon",
	}
	exploreKeywords = []string{
		"exploration, mystère, artefacts", "survie, craft, coopération",
		"magie, factions, trahison", "robots, mémoire, identité",
		"pirates, îles flottantes, trésors", "rêves, labyrinthe, temps",
	}
	exploreReferences = []string{
		"Hollow Knight, Ori", "Disco Elysium, Planescape",
		"Zelda, Hyper Light Drifter", "NieR, Outer Wilds",
	}
)

// randomBrief fabricates a brief for explore mode. Titles are numbered so
// explored prototypes are easy to spot in listings.
func randomBrief() models.GenerationBrief {
	return models.GenerationBrief{
		Title:      fmt.Sprintf("Prototype #%04d", rand.IntN(10000)),
		Genre:      models.Genres[rand.IntN(len(models.Genres))],
		Ambiance:   exploreAmbiances[rand.IntN(len(exploreAmbiances))],
		Keywords:   exploreKeywords[rand.IntN(len(exploreKeywords))],
		References: exploreReferences[rand.IntN(len(exploreReferences))],
	}
}
