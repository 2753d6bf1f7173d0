package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gameforge-server/internal/generation"
	"gameforge-server/internal/models"
	"gameforge-server/internal/repository/mocks"
)

type stubGenerator struct {
	result generation.Result
}

func (s *stubGenerator) Generate(ctx context.Context, brief models.GenerationBrief) generation.Result {
	return s.result
}

func textOnlyResult() generation.Result {
	return generation.Result{
		Sections: generation.Sections{
			Universe:   "Un monde de tests.",
			Act1:       "Ouverture.",
			Act2:       "Complication.",
			Act3:       "Résolution.",
			Twist:      "Rien n'était réel.",
			Characters: []string{"A - Testeur/Assertion - Ne laisse rien passer"},
			Locations:  []string{"La Salle Blanche (environnement contrôlé)"},
		},
	}
}

func validBrief() models.GenerationBrief {
	return models.GenerationBrief{Title: "Essai", Genre: "Puzzle", Ambiance: "minimaliste"}
}

func newTestConceptService(conceptRepo *mocks.ConceptRepository, imageRepo *mocks.ImageRepository, usageRepo *mocks.UsageRepository, gen generation.Generator) ConceptService {
	quota := NewQuotaService(usageRepo, 10, zap.NewNop())
	return NewConceptService(conceptRepo, imageRepo, quota, gen, time.Second, zap.NewNop())
}

func TestConceptService_CreateConcept(t *testing.T) {
	conceptRepo := new(mocks.ConceptRepository)
	imageRepo := new(mocks.ImageRepository)
	usageRepo := new(mocks.UsageRepository)
	svc := newTestConceptService(conceptRepo, imageRepo, usageRepo, &stubGenerator{result: textOnlyResult()})
	userID := uuid.New()

	usageRepo.On("IncrementIfBelow", mock.Anything, userID, mock.AnythingOfType("time.Time"), 10).
		Return(true, nil).Once()
	conceptRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Concept")).
		Return(nil).Once()

	concept, err := svc.CreateConcept(context.Background(), userID, validBrief())

	require.NoError(t, err)
	assert.Equal(t, userID, concept.OwnerID)
	assert.Equal(t, "Essai", concept.Title)
	assert.Equal(t, "Un monde de tests.", concept.UniverseText)
	assert.True(t, concept.IsPublic, "new concepts start public")
	assert.NotEqual(t, uuid.Nil, concept.ID)

	conceptRepo.AssertExpectations(t)
	usageRepo.AssertExpectations(t)
}

func TestConceptService_CreateConcept_QuotaExceeded(t *testing.T) {
	conceptRepo := new(mocks.ConceptRepository)
	imageRepo := new(mocks.ImageRepository)
	usageRepo := new(mocks.UsageRepository)
	svc := newTestConceptService(conceptRepo, imageRepo, usageRepo, &stubGenerator{result: textOnlyResult()})
	userID := uuid.New()

	usageRepo.On("IncrementIfBelow", mock.Anything, userID, mock.AnythingOfType("time.Time"), 10).
		Return(false, nil).Once()

	_, err := svc.CreateConcept(context.Background(), userID, validBrief())

	assert.ErrorIs(t, err, models.ErrQuotaExceeded)
	conceptRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConceptService_CreateConcept_InvalidBrief(t *testing.T) {
	conceptRepo := new(mocks.ConceptRepository)
	imageRepo := new(mocks.ImageRepository)
	usageRepo := new(mocks.UsageRepository)
	svc := newTestConceptService(conceptRepo, imageRepo, usageRepo, &stubGenerator{result: textOnlyResult()})

	cases := []struct {
		name  string
		brief models.GenerationBrief
	}{
		{"empty title", models.GenerationBrief{Genre: "RPG", Ambiance: "sombre"}},
		{"unknown genre", models.GenerationBrief{Title: "X", Genre: "MOBA", Ambiance: "sombre"}},
		{"empty ambiance", models.GenerationBrief{Title: "X", Genre: "RPG"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateConcept(context.Background(), uuid.New(), tc.brief)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
	// Validation failures must not consume quota.
	usageRepo.AssertNotCalled(t, "IncrementIfBelow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConceptService_CreateConcept_PersistsImages(t *testing.T) {
	conceptRepo := new(mocks.ConceptRepository)
	imageRepo := new(mocks.ImageRepository)
	usageRepo := new(mocks.UsageRepository)

	result := textOnlyResult()
	result.CharacterImage = []byte("char-png")
	result.EnvironmentImage = []byte("env-png")
	svc := newTestConceptService(conceptRepo, imageRepo, usageRepo, &stubGenerator{result: result})
	userID := uuid.New()

	usageRepo.On("IncrementIfBelow", mock.Anything, userID, mock.AnythingOfType("time.Time"), 10).
		Return(true, nil).Once()
	conceptRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Concept")).Return(nil).Once()

	var wg sync.WaitGroup
	wg.Add(2)
	imageRepo.On("SaveImage", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("models.ImageKind"), mock.Anything).
		Run(func(args mock.Arguments) { wg.Done() }).
		Return(nil).Twice()

	_, err := svc.CreateConcept(context.Background(), userID, validBrief())
	require.NoError(t, err)

	// Image writes happen off the request path.
	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("image persistence did not complete")
	}
	imageRepo.AssertExpectations(t)
}

func TestConceptService_GetConcept_AccessControl(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	conceptID := uuid.New()

	private := &models.Concept{ID: conceptID, OwnerID: owner, IsPublic: false}

	cases := []struct {
		name      string
		requester uuid.UUID
		wantErr   error
	}{
		{"owner sees private", owner, nil},
		{"stranger is denied", stranger, models.ErrForbidden},
		{"anonymous is denied", uuid.Nil, models.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conceptRepo := new(mocks.ConceptRepository)
			conceptRepo.On("GetByID", mock.Anything, conceptID).Return(private, nil).Once()
			svc := newTestConceptService(conceptRepo, new(mocks.ImageRepository), new(mocks.UsageRepository), &stubGenerator{})

			got, err := svc.GetConcept(context.Background(), tc.requester, conceptID)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, conceptID, got.ID)
		})
	}
}

func TestConceptService_ToggleVisibility(t *testing.T) {
	owner := uuid.New()
	conceptID := uuid.New()
	conceptRepo := new(mocks.ConceptRepository)
	svc := newTestConceptService(conceptRepo, new(mocks.ImageRepository), new(mocks.UsageRepository), &stubGenerator{})

	conceptRepo.On("GetByID", mock.Anything, conceptID).
		Return(&models.Concept{ID: conceptID, OwnerID: owner, IsPublic: true}, nil).Once()
	conceptRepo.On("SetVisibility", mock.Anything, conceptID, false).Return(nil).Once()

	isPublic, err := svc.ToggleVisibility(context.Background(), owner, conceptID)

	require.NoError(t, err)
	assert.False(t, isPublic)
	conceptRepo.AssertExpectations(t)
}

func TestConceptService_ToggleVisibility_NotOwner(t *testing.T) {
	conceptID := uuid.New()
	conceptRepo := new(mocks.ConceptRepository)
	svc := newTestConceptService(conceptRepo, new(mocks.ImageRepository), new(mocks.UsageRepository), &stubGenerator{})

	conceptRepo.On("GetByID", mock.Anything, conceptID).
		Return(&models.Concept{ID: conceptID, OwnerID: uuid.New(), IsPublic: true}, nil).Once()

	_, err := svc.ToggleVisibility(context.Background(), uuid.New(), conceptID)

	assert.ErrorIs(t, err, models.ErrForbidden)
	conceptRepo.AssertNotCalled(t, "SetVisibility", mock.Anything, mock.Anything, mock.Anything)
}

func TestConceptService_GetImage_HiddenConcept(t *testing.T) {
	conceptID := uuid.New()
	conceptRepo := new(mocks.ConceptRepository)
	imageRepo := new(mocks.ImageRepository)
	svc := newTestConceptService(conceptRepo, imageRepo, new(mocks.UsageRepository), &stubGenerator{})

	conceptRepo.On("GetByID", mock.Anything, conceptID).
		Return(&models.Concept{ID: conceptID, OwnerID: uuid.New(), IsPublic: false}, nil).Once()

	_, err := svc.GetImage(context.Background(), uuid.Nil, conceptID, models.ImageKindCharacter)

	assert.ErrorIs(t, err, models.ErrForbidden)
	imageRepo.AssertNotCalled(t, "GetImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestConceptService_ExploreConcept(t *testing.T) {
	conceptRepo := new(mocks.ConceptRepository)
	usageRepo := new(mocks.UsageRepository)
	svc := newTestConceptService(conceptRepo, new(mocks.ImageRepository), usageRepo, &stubGenerator{result: textOnlyResult()})
	userID := uuid.New()

	usageRepo.On("IncrementIfBelow", mock.Anything, userID, mock.AnythingOfType("time.Time"), 10).
		Return(true, nil).Once()
	conceptRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Concept")).Return(nil).Once()

	concept, err := svc.ExploreConcept(context.Background(), userID)

	require.NoError(t, err)
	assert.Regexp(t, `^Prototype #\d{4}$`, concept.Title)
	assert.True(t, models.IsValidGenre(concept.Genre))
}
