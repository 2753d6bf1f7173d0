package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/docker/docker/client"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"gameforge-server/internal/database"
	"gameforge-server/internal/models"
	"gameforge-server/internal/repository"
)

type RepositorySuite struct {
	suite.Suite
	ctx          context.Context
	pgContainer  *postgres.PostgresContainer
	pool         *pgxpool.Pool
	userRepo     repository.UserRepository
	conceptRepo  repository.ConceptRepository
	imageRepo    repository.ImageRepository
	favoriteRepo repository.FavoriteRepository
	usageRepo    repository.UsageRepository
}

func dockerAvailable() bool {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false
	}
	defer cli.Close()
	_, err = cli.Ping(context.Background())
	return err == nil
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	if !dockerAvailable() {
		t.Skip("docker is not available")
	}
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("gameforge_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err)

	require.NoError(s.T(), database.ApplyMigrations(connStr))

	s.pool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err)

	log := zap.NewNop()
	s.userRepo = repository.NewPgUserRepository(s.pool, log)
	s.conceptRepo = repository.NewPgConceptRepository(s.pool, log)
	s.imageRepo = repository.NewPgImageRepository(s.pool, log)
	s.favoriteRepo = repository.NewPgFavoriteRepository(s.pool, log)
	s.usageRepo = repository.NewPgUsageRepository(s.pool, log)
}

func (s *RepositorySuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

func (s *RepositorySuite) createUser(username string) *models.User {
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(s.T(), s.userRepo.CreateUser(s.ctx, user))
	return user
}

func (s *RepositorySuite) createConcept(ownerID uuid.UUID, title string, isPublic bool) *models.Concept {
	concept := &models.Concept{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        title,
		Genre:        "RPG",
		UniverseText: "u",
		Act1Text:     "a1",
		Act2Text:     "a2",
		Act3Text:     "a3",
		TwistText:    "t",
		Characters:   []string{"c1", "c2"},
		Locations:    []string{"l1"},
		IsPublic:     isPublic,
	}
	require.NoError(s.T(), s.conceptRepo.Create(s.ctx, concept))
	return concept
}

func (s *RepositorySuite) TestUserUniqueness() {
	user := s.createUser("unique-user")

	dup := &models.User{ID: uuid.New(), Username: user.Username, Email: "other@example.com", PasswordHash: "x"}
	err := s.userRepo.CreateUser(s.ctx, dup)
	s.Require().ErrorIs(err, models.ErrUserAlreadyExists)

	dupEmail := &models.User{ID: uuid.New(), Username: "other-user", Email: user.Email, PasswordHash: "x"}
	err = s.userRepo.CreateUser(s.ctx, dupEmail)
	s.Require().ErrorIs(err, models.ErrEmailAlreadyExists)
}

func (s *RepositorySuite) TestConceptRoundTrip() {
	user := s.createUser("concept-owner")
	concept := s.createConcept(user.ID, "Round Trip", true)

	got, err := s.conceptRepo.GetByID(s.ctx, concept.ID)
	s.Require().NoError(err)
	s.Equal(concept.Title, got.Title)
	s.Equal([]string{"c1", "c2"}, got.Characters)
	s.Equal([]string{"l1"}, got.Locations)
	s.True(got.IsPublic)
	s.False(got.CreatedAt.IsZero())
}

func (s *RepositorySuite) TestVisibilityFiltering() {
	user := s.createUser("visibility-owner")
	public := s.createConcept(user.ID, "Visible Concept Xyzzy", true)
	hidden := s.createConcept(user.ID, "Hidden Concept Xyzzy", false)

	list, err := s.conceptRepo.ListPublic(s.ctx, "Xyzzy")
	s.Require().NoError(err)

	ids := make(map[uuid.UUID]bool, len(list))
	for _, c := range list {
		ids[c.ID] = true
	}
	s.True(ids[public.ID])
	s.False(ids[hidden.ID])

	s.Require().NoError(s.conceptRepo.SetVisibility(s.ctx, hidden.ID, true))
	list, err = s.conceptRepo.ListPublic(s.ctx, "Xyzzy")
	s.Require().NoError(err)
	s.Len(list, 2)
}

func (s *RepositorySuite) TestImageUpsert() {
	user := s.createUser("image-owner")
	concept := s.createConcept(user.ID, "Image Concept", true)

	s.Require().NoError(s.imageRepo.SaveImage(s.ctx, concept.ID, models.ImageKindCharacter, []byte("v1")))
	s.Require().NoError(s.imageRepo.SaveImage(s.ctx, concept.ID, models.ImageKindCharacter, []byte("v2")))

	data, err := s.imageRepo.GetImage(s.ctx, concept.ID, models.ImageKindCharacter)
	s.Require().NoError(err)
	s.Equal([]byte("v2"), data)

	_, err = s.imageRepo.GetImage(s.ctx, concept.ID, models.ImageKindEnvironment)
	s.Require().ErrorIs(err, models.ErrNotFound)

	err = s.imageRepo.SaveImage(s.ctx, uuid.New(), models.ImageKindCharacter, []byte("x"))
	s.Require().ErrorIs(err, models.ErrConceptNotFound)
}

func (s *RepositorySuite) TestFavoriteLifecycle() {
	user := s.createUser("favorite-user")
	concept := s.createConcept(user.ID, "Favorite Concept", true)

	s.Require().NoError(s.favoriteRepo.AddFavorite(s.ctx, user.ID, concept.ID))
	s.Require().ErrorIs(s.favoriteRepo.AddFavorite(s.ctx, user.ID, concept.ID), models.ErrFavoriteAlreadyExists)

	exists, err := s.favoriteRepo.CheckFavorite(s.ctx, user.ID, concept.ID)
	s.Require().NoError(err)
	s.True(exists)

	list, err := s.favoriteRepo.ListFavoriteConcepts(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(concept.ID, list[0].ID)

	s.Require().NoError(s.favoriteRepo.RemoveFavorite(s.ctx, user.ID, concept.ID))
	s.Require().ErrorIs(s.favoriteRepo.RemoveFavorite(s.ctx, user.ID, concept.ID), models.ErrFavoriteNotFound)
}

func (s *RepositorySuite) TestUsageCounter() {
	user := s.createUser("usage-user")
	day := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	count, err := s.usageRepo.GetCount(s.ctx, user.ID, day)
	s.Require().NoError(err)
	s.Equal(0, count)

	for i := 0; i < 3; i++ {
		ok, err := s.usageRepo.IncrementIfBelow(s.ctx, user.ID, day, 3)
		s.Require().NoError(err)
		s.True(ok, "increment %d should pass", i)
	}

	ok, err := s.usageRepo.IncrementIfBelow(s.ctx, user.ID, day, 3)
	s.Require().NoError(err)
	s.False(ok, "limit must hold")

	count, err = s.usageRepo.GetCount(s.ctx, user.ID, day)
	s.Require().NoError(err)
	s.Equal(3, count)

	// Next day starts fresh.
	nextDay := day.AddDate(0, 0, 1)
	ok, err = s.usageRepo.IncrementIfBelow(s.ctx, user.ID, nextDay, 3)
	s.Require().NoError(err)
	s.True(ok)
}
