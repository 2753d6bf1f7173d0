// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gameforge-server/internal/models"
	"gameforge-server/internal/repository"
)

// UserRepository mocks repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// ConceptRepository mocks repository.ConceptRepository.
type ConceptRepository struct {
	mock.Mock
}

var _ repository.ConceptRepository = (*ConceptRepository)(nil)

func (m *ConceptRepository) Create(ctx context.Context, concept *models.Concept) error {
	args := m.Called(ctx, concept)
	return args.Error(0)
}

func (m *ConceptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Concept, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*models.Concept); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ConceptRepository) ListPublic(ctx context.Context, query string) ([]*models.Concept, error) {
	args := m.Called(ctx, query)
	if c, ok := args.Get(0).([]*models.Concept); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ConceptRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Concept, error) {
	args := m.Called(ctx, ownerID)
	if c, ok := args.Get(0).([]*models.Concept); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ConceptRepository) SetVisibility(ctx context.Context, id uuid.UUID, isPublic bool) error {
	args := m.Called(ctx, id, isPublic)
	return args.Error(0)
}

func (m *ConceptRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

// ImageRepository mocks repository.ImageRepository.
type ImageRepository struct {
	mock.Mock
}

var _ repository.ImageRepository = (*ImageRepository)(nil)

func (m *ImageRepository) SaveImage(ctx context.Context, conceptID uuid.UUID, kind models.ImageKind, data []byte) error {
	args := m.Called(ctx, conceptID, kind, data)
	return args.Error(0)
}

func (m *ImageRepository) GetImage(ctx context.Context, conceptID uuid.UUID, kind models.ImageKind) ([]byte, error) {
	args := m.Called(ctx, conceptID, kind)
	if d, ok := args.Get(0).([]byte); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

// FavoriteRepository mocks repository.FavoriteRepository.
type FavoriteRepository struct {
	mock.Mock
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)

func (m *FavoriteRepository) AddFavorite(ctx context.Context, userID, conceptID uuid.UUID) error {
	args := m.Called(ctx, userID, conceptID)
	return args.Error(0)
}

func (m *FavoriteRepository) RemoveFavorite(ctx context.Context, userID, conceptID uuid.UUID) error {
	args := m.Called(ctx, userID, conceptID)
	return args.Error(0)
}

func (m *FavoriteRepository) CheckFavorite(ctx context.Context, userID, conceptID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, conceptID)
	return args.Bool(0), args.Error(1)
}

func (m *FavoriteRepository) ListFavoriteConcepts(ctx context.Context, userID uuid.UUID) ([]*models.Concept, error) {
	args := m.Called(ctx, userID)
	if c, ok := args.Get(0).([]*models.Concept); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

// UsageRepository mocks repository.UsageRepository.
type UsageRepository struct {
	mock.Mock
}

var _ repository.UsageRepository = (*UsageRepository)(nil)

func (m *UsageRepository) GetCount(ctx context.Context, userID uuid.UUID, day time.Time) (int, error) {
	args := m.Called(ctx, userID, day)
	return args.Int(0), args.Error(1)
}

func (m *UsageRepository) IncrementIfBelow(ctx context.Context, userID uuid.UUID, day time.Time, limit int) (bool, error) {
	args := m.Called(ctx, userID, day, limit)
	return args.Bool(0), args.Error(1)
}

// TokenRepository mocks repository.TokenRepository.
type TokenRepository struct {
	mock.Mock
}

var _ repository.TokenRepository = (*TokenRepository)(nil)

func (m *TokenRepository) SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error {
	args := m.Called(ctx, userID, td)
	return args.Error(0)
}

func (m *TokenRepository) GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error) {
	args := m.Called(ctx, accessUUID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *TokenRepository) GetUserIDByRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error) {
	args := m.Called(ctx, refreshUUID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *TokenRepository) DeleteAccessToken(ctx context.Context, accessUUID string) error {
	args := m.Called(ctx, accessUUID)
	return args.Error(0)
}

func (m *TokenRepository) DeleteRefreshToken(ctx context.Context, refreshUUID string) error {
	args := m.Called(ctx, refreshUUID)
	return args.Error(0)
}
