package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gameforge-server/internal/models"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	args := m.Called(ctx, username, email, password)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*models.TokenDetails, error) {
	args := m.Called(ctx, username, password)
	if td, ok := args.Get(0).(*models.TokenDetails); ok {
		return td, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenDetails, error) {
	args := m.Called(ctx, refreshToken)
	if td, ok := args.Get(0).(*models.TokenDetails); ok {
		return td, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, accessUUID string) error {
	args := m.Called(ctx, accessUUID)
	return args.Error(0)
}

func (m *mockAuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	args := m.Called(ctx, tokenString)
	if c, ok := args.Get(0).(*models.Claims); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockConceptService struct {
	mock.Mock
}

func (m *mockConceptService) CreateConcept(ctx context.Context, userID uuid.UUID, brief models.GenerationBrief) (*models.Concept, error) {
	args := m.Called(ctx, userID, brief)
	if c, ok := args.Get(0).(*models.Concept); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConceptService) ExploreConcept(ctx context.Context, userID uuid.UUID) (*models.Concept, error) {
	args := m.Called(ctx, userID)
	if c, ok := args.Get(0).(*models.Concept); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConceptService) GetConcept(ctx context.Context, requesterID, conceptID uuid.UUID) (*models.Concept, error) {
	args := m.Called(ctx, requesterID, conceptID)
	if c, ok := args.Get(0).(*models.Concept); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConceptService) ListPublic(ctx context.Context, query string) ([]*models.Concept, error) {
	args := m.Called(ctx, query)
	if c, ok := args.Get(0).([]*models.Concept); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConceptService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Concept, error) {
	args := m.Called(ctx, ownerID)
	if c, ok := args.Get(0).([]*models.Concept); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConceptService) ToggleVisibility(ctx context.Context, userID, conceptID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, conceptID)
	return args.Bool(0), args.Error(1)
}

func (m *mockConceptService) GetImage(ctx context.Context, requesterID, conceptID uuid.UUID, kind models.ImageKind) ([]byte, error) {
	args := m.Called(ctx, requesterID, conceptID, kind)
	if d, ok := args.Get(0).([]byte); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockFavoriteService struct {
	mock.Mock
}

func (m *mockFavoriteService) ToggleFavorite(ctx context.Context, userID, conceptID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, conceptID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavoriteService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*models.Concept, error) {
	args := m.Called(ctx, userID)
	if c, ok := args.Get(0).([]*models.Concept); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFavoriteService) IsFavorite(ctx context.Context, userID, conceptID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, conceptID)
	return args.Bool(0), args.Error(1)
}

type mockQuotaService struct {
	mock.Mock
}

func (m *mockQuotaService) Consume(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockQuotaService) Usage(ctx context.Context, userID uuid.UUID) (int, int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Int(1), args.Error(2)
}

type testEnv struct {
	router    *gin.Engine
	auth      *mockAuthService
	concepts  *mockConceptService
	favorites *mockFavoriteService
	quota     *mockQuotaService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		auth:      new(mockAuthService),
		concepts:  new(mockConceptService),
		favorites: new(mockFavoriteService),
		quota:     new(mockQuotaService),
	}
	h := NewHandler(env.auth, env.concepts, env.favorites, env.quota, zap.NewNop())
	env.router = gin.New()
	h.RegisterRoutes(env.router)
	return env
}

// authorize wires the token "valid-token" to the given user for both
// middleware variants.
func (e *testEnv) authorize(userID uuid.UUID) {
	claims := &models.Claims{UserID: userID}
	claims.ID = uuid.NewString()
	e.auth.On("VerifyAccessToken", mock.Anything, "valid-token").Return(claims, nil)
}

func doRequest(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	env := newTestEnv(t)

	rec := doRequest(env.router, http.MethodPost, "/api/v1/concepts", "", gin.H{})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, models.ErrCodeTokenInvalid, body.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	env := newTestEnv(t)
	env.auth.On("VerifyAccessToken", mock.Anything, "bad-token").
		Return(nil, models.ErrTokenExpired)

	rec := doRequest(env.router, http.MethodPost, "/api/v1/concepts", "bad-token", gin.H{})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, models.ErrCodeTokenExpired, body.Code)
}

func TestGenerateConcept_Success(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	env.authorize(userID)

	concept := &models.Concept{ID: uuid.New(), OwnerID: userID, Title: "Essai", Genre: "RPG", IsPublic: true}
	env.concepts.On("CreateConcept", mock.Anything, userID,
		models.GenerationBrief{Title: "Essai", Genre: "RPG", Ambiance: "sombre"}).
		Return(concept, nil).Once()

	rec := doRequest(env.router, http.MethodPost, "/api/v1/concepts", "valid-token",
		gin.H{"title": "Essai", "genre": "RPG", "ambiance": "sombre"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	var got models.Concept
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, concept.ID, got.ID)
	env.concepts.AssertExpectations(t)
}

func TestGenerateConcept_MissingTitle(t *testing.T) {
	env := newTestEnv(t)
	env.authorize(uuid.New())

	rec := doRequest(env.router, http.MethodPost, "/api/v1/concepts", "valid-token",
		gin.H{"genre": "RPG", "ambiance": "sombre"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.concepts.AssertNotCalled(t, "CreateConcept", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateConcept_QuotaExceeded(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	env.authorize(userID)

	env.concepts.On("CreateConcept", mock.Anything, userID, mock.AnythingOfType("models.GenerationBrief")).
		Return(nil, models.ErrQuotaExceeded).Once()

	rec := doRequest(env.router, http.MethodPost, "/api/v1/concepts", "valid-token",
		gin.H{"title": "Essai", "genre": "RPG", "ambiance": "sombre"})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, models.ErrCodeQuotaExceeded, body.Code)
}

func TestGetConcept_AnonymousAccess(t *testing.T) {
	env := newTestEnv(t)
	conceptID := uuid.New()

	concept := &models.Concept{ID: conceptID, IsPublic: true}
	env.concepts.On("GetConcept", mock.Anything, uuid.Nil, conceptID).Return(concept, nil).Once()

	rec := doRequest(env.router, http.MethodGet, "/api/v1/concepts/"+conceptID.String(), "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	env.concepts.AssertExpectations(t)
}

func TestGetConcept_NotFound(t *testing.T) {
	env := newTestEnv(t)
	conceptID := uuid.New()

	env.concepts.On("GetConcept", mock.Anything, uuid.Nil, conceptID).
		Return(nil, models.ErrConceptNotFound).Once()

	rec := doRequest(env.router, http.MethodGet, "/api/v1/concepts/"+conceptID.String(), "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetConcept_MalformedID(t *testing.T) {
	env := newTestEnv(t)

	rec := doRequest(env.router, http.MethodGet, "/api/v1/concepts/not-a-uuid", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetConceptImage(t *testing.T) {
	env := newTestEnv(t)
	conceptID := uuid.New()

	env.concepts.On("GetImage", mock.Anything, uuid.Nil, conceptID, models.ImageKindCharacter).
		Return([]byte("png-bytes"), nil).Once()

	rec := doRequest(env.router, http.MethodGet,
		"/api/v1/concepts/"+conceptID.String()+"/images/character", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestGetConceptImage_UnknownKind(t *testing.T) {
	env := newTestEnv(t)
	conceptID := uuid.New()

	rec := doRequest(env.router, http.MethodGet,
		"/api/v1/concepts/"+conceptID.String()+"/images/thumbnail", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleFavorite(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	conceptID := uuid.New()
	env.authorize(userID)

	env.favorites.On("ToggleFavorite", mock.Anything, userID, conceptID).Return(true, nil).Once()

	rec := doRequest(env.router, http.MethodPost,
		"/api/v1/concepts/"+conceptID.String()+"/favorite", "valid-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body favoriteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Favorited)
}

func TestGetUsage(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	env.authorize(userID)

	env.quota.On("Usage", mock.Anything, userID).Return(7, 10, nil).Once()

	rec := doRequest(env.router, http.MethodGet, "/api/v1/usage", "valid-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body usageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 7, body.Used)
	assert.Equal(t, 10, body.Limit)
	assert.Equal(t, 3, body.Remaining)
}

func TestExportConceptPDF(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	conceptID := uuid.New()
	env.authorize(userID)

	concept := &models.Concept{
		ID:       conceptID,
		OwnerID:  userID,
		Title:    "Essai Export",
		Genre:    "Puzzle",
		IsPublic: true,
	}
	env.concepts.On("GetConcept", mock.Anything, userID, conceptID).Return(concept, nil).Once()

	rec := doRequest(env.router, http.MethodGet,
		"/api/v1/concepts/"+conceptID.String()+"/export.pdf", "valid-token", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "GameForge_"+conceptID.String()+".pdf")
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
}

func TestExportConceptPDF_NotOwner(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	conceptID := uuid.New()
	env.authorize(userID)

	concept := &models.Concept{ID: conceptID, OwnerID: uuid.New(), IsPublic: true}
	env.concepts.On("GetConcept", mock.Anything, userID, conceptID).Return(concept, nil).Once()

	rec := doRequest(env.router, http.MethodGet,
		"/api/v1/concepts/"+conceptID.String()+"/export.pdf", "valid-token", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	env.authorize(userID)

	env.auth.On("GetUser", mock.Anything, userID).
		Return(&models.User{ID: userID, Username: "marie", Email: "marie@example.com"}, nil).Once()

	rec := doRequest(env.router, http.MethodGet, "/api/v1/auth/me", "valid-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body.ID)
	assert.Equal(t, "marie", body.Username)
}

func TestListPublicConcepts_PassesQuery(t *testing.T) {
	env := newTestEnv(t)

	env.concepts.On("ListPublic", mock.Anything, "verre").
		Return([]*models.Concept{}, nil).Once()

	rec := doRequest(env.router, http.MethodGet, "/api/v1/concepts?q=verre", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	env.concepts.AssertExpectations(t)
}
