package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gameforge-server/internal/models"
)

// GenerateConcept handles POST /api/v1/concepts.
func (h *Handler) GenerateConcept(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	concept, err := h.concepts.CreateConcept(c.Request.Context(), currentUserID(c), req.toBrief())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	conceptsGeneratedTotal.WithLabelValues("brief").Inc()
	c.JSON(http.StatusCreated, concept)
}

// ExploreConcept handles POST /api/v1/concepts/explore. It generates a
// concept from a random brief.
func (h *Handler) ExploreConcept(c *gin.Context) {
	concept, err := h.concepts.ExploreConcept(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	conceptsGeneratedTotal.WithLabelValues("explore").Inc()
	c.JSON(http.StatusCreated, concept)
}

// ListPublicConcepts handles GET /api/v1/concepts. The optional q parameter
// filters by title or genre.
func (h *Handler) ListPublicConcepts(c *gin.Context) {
	concepts, err := h.concepts.ListPublic(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conceptListResponse{Concepts: concepts})
}

// ListMyConcepts handles GET /api/v1/concepts/mine.
func (h *Handler) ListMyConcepts(c *gin.Context) {
	concepts, err := h.concepts.ListByOwner(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conceptListResponse{Concepts: concepts})
}

// GetConcept handles GET /api/v1/concepts/:id. For authenticated callers
// the response carries their favorite state for the concept.
func (h *Handler) GetConcept(c *gin.Context) {
	conceptID, ok := h.conceptID(c)
	if !ok {
		return
	}

	userID := currentUserID(c)
	concept, err := h.concepts.GetConcept(c.Request.Context(), userID, conceptID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	isFavorite := false
	if userID != uuid.Nil {
		if isFavorite, err = h.favorites.IsFavorite(c.Request.Context(), userID, conceptID); err != nil {
			h.handleServiceError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, conceptDetailResponse{Concept: concept, IsFavorite: isFavorite})
}

// ToggleVisibility handles POST /api/v1/concepts/:id/visibility.
func (h *Handler) ToggleVisibility(c *gin.Context) {
	conceptID, ok := h.conceptID(c)
	if !ok {
		return
	}

	isPublic, err := h.concepts.ToggleVisibility(c.Request.Context(), currentUserID(c), conceptID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, visibilityResponse{ID: conceptID.String(), IsPublic: isPublic})
}

// GetConceptImage handles GET /api/v1/concepts/:id/images/:kind.
func (h *Handler) GetConceptImage(c *gin.Context) {
	conceptID, ok := h.conceptID(c)
	if !ok {
		return
	}
	kind := c.Param("kind")
	if !models.IsValidImageKind(kind) {
		h.bindingError(c, models.ErrInvalidInput)
		return
	}

	data, err := h.concepts.GetImage(c.Request.Context(), currentUserID(c), conceptID, models.ImageKind(kind))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", data)
}

// ToggleFavorite handles POST /api/v1/concepts/:id/favorite.
func (h *Handler) ToggleFavorite(c *gin.Context) {
	conceptID, ok := h.conceptID(c)
	if !ok {
		return
	}

	favorited, err := h.favorites.ToggleFavorite(c.Request.Context(), currentUserID(c), conceptID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	state := "removed"
	if favorited {
		state = "added"
	}
	favoriteTogglesTotal.WithLabelValues(state).Inc()
	c.JSON(http.StatusOK, favoriteResponse{ConceptID: conceptID.String(), Favorited: favorited})
}

// ListFavorites handles GET /api/v1/favorites.
func (h *Handler) ListFavorites(c *gin.Context) {
	concepts, err := h.favorites.ListFavorites(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conceptListResponse{Concepts: concepts})
}

// GetUsage handles GET /api/v1/usage.
func (h *Handler) GetUsage(c *gin.Context) {
	used, limit, err := h.quota.Usage(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	c.JSON(http.StatusOK, usageResponse{Used: used, Limit: limit, Remaining: remaining})
}

// conceptID parses the :id path parameter, reporting a validation error on
// malformed input.
func (h *Handler) conceptID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		countHTTPError(models.ErrCodeValidation)
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    models.ErrCodeValidation,
			Message: "invalid concept id",
		})
		return uuid.Nil, false
	}
	return id, true
}
