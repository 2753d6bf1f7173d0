// Package handler exposes the HTTP API of the GameForge server.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gameforge-server/internal/service"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	auth      service.AuthService
	concepts  service.ConceptService
	favorites service.FavoriteService
	quota     service.QuotaService
	logger    *zap.Logger
}

// NewHandler creates the HTTP handler.
func NewHandler(
	auth service.AuthService,
	concepts service.ConceptService,
	favorites service.FavoriteService,
	quota service.QuotaService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		auth:      auth,
		concepts:  concepts,
		favorites: favorites,
		quota:     quota,
		logger:    logger.Named("Handler"),
	}
}

// RegisterRoutes mounts all API routes on the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}

	// Public reads resolve the user when a token is present so owners see
	// their hidden concepts.
	public := v1.Group("", h.OptionalAuthMiddleware())
	{
		public.GET("/concepts", h.ListPublicConcepts)
		public.GET("/concepts/:id", h.GetConcept)
		public.GET("/concepts/:id/images/:kind", h.GetConceptImage)
	}

	private := v1.Group("", h.AuthMiddleware())
	{
		private.GET("/auth/me", h.Me)
		private.GET("/concepts/:id/export.pdf", h.ExportConceptPDF)
		private.POST("/concepts", h.GenerateConcept)
		private.POST("/concepts/explore", h.ExploreConcept)
		private.GET("/concepts/mine", h.ListMyConcepts)
		private.POST("/concepts/:id/visibility", h.ToggleVisibility)
		private.POST("/concepts/:id/favorite", h.ToggleFavorite)
		private.GET("/favorites", h.ListFavorites)
		private.GET("/usage", h.GetUsage)
	}
}
