package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gameforge-server/internal/models"
)

// userIDKey is the gin context key carrying the authenticated user's id.
const userIDKey = "user_id"

// AuthMiddleware rejects requests without a valid Bearer access token and
// stores the user id in the request context.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			h.handleServiceError(c, models.ErrUnauthorized)
			return
		}

		claims, err := h.auth.VerifyAccessToken(c.Request.Context(), token)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the user when a valid token is presented
// but lets anonymous requests through. Invalid tokens are still rejected.
func (h *Handler) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := h.auth.VerifyAccessToken(c.Request.Context(), token)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// currentUserID returns the authenticated user's id, or uuid.Nil for
// anonymous requests behind OptionalAuthMiddleware.
func currentUserID(c *gin.Context) uuid.UUID {
	val, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
