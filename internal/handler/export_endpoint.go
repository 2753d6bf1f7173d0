package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gameforge-server/internal/export"
	"gameforge-server/internal/models"
)

// ExportConceptPDF handles GET /api/v1/concepts/:id/export.pdf. Only the
// owner can download the document.
func (h *Handler) ExportConceptPDF(c *gin.Context) {
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
	if concept.OwnerID != userID {
		h.handleServiceError(c, models.ErrForbidden)
		return
	}

	data, err := export.ConceptPDF(concept)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	pdfExportsTotal.Inc()
	filename := fmt.Sprintf("GameForge_%s.pdf", concept.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
