package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/internal/services"
)

// DirectoryHandler serves the public directory of completed pros
type DirectoryHandler struct {
	service services.DirectoryServiceInterface
}

// NewDirectoryHandler creates a new DirectoryHandler
func NewDirectoryHandler(service services.DirectoryServiceInterface) *DirectoryHandler {
	return &DirectoryHandler{
		service: service,
	}
}

// List handles GET /api/v1/pros
// Supports type, category and city filters. forceRefresh bypasses the
// directory cache and is only honored on the internal route.
func (h *DirectoryHandler) List(c *gin.Context) {
	filter := models.DirectoryFilter{
		ProviderType: c.Query("type"),
		Category:     c.Query("category"),
		City:         c.Query("city"),
	}

	pros, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Could not load directory", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pros":  pros,
		"count": len(pros),
	})
}

// GetBySlug handles GET /api/v1/pros/:slug
func (h *DirectoryHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	pro, err := h.service.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Could not load profile", err)
		return
	}
	if pro == nil {
		respondError(c, http.StatusNotFound, "Profile not found", nil)
		return
	}

	c.JSON(http.StatusOK, pro)
}

// Export handles GET /api/internal/pros
// Token-authenticated directory export for the CRM. Always reads through
// with forceRefresh so the CRM sees the latest completed profiles.
func (h *DirectoryHandler) Export(c *gin.Context) {
	filter := models.DirectoryFilter{
		ProviderType: c.Query("type"),
		Category:     c.Query("category"),
		City:         c.Query("city"),
		ForceRefresh: true,
	}

	pros, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Could not export directory", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pros":  pros,
		"count": len(pros),
	})
}
