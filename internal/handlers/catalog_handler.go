package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tavvy/tavvy-pros-api/internal/catalog"
	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/internal/wizard"
)

// CatalogHandler serves the category catalog. The catalog is compiled in,
// so these endpoints never touch the database.
type CatalogHandler struct{}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// GetCategories handles GET /api/v1/catalog/:providerType
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	pt := wizard.ProviderType(c.Param("providerType"))
	if !pt.Valid() {
		respondError(c, http.StatusNotFound, "Unknown provider type", nil)
		return
	}

	c.JSON(http.StatusOK, models.CatalogResponse{
		ProviderType: string(pt),
		Categories:   catalog.CategoriesFor(pt),
	})
}

// GetSubcategories handles GET /api/v1/catalog/:providerType/:category
// Returns the category's subcategories plus the suggested services for an
// optional comma-separated subcategory selection.
func (h *CatalogHandler) GetSubcategories(c *gin.Context) {
	pt := wizard.ProviderType(c.Param("providerType"))
	if !pt.Valid() {
		respondError(c, http.StatusNotFound, "Unknown provider type", nil)
		return
	}

	category := c.Param("category")
	if !catalog.ValidCategory(pt, category) {
		respondError(c, http.StatusNotFound, "Unknown category", nil)
		return
	}

	var selections []string
	if raw := c.Query("subcategories"); raw != "" {
		selections = strings.Split(raw, ",")
	}

	c.JSON(http.StatusOK, gin.H{
		"providerType":      string(pt),
		"category":          category,
		"subcategories":     catalog.SubcategoriesFor(pt, category),
		"suggestedServices": catalog.SuggestedServicesFor(pt, category, selections),
	})
}

// Search handles GET /api/v1/catalog/search?q=
func (h *CatalogHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"categories": []string{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": catalog.Search(query)})
}
