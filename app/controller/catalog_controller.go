package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"voice-shopping-assistant/logger"
	"voice-shopping-assistant/models"
	"voice-shopping-assistant/service"
)

// CatalogController handles HTTP requests for the product catalog
type CatalogController struct {
	catalog service.CatalogServiceInterface
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalog service.CatalogServiceInterface) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// Search handles GET /api/catalog?q=milk&brand=amul&category=dairy&minPrice=10&maxPrice=100
// Without parameters the whole catalog is returned.
func (c *CatalogController) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := models.CatalogFilter{
		Query:    strings.TrimSpace(query.Get("q")),
		Brand:    strings.TrimSpace(query.Get("brand")),
		Category: strings.TrimSpace(query.Get("category")),
	}

	var err error
	if filter.MinPrice, err = parsePrice(query.Get("minPrice")); err != nil {
		logger.S().Warnf("❌ SearchCatalog: Invalid minPrice: %v", err)
		writeError(w, http.StatusBadRequest, "minPrice must be a number")
		return
	}
	if filter.MaxPrice, err = parsePrice(query.Get("maxPrice")); err != nil {
		logger.S().Warnf("❌ SearchCatalog: Invalid maxPrice: %v", err)
		writeError(w, http.StatusBadRequest, "maxPrice must be a number")
		return
	}

	results := c.catalog.Search(filter)
	logger.S().Debugf("🔍 SearchCatalog: %d result(s) for q=%q brand=%q category=%q", len(results), filter.Query, filter.Brand, filter.Category)
	writeJSON(w, http.StatusOK, results)
}

// parsePrice returns nil for an empty value
func parsePrice(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	return &price, nil
}
