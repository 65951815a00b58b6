package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lensvault/backend/internal/domain"
	"github.com/lensvault/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService *usecase.SearchService
	enrichService *usecase.EnrichService
}

// NewHandler creates a new HTTP handler
func NewHandler(searchService *usecase.SearchService, enrichService *usecase.EnrichService) *Handler {
	return &Handler{
		searchService: searchService,
		enrichService: enrichService,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lensvault-backend",
		"version": "1.0.0",
	})
}

// SearchProducts handles GET search requests; query-string parameters are
// translated into typed filter criteria before reaching the engine.
func (h *Handler) SearchProducts(c *gin.Context) {
	filters, err := parseFilterParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), *filters)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SearchProductsJSON handles POST search requests with a JSON criteria body
func (h *Handler) SearchProductsJSON(c *gin.Context) {
	var filters domain.FilterCriteria
	if err := c.ShouldBindJSON(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter criteria: " + err.Error()})
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), filters)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetProduct returns a single product by id
func (h *Handler) GetProduct(c *gin.Context) {
	record, err := h.searchService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetFilterOptions returns the unconstrained facets for UI filter controls
func (h *Handler) GetFilterOptions(c *gin.Context) {
	result, err := h.searchService.FilterOptions(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filters":    result.Filters,
		"statistics": result.Statistics,
	})
}

// GetStatistics returns corpus-wide statistics
func (h *Handler) GetStatistics(c *gin.Context) {
	stats, err := h.searchService.Statistics(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RunEnrichment rebuilds the enriched dataset from the raw dataset
func (h *Handler) RunEnrichment(c *gin.Context) {
	dataset, err := h.enrichService.Run(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalProducts": dataset.TotalProducts,
		"createdAt":     dataset.CreatedAt,
		"statistics":    dataset.Statistics,
	})
}

func (h *Handler) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDatasetNotFound), errors.Is(err, domain.ErrCorpusUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parseFilterParams translates query-string parameters into typed filter
// criteria. Parsing and validation of raw strings happens here; the query
// engine only ever sees typed values.
func parseFilterParams(c *gin.Context) (*domain.FilterCriteria, error) {
	filters := &domain.FilterCriteria{}

	filters.Search = c.Query("search")
	filters.Categories = splitParam(c.Query("categories"))
	filters.DeviceTypes = splitParam(c.Query("deviceTypes"))
	filters.Eras = splitParam(c.Query("eras"))
	filters.SensorSizes = splitParam(c.Query("sensorSizes"))
	filters.SensorTypes = splitParam(c.Query("sensorTypes"))
	filters.SearchTags = splitParam(c.Query("features"))
	filters.DataQuality = splitParam(c.Query("dataQuality"))
	filters.MarketedAfter = c.Query("marketedAfter")
	filters.MarketedBefore = c.Query("marketedBefore")

	mp, err := parseMegapixelParams(c)
	if err != nil {
		return nil, err
	}
	filters.Megapixels = mp

	if filters.FocalLengthMin, err = floatParam(c, "focalLengthMin"); err != nil {
		return nil, err
	}
	if filters.FocalLengthMax, err = floatParam(c, "focalLengthMax"); err != nil {
		return nil, err
	}

	if raw := c.Query("hasZoom"); raw != "" {
		hasZoom := raw == "true"
		filters.HasZoom = &hasZoom
	}

	filters.Operators = domain.FilterOperators{
		Text:       c.Query("textOperator"),
		Megapixels: c.Query("megapixelsOperator"),
		Sensor:     c.Query("sensorOperator"),
	}

	return filters, nil
}

func parseMegapixelParams(c *gin.Context) (*domain.MegapixelFilter, error) {
	exact, err := floatParam(c, "megapixels")
	if err != nil {
		return nil, err
	}
	min, err := floatParam(c, "megapixelsMin")
	if err != nil {
		return nil, err
	}
	max, err := floatParam(c, "megapixelsMax")
	if err != nil {
		return nil, err
	}

	var values []float64
	for _, raw := range splitParam(c.Query("megapixelValues")) {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, domain.ErrInvalidRequest
		}
		values = append(values, v)
	}

	if exact == nil && min == nil && max == nil && len(values) == 0 {
		return nil, nil
	}
	return &domain.MegapixelFilter{Exact: exact, Min: min, Max: max, Values: values}, nil
}

func floatParam(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.ErrInvalidRequest
	}
	return &v, nil
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
