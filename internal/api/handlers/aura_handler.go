package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bioaura/platform/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type AuraHandler struct {
	service *service.AuraService
}

func NewAuraHandler(service *service.AuraService) *AuraHandler {
	return &AuraHandler{service: service}
}

// parsePositiveInt returns the fallback for missing, malformed or
// non-positive values. Bad input never fails a request.
func parsePositiveInt(c *gin.Context, param string, fallback int) int {
	value := strings.TrimSpace(c.Query(param))
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func (h *AuraHandler) GetOverview(c *gin.Context) {
	days := parsePositiveInt(c, "days", 0)

	view, err := h.service.Overview(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard overview", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AuraHandler) GetHealthIndex(c *gin.Context) {
	days := parsePositiveInt(c, "timeRange", 0)
	region := strings.TrimSpace(c.Query("region"))

	view, err := h.service.HealthIndex(c.Request.Context(), days, region)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load health index", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AuraHandler) GetDemandPatterns(c *gin.Context) {
	days := parsePositiveInt(c, "days", 0)
	limit := parsePositiveInt(c, "limit", 0)
	category := strings.TrimSpace(c.Query("category"))
	region := strings.TrimSpace(c.Query("region"))

	view, err := h.service.DemandPatterns(c.Request.Context(), days, category, region, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load demand patterns", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AuraHandler) GetPharmacyNetwork(c *gin.Context) {
	days := parsePositiveInt(c, "days", 0)
	limit := parsePositiveInt(c, "limit", 0)
	state := strings.TrimSpace(c.Query("state"))
	region := strings.TrimSpace(c.Query("region"))

	view, err := h.service.PharmacyNetwork(c.Request.Context(), days, state, region, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load pharmacy network", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AuraHandler) GetRegionalSales(c *gin.Context) {
	days := parsePositiveInt(c, "days", 0)
	region := strings.TrimSpace(c.Query("region"))

	view, err := h.service.RegionalSales(c.Request.Context(), days, region)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load regional sales", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AuraHandler) GetRegionalStocks(c *gin.Context) {
	region := strings.TrimSpace(c.Query("region"))
	category := strings.TrimSpace(c.Query("category"))

	view, err := h.service.RegionalStocks(c.Request.Context(), region, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load regional stocks", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}
