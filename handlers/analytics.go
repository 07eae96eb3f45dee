package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tillpoint/services/analytics"
)

// AnalyticsHandler exposes the ranked rating views.
type AnalyticsHandler struct {
	AnalyticsSvc analytics.AnalyticsService
	Logger       *zap.Logger
}

func limitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// TopStaff handles GET /api/analytics/top-staff.
func (h *AnalyticsHandler) TopStaff(c *gin.Context) {
	rows, err := h.AnalyticsSvc.TopStaff(limitParam(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// TopBusinesses handles GET /api/analytics/top-business.
func (h *AnalyticsHandler) TopBusinesses(c *gin.Context) {
	rows, err := h.AnalyticsSvc.TopBusinesses(limitParam(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// TopServices handles GET /api/analytics/top-services?businessId=...
func (h *AnalyticsHandler) TopServices(c *gin.Context) {
	businessID := c.Query("businessId")
	if businessID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "businessId query parameter is required"})
		return
	}
	rows, err := h.AnalyticsSvc.TopServices(businessID, limitParam(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// TopItems handles GET /api/analytics/top-items?businessId=...&serviceId=...
func (h *AnalyticsHandler) TopItems(c *gin.Context) {
	businessID := c.Query("businessId")
	serviceID := c.Query("serviceId")
	if businessID == "" || serviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "businessId and serviceId query parameters are required"})
		return
	}
	rows, err := h.AnalyticsSvc.TopItems(businessID, serviceID, limitParam(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
