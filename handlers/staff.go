package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tillpoint/middleware"
	"tillpoint/services/staff"
)

// StaffHandler exposes staff management and the rating-derived views.
type StaffHandler struct {
	StaffSvc staff.StaffService
	Logger   *zap.Logger
}

// CreateStaff handles POST /api/staff. Accepts a multipart form so an avatar
// image can ride along with the fields.
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	input := staff.CreateStaffInput{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
		Role:  c.PostForm("role"),
	}
	if fileHeader, err := c.FormFile("avatar"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read avatar upload"})
			return
		}
		defer file.Close()
		input.Avatar = file
	}

	creds, err := h.StaffSvc.CreateStaff(input)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, creds)
}

// ListStaff handles GET /api/staff.
func (h *StaffHandler) ListStaff(c *gin.Context) {
	all, err := h.StaffSvc.ListStaff()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

// GetStaff handles GET /api/staff/:id.
func (h *StaffHandler) GetStaff(c *gin.Context) {
	st, err := h.StaffSvc.GetStaff(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// UpdateStaff handles PUT /api/staff/:id.
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	var body staff.UpdateStaffInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	st, err := h.StaffSvc.UpdateStaff(c.Param("id"), body)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// DeleteStaff handles DELETE /api/staff/:id.
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	if err := h.StaffSvc.DeleteStaff(c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "staff deleted"})
}

// RegeneratePIN handles POST /api/staff/:id/regenerate-pin.
func (h *StaffHandler) RegeneratePIN(c *gin.Context) {
	creds, err := h.StaffSvc.RegeneratePIN(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, creds)
}

// GetMyPerformance handles GET /api/staff/performance for the logged-in staff.
func (h *StaffHandler) GetMyPerformance(c *gin.Context) {
	perf, err := h.StaffSvc.GetPerformance(c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, perf)
}

// GetLeaderboard handles GET /api/staff/leaderboard.
func (h *StaffHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.StaffSvc.GetLeaderboard()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
