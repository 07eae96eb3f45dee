package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tillpoint/models"
	"tillpoint/services/rating"
)

// RatingHandler exposes the rating submission and verification endpoints.
type RatingHandler struct {
	RatingSvc rating.RatingService
	Logger    *zap.Logger
}

// SubmitRating handles POST /api/sessions/:sessionID/rating (staff only).
func (h *RatingHandler) SubmitRating(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var body models.RatingSubmission
	if err := c.ShouldBindJSON(&body); err != nil {
		h.Logger.Warn("SubmitRating: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	result, err := h.RatingSvc.SubmitSessionRating(sessionID, body)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// VerifyRating handles POST /api/sessions/:sessionID/verify.
func (h *RatingHandler) VerifyRating(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.RatingSvc.VerifySessionRating(sessionID); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "verified": true})
}
