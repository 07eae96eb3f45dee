package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tillpoint/middleware"
	"tillpoint/services/session"
)

// SessionHandler exposes POS session recording and retrieval.
type SessionHandler struct {
	SessionSvc session.SessionService
	Logger     *zap.Logger
}

// CreateSession handles POST /api/sessions (staff only).
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var body session.CreateSessionInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	sess, err := h.SessionSvc.CreateSession(c.GetString(middleware.ContextUserID), body)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// GetSession handles GET /api/sessions/:sessionID. Staff read their own
// sessions; admins read any.
func (h *SessionHandler) GetSession(c *gin.Context) {
	role := c.GetString(middleware.ContextRole)
	allowAny := role == "admin" || role == "superadmin"

	sess, err := h.SessionSvc.GetSession(c.Param("sessionID"), c.GetString(middleware.ContextUserID), allowAny)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// ListMySessions handles GET /api/sessions for the logged-in staff.
func (h *SessionHandler) ListMySessions(c *gin.Context) {
	sessions, err := h.SessionSvc.ListStaffSessions(c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}
