package session

import (
	sessionRepo "tillpoint/database/repository/session"
	"tillpoint/models"
)

// CreateSessionInput is the inbound contract for opening a POS session.
type CreateSessionInput struct {
	Items       []models.SessionItem `json:"items" binding:"required"`
	TotalAmount float64              `json:"totalAmount"`
}

// SessionService records POS sessions and serves them back to their staff
// owner. Rating and verification writes belong to the rating engine.
type SessionService interface {
	CreateSession(staffID string, input CreateSessionInput) (*models.Session, error)
	// GetSession returns the session if the caller owns it. Admins pass
	// allowAny to read any session.
	GetSession(sessionID, callerID string, allowAny bool) (*models.Session, error)
	ListStaffSessions(staffID string) ([]models.Session, error)
}

// DefaultSessionService is the production SessionService.
type DefaultSessionService struct {
	Sessions sessionRepo.SessionRepository
}
