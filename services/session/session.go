package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	sessionRepo "tillpoint/database/repository/session"
	"tillpoint/models"
	"tillpoint/utils"
)

// CreateSession opens a session for the staff member. The line items are
// recorded as sent; their catalog entries are resolved again at rating time.
func (s *DefaultSessionService) CreateSession(staffID string, input CreateSessionInput) (*models.Session, error) {
	if len(input.Items) == 0 {
		return nil, &utils.ValidationError{Message: "session needs at least one item"}
	}
	if input.TotalAmount < 0 {
		return nil, &utils.ValidationError{Message: "total amount must not be negative"}
	}
	for _, it := range input.Items {
		if it.ItemID == "" || it.BusinessID == "" || it.ServiceID == "" {
			return nil, &utils.ValidationError{Message: "every item needs itemId, businessId and serviceId"}
		}
	}

	sess := &models.Session{
		ID:          uuid.NewString(),
		StaffID:     staffID,
		Items:       input.Items,
		TotalAmount: input.TotalAmount,
		CreatedAt:   time.Now(),
	}
	if err := s.Sessions.Create(sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sess, nil
}

func (s *DefaultSessionService) GetSession(sessionID, callerID string, allowAny bool) (*models.Session, error) {
	sess, err := s.Sessions.GetByID(sessionID)
	if errors.Is(err, sessionRepo.ErrNotFound) {
		return nil, &utils.NotFoundError{Resource: "session", ID: sessionID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if !allowAny && sess.StaffID != callerID {
		return nil, &utils.UnauthorizedError{Message: "session belongs to another staff member"}
	}
	return sess, nil
}

func (s *DefaultSessionService) ListStaffSessions(staffID string) ([]models.Session, error) {
	return s.Sessions.ListByStaff(staffID)
}
