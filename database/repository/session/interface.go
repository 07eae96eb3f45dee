package sessionRepo

import (
	"errors"
	"time"

	"tillpoint/models"
)

// Sentinel errors surfaced to the rating engine.
var (
	// ErrNotFound indicates the session does not exist.
	ErrNotFound = errors.New("session not found")
	// ErrAlreadyRated indicates the one-time rating transition was already taken.
	ErrAlreadyRated = errors.New("session already rated")
)

// SessionRepository defines methods for session data access.
type SessionRepository interface {
	// Create inserts a new session record.
	Create(sess *models.Session) error
	// GetByID retrieves a session by its unique ID.
	GetByID(id string) (*models.Session, error)
	// ListByStaff retrieves all sessions for a staff member, newest first.
	ListByStaff(staffID string) ([]models.Session, error)
	// ListRated retrieves every rated session.
	ListRated() ([]models.Session, error)
	// ListRatedByStaff retrieves the rated sessions of one staff member.
	ListRatedByStaff(staffID string) ([]models.Session, error)
	// ClaimRating atomically takes the Unrated->Rated transition and persists
	// the payload. Returns ErrAlreadyRated if another submission won the
	// claim, ErrNotFound if the session does not exist.
	ClaimRating(id string, payload models.RatingPayload) error
	// MarkVerified sets the verified flag and timestamp. Idempotent.
	MarkVerified(id string, at time.Time) error
}
