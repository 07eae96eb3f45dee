package rating

import (
	catalogRepo "tillpoint/database/repository/catalog"
	sessionRepo "tillpoint/database/repository/session"
	staffRepo "tillpoint/database/repository/staff"
	"tillpoint/models"
)

// RatingService aggregates session ratings into the running averages of the
// staff member and the Business -> Service -> Item hierarchy, and guards the
// session rating/verification state machine.
type RatingService interface {
	// SubmitSessionRating applies a one-time rating to a session: staff and
	// item averages are updated incrementally, then the affected services and
	// businesses are rolled up from their children. Fails with
	// *ValidationError, *NotFoundError or *ConflictError.
	SubmitSessionRating(sessionID string, input models.RatingSubmission) (*models.RatingResult, error)
	// VerifySessionRating marks a session's rating as verified by an admin.
	// Idempotent; independent of the rating math.
	VerifySessionRating(sessionID string) error
}

// DefaultRatingService is the production implementation.
type DefaultRatingService struct {
	Sessions sessionRepo.SessionRepository
	Staff    staffRepo.StaffRepository
	Catalog  catalogRepo.CatalogRepository
}
