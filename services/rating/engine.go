package rating

import (
	"errors"
	"fmt"
	"time"

	catalogRepo "tillpoint/database/repository/catalog"
	sessionRepo "tillpoint/database/repository/session"
	staffRepo "tillpoint/database/repository/staff"
	"tillpoint/models"
	"tillpoint/utils"

	"go.uber.org/zap"
)

// servicePath identifies one service touched by an item rating.
type servicePath struct {
	BusinessID string
	ServiceID  string
}

// SubmitSessionRating applies a one-time rating to a session.
//
// The Unrated->Rated transition is claimed first, with a single conditional
// write, so two concurrent submissions for the same session cannot both pass
// the guard and double-count their increments. Staff and item updates are
// single-document atomic updates; rollups recompute from child state, so a
// concurrent rollup of the same parent converges to the same value.
func (s *DefaultRatingService) SubmitSessionRating(sessionID string, input models.RatingSubmission) (*models.RatingResult, error) {
	logger := utils.GetLogger()

	if input.StaffRating == nil && len(input.ItemRatings) == 0 {
		return nil, &ValidationError{Message: "at least one rating is required"}
	}

	sess, err := s.Sessions.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "session", ID: sessionID}
		}
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	payload := models.RatingPayload{
		Staff:       input.StaffRating,
		Comment:     input.Comment,
		ItemRatings: input.ItemRatings,
	}
	if err := s.Sessions.ClaimRating(sessionID, payload); err != nil {
		switch {
		case errors.Is(err, sessionRepo.ErrAlreadyRated):
			return nil, &ConflictError{Message: "session already rated"}
		case errors.Is(err, sessionRepo.ErrNotFound):
			return nil, &NotFoundError{Resource: "session", ID: sessionID}
		default:
			return nil, fmt.Errorf("failed to claim rating for session %s: %w", sessionID, err)
		}
	}

	if input.StaffRating != nil {
		err := s.Staff.ApplyRating(sess.StaffID, *input.StaffRating)
		if errors.Is(err, staffRepo.ErrNotFound) {
			logger.Warn("staff missing, rating skipped",
				zap.String("sessionID", sessionID),
				zap.String("staffID", sess.StaffID))
		} else if err != nil {
			return nil, fmt.Errorf("failed to apply staff rating: %w", err)
		}
	}

	touchedServices := make(map[servicePath]struct{})
	touchedBusinesses := make(map[string]struct{})
	var skipped []models.ItemRating

	for _, ir := range input.ItemRatings {
		err := s.Catalog.ApplyItemRating(ir.BusinessID, ir.ServiceID, ir.ItemID, ir.Rating)
		if errors.Is(err, catalogRepo.ErrNotFound) {
			logger.Warn("item missing, rating skipped",
				zap.String("sessionID", sessionID),
				zap.String("businessID", ir.BusinessID),
				zap.String("serviceID", ir.ServiceID),
				zap.String("itemID", ir.ItemID))
			skipped = append(skipped, ir)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to apply item rating: %w", err)
		}
		touchedServices[servicePath{ir.BusinessID, ir.ServiceID}] = struct{}{}
		touchedBusinesses[ir.BusinessID] = struct{}{}
	}

	for p := range touchedServices {
		if err := s.rollupService(p.BusinessID, p.ServiceID); err != nil {
			return nil, err
		}
	}
	for businessID := range touchedBusinesses {
		if err := s.rollupBusiness(businessID); err != nil {
			return nil, err
		}
	}

	return &models.RatingResult{
		SessionID:    sessionID,
		Ratings:      payload,
		SkippedItems: skipped,
	}, nil
}

// VerifySessionRating stamps the session verified. Calling it twice is harmless.
func (s *DefaultRatingService) VerifySessionRating(sessionID string) error {
	if err := s.Sessions.MarkVerified(sessionID, time.Now()); err != nil {
		if errors.Is(err, sessionRepo.ErrNotFound) {
			return &NotFoundError{Resource: "session", ID: sessionID}
		}
		return fmt.Errorf("failed to verify session %s: %w", sessionID, err)
	}
	return nil
}
