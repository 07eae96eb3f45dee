package staff

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	staffRepo "tillpoint/database/repository/staff"
	"tillpoint/models"
	"tillpoint/utils"
)

const firebaseTimeout = 10 * time.Second

// CreateStaff provisions a Firebase identity for the staff member, generates
// their login PIN, and stores the staff record keyed by the Firebase UID.
// The Firebase password is the PIN concatenated with the name initials.
func (s *DefaultStaffService) CreateStaff(input CreateStaffInput) (*StaffCredentials, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if name == "" || email == "" {
		return nil, &utils.ValidationError{Message: "staff name and email are required"}
	}
	role := input.Role
	if role == "" {
		role = "staff"
	}

	if _, err := s.Staff.GetByEmail(email); err == nil {
		return nil, &utils.ConflictError{Message: "staff email already in use"}
	} else if !errors.Is(err, staffRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check staff email: %w", err)
	}

	pin, err := generatePIN()
	if err != nil {
		return nil, err
	}
	pinHash, err := hashPIN(pin)
	if err != nil {
		return nil, err
	}

	avatarURL := fallbackAvatarURL(name)
	if input.Avatar != nil {
		ctx, cancel := context.WithTimeout(context.Background(), firebaseTimeout)
		res, upErr := s.Storage.Upload(ctx, input.Avatar, "tillpoint/avatars")
		cancel()
		if upErr != nil {
			utils.GetLogger().Warn("avatar upload failed, using generated avatar",
				zap.String("email", email), zap.Error(upErr))
		} else {
			avatarURL = res.URL
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), firebaseTimeout)
	defer cancel()
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(pin + initials(name)).
		DisplayName(name).
		PhotoURL(avatarURL)
	user, err := s.Auth.CreateUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create staff identity: %w", err)
	}
	if err := s.Auth.SetCustomUserClaims(ctx, user.UID, map[string]any{"role": role}); err != nil {
		return nil, fmt.Errorf("failed to set staff role claim: %w", err)
	}

	st := &models.Staff{
		ID:        user.UID,
		Name:      name,
		Email:     email,
		PINHash:   pinHash,
		AvatarURL: avatarURL,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.Staff.Create(st); err != nil {
		return nil, fmt.Errorf("failed to create staff record: %w", err)
	}
	return &StaffCredentials{Staff: st, PIN: pin}, nil
}

func (s *DefaultStaffService) GetStaff(id string) (*models.Staff, error) {
	st, err := s.Staff.GetByID(id)
	if errors.Is(err, staffRepo.ErrNotFound) {
		return nil, &utils.NotFoundError{Resource: "staff", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load staff %s: %w", id, err)
	}
	return st, nil
}

func (s *DefaultStaffService) ListStaff() ([]models.Staff, error) {
	return s.Staff.GetAll()
}

func (s *DefaultStaffService) UpdateStaff(id string, input UpdateStaffInput) (*models.Staff, error) {
	fields := map[string]any{}
	if strings.TrimSpace(input.Name) != "" {
		fields["name"] = input.Name
	}
	if input.Role != "" {
		fields["role"] = input.Role
	}
	if len(fields) == 0 {
		return nil, &utils.ValidationError{Message: "no updatable fields provided"}
	}

	err := s.Staff.Update(id, fields)
	if errors.Is(err, staffRepo.ErrNotFound) {
		return nil, &utils.NotFoundError{Resource: "staff", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update staff %s: %w", id, err)
	}

	if input.Role != "" {
		ctx, cancel := context.WithTimeout(context.Background(), firebaseTimeout)
		defer cancel()
		if err := s.Auth.SetCustomUserClaims(ctx, id, map[string]any{"role": input.Role}); err != nil {
			return nil, fmt.Errorf("failed to update staff role claim: %w", err)
		}
	}
	return s.GetStaff(id)
}

// DeleteStaff removes both the staff record and the Firebase identity. A
// missing Firebase user is logged and tolerated so a half-deleted account can
// still be cleaned up.
func (s *DefaultStaffService) DeleteStaff(id string) error {
	err := s.Staff.Delete(id)
	if errors.Is(err, staffRepo.ErrNotFound) {
		return &utils.NotFoundError{Resource: "staff", ID: id}
	}
	if err != nil {
		return fmt.Errorf("failed to delete staff %s: %w", id, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), firebaseTimeout)
	defer cancel()
	if err := s.Auth.DeleteUser(ctx, id); err != nil {
		utils.GetLogger().Warn("failed to delete staff identity",
			zap.String("staffID", id), zap.Error(err))
	}
	return nil
}

// RegeneratePIN replaces the staff member's PIN and Firebase password and
// returns the new clear PIN once.
func (s *DefaultStaffService) RegeneratePIN(id string) (*StaffCredentials, error) {
	st, err := s.GetStaff(id)
	if err != nil {
		return nil, err
	}

	pin, err := generatePIN()
	if err != nil {
		return nil, err
	}
	pinHash, err := hashPIN(pin)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), firebaseTimeout)
	defer cancel()
	params := (&auth.UserToUpdate{}).Password(pin + initials(st.Name))
	if _, err := s.Auth.UpdateUser(ctx, id, params); err != nil {
		return nil, fmt.Errorf("failed to rotate staff identity password: %w", err)
	}

	if err := s.Staff.Update(id, map[string]any{"pinHash": pinHash}); err != nil {
		return nil, fmt.Errorf("failed to store new pin: %w", err)
	}
	st.PINHash = pinHash
	return &StaffCredentials{Staff: st, PIN: pin}, nil
}

func (s *DefaultStaffService) VerifyPIN(email, pin string) (*models.Staff, error) {
	st, err := s.Staff.GetByEmail(strings.TrimSpace(strings.ToLower(email)))
	if errors.Is(err, staffRepo.ErrNotFound) {
		return nil, &utils.UnauthorizedError{Message: "invalid email or pin"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load staff by email: %w", err)
	}
	if !checkPIN(st.PINHash, pin) {
		return nil, &utils.UnauthorizedError{Message: "invalid email or pin"}
	}
	return st, nil
}

func (s *DefaultStaffService) GetPerformance(id string) (*models.StaffPerformance, error) {
	st, err := s.GetStaff(id)
	if err != nil {
		return nil, err
	}

	rated, err := s.Sessions.ListRatedByStaff(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list rated sessions for staff %s: %w", id, err)
	}
	reviews := make([]models.Review, 0, len(rated))
	for _, sess := range rated {
		if sess.Ratings == nil {
			continue
		}
		if sess.Ratings.Comment == "" && sess.Ratings.Staff == nil {
			continue
		}
		reviews = append(reviews, models.Review{
			Comment: sess.Ratings.Comment,
			Rating:  sess.Ratings.Staff,
		})
	}

	return &models.StaffPerformance{
		StaffID:      st.ID,
		Name:         st.Name,
		Rating:       st.Rating,
		TotalReviews: st.ReviewCount,
		Reviews:      reviews,
	}, nil
}

// GetLeaderboard ranks all staff by rating, ties broken by review count.
func (s *DefaultStaffService) GetLeaderboard() ([]models.LeaderboardEntry, error) {
	all, err := s.Staff.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(all))
	for _, st := range all {
		entries = append(entries, models.LeaderboardEntry{
			StaffID:     st.ID,
			Name:        st.Name,
			Rating:      st.Rating,
			ReviewCount: st.ReviewCount,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Rating != entries[j].Rating {
			return entries[i].Rating > entries[j].Rating
		}
		return entries[i].ReviewCount > entries[j].ReviewCount
	})
	return entries, nil
}
