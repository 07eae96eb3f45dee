package staff

import (
	"firebase.google.com/go/v4/auth"

	sessionRepo "tillpoint/database/repository/session"
	staffRepo "tillpoint/database/repository/staff"
	"tillpoint/models"
	"tillpoint/services/storage"
)

// CreateStaffInput carries the fields needed to onboard a staff member.
// Avatar is an optional uploaded file; when absent a generated avatar is used.
type CreateStaffInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar any    `json:"-"`
}

// UpdateStaffInput carries the editable staff fields.
type UpdateStaffInput struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// StaffCredentials pairs a staff record with its clear PIN. The PIN is only
// available here, at create or regenerate time; afterwards only the hash exists.
type StaffCredentials struct {
	Staff *models.Staff `json:"staff"`
	PIN   string        `json:"pin"`
}

// StaffService manages staff accounts, their Firebase identities, and the
// rating-derived views (performance, leaderboard).
type StaffService interface {
	CreateStaff(input CreateStaffInput) (*StaffCredentials, error)
	GetStaff(id string) (*models.Staff, error)
	ListStaff() ([]models.Staff, error)
	UpdateStaff(id string, input UpdateStaffInput) (*models.Staff, error)
	DeleteStaff(id string) error
	RegeneratePIN(id string) (*StaffCredentials, error)
	// VerifyPIN checks an email/PIN pair and returns the matching staff member.
	VerifyPIN(email, pin string) (*models.Staff, error)
	GetPerformance(id string) (*models.StaffPerformance, error)
	GetLeaderboard() ([]models.LeaderboardEntry, error)
}

// DefaultStaffService is the production StaffService.
type DefaultStaffService struct {
	Staff    staffRepo.StaffRepository
	Sessions sessionRepo.SessionRepository
	Auth     *auth.Client
	Storage  storage.StorageService
}
