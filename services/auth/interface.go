package auth

import (
	fbauth "firebase.google.com/go/v4/auth"

	"tillpoint/models"
	"tillpoint/services/staff"
)

// RegisterAdminInput carries the fields to create an admin account.
type RegisterAdminInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateAdminInput carries the editable admin identity fields.
type UpdateAdminInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminInfo is the identity view of an admin account.
type AdminInfo struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenResponse is the successful login payload.
type TokenResponse struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
	Role  string `json:"role"`
}

// StaffTokenResponse pairs the staff login token with the staff profile.
type StaffTokenResponse struct {
	Token string        `json:"token"`
	Staff *models.Staff `json:"staff"`
}

// AuthService handles account provisioning and login for admins and staff.
// Admin credentials live in Firebase; staff log in with their email and PIN.
type AuthService interface {
	RegisterAdmin(input RegisterAdminInput) (*AdminInfo, error)
	LoginAdmin(email, password string) (*TokenResponse, error)
	LoginStaff(email, pin string) (*StaffTokenResponse, error)
	ResetPassword(email string) error

	ListAdmins() ([]AdminInfo, error)
	UpdateAdmin(uid string, input UpdateAdminInput) (*AdminInfo, error)
	DeleteAdmin(uid string) error
}

// DefaultAuthService is the production AuthService.
type DefaultAuthService struct {
	Auth  *fbauth.Client
	Staff staff.StaffService
}
