package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"

	"tillpoint/utils"
)

const (
	firebaseTimeout = 10 * time.Second
	tokenLifetime   = 24 * time.Hour

	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
	RoleStaff      = "staff"
)

// RegisterAdmin creates the admin's Firebase identity with the admin role claim.
func (s *DefaultAuthService) RegisterAdmin(input RegisterAdminInput) (*AdminInfo, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if name == "" || email == "" {
		return nil, &utils.ValidationError{Message: "admin name and email are required"}
	}
	if len(input.Password) < 8 {
		return nil, &utils.ValidationError{Message: "password must be at least 8 characters"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), firebaseTimeout)
	defer cancel()

	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(input.Password).
		DisplayName(name)
	user, err := s.Auth.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return nil, &utils.ConflictError{Message: "email already in use"}
		}
		return nil, fmt.Errorf("failed to create admin identity: %w", err)
	}

	if err := s.Auth.SetCustomUserClaims(ctx, user.UID, map[string]any{"role": RoleAdmin}); err != nil {
		return nil, fmt.Errorf("failed to set admin role claim: %w", err)
	}

	return &AdminInfo{UID: user.UID, Name: name, Email: email, Role: RoleAdmin}, nil
}

// LoginAdmin verifies the password against Firebase, checks the admin role
// claim, and issues a service token.
func (s *DefaultAuthService) LoginAdmin(email, password string) (*TokenResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, &utils.ValidationError{Message: "email and password are required"}
	}

	signIn, err := signInWithPassword(email, password)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), firebaseTimeout)
	defer cancel()
	user, err := s.Auth.GetUser(ctx, signIn.LocalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin account: %w", err)
	}

	role, _ := user.CustomClaims["role"].(string)
	if role != RoleAdmin && role != RoleSuperAdmin {
		return nil, &utils.UnauthorizedError{Message: "account is not an admin"}
	}

	token, err := utils.GenerateToken(user.UID, role, tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &TokenResponse{Token: token, UID: user.UID, Role: role}, nil
}

// LoginStaff verifies the email/PIN pair and issues a staff-role token.
func (s *DefaultAuthService) LoginStaff(email, pin string) (*StaffTokenResponse, error) {
	if email == "" || pin == "" {
		return nil, &utils.ValidationError{Message: "email and pin are required"}
	}

	st, err := s.Staff.VerifyPIN(email, pin)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(st.ID, RoleStaff, tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &StaffTokenResponse{Token: token, Staff: st}, nil
}

// ResetPassword sends Firebase's reset email. An unknown address is reported
// the same as success so the endpoint cannot be used to probe for accounts.
func (s *DefaultAuthService) ResetPassword(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return &utils.ValidationError{Message: "email is required"}
	}
	if err := sendPasswordReset(email); err != nil {
		var uerr *utils.UnauthorizedError
		if errors.As(err, &uerr) {
			return nil
		}
		return err
	}
	return nil
}

// ListAdmins walks all Firebase users and keeps those with an admin role claim.
func (s *DefaultAuthService) ListAdmins() ([]AdminInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), firebaseTimeout)
	defer cancel()

	var admins []AdminInfo
	iter := s.Auth.Users(ctx, "")
	for {
		user, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}
		role, _ := user.CustomClaims["role"].(string)
		if role != RoleAdmin && role != RoleSuperAdmin {
			continue
		}
		admins = append(admins, AdminInfo{
			UID:   user.UID,
			Name:  user.DisplayName,
			Email: user.Email,
			Role:  role,
		})
	}
	return admins, nil
}

// UpdateAdmin edits the admin's Firebase identity.
func (s *DefaultAuthService) UpdateAdmin(uid string, input UpdateAdminInput) (*AdminInfo, error) {
	params := &fbauth.UserToUpdate{}
	changed := false
	if strings.TrimSpace(input.Name) != "" {
		params = params.DisplayName(input.Name)
		changed = true
	}
	if strings.TrimSpace(input.Email) != "" {
		params = params.Email(strings.ToLower(input.Email))
		changed = true
	}
	if input.Password != "" {
		if len(input.Password) < 8 {
			return nil, &utils.ValidationError{Message: "password must be at least 8 characters"}
		}
		params = params.Password(input.Password)
		changed = true
	}
	if !changed {
		return nil, &utils.ValidationError{Message: "no updatable fields provided"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), firebaseTimeout)
	defer cancel()
	user, err := s.Auth.UpdateUser(ctx, uid, params)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil, &utils.NotFoundError{Resource: "admin", ID: uid}
		}
		return nil, fmt.Errorf("failed to update admin %s: %w", uid, err)
	}

	role, _ := user.CustomClaims["role"].(string)
	return &AdminInfo{UID: user.UID, Name: user.DisplayName, Email: user.Email, Role: role}, nil
}

// DeleteAdmin removes the admin's Firebase identity.
func (s *DefaultAuthService) DeleteAdmin(uid string) error {
	ctx, cancel := context.WithTimeout(context.Background(), firebaseTimeout)
	defer cancel()
	if err := s.Auth.DeleteUser(ctx, uid); err != nil {
		if fbauth.IsUserNotFound(err) {
			return &utils.NotFoundError{Resource: "admin", ID: uid}
		}
		return fmt.Errorf("failed to delete admin %s: %w", uid, err)
	}
	return nil
}
