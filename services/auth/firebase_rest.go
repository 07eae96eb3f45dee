package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tillpoint/config"
	"tillpoint/utils"
)

// The Admin SDK cannot verify passwords, so password logins and reset emails
// go through the Identity Toolkit REST API with the web API key.

const identityToolkitBase = "https://identitytoolkit.googleapis.com/v1"

var restClient = &http.Client{Timeout: 15 * time.Second}

type signInResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

type restErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func callIdentityToolkit(endpoint string, payload any, out any) error {
	apiKey := config.AppConfig.FirebaseAPIKey
	if apiKey == "" {
		return fmt.Errorf("firebase api key not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode identity request: %w", err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", identityToolkitBase, endpoint, apiKey)
	resp, err := restClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("identity toolkit request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read identity response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var restErr restErrorResponse
		if json.Unmarshal(data, &restErr) == nil && restErr.Error.Message != "" {
			switch restErr.Error.Message {
			case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED":
				return &utils.UnauthorizedError{Message: "invalid email or password"}
			}
			return fmt.Errorf("identity toolkit error: %s", restErr.Error.Message)
		}
		return fmt.Errorf("identity toolkit returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode identity response: %w", err)
		}
	}
	return nil
}

// signInWithPassword verifies an email/password pair and returns the Firebase UID.
func signInWithPassword(email, password string) (*signInResponse, error) {
	var out signInResponse
	err := callIdentityToolkit("accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// sendPasswordReset triggers Firebase's password reset email.
func sendPasswordReset(email string) error {
	return callIdentityToolkit("accounts:sendOobCode", map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}, nil)
}
