package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tillpoint/middleware"
	"tillpoint/services/auth"
	"tillpoint/utils"
)

// AuthHandler exposes login, registration, and admin account management.
type AuthHandler struct {
	AuthSvc auth.AuthService
	Logger  *zap.Logger
}

// RegisterAdmin handles POST /auth/register (superadmin only).
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var body auth.RegisterAdminInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	info, err := h.AuthSvc.RegisterAdmin(body)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

// LoginAdmin handles POST /auth/login.
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	resp, err := h.AuthSvc.LoginAdmin(body.Email, body.Password)
	if err != nil {
		var uerr *utils.UnauthorizedError
		if errors.As(err, &uerr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": uerr.Message})
			return
		}
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LoginStaff handles POST /auth/staff/login.
func (h *AuthHandler) LoginStaff(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required"`
		PIN   string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	resp, err := h.AuthSvc.LoginStaff(body.Email, body.PIN)
	if err != nil {
		var uerr *utils.UnauthorizedError
		if errors.As(err, &uerr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": uerr.Message})
			return
		}
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /auth/logout by revoking the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no token to revoke"})
		return
	}
	if err := utils.BlacklistToken(tokenString); err != nil {
		h.Logger.Error("Logout: failed to blacklist token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}
	if err := h.AuthSvc.ResetPassword(body.Email); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password reset email sent if the account exists"})
}

// ListAdmins handles GET /auth/admins (superadmin only).
func (h *AuthHandler) ListAdmins(c *gin.Context) {
	admins, err := h.AuthSvc.ListAdmins()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, admins)
}

// UpdateAdmin handles PUT /auth/admins/:uid (superadmin only).
func (h *AuthHandler) UpdateAdmin(c *gin.Context) {
	var body auth.UpdateAdminInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	info, err := h.AuthSvc.UpdateAdmin(c.Param("uid"), body)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// DeleteAdmin handles DELETE /auth/admins/:uid (superadmin only).
func (h *AuthHandler) DeleteAdmin(c *gin.Context) {
	if err := h.AuthSvc.DeleteAdmin(c.Param("uid")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "admin deleted"})
}

// UpdateMyProfile handles PUT /auth/me for the logged-in admin.
func (h *AuthHandler) UpdateMyProfile(c *gin.Context) {
	var body auth.UpdateAdminInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	info, err := h.AuthSvc.UpdateAdmin(c.GetString(middleware.ContextUserID), body)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, info)
}
