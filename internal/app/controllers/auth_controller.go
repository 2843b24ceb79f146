// Package controllers holds the gin HTTP handlers.
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hassy/readcycle/internal/app/models/dto"
	"github.com/hassy/readcycle/internal/app/services"
	"github.com/hassy/readcycle/internal/middleware"
)

// AuthController serves the authentication and account endpoints.
type AuthController struct {
	auth         *services.AuthService
	cookieName   string
	cookieSecure bool
}

// NewAuthController creates an auth controller.
func NewAuthController(auth *services.AuthService, cookieName string, cookieSecure bool) *AuthController {
	return &AuthController{auth: auth, cookieName: cookieName, cookieSecure: cookieSecure}
}

func (ac *AuthController) setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ac.cookieName, token, int(ttl.Seconds()), "/", "", ac.cookieSecure, true)
}

func (ac *AuthController) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ac.cookieName, "", -1, "/", "", ac.cookieSecure, true)
}

// Register handles POST /auth/register.
func (ac *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	user, err := ac.auth.Register(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created. Check your email for the verification code.",
		"user":    user,
	})
}

// VerifyAccount handles POST /auth/verify-account.
func (ac *AuthController) VerifyAccount(c *gin.Context) {
	var req dto.VerifyAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	user, token, err := ac.auth.VerifyAccount(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	ac.setSessionCookie(c, token, ac.auth.Sessions().TTL())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account verified",
		"user":    user,
	})
}

// ResendOTP handles POST /auth/resend-otp.
func (ac *AuthController) ResendOTP(c *gin.Context) {
	var req dto.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ac.auth.ResendOTP(c.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification code re-sent"})
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	user, token, err := ac.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	ac.setSessionCookie(c, token, ac.auth.Sessions().TTL())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged in",
		"user":    user,
	})
}

// CheckAuth handles GET /auth/check-auth.
func (ac *AuthController) CheckAuth(c *gin.Context) {
	user, err := ac.auth.CheckAuth(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateUser handles POST /auth/update-user.
func (ac *AuthController) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	user, err := ac.auth.UpdateUser(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated",
		"user":    user,
	})
}

// ChangePassword handles POST /auth/change-password.
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	err := ac.auth.ChangePassword(c.Request.Context(), middleware.UserID(c),
		req.CurrentPassword, req.NewPassword)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed"})
}

// RequestPasswordChange handles POST /auth/request-password-change.
func (ac *AuthController) RequestPasswordChange(c *gin.Context) {
	var req dto.RequestPasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ac.auth.RequestPasswordChange(c.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset link sent"})
}

// ChangePasswordWithToken handles POST /auth/change-password-with-token.
func (ac *AuthController) ChangePasswordWithToken(c *gin.Context) {
	var req dto.ChangePasswordWithTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	err := ac.auth.ChangePasswordWithToken(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed"})
}

// UploadProfilePicture handles POST /auth/upload-profile-picture.
func (ac *AuthController) UploadProfilePicture(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.CodeValidationFailed, "avatar file is required", nil))
		return
	}

	user, err := ac.auth.UploadProfilePicture(c.Request.Context(), middleware.UserID(c), file)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile picture updated",
		"user":    user,
	})
}

// Logout handles GET /auth/logout.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.auth.Logout(c.Request.Context(), middleware.UserID(c)); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	ac.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

// DeleteAccount handles POST /auth/delete-account.
func (ac *AuthController) DeleteAccount(c *gin.Context) {
	if err := ac.auth.DeleteAccount(c.Request.Context(), middleware.UserID(c)); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	ac.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted"})
}
