package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// AuthHandlers binds the authentication operations to HTTP. Handlers only
// bind, delegate and translate errors; all decisions live in the service
// layer.
type AuthHandlers struct {
	authSvc  domain.AuthService
	userRepo domain.UserRepository
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, userRepo domain.UserRepository) *AuthHandlers {
	return &AuthHandlers{
		authSvc:  authSvc,
		userRepo: userRepo,
	}
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OTPVerifyRequest represents OTP verification request
type OTPVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// SocialLoginRequest represents a social login request carrying either an
// authorization code or a provider access token
type SocialLoginRequest struct {
	Provider    string `json:"provider" binding:"required"`
	Code        string `json:"code"`
	AccessToken string `json:"access_token"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ForgotPasswordRequest represents a password reset request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents a password reset consumption
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// Login handles the password step of the login flow
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		status, msg := errorResponse(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP code sent to your email"})
}

// VerifyOTP handles the code step of the login flow
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bundle, err := h.authSvc.VerifyOTP(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		status, msg := errorResponse(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, bundle)
}

// SocialLogin handles login through an external identity provider
func (h *AuthHandlers) SocialLogin(c *gin.Context) {
	var req SocialLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Code == "" && req.AccessToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "either code or access_token is required"})
		return
	}

	bundle, err := h.authSvc.SocialLogin(c.Request.Context(), domain.SocialArtifact{
		Provider:    req.Provider,
		Code:        req.Code,
		AccessToken: req.AccessToken,
	})
	if err != nil {
		status, msg := errorResponse(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, bundle)
}

// Refresh mints a new access token from a refresh token
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		status, msg := errorResponse(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// ForgotPassword requests a password reset email. The response is the
// same whether or not the account exists.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		status, msg := errorResponse(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If that account exists, a reset email has been sent"})
}

// ResetPassword consumes a reset token and sets a new password
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		status, msg := errorResponse(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}

// Logout revokes a refresh token. It reports success whether or not the
// token existed.
func (h *AuthHandlers) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		status, msg := errorResponse(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the profile of the authenticated user
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), userID.(uint))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user.View())
}

// errorResponse translates domain errors into HTTP status codes and
// client-safe messages.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrCodeInvalid):
		return http.StatusUnauthorized, domain.ErrCodeInvalid.Error()
	case errors.Is(err, domain.ErrCodeResendThrottle):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, domain.ErrCodeDeliveryFailed):
		return http.StatusBadGateway, domain.ErrCodeDeliveryFailed.Error()
	case errors.Is(err, domain.ErrRefreshTokenInvalid):
		return http.StatusUnauthorized, domain.ErrRefreshTokenInvalid.Error()
	case errors.Is(err, domain.ErrResetTokenInvalid),
		errors.Is(err, domain.ErrResetTokenExpired),
		errors.Is(err, domain.ErrResetTokenUsed):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrProviderTokenMalformed):
		return http.StatusBadRequest, domain.ErrProviderTokenMalformed.Error()
	case errors.Is(err, domain.ErrProviderExchangeFailed):
		return http.StatusBadGateway, domain.ErrProviderExchangeFailed.Error()
	case errors.Is(err, domain.ErrSocialNotRegistered):
		return http.StatusForbidden, domain.ErrSocialNotRegistered.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
