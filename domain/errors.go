package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials deliberately covers "no such account", "wrong
	// password" and "account not active" so callers cannot probe which
	// accounts exist or in what state they are.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// One-time code errors
var (
	ErrCodeInvalid        = errors.New("invalid or expired code")
	ErrCodeDeliveryFailed = errors.New("failed to deliver one-time code")
	ErrCodeResendThrottle = errors.New("code recently sent")
	// ErrUserVanished means a code validated but its account row is gone.
	// Referential-integrity violation: logged, never retried by the user.
	ErrUserVanished = errors.New("user record vanished after code validation")
)

// Refresh token errors
var (
	ErrRefreshTokenInvalid = errors.New("invalid or expired refresh token")
)

// Password reset errors
var (
	ErrResetTokenInvalid = errors.New("invalid reset token")
	ErrResetTokenExpired = errors.New("reset token has expired")
	ErrResetTokenUsed    = errors.New("reset token already used")
)

// Social login errors
var (
	ErrProviderExchangeFailed = errors.New("provider token exchange failed")
	ErrProviderTokenMalformed = errors.New("malformed provider token")
	ErrSocialNotRegistered    = errors.New("no account registered for this identity")
)

// Access token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)
