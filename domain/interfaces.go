package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations. Lookups return
// ErrUserNotFound; callers decide whether that is worth reporting.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	// BackfillAvatar sets the avatar URL only when the user has none.
	BackfillAvatar(ctx context.Context, id uint, url string) error
}

// OneTimeCodeRepository defines one-time code persistence
type OneTimeCodeRepository interface {
	Create(ctx context.Context, code *OneTimeCode) error
	// FindLatestValid returns the newest unused, unexpired row matching
	// email and code, or ErrCodeInvalid.
	FindLatestValid(ctx context.Context, email, code string, now time.Time) (*OneTimeCode, error)
	// MarkUsed flips the used flag conditionally on it still being false.
	// Returns false when another caller already consumed the code.
	MarkUsed(ctx context.Context, id uint) (bool, error)
}

// RefreshTokenRepository defines refresh token persistence
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	FindByToken(ctx context.Context, token string) (*RefreshToken, error)
	// DeleteByToken removes every row carrying the token value.
	// Deleting an unknown token is not an error.
	DeleteByToken(ctx context.Context, token string) error
}

// PasswordResetRepository defines password reset token persistence
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *PasswordReset) error
	FindByToken(ctx context.Context, token string) (*PasswordReset, error)
	DeleteByUser(ctx context.Context, userID uint) error
	// Consume marks the reset used and updates the user's password hash in
	// one transaction. Returns ErrResetTokenUsed when the token was already
	// consumed by a concurrent call.
	Consume(ctx context.Context, resetID, userID uint, passwordHash string) error
}

// AuthService defines the externally exposed authentication operations
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	VerifyOTP(ctx context.Context, email, code string) (*AuthBundle, error)
	SocialLogin(ctx context.Context, artifact SocialArtifact) (*AuthBundle, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	Logout(ctx context.Context, refreshToken string) error
}

// OTPService defines one-time code operations
type OTPService interface {
	Issue(ctx context.Context, email string) error
	Validate(ctx context.Context, email, code string) (*User, error)
}

// RefreshTokenService defines the refresh token ledger operations
type RefreshTokenService interface {
	Issue(ctx context.Context, userID uint) (string, error)
	Validate(ctx context.Context, token string) (*User, error)
	Revoke(ctx context.Context, token string) error
}

// PasswordResetService defines the password reset flow
type PasswordResetService interface {
	// Request silently succeeds for unknown emails.
	Request(ctx context.Context, email string) error
	Consume(ctx context.Context, token, newPassword string) error
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines access token operations
type TokenService interface {
	Generate(user *User) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// MailService defines outbound email delivery
type MailService interface {
	SendHTML(to, subject, html string) error
}

// SocialVerifier exchanges a provider authorization artifact for a
// verified identity. It never persists provider tokens.
type SocialVerifier interface {
	Verify(ctx context.Context, artifact SocialArtifact) (*SocialIdentity, error)
}
