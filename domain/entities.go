package domain

import "time"

// Role identifies what a user does on the platform. The auth core never
// branches on individual roles; it only carries the value as a token claim.
type Role string

const (
	RoleAdministrator   Role = "ADMINISTRATOR"
	RoleDispatcher      Role = "DISPATCHER"
	RoleNightDispatcher Role = "NIGHT_DISPATCHER"
	RoleDriver          Role = "DRIVER"
	RoleRecruiter       Role = "RECRUITER"
	RoleLeadRecruiter   Role = "LEAD_RECRUITER"
	RoleTracking        Role = "TRACKING"
	RoleNightTracking   Role = "NIGHT_TRACKING"
	RoleFleetManager    Role = "FLEET_MANAGER"
)

// AccountStatus is the lifecycle state of a user account. Only ACTIVE
// accounts may authenticate.
type AccountStatus string

const (
	StatusActive    AccountStatus = "ACTIVE"
	StatusInactive  AccountStatus = "INACTIVE"
	StatusSuspended AccountStatus = "SUSPENDED"
	StatusPending   AccountStatus = "PENDING"
)

// User represents a platform account
type User struct {
	ID           uint
	Email        string
	Name         string
	PasswordHash string `gorm:"column:password"`
	Role         Role
	Status       AccountStatus
	AvatarURL    string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// View returns the externally visible projection of the user.
// The password hash is never part of it.
func (u *User) View() *UserView {
	return &UserView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		AvatarURL: u.AvatarURL,
	}
}

// UserView is the public shape of a user returned to clients
type UserView struct {
	ID        uint          `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Role      Role          `json:"role"`
	Status    AccountStatus `json:"status"`
	AvatarURL string        `json:"avatar_url,omitempty"`
}

// OneTimeCode is a short-lived numeric code emailed after a successful
// password check. Leading zeros are significant, so the code is a string.
// The used flag only ever moves false -> true.
type OneTimeCode struct {
	ID        uint
	Email     string
	Code      string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Expired reports whether the code is past its expiry at the given instant.
func (c *OneTimeCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// RefreshToken is an opaque long-lived session credential. Rows are never
// mutated; logout deletes them and expired rows are ignored at read time.
type RefreshToken struct {
	ID        uint
	Token     string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// PasswordReset is a single-use token authorizing exactly one password
// change. At most one live (unused, unexpired) row exists per user.
type PasswordReset struct {
	ID        uint
	Token     string
	UserID    uint
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// SocialArtifact is what a client hands over after an external provider
// flow: either an authorization code to exchange, or an already issued
// provider access token.
type SocialArtifact struct {
	Provider    string
	Code        string
	AccessToken string
}

// SocialIdentity is a verified identity returned by a provider exchange
type SocialIdentity struct {
	Provider  string
	Email     string
	Name      string
	AvatarURL string
}

// TokenClaims represents the claims carried by an access token
type TokenClaims struct {
	UserID    uint   `json:"sub"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// AuthBundle is the outcome of a completed authentication
type AuthBundle struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         *UserView `json:"user"`
}
