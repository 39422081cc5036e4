package mocks

import (
	"context"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	LoginFunc          func(ctx context.Context, email, password string) error
	VerifyOTPFunc      func(ctx context.Context, email, code string) (*domain.AuthBundle, error)
	SocialLoginFunc    func(ctx context.Context, artifact domain.SocialArtifact) (*domain.AuthBundle, error)
	RefreshFunc        func(ctx context.Context, refreshToken string) (string, error)
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, token, newPassword string) error
	LogoutFunc         func(ctx context.Context, refreshToken string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Login runs the password step
func (m *MockAuthService) Login(ctx context.Context, email, password string) error {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	// Default behavior: rejected
	return domain.ErrInvalidCredentials
}

// VerifyOTP runs the code step
func (m *MockAuthService) VerifyOTP(ctx context.Context, email, code string) (*domain.AuthBundle, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, email, code)
	}
	// Default behavior: invalid
	return nil, domain.ErrCodeInvalid
}

// SocialLogin authenticates through an external provider
func (m *MockAuthService) SocialLogin(ctx context.Context, artifact domain.SocialArtifact) (*domain.AuthBundle, error) {
	if m.SocialLoginFunc != nil {
		return m.SocialLoginFunc(ctx, artifact)
	}
	// Default behavior: exchange fails
	return nil, domain.ErrProviderExchangeFailed
}

// Refresh mints a new access token
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	// Default behavior: invalid
	return "", domain.ErrRefreshTokenInvalid
}

// ForgotPassword requests a reset email
func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// ResetPassword consumes a reset token
func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, token, newPassword)
	}
	// Default behavior: success
	return nil
}

// Logout revokes a refresh token
func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
