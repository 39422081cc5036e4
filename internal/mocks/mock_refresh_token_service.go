package mocks

import (
	"context"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// MockRefreshTokenService implements domain.RefreshTokenService for testing
type MockRefreshTokenService struct {
	IssueFunc    func(ctx context.Context, userID uint) (string, error)
	ValidateFunc func(ctx context.Context, token string) (*domain.User, error)
	RevokeFunc   func(ctx context.Context, token string) error
}

// NewMockRefreshTokenService creates a new MockRefreshTokenService with default behaviors
func NewMockRefreshTokenService() *MockRefreshTokenService {
	return &MockRefreshTokenService{}
}

// Issue creates a refresh token for a user
func (m *MockRefreshTokenService) Issue(ctx context.Context, userID uint) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, userID)
	}
	// Default behavior: stable fake token
	return "refresh_token", nil
}

// Validate resolves a refresh token to its user
func (m *MockRefreshTokenService) Validate(ctx context.Context, token string) (*domain.User, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, token)
	}
	// Default behavior: invalid
	return nil, domain.ErrRefreshTokenInvalid
}

// Revoke deletes a refresh token
func (m *MockRefreshTokenService) Revoke(ctx context.Context, token string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, token)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.RefreshTokenService = (*MockRefreshTokenService)(nil)
