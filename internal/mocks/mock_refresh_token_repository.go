package mocks

import (
	"context"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// MockRefreshTokenRepository implements domain.RefreshTokenRepository for testing
type MockRefreshTokenRepository struct {
	CreateFunc        func(ctx context.Context, token *domain.RefreshToken) error
	FindByTokenFunc   func(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteByTokenFunc func(ctx context.Context, token string) error
}

// NewMockRefreshTokenRepository creates a new MockRefreshTokenRepository with default behaviors
func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{}
}

// Create stores a refresh token
func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	// Default behavior: success
	return nil
}

// FindByToken looks up a token by value
func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	// Default behavior: not found
	return nil, domain.ErrRefreshTokenInvalid
}

// DeleteByToken removes all rows matching the token value
func (m *MockRefreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	if m.DeleteByTokenFunc != nil {
		return m.DeleteByTokenFunc(ctx, token)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.RefreshTokenRepository = (*MockRefreshTokenRepository)(nil)
