package mocks

import (
	"context"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// MockPasswordResetService implements domain.PasswordResetService for testing
type MockPasswordResetService struct {
	RequestFunc func(ctx context.Context, email string) error
	ConsumeFunc func(ctx context.Context, token, newPassword string) error
}

// NewMockPasswordResetService creates a new MockPasswordResetService with default behaviors
func NewMockPasswordResetService() *MockPasswordResetService {
	return &MockPasswordResetService{}
}

// Request starts a password reset
func (m *MockPasswordResetService) Request(ctx context.Context, email string) error {
	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// Consume finishes a password reset
func (m *MockPasswordResetService) Consume(ctx context.Context, token, newPassword string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, token, newPassword)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.PasswordResetService = (*MockPasswordResetService)(nil)
