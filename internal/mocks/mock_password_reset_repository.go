package mocks

import (
	"context"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// MockPasswordResetRepository implements domain.PasswordResetRepository for testing
type MockPasswordResetRepository struct {
	CreateFunc       func(ctx context.Context, reset *domain.PasswordReset) error
	FindByTokenFunc  func(ctx context.Context, token string) (*domain.PasswordReset, error)
	DeleteByUserFunc func(ctx context.Context, userID uint) error
	ConsumeFunc      func(ctx context.Context, resetID, userID uint, passwordHash string) error
}

// NewMockPasswordResetRepository creates a new MockPasswordResetRepository with default behaviors
func NewMockPasswordResetRepository() *MockPasswordResetRepository {
	return &MockPasswordResetRepository{}
}

// Create stores a reset token
func (m *MockPasswordResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, reset)
	}
	// Default behavior: success
	return nil
}

// FindByToken looks up a reset token by value
func (m *MockPasswordResetRepository) FindByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	// Default behavior: not found
	return nil, domain.ErrResetTokenInvalid
}

// DeleteByUser removes all reset tokens for a user
func (m *MockPasswordResetRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if m.DeleteByUserFunc != nil {
		return m.DeleteByUserFunc(ctx, userID)
	}
	// Default behavior: success
	return nil
}

// Consume atomically marks the token used and updates the password
func (m *MockPasswordResetRepository) Consume(ctx context.Context, resetID, userID uint, passwordHash string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, resetID, userID, passwordHash)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.PasswordResetRepository = (*MockPasswordResetRepository)(nil)
