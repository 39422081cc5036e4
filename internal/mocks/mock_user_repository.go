package mocks

import (
	"context"
	"time"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	FindByEmailFunc     func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc        func(ctx context.Context, id uint) (*domain.User, error)
	UpdateLastLoginFunc func(ctx context.Context, id uint, at time.Time) error
	UpdatePasswordFunc  func(ctx context.Context, id uint, passwordHash string) error
	BackfillAvatarFunc  func(ctx context.Context, id uint, url string) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// UpdateLastLogin stamps the last login time
func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	if m.UpdateLastLoginFunc != nil {
		return m.UpdateLastLoginFunc(ctx, id, at)
	}
	// Default behavior: success
	return nil
}

// UpdatePassword updates the password hash
func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	// Default behavior: success
	return nil
}

// BackfillAvatar sets the avatar URL when the user has none
func (m *MockUserRepository) BackfillAvatar(ctx context.Context, id uint, url string) error {
	if m.BackfillAvatarFunc != nil {
		return m.BackfillAvatarFunc(ctx, id, url)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
