package mocks

import (
	"context"
	"time"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// MockOneTimeCodeRepository implements domain.OneTimeCodeRepository for testing
type MockOneTimeCodeRepository struct {
	CreateFunc          func(ctx context.Context, code *domain.OneTimeCode) error
	FindLatestValidFunc func(ctx context.Context, email, code string, now time.Time) (*domain.OneTimeCode, error)
	MarkUsedFunc        func(ctx context.Context, id uint) (bool, error)
}

// NewMockOneTimeCodeRepository creates a new MockOneTimeCodeRepository with default behaviors
func NewMockOneTimeCodeRepository() *MockOneTimeCodeRepository {
	return &MockOneTimeCodeRepository{}
}

// Create stores a one-time code
func (m *MockOneTimeCodeRepository) Create(ctx context.Context, code *domain.OneTimeCode) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, code)
	}
	// Default behavior: success
	return nil
}

// FindLatestValid returns the newest valid matching code
func (m *MockOneTimeCodeRepository) FindLatestValid(ctx context.Context, email, code string, now time.Time) (*domain.OneTimeCode, error) {
	if m.FindLatestValidFunc != nil {
		return m.FindLatestValidFunc(ctx, email, code, now)
	}
	// Default behavior: no valid code
	return nil, domain.ErrCodeInvalid
}

// MarkUsed conditionally flips the used flag
func (m *MockOneTimeCodeRepository) MarkUsed(ctx context.Context, id uint) (bool, error) {
	if m.MarkUsedFunc != nil {
		return m.MarkUsedFunc(ctx, id)
	}
	// Default behavior: this caller wins
	return true, nil
}

// Compile-time interface compliance verification
var _ domain.OneTimeCodeRepository = (*MockOneTimeCodeRepository)(nil)
