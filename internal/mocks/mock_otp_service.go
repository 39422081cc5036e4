package mocks

import (
	"context"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	IssueFunc    func(ctx context.Context, email string) error
	ValidateFunc func(ctx context.Context, email, code string) (*domain.User, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue generates and delivers a one-time code
func (m *MockOTPService) Issue(ctx context.Context, email string) error {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// Validate consumes a one-time code
func (m *MockOTPService) Validate(ctx context.Context, email, code string) (*domain.User, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, email, code)
	}
	// Default behavior: invalid
	return nil, domain.ErrCodeInvalid
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
