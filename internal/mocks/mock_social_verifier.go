package mocks

import (
	"context"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// MockSocialVerifier implements domain.SocialVerifier for testing
type MockSocialVerifier struct {
	VerifyFunc func(ctx context.Context, artifact domain.SocialArtifact) (*domain.SocialIdentity, error)
}

// NewMockSocialVerifier creates a new MockSocialVerifier with default behaviors
func NewMockSocialVerifier() *MockSocialVerifier {
	return &MockSocialVerifier{}
}

// Verify exchanges an artifact for an identity
func (m *MockSocialVerifier) Verify(ctx context.Context, artifact domain.SocialArtifact) (*domain.SocialIdentity, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, artifact)
	}
	// Default behavior: exchange fails
	return nil, domain.ErrProviderExchangeFailed
}

// Compile-time interface compliance verification
var _ domain.SocialVerifier = (*MockSocialVerifier)(nil)
