package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// RefreshTokenServiceImpl implements domain.RefreshTokenService
type RefreshTokenServiceImpl struct {
	tokenRepo domain.RefreshTokenRepository
	userRepo  domain.UserRepository
	ttl       time.Duration
}

// NewRefreshTokenService creates a new refresh token service
func NewRefreshTokenService(tokenRepo domain.RefreshTokenRepository, userRepo domain.UserRepository, ttl time.Duration) domain.RefreshTokenService {
	return &RefreshTokenServiceImpl{
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
		ttl:       ttl,
	}
}

// Issue implements domain.RefreshTokenService. Every successful
// authentication creates its own token, so one account can hold several
// live sessions at once.
func (s *RefreshTokenServiceImpl) Issue(ctx context.Context, userID uint) (string, error) {
	token, err := generateOpaqueToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	rt := &domain.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.tokenRepo.Create(ctx, rt); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return token, nil
}

// Validate implements domain.RefreshTokenService. Expiry is decided here
// at read time; an expired row that still exists in storage is just as
// invalid as a missing one.
func (s *RefreshTokenServiceImpl) Validate(ctx context.Context, token string) (*domain.User, error) {
	rt, err := s.tokenRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if time.Now().After(rt.ExpiresAt) {
		return nil, domain.ErrRefreshTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, rt.UserID)
	if err != nil {
		return nil, domain.ErrRefreshTokenInvalid
	}

	return user, nil
}

// Revoke implements domain.RefreshTokenService. Revoking a token that
// does not exist succeeds, so logout is idempotent.
func (s *RefreshTokenServiceImpl) Revoke(ctx context.Context, token string) error {
	return s.tokenRepo.DeleteByToken(ctx, token)
}

// generateOpaqueToken returns a high-entropy random token value.
func generateOpaqueToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
