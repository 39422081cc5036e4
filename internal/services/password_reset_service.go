package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// PasswordResetServiceImpl implements domain.PasswordResetService
type PasswordResetServiceImpl struct {
	resetRepo   domain.PasswordResetRepository
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	mailSvc     domain.MailService
	ttl         time.Duration
	baseURL     string
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(resetRepo domain.PasswordResetRepository, userRepo domain.UserRepository, passwordSvc domain.PasswordService, mailSvc domain.MailService, ttl time.Duration, baseURL string) domain.PasswordResetService {
	return &PasswordResetServiceImpl{
		resetRepo:   resetRepo,
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		mailSvc:     mailSvc,
		ttl:         ttl,
		baseURL:     baseURL,
	}
}

// Request implements domain.PasswordResetService. Unknown emails succeed
// silently so the endpoint cannot be used to enumerate accounts. Prior
// tokens are deleted first, keeping at most one live reset per user.
func (s *PasswordResetServiceImpl) Request(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	if err := s.resetRepo.DeleteByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to invalidate previous reset tokens: %w", err)
	}

	reset := &domain.PasswordReset{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.resetRepo.Create(ctx, reset); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, reset.Token)
	body := fmt.Sprintf("<p>Hello %s,</p><p>Follow <a href=%q>this link</a> to reset your password. The link is valid for %d minutes and can be used once.</p>",
		user.Name, link, int(s.ttl.Minutes()))
	if err := s.mailSvc.SendHTML(user.Email, "Reset your password", body); err != nil {
		return fmt.Errorf("failed to deliver reset email: %w", err)
	}

	return nil
}

// Consume implements domain.PasswordResetService. The password update and
// the used-at marking are one atomic unit inside the repository; a token
// can authorize exactly one password change.
func (s *PasswordResetServiceImpl) Consume(ctx context.Context, token, newPassword string) error {
	reset, err := s.resetRepo.FindByToken(ctx, token)
	if err != nil {
		return err
	}

	if time.Now().After(reset.ExpiresAt) {
		return domain.ErrResetTokenExpired
	}
	if reset.UsedAt != nil {
		return domain.ErrResetTokenUsed
	}

	hash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.resetRepo.Consume(ctx, reset.ID, reset.UserID, hash)
}
