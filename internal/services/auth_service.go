package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// AuthServiceImpl implements domain.AuthService. It composes the
// credential store, the code and token ledgers and the social verifier
// into the externally exposed login lifecycle.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	refreshSvc  domain.RefreshTokenService
	resetSvc    domain.PasswordResetService
	socialSvc   domain.SocialVerifier
	audit       domain.AuditLogger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	refreshSvc domain.RefreshTokenService,
	resetSvc domain.PasswordResetService,
	socialSvc domain.SocialVerifier,
	audit domain.AuditLogger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		refreshSvc:  refreshSvc,
		resetSvc:    resetSvc,
		socialSvc:   socialSvc,
		audit:       audit,
	}
}

// Login implements domain.AuthService. A missing account, a non-active
// status and a wrong password all surface as ErrInvalidCredentials; the
// caller must not learn which check failed. Success means a one-time code
// was generated and delivered, not that a session exists yet.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.audit.LogEvent(domain.NewAuditEvent(domain.LoginFailureEvent).WithError(domain.ErrInvalidCredentials))
		return domain.ErrInvalidCredentials
	}

	if !user.IsActive() {
		s.audit.LogEvent(domain.NewAuditEvent(domain.LoginFailureEvent).WithUser(user.ID, user.Email).WithError(domain.ErrInvalidCredentials))
		return domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.audit.LogEvent(domain.NewAuditEvent(domain.LoginFailureEvent).WithUser(user.ID, user.Email).WithError(domain.ErrInvalidCredentials))
		return domain.ErrInvalidCredentials
	}

	if err := s.otpSvc.Issue(ctx, user.Email); err != nil {
		return err
	}

	s.audit.LogEvent(domain.NewAuditEvent(domain.OTPIssuedEvent).WithUser(user.ID, user.Email))
	return nil
}

// VerifyOTP implements domain.AuthService. A validated code finishes the
// login: an access token and a refresh token are minted independently of
// each other and returned with the public view of the user.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, email, code string) (*domain.AuthBundle, error) {
	user, err := s.otpSvc.Validate(ctx, email, code)
	if err != nil {
		s.audit.LogEvent(domain.NewAuditEvent(domain.OTPFailureEvent).WithError(err))
		return nil, err
	}

	bundle, err := s.mintSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(domain.NewAuditEvent(domain.OTPVerifiedEvent).WithUser(user.ID, user.Email))
	return bundle, nil
}

// SocialLogin implements domain.AuthService. Accounts are never
// provisioned here: an identity without a matching account fails before
// any ledger row is written.
func (s *AuthServiceImpl) SocialLogin(ctx context.Context, artifact domain.SocialArtifact) (*domain.AuthBundle, error) {
	identity, err := s.socialSvc.Verify(ctx, artifact)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSocialNotRegistered
		}
		return nil, err
	}

	if user.AvatarURL == "" && identity.AvatarURL != "" {
		if err := s.userRepo.BackfillAvatar(ctx, user.ID, identity.AvatarURL); err != nil {
			slog.Warn("failed to backfill avatar", "user_id", user.ID, "error", err)
		} else {
			user.AvatarURL = identity.AvatarURL
		}
	}

	bundle, err := s.mintSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(domain.NewAuditEvent(domain.SocialLoginEvent).WithUser(user.ID, user.Email))
	return bundle, nil
}

// Refresh implements domain.AuthService. Only a new access token is
// minted; the refresh token is not rotated and stays valid until its own
// expiry or an explicit logout.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, error) {
	user, err := s.refreshSvc.Validate(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	accessToken, err := s.tokenSvc.Generate(user)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	s.audit.LogEvent(domain.NewAuditEvent(domain.TokenRefreshEvent).WithUser(user.ID, user.Email))
	return accessToken, nil
}

// ForgotPassword implements domain.AuthService
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	if err := s.resetSvc.Request(ctx, email); err != nil {
		return err
	}
	s.audit.LogEvent(domain.NewAuditEvent(domain.ResetRequestEvent).WithUser(0, email))
	return nil
}

// ResetPassword implements domain.AuthService
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := s.resetSvc.Consume(ctx, token, newPassword); err != nil {
		s.audit.LogEvent(domain.NewAuditEvent(domain.ResetConsumedEvent).WithError(err))
		return err
	}
	s.audit.LogEvent(domain.NewAuditEvent(domain.ResetConsumedEvent))
	return nil
}

// Logout implements domain.AuthService. Revocation is idempotent, so
// logging out with an unknown or already revoked token still succeeds.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := s.refreshSvc.Revoke(ctx, refreshToken); err != nil {
		return err
	}
	s.audit.LogEvent(domain.NewAuditEvent(domain.LogoutEvent))
	return nil
}

// mintSession builds the credential pair for an authenticated user and
// stamps the last-login time. The stamp is best-effort: a failed stamp
// does not undo an otherwise valid authentication.
func (s *AuthServiceImpl) mintSession(ctx context.Context, user *domain.User) (*domain.AuthBundle, error) {
	accessToken, err := s.tokenSvc.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.refreshSvc.Issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		slog.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}

	return &domain.AuthBundle{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.View(),
	}, nil
}
