package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// OTPServiceImpl implements domain.OTPService. Codes live in the durable
// store; redis only carries the resend throttle.
type OTPServiceImpl struct {
	codeRepo    domain.OneTimeCodeRepository
	userRepo    domain.UserRepository
	mailSvc     domain.MailService
	redisClient *redis.Client
	config      OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	ResendWindow time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(codeRepo domain.OneTimeCodeRepository, userRepo domain.UserRepository, mailSvc domain.MailService, redisClient *redis.Client, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		codeRepo:    codeRepo,
		userRepo:    userRepo,
		mailSvc:     mailSvc,
		redisClient: redisClient,
		config:      config,
	}
}

// Issue implements domain.OTPService. It generates a random numeric code,
// persists it with its expiry and emails it. Delivery failure is a hard
// failure: a code the user never received must not look issued.
func (s *OTPServiceImpl) Issue(ctx context.Context, email string) error {
	resendKey := "otp:res:" + email

	ttl, err := s.redisClient.TTL(ctx, resendKey).Result()
	if err != nil {
		return fmt.Errorf("failed to check resend throttle: %w", err)
	}
	if ttl > 0 {
		return fmt.Errorf("%w: retry in %d seconds", domain.ErrCodeResendThrottle, int(ttl.Seconds()))
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	otc := &domain.OneTimeCode{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.config.TTL),
	}
	if err := s.codeRepo.Create(ctx, otc); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}

	subject := "Your login code"
	body := fmt.Sprintf("<p>Your one-time login code is <b>%s</b>. It expires in %d minutes.</p>",
		code, int(s.config.TTL.Minutes()))
	if err := s.mailSvc.SendHTML(email, subject, body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCodeDeliveryFailed, err)
	}

	if err := s.redisClient.Set(ctx, resendKey, 1, s.config.ResendWindow).Err(); err != nil {
		return fmt.Errorf("failed to set resend throttle: %w", err)
	}

	return nil
}

// Validate implements domain.OTPService. The newest valid row wins, and
// marking it used is conditional so only one of two concurrent calls with
// the same code succeeds.
func (s *OTPServiceImpl) Validate(ctx context.Context, email, code string) (*domain.User, error) {
	otc, err := s.codeRepo.FindLatestValid(ctx, email, code, time.Now())
	if err != nil {
		return nil, err
	}

	won, err := s.codeRepo.MarkUsed(ctx, otc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark code used: %w", err)
	}
	if !won {
		// Another request consumed this code first.
		return nil, domain.ErrCodeInvalid
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			slog.Error("code validated but account row is missing", "email", email, "code_id", otc.ID)
			return nil, domain.ErrUserVanished
		}
		return nil, err
	}

	return user, nil
}

// generateSecureCode generates a cryptographically secure numeric code.
// Leading zeros are kept, so "012345" is a valid code.
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
