package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
	"github.com/tarzan-1984/odyssea-beckend-sub001/internal/mocks"
)

func newOTPServiceForTest(t *testing.T) (domain.OTPService, *mocks.MockOneTimeCodeRepository, *mocks.MockUserRepository, *mocks.MockMailService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	codeRepo := mocks.NewMockOneTimeCodeRepository()
	userRepo := mocks.NewMockUserRepository()
	mailSvc := mocks.NewMockMailService()

	config := OTPConfig{
		Length:       6,
		TTL:          5 * time.Minute,
		ResendWindow: 60 * time.Second,
	}

	svc := NewOTPService(codeRepo, userRepo, mailSvc, redisClient, config)
	return svc, codeRepo, userRepo, mailSvc, mr
}

func TestOTPServiceImpl_Issue(t *testing.T) {
	svc, codeRepo, _, mailSvc, mr := newOTPServiceForTest(t)

	var stored *domain.OneTimeCode
	codeRepo.CreateFunc = func(ctx context.Context, code *domain.OneTimeCode) error {
		code.ID = 1
		stored = code
		return nil
	}

	if err := svc.Issue(context.Background(), "alice@x.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored == nil {
		t.Fatal("expected a code row to be created")
	}
	if len(stored.Code) != 6 {
		t.Errorf("expected 6-digit code, got %q", stored.Code)
	}
	for _, c := range stored.Code {
		if c < '0' || c > '9' {
			t.Errorf("expected numeric code, got %q", stored.Code)
		}
	}
	if stored.Used {
		t.Error("new code must not be marked used")
	}
	until := time.Until(stored.ExpiresAt)
	if until < 4*time.Minute || until > 5*time.Minute {
		t.Errorf("expected expiry about 5 minutes out, got %v", until)
	}

	sent := mailSvc.LastSent()
	if sent == nil {
		t.Fatal("expected a delivery")
	}
	if sent.To != "alice@x.com" {
		t.Errorf("expected delivery to alice@x.com, got %s", sent.To)
	}

	if !mr.Exists("otp:res:alice@x.com") {
		t.Error("expected resend throttle key to be set")
	}
}

func TestOTPServiceImpl_Issue_Throttled(t *testing.T) {
	svc, _, _, mailSvc, _ := newOTPServiceForTest(t)

	if err := svc.Issue(context.Background(), "alice@x.com"); err != nil {
		t.Fatalf("first issue failed: %v", err)
	}

	err := svc.Issue(context.Background(), "alice@x.com")
	if !errors.Is(err, domain.ErrCodeResendThrottle) {
		t.Fatalf("expected ErrCodeResendThrottle, got %v", err)
	}
	if len(mailSvc.Sent) != 1 {
		t.Errorf("expected exactly one delivery, got %d", len(mailSvc.Sent))
	}
}

func TestOTPServiceImpl_Issue_DeliveryFailure(t *testing.T) {
	svc, _, _, mailSvc, mr := newOTPServiceForTest(t)

	mailSvc.SendHTMLFunc = func(to, subject, html string) error {
		return fmt.Errorf("smtp connection refused")
	}

	err := svc.Issue(context.Background(), "alice@x.com")
	if !errors.Is(err, domain.ErrCodeDeliveryFailed) {
		t.Fatalf("expected ErrCodeDeliveryFailed, got %v", err)
	}

	// A failed delivery must not start the resend window.
	if mr.Exists("otp:res:alice@x.com") {
		t.Error("throttle must not be set when delivery fails")
	}
}

func TestOTPServiceImpl_Validate(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(codeRepo *mocks.MockOneTimeCodeRepository, userRepo *mocks.MockUserRepository)
		expectedError error
		expectUser    bool
	}{
		{
			name: "valid code returns the user",
			setupMocks: func(codeRepo *mocks.MockOneTimeCodeRepository, userRepo *mocks.MockUserRepository) {
				codeRepo.FindLatestValidFunc = func(ctx context.Context, email, code string, now time.Time) (*domain.OneTimeCode, error) {
					return &domain.OneTimeCode{ID: 7, Email: email, Code: code, ExpiresAt: now.Add(time.Minute)}, nil
				}
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return &domain.User{ID: 1, Email: email, Status: domain.StatusActive}, nil
				}
			},
			expectedError: nil,
			expectUser:    true,
		},
		{
			name:          "no valid row fails",
			setupMocks:    func(codeRepo *mocks.MockOneTimeCodeRepository, userRepo *mocks.MockUserRepository) {},
			expectedError: domain.ErrCodeInvalid,
		},
		{
			name: "losing the mark-used race fails",
			setupMocks: func(codeRepo *mocks.MockOneTimeCodeRepository, userRepo *mocks.MockUserRepository) {
				codeRepo.FindLatestValidFunc = func(ctx context.Context, email, code string, now time.Time) (*domain.OneTimeCode, error) {
					return &domain.OneTimeCode{ID: 7, Email: email, Code: code, ExpiresAt: now.Add(time.Minute)}, nil
				}
				codeRepo.MarkUsedFunc = func(ctx context.Context, id uint) (bool, error) {
					return false, nil
				}
			},
			expectedError: domain.ErrCodeInvalid,
		},
		{
			name: "vanished user is a distinct failure",
			setupMocks: func(codeRepo *mocks.MockOneTimeCodeRepository, userRepo *mocks.MockUserRepository) {
				codeRepo.FindLatestValidFunc = func(ctx context.Context, email, code string, now time.Time) (*domain.OneTimeCode, error) {
					return &domain.OneTimeCode{ID: 7, Email: email, Code: code, ExpiresAt: now.Add(time.Minute)}, nil
				}
				// userRepo default: not found
			},
			expectedError: domain.ErrUserVanished,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, codeRepo, userRepo, _, _ := newOTPServiceForTest(t)
			tt.setupMocks(codeRepo, userRepo)

			user, err := svc.Validate(context.Background(), "alice@x.com", "123456")

			if !errors.Is(err, tt.expectedError) {
				t.Errorf("expected error %v, got %v", tt.expectedError, err)
			}
			if tt.expectUser && user == nil {
				t.Error("expected a user")
			}
			if !tt.expectUser && user != nil {
				t.Error("expected no user")
			}
		})
	}
}

// Two concurrent validations of the same code must resolve to exactly one
// winner: the conditional mark-used update is the arbiter.
func TestOTPServiceImpl_Validate_ConcurrentSingleWinner(t *testing.T) {
	svc, codeRepo, userRepo, _, _ := newOTPServiceForTest(t)

	codeRepo.FindLatestValidFunc = func(ctx context.Context, email, code string, now time.Time) (*domain.OneTimeCode, error) {
		return &domain.OneTimeCode{ID: 7, Email: email, Code: code, ExpiresAt: now.Add(time.Minute)}, nil
	}

	var mu sync.Mutex
	used := false
	codeRepo.MarkUsedFunc = func(ctx context.Context, id uint) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		if used {
			return false, nil
		}
		used = true
		return true, nil
	}
	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: 1, Email: email, Status: domain.StatusActive}, nil
	}

	const callers = 2
	results := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Validate(context.Background(), "alice@x.com", "123456")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, failures := 0, 0
	for err := range results {
		if err == nil {
			successes++
		} else if errors.Is(err, domain.ErrCodeInvalid) {
			failures++
		} else {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("expected exactly one winner, got %d", successes)
	}
	if failures != callers-1 {
		t.Errorf("expected %d losers, got %d", callers-1, failures)
	}
}
