package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&DBUser{}, &DBOneTimeCode{}, &DBRefreshToken{}, &DBPasswordReset{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, user *DBUser) *DBUser {
	t.Helper()
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestUserRepositoryImpl_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	seedUser(t, db, &DBUser{
		Email:        "alice@x.com",
		Name:         "Alice",
		PasswordHash: "hashed_secret1",
		Role:         string(domain.RoleDriver),
		Status:       string(domain.StatusActive),
	})

	user, err := repo.FindByEmail(context.Background(), "alice@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "alice@x.com" || user.Role != domain.RoleDriver || user.Status != domain.StatusActive {
		t.Errorf("unexpected user: %+v", user)
	}

	if _, err := repo.FindByEmail(context.Background(), "nobody@x.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryImpl_UpdateLastLogin(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	u := seedUser(t, db, &DBUser{Email: "alice@x.com", Status: string(domain.StatusActive)})

	at := time.Now().UTC().Truncate(time.Second)
	if err := repo.UpdateLastLogin(context.Background(), u.ID, at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.FindByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LastLoginAt == nil || !got.LastLoginAt.Equal(at) {
		t.Errorf("expected last login %v, got %v", at, got.LastLoginAt)
	}
}

func TestUserRepositoryImpl_UpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	u := seedUser(t, db, &DBUser{Email: "alice@x.com", PasswordHash: "old", Status: string(domain.StatusActive)})

	if err := repo.UpdatePassword(context.Background(), u.ID, "new-hash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := repo.FindByID(context.Background(), u.ID)
	if got.PasswordHash != "new-hash" {
		t.Errorf("expected new-hash, got %q", got.PasswordHash)
	}
}

func TestUserRepositoryImpl_BackfillAvatar(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	empty := seedUser(t, db, &DBUser{Email: "empty@x.com", Status: string(domain.StatusActive)})
	existing := seedUser(t, db, &DBUser{Email: "has@x.com", AvatarURL: "https://img.example/current.png", Status: string(domain.StatusActive)})

	if err := repo.BackfillAvatar(context.Background(), empty.ID, "https://img.example/new.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.BackfillAvatar(context.Background(), existing.ID, "https://img.example/new.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := repo.FindByID(context.Background(), empty.ID)
	if got.AvatarURL != "https://img.example/new.png" {
		t.Errorf("expected backfill on empty avatar, got %q", got.AvatarURL)
	}
	got, _ = repo.FindByID(context.Background(), existing.ID)
	if got.AvatarURL != "https://img.example/current.png" {
		t.Errorf("existing avatar must not be overwritten, got %q", got.AvatarURL)
	}
}

func TestOneTimeCodeRepositoryImpl_FindLatestValid(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOneTimeCodeRepository(db)
	ctx := context.Background()
	now := time.Now()

	// Older valid code, then a newer one with the same value.
	older := &domain.OneTimeCode{Email: "alice@x.com", Code: "123456", ExpiresAt: now.Add(time.Minute)}
	if err := repo.Create(ctx, older); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	db.Model(&DBOneTimeCode{}).Where("id = ?", older.ID).Update("created_at", now.Add(-time.Minute))

	newer := &domain.OneTimeCode{Email: "alice@x.com", Code: "123456", ExpiresAt: now.Add(time.Minute)}
	if err := repo.Create(ctx, newer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.FindLatestValid(ctx, "alice@x.com", "123456", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != newer.ID {
		t.Errorf("expected the newest row %d, got %d", newer.ID, got.ID)
	}
}

func TestOneTimeCodeRepositoryImpl_FindLatestValid_Rejections(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOneTimeCodeRepository(db)
	ctx := context.Background()
	now := time.Now()

	expired := &domain.OneTimeCode{Email: "alice@x.com", Code: "111111", ExpiresAt: now.Add(-time.Second)}
	if err := repo.Create(ctx, expired); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	used := &domain.OneTimeCode{Email: "alice@x.com", Code: "222222", ExpiresAt: now.Add(time.Minute)}
	if err := repo.Create(ctx, used); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	db.Model(&DBOneTimeCode{}).Where("id = ?", used.ID).Update("used", true)

	tests := []struct {
		name string
		code string
	}{
		{"expired code never validates", "111111"},
		{"used code never validates", "222222"},
		{"wrong code never validates", "999999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.FindLatestValid(ctx, "alice@x.com", tt.code, now); !errors.Is(err, domain.ErrCodeInvalid) {
				t.Errorf("expected ErrCodeInvalid, got %v", err)
			}
		})
	}
}

func TestOneTimeCodeRepositoryImpl_MarkUsed_SingleWinner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOneTimeCodeRepository(db)
	ctx := context.Background()

	code := &domain.OneTimeCode{Email: "alice@x.com", Code: "123456", ExpiresAt: time.Now().Add(time.Minute)}
	if err := repo.Create(ctx, code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	won, err := repo.MarkUsed(ctx, code.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !won {
		t.Fatal("first mark-used must win")
	}

	won, err = repo.MarkUsed(ctx, code.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if won {
		t.Error("second mark-used must lose")
	}
}

func TestRefreshTokenRepositoryImpl(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRefreshTokenRepository(db)
	ctx := context.Background()

	rt := &domain.RefreshToken{Token: "opaque-1", UserID: 42, ExpiresAt: time.Now().Add(time.Hour)}
	if err := repo.Create(ctx, rt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.FindByToken(ctx, "opaque-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != 42 {
		t.Errorf("expected user 42, got %d", got.UserID)
	}

	// Expired rows are still returned; validity is the caller's decision.
	expired := &domain.RefreshToken{Token: "opaque-2", UserID: 42, ExpiresAt: time.Now().Add(-time.Hour)}
	if err := repo.Create(ctx, expired); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByToken(ctx, "opaque-2"); err != nil {
		t.Errorf("expired row lookup must not fail, got %v", err)
	}

	if err := repo.DeleteByToken(ctx, "opaque-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByToken(ctx, "opaque-1"); !errors.Is(err, domain.ErrRefreshTokenInvalid) {
		t.Errorf("expected ErrRefreshTokenInvalid after delete, got %v", err)
	}
	if err := repo.DeleteByToken(ctx, "opaque-1"); err != nil {
		t.Errorf("deleting a missing token must succeed, got %v", err)
	}
}

func TestPasswordResetRepositoryImpl_DeleteByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPasswordResetRepository(db)
	ctx := context.Background()

	first := &domain.PasswordReset{Token: "tok-1", UserID: 5, ExpiresAt: time.Now().Add(time.Hour)}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.DeleteByUser(ctx, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := &domain.PasswordReset{Token: "tok-2", UserID: 5, ExpiresAt: time.Now().Add(time.Hour)}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.FindByToken(ctx, "tok-1"); !errors.Is(err, domain.ErrResetTokenInvalid) {
		t.Errorf("first token must be gone, got %v", err)
	}
	if _, err := repo.FindByToken(ctx, "tok-2"); err != nil {
		t.Errorf("second token must exist, got %v", err)
	}
}

func TestPasswordResetRepositoryImpl_Consume(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPasswordResetRepository(db)
	userRepo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, &DBUser{Email: "alice@x.com", PasswordHash: "old-hash", Status: string(domain.StatusActive)})
	reset := &domain.PasswordReset{Token: "tok-1", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	if err := repo.Create(ctx, reset); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Consume(ctx, reset.ID, user.ID, "new-hash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := userRepo.FindByID(ctx, user.ID)
	if got.PasswordHash != "new-hash" {
		t.Errorf("expected password updated, got %q", got.PasswordHash)
	}
	row, _ := repo.FindByToken(ctx, "tok-1")
	if row.UsedAt == nil {
		t.Error("expected used_at to be set")
	}

	// Second consume loses and must not touch the password again.
	if err := repo.Consume(ctx, reset.ID, user.ID, "other-hash"); !errors.Is(err, domain.ErrResetTokenUsed) {
		t.Fatalf("expected ErrResetTokenUsed, got %v", err)
	}
	got, _ = userRepo.FindByID(ctx, user.ID)
	if got.PasswordHash != "new-hash" {
		t.Errorf("password must be unchanged by the losing consume, got %q", got.PasswordHash)
	}
}
