package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// PasswordResetRepositoryImpl implements domain.PasswordResetRepository using GORM
type PasswordResetRepositoryImpl struct {
	db *gorm.DB
}

// DBPasswordReset represents the database model for PasswordReset
type DBPasswordReset struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"uniqueIndex;size:128"`
	UserID    uint      `gorm:"index"`
	ExpiresAt time.Time `gorm:"index"`
	UsedAt    *time.Time
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBPasswordReset) TableName() string {
	return "password_resets"
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(db *gorm.DB) domain.PasswordResetRepository {
	return &PasswordResetRepositoryImpl{db: db}
}

// Create implements domain.PasswordResetRepository
func (r *PasswordResetRepositoryImpl) Create(ctx context.Context, reset *domain.PasswordReset) error {
	dbReset := &DBPasswordReset{
		Token:     reset.Token,
		UserID:    reset.UserID,
		ExpiresAt: reset.ExpiresAt,
		UsedAt:    reset.UsedAt,
	}
	if err := r.db.WithContext(ctx).Create(dbReset).Error; err != nil {
		return err
	}
	reset.ID = dbReset.ID
	reset.CreatedAt = dbReset.CreatedAt
	return nil
}

// FindByToken implements domain.PasswordResetRepository
func (r *PasswordResetRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	var dbReset DBPasswordReset
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&dbReset).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, err
	}
	return &domain.PasswordReset{
		ID:        dbReset.ID,
		Token:     dbReset.Token,
		UserID:    dbReset.UserID,
		ExpiresAt: dbReset.ExpiresAt,
		UsedAt:    dbReset.UsedAt,
		CreatedAt: dbReset.CreatedAt,
	}, nil
}

// DeleteByUser implements domain.PasswordResetRepository. Removing every
// prior token keeps at most one live reset per user.
func (r *PasswordResetRepositoryImpl) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&DBPasswordReset{}).Error
}

// Consume implements domain.PasswordResetRepository. The used_at marking
// and the password update commit or roll back together; the marking is
// conditioned on used_at still being NULL so a concurrent consume of the
// same token loses with ErrResetTokenUsed and leaves the password alone.
func (r *PasswordResetRepositoryImpl) Consume(ctx context.Context, resetID, userID uint, passwordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&DBPasswordReset{}).
			Where("id = ? AND used_at IS NULL", resetID).
			Update("used_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrResetTokenUsed
		}
		return tx.Model(&DBUser{}).Where("id = ?", userID).Update("password", passwordHash).Error
	})
}
