package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// RefreshTokenRepositoryImpl implements domain.RefreshTokenRepository using GORM
type RefreshTokenRepositoryImpl struct {
	db *gorm.DB
}

// DBRefreshToken represents the database model for RefreshToken
type DBRefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"uniqueIndex;size:128"`
	UserID    uint      `gorm:"index"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBRefreshToken) TableName() string {
	return "refresh_tokens"
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) domain.RefreshTokenRepository {
	return &RefreshTokenRepositoryImpl{db: db}
}

// Create implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) Create(ctx context.Context, token *domain.RefreshToken) error {
	dbToken := &DBRefreshToken{
		Token:     token.Token,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(dbToken).Error; err != nil {
		return err
	}
	token.ID = dbToken.ID
	token.CreatedAt = dbToken.CreatedAt
	return nil
}

// FindByToken implements domain.RefreshTokenRepository. Expiry is not
// checked here: expired rows may linger until a reaper removes them, and
// callers decide validity at read time.
func (r *RefreshTokenRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var dbToken DBRefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&dbToken).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrRefreshTokenInvalid
		}
		return nil, err
	}
	return &domain.RefreshToken{
		ID:        dbToken.ID,
		Token:     dbToken.Token,
		UserID:    dbToken.UserID,
		ExpiresAt: dbToken.ExpiresAt,
		CreatedAt: dbToken.CreatedAt,
	}, nil
}

// DeleteByToken implements domain.RefreshTokenRepository. Deleting a
// token that does not exist is a no-op.
func (r *RefreshTokenRepositoryImpl) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&DBRefreshToken{}).Error
}
