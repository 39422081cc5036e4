package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// OneTimeCodeRepositoryImpl implements domain.OneTimeCodeRepository using GORM
type OneTimeCodeRepositoryImpl struct {
	db *gorm.DB
}

// DBOneTimeCode represents the database model for OneTimeCode
type DBOneTimeCode struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"index;size:255"`
	Code      string    `gorm:"size:16"`
	ExpiresAt time.Time `gorm:"index"`
	Used      bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBOneTimeCode) TableName() string {
	return "one_time_codes"
}

// NewOneTimeCodeRepository creates a new one-time code repository
func NewOneTimeCodeRepository(db *gorm.DB) domain.OneTimeCodeRepository {
	return &OneTimeCodeRepositoryImpl{db: db}
}

// Create implements domain.OneTimeCodeRepository
func (r *OneTimeCodeRepositoryImpl) Create(ctx context.Context, code *domain.OneTimeCode) error {
	dbCode := &DBOneTimeCode{
		Email:     code.Email,
		Code:      code.Code,
		ExpiresAt: code.ExpiresAt,
		Used:      code.Used,
	}
	if err := r.db.WithContext(ctx).Create(dbCode).Error; err != nil {
		return err
	}
	code.ID = dbCode.ID
	code.CreatedAt = dbCode.CreatedAt
	return nil
}

// FindLatestValid implements domain.OneTimeCodeRepository. Several codes
// may be outstanding for one email; the newest unused, unexpired match
// wins.
func (r *OneTimeCodeRepositoryImpl) FindLatestValid(ctx context.Context, email, code string, now time.Time) (*domain.OneTimeCode, error) {
	var dbCode DBOneTimeCode
	err := r.db.WithContext(ctx).
		Where("email = ? AND code = ? AND used = ? AND expires_at > ?", email, code, false, now).
		Order("created_at DESC").
		First(&dbCode).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrCodeInvalid
		}
		return nil, err
	}
	return &domain.OneTimeCode{
		ID:        dbCode.ID,
		Email:     dbCode.Email,
		Code:      dbCode.Code,
		ExpiresAt: dbCode.ExpiresAt,
		Used:      dbCode.Used,
		CreatedAt: dbCode.CreatedAt,
	}, nil
}

// MarkUsed implements domain.OneTimeCodeRepository. The UPDATE is
// conditioned on used still being false, so two concurrent validations of
// the same code resolve to exactly one winner.
func (r *OneTimeCodeRepositoryImpl) MarkUsed(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&DBOneTimeCode{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
