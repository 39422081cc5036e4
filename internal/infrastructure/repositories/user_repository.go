package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint       `gorm:"primaryKey"`
	Email        string     `gorm:"uniqueIndex;size:255"`
	Name         string     `gorm:"size:255"`
	PasswordHash string     `gorm:"column:password"`
	Role         string     `gorm:"index;size:64"`
	Status       string     `gorm:"index;size:32"`
	AvatarURL    string     `gorm:"size:1024"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// FindByEmail implements domain.UserRepository. The match is exact and
// case-sensitive; normalization is the provisioning side's concern.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// UpdateLastLogin implements domain.UserRepository
func (r *UserRepositoryImpl) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).Update("last_login_at", at).Error
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).Update("password", passwordHash).Error
}

// BackfillAvatar implements domain.UserRepository. The update is
// conditioned on the avatar still being empty so an existing photo is
// never overwritten.
func (r *UserRepositoryImpl) BackfillAvatar(ctx context.Context, id uint, url string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ? AND (avatar_url = '' OR avatar_url IS NULL)", id).
		Update("avatar_url", url).Error
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		Email:        dbUser.Email,
		Name:         dbUser.Name,
		PasswordHash: dbUser.PasswordHash,
		Role:         domain.Role(dbUser.Role),
		Status:       domain.AccountStatus(dbUser.Status),
		AvatarURL:    dbUser.AvatarURL,
		LastLoginAt:  dbUser.LastLoginAt,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
