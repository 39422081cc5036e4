package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
	"github.com/tarzan-1984/odyssea-beckend-sub001/internal/config"
	"github.com/tarzan-1984/odyssea-beckend-sub001/internal/infrastructure/auth"
	"github.com/tarzan-1984/odyssea-beckend-sub001/internal/infrastructure/database"
	"github.com/tarzan-1984/odyssea-beckend-sub001/internal/infrastructure/notifications"
	"github.com/tarzan-1984/odyssea-beckend-sub001/internal/infrastructure/repositories"
	"github.com/tarzan-1984/odyssea-beckend-sub001/internal/infrastructure/social"
	"github.com/tarzan-1984/odyssea-beckend-sub001/internal/services"
)

// Container holds all dependencies. Wiring is explicit: every collaborator
// is an interface value set here, substitutable in tests without any DI
// framework.
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	UserRepo  domain.UserRepository
	CodeRepo  domain.OneTimeCodeRepository
	TokenRepo domain.RefreshTokenRepository
	ResetRepo domain.PasswordResetRepository

	// Services
	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	MailSvc     domain.MailService
	SocialSvc   domain.SocialVerifier
	OTPSvc      domain.OTPService
	RefreshSvc  domain.RefreshTokenService
	ResetSvc    domain.PasswordResetService
	AuthSvc     domain.AuthService
	Audit       domain.AuditLogger
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.CodeRepo = repositories.NewOneTimeCodeRepository(c.DB)
	c.TokenRepo = repositories.NewRefreshTokenRepository(c.DB)
	c.ResetRepo = repositories.NewPasswordResetRepository(c.DB)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.AccessTTL)
	c.MailSvc = notifications.NewSMTPService(
		c.Config.SMTPHost,
		c.Config.SMTPPort,
		c.Config.SMTPUsername,
		c.Config.SMTPPassword,
		c.Config.SMTPFrom,
	)
	c.SocialSvc = social.NewGoogleVerifier(
		c.Config.GoogleClientID,
		c.Config.GoogleClientSecret,
		c.Config.GoogleRedirectURL,
	)
	c.Audit = services.NewSlogAuditLogger(nil)

	otpConfig := services.OTPConfig{
		Length:       c.Config.OTPLength,
		TTL:          c.Config.OTPTTL,
		ResendWindow: c.Config.OTPResendWindow,
	}
	c.OTPSvc = services.NewOTPService(c.CodeRepo, c.UserRepo, c.MailSvc, c.RedisClient, otpConfig)
	c.RefreshSvc = services.NewRefreshTokenService(c.TokenRepo, c.UserRepo, c.Config.RefreshTTL)
	c.ResetSvc = services.NewPasswordResetService(
		c.ResetRepo,
		c.UserRepo,
		c.PasswordSvc,
		c.MailSvc,
		c.Config.ResetTTL,
		c.Config.BaseURL,
	)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.RefreshSvc,
		c.ResetSvc,
		c.SocialSvc,
		c.Audit,
	)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
