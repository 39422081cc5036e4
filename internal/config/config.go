package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	BaseURL string `yaml:"base_url"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	Issuer    string `yaml:"issuer"`
	AccessTTL string `yaml:"access_ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	ResendWindow string `yaml:"resend_window"`
}

type RefreshConfig struct {
	TTL string `yaml:"ttl"`
}

type ResetConfig struct {
	TTL string `yaml:"ttl"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type GoogleConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Reset    ResetConfig    `yaml:"reset"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Google   GoogleConfig   `yaml:"google"`
}

type Config struct {
	Port             string
	GinMode          string
	BaseURL          string
	DSN              string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	JWTIssuer        string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	OTPTTL           time.Duration
	OTPLength        int
	OTPResendWindow  time.Duration
	ResetTTL         time.Duration
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for
// secrets. Duration fields use Go duration syntax ("5m", "720h").
func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

// LoadFrom reads the config file at the given path.
func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.Refresh.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	resWnd, err := time.ParseDuration(configFile.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	resetTTL, err := time.ParseDuration(configFile.Reset.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid reset token TTL: %w", err)
	}

	cfg := &Config{
		Port:               fmt.Sprintf("%d", configFile.App.Port),
		GinMode:            configFile.App.GinMode,
		BaseURL:            configFile.App.BaseURL,
		DSN:                env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:          configFile.Redis.Addr,
		RedisPassword:      env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:            configFile.Redis.DB,
		JWTSecret:          env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:          configFile.JWT.Issuer,
		AccessTTL:          accTTL,
		RefreshTTL:         refTTL,
		OTPTTL:             otpTTL,
		OTPLength:          configFile.OTP.Length,
		OTPResendWindow:    resWnd,
		ResetTTL:           resetTTL,
		SMTPHost:           configFile.SMTP.Host,
		SMTPPort:           configFile.SMTP.Port,
		SMTPUsername:       configFile.SMTP.Username,
		SMTPPassword:       env("SMTP_PASSWORD", configFile.SMTP.Password),
		SMTPFrom:           configFile.SMTP.From,
		GoogleClientID:     configFile.Google.ClientID,
		GoogleClientSecret: env("GOOGLE_CLIENT_SECRET", configFile.Google.ClientSecret),
		GoogleRedirectURL:  configFile.Google.RedirectURL,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if cfg.OTPLength <= 0 {
		cfg.OTPLength = 6
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
