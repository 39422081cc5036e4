package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testYAML = `app:
  port: 8080
  gin_mode: test
  base_url: "https://app.example"
database:
  dsn: "host=localhost user=auth dbname=auth"
redis:
  addr: "localhost:6379"
  db: 0
jwt:
  secret: "file-secret"
  issuer: "odyssea-auth"
  access_ttl: "15m"
otp:
  ttl: "5m"
  length: 6
  resend_window: "60s"
refresh:
  ttl: "720h"
reset:
  ttl: "1h"
smtp:
  host: ""
  port: 587
  from: "no-reply@example.com"
google:
  client_id: "client"
  redirect_url: "https://app.example/callback"
`

func writeTestConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("could not write config: %v", err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	cfg, err := LoadFrom(writeTestConfig(t, testYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Errorf("expected the file secret, got %s", cfg.JWTSecret)
	}
	if cfg.AccessTTL != 15*time.Minute {
		t.Errorf("expected 15m access TTL, got %v", cfg.AccessTTL)
	}
	if cfg.RefreshTTL != 720*time.Hour {
		t.Errorf("expected 720h refresh TTL, got %v", cfg.RefreshTTL)
	}
	if cfg.OTPTTL != 5*time.Minute {
		t.Errorf("expected 5m OTP TTL, got %v", cfg.OTPTTL)
	}
	if cfg.OTPResendWindow != time.Minute {
		t.Errorf("expected 60s resend window, got %v", cfg.OTPResendWindow)
	}
	if cfg.ResetTTL != time.Hour {
		t.Errorf("expected 1h reset TTL, got %v", cfg.ResetTTL)
	}
	if cfg.OTPLength != 6 {
		t.Errorf("expected OTP length 6, got %d", cfg.OTPLength)
	}
}

func TestLoadFrom_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_DSN", "host=db user=auth dbname=auth")

	cfg, err := LoadFrom(writeTestConfig(t, testYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.JWTSecret != "env-secret" {
		t.Errorf("expected the env secret to win, got %s", cfg.JWTSecret)
	}
	if cfg.DSN != "host=db user=auth dbname=auth" {
		t.Errorf("expected the env DSN to win, got %s", cfg.DSN)
	}
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	yaml := `app:
  port: 8080
jwt:
  access_ttl: "15m"
otp:
  ttl: "5m"
  resend_window: "60s"
refresh:
  ttl: "720h"
reset:
  ttl: "1h"
`
	if _, err := LoadFrom(writeTestConfig(t, yaml)); err == nil {
		t.Error("expected an error for a missing jwt secret")
	}
}

func TestLoadFrom_BadDuration(t *testing.T) {
	yaml := `jwt:
  secret: "s"
  access_ttl: "soon"
otp:
  ttl: "5m"
  resend_window: "60s"
refresh:
  ttl: "720h"
reset:
  ttl: "1h"
`
	if _, err := LoadFrom(writeTestConfig(t, yaml)); err == nil {
		t.Error("expected an error for a malformed duration")
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoadFrom_DefaultOTPLength(t *testing.T) {
	yaml := `jwt:
  secret: "s"
  access_ttl: "15m"
otp:
  ttl: "5m"
  resend_window: "60s"
refresh:
  ttl: "720h"
reset:
  ttl: "1h"
`
	cfg, err := LoadFrom(writeTestConfig(t, yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OTPLength != 6 {
		t.Errorf("expected default OTP length 6, got %d", cfg.OTPLength)
	}
}
