package config_test

import (
	"strings"
	"testing"

	"github.com/kmelby/showcase/internal/config"
)

const validSecret = "a-jwt-secret-that-is-32-chars-ok"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", validSecret)
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DatabasePath != "showcase.db" {
		t.Fatalf("expected default database path, got %s", cfg.DatabasePath)
	}
	if !cfg.CookieSecure {
		t.Fatal("expected secure cookies by default")
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("expected default bcrypt cost 12, got %d", cfg.BcryptCost)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("BCRYPT_COST", "10")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.DatabasePath != "/tmp/other.db" {
		t.Fatalf("expected overridden database path, got %s", cfg.DatabasePath)
	}
	if cfg.CookieSecure {
		t.Fatal("expected insecure cookies when overridden")
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	if _, err := config.Load(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	if _, err := config.Load(); err == nil || !strings.Contains(err.Error(), "32 characters") {
		t.Fatalf("expected secret length error, got %v", err)
	}
}

func TestLoad_MissingOpenAIKey(t *testing.T) {
	t.Setenv("JWT_SECRET", validSecret)
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := config.Load(); err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("expected OPENAI_API_KEY error, got %v", err)
	}
}

func TestLoad_BcryptCostOutOfRange(t *testing.T) {
	setRequired(t)

	for _, cost := range []string{"3", "15"} {
		t.Setenv("BCRYPT_COST", cost)
		if _, err := config.Load(); err == nil || !strings.Contains(err.Error(), "BCRYPT_COST") {
			t.Fatalf("cost %s: expected BCRYPT_COST error, got %v", cost, err)
		}
	}
}
