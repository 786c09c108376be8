package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
log:
  level: warn
identity:
  resolve_latency: 50ms
  accounts:
    - id: alt
      name: Jane Runner
      email: jane.runner@gmail.com
tips:
  model: gemini-flash-test
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Fatalf("unexpected log level: %s", cfg.Log.Level)
	}
	if cfg.Identity.ResolveLatency != 50*time.Millisecond {
		t.Fatalf("unexpected resolve latency: %s", cfg.Identity.ResolveLatency)
	}
	if len(cfg.Identity.Accounts) != 1 || cfg.Identity.Accounts[0].ID != "alt" {
		t.Fatalf("unexpected identity accounts: %+v", cfg.Identity.Accounts)
	}
	if cfg.Tips.Model != "gemini-flash-test" {
		t.Fatalf("unexpected tips model: %s", cfg.Tips.Model)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("http addr default should stay :8080, got %s", cfg.HTTP.Addr)
	}
	if cfg.Identity.TokenTTL != 5*time.Minute {
		t.Fatalf("identity token ttl default should stay 5m, got %s", cfg.Identity.TokenTTL)
	}
	if !cfg.Notify.Enabled {
		t.Fatalf("notify.enabled default should stay true")
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if cfg.Identity.ResolveLatency != 1200*time.Millisecond {
		t.Fatalf("unexpected default resolve latency: %s", cfg.Identity.ResolveLatency)
	}
	if len(cfg.Identity.Accounts) != 1 || cfg.Identity.Accounts[0].Email != "user.health@gmail.com" {
		t.Fatalf("unexpected default identity account: %+v", cfg.Identity.Accounts)
	}
	if cfg.Tips.Model != "gemini-3-flash-preview" {
		t.Fatalf("unexpected default tips model: %s", cfg.Tips.Model)
	}
}

func TestLoadEnvOverridesWin(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("IDENTITY_RESOLVE_LATENCY", "0s")
	t.Setenv("GEMINI_MODEL", "gemini-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Redis.Addr != "redis.internal:6380" {
		t.Fatalf("unexpected redis addr: %s", cfg.Redis.Addr)
	}
	if cfg.Identity.ResolveLatency != 0 {
		t.Fatalf("unexpected resolve latency: %s", cfg.Identity.ResolveLatency)
	}
	if cfg.Tips.Model != "gemini-env" {
		t.Fatalf("unexpected tips model: %s", cfg.Tips.Model)
	}
}

func TestLoadRejectsDefaultTokenSecretInProduction(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_ENV", "prod")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error when identity.token_secret is the default in production")
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"IDENTITY_TOKEN_SECRET",
		"IDENTITY_TOKEN_TTL",
		"IDENTITY_RESOLVE_LATENCY",
		"GEMINI_API_KEY",
		"GEMINI_MODEL",
		"TIPS_TIMEOUT",
		"TIPS_CACHE_TTL",
		"NOTIFY_ENABLED",
	} {
		t.Setenv(key, "")
	}
}
