package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env      string         `yaml:"env"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Redis    RedisConfig    `yaml:"redis"`
	Identity IdentityConfig `yaml:"identity"`
	Tips     TipsConfig     `yaml:"tips"`
	Notify   NotifyConfig   `yaml:"notify"`
}

type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// IdentityConfig drives the simulated identity provider. TokenSecret
// signs the identity tokens the simulator issues; ResolveLatency is the
// UX placeholder delay before an account selection resolves.
type IdentityConfig struct {
	TokenSecret    string          `yaml:"token_secret"`
	TokenTTL       time.Duration   `yaml:"token_ttl"`
	ResolveLatency time.Duration   `yaml:"resolve_latency"`
	Accounts       []AccountConfig `yaml:"accounts"`
}

type AccountConfig struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Picture string `yaml:"picture"`
}

type TipsConfig struct {
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type NotifyConfig struct {
	Enabled bool `yaml:"enabled"`
}

func Default() Config {
	return Config{
		Env: "dev",
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
		Log: LogConfig{Level: "debug"},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			DB:   0,
		},
		Identity: IdentityConfig{
			TokenSecret:    "change-me",
			TokenTTL:       5 * time.Minute,
			ResolveLatency: 1200 * time.Millisecond,
			Accounts: []AccountConfig{
				{
					ID:      "primary",
					Name:    "User Google",
					Email:   "user.health@gmail.com",
					Picture: "https://api.dicebear.com/7.x/avataaars/svg?seed=Felix",
				},
			},
		},
		Tips: TipsConfig{
			Model:    "gemini-3-flash-preview",
			Timeout:  20 * time.Second,
			CacheTTL: time.Hour,
		},
		Notify: NotifyConfig{
			Enabled: true,
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.Env == "prod" && cfg.Identity.TokenSecret == "change-me" {
		return Config{}, fmt.Errorf("identity.token_secret must be set in production")
	}

	return cfg, nil
}

func loadFromYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("unmarshal config yaml: %w", err)
	}

	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if err := overrideDuration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout); err != nil {
		return err
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if err := overrideInt("REDIS_DB", &cfg.Redis.DB); err != nil {
		return err
	}

	if v := os.Getenv("IDENTITY_TOKEN_SECRET"); v != "" {
		cfg.Identity.TokenSecret = v
	}
	if err := overrideDuration("IDENTITY_TOKEN_TTL", &cfg.Identity.TokenTTL); err != nil {
		return err
	}
	if err := overrideDuration("IDENTITY_RESOLVE_LATENCY", &cfg.Identity.ResolveLatency); err != nil {
		return err
	}

	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Tips.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Tips.Model = v
	}
	if err := overrideDuration("TIPS_TIMEOUT", &cfg.Tips.Timeout); err != nil {
		return err
	}
	if err := overrideDuration("TIPS_CACHE_TTL", &cfg.Tips.CacheTTL); err != nil {
		return err
	}

	if err := overrideBool("NOTIFY_ENABLED", &cfg.Notify.Enabled); err != nil {
		return err
	}

	return nil
}

func overrideDuration(key string, target *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s duration: %w", key, err)
	}
	*target = d
	return nil
}

func overrideInt(key string, target *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s int: %w", key, err)
	}
	*target = n
	return nil
}

func overrideBool(key string, target *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parse %s bool: %w", key, err)
	}
	*target = b
	return nil
}
