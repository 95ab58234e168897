// Package config resolves runtime settings from an optional .env file, an optional YAML file
// named by OVIRA_CONFIG and environment variables, in that order of precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	minSecretKeyLength = 32
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
	"your-secret-key":                            {},
}

type Config struct {
	Port             int           `yaml:"port"`
	Mode             string        `yaml:"mode"`
	Timezone         string        `yaml:"timezone"`
	StoreDriver      string        `yaml:"store_driver"`
	DBPath           string        `yaml:"db_path"`
	DatabaseURL      string        `yaml:"database_url"`
	SecretKey        string        `yaml:"secret_key"`
	RedisAddr        string        `yaml:"redis_addr"`
	GeminiAPIKey     string        `yaml:"gemini_api_key"`
	GeminiModel      string        `yaml:"gemini_model"`
	ChatRateLimit    int           `yaml:"chat_rate_limit"`
	ChatRateWindow   time.Duration `yaml:"chat_rate_window"`
	LogWindowSize    int           `yaml:"log_window_size"`
	ReportWindowDays int           `yaml:"report_window_days"`
	DemoSeed         bool          `yaml:"demo_seed"`
	LogRedaction     bool          `yaml:"log_redaction"`
	LogHashSalt      string        `yaml:"log_hash_salt"`
}

func Defaults() Config {
	return Config{
		Port:             8080,
		Mode:             "dev",
		Timezone:         "UTC",
		StoreDriver:      StoreSQLite,
		DBPath:           "data/ovira.db",
		GeminiModel:      "gemini-1.5-flash",
		ChatRateLimit:    20,
		ChatRateWindow:   time.Minute,
		LogWindowSize:    30,
		ReportWindowDays: 30,
		LogRedaction:     true,
	}
}

// Load reads .env (if present), then the YAML file named by OVIRA_CONFIG, then the process
// environment, and validates the result.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()
	if path := strings.TrimSpace(os.Getenv("OVIRA_CONFIG")); path != "" {
		if err := mergeYAMLFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeYAMLFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	getString := func(key string, target *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	getInt := func(key string, target *int) error {
		value, ok := lookup(key)
		if !ok || strings.TrimSpace(value) == "" {
			return nil
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, value, err)
		}
		*target = parsed
		return nil
	}
	getBool := func(key string, target *bool) error {
		value, ok := lookup(key)
		if !ok || strings.TrimSpace(value) == "" {
			return nil
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, value, err)
		}
		*target = parsed
		return nil
	}

	getString("APP_MODE", &cfg.Mode)
	getString("TZ", &cfg.Timezone)
	getString("STORE_DRIVER", &cfg.StoreDriver)
	getString("DB_PATH", &cfg.DBPath)
	getString("DATABASE_URL", &cfg.DatabaseURL)
	getString("SECRET_KEY", &cfg.SecretKey)
	getString("REDIS_ADDR", &cfg.RedisAddr)
	getString("GEMINI_API_KEY", &cfg.GeminiAPIKey)
	getString("GEMINI_MODEL", &cfg.GeminiModel)
	getString("LOG_HASH_SALT", &cfg.LogHashSalt)

	for key, target := range map[string]*int{
		"PORT":               &cfg.Port,
		"CHAT_RATE_LIMIT":    &cfg.ChatRateLimit,
		"LOG_WINDOW_SIZE":    &cfg.LogWindowSize,
		"REPORT_WINDOW_DAYS": &cfg.ReportWindowDays,
	} {
		if err := getInt(key, target); err != nil {
			return err
		}
	}
	for key, target := range map[string]*bool{
		"DEMO_SEED":             &cfg.DemoSeed,
		"LOG_REDACTION_ENABLED": &cfg.LogRedaction,
	} {
		if err := getBool(key, target); err != nil {
			return err
		}
	}

	if value, ok := lookup("CHAT_RATE_WINDOW"); ok && strings.TrimSpace(value) != "" {
		parsed, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid CHAT_RATE_WINDOW %q: %w", value, err)
		}
		cfg.ChatRateWindow = parsed
	}

	cfg.StoreDriver = strings.ToLower(cfg.StoreDriver)
	return nil
}

func (cfg Config) Validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid PORT %d: expected 1-65535", cfg.Port)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Mode)) {
	case "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("invalid APP_MODE %q: expected dev or prod", cfg.Mode)
	}
	if _, err := ValidateSecretKey(cfg.SecretKey); err != nil {
		return err
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid TZ %q: %w", cfg.Timezone, err)
	}

	switch cfg.StoreDriver {
	case StoreSQLite:
		if strings.TrimSpace(cfg.DBPath) == "" {
			return errors.New("DB_PATH is required for the sqlite store")
		}
	case StorePostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.ChatRateLimit < 1 || cfg.ChatRateWindow <= 0 {
		return errors.New("chat rate limit and window must be positive")
	}
	if cfg.LogWindowSize < 1 || cfg.ReportWindowDays < 1 {
		return errors.New("log window size and report window days must be positive")
	}
	return nil
}

// ValidateSecretKey rejects empty, short and well-known placeholder signing keys.
func ValidateSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func (cfg Config) Location() *time.Location {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

func (cfg Config) IsProduction() bool {
	switch strings.ToLower(strings.TrimSpace(cfg.Mode)) {
	case "prod", "production":
		return true
	default:
		return false
	}
}
