package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestValidateSecretKey(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "empty", raw: "", wantErr: true},
		{name: "production placeholder", raw: "change_me_in_production", wantErr: true},
		{name: "example placeholder", raw: "replace_with_at_least_32_random_characters", wantErr: true},
		{name: "too short", raw: "too-short-secret", wantErr: true},
		{name: "valid", raw: "  " + testSecret + " "},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			secret, err := ValidateSecretKey(testCase.raw)
			if testCase.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if secret != testSecret {
				t.Fatalf("expected trimmed secret, got %q", secret)
			}
		})
	}
}

func TestApplyEnvOverridesDefaults(t *testing.T) {
	env := map[string]string{
		"PORT":             "9090",
		"STORE_DRIVER":     "Memory",
		"SECRET_KEY":       testSecret,
		"CHAT_RATE_LIMIT":  "5",
		"CHAT_RATE_WINDOW": "30s",
		"DEMO_SEED":        "true",
		"TZ":               "Europe/Berlin",
	}
	cfg := Defaults()
	if err := applyEnv(&cfg, mapLookup(env)); err != nil {
		t.Fatalf("applyEnv() unexpected error: %v", err)
	}

	if cfg.Port != 9090 || cfg.StoreDriver != StoreMemory || cfg.ChatRateLimit != 5 {
		t.Fatalf("unexpected config %#v", cfg)
	}
	if cfg.ChatRateWindow != 30*time.Second || !cfg.DemoSeed || cfg.Timezone != "Europe/Berlin" {
		t.Fatalf("unexpected config %#v", cfg)
	}
	if cfg.LogWindowSize != 30 || cfg.ReportWindowDays != 30 {
		t.Fatalf("expected untouched defaults, got %#v", cfg)
	}
}

func TestApplyEnvRejectsMalformedValues(t *testing.T) {
	for key, value := range map[string]string{
		"PORT":             "not-a-number",
		"CHAT_RATE_WINDOW": "soon",
		"DEMO_SEED":        "maybe",
	} {
		cfg := Defaults()
		if err := applyEnv(&cfg, mapLookup(map[string]string{key: value})); err == nil {
			t.Fatalf("expected %s=%q to fail", key, value)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := Defaults()
	valid.SecretKey = testSecret

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "port zero", mutate: func(cfg *Config) { cfg.Port = 0 }},
		{name: "port too high", mutate: func(cfg *Config) { cfg.Port = 70000 }},
		{name: "missing secret", mutate: func(cfg *Config) { cfg.SecretKey = "" }},
		{name: "unknown driver", mutate: func(cfg *Config) { cfg.StoreDriver = "mongo" }},
		{name: "postgres without url", mutate: func(cfg *Config) { cfg.StoreDriver = StorePostgres }},
		{name: "sqlite without path", mutate: func(cfg *Config) { cfg.DBPath = " " }},
		{name: "unknown mode", mutate: func(cfg *Config) { cfg.Mode = "staging" }},
		{name: "empty mode", mutate: func(cfg *Config) { cfg.Mode = " " }},
		{name: "unknown timezone", mutate: func(cfg *Config) { cfg.Timezone = "Mars/Olympus" }},
		{name: "zero rate limit", mutate: func(cfg *Config) { cfg.ChatRateLimit = 0 }},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("expected defaults with secret to validate, got %v", err)
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			cfg := valid
			testCase.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadMergesYAMLThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ovira.yaml")
	yamlConfig := "port: 7070\nstore_driver: memory\nsecret_key: " + testSecret + "\nlog_window_size: 14\nchat_rate_window: 2m\n"
	if err := os.WriteFile(path, []byte(yamlConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Chdir(dir)
	t.Setenv("OVIRA_CONFIG", path)
	t.Setenv("PORT", "7171")
	t.Setenv("SECRET_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != 7171 {
		t.Fatalf("expected env to override yaml port, got %d", cfg.Port)
	}
	if cfg.StoreDriver != StoreMemory || cfg.LogWindowSize != 14 || cfg.ChatRateWindow != 2*time.Minute {
		t.Fatalf("expected yaml values, got %#v", cfg)
	}
	if cfg.SecretKey != testSecret {
		t.Fatal("expected empty env value to keep yaml secret")
	}
}

func TestModeValidationAndDetection(t *testing.T) {
	tests := []struct {
		mode       string
		production bool
	}{
		{mode: "dev"},
		{mode: "development"},
		{mode: "prod", production: true},
		{mode: " Production ", production: true},
	}

	for _, testCase := range tests {
		cfg := Defaults()
		cfg.SecretKey = testSecret
		cfg.Mode = testCase.mode
		if err := cfg.Validate(); err != nil {
			t.Fatalf("mode %q: unexpected validation error: %v", testCase.mode, err)
		}
		if cfg.IsProduction() != testCase.production {
			t.Fatalf("mode %q: expected production=%v", testCase.mode, testCase.production)
		}
	}
}

func mapLookup(values map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}
