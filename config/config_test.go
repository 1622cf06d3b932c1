package config

import (
	"strings"
	"testing"
	"time"
)

// setValidEnv sets a complete, valid environment. t.Setenv restores the
// previous values when the test ends.
func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "8002")
	t.Setenv("ADDRESS", "127.0.0.1")
	t.Setenv("ENV", "dev")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("WEBHOOK_PUBLIC_URL", "https://hook.example.com/public")
	t.Setenv("WEBHOOK_HOSPITAL_URL", "https://hook.example.com/hospital")
}

func TestLoadValidConfig(t *testing.T) {
	setValidEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8002" {
		t.Errorf("Expected port 8002, got %s", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Expected address 127.0.0.1, got %s", cfg.Address)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Expected env dev, got %s", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level info, got %s", cfg.LogLevel)
	}
	if cfg.WebhookPublicURL != "https://hook.example.com/public" {
		t.Errorf("Unexpected public webhook %s", cfg.WebhookPublicURL)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	setValidEnv(t)
	for _, key := range []string{"PORT", "ADDRESS", "ENV", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Expected default address 127.0.0.1, got %s", cfg.Address)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Expected default env dev, got %s", cfg.Env)
	}
	if cfg.WebhookTimeout != 120*time.Second {
		t.Errorf("Expected default webhook timeout 120s, got %s", cfg.WebhookTimeout)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("Expected default cache TTL 24h, got %s", cfg.CacheTTL)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("Expected empty database URL, got %s", cfg.DatabaseURL)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("Expected default origins [*], got %v", cfg.AllowedOrigins)
	}
}

func TestInvalidValues(t *testing.T) {
	testCases := []struct {
		name     string
		key      string
		value    string
		expected string
	}{
		{"non numeric port", "PORT", "abc", "PORT must be a valid number"},
		{"port zero", "PORT", "0", "PORT must be between 1 and 65535"},
		{"port too high", "PORT", "65536", "PORT must be between 1 and 65535"},
		{"privileged port", "PORT", "80", "PORT 80 is privileged"},
		{"bad address", "ADDRESS", "invalid", "ADDRESS must be a valid IP address"},
		{"public address", "ADDRESS", "8.8.8.8", "is a public IP"},
		{"bad env", "ENV", "invalid", "ENV must be one of"},
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL must be one of"},
		{"missing public webhook", "WEBHOOK_PUBLIC_URL", "", "WEBHOOK_PUBLIC_URL"},
		{"ftp webhook", "WEBHOOK_HOSPITAL_URL", "ftp://hook.example.com", "must use http or https"},
		{"webhook without host", "WEBHOOK_HOSPITAL_URL", "https://", "must include a host"},
		{"webhook timeout too short", "WEBHOOK_TIMEOUT", "10ms", "WEBHOOK_TIMEOUT"},
		{"cache ttl too short", "CACHE_TTL", "5s", "CACHE_TTL"},
		{"cleanup interval zero", "CACHE_CLEANUP_MINUTES", "0", "CACHE_CLEANUP_MINUTES"},
		{"request body too large", "MAX_REQUEST_BODY", "209715200", "MAX_REQUEST_BODY"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setValidEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Expected error for %s=%q, got nil", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), tc.expected) {
				t.Errorf("Expected error containing %q, got %v", tc.expected, err)
			}
		})
	}
}

func TestTestEnvDoesNotRequireWebhooks(t *testing.T) {
	setValidEnv(t)
	t.Setenv("ENV", "test")
	t.Setenv("WEBHOOK_PUBLIC_URL", "")
	t.Setenv("WEBHOOK_HOSPITAL_URL", "")

	if _, err := Load(); err != nil {
		t.Fatalf("Expected test env to load without webhooks, got %v", err)
	}
}

func TestDurationAndListParsing(t *testing.T) {
	setValidEnv(t)
	t.Setenv("WEBHOOK_TIMEOUT", "45")
	t.Setenv("CACHE_TTL", "2h")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.WebhookTimeout != 45*time.Second {
		t.Errorf("Expected plain seconds to parse as 45s, got %s", cfg.WebhookTimeout)
	}
	if cfg.CacheTTL != 2*time.Hour {
		t.Errorf("Expected 2h cache TTL, got %s", cfg.CacheTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://admin.example.com" {
		t.Errorf("Unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestGetEnvVars(t *testing.T) {
	vars := GetEnvVars()
	for _, required := range []string{"PORT", "WEBHOOK_PUBLIC_URL", "DATABASE_URL"} {
		found := false
		for _, v := range vars {
			if v == required {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected %s in GetEnvVars()", required)
		}
	}
}
