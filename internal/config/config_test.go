package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Save original env and restore after test
	originalEnv := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range originalEnv {
			// Parse and restore each env var
			for i, c := range env {
				if c == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	}()

	// Clear env to test defaults
	os.Clearenv()

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Port", cfg.Port, 8080},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFormat", cfg.LogFormat, "json"},
		{"RequestTimeout", cfg.RequestTimeout, 120 * time.Second},
		{"MaxUploadSize", cfg.MaxUploadSize, int64(200 << 20)},
		{"PreviewRows", cfg.PreviewRows, 5},
		{"GroqModel", cfg.GroqModel, "llama-3.1-8b-instant"},
		{"GroqBaseURL", cfg.GroqBaseURL, "https://api.groq.com/openai/v1"},
		{"OpenAIModel", cfg.OpenAIModel, "gpt-4"},
		{"OpenAIBaseURL", cfg.OpenAIBaseURL, ""},
		{"Temperature", cfg.Temperature, 0.0},
		{"PromptMaxRows", cfg.PromptMaxRows, 200},
		{"CacheProvider", cfg.CacheProvider, "memory"},
		{"CacheTTL", cfg.CacheTTL(), time.Hour},
		{"UploadTTL", cfg.UploadTTL(), 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("CACHE_TTL", "0")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.LogLevel)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Errorf("expected 45s timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.GroqKey != "gsk-test" {
		t.Errorf("expected groq key from env, got %q", cfg.GroqKey)
	}
	if cfg.CacheTTL() != 0 {
		t.Errorf("expected answer caching disabled, got %v", cfg.CacheTTL())
	}
}

func TestLoadProviderOverrides(t *testing.T) {
	t.Setenv("CACHE_PROVIDER", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()

	if cfg.CacheProvider != "redis" {
		t.Errorf("expected cache provider 'redis', got %s", cfg.CacheProvider)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected redis addr from env, got %s", cfg.RedisAddr)
	}
}
