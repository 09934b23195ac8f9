package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for the web form and the CLI.
type Config struct {
	// Server
	Port           int           `env:"PORT" envDefault:"8080"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"json"` // "json" or "text"
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"120s"`

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"209715200"` // 200MB in bytes
	PreviewRows   int   `env:"PREVIEW_ROWS" envDefault:"5"`

	// LLM providers
	GroqKey       string  `env:"GROQ_API_KEY"`
	GroqModel     string  `env:"GROQ_MODEL" envDefault:"llama-3.1-8b-instant"`
	GroqBaseURL   string  `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	OpenAIKey     string  `env:"OPENAI_API_KEY"`
	OpenAIModel   string  `env:"OPENAI_MODEL" envDefault:"gpt-4"`
	OpenAIBaseURL string  `env:"OPENAI_BASE_URL"`
	Temperature   float64 `env:"LLM_TEMPERATURE" envDefault:"0"`
	PromptMaxRows int     `env:"PROMPT_MAX_ROWS" envDefault:"200"`

	// Cache
	CacheProvider string `env:"CACHE_PROVIDER" envDefault:"memory"` // "memory" or "redis"
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTLSecs  int    `env:"CACHE_TTL" envDefault:"3600"`
	UploadTTLSecs int    `env:"UPLOAD_TTL" envDefault:"86400"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

// CacheTTL is how long answers stay cached; zero disables answer caching.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSecs) * time.Second
}

// UploadTTL is how long uploaded files are kept for follow-up questions.
func (c Config) UploadTTL() time.Duration {
	return time.Duration(c.UploadTTLSecs) * time.Second
}
