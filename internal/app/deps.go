package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"data-chat/internal/cache"
	"data-chat/internal/config"
	"data-chat/internal/llm"
	"data-chat/internal/logger"
	"data-chat/internal/pipeline"
	"data-chat/internal/smartdf"
)

// Deps bundles common runtime dependencies for the web form and the CLI.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	Cache    cache.Cache
	Registry *llm.Registry
	Pipeline *pipeline.Pipeline
}

// Close releases the cache connection.
func (d Deps) Close() error {
	if d.Cache == nil {
		return nil
	}
	return d.Cache.Close()
}

// Build loads env, config, and shared components. Logs go to stdout.
func Build() (Deps, error) {
	return BuildWith(os.Stdout, nil)
}

// BuildWith is Build with the log destination and config overrides
// applied after the environment is parsed.
func BuildWith(logOut io.Writer, override func(*config.Config)) (Deps, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Deps{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := config.Load()
	if override != nil {
		override(&cfg)
	}
	return New(cfg, logger.New(logOut, cfg.LogLevel, cfg.LogFormat))
}

// New wires the components for cfg.
func New(cfg config.Config, log *slog.Logger) (Deps, error) {
	c, err := buildCache(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	registry := buildRegistry(cfg, log)
	p, err := pipeline.New(pipeline.Options{
		Selector: registry,
		Dispatcher: &smartdf.Dispatcher{
			Cache:         c,
			CacheTTL:      cfg.CacheTTL(),
			MaxPromptRows: cfg.PromptMaxRows,
			Log:           log,
		},
		Uploads:     c,
		UploadTTL:   cfg.UploadTTL(),
		PreviewRows: cfg.PreviewRows,
		Log:         log,
	})
	if err != nil {
		_ = c.Close()
		return Deps{}, fmt.Errorf("failed to initialize pipeline: %w", err)
	}
	return Deps{
		Config:   cfg,
		Log:      log,
		Cache:    c,
		Registry: registry,
		Pipeline: p,
	}, nil
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "", "memory":
		log.Info("using in-memory cache")
		return cache.NewMemoryCache(), nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when CACHE_PROVIDER=redis")
		}
		rc, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn("redis unavailable; falling back to in-memory cache", "addr", cfg.RedisAddr, "err", err)
			return cache.NewMemoryCache(), nil
		}
		log.Info("using Redis cache", "addr", cfg.RedisAddr)
		return rc, nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: memory, redis)", cfg.CacheProvider)
	}
}

// buildRegistry registers one lazy factory per provider. Keys are checked
// when a provider is first selected, not at startup.
func buildRegistry(cfg config.Config, log *slog.Logger) *llm.Registry {
	return llm.NewRegistry(map[llm.Provider]llm.Factory{
		llm.ProviderGroq: func() (llm.Client, error) {
			if cfg.GroqKey == "" {
				return nil, fmt.Errorf("GROQ_API_KEY is not set: %w", llm.ErrMissingAPIKey)
			}
			client, err := llm.NewGroqClient(cfg.GroqKey, cfg.GroqModel, cfg.GroqBaseURL, cfg.Temperature)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize Groq client: %w", err)
			}
			log.Info("using Groq LLM client", "model", cfg.GroqModel)
			return client, nil
		},
		llm.ProviderOpenAI: func() (llm.Client, error) {
			if cfg.OpenAIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY is not set: %w", llm.ErrMissingAPIKey)
			}
			client, err := llm.NewOpenAIClient(cfg.OpenAIKey, openai.ChatModel(cfg.OpenAIModel), cfg.OpenAIBaseURL, cfg.Temperature)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
			}
			log.Info("using OpenAI LLM client", "model", cfg.OpenAIModel)
			return client, nil
		},
	})
}
