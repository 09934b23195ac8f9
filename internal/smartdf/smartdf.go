// Package smartdf answers natural-language questions about a table by
// handing the table and the question to a language model.
package smartdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"data-chat/internal/cache"
	"data-chat/internal/llm"
	"data-chat/internal/table"
)

const defaultMaxPromptRows = 200

// Config binds a DataFrame to its model and optional answer cache.
type Config struct {
	LLM llm.Client
	// Name identifies the model in cache keys, e.g. the provider tag.
	Name string

	Cache    cache.Cache
	CacheTTL time.Duration // zero disables answer caching

	// MaxPromptRows caps the rows sent to the model; the rest are summarized only.
	MaxPromptRows int

	Log *slog.Logger
}

// DataFrame is a table paired with a model that can be chatted with.
type DataFrame struct {
	table *table.Table
	cfg   Config
}

// New wraps tbl. A nil Log discards log output.
func New(tbl *table.Table, cfg Config) (*DataFrame, error) {
	if tbl == nil {
		return nil, errors.New("smartdf: nil table")
	}
	if cfg.LLM == nil {
		return nil, errors.New("smartdf: llm client required")
	}
	if cfg.MaxPromptRows <= 0 {
		cfg.MaxPromptRows = defaultMaxPromptRows
	}
	if cfg.Log == nil {
		cfg.Log = slog.New(slog.DiscardHandler)
	}
	return &DataFrame{table: tbl, cfg: cfg}, nil
}

// Chat asks the model query about the table and returns its textual answer.
func (df *DataFrame) Chat(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("smartdf: empty query")
	}

	key := df.cacheKey(query)
	if key != "" {
		if cached, err := df.cfg.Cache.GetAnswer(ctx, key); err != nil {
			df.cfg.Log.Warn("answer cache read failed", "err", err)
		} else if cached != nil {
			df.cfg.Log.Info("answer cache hit", "provider", df.cfg.Name)
			return cached.Text, nil
		}
	}

	raw, err := df.cfg.LLM.Complete(ctx, systemPrompt, buildUserPrompt(df.table, query, df.cfg.MaxPromptRows))
	if err != nil {
		return "", err
	}
	answer := cleanAnswer(raw)
	if answer == "" {
		return "", fmt.Errorf("smartdf: %w", llm.ErrEmptyResponse)
	}

	if key != "" {
		if err := df.cfg.Cache.SetAnswer(ctx, key, &cache.Answer{
			Text:      answer,
			Provider:  df.cfg.Name,
			CreatedAt: time.Now().UTC(),
		}, df.cfg.CacheTTL); err != nil {
			// Log cache write failure but don't fail the request
			df.cfg.Log.Warn("answer cache write failed", "err", err)
		}
	}
	return answer, nil
}

func (df *DataFrame) cacheKey(query string) string {
	if df.cfg.Cache == nil || df.cfg.CacheTTL <= 0 {
		return ""
	}
	return cache.GenerateCacheKey(df.cfg.Name, df.table.Fingerprint(), query)
}
