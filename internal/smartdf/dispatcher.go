package smartdf

import (
	"context"
	"log/slog"
	"time"

	"data-chat/internal/cache"
	"data-chat/internal/llm"
	"data-chat/internal/table"
)

// Dispatcher builds a DataFrame per question, sharing one answer cache.
type Dispatcher struct {
	Cache         cache.Cache
	CacheTTL      time.Duration
	MaxPromptRows int
	Log           *slog.Logger
}

// Dispatch binds tbl to client and asks query.
func (d *Dispatcher) Dispatch(ctx context.Context, tbl *table.Table, provider llm.Provider, client llm.Client, query string) (string, error) {
	df, err := New(tbl, Config{
		LLM:           client,
		Name:          string(provider),
		Cache:         d.Cache,
		CacheTTL:      d.CacheTTL,
		MaxPromptRows: d.MaxPromptRows,
		Log:           d.Log,
	})
	if err != nil {
		return "", err
	}
	return df.Chat(ctx, query)
}
