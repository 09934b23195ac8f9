package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Client is a minimal chat-completion interface to allow pluggable providers.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Provider names a hosted LLM backend a user can pick.
type Provider string

const (
	ProviderGroq   Provider = "Groq"
	ProviderOpenAI Provider = "OpenAI"
)

// Providers lists the selectable backends in display order; the first is the default.
var Providers = []Provider{ProviderGroq, ProviderOpenAI}

var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrMissingAPIKey   = errors.New("api key required")
	ErrEmptyResponse   = errors.New("no choices returned")
)

// ParseProvider resolves a provider name case-insensitively. An empty name
// selects the default provider.
func ParseProvider(name string) (Provider, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Providers[0], nil
	}
	for _, p := range Providers {
		if strings.EqualFold(name, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid options: Groq, OpenAI)", ErrUnknownProvider, name)
}
