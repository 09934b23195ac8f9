package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
)

const (
	// DefaultGroqModel is the model used when none is configured.
	DefaultGroqModel = "llama-3.1-8b-instant"
	// DefaultGroqBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
)

// GroqClient talks to Groq through its OpenAI-compatible API.
type GroqClient struct {
	model       string
	temperature float64
	llm         *lcopenai.LLM
}

// NewGroqClient builds a client for model at baseURL (DefaultGroqBaseURL when empty).
func NewGroqClient(apiKey, model, baseURL string, temperature float64) (*GroqClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultGroqModel
	}
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	llm, err := lcopenai.New(
		lcopenai.WithBaseURL(baseURL),
		lcopenai.WithToken(strings.TrimPrefix(apiKey, "Bearer ")),
		lcopenai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("groq: %w", err)
	}
	return &GroqClient{model: model, temperature: temperature, llm: llm}, nil
}

func (c *GroqClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c == nil || c.llm == nil {
		return "", fmt.Errorf("nil groq client")
	}
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}
	resp, err := c.llm.GenerateContent(ctx, messages, llms.WithTemperature(c.temperature))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", fmt.Errorf("groq: %w", ErrEmptyResponse)
	}
	return resp.Choices[0].Content, nil
}
