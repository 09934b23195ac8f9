package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type capturedRequest struct {
	Auth     string
	Model    string
	Messages []struct {
		Role    string `json:"role"`
		Content any    `json:"content"`
	}
}

// newCompletionServer fakes an OpenAI-compatible /chat/completions endpoint.
func newCompletionServer(t *testing.T, status int, content string, got *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content any    `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if got != nil {
			got.Auth = r.Header.Get("Authorization")
			got.Model = body.Model
			got.Messages = body.Messages
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   body.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
			"usage": map[string]any{"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIClientComplete(t *testing.T) {
	var got capturedRequest
	srv := newCompletionServer(t, http.StatusOK, "30", &got)

	client, err := NewOpenAIClient("sk-test", "", srv.URL+"/v1/", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	answer, err := client.Complete(context.Background(), "system prompt", "What is Alice's age?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if answer != "30" {
		t.Errorf("expected answer 30, got %q", answer)
	}
	if got.Auth != "Bearer sk-test" {
		t.Errorf("expected bearer auth, got %q", got.Auth)
	}
	if got.Model != string(DefaultOpenAIModel) {
		t.Errorf("expected default model %s, got %s", DefaultOpenAIModel, got.Model)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Errorf("expected system+user messages, got %+v", got.Messages)
	}
}

func TestGroqClientComplete(t *testing.T) {
	var got capturedRequest
	srv := newCompletionServer(t, http.StatusOK, "Alice is 30.", &got)

	client, err := NewGroqClient("gsk-test", "", srv.URL+"/openai/v1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	answer, err := client.Complete(context.Background(), "system prompt", "What is Alice's age?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if answer != "Alice is 30." {
		t.Errorf("unexpected answer %q", answer)
	}
	if got.Auth != "Bearer gsk-test" {
		t.Errorf("expected bearer auth, got %q", got.Auth)
	}
	if got.Model != DefaultGroqModel {
		t.Errorf("expected model %s, got %s", DefaultGroqModel, got.Model)
	}
}

func TestClientsRequireAPIKey(t *testing.T) {
	if _, err := NewOpenAIClient("", "", "", 0); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("openai: expected ErrMissingAPIKey, got %v", err)
	}
	if _, err := NewGroqClient("", "", "", 0); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("groq: expected ErrMissingAPIKey, got %v", err)
	}
}

func TestClientsSurfaceRemoteRejection(t *testing.T) {
	srv := newCompletionServer(t, http.StatusUnauthorized, "", nil)

	openaiClient, err := NewOpenAIClient("bad-key", "", srv.URL+"/v1/", 0)
	if err != nil {
		t.Fatalf("construction must not call the remote service: %v", err)
	}
	if _, err := openaiClient.Complete(context.Background(), "s", "u"); err == nil {
		t.Error("openai: expected error for rejected key")
	}

	groqClient, err := NewGroqClient("bad-key", "", srv.URL+"/openai/v1", 0)
	if err != nil {
		t.Fatalf("construction must not call the remote service: %v", err)
	}
	if _, err := groqClient.Complete(context.Background(), "s", "u"); err == nil {
		t.Error("groq: expected error for rejected key")
	}
}

func TestOpenAIClientEmptyResponse(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK, "   ", nil)

	client, err := NewOpenAIClient("sk-test", "gpt-4", srv.URL+"/v1/", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.Complete(context.Background(), "s", "u"); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}
