package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"data-chat/internal/llm"
	"data-chat/internal/pipeline"
)

func newTestPipeline(t *testing.T, d *pipeline.MockDispatcher) *pipeline.Pipeline {
	t.Helper()
	client := new(llm.MockClient)
	p, err := pipeline.New(pipeline.Options{
		Selector: llm.NewRegistry(map[llm.Provider]llm.Factory{
			llm.ProviderGroq: func() (llm.Client, error) { return client, nil },
		}),
		Dispatcher: d,
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		query    string
		setup    func(*pipeline.MockDispatcher)
		wantErr  error
		wantOut  string
	}{
		{
			name:     "answer printed",
			filename: "people.csv",
			content:  "name,age\nAlice,30\n",
			query:    "What is Alice's age?",
			setup: func(d *pipeline.MockDispatcher) {
				d.On("Dispatch", mock.Anything, mock.Anything, llm.ProviderGroq, mock.Anything, "What is Alice's age?").
					Return("30", nil).Once()
			},
			wantOut: "Time taken to answer:",
		},
		{
			name:     "unsupported format exits with error",
			filename: "notes.txt",
			content:  "hello",
			query:    "q",
			wantErr:  errNotice,
			wantOut:  "ERROR: Unsupported file format .txt",
		},
		{
			name:     "empty query is a warning",
			filename: "people.csv",
			content:  "name,age\nAlice,30\n",
			wantOut:  "WARNING: Please enter a query.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := new(pipeline.MockDispatcher)
			if tt.setup != nil {
				tt.setup(d)
			}
			path := writeFile(t, tt.filename, tt.content)

			var out bytes.Buffer
			err := run(context.Background(), newTestPipeline(t, d), &out, path, "Groq", tt.query)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("run() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.wantOut, out.String())
			}
			d.AssertExpectations(t)
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	d := new(pipeline.MockDispatcher)
	err := run(context.Background(), newTestPipeline(t, d), &bytes.Buffer{}, filepath.Join(t.TempDir(), "nope.csv"), "Groq", "q")
	if err == nil || errors.Is(err, errNotice) {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestRootCmdRequiresFile(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{})
	cmd.SetArgs([]string{"--query", "q"})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error without --file")
	}
}
