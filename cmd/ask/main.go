package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"data-chat/internal/app"
	"data-chat/internal/config"
	"data-chat/internal/pipeline"
	"data-chat/internal/present"
)

// errNotice marks a run whose result carried an error notice; the notice
// itself is already printed.
var errNotice = errors.New("query failed")

func main() {
	cmd := newRootCmd(os.Stdout)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errNotice) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var file, provider, query string

	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Ask a question about a CSV or Excel file",
		Long: `Load a spreadsheet, send the question to the selected LLM and print the
preview, column summary, answer and time taken.

Example: ask --file sales.xlsx --provider OpenAI --query "Which region sold the most?"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := app.BuildWith(cmd.ErrOrStderr(), func(c *config.Config) {
				// keep stdout for the answer
				c.LogFormat = "text"
			})
			if err != nil {
				return err
			}
			defer deps.Close()
			return run(cmd.Context(), deps.Pipeline, out, file, provider, query)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV, XLSX or XLS file to load")
	cmd.Flags().StringVarP(&provider, "provider", "p", "Groq", "LLM provider (Groq or OpenAI)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Question about the data")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// Runner runs one interaction.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) pipeline.Result
}

func run(ctx context.Context, p Runner, out io.Writer, file, provider, query string) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	res := p.Run(ctx, pipeline.Request{
		Filename: filepath.Base(file),
		Content:  content,
		Provider: provider,
		Query:    query,
		Ask:      true,
	})
	if err := present.Text(out, res); err != nil {
		return err
	}
	if res.Notice != nil && res.Notice.Kind == pipeline.NoticeError {
		return errNotice
	}
	return nil
}
