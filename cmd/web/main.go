package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"data-chat/internal/app"
	"data-chat/internal/httputil"
	"data-chat/internal/pipeline"
	"data-chat/internal/present"
)

// multipart framing allowance on top of the file itself
const formOverhead = 1 << 20

var errTooLarge = errors.New("file too large")

type askForm struct {
	DatasetID string `validate:"omitempty,uuid"`
	Provider  string `validate:"omitempty,oneof=Groq OpenAI groq openai"`
	Query     string `validate:"max=10000"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.Close()

	page, err := present.NewHTML()
	if err != nil {
		deps.Log.Error("failed to load templates", "err", err)
		os.Exit(1)
	}
	r := newRouter(deps, page)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return httputil.Serve(ctx, deps.Log, fmt.Sprintf(":%d", deps.Config.Port), r)
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func newRouter(deps app.Deps, page *present.HTML) http.Handler {
	r := httputil.NewRouter(deps.Log, deps.Config.RequestTimeout)

	r.Get("/", indexHandler(deps, page))
	r.Post("/ask", askHandler(deps, page))
	r.Post("/api/query", queryHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	return r
}

func indexHandler(deps app.Deps, page *present.HTML) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := deps.Pipeline.Run(r.Context(), pipeline.Request{})
		render(deps, page, w, http.StatusOK, res)
	}
}

// askHandler serves the form post and always answers with the page; input
// problems are shown as notices.
func askHandler(deps app.Deps, page *present.HTML) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, form, err := readRequest(w, r, deps.Config.MaxUploadSize)
		if err != nil {
			deps.Log.Warn("invalid form", "err", err)
			render(deps, page, w, http.StatusBadRequest, pipeline.Result{
				Query:  form.Query,
				Notice: &pipeline.Notice{Kind: pipeline.NoticeError, Text: formError(err, deps.Config.MaxUploadSize)},
			})
			return
		}
		if err := httputil.Validator.Struct(&form); err != nil {
			deps.Log.Warn("validation failed", "err", err)
			render(deps, page, w, http.StatusBadRequest, pipeline.Result{
				Query:  form.Query,
				Notice: &pipeline.Notice{Kind: pipeline.NoticeError, Text: "invalid form input"},
			})
			return
		}
		req.Ask = r.FormValue("ask") != ""

		res := deps.Pipeline.Run(r.Context(), req)
		render(deps, page, w, http.StatusOK, res)
	}
}

// queryHandler is the JSON form of askHandler. Every call asks the question.
func queryHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, form, err := readRequest(w, r, deps.Config.MaxUploadSize)
		if err != nil {
			httputil.Fail(deps.Log, w, formError(err, deps.Config.MaxUploadSize), err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&form); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		req.Ask = true

		res := deps.Pipeline.Run(r.Context(), req)
		httputil.WriteJSON(w, http.StatusOK, present.NewResponse(res))
	}
}

// readRequest parses the multipart form. A missing file is not an error:
// the pipeline falls back to the dataset id.
func readRequest(w http.ResponseWriter, r *http.Request, maxFileSize int64) (pipeline.Request, askForm, error) {
	var form askForm
	if r.ContentLength > maxFileSize+formOverhead {
		return pipeline.Request{}, form, errTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFileSize+formOverhead)
	err := r.ParseMultipartForm(32 << 20)
	if errors.Is(err, http.ErrNotMultipart) {
		// follow-up questions about a stored dataset may come url-encoded
		err = r.ParseForm()
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return pipeline.Request{}, form, errTooLarge
		}
		return pipeline.Request{}, form, fmt.Errorf("parse form: %w", err)
	}

	form = askForm{
		DatasetID: strings.TrimSpace(r.FormValue("dataset_id")),
		Provider:  strings.TrimSpace(r.FormValue("provider")),
		Query:     r.FormValue("query"),
	}
	req := pipeline.Request{
		DatasetID: form.DatasetID,
		Provider:  form.Provider,
		Query:     form.Query,
	}

	if r.MultipartForm == nil {
		return req, form, nil
	}
	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return req, form, nil
	}
	if err != nil {
		return req, form, fmt.Errorf("read file: %w", err)
	}
	defer file.Close()

	if header.Size > maxFileSize {
		return req, form, errTooLarge
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return req, form, fmt.Errorf("read file: %w", err)
	}
	req.Filename = header.Filename
	req.Content = content
	return req, form, nil
}

func formError(err error, maxFileSize int64) string {
	if errors.Is(err, errTooLarge) {
		return fmt.Sprintf("file too large (max %d bytes)", maxFileSize)
	}
	return "invalid form submission"
}

func render(deps app.Deps, page *present.HTML, w http.ResponseWriter, status int, res pipeline.Result) {
	var buf bytes.Buffer
	if err := page.Render(&buf, res); err != nil {
		httputil.Fail(deps.Log, w, "failed to render page", err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		deps.Log.Warn("failed to write page", "err", err)
	}
}
