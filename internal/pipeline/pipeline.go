// Package pipeline runs one interaction of the data chat: ingest the
// uploaded file, select a model, dispatch the question and collect what
// the presentation layer shows.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"data-chat/internal/cache"
	"data-chat/internal/ingest"
	"data-chat/internal/llm"
	"data-chat/internal/table"
)

const (
	MsgUploadFirst  = "Please upload a CSV or Excel file to begin."
	MsgUploadAgain  = "Your earlier upload has expired. Please upload the file again."
	MsgEnterQuery   = "Please enter a query."
	msgQueryFailure = "An error occurred: %v"

	defaultPreviewRows = 5
)

// Dispatcher answers a question about a table using a model client.
type Dispatcher interface {
	Dispatch(ctx context.Context, tbl *table.Table, provider llm.Provider, client llm.Client, query string) (string, error)
}

// Selector hands out the model client for a provider.
type Selector interface {
	Client(p llm.Provider) (llm.Client, error)
}

// Request is everything one interaction carries.
type Request struct {
	// Filename and Content hold a fresh upload. When Content is nil the
	// upload stored under DatasetID is reused.
	Filename  string
	Content   []byte
	DatasetID string

	Provider string
	Query    string
	// Ask is set when the user submitted the query.
	Ask bool
}

// NoticeKind tags a message shown instead of, or next to, an answer.
type NoticeKind string

const (
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is a user-facing warning or error.
type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

// Result is the outcome of one interaction.
type Result struct {
	DatasetID string
	Filename  string
	Provider  llm.Provider
	Query     string

	// Data is the parsed table; nil when nothing was ingested.
	Data    *table.Table
	Preview *table.Table
	Summary []table.ColumnSummary

	Answer   string
	Elapsed  time.Duration
	Answered bool

	Notice *Notice
}

// Options configures a Pipeline.
type Options struct {
	Selector   Selector
	Dispatcher Dispatcher
	// Uploads keeps files between interactions; nil disables reuse.
	Uploads     cache.Cache
	UploadTTL   time.Duration
	PreviewRows int
	Log         *slog.Logger
}

// Pipeline runs interactions. It is safe for concurrent use.
type Pipeline struct {
	opts Options
}

// New validates opts and builds a Pipeline.
func New(opts Options) (*Pipeline, error) {
	if opts.Selector == nil {
		return nil, errors.New("pipeline: selector required")
	}
	if opts.Dispatcher == nil {
		return nil, errors.New("pipeline: dispatcher required")
	}
	if opts.PreviewRows <= 0 {
		opts.PreviewRows = defaultPreviewRows
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{opts: opts}, nil
}

// Run executes Ingest → Select → Dispatch for req. Failures never escape:
// they are reported through Result.Notice.
func (p *Pipeline) Run(ctx context.Context, req Request) Result {
	res := Result{Query: req.Query}
	log := p.opts.Log

	// an unknown provider only matters once a question is asked
	provider, providerErr := llm.ParseProvider(req.Provider)
	res.Provider = provider

	upload, datasetID, notice := p.resolveUpload(ctx, req)
	if notice != nil {
		res.Notice = notice
		return res
	}
	res.Filename = upload.Filename

	tbl, err := ingest.Read(upload.Filename, upload.Content)
	if err != nil {
		log.Warn("ingest failed", "filename", upload.Filename, "err", err)
		return res.withError(err.Error())
	}
	res.Data = tbl
	res.Preview = tbl.Head(p.opts.PreviewRows)
	res.Summary = tbl.Describe()
	res.DatasetID = p.remember(ctx, datasetID, upload, req.Content != nil)

	if !req.Ask {
		return res
	}
	if strings.TrimSpace(req.Query) == "" {
		res.Notice = &Notice{Kind: NoticeWarning, Text: MsgEnterQuery}
		return res
	}

	if providerErr != nil {
		log.Warn("query failed", "provider", req.Provider, "err", providerErr)
		return res.withError(fmt.Sprintf(msgQueryFailure, providerErr))
	}

	start := time.Now()
	answer, err := p.dispatch(ctx, tbl, provider, req.Query)
	res.Elapsed = time.Since(start)
	if err != nil {
		log.Warn("query failed", "provider", provider, "elapsed_ms", res.Elapsed.Milliseconds(), "err", err)
		return res.withError(fmt.Sprintf(msgQueryFailure, err))
	}
	log.Info("query answered", "provider", provider, "rows", tbl.NumRows(), "elapsed_ms", res.Elapsed.Milliseconds())
	res.Answer = answer
	res.Answered = true
	return res
}

// resolveUpload picks the fresh upload or loads the stored one.
func (p *Pipeline) resolveUpload(ctx context.Context, req Request) (cache.Upload, string, *Notice) {
	if req.Content != nil {
		return cache.Upload{Filename: req.Filename, Content: req.Content}, "", nil
	}
	if req.DatasetID == "" || p.opts.Uploads == nil {
		return cache.Upload{}, "", &Notice{Kind: NoticeWarning, Text: MsgUploadFirst}
	}
	stored, err := p.opts.Uploads.GetUpload(ctx, req.DatasetID)
	if err != nil {
		p.opts.Log.Warn("upload lookup failed", "dataset_id", req.DatasetID, "err", err)
	}
	if stored == nil {
		return cache.Upload{}, "", &Notice{Kind: NoticeWarning, Text: MsgUploadAgain}
	}
	return *stored, req.DatasetID, nil
}

// remember stores a fresh upload and returns the dataset id to reuse it.
func (p *Pipeline) remember(ctx context.Context, id string, upload cache.Upload, fresh bool) string {
	if !fresh || p.opts.Uploads == nil {
		return id
	}
	id = uuid.NewString()
	if err := p.opts.Uploads.SetUpload(ctx, id, &upload, p.opts.UploadTTL); err != nil {
		p.opts.Log.Warn("failed to store upload", "err", err)
		return ""
	}
	return id
}

// dispatch selects the client and asks the question, converting panics
// into errors.
func (p *Pipeline) dispatch(ctx context.Context, tbl *table.Table, provider llm.Provider, query string) (answer string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	client, err := p.opts.Selector.Client(provider)
	if err != nil {
		return "", err
	}
	return p.opts.Dispatcher.Dispatch(ctx, tbl, provider, client, query)
}

func (r Result) withError(text string) Result {
	r.Notice = &Notice{Kind: NoticeError, Text: text}
	return r
}
