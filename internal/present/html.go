package present

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"data-chat/internal/llm"
	"data-chat/internal/pipeline"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTML renders the single page of the web form.
type HTML struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

type page struct {
	Title     string
	Providers []llm.Provider
	Selected  llm.Provider
	Result    pipeline.Result
	Shape     string
	Answer    template.HTML
	Elapsed   string
	Label     string
}

// NewHTML parses the embedded page template.
func NewHTML() (*HTML, error) {
	funcs := template.FuncMap{"summary": SummaryLine}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	return &HTML{tmpl: tmpl, md: md}, nil
}

// Render writes the page for res. The page is built in memory first so a
// template failure never leaves a half-written response.
func (h *HTML) Render(w io.Writer, res pipeline.Result) error {
	p := page{
		Title:     "Chat with your data",
		Providers: llm.Providers,
		Selected:  res.Provider,
		Result:    res,
		Shape:     shape(res.Data),
		Label:     noticeLabel(res.Notice),
	}
	if p.Selected == "" {
		p.Selected = llm.Providers[0]
	}
	if res.Answered {
		answer, err := h.markdown(res.Answer)
		if err != nil {
			return err
		}
		p.Answer = answer
		p.Elapsed = ElapsedLine(res)
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// markdown converts the model's answer. Raw HTML in the answer is omitted
// by goldmark's default renderer.
func (h *HTML) markdown(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("render answer: %w", err)
	}
	return template.HTML(buf.String()), nil
}
