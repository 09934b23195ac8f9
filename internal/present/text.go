package present

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"data-chat/internal/pipeline"
)

// Text prints res for a terminal: preview, summaries, answer and latency,
// then the notice if there is one.
func Text(w io.Writer, res pipeline.Result) error {
	var b strings.Builder
	if res.Preview != nil {
		fmt.Fprintf(&b, "%s (%s)\n\n", res.Filename, shape(res.Data))
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(res.Preview.Columns, "\t"))
		for _, row := range res.Preview.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		b.WriteString("\n")
	}
	for _, s := range res.Summary {
		fmt.Fprintf(&b, "%s [%s] %s\n", s.Name, s.Kind, SummaryLine(s))
	}
	if len(res.Summary) > 0 {
		b.WriteString("\n")
	}
	if res.Answered {
		fmt.Fprintf(&b, "%s\n\n%s\n", res.Answer, ElapsedLine(res))
	}
	if res.Notice != nil {
		fmt.Fprintf(&b, "%s: %s\n", noticeLabel(res.Notice), res.Notice.Text)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
