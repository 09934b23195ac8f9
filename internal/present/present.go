// Package present turns a pipeline.Result into what the user sees: an HTML
// page, a JSON body or terminal text.
package present

import (
	"fmt"
	"strconv"
	"strings"

	"data-chat/internal/pipeline"
	"data-chat/internal/table"
)

// ElapsedLine formats the answer latency shown under the answer.
func ElapsedLine(res pipeline.Result) string {
	return fmt.Sprintf("Time taken to answer: %.2f seconds", res.Elapsed.Seconds())
}

// SummaryLine renders one column summary as "key=value" pairs.
func SummaryLine(s table.ColumnSummary) string {
	switch s.Kind {
	case table.KindNumeric:
		return fmt.Sprintf("count=%d mean=%s std=%s min=%s 25%%=%s 50%%=%s 75%%=%s max=%s",
			s.Count, num(s.Mean), num(s.Std), num(s.Min), num(s.P25), num(s.P50), num(s.P75), num(s.Max))
	case table.KindText:
		return fmt.Sprintf("count=%d unique=%d top=%q freq=%d", s.Count, s.Unique, s.Top, s.Freq)
	default:
		return "count=0"
	}
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// shape is the "N rows x M columns" caption of a table.
func shape(t *table.Table) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%d rows x %d columns", t.NumRows(), t.NumCols())
}

func noticeLabel(n *pipeline.Notice) string {
	if n == nil {
		return ""
	}
	return strings.ToUpper(string(n.Kind))
}
