package smartdf

import (
	"fmt"
	"strconv"
	"strings"

	"data-chat/internal/table"
)

const systemPrompt = `You are a data analyst. You are given a dataframe as CSV together with summary statistics, and a question about it.
Answer using only the data provided. Compute exact values where the question asks for them.
Reply with the answer only: a number, a short sentence, or a small markdown table. Do not show code.`

func buildUserPrompt(tbl *table.Table, query string, maxRows int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dataframe: %d rows x %d columns\n\n", tbl.NumRows(), tbl.NumCols())

	b.WriteString("Columns:\n")
	for _, s := range tbl.Describe() {
		b.WriteString("- ")
		b.WriteString(describeLine(s))
		b.WriteString("\n")
	}

	shown := tbl.Head(maxRows)
	if shown.NumRows() < tbl.NumRows() {
		fmt.Fprintf(&b, "\nFirst %d of %d rows (CSV):\n", shown.NumRows(), tbl.NumRows())
	} else {
		b.WriteString("\nRows (CSV):\n")
	}
	b.WriteString(shown.CSV())

	fmt.Fprintf(&b, "\nQuestion: %s\n", query)
	return b.String()
}

func describeLine(s table.ColumnSummary) string {
	switch s.Kind {
	case table.KindNumeric:
		return fmt.Sprintf("%s (numeric): count=%d mean=%s std=%s min=%s median=%s max=%s",
			s.Name, s.Count, num(s.Mean), num(s.Std), num(s.Min), num(s.P50), num(s.Max))
	case table.KindText:
		return fmt.Sprintf("%s (text): count=%d unique=%d top=%q freq=%d",
			s.Name, s.Count, s.Unique, s.Top, s.Freq)
	default:
		return fmt.Sprintf("%s (empty)", s.Name)
	}
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// cleanAnswer strips surrounding whitespace and a wrapping code fence.
func cleanAnswer(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	body := strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	// drop a language tag on the opening fence
	if i := strings.IndexByte(body, '\n'); i >= 0 && !strings.ContainsAny(body[:i], " \t") {
		body = body[i+1:]
	}
	return strings.TrimSpace(body)
}
