package table

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"strings"
)

// Table is an in-memory grid of string cells with named columns.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New builds a table from a raw header and data rows. Header names are
// normalized and every row is padded or widened to the same number of cells.
// Cell values are kept as read.
func New(header []string, rows [][]string) *Table {
	width := len(header)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	cols := make([]string, width)
	copy(cols, header)

	normalized := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, width)
		copy(cells, row)
		normalized[i] = cells
	}
	return &Table{Columns: NormalizeColumns(cols), Rows: normalized}
}

// NormalizeColumns trims names, fills blanks with "Unnamed: <i>" and
// disambiguates duplicates with ".1", ".2" suffixes.
func NormalizeColumns(names []string) []string {
	out := make([]string, len(names))
	seen := make(map[string]int, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			candidate := fmt.Sprintf("%s.%d", name, n+1)
			for {
				if _, taken := seen[candidate]; !taken {
					break
				}
				seen[name]++
				candidate = fmt.Sprintf("%s.%d", name, seen[name])
			}
			seen[candidate] = 0
			out[i] = candidate
			continue
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.Columns) }

// Head returns a table holding at most the first n rows.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

// Column returns every cell of column i, top to bottom.
func (t *Table) Column(i int) []string {
	values := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		if i < len(row) {
			values[r] = row[i]
		}
	}
	return values
}

// CSV renders the header and all rows as comma-separated values.
func (t *Table) CSV() string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(t.Columns)
	_ = w.WriteAll(t.Rows)
	return buf.String()
}

// Fingerprint is a stable hex digest of the table contents.
func (t *Table) Fingerprint() string {
	sum := sha256.Sum256([]byte(t.CSV()))
	return hex.EncodeToString(sum[:])
}
