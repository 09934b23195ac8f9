package table

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
)

// Kind classifies the values of a column.
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindText    Kind = "text"
	KindEmpty   Kind = "empty"
)

// ColumnSummary describes one column. Numeric fields are only set for
// numeric columns; Unique/Top/Freq only for text columns.
type ColumnSummary struct {
	Name  string  `json:"name"`
	Kind  Kind    `json:"kind"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean,omitempty"`
	Std   float64 `json:"std,omitempty"`
	Min   float64 `json:"min,omitempty"`
	P25   float64 `json:"p25,omitempty"`
	P50   float64 `json:"p50,omitempty"`
	P75   float64 `json:"p75,omitempty"`
	Max   float64 `json:"max,omitempty"`

	Unique int    `json:"unique,omitempty"`
	Top    string `json:"top,omitempty"`
	Freq   int    `json:"freq,omitempty"`
}

// missingValues are the cell texts read as missing, as pandas does by default.
var missingValues = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true, "N/A": true,
	"NA": true, "NULL": true, "NaN": true, "None": true, "n/a": true, "nan": true, "null": true,
}

// thousands matches numbers grouped with commas, e.g. 1,234,567.89.
var thousands = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// IsMissing reports whether a cell holds no value.
func IsMissing(v string) bool {
	return missingValues[strings.TrimSpace(v)]
}

// Describe summarizes every column. Empty cells and NA markers are treated
// as missing.
func (t *Table) Describe() []ColumnSummary {
	out := make([]ColumnSummary, len(t.Columns))
	for i, name := range t.Columns {
		out[i] = describeColumn(name, t.Column(i))
	}
	return out
}

func describeColumn(name string, values []string) ColumnSummary {
	present := make([]string, 0, len(values))
	for _, v := range values {
		if !IsMissing(v) {
			present = append(present, v)
		}
	}
	summary := ColumnSummary{Name: name, Count: len(present)}
	if len(present) == 0 {
		summary.Kind = KindEmpty
		return summary
	}

	if nums, ok := parseNumbers(present); ok {
		summary.Kind = KindNumeric
		fillNumeric(&summary, nums)
		return summary
	}

	summary.Kind = KindText
	counts := make(map[string]int, len(present))
	for _, v := range present {
		counts[v]++
	}
	summary.Unique = len(counts)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	// ties go to the lexically smallest value
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > summary.Freq {
			summary.Top, summary.Freq = k, counts[k]
		}
	}
	return summary
}

// parseNumbers succeeds only when every value is a finite decimal number.
func parseNumbers(values []string) ([]float64, bool) {
	nums := make([]float64, len(values))
	for i, v := range values {
		f, ok := parseNumber(v)
		if !ok {
			return nil, false
		}
		nums[i] = f
	}
	return nums, true
}

func parseNumber(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if strings.ContainsAny(v, "xX_") {
		return 0, false
	}
	if strings.Contains(v, ",") {
		if !thousands.MatchString(v) {
			return 0, false
		}
		v = strings.ReplaceAll(v, ",", "")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func fillNumeric(s *ColumnSummary, data stats.Float64Data) {
	s.Mean, _ = data.Mean()
	if len(data) > 1 {
		s.Std, _ = stats.StandardDeviationSample(data)
	}
	s.Min, _ = data.Min()
	s.Max, _ = data.Max()
	s.P25, _ = quantile(data, 0.25)
	s.P50, _ = data.Median()
	s.P75, _ = quantile(data, 0.75)
}

// quantile uses linear interpolation between closest ranks.
func quantile(data stats.Float64Data, q float64) (float64, error) {
	if data.Len() == 0 {
		return 0, stats.ErrEmptyInput
	}
	sorted := make([]float64, data.Len())
	copy(sorted, data)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		return sorted[0], nil
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1], nil
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo]), nil
}
