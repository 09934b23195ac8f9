package table

import (
	"math"
	"testing"
)

func TestDescribeNumeric(t *testing.T) {
	tbl := New([]string{"age"}, [][]string{{"10"}, {"20"}, {""}, {"30"}, {"40"}})

	s := tbl.Describe()[0]
	if s.Kind != KindNumeric {
		t.Fatalf("expected numeric column, got %s", s.Kind)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"mean", s.Mean, 25},
		{"min", s.Min, 10},
		{"max", s.Max, 40},
		{"p25", s.P25, 17.5},
		{"p50", s.P50, 25},
		{"p75", s.P75, 32.5},
		{"std", s.Std, 12.9099},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 0.001 {
			t.Errorf("%s: got %f, want %f", c.name, c.got, c.want)
		}
	}
	if s.Count != 4 {
		t.Errorf("expected count 4 (empty cell skipped), got %d", s.Count)
	}
}

func TestDescribeText(t *testing.T) {
	tbl := New([]string{"city"}, [][]string{{"Oslo"}, {"Lima"}, {"Oslo"}, {"Rome"}})

	s := tbl.Describe()[0]
	if s.Kind != KindText {
		t.Fatalf("expected text column, got %s", s.Kind)
	}
	if s.Unique != 3 {
		t.Errorf("expected 3 unique values, got %d", s.Unique)
	}
	if s.Top != "Oslo" || s.Freq != 2 {
		t.Errorf("expected top Oslo x2, got %s x%d", s.Top, s.Freq)
	}
}

func TestDescribeMixedAndEmpty(t *testing.T) {
	tbl := New([]string{"mixed", "blank", "single"}, [][]string{
		{"1", "", "7"},
		{"two", "", ""},
	})

	summaries := tbl.Describe()
	if summaries[0].Kind != KindText {
		t.Errorf("expected mixed column to be text, got %s", summaries[0].Kind)
	}
	if summaries[1].Kind != KindEmpty || summaries[1].Count != 0 {
		t.Errorf("expected empty column, got %+v", summaries[1])
	}
	if summaries[2].Std != 0 || summaries[2].P75 != 7 {
		t.Errorf("expected single-value stats, got %+v", summaries[2])
	}
}

func TestDescribeThousandsSeparator(t *testing.T) {
	tbl := New([]string{"revenue"}, [][]string{{"1,000"}, {"2,000"}})

	s := tbl.Describe()[0]
	if s.Kind != KindNumeric || s.Mean != 1500 {
		t.Errorf("expected numeric mean 1500, got %s %f", s.Kind, s.Mean)
	}
}

func TestDescribeMissingMarkers(t *testing.T) {
	tbl := New([]string{"score"}, [][]string{{"NaN"}, {"3"}, {"nan"}, {"N/A"}, {"5"}, {"None"}, {"-NaN"}, {" NULL "}})

	s := tbl.Describe()[0]
	if s.Kind != KindNumeric {
		t.Fatalf("expected numeric column, got %s", s.Kind)
	}
	if s.Count != 2 || s.Mean != 4 || s.Min != 3 || s.Max != 5 {
		t.Errorf("expected NA markers skipped, got %+v", s)
	}
}

func TestDescribeNonFiniteIsText(t *testing.T) {
	tests := []struct {
		name   string
		values []string
	}{
		{"infinity", []string{"1", "inf"}},
		{"negative infinity", []string{"-Infinity", "2"}},
		{"overflow", []string{"1e999", "2"}},
		{"hex float", []string{"0x10", "2"}},
		{"comma list", []string{"1,2,3", "4"}},
		{"bad grouping", []string{"12,34", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([][]string, len(tt.values))
			for i, v := range tt.values {
				rows[i] = []string{v}
			}
			s := New([]string{"v"}, rows).Describe()[0]
			if s.Kind != KindText {
				t.Errorf("expected text column, got %s", s.Kind)
			}
			for _, f := range []float64{s.Mean, s.Std, s.Min, s.Max, s.P25, s.P50, s.P75} {
				if math.IsNaN(f) || math.IsInf(f, 0) {
					t.Errorf("expected finite statistics, got %+v", s)
				}
			}
		})
	}
}

func TestDescribeGroupedThousands(t *testing.T) {
	tbl := New([]string{"revenue"}, [][]string{{"1,234,567.5"}, {"-2,000"}, {" 3 "}})

	s := tbl.Describe()[0]
	if s.Kind != KindNumeric || s.Max != 1234567.5 || s.Min != -2000 {
		t.Errorf("expected grouped numbers parsed, got %+v", s)
	}
}
