package present

import (
	"data-chat/internal/pipeline"
	"data-chat/internal/table"
)

// Response is the JSON view of a Result.
type Response struct {
	DatasetID      string                `json:"dataset_id,omitempty"`
	Filename       string                `json:"filename,omitempty"`
	Provider       string                `json:"provider,omitempty"`
	Rows           int                   `json:"rows"`
	Columns        []string              `json:"columns"`
	Preview        [][]string            `json:"preview"`
	Summary        []table.ColumnSummary `json:"summary,omitempty"`
	Answer         string                `json:"answer,omitempty"`
	ElapsedSeconds *float64              `json:"elapsed_seconds,omitempty"`
	Notice         *pipeline.Notice      `json:"notice,omitempty"`
}

// NewResponse builds the API response for res.
func NewResponse(res pipeline.Result) Response {
	out := Response{
		DatasetID: res.DatasetID,
		Filename:  res.Filename,
		Provider:  string(res.Provider),
		Columns:   []string{},
		Preview:   [][]string{},
		Summary:   res.Summary,
		Notice:    res.Notice,
	}
	if res.Data != nil {
		out.Rows = res.Data.NumRows()
		out.Columns = res.Data.Columns
	}
	if res.Preview != nil {
		out.Preview = res.Preview.Rows
	}
	if res.Answered {
		out.Answer = res.Answer
		secs := res.Elapsed.Seconds()
		out.ElapsedSeconds = &secs
	}
	return out
}
