// Package ingest turns uploaded spreadsheet files into tables.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"data-chat/internal/table"
)

// Format is a supported upload format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// Extensions lists the accepted file extensions, for upload controls.
var Extensions = []string{".csv", ".xlsx", ".xls"}

// ErrNoColumns is returned when the file holds no header row.
var ErrNoColumns = errors.New("no columns to parse from file")

// UnsupportedFormatError reports a file extension that cannot be ingested.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	ext := e.Ext
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("Unsupported file format %s. Please upload a CSV or Excel file.", ext)
}

// DetectFormat maps a filename to its format by extension, case-insensitively.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
}

// Read parses content according to the filename's extension. Excel
// workbooks are read from their first sheet; the first row is the header.
func Read(filename string, content []byte) (*table.Table, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	var records [][]string
	switch format {
	case FormatCSV:
		records, err = readCSV(content)
	case FormatXLSX:
		records, err = readXLSX(content)
	case FormatXLS:
		records, err = readXLS(content)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %w", format, err)
	}
	return fromRecords(records)
}

func fromRecords(records [][]string) (*table.Table, error) {
	// leading blank rows are skipped like blank lines in CSV
	for len(records) > 0 && isBlank(records[0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, ErrNoColumns
	}
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return table.New(records[0], rows), nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
