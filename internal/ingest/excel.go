package ingest

import (
	"bytes"
	"errors"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// zip local file header; OOXML workbooks are zip archives.
var zipMagic = []byte("PK\x03\x04")

func readXLSX(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoColumns
	}
	return f.GetRows(sheets[0])
}

func readXLS(content []byte) ([][]string, error) {
	// workbooks saved as OOXML under an .xls name still open
	if bytes.HasPrefix(content, zipMagic) {
		return readXLSX(content)
	}

	wb, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb.NumSheets() == 0 {
		return nil, ErrNoColumns
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("first sheet is unreadable")
	}

	records := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			records = append(records, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = row.Col(c)
		}
		records = append(records, cells)
	}
	return records, nil
}
