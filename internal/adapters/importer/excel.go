package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelSource streams rows from the first sheet of an .xlsx workbook. The
// first row is the header.
type ExcelSource struct {
	f       *excelize.File
	rows    *excelize.Rows
	headers []string
}

// OpenExcel opens the workbook and positions the cursor after the header row.
func OpenExcel(path string) (*ExcelSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if !rows.Next() {
		rows.Close()
		f.Close()
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}
	headers, err := rows.Columns()
	if err != nil {
		rows.Close()
		f.Close()
		return nil, fmt.Errorf("read header row: %w", err)
	}

	return &ExcelSource{f: f, rows: rows, headers: headers}, nil
}

// Headers returns the column names from the first row.
func (s *ExcelSource) Headers() []string { return s.headers }

// Read returns the next row padded to header width, or io.EOF.
func (s *ExcelSource) Read() ([]string, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return nil, fmt.Errorf("advance row: %w", err)
		}
		return nil, io.EOF
	}
	cols, err := s.rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read row: %w", err)
	}
	return pad(cols, len(s.headers)), nil
}

// Close releases the row cursor and the workbook.
func (s *ExcelSource) Close() error {
	s.rows.Close()
	return s.f.Close()
}
