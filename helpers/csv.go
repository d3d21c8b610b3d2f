package helpers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/spektr-org/portfolio/schema"
)

// ============================================================================
// CSV HELPER — Reads CSV data into a schema.RawTable
// ============================================================================
// Consumer reads the CSV from wherever it lives (file, upload, download).
// This helper only splits cells; schema.Normalize maps them onto projects.
// ============================================================================

// ReadCSV reads a header row and data rows from r.
// Rows may have fewer or more cells than the header.
func ReadCSV(r io.Reader) (schema.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return schema.RawTable{}, fmt.Errorf("read CSV headers: empty input")
		}
		return schema.RawTable{}, fmt.Errorf("read CSV headers: %w", err)
	}
	headers = trimBOM(headers)

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return schema.RawTable{}, fmt.Errorf("read CSV row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, row)
	}

	return schema.RawTable{Headers: headers, Rows: rows}, nil
}

// ParseCSV reads and normalizes CSV bytes in one step.
func ParseCSV(data []byte) (*schema.Result, error) {
	raw, err := ReadCSV(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return schema.Normalize(raw)
}

// trimBOM drops a UTF-8 byte order mark written by spreadsheet exports.
func trimBOM(headers []string) []string {
	if len(headers) > 0 {
		headers[0] = string(bytes.TrimPrefix([]byte(headers[0]), []byte("\xef\xbb\xbf")))
	}
	return headers
}
