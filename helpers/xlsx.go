package helpers

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/portfolio/schema"
)

// ReadXLSX reads a worksheet from an .xlsx workbook into a raw table.
// An empty sheet name selects the first sheet. Cells are read raw so that
// number formats (currency, thousands separators) do not leak into values.
func ReadXLSX(r io.Reader, sheet string) (schema.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return schema.RawTable{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return schema.RawTable{}, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return schema.RawTable{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return schema.RawTable{}, fmt.Errorf("sheet %q has no header row", sheet)
	}

	return schema.RawTable{Headers: rows[0], Rows: rows[1:]}, nil
}
