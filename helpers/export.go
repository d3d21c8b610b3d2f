package helpers

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/spektr-org/portfolio/engine"
	"github.com/spektr-org/portfolio/schema"
)

// Download metadata for exported views.
const (
	ExportFilename = "cff_filtered_data.csv"
	ExportMIMEType = "text/csv"
)

// ToDelimitedText writes exactly the records in view as UTF-8 CSV: the
// canonical header row, then one row per record in view order. Investment is
// written as an exact decimal so ParseCSV reproduces the same values.
func ToDelimitedText(view engine.RecordView) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(schema.CanonicalHeaders()); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < view.Len(); i++ {
		p := view.Record(i)
		row := []string{p.Region, p.Sector, p.FinanceStatus, p.City, p.ProjectName, p.Investment.String()}
		if err := cw.Write(row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}
