package schema

import (
	"strings"

	"github.com/spektr-org/portfolio/engine"
)

// ============================================================================
// NORMALIZE — raw table → canonical dataset
// ============================================================================
// Pipeline:
//   1. Trim every header
//   2. Resolve canonical columns through their matchers (SchemaError if any
//      is unresolved)
//   3. Record non-canonical columns as skipped
//   4. Build one Project per non-blank row, coercing investment
// Cell text other than investment is kept verbatim. The input table is never
// modified.
// ============================================================================

// Normalize maps a raw table onto the canonical project schema.
func Normalize(raw RawTable) (*Result, error) {
	headers := TrimHeaders(raw.Headers)

	claimed := make(map[int]bool)
	index := make(map[engine.Field]int, len(Columns))
	res := &Result{}
	var missing []string

	for _, col := range Columns {
		i, matcher := resolve(headers, col.Matchers, claimed)
		if i < 0 {
			missing = append(missing, col.Header)
			continue
		}
		claimed[i] = true
		index[col.Field] = i
		res.Columns = append(res.Columns, ResolvedColumn{
			Field:     col.Field,
			RawHeader: headers[i],
			Index:     i,
			Matcher:   matcher,
		})
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing, Headers: headers}
	}

	for i, h := range headers {
		if !claimed[i] {
			res.Skipped = append(res.Skipped, SkippedColumn{
				Column: h,
				Index:  i,
				Reason: "not a canonical column",
			})
		}
	}

	projects := make([]engine.Project, 0, len(raw.Rows))
	for n, row := range raw.Rows {
		if isBlankRow(row) {
			res.BlankRows++
			continue
		}
		cell := func(f engine.Field) string {
			i := index[f]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}

		investment, ok := CoerceInvestment(cell(FieldInvestment))
		if !ok {
			res.Coerced = append(res.Coerced, Coercion{Row: n + 1, Raw: cell(FieldInvestment)})
		}

		projects = append(projects, engine.Project{
			Region:        cell(engine.FieldRegion),
			Sector:        cell(engine.FieldSector),
			FinanceStatus: cell(engine.FieldFinanceStatus),
			City:          cell(engine.FieldCity),
			ProjectName:   cell(engine.FieldProjectName),
			Investment:    investment,
		})
	}

	res.Rows = len(projects)
	res.Dataset = engine.NewDataset(projects)
	return res, nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
