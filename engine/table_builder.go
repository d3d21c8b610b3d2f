package engine

import (
	"fmt"

	"golang.org/x/text/language"
)

// ============================================================================
// TABLE BUILDER — Produces TableData for the project details grid
// ============================================================================
// One row per record of the filtered view, in view order. Only the
// investment column is formatted; the export path uses raw values instead.
// ============================================================================

// BuildTable produces the project details table for a filtered view.
func BuildTable(view RecordView, symbol string, tag language.Tag) *TableData {
	columns := []Column{
		{Key: string(FieldRegion), Label: LabelForField(FieldRegion), Type: "text", Align: "left"},
		{Key: string(FieldSector), Label: LabelForField(FieldSector), Type: "text", Align: "left"},
		{Key: string(FieldFinanceStatus), Label: LabelForField(FieldFinanceStatus), Type: "text", Align: "left"},
		{Key: string(FieldCity), Label: LabelForField(FieldCity), Type: "text", Align: "left"},
		{Key: string(FieldProjectName), Label: LabelForField(FieldProjectName), Type: "text", Align: "left"},
		{Key: "investment", Label: "Investment", Type: "currency", Align: "right"},
	}

	rows := make([][]string, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		p := view.Record(i)
		rows = append(rows, []string{
			p.Region,
			p.Sector,
			p.FinanceStatus,
			p.City,
			p.ProjectName,
			FormatCurrency(p.Investment, symbol, tag),
		})
	}

	return &TableData{
		Title:   "Project Details",
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%s records)", FormatInt(view.Len(), tag)),
			Values: map[string]string{
				"investment": FormatCurrency(SumInvestment(view), symbol, tag),
			},
		},
	}
}
