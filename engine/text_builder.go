package engine

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ============================================================================
// TEXT BUILDER — KPI cards and a plain-text summary
// ============================================================================

// BuildKPICards formats the four headline values in dashboard order.
func BuildKPICards(k KPIs, symbol string, tag language.Tag) []KPICard {
	return []KPICard{
		{Key: "total_investment", Label: "Total Investment", Value: FormatCurrency(k.TotalInvestment, symbol, tag)},
		{Key: "projects", Label: "Projects", Value: FormatInt(k.ProjectCount, tag)},
		{Key: "cities", Label: "Cities", Value: FormatInt(k.DistinctCities, tag)},
		{Key: "avg_investment", Label: "Avg. Investment", Value: FormatCurrency(k.AverageInvestment, symbol, tag)},
	}
}

// BuildSummary renders a report as human-readable lines.
func BuildSummary(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Selection: %s\n", SelectionLabel(r.Selection))
	for _, c := range r.Cards {
		fmt.Fprintf(&b, "%-17s %s\n", c.Label+":", c.Value)
	}
	if len(r.TopProjects) > 0 {
		b.WriteString("Top projects:\n")
		for i, p := range r.TopProjects {
			fmt.Fprintf(&b, "%3d. %s - %s (%s)\n", i+1, p.City, p.ProjectName, p.Investment.String())
		}
	}
	return b.String()
}

// SelectionLabel describes a selection as "region=Africa, sector=All, ...".
func SelectionLabel(sel Selection) string {
	parts := make([]string, 0, len(Facets))
	for _, facet := range Facets {
		v := All
		if sel.Constrained(facet) {
			v = sel[facet]
		}
		parts = append(parts, fmt.Sprintf("%s=%s", facet, v))
	}
	return strings.Join(parts, ", ")
}
