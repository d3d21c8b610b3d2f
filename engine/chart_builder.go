package engine

import (
	"strings"
)

// ============================================================================
// CHART BUILDER — Produces ChartConfig from aggregate rows and groups
// ============================================================================
// Charts mirror the dashboard layout: region donut, sector bars, finance
// status bars, top projects and the region/sector/city treemap.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#00A651", "#006837", "#39B54A", "#FFC107", "#2E7D32", "#81C784",
}

// Chart identifiers, stable across passes so clients can key widgets.
const (
	ChartRegion        = "investment_by_region"
	ChartSector        = "investment_by_sector"
	ChartFinanceStatus = "finance_status"
	ChartTopProjects   = "top_projects"
	ChartTreemap       = "investment_distribution"
)

// BuildCharts produces every chart for a report.
func BuildCharts(r *Report) []ChartConfig {
	sectors := append([]AggregateRow(nil), r.BySector...)
	SortRows(sectors, true)

	return []ChartConfig{
		buildRowChart(ChartRegion, "pie", "Investment by Region", FieldRegion, r.ByRegion),
		buildRowChart(ChartSector, "bar_horizontal", "Investment by Sector", FieldSector, sectors),
		buildRowChart(ChartFinanceStatus, "bar", "Finance Status", FieldFinanceStatus, r.ByFinanceStatus),
		buildTopChart(r.TopProjects),
		buildTreemap(r.Hierarchy),
	}
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildRowChart(id, chartType, title string, field Field, rows []AggregateRow) ChartConfig {
	points := make([]ChartPoint, 0, len(rows))
	for _, row := range rows {
		label := ""
		if len(row.Key) > 0 {
			label = row.Key[0]
		}
		points = append(points, ChartPoint{Label: label, Value: toFloat(row.Value)})
	}

	return ChartConfig{
		ID:         id,
		ChartType:  chartType,
		Title:      title,
		XAxis:      LabelForField(field),
		YAxis:      "Investment",
		Series:     []ChartSeries{{Name: "Investment", Data: points}},
		Colors:     assignColors(len(points)),
		ShowLegend: chartType == "pie",
		ShowGrid:   chartType != "pie",
	}
}

// buildTopChart lists the ranked projects smallest first so a horizontal bar
// chart draws the largest at the top.
func buildTopChart(top []Project) ChartConfig {
	points := make([]ChartPoint, len(top))
	for i, p := range top {
		points[len(top)-1-i] = ChartPoint{
			Label: p.City,
			Value: toFloat(p.Investment),
			Hover: p.ProjectName,
		}
	}

	return ChartConfig{
		ID:        ChartTopProjects,
		ChartType: "bar_horizontal",
		Title:     "Top Projects by Investment",
		XAxis:     "Investment",
		YAxis:     LabelForField(FieldCity),
		Series:    []ChartSeries{{Name: "Investment", Data: points}},
		Colors:    assignColors(1),
		ShowGrid:  true,
	}
}

func buildTreemap(groups []Group) ChartConfig {
	return ChartConfig{
		ID:        ChartTreemap,
		ChartType: "treemap",
		Title:     "Investment Distribution (Region & Sector)",
		Tree:      treeNodes(groups),
		Colors:    assignColors(len(groups)),
	}
}

func treeNodes(groups []Group) []TreeNode {
	if len(groups) == 0 {
		return nil
	}
	nodes := make([]TreeNode, 0, len(groups))
	for _, g := range groups {
		nodes = append(nodes, TreeNode{
			ID:       strings.Join(g.Path, "/"),
			Label:    g.Label,
			Value:    toFloat(g.Value),
			Children: treeNodes(g.SubGroups),
		})
	}
	return nodes
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
