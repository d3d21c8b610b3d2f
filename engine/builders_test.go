package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "$0"},
		{"999.49", "$999"},
		{"1234567.5", "$1,234,568"},
		{"-2500", "-$2,500"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.amount), "$", language.English))
		})
	}
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "12,345", FormatInt(12345, language.English))
	assert.Equal(t, "7", FormatInt(7, language.English))
}

func TestBuildCharts(t *testing.T) {
	r, err := Execute(threeProjects(), Selection{})
	require.NoError(t, err)

	byID := make(map[string]ChartConfig)
	for _, c := range r.Charts {
		byID[c.ID] = c
	}
	require.Len(t, byID, 5)

	region := byID[ChartRegion]
	assert.Equal(t, "pie", region.ChartType)
	assert.True(t, region.ShowLegend)
	require.Len(t, region.Series, 1)
	assert.Equal(t, []ChartPoint{{Label: "Africa", Value: 300}, {Label: "Asia", Value: 50}}, region.Series[0].Data)
	assert.Len(t, region.Colors, 2)

	// Sector bars ascend so the largest bar sits at the top.
	sector := byID[ChartSector]
	assert.Equal(t, []ChartPoint{{Label: "Transport", Value: 150}, {Label: "Energy", Value: 200}}, sector.Series[0].Data)
	assert.Equal(t, []string{"Transport"}, r.BySector[0].Key, "report rows keep first-appearance order")

	top := byID[ChartTopProjects]
	require.Len(t, top.Series[0].Data, 3)
	assert.Equal(t, ChartPoint{Label: "Lagos", Value: 200, Hover: "Solar Rooftops"}, top.Series[0].Data[2])
	assert.Equal(t, "Hanoi", top.Series[0].Data[0].Label)

	tree := byID[ChartTreemap]
	assert.Equal(t, "treemap", tree.ChartType)
	require.Len(t, tree.Tree, 2)
	assert.Equal(t, "Africa", tree.Tree[0].ID)
	require.Len(t, tree.Tree[0].Children, 2)
	assert.Equal(t, "Africa/Transport", tree.Tree[0].Children[0].ID)
	assert.Equal(t, "Africa/Transport/Accra", tree.Tree[0].Children[0].Children[0].ID)
	assert.Equal(t, float64(100), tree.Tree[0].Children[0].Children[0].Value)
}

func TestBuildChartsEmptyReport(t *testing.T) {
	r, err := Execute(threeProjects(), Selection{FieldRegion: "Europe"})
	require.NoError(t, err)
	for _, c := range r.Charts {
		for _, s := range c.Series {
			assert.Empty(t, s.Data, c.ID)
		}
		assert.Empty(t, c.Tree, c.ID)
	}
}

func TestBuildTable(t *testing.T) {
	table := BuildTable(threeProjects(), "$", language.English)

	assert.Equal(t, "Project Details", table.Title)
	require.Len(t, table.Columns, 6)
	assert.Equal(t, "Finance Status", table.Columns[2].Label)
	assert.Equal(t, "currency", table.Columns[5].Type)

	assert.Equal(t, []string{"Africa", "Energy", "Pipeline", "Lagos", "Solar Rooftops", "$200"}, table.Rows[1])
	assert.Equal(t, "Total (3 records)", table.Summary.Label)
	assert.Equal(t, "$350", table.Summary.Values["investment"])
}

func TestBuildKPICards(t *testing.T) {
	cards := BuildKPICards(KPIs{
		TotalInvestment:   decimal.RequireFromString("1500000"),
		ProjectCount:      1200,
		DistinctCities:    3,
		AverageInvestment: decimal.RequireFromString("1250"),
	}, "$", language.English)

	assert.Equal(t, []KPICard{
		{Key: "total_investment", Label: "Total Investment", Value: "$1,500,000"},
		{Key: "projects", Label: "Projects", Value: "1,200"},
		{Key: "cities", Label: "Cities", Value: "3"},
		{Key: "avg_investment", Label: "Avg. Investment", Value: "$1,250"},
	}, cards)
}

func TestSelectionLabel(t *testing.T) {
	assert.Equal(t, "region=All, sector=Energy, financeStatus=All", SelectionLabel(Selection{FieldSector: "Energy"}))
}
