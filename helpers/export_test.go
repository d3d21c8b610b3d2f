package helpers

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/portfolio/engine"
)

func exportFixture() *engine.SliceView {
	return engine.NewDataset([]engine.Project{
		{Region: "Africa", Sector: "Transport", FinanceStatus: "Committed", City: "Accra", ProjectName: "BRT, Phase 2", Investment: decimal.RequireFromString("1250000.10")},
		{Region: "Africa", Sector: "Energy", FinanceStatus: "Pipeline", City: "Lagos", ProjectName: `Solar "Rooftops"`, Investment: decimal.RequireFromString("200")},
		{Region: "Asia", Sector: "Transport", FinanceStatus: "", City: "Hanoi", ProjectName: "Metro Line 3", Investment: decimal.Zero},
	})
}

func TestToDelimitedTextHeader(t *testing.T) {
	body, err := ToDelimitedText(exportFixture())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Region,Sector,Link to finance,City,Project,Investment", lines[0])
	assert.Equal(t, "Africa,Transport,Committed,Accra,\"BRT, Phase 2\",1250000.1", lines[1])
}

func TestToDelimitedTextRoundTrip(t *testing.T) {
	data := exportFixture()
	view := engine.ApplyFilters(data, engine.Selection{engine.FieldRegion: "Africa"})

	body, err := ToDelimitedText(view)
	require.NoError(t, err)

	res, err := ParseCSV(body)
	require.NoError(t, err)
	require.Equal(t, view.Len(), res.Dataset.Len())
	assert.Empty(t, res.Coerced)

	for i := 0; i < view.Len(); i++ {
		want, got := view.Record(i), res.Dataset.Record(i)
		assert.Equal(t, want.Region, got.Region)
		assert.Equal(t, want.Sector, got.Sector)
		assert.Equal(t, want.FinanceStatus, got.FinanceStatus)
		assert.Equal(t, want.City, got.City)
		assert.Equal(t, want.ProjectName, got.ProjectName)
		assert.True(t, want.Investment.Equal(got.Investment), "row %d: %s != %s", i, want.Investment, got.Investment)
	}
}

func TestToDelimitedTextEmptyView(t *testing.T) {
	view := engine.ApplyFilters(exportFixture(), engine.Selection{engine.FieldRegion: "Europe"})
	body, err := ToDelimitedText(view)
	require.NoError(t, err)
	assert.Equal(t, "Region,Sector,Link to finance,City,Project,Investment\n", string(body))

	res, err := ParseCSV(body)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Dataset.Len())
}
