package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "Region,Sector,Link to finance,City,Project,Investment volume \n" +
	"Africa,Transport,Committed,Accra,Bus Rapid Transit,100\n" +
	"Africa,Energy,Pipeline,Lagos,Solar Rooftops,200\n" +
	"Asia,Transport,Committed,Hanoi,Metro Line 3,N/A\n"

func TestReadCSV(t *testing.T) {
	raw, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Sector", "Link to finance", "City", "Project", "Investment volume "}, raw.Headers)
	require.Len(t, raw.Rows, 3)
	assert.Equal(t, "N/A", raw.Rows[2][5])
}

func TestReadCSVRaggedRowsAndBOM(t *testing.T) {
	raw, err := ReadCSV(strings.NewReader("\xef\xbb\xbfRegion,Sector\nAfrica\nAsia,Energy,extra\n"))
	require.NoError(t, err)

	assert.Equal(t, "Region", raw.Headers[0])
	assert.Equal(t, [][]string{{"Africa"}, {"Asia", "Energy", "extra"}}, raw.Rows)
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty input")
}

func TestParseCSV(t *testing.T) {
	res, err := ParseCSV([]byte(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Dataset.Len())
	assert.Equal(t, "Lagos", res.Dataset.Record(1).City)
	assert.True(t, res.Dataset.Record(2).Investment.IsZero())
	require.Len(t, res.Coerced, 1)
	assert.Equal(t, 3, res.Coerced[0].Row)
}
