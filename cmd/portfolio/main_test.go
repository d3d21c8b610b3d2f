package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/portfolio/engine"
)

const fixtureCSV = "Region,Sector,Link to finance,City,Project,Investment volume\n" +
	"Africa,Transport,Committed,Accra,Bus Rapid Transit,100\n" +
	"Africa,Energy,Pipeline,Lagos,Solar Rooftops,200\n" +
	"Asia,Transport,Committed,Hanoi,Metro Line 3,50\n"

func fixtureFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0o644))
	return path
}

func TestRunReportText(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), "report", []string{"-file", fixtureFile(t), "-region", "Africa", "-format", "text"}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Selection: region=Africa, sector=All, financeStatus=All")
	assert.Contains(t, out.String(), "Total Investment: $300")
	assert.Contains(t, out.String(), "1. Lagos - Solar Rooftops (200)")
}

func TestRunReportJSON(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), "report", []string{"-file", fixtureFile(t), "-top", "1"}, &out)
	require.NoError(t, err)

	var body struct {
		KPIs struct {
			ProjectCount int `json:"projectCount"`
		} `json:"kpis"`
		TopProjects []engine.Project `json:"topProjects"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	assert.Equal(t, 3, body.KPIs.ProjectCount)
	require.Len(t, body.TopProjects, 1)
	assert.Equal(t, "Solar Rooftops", body.TopProjects[0].ProjectName)
}

func TestRunReportCSV(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), "report", []string{"-file", fixtureFile(t), "-format", "csv"}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Investment by Region,Region,Investment\n")
	assert.Contains(t, out.String(), "Investment by Region,Africa,300\n")
	assert.Contains(t, out.String(), "Investment Distribution (Region & Sector),Africa / Energy / Lagos,200\n")
}

func TestRunReportRejectsBadTop(t *testing.T) {
	err := run(context.Background(), "report", []string{"-file", fixtureFile(t), "-top", "0"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvalidArgument))
}

func TestRunExport(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "filtered.csv")
	err := run(context.Background(), "export", []string{"-file", fixtureFile(t), "-sector", "Transport", "-out", outPath}, &bytes.Buffer{})
	require.NoError(t, err)

	body, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Region,Sector,Link to finance,City,Project,Investment", lines[0])
	assert.Equal(t, "Asia,Transport,Committed,Hanoi,Metro Line 3,50", lines[2])
}

func TestRunFacetsText(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), "facets", []string{"-file", fixtureFile(t), "-format", "text"}, &out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "Region:\n  All\n  Africa\n  Asia\n"))
	assert.Contains(t, out.String(), "Finance Status:\n")
}

func TestRunVersionAndUnknown(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "version", nil, &out))
	assert.Equal(t, "portfolio "+version+"\n", out.String())

	err := run(context.Background(), "plot", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "plot"`)
}

func TestRunHelpFlag(t *testing.T) {
	err := run(context.Background(), "report", []string{"-h"}, &bytes.Buffer{})
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestRunUsesEnvDefaults(t *testing.T) {
	t.Setenv("PORTFOLIO_DATA", fixtureFile(t))
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "export", []string{"-region", "Asia"}, &out))
	assert.Contains(t, out.String(), "Metro Line 3")
	assert.NotContains(t, out.String(), "Accra")
}

func TestFmtNum(t *testing.T) {
	assert.Equal(t, "300", fmtNum(300))
	assert.Equal(t, "12.50", fmtNum(12.5))
}

// failWriter accepts limit bytes and then fails every write.
type failWriter struct{ limit int }

func (w *failWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		n := w.limit
		w.limit = 0
		return n, errors.New("disk full")
	}
	w.limit -= len(p)
	return len(p), nil
}

func TestWriteChartsCSVReportsWriteError(t *testing.T) {
	// Enough rows to overflow the csv buffer mid-chart.
	points := make([]engine.ChartPoint, 500)
	for i := range points {
		points[i] = engine.ChartPoint{Label: strings.Repeat("x", 40), Value: float64(i)}
	}
	charts := []engine.ChartConfig{{
		Title:  "Investment by City",
		Series: []engine.ChartSeries{{Name: "Investment", Data: points}},
	}}

	var out bytes.Buffer
	require.NoError(t, writeChartsCSV(&out, charts))
	assert.Greater(t, out.Len(), 4096)

	err := writeChartsCSV(&failWriter{limit: 100}, charts)
	assert.EqualError(t, err, "disk full")
}

func TestRunReportCSVWriteError(t *testing.T) {
	err := run(context.Background(), "report", []string{"-file", fixtureFile(t), "-format", "csv"}, &failWriter{limit: 10})
	assert.EqualError(t, err, "disk full")
}

func TestCloseWith(t *testing.T) {
	closeErr := errors.New("close failed")

	var err error
	closeWith(func() error { return closeErr }, &err)
	require.Error(t, err)
	assert.True(t, errors.Is(err, closeErr))
	assert.Contains(t, err.Error(), "close output")

	err = errors.New("write failed")
	closeWith(func() error { return closeErr }, &err)
	assert.EqualError(t, err, "write failed")

	err = nil
	closeWith(func() error { return nil }, &err)
	assert.NoError(t, err)
}

func TestRunServeRejectsBadTop(t *testing.T) {
	err := run(context.Background(), "serve", []string{"-file", fixtureFile(t), "-top", "0"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvalidArgument))
}
