package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data.xlsx", cfg.DataPath)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "$", cfg.Currency)
	assert.Empty(t, cfg.Sheet)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORTFOLIO_DATA", "projects.csv")
	t.Setenv("PORTFOLIO_TOP_N", "5")
	t.Setenv("PORTFOLIO_SHEET", "Portfolio")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "projects.csv", cfg.DataPath)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, "Portfolio", cfg.Sheet)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("PORTFOLIO_TOP_N", "not-an-int")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
