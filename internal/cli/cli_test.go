package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tempScraper/internal/config"
	"tempScraper/internal/exporter"
	"tempScraper/internal/logger"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Cfg{Output: config.Output{BaseDir: t.TempDir()}}
	c := New(cfg, logger.Nop(), nil)
	buf := &bytes.Buffer{}
	c.out = buf
	c.clock = clockwork.NewFakeClockAt(time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC))
	return c, buf
}

func execute(c *CLI, args ...string) error {
	root := c.Root()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestScrapeFromHTML(t *testing.T) {
	c, buf := newTestCLI(t)

	require.NoError(t, execute(c, "scrape", "--from-html", "../extractor/testdata/temperature.html"))

	dir := filepath.Join(c.cfg.Output.BaseDir, "2025-01-15")
	_, err := os.Stat(filepath.Join(dir, exporter.AggregateFile))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "americas_temperature_data.csv"))
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "EMEA")
}

func TestScrapeMissingFile(t *testing.T) {
	c, _ := newTestCLI(t)
	assert.Error(t, execute(c, "scrape", "--from-html", "does-not-exist.html"))
}

func TestRegionsFromFile(t *testing.T) {
	c, buf := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "regions.json5")
	require.NoError(t, os.WriteFile(path, []byte(`[
		// свои регионы
		{region: "Nordics", countries: ["Norway", "Sweden"]},
	]`), 0o644))

	require.NoError(t, execute(c, "--regions", path, "regions", "Norway"))
	assert.Contains(t, buf.String(), "Nordics")
}

func TestRunsWithoutDatabase(t *testing.T) {
	c, _ := newTestCLI(t)
	assert.ErrorContains(t, execute(c, "runs"), "DB_HOST")
}

func TestCheckList(t *testing.T) {
	c, buf := newTestCLI(t)
	require.NoError(t, execute(c, "check", "list"))
	assert.Contains(t, buf.String(), "temperature_values_are_numeric")
}
