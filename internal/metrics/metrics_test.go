package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"tempScraper/internal/extractor"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := New()

	m.ObserveExtraction(extractor.Stats{RowsSeen: 10, RowsParsed: 8, RowsDropped: 2})
	m.ObserveExport("EMEA", 5)
	m.ObserveExport("EMEA", 1)
	m.ObserveCheck(true)
	m.ObserveCheck(false)
	m.ObserveCheck(true)

	assert.Equal(t, 10.0, testutil.ToFloat64(m.RowsSeen))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RowsDropped))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.RecordsExported.WithLabelValues("EMEA")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChecksTotal.WithLabelValues("pass")))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.ObserveExport("Asia", 3)
	m.LastRunSuccess.Set(1)

	path := filepath.Join(t.TempDir(), "scraper.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `temp_scraper_records_exported_total{region="Asia"} 3`)
	assert.Contains(t, string(data), "temp_scraper_last_run_success 1")
}

func TestMetrics_AccumulateAcrossRuns(t *testing.T) {
	m := New()
	other := New()

	m.ObserveExtraction(extractor.Stats{RowsSeen: 4, RowsParsed: 3, RowsDropped: 1})
	m.ObserveExtraction(extractor.Stats{RowsSeen: 4, RowsParsed: 3, RowsDropped: 1})

	assert.Equal(t, 8.0, testutil.ToFloat64(m.RowsSeen))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RowsDropped))
	assert.Zero(t, testutil.ToFloat64(other.RowsSeen))

	path := filepath.Join(t.TempDir(), "scraper.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "temp_scraper_table_rows_seen_total 8")
}
