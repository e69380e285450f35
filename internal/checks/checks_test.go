package checks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"tempScraper/internal/exporter"
	"tempScraper/internal/temperature"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	header      string
	initial     []temperature.Record
	sorted      []temperature.Record
	afterSearch []temperature.Record
	loadErr     error

	state    string
	shots    []string
	closed   bool
	searched string
}

func (s *fakeSession) Load(ctx context.Context) error { return s.loadErr }
func (s *fakeSession) HeaderText(ctx context.Context) (string, error) {
	return s.header, nil
}
func (s *fakeSession) ClickCountryHeader(ctx context.Context) error {
	s.state = "sorted"
	return nil
}
func (s *fakeSession) ClickLastTemperatureHeader(ctx context.Context) error {
	s.state = "sorted"
	return nil
}
func (s *fakeSession) SearchCountry(ctx context.Context, country string) error {
	s.searched = country
	s.state = "searched"
	return nil
}
func (s *fakeSession) ExtractTable(ctx context.Context) []temperature.Record {
	switch s.state {
	case "sorted":
		return s.sorted
	case "searched":
		return s.afterSearch
	}
	return s.initial
}
func (s *fakeSession) Screenshot(ctx context.Context, path string) error {
	s.shots = append(s.shots, path)
	return nil
}
func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func table(n int) []temperature.Record {
	countries := []string{
		"United States", "Germany", "China", "Canada", "Mexico", "France",
		"Japan", "Brazil", "Spain", "India", "Peru", "Chad", "Atlantis",
	}
	out := make([]temperature.Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, temperature.Record{
			Country:             countries[i%len(countries)],
			LastTemperature:     fmt.Sprintf("%d.5", 40-i),
			PreviousTemperature: fmt.Sprintf("%d.1", 39-i),
			Unit:                "celsius",
		})
	}
	return out
}

func newEnv(t *testing.T) *Env {
	return &Env{
		OutputDir: t.TempDir(),
		Regions:   temperature.DefaultRegionTable(),
		Exporter:  exporter.New(nil),
	}
}

func runSingle(t *testing.T, name string, s *fakeSession) Result {
	t.Helper()
	selected, err := Select(DefaultChecks(), []string{name})
	require.NoError(t, err)

	r := NewRunner(newEnv(t), func(ctx context.Context) (Session, error) { return s, nil }, nil)
	results := r.Run(context.Background(), selected)
	require.Len(t, results, 1)
	assert.True(t, s.closed)
	return results[0]
}

func TestChecks_AllPassOnHealthyPage(t *testing.T) {
	rows := table(13)
	sorted := make([]temperature.Record, len(rows))
	copy(sorted, rows)

	newSession := func(ctx context.Context) (Session, error) {
		return &fakeSession{
			header:      "Average Temperature by Country",
			initial:     rows,
			sorted:      sorted,
			afterSearch: rows,
		}, nil
	}

	env := newEnv(t)
	r := NewRunner(env, newSession, nil)

	var seen []string
	r.OnResult(func(res Result) { seen = append(seen, res.Name) })

	// сортировка по стране проверяется отдельно: таблица здесь упорядочена по температуре
	all := DefaultChecks()
	var names []string
	for _, c := range all {
		if c.Name != "sort_by_country_ascending" {
			names = append(names, c.Name)
		}
	}
	selected, err := Select(all, names)
	require.NoError(t, err)

	results := r.Run(context.Background(), selected)
	for _, res := range results {
		assert.True(t, res.Passed, "%s: %v", res.Name, res.Err)
	}
	assert.Zero(t, Failed(results))
	assert.Equal(t, names, seen)

	_, err = os.Stat(filepath.Join(env.OutputDir, exporter.AggregateFile))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(env.OutputDir, "emea_temperature_data.csv"))
	assert.NoError(t, err)
}

func TestCheckHeader_Fails(t *testing.T) {
	s := &fakeSession{header: "Something else"}
	res := runSingle(t, "page_header_loads_correctly", s)

	assert.False(t, res.Passed)
	assert.Equal(t, "fail", res.Status())
	require.Len(t, s.shots, 1)
	assert.Equal(t, "page_header_loads_correctly.png", filepath.Base(s.shots[0]))
	assert.Equal(t, s.shots[0], res.Screenshot)
}

func TestCheckSortByCountry(t *testing.T) {
	s := &fakeSession{sorted: []temperature.Record{{Country: "Canada"}, {Country: "Mexico"}, {Country: "United States"}}}
	assert.True(t, runSingle(t, "sort_by_country_ascending", s).Passed)

	s = &fakeSession{sorted: []temperature.Record{{Country: "Mexico"}, {Country: "Canada"}}}
	assert.False(t, runSingle(t, "sort_by_country_ascending", s).Passed)
}

func TestCheckSortByTemperature(t *testing.T) {
	s := &fakeSession{sorted: []temperature.Record{
		{Country: "A", LastTemperature: "10.0"},
		{Country: "B", LastTemperature: "28.1"},
	}}
	assert.False(t, runSingle(t, "sort_by_temperature_descending", s).Passed)
}

func TestCheckScrapeAndExport_TooFewRows(t *testing.T) {
	res := runSingle(t, "scrape_and_export_data", &fakeSession{initial: table(10)})
	assert.False(t, res.Passed)
	assert.ErrorContains(t, res.Err, "собрано 10 строк")
}

func TestCheckSpecificCountry(t *testing.T) {
	rows := table(3)
	rows[0].PreviousTemperature = ""
	res := runSingle(t, "verify_specific_country_data", &fakeSession{initial: rows})
	assert.ErrorContains(t, res.Err, "Previous_Temperature")

	res = runSingle(t, "verify_specific_country_data", &fakeSession{initial: table(3)[1:]})
	assert.ErrorContains(t, res.Err, "не найдены")
}

func TestCheckSearchUnchanged(t *testing.T) {
	rows := table(12)
	s := &fakeSession{initial: rows, afterSearch: nil}

	res := runSingle(t, "search_non_existent_country_table_unchanged", s)
	assert.False(t, res.Passed)
	assert.Equal(t, "NoCountryHere123", s.searched)
}

func TestCheckNumeric(t *testing.T) {
	rows := table(3)
	rows[1].LastTemperature = ""
	assert.True(t, runSingle(t, "temperature_values_are_numeric", &fakeSession{initial: rows}).Passed)

	rows[2].PreviousTemperature = "warm"
	res := runSingle(t, "temperature_values_are_numeric", &fakeSession{initial: rows})
	assert.ErrorContains(t, res.Err, "warm")

	assert.False(t, runSingle(t, "temperature_values_are_numeric", &fakeSession{}).Passed)
}

func TestRunner_LoadFailure(t *testing.T) {
	s := &fakeSession{loadErr: errors.New("navigate timeout after 1m0s")}
	res := runSingle(t, "page_header_loads_correctly", s)

	assert.False(t, res.Passed)
	assert.ErrorContains(t, res.Err, "navigate timeout")
	assert.Len(t, s.shots, 1)
}

func TestRunner_SessionFailure(t *testing.T) {
	r := NewRunner(newEnv(t), func(ctx context.Context) (Session, error) {
		return nil, errors.New("playwright not installed")
	}, nil)

	results := r.Run(context.Background(), DefaultChecks()[:2])
	require.Len(t, results, 2)
	assert.Equal(t, 2, Failed(results))
}

func TestSelect(t *testing.T) {
	got, err := Select(DefaultChecks(), []string{"temperature_values_are_numeric", "page_header_loads_correctly"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "page_header_loads_correctly", got[0].Name)

	_, err = Select(DefaultChecks(), []string{"nope"})
	assert.Error(t, err)

	all, err := Select(DefaultChecks(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 8)
}
