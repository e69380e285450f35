package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"tempScraper/internal/temperature"

	"github.com/google/go-cmp/cmp"
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const tableSelector = "table.table-heatmap"

func fixtureRecords() []temperature.Record {
	return []temperature.Record{
		{Country: "United States", LastTemperature: "12.36", PreviousTemperature: "11.94", Unit: "celsius"},
		{Country: "Germany", LastTemperature: "9.51", PreviousTemperature: "8.72", Unit: "celsius"},
		{Country: "Chad", LastTemperature: "", PreviousTemperature: "28.10", Unit: "celsius"},
		{Country: "Atlantis", LastTemperature: "1,234.5", PreviousTemperature: "1,200.0", Unit: "celsius"},
	}
}

func TestExtract_HTMLSource(t *testing.T) {
	src, err := NewHTMLFileSource("testdata/temperature.html", tableSelector)
	require.NoError(t, err)

	ex := New(src, nil)
	got := ex.Extract(context.Background())

	if diff := cmp.Diff(fixtureRecords(), got); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Stats{RowsSeen: 6, RowsParsed: 4, RowsDropped: 2}, ex.LastStats())
}

func TestExtract_MissingTable(t *testing.T) {
	src, err := NewHTMLSource(strings.NewReader("<html><body><h1>Nothing</h1></body></html>"), tableSelector)
	require.NoError(t, err)

	ex := New(src, nil)
	got := ex.Extract(context.Background())

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, Stats{}, ex.LastStats())
}

func TestExtract_EmptyBody(t *testing.T) {
	src, err := NewHTMLSource(strings.NewReader(`<table class="table-heatmap"><tbody></tbody></table>`), tableSelector)
	require.NoError(t, err)

	assert.Empty(t, New(src, nil).Extract(context.Background()))
}

type fakePage struct {
	waitErr  error
	results  []any
	calls    int
	selector string
}

func (p *fakePage) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	p.selector = selector
	return p.waitErr
}

func (p *fakePage) Evaluate(ctx context.Context, expression string, arg any) (any, error) {
	res := p.results[p.calls]
	p.calls++
	return res, nil
}

func domRow(country string, texts ...string) []interface{} {
	row := []interface{}{map[string]interface{}{"text": country, "anchor": country}}
	for _, t := range texts {
		row = append(row, map[string]interface{}{"text": t, "anchor": nil})
	}
	return row
}

func TestExtract_DOMSource(t *testing.T) {
	page := &fakePage{results: []any{
		[]interface{}{
			domRow("Canada", "-2.1", "-1.5", "Dec/24", "celsius"),
			domRow("Mexico", "25.0", "24.1"),
			domRow("Peru", "19.2", "18.9", "Dec/24", "celsius"),
		},
	}}

	ex := New(NewDOMSource(page, tableSelector, time.Second), nil)
	got := ex.Extract(context.Background())

	assert.Equal(t, tableSelector, page.selector)
	assert.Equal(t, []string{"Canada", "Peru"}, temperature.Countries(got))
	assert.Equal(t, 1, ex.LastStats().RowsDropped)
}

func TestExtract_DOMSourceTimeout(t *testing.T) {
	page := &fakePage{waitErr: errors.New("Timeout 20000ms exceeded")}

	got := New(NewDOMSource(page, tableSelector, time.Second), nil).Extract(context.Background())

	assert.Empty(t, got)
	assert.Zero(t, page.calls, "после таймаута таблица не читается")
}

func TestExtract_RenderTimeoutIsNoData(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	page := &fakePage{waitErr: fmt.Errorf("wait for %s: %w", tableSelector, playwright.ErrTimeout)}
	ex := New(NewDOMSource(page, tableSelector, time.Second), zap.New(core))

	got := ex.Extract(context.Background())

	assert.Empty(t, got)
	assert.Equal(t, Stats{TimedOut: true}, ex.LastStats())
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "Таблица не появилась за отведенное время, данных нет", entry.Message)
}

func TestExtract_SourceErrorIsNotTimeout(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	page := &fakePage{waitErr: errors.New("target page closed")}
	ex := New(NewDOMSource(page, tableSelector, time.Second), zap.New(core))

	assert.Empty(t, ex.Extract(context.Background()))
	assert.Equal(t, Stats{}, ex.LastStats())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

func TestExtract_NoCachingBetweenCalls(t *testing.T) {
	page := &fakePage{results: []any{
		[]interface{}{
			domRow("Mexico", "25.0", "24.1", "Dec/24", "celsius"),
			domRow("Canada", "-2.1", "-1.5", "Dec/24", "celsius"),
		},
		[]interface{}{
			domRow("Canada", "-2.1", "-1.5", "Dec/24", "celsius"),
			domRow("Mexico", "25.0", "24.1", "Dec/24", "celsius"),
		},
	}}
	ex := New(NewDOMSource(page, tableSelector, time.Second), nil)

	before := ex.Extract(context.Background())
	after := ex.Extract(context.Background())

	assert.False(t, temperature.IsAscendingByName(before))
	assert.True(t, temperature.IsAscendingByName(after))
	assert.Equal(t, 2, page.calls)
}

func TestParseRows_UnexpectedShape(t *testing.T) {
	assert.Empty(t, parseRows("not a list"))

	rows := parseRows([]interface{}{"broken", []interface{}{42}})
	require.Len(t, rows, 2)
	assert.Nil(t, rows[0])
	assert.Equal(t, []temperature.Cell{{}}, rows[1])
}
