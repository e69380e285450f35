package page

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBrowser struct {
	calls      []string
	clickErr   error
	visibleErr error
	text       string
	rows       []interface{}
}

func (f *fakeBrowser) record(s string) { f.calls = append(f.calls, s) }

func (f *fakeBrowser) Launch(ctx context.Context) error { return nil }
func (f *fakeBrowser) Navigate(ctx context.Context, url string) error {
	f.record("navigate " + url)
	return nil
}
func (f *fakeBrowser) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	f.record("wait " + selector)
	return nil
}
func (f *fakeBrowser) WaitForVisible(ctx context.Context, selector string, timeout time.Duration) error {
	f.record("visible " + selector)
	return f.visibleErr
}
func (f *fakeBrowser) Click(ctx context.Context, selector string, timeout time.Duration) error {
	f.record("click " + selector)
	return f.clickErr
}
func (f *fakeBrowser) ClickJS(ctx context.Context, selector string, timeout time.Duration) error {
	f.record("jsclick " + selector)
	return nil
}
func (f *fakeBrowser) Fill(ctx context.Context, selector, text string, timeout time.Duration) error {
	f.record("fill " + text)
	return nil
}
func (f *fakeBrowser) InnerText(ctx context.Context, selector string) (string, error) {
	return f.text, nil
}
func (f *fakeBrowser) Evaluate(ctx context.Context, expression string, arg any) (any, error) {
	f.record("evaluate")
	return f.rows, nil
}
func (f *fakeBrowser) Screenshot(ctx context.Context, path string) error { return nil }
func (f *fakeBrowser) Close() error                                     { return nil }

func TestHomePage_LoadToleratesMissingCookieBanner(t *testing.T) {
	br := &fakeBrowser{clickErr: errors.New("timeout")}
	p := NewHomePage(br, Options{}, nil)

	require.NoError(t, p.Load(context.Background()))
	assert.Equal(t, []string{
		"navigate " + DefaultURL,
		"click " + CookieAccept,
		"wait " + HeaderText,
	}, br.calls)
}

func TestHomePage_HeaderText(t *testing.T) {
	br := &fakeBrowser{text: "Average Temperature by Country"}
	p := NewHomePage(br, Options{URL: "http://localhost/temperature"}, nil)

	text, err := p.HeaderText(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Average Temperature by Country", text)
	assert.Equal(t, "http://localhost/temperature", p.URL())
}

func TestHomePage_ClickHeaderSettles(t *testing.T) {
	br := &fakeBrowser{}
	p := NewHomePage(br, Options{SettleDelay: 3 * time.Second}, nil)

	var slept time.Duration
	p.sleep = func(d time.Duration) { slept += d }

	require.NoError(t, p.ClickCountryHeader(context.Background()))
	require.NoError(t, p.ClickLastTemperatureHeader(context.Background()))

	assert.Equal(t, 6*time.Second, slept)
	assert.Equal(t, []string{"jsclick " + CountryHeader, "jsclick " + LastTemperatureHead}, br.calls)
}

func TestHomePage_IsNoResultsDisplayed(t *testing.T) {
	p := NewHomePage(&fakeBrowser{visibleErr: errors.New("timeout")}, Options{}, nil)
	assert.False(t, p.IsNoResultsDisplayed(context.Background()))

	p = NewHomePage(&fakeBrowser{text: "No result found"}, Options{}, nil)
	assert.True(t, p.IsNoResultsDisplayed(context.Background()))
}

func TestHomePage_ExtractTable(t *testing.T) {
	br := &fakeBrowser{rows: []interface{}{
		[]interface{}{
			map[string]interface{}{"text": "Canada", "anchor": "Canada"},
			map[string]interface{}{"text": "-2.1"},
			map[string]interface{}{"text": "-1.5"},
			map[string]interface{}{"text": "Dec/24"},
			map[string]interface{}{"text": "celsius"},
		},
	}}
	p := NewHomePage(br, Options{}, nil)

	records := p.ExtractTable(context.Background())
	require.Len(t, records, 1)
	assert.Equal(t, "Canada", records[0].Country)
	assert.Equal(t, "celsius", records[0].Unit)
	assert.Equal(t, []string{"wait " + TableContainer, "evaluate"}, br.calls)
}

func TestHomePage_SearchCountry(t *testing.T) {
	br := &fakeBrowser{}
	p := NewHomePage(br, Options{}, nil)

	require.NoError(t, p.SearchCountry(context.Background(), "NoCountryHere123"))
	assert.Equal(t, "fill NoCountryHere123", br.calls[0])
	assert.Contains(t, br.calls[1], NoResultsMessage)
}
