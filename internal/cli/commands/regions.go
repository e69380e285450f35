package commands

import (
	"io"
	"strings"

	"tempScraper/internal/cli/ui"
	"tempScraper/internal/temperature"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RegionsHandler выводит таблицу регионов
type RegionsHandler struct {
	out io.Writer
}

func NewRegionsHandler(out io.Writer) *RegionsHandler {
	return &RegionsHandler{out: out}
}

// Show печатает регионы в порядке классификации. Страна, попавшая в несколько
// регионов, достается первому.
func (h *RegionsHandler) Show(regions *temperature.RegionTable, verbose bool) {
	t := ui.NewTable(h.out)
	t.AppendHeader(table.Row{"#", "Регион", "Стран", "Файл"})

	for i, region := range regions.Regions() {
		countries := regions.Countries(region)
		t.AppendRow(table.Row{i + 1, region, len(countries), strings.ToLower(region) + "_temperature_data.csv"})
		if verbose {
			t.AppendRow(table.Row{"", strings.Join(countries, ", ")})
			t.AppendSeparator()
		}
	}

	t.Render()
}

// Classify печатает регион каждой переданной страны
func (h *RegionsHandler) Classify(regions *temperature.RegionTable, countries []string) {
	t := ui.NewTable(h.out)
	t.AppendHeader(table.Row{"Страна", "Регион"})
	for _, c := range countries {
		region, ok := regions.Classify(c)
		if !ok {
			region = ui.ColorGray + "вне регионов" + ui.ColorReset
		}
		t.AppendRow(table.Row{c, region})
	}
	t.Render()
}
