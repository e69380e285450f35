package commands

import (
	"context"
	"fmt"
	"io"

	"tempScraper/internal/app"
	"tempScraper/internal/cli/ui"
	"tempScraper/internal/temperature"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.uber.org/zap"
)

// ScrapeHandler запускает один прогон сбора и выводит итог
type ScrapeHandler struct {
	scraper *app.Scraper
	regions *temperature.RegionTable
	log     *zap.Logger
	out     io.Writer
}

func NewScrapeHandler(scraper *app.Scraper, regions *temperature.RegionTable, log *zap.Logger, out io.Writer) *ScrapeHandler {
	return &ScrapeHandler{
		scraper: scraper,
		regions: regions,
		log:     log,
		out:     out,
	}
}

func (h *ScrapeHandler) Run(ctx context.Context, src app.Source) error {
	fmt.Fprintln(h.out, ui.ColorCyan+ui.IconGlobe+" Источник:"+ui.ColorReset+" "+src.Describe())

	report, err := h.scraper.Run(ctx, src)
	if err != nil {
		h.log.Error("Прогон завершился ошибкой", zap.Error(err))
		ui.Errorf(h.out, "Ошибка: %v", err)
		return err
	}

	h.print(report)
	return nil
}

func (h *ScrapeHandler) print(report *app.Report) {
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconChart+" Строк:"+ui.ColorReset+" %d, записей: %d, пропущено: %d\n",
		report.Stats.RowsSeen, report.Stats.RowsParsed, report.Stats.RowsDropped)

	if len(report.Records) == 0 {
		fmt.Fprintln(h.out, ui.ColorYellow+"Таблица пуста, файлы не записаны"+ui.ColorReset)
		return
	}

	counts := make(map[string]int)
	for _, p := range temperature.PartitionByRegion(report.Records, h.regions) {
		counts[p.Region] = len(p.Records)
	}

	t := ui.NewTable(h.out)
	t.AppendHeader(table.Row{"Регион", "Записей", "Файл"})
	t.AppendRow(table.Row{"all", len(report.Records), report.Aggregate})
	for _, region := range report.RegionsInOrder(h.regions) {
		t.AppendRow(table.Row{region, counts[region], report.RegionFiles[region]})
	}
	t.Render()

	ui.Successf(h.out, "Результаты в %s", report.OutputDir)
}
