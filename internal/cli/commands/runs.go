package commands

import (
	"fmt"
	"io"
	"strconv"

	"tempScraper/internal/cli/ui"
	"tempScraper/internal/database"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.uber.org/zap"
)

// RunStore чтение истории прогонов
type RunStore interface {
	ListRuns(limit, offset int) ([]database.Run, error)
	GetRunByID(id uint) (*database.Run, error)
	GetExportsByRunID(runID uint) ([]database.RegionExport, error)
	GetChecksByRunID(runID uint) ([]database.CheckResult, error)
}

// RunsHandler выводит историю прогонов
type RunsHandler struct {
	repo RunStore
	log  *zap.Logger
	out  io.Writer
}

func NewRunsHandler(repo RunStore, log *zap.Logger, out io.Writer) *RunsHandler {
	return &RunsHandler{repo: repo, log: log, out: out}
}

// List выводит последние прогоны
func (h *RunsHandler) List(limit int) error {
	runs, err := h.repo.ListRuns(limit, 0)
	if err != nil {
		h.log.Error("Ошибка получения прогонов", zap.Error(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(h.out, ui.ColorGray+"Прогонов нет"+ui.ColorReset)
		return nil
	}

	t := ui.NewTable(h.out)
	t.AppendHeader(table.Row{"ID", "Тип", "Статус", "Начат", "Записей", "Итог"})
	for _, r := range runs {
		t.AppendRow(table.Row{r.ID, r.Kind, ui.Status(r.Status), r.StartedAt.Format("2006-01-02 15:04:05"), r.RowsParsed, r.Summary})
	}
	t.Render()
	return nil
}

// Show выводит детали прогона с файлами и проверками
func (h *RunsHandler) Show(idStr string) error {
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		ui.Errorf(h.out, "Неверный ID прогона")
		return fmt.Errorf("неверный ID прогона %q", idStr)
	}
	run, err := h.repo.GetRunByID(uint(id))
	if err != nil {
		ui.Errorf(h.out, "Прогон не найден")
		return err
	}

	_, _, statusText := ui.FormatStatus(run.Status)

	ui.Title(h.out, "Прогон #%d", run.ID)
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconDocument+" Тип:"+ui.ColorReset+" %s\n", run.Kind)
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconChart+" Статус:"+ui.ColorReset+" %s\n", statusText)
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconTime+" Начат:"+ui.ColorReset+" %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	if run.FinishedAt != nil {
		fmt.Fprintf(h.out, ui.ColorCyan+ui.IconTime+" Длительность:"+ui.ColorReset+" %s\n", ui.FormatDuration(run.FinishedAt.Sub(run.StartedAt)))
	}
	if run.SourceURL != "" {
		fmt.Fprintf(h.out, ui.ColorCyan+ui.IconGlobe+" Источник:"+ui.ColorReset+" %s\n", run.SourceURL)
	}
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconFolder+" Каталог:"+ui.ColorReset+" %s\n", run.OutputDir)
	if run.Summary != "" {
		fmt.Fprintf(h.out, ui.ColorCyan+"Итог:"+ui.ColorReset+" %s\n", run.Summary)
	}

	switch run.Kind {
	case "check":
		return h.showChecks(run.ID)
	default:
		fmt.Fprintf(h.out, "Строк: %d, записей: %d, пропущено: %d\n", run.RowsSeen, run.RowsParsed, run.RowsDropped)
		return h.showExports(run.ID)
	}
}

func (h *RunsHandler) showExports(runID uint) error {
	exports, err := h.repo.GetExportsByRunID(runID)
	if err != nil {
		h.log.Error("Ошибка получения экспортов", zap.Error(err))
		return err
	}
	if len(exports) == 0 {
		fmt.Fprintln(h.out, "\n"+ui.ColorGray+"Файлы не записаны"+ui.ColorReset)
		return nil
	}

	t := ui.NewTable(h.out)
	t.AppendHeader(table.Row{"Регион", "Записей", "Файл"})
	for _, e := range exports {
		t.AppendRow(table.Row{e.Region, e.Rows, e.FilePath})
	}
	t.Render()
	return nil
}

func (h *RunsHandler) showChecks(runID uint) error {
	results, err := h.repo.GetChecksByRunID(runID)
	if err != nil {
		h.log.Error("Ошибка получения проверок", zap.Error(err))
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(h.out, "\n"+ui.ColorGray+"Проверки не найдены"+ui.ColorReset)
		return nil
	}

	t := ui.NewTable(h.out)
	t.AppendHeader(table.Row{"Проверка", "Статус", "мс", "Сообщение"})
	for _, c := range results {
		t.AppendRow(table.Row{c.Name, ui.Status(c.Status), c.DurationMs, c.Message})
	}
	t.Render()
	return nil
}
