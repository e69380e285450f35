package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tempScraper/internal/checks"
	"tempScraper/internal/cli/ui"
	"tempScraper/internal/database"
	"tempScraper/internal/exporter"
	"tempScraper/internal/metrics"
	"tempScraper/internal/temperature"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// CheckHistory часть репозитория, которая нужна проверкам
type CheckHistory interface {
	CreateRun(run *database.Run) error
	FinishRun(run *database.Run, status, summary string) error
	AddCheckResult(c *database.CheckResult) error
}

type CheckOptions struct {
	BaseDir     string
	MetricsFile string
	SourceURL   string
}

// CheckHandler выполняет набор проверок живой страницы
type CheckHandler struct {
	regions    *temperature.RegionTable
	newSession checks.SessionFactory
	history    CheckHistory
	clock      clockwork.Clock
	opts       CheckOptions
	log        *zap.Logger
	out        io.Writer
}

func NewCheckHandler(regions *temperature.RegionTable, newSession checks.SessionFactory, history CheckHistory, clock clockwork.Clock, opts CheckOptions, log *zap.Logger, out io.Writer) *CheckHandler {
	return &CheckHandler{
		regions:    regions,
		newSession: newSession,
		history:    history,
		clock:      clock,
		opts:       opts,
		log:        log,
		out:        out,
	}
}

// Run возвращает число непройденных проверок
func (h *CheckHandler) Run(ctx context.Context, only []string) (int, error) {
	selected, err := checks.Select(checks.DefaultChecks(), only)
	if err != nil {
		return 0, err
	}

	start := h.clock.Now()
	outDir := exporter.DayDir(h.opts.BaseDir, start)

	m := metrics.New()
	exp := exporter.New(h.log)
	exp.SetObserver(m)

	env := &checks.Env{OutputDir: outDir, Regions: h.regions, Exporter: exp}
	runner := checks.NewRunner(env, h.newSession, h.log)

	run := &database.Run{Kind: "check", Status: "running", SourceURL: h.opts.SourceURL, OutputDir: outDir}
	if h.history != nil {
		if err := h.history.CreateRun(run); err != nil {
			h.log.Warn("Не удалось сохранить прогон", zap.Error(err))
		}
	}

	runner.OnResult(func(res checks.Result) {
		m.ObserveCheck(res.Passed)
		icon, color, _ := ui.FormatStatus(res.Status())
		fmt.Fprintf(h.out, "%s%s %s%s "+ui.ColorGray+"(%s)"+ui.ColorReset+"\n",
			color, icon, res.Name, ui.ColorReset, ui.FormatDuration(res.Duration))
		h.saveResult(run, res)
	})

	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconList+" Проверок: %d"+ui.ColorReset+"\n", len(selected))
	results := runner.Run(ctx, selected)
	failed := checks.Failed(results)

	m.RunDuration.Observe(h.clock.Since(start).Seconds())
	status, summary := "completed", fmt.Sprintf("пройдено %d из %d", len(results)-failed, len(results))
	if failed > 0 || len(results) < len(selected) {
		status = "failed"
		m.LastRunSuccess.Set(0)
	} else {
		m.LastRunSuccess.Set(1)
	}
	if h.history != nil && run.ID != 0 {
		if err := h.history.FinishRun(run, status, summary); err != nil {
			h.log.Warn("Не удалось обновить прогон", zap.Error(err))
		}
	}

	h.writeMetrics(m, outDir)
	h.print(results)

	if len(results) < len(selected) {
		return failed, ctx.Err()
	}
	return failed, nil
}

func (h *CheckHandler) saveResult(run *database.Run, res checks.Result) {
	if h.history == nil || run.ID == 0 {
		return
	}
	row := &database.CheckResult{
		RunID:          run.ID,
		Name:           res.Name,
		Status:         res.Status(),
		ScreenshotPath: res.Screenshot,
		DurationMs:     res.Duration.Milliseconds(),
	}
	if res.Err != nil {
		row.Message = res.Err.Error()
	}
	if err := h.history.AddCheckResult(row); err != nil {
		h.log.Warn("Не удалось сохранить результат проверки", zap.String("check", res.Name), zap.Error(err))
	}
}

func (h *CheckHandler) writeMetrics(m *metrics.Metrics, outDir string) {
	if h.opts.MetricsFile == "" {
		return
	}
	path := filepath.Join(outDir, ChecksMetricsFile(h.opts.MetricsFile))
	if err := ensureParent(path); err != nil {
		h.log.Warn("Метрики не записаны", zap.Error(err))
		return
	}
	if err := m.WriteTextfile(path); err != nil {
		h.log.Warn("Метрики не записаны", zap.Error(err))
	}
}

func (h *CheckHandler) print(results []checks.Result) {
	t := ui.NewTable(h.out)
	t.AppendHeader(table.Row{"Проверка", "Статус", "Время", "Ошибка"})
	for _, res := range results {
		msg := ""
		if res.Err != nil {
			msg = res.Err.Error()
			if res.Screenshot != "" {
				msg += "\n" + res.Screenshot
			}
		}
		t.AppendRow(table.Row{res.Name, ui.Status(res.Status()), ui.FormatDuration(res.Duration), msg})
	}
	t.Render()
}

func ensureParent(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// ChecksMetricsFile имя файла метрик проверок рядом с метриками сбора
func ChecksMetricsFile(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_checks" + ext
}
