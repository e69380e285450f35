// Package app связывает страницу, экспорт, метрики и историю прогонов
// в один прогон сбора таблицы.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tempScraper/internal/database"
	"tempScraper/internal/exporter"
	"tempScraper/internal/extractor"
	"tempScraper/internal/metrics"
	"tempScraper/internal/temperature"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Source источник записей одного прогона: живая страница или сохраненный HTML
type Source interface {
	Open(ctx context.Context) error
	ExtractTable(ctx context.Context) []temperature.Record
	LastStats() extractor.Stats
	Describe() string
	Close() error
}

// History хранилище истории прогонов. nil отключает запись.
type History interface {
	CreateRun(run *database.Run) error
	FinishRun(run *database.Run, status, summary string) error
	AddExport(e *database.RegionExport) error
}

type Options struct {
	BaseDir     string
	MetricsFile string
}

type Report struct {
	OutputDir   string
	Records     []temperature.Record
	Stats       extractor.Stats
	Aggregate   string
	RegionFiles map[string]string
}

// RegionsInOrder возвращает регионы с файлами в порядке таблицы
func (r *Report) RegionsInOrder(table *temperature.RegionTable) []string {
	var out []string
	for _, region := range table.Regions() {
		if _, ok := r.RegionFiles[region]; ok {
			out = append(out, region)
		}
	}
	return out
}

type Scraper struct {
	regions  *temperature.RegionTable
	exporter *exporter.Exporter
	metrics  *metrics.Metrics
	history  History
	clock    clockwork.Clock
	opts     Options
	log      *zap.Logger
}

func NewScraper(regions *temperature.RegionTable, m *metrics.Metrics, history History, clock clockwork.Clock, opts Options, log *zap.Logger) *Scraper {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}

	exp := exporter.New(log)
	exp.SetObserver(m)

	return &Scraper{
		regions:  regions,
		exporter: exp,
		metrics:  m,
		history:  history,
		clock:    clock,
		opts:     opts,
		log:      log,
	}
}

// OutputDir каталог результатов на текущую дату
func (s *Scraper) OutputDir() string {
	return exporter.DayDir(s.opts.BaseDir, s.clock.Now())
}

func (s *Scraper) Exporter() *exporter.Exporter {
	return s.exporter
}

// Run собирает таблицу один раз и выгружает общий и региональные CSV.
// Ошибка записи файлов прерывает прогон, уже записанные файлы остаются.
func (s *Scraper) Run(ctx context.Context, src Source) (*Report, error) {
	start := s.clock.Now()
	outDir := s.OutputDir()

	run := &database.Run{Kind: "scrape", Status: "running", SourceURL: src.Describe(), OutputDir: outDir}
	s.recordRun(run)

	report, err := s.run(ctx, src, outDir)
	if report != nil {
		run.RowsSeen = report.Stats.RowsSeen
		run.RowsParsed = report.Stats.RowsParsed
		run.RowsDropped = report.Stats.RowsDropped
		s.recordExports(run, report)
	}

	s.metrics.RunDuration.Observe(s.clock.Since(start).Seconds())
	if err != nil {
		s.metrics.LastRunSuccess.Set(0)
		s.finishRun(run, "failed", err.Error())
	} else {
		s.metrics.LastRunSuccess.Set(1)
		s.finishRun(run, "completed", fmt.Sprintf("%d записей, %d регионов", len(report.Records), len(report.RegionFiles)))
	}
	s.writeMetrics(outDir)

	return report, err
}

func (s *Scraper) run(ctx context.Context, src Source, outDir string) (*Report, error) {
	if err := src.Open(ctx); err != nil {
		return nil, fmt.Errorf("ошибка открытия источника %s: %w", src.Describe(), err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			s.log.Warn("Ошибка закрытия источника", zap.Error(err))
		}
	}()

	records := src.ExtractTable(ctx)
	stats := src.LastStats()
	s.metrics.ObserveExtraction(stats)

	report := &Report{OutputDir: outDir, Records: records, Stats: stats, RegionFiles: map[string]string{}}
	s.log.Info("Таблица собрана",
		zap.String("source", src.Describe()),
		zap.Int("records", len(records)),
		zap.Int("dropped", stats.RowsDropped),
	)

	aggregate, err := s.exporter.ExportAll(records, outDir)
	if err != nil {
		return report, err
	}
	report.Aggregate = aggregate

	files, err := s.exporter.ExportByRegion(records, s.regions, outDir)
	for region, path := range files {
		report.RegionFiles[region] = path
	}
	if err != nil {
		return report, err
	}

	return report, nil
}

func (s *Scraper) recordRun(run *database.Run) {
	if s.history == nil {
		return
	}
	if err := s.history.CreateRun(run); err != nil {
		s.log.Warn("Не удалось сохранить прогон", zap.Error(err))
	}
}

func (s *Scraper) finishRun(run *database.Run, status, summary string) {
	if s.history == nil || run.ID == 0 {
		return
	}
	if err := s.history.FinishRun(run, status, summary); err != nil {
		s.log.Warn("Не удалось обновить прогон", zap.Error(err))
	}
}

func (s *Scraper) recordExports(run *database.Run, report *Report) {
	if s.history == nil || run.ID == 0 {
		return
	}

	rows := countByRegion(report.Records, s.regions)
	exports := make([]database.RegionExport, 0, len(report.RegionFiles)+1)
	if report.Aggregate != "" {
		exports = append(exports, database.RegionExport{RunID: run.ID, Region: "all", Rows: len(report.Records), FilePath: report.Aggregate})
	}

	for _, region := range report.RegionsInOrder(s.regions) {
		exports = append(exports, database.RegionExport{RunID: run.ID, Region: region, Rows: rows[region], FilePath: report.RegionFiles[region]})
	}

	for i := range exports {
		if err := s.history.AddExport(&exports[i]); err != nil {
			s.log.Warn("Не удалось сохранить экспорт", zap.Error(err))
			return
		}
	}
}

func (s *Scraper) writeMetrics(outDir string) {
	if s.opts.MetricsFile == "" {
		return
	}
	path := s.opts.MetricsFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(outDir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.log.Warn("Метрики не записаны", zap.Error(err))
		return
	}
	if err := s.metrics.WriteTextfile(path); err != nil {
		s.log.Warn("Метрики не записаны", zap.Error(err))
	}
}

func countByRegion(records []temperature.Record, table *temperature.RegionTable) map[string]int {
	out := make(map[string]int)
	for _, p := range temperature.PartitionByRegion(records, table) {
		out[p.Region] = len(p.Records)
	}
	return out
}
