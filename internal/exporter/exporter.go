// Package exporter пишет записи таблицы температур в CSV файлы:
// общий файл и по одному файлу на каждый непустой регион.
package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tempScraper/internal/temperature"

	"go.uber.org/zap"
)

// AggregateFile имя общего файла со всеми строками таблицы
const AggregateFile = "scraped_temperature_data.csv"

var Header = []string{"Country", "Last_Temperature", "Previous_Temperature", "Unit"}

// ExportError фатальная ошибка записи. Оставшиеся регионы не экспортируются,
// уже записанные файлы не откатываются.
type ExportError struct {
	Op   string
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Observer получает число строк, записанных в каждый файл
type Observer interface {
	ObserveExport(region string, rows int)
}

type Exporter struct {
	log      *zap.Logger
	observer Observer
}

func New(log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{log: log}
}

func (e *Exporter) SetObserver(o Observer) {
	e.observer = o
}

// RegionFileName детерминированное имя файла региона
func RegionFileName(region string) string {
	return strings.ToLower(region) + "_temperature_data.csv"
}

// DayDir каталог результатов за день: base/YYYY-MM-DD
func DayDir(base string, now time.Time) string {
	return filepath.Join(base, now.Format("2006-01-02"))
}

// ExportByRegion пишет по файлу на каждый регион, в котором есть хотя бы одна запись.
// Регионы обходятся в порядке таблицы, существующие файлы перезаписываются.
func (e *Exporter) ExportByRegion(records []temperature.Record, table *temperature.RegionTable, outputDir string) (map[string]string, error) {
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}

	files := make(map[string]string)
	for _, part := range temperature.PartitionByRegion(records, table) {
		if len(part.Records) == 0 {
			e.log.Debug("Регион без данных, файл не создается", zap.String("region", part.Region))
			continue
		}

		path := filepath.Join(outputDir, RegionFileName(part.Region))
		if err := writeCSV(path, part.Records); err != nil {
			return files, err
		}
		files[part.Region] = path

		if e.observer != nil {
			e.observer.ObserveExport(part.Region, len(part.Records))
		}
		e.log.Info("Регион экспортирован",
			zap.String("region", part.Region),
			zap.Int("rows", len(part.Records)),
			zap.String("file", path),
		)
	}

	return files, nil
}

// ExportAll пишет все записи в общий файл. Пустой набор файл не создает.
func (e *Exporter) ExportAll(records []temperature.Record, outputDir string) (string, error) {
	if len(records) == 0 {
		e.log.Warn("Нет данных для экспорта")
		return "", nil
	}

	if err := ensureDir(outputDir); err != nil {
		return "", err
	}

	path := filepath.Join(outputDir, AggregateFile)
	if err := writeCSV(path, records); err != nil {
		return "", err
	}

	if e.observer != nil {
		e.observer.ObserveExport("all", len(records))
	}
	e.log.Info("Данные экспортированы", zap.Int("rows", len(records)), zap.String("file", path))
	return path, nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &ExportError{Op: "mkdir", Path: dir, Err: err}
	}
	return nil
}

func writeCSV(path string, records []temperature.Record) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return &ExportError{Op: "open", Path: path, Err: err}
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return &ExportError{Op: "write", Path: path, Err: err}
	}
	for _, r := range records {
		if err := w.Write(r.Strings()); err != nil {
			f.Close()
			return &ExportError{Op: "write", Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return &ExportError{Op: "write", Path: path, Err: err}
	}

	if err := f.Close(); err != nil {
		return &ExportError{Op: "close", Path: path, Err: err}
	}
	return nil
}
