// Package extractor читает строки таблицы температур из отрисованной страницы
// или сохраненного HTML и превращает их в упорядоченный список записей.
package extractor

import (
	"context"
	"sync"

	"tempScraper/internal/browser"
	"tempScraper/internal/temperature"

	"go.uber.org/zap"
)

// RowSource возвращает текущие строки таблицы в порядке документа.
type RowSource interface {
	Rows(ctx context.Context) ([][]temperature.Cell, error)
}

// Stats итог последнего вызова Extract
type Stats struct {
	RowsSeen    int
	RowsParsed  int
	RowsDropped int
	// TimedOut таблица не появилась за отведенное время
	TimedOut    bool
}

type Extractor struct {
	source   RowSource
	minCells int
	log      *zap.Logger

	mu    sync.Mutex
	stats Stats
}

func New(source RowSource, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		source:   source,
		minCells: temperature.MinCells,
		log:      log,
	}
}

// Extract читает все строки заново при каждом вызове. Таймаут ожидания или
// ошибка источника дают пустой результат, таймаут отмечается в Stats.TimedOut.
func (e *Extractor) Extract(ctx context.Context) []temperature.Record {
	rows, err := e.source.Rows(ctx)
	if err != nil {
		if browser.IsTimeout(err) {
			e.log.Info("Таблица не появилась за отведенное время, данных нет", zap.Error(err))
			e.setStats(Stats{TimedOut: true})
			return []temperature.Record{}
		}
		e.log.Warn("Таблица не получена, результат пустой", zap.Error(err))
		e.setStats(Stats{})
		return []temperature.Record{}
	}

	records := make([]temperature.Record, 0, len(rows))
	for _, cells := range rows {
		rec, ok := temperature.ParseRowMin(cells, e.minCells)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	stats := Stats{
		RowsSeen:    len(rows),
		RowsParsed:  len(records),
		RowsDropped: len(rows) - len(records),
	}
	e.setStats(stats)

	e.log.Debug("Таблица извлечена",
		zap.Int("rows", stats.RowsSeen),
		zap.Int("records", stats.RowsParsed),
		zap.Int("dropped", stats.RowsDropped),
	)

	return records
}

func (e *Extractor) LastStats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

func (e *Extractor) setStats(s Stats) {
	e.mu.Lock()
	e.stats = s
	e.mu.Unlock()
}
