// Package metrics собирает счетчики прогона и сохраняет их в формате
// textfile collector для node_exporter.
package metrics

import (
	"fmt"

	"tempScraper/internal/extractor"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	registry *prometheus.Registry

	RowsSeen        prometheus.Counter
	RecordsParsed   prometheus.Counter
	RowsDropped     prometheus.Counter
	RecordsExported *prometheus.CounterVec // labels: region
	ChecksTotal     *prometheus.CounterVec // labels: status={pass,fail}
	RunDuration     prometheus.Histogram
	LastRunSuccess  prometheus.Gauge
}

// New создает метрики в собственном реестре, а не в глобальном.
// Счетчики накапливаются за все время жизни Metrics: в serve это сумма
// по всем прогонам процесса, в scrape и check один прогон.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RowsSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "temp_scraper",
			Name:      "table_rows_seen_total",
			Help:      "Rows read from the temperature table.",
		}),
		RecordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "temp_scraper",
			Name:      "records_parsed_total",
			Help:      "Rows parsed into records.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "temp_scraper",
			Name:      "rows_dropped_total",
			Help:      "Malformed rows skipped during parsing.",
		}),
		RecordsExported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "temp_scraper",
			Name:      "records_exported_total",
			Help:      "Records written to CSV, by region.",
		}, []string{"region"}),
		ChecksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "temp_scraper",
			Name:      "checks_total",
			Help:      "Verification checks executed, by outcome.",
		}, []string{"status"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "temp_scraper",
			Name:      "run_duration_seconds",
			Help:      "Duration of a scrape run.",
			Buckets:   []float64{1, 5, 10, 20, 30, 60, 120},
		}),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "temp_scraper",
			Name:      "last_run_success",
			Help:      "1 if the last run finished without errors.",
		}),
	}

	m.registry.MustRegister(
		m.RowsSeen,
		m.RecordsParsed,
		m.RowsDropped,
		m.RecordsExported,
		m.ChecksTotal,
		m.RunDuration,
		m.LastRunSuccess,
	)

	return m
}

func (m *Metrics) ObserveExtraction(s extractor.Stats) {
	m.RowsSeen.Add(float64(s.RowsSeen))
	m.RecordsParsed.Add(float64(s.RowsParsed))
	m.RowsDropped.Add(float64(s.RowsDropped))
}

// ObserveExport реализует exporter.Observer
func (m *Metrics) ObserveExport(region string, rows int) {
	m.RecordsExported.WithLabelValues(region).Add(float64(rows))
}

func (m *Metrics) ObserveCheck(passed bool) {
	status := "fail"
	if passed {
		status = "pass"
	}
	m.ChecksTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile атомарно записывает снимок метрик в path
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("ошибка записи метрик: %w", err)
	}
	return nil
}
