// Package checks набор проверок живой страницы: заголовок, сортировки,
// поиск, числовые значения и экспорт в CSV.
package checks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"tempScraper/internal/exporter"
	"tempScraper/internal/temperature"
)

const (
	expectedHeader  = "AVERAGE TEMPERATURE BY COUNTRY"
	minExpectedRows = 10
	knownCountry    = "United States"
	missingCountry  = "NoCountryHere123"
)

// TablePage действия над страницей, которые нужны проверкам
type TablePage interface {
	Load(ctx context.Context) error
	HeaderText(ctx context.Context) (string, error)
	ClickCountryHeader(ctx context.Context) error
	ClickLastTemperatureHeader(ctx context.Context) error
	SearchCountry(ctx context.Context, country string) error
	ExtractTable(ctx context.Context) []temperature.Record
	Screenshot(ctx context.Context, path string) error
}

// Env общие для проверок зависимости
type Env struct {
	OutputDir string
	Regions   *temperature.RegionTable
	Exporter  *exporter.Exporter
}

type Check struct {
	Name        string
	Description string
	Run         func(ctx context.Context, env *Env, p TablePage) error
}

// DefaultChecks полный набор в порядке выполнения
func DefaultChecks() []Check {
	return []Check{
		{Name: "page_header_loads_correctly", Description: "Заголовок страницы содержит ожидаемый текст", Run: checkHeader},
		{Name: "sort_by_country_ascending", Description: "Клик по Country сортирует страны по возрастанию", Run: checkSortByCountry},
		{Name: "scrape_and_export_data", Description: "Таблица собирается и выгружается в общий CSV", Run: checkScrapeAndExport},
		{Name: "scrape_and_export_by_region", Description: "Таблица выгружается в CSV по регионам", Run: checkExportByRegion},
		{Name: "verify_specific_country_data", Description: "У United States заполнены обе температуры", Run: checkSpecificCountry},
		{Name: "sort_by_temperature_descending", Description: "Один клик по Last сортирует температуры по убыванию", Run: checkSortByTemperature},
		{Name: "search_non_existent_country_table_unchanged", Description: "Поиск несуществующей страны не меняет таблицу", Run: checkSearchUnchanged},
		{Name: "temperature_values_are_numeric", Description: "Непустые температуры являются числами", Run: checkNumeric},
	}
}

// Select оставляет проверки с указанными именами, сохраняя порядок набора
func Select(all []Check, names []string) ([]Check, error) {
	if len(names) == 0 {
		return all, nil
	}

	known := make(map[string]Check, len(all))
	for _, c := range all {
		known[c.Name] = c
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := known[n]; !ok {
			return nil, fmt.Errorf("неизвестная проверка %q", n)
		}
		wanted[n] = true
	}

	out := make([]Check, 0, len(names))
	for _, c := range all {
		if wanted[c.Name] {
			out = append(out, c)
		}
	}
	return out, nil
}

func checkHeader(ctx context.Context, env *Env, p TablePage) error {
	text, err := p.HeaderText(ctx)
	if err != nil {
		return fmt.Errorf("заголовок не получен: %w", err)
	}
	if !strings.Contains(strings.ToUpper(text), expectedHeader) {
		return fmt.Errorf("ожидался %q в заголовке, получено %q", expectedHeader, text)
	}
	return nil
}

func checkSortByCountry(ctx context.Context, env *Env, p TablePage) error {
	if err := p.ClickCountryHeader(ctx); err != nil {
		return err
	}

	records := p.ExtractTable(ctx)
	if !temperature.IsAscendingByName(records) {
		return fmt.Errorf("страны не отсортированы по возрастанию")
	}
	return nil
}

func checkScrapeAndExport(ctx context.Context, env *Env, p TablePage) error {
	records := p.ExtractTable(ctx)
	if len(records) <= minExpectedRows {
		return fmt.Errorf("собрано %d строк, ожидалось больше %d", len(records), minExpectedRows)
	}
	if records[0].Country == "" {
		return fmt.Errorf("у первой записи нет страны")
	}

	path, err := env.Exporter.ExportAll(records, env.OutputDir)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("CSV %s не создан: %w", path, err)
	}
	return nil
}

func checkExportByRegion(ctx context.Context, env *Env, p TablePage) error {
	records := p.ExtractTable(ctx)
	if len(records) <= minExpectedRows {
		return fmt.Errorf("собрано %d строк, ожидалось больше %d", len(records), minExpectedRows)
	}

	files, err := env.Exporter.ExportByRegion(records, env.Regions, env.OutputDir)
	if err != nil {
		return err
	}
	for region, path := range files {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("CSV региона %s не создан: %w", region, err)
		}
	}
	return nil
}

func checkSpecificCountry(ctx context.Context, env *Env, p TablePage) error {
	rec, ok := temperature.FindCountry(p.ExtractTable(ctx), knownCountry)
	if !ok {
		return fmt.Errorf("данные %q не найдены", knownCountry)
	}
	if rec.LastTemperature == "" {
		return fmt.Errorf("у %q пустой Last_Temperature", knownCountry)
	}
	if rec.PreviousTemperature == "" {
		return fmt.Errorf("у %q пустой Previous_Temperature", knownCountry)
	}
	return nil
}

func checkSortByTemperature(ctx context.Context, env *Env, p TablePage) error {
	if err := p.ClickLastTemperatureHeader(ctx); err != nil {
		return err
	}

	if !temperature.IsDescendingByValue(p.ExtractTable(ctx), temperature.FieldLast) {
		return fmt.Errorf("температуры не отсортированы по убыванию")
	}
	return nil
}

func checkSearchUnchanged(ctx context.Context, env *Env, p TablePage) error {
	before := p.ExtractTable(ctx)

	if err := p.SearchCountry(ctx, missingCountry); err != nil {
		return err
	}

	after := p.ExtractTable(ctx)
	if !slices.Equal(before, after) {
		return fmt.Errorf("таблица изменилась после поиска %q: было %d строк, стало %d",
			missingCountry, len(before), len(after))
	}
	return nil
}

func checkNumeric(ctx context.Context, env *Env, p TablePage) error {
	records := p.ExtractTable(ctx)
	if len(records) == 0 {
		return fmt.Errorf("нет данных для проверки")
	}

	for _, r := range records {
		for _, f := range []temperature.Field{temperature.FieldLast, temperature.FieldPrevious} {
			if _, err := temperature.ParseTemperature(r.Value(f)); err != nil && !errors.Is(err, temperature.ErrNoValue) {
				return fmt.Errorf("%s %q у %q не число", f, r.Value(f), r.Country)
			}
		}
	}
	return nil
}
