package temperature

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinCells минимальное число ячеек в строке с данными:
// страна, last, previous, reference, unit.
const MinCells = 5

const (
	cellCountry  = 0
	cellLast     = 1
	cellPrevious = 2
	cellUnit     = 4
)

var (
	ErrNoValue    = errors.New("пустое значение температуры")
	ErrNotNumeric = errors.New("значение температуры не является числом")
)

// ParseRow разбирает строку таблицы с порогом MinCells.
func ParseRow(cells []Cell) (Record, bool) {
	return ParseRowMin(cells, MinCells)
}

// ParseRowMin разбирает строку таблицы. Возвращает false, если ячеек меньше
// minCells (но не меньше MinCells, иначе нет колонки unit) или в первой
// ячейке нет ссылки с названием страны. Такие строки просто пропускаются.
func ParseRowMin(cells []Cell, minCells int) (Record, bool) {
	if minCells < MinCells {
		minCells = MinCells
	}
	if len(cells) < minCells {
		return Record{}, false
	}

	country := cells[cellCountry]
	if !country.HasAnchor {
		return Record{}, false
	}
	name := strings.TrimSpace(country.Anchor)
	if name == "" {
		return Record{}, false
	}

	return Record{
		Country:             name,
		LastTemperature:     strings.TrimSpace(cells[cellLast].Text),
		PreviousTemperature: strings.TrimSpace(cells[cellPrevious].Text),
		Unit:                strings.TrimSpace(cells[cellUnit].Text),
	}, true
}

// ParseTemperature убирает разделители тысяч и пробелы и разбирает число.
// Пустая строка означает отсутствие значения (ErrNoValue), а не ноль.
// Шестнадцатеричная запись не принимается, переполнение дает ±Inf.
func ParseTemperature(raw string) (float64, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0, ErrNoValue
	}
	if isHex(s) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, raw)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, raw)
	}
	return v, nil
}

func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
