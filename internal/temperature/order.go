package temperature

import "sort"

// IsAscendingByName проверяет, что названия стран уже идут в лексикографическом порядке.
func IsAscendingByName(records []Record) bool {
	return sort.SliceIsSorted(records, func(i, j int) bool {
		return records[i].Country < records[j].Country
	})
}

// IsDescendingByValue проверяет, что числовые значения колонки не возрастают.
// Пустые и нечисловые значения пропускаются.
func IsDescendingByValue(records []Record, field Field) bool {
	values := NumericValues(records, field)
	for i := 1; i < len(values); i++ {
		if values[i-1] < values[i] {
			return false
		}
	}
	return true
}

// NumericValues возвращает разобранные значения колонки, пропуская нечисловые
func NumericValues(records []Record, field Field) []float64 {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		v, err := ParseTemperature(r.Value(field))
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}
