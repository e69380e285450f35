// Package temperature содержит доменную модель таблицы температур:
// разбор строк таблицы, классификацию стран по регионам и проверки сортировки.
package temperature

// Cell представляет одну ячейку <td> в том виде, в каком ее видит DOM.
// Anchor хранит текст первой вложенной ссылки, если она есть.
type Cell struct {
	Text      string
	Anchor    string
	HasAnchor bool
}

// Record одна разобранная строка таблицы. Значения температур хранятся
// в исходном виде, числовая интерпретация делается потребителями.
type Record struct {
	Country             string
	LastTemperature     string
	PreviousTemperature string
	Unit                string
}

// Field выбирает температурную колонку записи
type Field int

const (
	FieldLast Field = iota
	FieldPrevious
)

func (f Field) String() string {
	switch f {
	case FieldLast:
		return "Last_Temperature"
	case FieldPrevious:
		return "Previous_Temperature"
	default:
		return "unknown"
	}
}

// Value возвращает сырой текст выбранной колонки
func (r Record) Value(f Field) string {
	if f == FieldPrevious {
		return r.PreviousTemperature
	}
	return r.LastTemperature
}

// Strings возвращает поля в порядке колонок CSV
func (r Record) Strings() []string {
	return []string{r.Country, r.LastTemperature, r.PreviousTemperature, r.Unit}
}

// FindCountry ищет первую запись с точным совпадением названия страны
func FindCountry(records []Record, country string) (Record, bool) {
	for _, r := range records {
		if r.Country == country {
			return r, true
		}
	}
	return Record{}, false
}

// Countries возвращает названия стран в порядке записей
func Countries(records []Record) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Country
	}
	return names
}
