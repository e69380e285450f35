package temperature

import (
	"fmt"
	"os"
	"strings"

	"github.com/titanous/json5"
)

type Region struct {
	Name      string   `json:"region"`
	Countries []string `json:"countries"`
}

// RegionTable неизменяемое соответствие страна -> регион.
// Порядок регионов фиксирован, при дублях побеждает первый регион.
type RegionTable struct {
	order     []string
	countries map[string][]string
	index     map[string]string
}

// Partition записи одного региона в исходном порядке
type Partition struct {
	Region  string
	Records []Record
}

func NewRegionTable(regions ...Region) *RegionTable {
	t := &RegionTable{
		order:     make([]string, 0, len(regions)),
		countries: make(map[string][]string, len(regions)),
		index:     make(map[string]string),
	}

	for _, r := range regions {
		if _, seen := t.countries[r.Name]; !seen {
			t.order = append(t.order, r.Name)
		}
		t.countries[r.Name] = append(t.countries[r.Name], r.Countries...)

		for _, c := range r.Countries {
			if _, taken := t.index[c]; taken {
				continue
			}
			t.index[c] = r.Name
		}
	}

	return t
}

// LoadRegionTable читает регионы из JSON5 файла вида
// [{"region": "Americas", "countries": ["Canada", ...]}, ...].
func LoadRegionTable(path string) (*RegionTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла регионов: %w", err)
	}

	var regions []Region
	if err := json5.Unmarshal(data, &regions); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла регионов %s: %w", path, err)
	}

	for i, r := range regions {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("регион #%d без названия в %s", i+1, path)
		}
	}

	return NewRegionTable(regions...), nil
}

// Classify возвращает регион страны. Сравнение точное, без нормализации регистра.
func (t *RegionTable) Classify(country string) (string, bool) {
	region, ok := t.index[country]
	return region, ok
}

func (t *RegionTable) Regions() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *RegionTable) Countries(region string) []string {
	src := t.countries[region]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// PartitionByRegion раскладывает записи по регионам в порядке таблицы.
// Страны без региона в результат не попадают. Пустые регионы присутствуют
// с пустым списком, решение о файле принимает экспортер.
func PartitionByRegion(records []Record, table *RegionTable) []Partition {
	byRegion := make(map[string][]Record, len(table.order))
	for _, r := range records {
		region, ok := table.Classify(r.Country)
		if !ok {
			continue
		}
		byRegion[region] = append(byRegion[region], r)
	}

	parts := make([]Partition, 0, len(table.order))
	for _, region := range table.order {
		parts = append(parts, Partition{Region: region, Records: byRegion[region]})
	}
	return parts
}
