package temperature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func byNames(names ...string) []Record {
	out := make([]Record, len(names))
	for i, n := range names {
		out[i] = Record{Country: n}
	}
	return out
}

func byLast(values ...string) []Record {
	out := make([]Record, len(values))
	for i, v := range values {
		out[i] = Record{Country: "X", LastTemperature: v}
	}
	return out
}

func TestIsAscendingByName(t *testing.T) {
	assert.True(t, IsAscendingByName(byNames("Canada", "Mexico", "United States")))
	assert.False(t, IsAscendingByName(byNames("Mexico", "Canada", "United States")))
	assert.True(t, IsAscendingByName(nil))
	assert.True(t, IsAscendingByName(byNames("Chad", "Chad")))
}

func TestIsDescendingByValue(t *testing.T) {
	assert.True(t, IsDescendingByValue(byLast("30.5", "28.1", "28.1", "10.0"), FieldLast))
	assert.False(t, IsDescendingByValue(byLast("10.0", "28.1"), FieldLast))

	// пустые и нечисловые значения не участвуют в сравнении
	assert.True(t, IsDescendingByValue(byLast("1,030.5", "", "n/a", "28.1"), FieldLast))
	assert.True(t, IsDescendingByValue(nil, FieldLast))
}

func TestIsDescendingByValue_Previous(t *testing.T) {
	records := []Record{
		{Country: "A", LastTemperature: "1", PreviousTemperature: "20"},
		{Country: "B", LastTemperature: "5", PreviousTemperature: "10"},
	}
	assert.True(t, IsDescendingByValue(records, FieldPrevious))
	assert.False(t, IsDescendingByValue(records, FieldLast))
}

func TestFindCountry(t *testing.T) {
	records := byNames("Canada", "United States")

	got, ok := FindCountry(records, "United States")
	assert.True(t, ok)
	assert.Equal(t, "United States", got.Country)

	_, ok = FindCountry(records, "Atlantis")
	assert.False(t, ok)
	assert.Equal(t, []string{"Canada", "United States"}, Countries(records))
}
