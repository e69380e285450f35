package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
)

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		status string
		icon   string
		text   string
	}{
		{"completed", IconCheckmark, "завершен"},
		{"pass", IconCheckmark, "пройдена"},
		{"failed", IconCross, "ошибка"},
		{"fail", IconCross, "не пройдена"},
		{"running", IconPlay, "выполняется"},
		{"queued", IconClock, "queued"},
	}
	for _, tt := range tests {
		icon, _, text := FormatStatus(tt.status)
		assert.Equal(t, tt.icon, icon, tt.status)
		assert.Equal(t, tt.text, text, tt.status)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.235s", FormatDuration(1234567*time.Microsecond))
}

func TestNewTable(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTable(&buf)
	tw.AppendHeader(table.Row{"Region", "Countries"})
	tw.AppendRow(table.Row{"EMEA", 3})
	tw.Render()

	assert.Contains(t, buf.String(), "EMEA")
	assert.Contains(t, buf.String(), "╭")
}
