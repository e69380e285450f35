package ui

import (
	"fmt"
	"io"
	"time"
)

// FormatStatus возвращает иконку, цвет и текст для статуса прогона или проверки
func FormatStatus(status string) (icon, color, text string) {
	switch status {
	case "completed":
		return IconCheckmark, ColorGreen, "завершен"
	case "pass":
		return IconCheckmark, ColorGreen, "пройдена"
	case "failed":
		return IconCross, ColorRed, "ошибка"
	case "fail":
		return IconCross, ColorRed, "не пройдена"
	case "running":
		return IconPlay, ColorCyan, "выполняется"
	default:
		return IconClock, ColorYellow, status
	}
}

// Status раскрашенный статус для вывода в таблицу
func Status(status string) string {
	icon, color, text := FormatStatus(status)
	return color + icon + " " + text + ColorReset
}

// FormatDuration округляет длительность до миллисекунд
func FormatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

func Errorf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ColorRed+IconCross+" "+format+ColorReset+"\n", args...)
}

func Successf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ColorGreen+IconCheckmark+" "+format+ColorReset+"\n", args...)
}

func Title(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\n"+ColorBold+"=== "+format+" ==="+ColorReset+"\n", args...)
}
