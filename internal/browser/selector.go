package browser

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	containsDouble = regexp.MustCompile(`:contains\("([^"]*)"\)`)
	containsSingle = regexp.MustCompile(`:contains\('([^']*)'\)`)
)

// NormalizeSelector приводит селектор к синтаксису Playwright.
// XPath без префикса получает "xpath=", jQuery :contains() заменяется на :has-text().
// Возвращает нормализованный селектор и флаг, указывающий, был ли селектор изменен.
func NormalizeSelector(selector string) (string, bool) {
	s := strings.TrimSpace(selector)
	if s == "" {
		return selector, false
	}

	if strings.HasPrefix(s, "//") || strings.HasPrefix(s, "(//") {
		return "xpath=" + s, true
	}
	if strings.HasPrefix(s, "xpath=") || strings.HasPrefix(s, "css=") {
		return s, s != selector
	}

	normalized := containsDouble.ReplaceAllString(s, `:has-text("$1")`)
	normalized = containsSingle.ReplaceAllString(normalized, `:has-text('$1')`)

	return normalized, normalized != selector
}

// ValidateSelector проверяет, что селектор не пустой и не является URL.
func ValidateSelector(selector string) error {
	trimmed := strings.TrimSpace(selector)
	if trimmed == "" {
		return fmt.Errorf("селектор не может быть пустым")
	}

	if strings.Contains(trimmed, "://") {
		return fmt.Errorf("селектор не может содержать протокол (://). Получен: %s", selector)
	}

	return nil
}

func prepareSelector(selector string) (string, error) {
	if err := ValidateSelector(selector); err != nil {
		return "", fmt.Errorf("невалидный селектор: %w", err)
	}
	normalized, _ := NormalizeSelector(selector)
	return normalized, nil
}
