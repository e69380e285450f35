package extractor

import (
	"context"
	"fmt"
	"time"

	"tempScraper/internal/temperature"
)

// Page узкий контракт браузера, нужный для чтения таблицы
type Page interface {
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error
	Evaluate(ctx context.Context, expression string, arg any) (any, error)
}

// rowsScript возвращает строки tbody в порядке документа: для каждой ячейки
// видимый текст и текст первой вложенной ссылки (null, если ссылки нет).
const rowsScript = `
	(selector) => {
		const table = document.querySelector(selector);
		if (!table) return [];

		return Array.from(table.querySelectorAll(':scope > tbody > tr')).map(tr =>
			Array.from(tr.querySelectorAll(':scope > td')).map(td => {
				const a = td.querySelector('a');
				return {
					text: (td.innerText || '').trim(),
					anchor: a ? (a.innerText || '').trim() : null
				};
			})
		);
	}
`

// DOMSource читает таблицу из живой страницы
type DOMSource struct {
	page     Page
	selector string
	timeout  time.Duration
}

func NewDOMSource(page Page, tableSelector string, timeout time.Duration) *DOMSource {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &DOMSource{
		page:     page,
		selector: tableSelector,
		timeout:  timeout,
	}
}

func (s *DOMSource) Rows(ctx context.Context) ([][]temperature.Cell, error) {
	if err := s.page.WaitForSelector(ctx, s.selector, s.timeout); err != nil {
		return nil, fmt.Errorf("таблица %s не появилась: %w", s.selector, err)
	}

	result, err := s.page.Evaluate(ctx, rowsScript, s.selector)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения JavaScript: %w", err)
	}

	return parseRows(result), nil
}

func parseRows(result any) [][]temperature.Cell {
	rowsData, ok := result.([]interface{})
	if !ok {
		return [][]temperature.Cell{}
	}

	rows := make([][]temperature.Cell, 0, len(rowsData))
	for _, rowData := range rowsData {
		cellsData, ok := rowData.([]interface{})
		if !ok {
			rows = append(rows, nil)
			continue
		}

		cells := make([]temperature.Cell, 0, len(cellsData))
		for _, cellData := range cellsData {
			cells = append(cells, parseCell(cellData))
		}
		rows = append(rows, cells)
	}

	return rows
}

func parseCell(data interface{}) temperature.Cell {
	cell := temperature.Cell{}

	cellMap, ok := data.(map[string]interface{})
	if !ok {
		return cell
	}

	if text, ok := cellMap["text"].(string); ok {
		cell.Text = text
	}
	if anchor, ok := cellMap["anchor"].(string); ok {
		cell.Anchor = anchor
		cell.HasAnchor = true
	}

	return cell
}
