package extractor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"tempScraper/internal/temperature"

	"github.com/PuerkitoBio/goquery"
)

// HTMLSource читает таблицу из сохраненной страницы. Документ разбирается
// один раз, поэтому повторные вызовы Rows видят одно и то же состояние.
type HTMLSource struct {
	doc      *goquery.Document
	selector string
}

func NewHTMLSource(r io.Reader, tableSelector string) (*HTMLSource, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора HTML: %w", err)
	}
	return &HTMLSource{doc: doc, selector: tableSelector}, nil
}

func NewHTMLFileSource(path, tableSelector string) (*HTMLSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewHTMLSource(f, tableSelector)
}

func (s *HTMLSource) Rows(ctx context.Context) ([][]temperature.Cell, error) {
	table := s.doc.Find(s.selector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("таблица %s не найдена", s.selector)
	}

	var rows [][]temperature.Cell
	table.ChildrenFiltered("tbody").ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []temperature.Cell
		tr.ChildrenFiltered("td").Each(func(_ int, td *goquery.Selection) {
			cell := temperature.Cell{Text: collapseSpace(td.Text())}
			if a := td.Find("a").First(); a.Length() > 0 {
				cell.Anchor = collapseSpace(a.Text())
				cell.HasAnchor = true
			}
			cells = append(cells, cell)
		})
		rows = append(rows, cells)
	})

	return rows, nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
