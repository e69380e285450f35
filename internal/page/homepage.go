// Package page описывает страницу со списком температур по странам:
// локаторы и действия пользователя над ней.
package page

import (
	"context"
	"strings"
	"time"

	"tempScraper/internal/browser"
	"tempScraper/internal/extractor"
	"tempScraper/internal/temperature"

	"go.uber.org/zap"
)

const DefaultURL = "https://tradingeconomics.com/country-list/temperature"

// Локаторы страницы
const (
	HeaderText          = "//h1"
	SearchInput         = "//input[@id='thisIstheSearchBoxIdTag']"
	TableContainer      = `table[class="table table-hover table-striped table-heatmap"]`
	NoResultsMessage    = "//h3[text()='No result found']"
	CountryHeader       = "//th[text()='Country']"
	LastTemperatureHead = "//th[contains(text(),'Last')]"
	CookieAccept        = "//*[contains(text(), 'ACCEPT') or contains(text(), 'AGREE')]"
)

// Таймауты ожиданий
const (
	cookieTimeout  = 5 * time.Second
	loadTimeout    = 20 * time.Second
	visibleTimeout = 5 * time.Second
	headerTimeout  = 10 * time.Second
	searchTimeout  = 30 * time.Second
	resultsTimeout = 10 * time.Second
)

type Options struct {
	URL          string
	SettleDelay  time.Duration
	TableTimeout time.Duration
}

type HomePage struct {
	br        browser.Browser
	extractor *extractor.Extractor
	opts      Options
	log       *zap.Logger
	sleep     func(time.Duration)
}

func NewHomePage(br browser.Browser, opts Options, log *zap.Logger) *HomePage {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.TableTimeout <= 0 {
		opts.TableTimeout = loadTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &HomePage{
		br:        br,
		extractor: extractor.New(extractor.NewDOMSource(br, TableContainer, opts.TableTimeout), log),
		opts:      opts,
		log:       log,
		sleep:     time.Sleep,
	}
}

func (p *HomePage) URL() string {
	return p.opts.URL
}

// Load открывает страницу, по возможности принимает cookie и ждет заголовок
func (p *HomePage) Load(ctx context.Context) error {
	if err := p.br.Navigate(ctx, p.opts.URL); err != nil {
		return err
	}

	if err := p.br.Click(ctx, CookieAccept, cookieTimeout); err != nil {
		p.log.Debug("Баннер cookie не найден или не кликается", zap.Error(err))
	} else {
		p.log.Debug("Баннер cookie принят")
	}

	return p.br.WaitForSelector(ctx, HeaderText, loadTimeout)
}

func (p *HomePage) HeaderText(ctx context.Context) (string, error) {
	if err := p.br.WaitForVisible(ctx, HeaderText, visibleTimeout); err != nil {
		return "", err
	}
	return p.br.InnerText(ctx, HeaderText)
}

// ClickCountryHeader сортирует таблицу по названию страны
func (p *HomePage) ClickCountryHeader(ctx context.Context) error {
	return p.clickHeader(ctx, CountryHeader)
}

// ClickLastTemperatureHeader сортирует таблицу по последнему значению
func (p *HomePage) ClickLastTemperatureHeader(ctx context.Context) error {
	return p.clickHeader(ctx, LastTemperatureHead)
}

func (p *HomePage) clickHeader(ctx context.Context, selector string) error {
	if err := p.br.ClickJS(ctx, selector, headerTimeout); err != nil {
		return err
	}
	// Таблица пересобирается скриптом страницы без сетевых запросов
	p.settle()
	return nil
}

// SearchCountry вводит название в поле поиска и ждет таблицу или сообщение
// об отсутствии результатов.
func (p *HomePage) SearchCountry(ctx context.Context, country string) error {
	if err := p.br.Fill(ctx, SearchInput, country, searchTimeout); err != nil {
		return err
	}

	either := "xpath=//table[contains(@class,'table-heatmap')] | " + NoResultsMessage
	return p.br.WaitForSelector(ctx, either, resultsTimeout)
}

func (p *HomePage) IsNoResultsDisplayed(ctx context.Context) bool {
	if err := p.br.WaitForVisible(ctx, NoResultsMessage, visibleTimeout); err != nil {
		return false
	}
	text, err := p.br.InnerText(ctx, NoResultsMessage)
	if err == nil {
		p.log.Debug("Сообщение об отсутствии результатов", zap.String("text", strings.TrimSpace(text)))
	}
	return true
}

// ExtractTable читает текущее состояние таблицы
func (p *HomePage) ExtractTable(ctx context.Context) []temperature.Record {
	return p.extractor.Extract(ctx)
}

func (p *HomePage) LastStats() extractor.Stats {
	return p.extractor.LastStats()
}

func (p *HomePage) Screenshot(ctx context.Context, path string) error {
	return p.br.Screenshot(ctx, path)
}

func (p *HomePage) settle() {
	if p.opts.SettleDelay > 0 {
		p.sleep(p.opts.SettleDelay)
	}
}
