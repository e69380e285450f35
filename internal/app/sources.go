package app

import (
	"context"
	"fmt"

	"tempScraper/internal/browser"
	"tempScraper/internal/config"
	"tempScraper/internal/extractor"
	"tempScraper/internal/page"
	"tempScraper/internal/temperature"

	"go.uber.org/zap"
)

// BrowserFactory создает еще не запущенный браузер
type BrowserFactory func() browser.Browser

// PlaywrightFactory браузер из настроек окружения
func PlaywrightFactory(cfg config.Browser) BrowserFactory {
	return func() browser.Browser {
		return browser.New(browser.Config{
			Engine:          cfg.Engine,
			Headless:        cfg.Headless,
			UserAgent:       cfg.UserAgent,
			Timeout:         cfg.Timeout,
			NavigateTimeout: cfg.NavTimeout,
		})
	}
}

// PageOptions параметры страницы из настроек
func PageOptions(cfg config.Scraper) page.Options {
	return page.Options{
		URL:          cfg.URL,
		SettleDelay:  cfg.SettleDelay,
		TableTimeout: cfg.TableTimeout,
	}
}

// LiveSession страница в собственном экземпляре браузера
type LiveSession struct {
	*page.HomePage
	br browser.Browser
}

// OpenSession запускает браузер и оборачивает его страницей. Загрузка
// страницы остается за вызывающим.
func OpenSession(ctx context.Context, newBrowser BrowserFactory, opts page.Options, log *zap.Logger) (*LiveSession, error) {
	br := newBrowser()
	if err := br.Launch(ctx); err != nil {
		_ = br.Close()
		return nil, err
	}
	return &LiveSession{HomePage: page.NewHomePage(br, opts, log), br: br}, nil
}

func (s *LiveSession) Close() error {
	return s.br.Close()
}

// LiveSource собирает таблицу с живой страницы
type LiveSource struct {
	newBrowser BrowserFactory
	opts       page.Options
	log        *zap.Logger

	session *LiveSession
}

func NewLiveSource(newBrowser BrowserFactory, opts page.Options, log *zap.Logger) *LiveSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &LiveSource{newBrowser: newBrowser, opts: opts, log: log}
}

func (s *LiveSource) Open(ctx context.Context) error {
	session, err := OpenSession(ctx, s.newBrowser, s.opts, s.log)
	if err != nil {
		return err
	}
	if err := session.Load(ctx); err != nil {
		_ = session.Close()
		return err
	}
	s.session = session
	return nil
}

func (s *LiveSource) ExtractTable(ctx context.Context) []temperature.Record {
	if s.session == nil {
		return []temperature.Record{}
	}
	return s.session.ExtractTable(ctx)
}

func (s *LiveSource) LastStats() extractor.Stats {
	if s.session == nil {
		return extractor.Stats{}
	}
	return s.session.LastStats()
}

func (s *LiveSource) Describe() string {
	if s.opts.URL == "" {
		return page.DefaultURL
	}
	return s.opts.URL
}

func (s *LiveSource) Close() error {
	if s.session == nil {
		return nil
	}
	err := s.session.Close()
	s.session = nil
	return err
}

// FileSource собирает таблицу из сохраненной страницы
type FileSource struct {
	path      string
	extractor *extractor.Extractor
	log       *zap.Logger
}

func NewFileSource(path string, log *zap.Logger) *FileSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileSource{path: path, log: log}
}

func (s *FileSource) Open(ctx context.Context) error {
	src, err := extractor.NewHTMLFileSource(s.path, page.TableContainer)
	if err != nil {
		return fmt.Errorf("ошибка чтения %s: %w", s.path, err)
	}
	s.extractor = extractor.New(src, s.log)
	return nil
}

func (s *FileSource) ExtractTable(ctx context.Context) []temperature.Record {
	if s.extractor == nil {
		return []temperature.Record{}
	}
	return s.extractor.Extract(ctx)
}

func (s *FileSource) LastStats() extractor.Stats {
	if s.extractor == nil {
		return extractor.Stats{}
	}
	return s.extractor.LastStats()
}

func (s *FileSource) Describe() string {
	return "file://" + s.path
}

func (s *FileSource) Close() error {
	return nil
}
