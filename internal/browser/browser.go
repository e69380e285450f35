package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

var ErrNotLaunched = errors.New("браузер не запущен")

func New(cfg Config) *PlaywrightBrowser {
	// Установка дефолтных таймаутов
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.NavigateTimeout == 0 {
		cfg.NavigateTimeout = 60 * time.Second // Navigate обычно дольше
	}
	if cfg.Engine == "" {
		cfg.Engine = "chromium"
	}

	return &PlaywrightBrowser{
		cfg: cfg,
	}
}

// getPage безопасно возвращает текущую страницу с read lock
func (b *PlaywrightBrowser) getPage() (playwright.Page, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.page == nil {
		return nil, ErrNotLaunched
	}
	return b.page, nil
}

func (b *PlaywrightBrowser) browserType(pw *playwright.Playwright) playwright.BrowserType {
	switch b.cfg.Engine {
	case "firefox":
		return pw.Firefox
	case "webkit":
		return pw.WebKit
	default:
		return pw.Chromium
	}
}

func (b *PlaywrightBrowser) Launch(ctx context.Context) error {
	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("ошибка запуска playwright: %w", err)
	}

	br, err := b.browserType(pw).Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.cfg.Headless),
		Args:     []string{"--no-sandbox"},
	})
	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("ошибка запуска браузера %s: %w", b.cfg.Engine, err)
	}

	bctx, err := br.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(b.cfg.UserAgent),
		Viewport:  &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		_ = br.Close()
		_ = pw.Stop()
		return fmt.Errorf("ошибка создания контекста: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = br.Close()
		_ = pw.Stop()
		return fmt.Errorf("ошибка создания страницы: %w", err)
	}
	page.SetDefaultTimeout(float64(b.cfg.Timeout.Milliseconds()))

	b.mu.Lock()
	b.pw = pw
	b.browser = br
	b.context = bctx
	b.page = page
	b.mu.Unlock()

	return nil
}

func (b *PlaywrightBrowser) Navigate(ctx context.Context, url string) error {
	page, err := b.getPage()
	if err != nil {
		return err
	}

	// Создаем context с timeout для navigate операции
	navCtx, cancel := context.WithTimeout(ctx, b.cfg.NavigateTimeout)
	defer cancel()

	// Channel для получения результата
	errChan := make(chan error, 1)
	go func() {
		_, err := page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(float64(b.cfg.NavigateTimeout.Milliseconds())),
		})
		errChan <- err
	}()

	// Ждем результат или timeout
	select {
	case <-navCtx.Done():
		return fmt.Errorf("navigate timeout after %v", b.cfg.NavigateTimeout)
	case err := <-errChan:
		return err
	}
}

func (b *PlaywrightBrowser) Click(ctx context.Context, selector string, timeout time.Duration) error {
	page, err := b.getPage()
	if err != nil {
		return err
	}

	selector, err = prepareSelector(selector)
	if err != nil {
		return err
	}

	return page.Locator(selector).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(b.timeoutMs(timeout)),
	})
}

// ClickJS кликает через element.click(). Заголовки таблицы перекрыты
// плавающими элементами, обычный клик по ним упирается в перехват событий.
func (b *PlaywrightBrowser) ClickJS(ctx context.Context, selector string, timeout time.Duration) error {
	page, err := b.getPage()
	if err != nil {
		return err
	}

	selector, err = prepareSelector(selector)
	if err != nil {
		return err
	}

	element, err := page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(b.timeoutMs(timeout)),
	})
	if err != nil {
		return fmt.Errorf("элемент не найден: %w", err)
	}

	_, err = element.Evaluate(`el => el.click()`)
	return err
}

func (b *PlaywrightBrowser) Fill(ctx context.Context, selector, text string, timeout time.Duration) error {
	page, err := b.getPage()
	if err != nil {
		return err
	}

	selector, err = prepareSelector(selector)
	if err != nil {
		return err
	}

	loc := page.Locator(selector).First()
	opts := playwright.LocatorClickOptions{Timeout: playwright.Float(b.timeoutMs(timeout))}
	if err := loc.Click(opts); err != nil {
		return fmt.Errorf("поле ввода недоступно: %w", err)
	}
	if err := loc.Clear(); err != nil {
		return err
	}
	return loc.Fill(text)
}

func (b *PlaywrightBrowser) InnerText(ctx context.Context, selector string) (string, error) {
	page, err := b.getPage()
	if err != nil {
		return "", err
	}

	selector, err = prepareSelector(selector)
	if err != nil {
		return "", err
	}

	return page.Locator(selector).First().InnerText()
}

func (b *PlaywrightBrowser) Evaluate(ctx context.Context, expression string, arg any) (any, error) {
	page, err := b.getPage()
	if err != nil {
		return nil, err
	}

	if arg == nil {
		return page.Evaluate(expression)
	}
	return page.Evaluate(expression, arg)
}

func (b *PlaywrightBrowser) Screenshot(ctx context.Context, path string) error {
	page, err := b.getPage()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	_, err = page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

func (b *PlaywrightBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.page = nil
	if b.context != nil {
		if err := b.context.Close(); err != nil {
			return err
		}
		b.context = nil
	}
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			return err
		}
		b.browser = nil
	}
	if b.pw != nil {
		err := b.pw.Stop()
		b.pw = nil
		return err
	}
	return nil
}

func (b *PlaywrightBrowser) timeoutMs(timeout time.Duration) float64 {
	if timeout <= 0 {
		timeout = b.cfg.Timeout
	}
	return float64(timeout.Milliseconds())
}
