package browser

import (
	"context"
	"errors"
	"time"

	"github.com/playwright-community/playwright-go"
)

// IsTimeout сообщает, что ожидание элемента истекло
func IsTimeout(err error) bool {
	return errors.Is(err, playwright.ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}

func (b *PlaywrightBrowser) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	return b.waitFor(selector, playwright.WaitForSelectorStateAttached, timeout)
}

func (b *PlaywrightBrowser) WaitForVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return b.waitFor(selector, playwright.WaitForSelectorStateVisible, timeout)
}

func (b *PlaywrightBrowser) waitFor(selector string, state *playwright.WaitForSelectorState, timeout time.Duration) error {
	page, err := b.getPage()
	if err != nil {
		return err
	}

	selector, err = prepareSelector(selector)
	if err != nil {
		return err
	}

	opts := playwright.PageWaitForSelectorOptions{
		State:   state,
		Timeout: playwright.Float(b.timeoutMs(timeout)),
	}

	_, err = page.WaitForSelector(selector, opts)
	return err
}
