package testutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/pion/logging"
	"github.com/playwright-community/playwright-go"

	"github.com/thesyncim/todomvc-e2e/internal/logger"
)

// PlaywrightClient drives one Chromium page through Playwright.
//
// Playwright calls take no context; each method checks ctx before acting and
// relies on the page default timeout for waits.
type PlaywrightClient struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	log     logging.LeveledLogger
}

// NewPlaywrightClient starts the Playwright driver and opens a page in a new
// browser context. Browsers are installed first unless
// PLAYWRIGHT_PREINSTALLED=1.
func NewPlaywrightClient(cfg BrowserConfig) (*PlaywrightClient, error) {
	log := cfg.logger(logger.ScopePlaywright)
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	c := &PlaywrightClient{pw: pw, log: log}

	c.browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMotion.Milliseconds())),
	})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}
	c.context, err = c.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 720},
	})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("could not create context: %w", err)
	}
	c.page, err = c.context.NewPage()
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultBrowserConfig().Timeout
	}
	c.page.SetDefaultTimeout(float64(timeout.Milliseconds()))
	log.Debug("chromium page ready")
	return c, nil
}

// Page returns the underlying Playwright page, or nil after Close.
func (c *PlaywrightClient) Page() playwright.Page {
	return c.page
}

func (c *PlaywrightClient) first(ctx context.Context, selector string) (playwright.Locator, error) {
	if c.page == nil {
		return nil, errNoPage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.page.Locator(selector).First(), nil
}

func (c *PlaywrightClient) Navigate(ctx context.Context, url string) error {
	if c.page == nil {
		return errNoPage
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (c *PlaywrightClient) WaitVisible(ctx context.Context, selector string) error {
	loc, err := c.first(ctx, selector)
	if err != nil {
		return err
	}
	return loc.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	})
}

func (c *PlaywrightClient) Count(ctx context.Context, selector string) (int, error) {
	if c.page == nil {
		return 0, errNoPage
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return c.page.Locator(selector).Count()
}

func (c *PlaywrightClient) Texts(ctx context.Context, selector string) ([]string, error) {
	if c.page == nil {
		return nil, errNoPage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.page.Locator(selector).AllInnerTexts()
}

func (c *PlaywrightClient) Text(ctx context.Context, selector string) (string, error) {
	loc, err := c.first(ctx, selector)
	if err != nil {
		return "", err
	}
	return loc.InnerText()
}

func (c *PlaywrightClient) Value(ctx context.Context, selector string) (string, error) {
	loc, err := c.first(ctx, selector)
	if err != nil {
		return "", err
	}
	return loc.InputValue()
}

func (c *PlaywrightClient) Checked(ctx context.Context, selector string) (bool, error) {
	loc, err := c.first(ctx, selector)
	if err != nil {
		return false, err
	}
	return loc.IsChecked()
}

func (c *PlaywrightClient) ComputedStyle(ctx context.Context, selector, property string) (string, error) {
	loc, err := c.first(ctx, selector)
	if err != nil {
		return "", err
	}
	v, err := loc.Evaluate(`(el, prop) => getComputedStyle(el).getPropertyValue(prop)`, property)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("computed %s of %q: unexpected %T", property, selector, v)
	}
	return s, nil
}

func (c *PlaywrightClient) Focus(ctx context.Context, selector string) error {
	loc, err := c.first(ctx, selector)
	if err != nil {
		return err
	}
	return loc.Focus()
}

func (c *PlaywrightClient) Type(ctx context.Context, selector, text string) error {
	loc, err := c.first(ctx, selector)
	if err != nil {
		return err
	}
	return loc.PressSequentially(text)
}

func (c *PlaywrightClient) Fill(ctx context.Context, selector, text string) error {
	loc, err := c.first(ctx, selector)
	if err != nil {
		return err
	}
	return loc.Fill(text)
}

func (c *PlaywrightClient) Press(ctx context.Context, key string) error {
	if c.page == nil {
		return errNoPage
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.page.Keyboard().Press(key)
}

func (c *PlaywrightClient) Click(ctx context.Context, selector string) error {
	loc, err := c.first(ctx, selector)
	if err != nil {
		return err
	}
	return loc.Click()
}

func (c *PlaywrightClient) DoubleClick(ctx context.Context, selector string) error {
	loc, err := c.first(ctx, selector)
	if err != nil {
		return err
	}
	return loc.Dblclick()
}

func (c *PlaywrightClient) Hover(ctx context.Context, selector string) error {
	loc, err := c.first(ctx, selector)
	if err != nil {
		return err
	}
	return loc.Hover()
}

func (c *PlaywrightClient) ClickText(ctx context.Context, selector, text string) error {
	if c.page == nil {
		return errNoPage
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	exact := regexp.MustCompile("^" + regexp.QuoteMeta(text) + "$")
	return c.page.Locator(selector, playwright.PageLocatorOptions{HasText: exact}).First().Click()
}

func (c *PlaywrightClient) Screenshot(ctx context.Context) ([]byte, error) {
	if c.page == nil {
		return nil, errNoPage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.page.Screenshot()
}

// Close releases the page, context, browser and driver in that order.
func (c *PlaywrightClient) Close() error {
	var errs []error
	if c.context != nil {
		errs = append(errs, c.context.Close())
	}
	if c.browser != nil {
		errs = append(errs, c.browser.Close())
	}
	if c.pw != nil {
		errs = append(errs, c.pw.Stop())
	}
	c.pw, c.browser, c.context, c.page = nil, nil, nil, nil
	return errors.Join(errs...)
}
