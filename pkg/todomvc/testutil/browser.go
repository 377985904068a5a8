// browser.go provides browser automation utilities for E2E testing.
// It wraps Rod so a Chrome page satisfies todomvc.Session.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pion/logging"

	"github.com/thesyncim/todomvc-e2e/internal/logger"
)

// Supported drivers.
const (
	DriverRod        = "rod"
	DriverPlaywright = "playwright"
)

// BrowserConfig configures browser launch options.
type BrowserConfig struct {
	Driver     string        // "rod" (default) or "playwright"
	Headless   bool          // Run in headless mode (default: true)
	Timeout    time.Duration // Default operation timeout (default: 30s)
	SlowMotion time.Duration // Delay inserted between input actions (default: 0)

	// LoggerFactory receives driver diagnostics. Nil discards them.
	LoggerFactory logging.LoggerFactory
}

// DefaultBrowserConfig returns sensible defaults for E2E testing.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Driver:   DriverRod,
		Headless: true,
		Timeout:  30 * time.Second,
	}
}

func (cfg BrowserConfig) logger(scope string) logging.LeveledLogger {
	if cfg.LoggerFactory == nil {
		return logger.Discard().NewLogger(scope)
	}
	return cfg.LoggerFactory.NewLogger(scope)
}

var errNoPage = errors.New("no page open")

// BrowserClient drives one incognito Chrome page through Rod.
type BrowserClient struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	incog    *rod.Browser
	page     *rod.Page
	timeout  time.Duration
	log      logging.LeveledLogger
}

// NewBrowserClient launches a Chrome (downloaded by Rod if missing) and
// opens a blank page in a fresh incognito context, so local storage starts
// empty. The browser is configured with:
//   - No sandbox (for container compatibility)
//   - No GPU
func NewBrowserClient(cfg BrowserConfig) (*BrowserClient, error) {
	log := cfg.logger(logger.ScopeRod)
	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-gpu")

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chrome: %w", err)
	}
	log.Debugf("chrome control url %s", url)

	browser := rod.New().ControlURL(url)
	if cfg.SlowMotion > 0 {
		browser = browser.SlowMotion(cfg.SlowMotion)
	}
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}

	incog, err := browser.Incognito()
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	page, err := incog.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultBrowserConfig().Timeout
	}
	return &BrowserClient{
		launcher: l,
		browser:  browser,
		incog:    incog,
		page:     page,
		timeout:  timeout,
		log:      log,
	}, nil
}

// Page returns the underlying Rod page, or nil after Close.
func (c *BrowserClient) Page() *rod.Page {
	return c.page
}

// do runs fn on the page bound to ctx and the client's timeout.
func (c *BrowserClient) do(ctx context.Context, fn func(p *rod.Page) error) error {
	if c.page == nil {
		return errNoPage
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return fn(c.page.Context(ctx))
}

// element runs fn on the first element matching selector, waiting for it.
func (c *BrowserClient) element(ctx context.Context, selector string, fn func(el *rod.Element) error) error {
	return c.do(ctx, func(p *rod.Page) error {
		el, err := p.Element(selector)
		if err != nil {
			return fmt.Errorf("find %q: %w", selector, err)
		}
		return fn(el)
	})
}

func (c *BrowserClient) Navigate(ctx context.Context, url string) error {
	return c.do(ctx, func(p *rod.Page) error {
		if err := p.Navigate(url); err != nil {
			return fmt.Errorf("failed to navigate to %s: %w", url, err)
		}
		return p.WaitLoad()
	})
}

func (c *BrowserClient) WaitVisible(ctx context.Context, selector string) error {
	return c.element(ctx, selector, func(el *rod.Element) error {
		return el.WaitVisible()
	})
}

func (c *BrowserClient) Count(ctx context.Context, selector string) (int, error) {
	var n int
	err := c.do(ctx, func(p *rod.Page) error {
		els, err := p.Elements(selector)
		n = len(els)
		return err
	})
	return n, err
}

func (c *BrowserClient) Texts(ctx context.Context, selector string) ([]string, error) {
	var out []string
	err := c.do(ctx, func(p *rod.Page) error {
		els, err := p.Elements(selector)
		if err != nil {
			return err
		}
		out = make([]string, 0, len(els))
		for _, el := range els {
			text, err := el.Text()
			if err != nil {
				return err
			}
			out = append(out, text)
		}
		return nil
	})
	return out, err
}

func (c *BrowserClient) Text(ctx context.Context, selector string) (string, error) {
	var text string
	err := c.element(ctx, selector, func(el *rod.Element) (err error) {
		text, err = el.Text()
		return err
	})
	return text, err
}

func (c *BrowserClient) Value(ctx context.Context, selector string) (string, error) {
	var value string
	err := c.element(ctx, selector, func(el *rod.Element) error {
		v, err := el.Property("value")
		if err != nil {
			return err
		}
		value = v.Str()
		return nil
	})
	return value, err
}

func (c *BrowserClient) Checked(ctx context.Context, selector string) (bool, error) {
	var checked bool
	err := c.element(ctx, selector, func(el *rod.Element) error {
		v, err := el.Property("checked")
		if err != nil {
			return err
		}
		checked = v.Bool()
		return nil
	})
	return checked, err
}

func (c *BrowserClient) ComputedStyle(ctx context.Context, selector, property string) (string, error) {
	var value string
	err := c.element(ctx, selector, func(el *rod.Element) error {
		res, err := el.Eval(`function (prop) { return getComputedStyle(this).getPropertyValue(prop) }`, property)
		if err != nil {
			return err
		}
		value = res.Value.Str()
		return nil
	})
	return value, err
}

func (c *BrowserClient) Focus(ctx context.Context, selector string) error {
	return c.element(ctx, selector, func(el *rod.Element) error {
		return el.Focus()
	})
}

func (c *BrowserClient) Type(ctx context.Context, selector, text string) error {
	return c.do(ctx, func(p *rod.Page) error {
		el, err := p.Element(selector)
		if err != nil {
			return fmt.Errorf("find %q: %w", selector, err)
		}
		if err := el.Focus(); err != nil {
			return err
		}
		return typeText(p, text)
	})
}

func (c *BrowserClient) Fill(ctx context.Context, selector, text string) error {
	return c.do(ctx, func(p *rod.Page) error {
		el, err := p.Element(selector)
		if err != nil {
			return fmt.Errorf("find %q: %w", selector, err)
		}
		if err := el.SelectAllText(); err != nil {
			return err
		}
		if err := p.KeyActions().Type(input.Backspace).Do(); err != nil {
			return err
		}
		return typeText(p, text)
	})
}

// keyRun is a stretch of text sent either as key strokes or, for runes the
// US key map cannot produce, as a single text insertion.
type keyRun struct {
	keys   []input.Key
	insert string
}

// splitKeys groups text into runs of printable ASCII key strokes and runs
// of inserted text.
func splitKeys(text string) []keyRun {
	var runs []keyRun
	for _, r := range text {
		typed := r >= ' ' && r <= '~'
		n := len(runs)
		switch {
		case typed && n > 0 && runs[n-1].keys != nil:
			runs[n-1].keys = append(runs[n-1].keys, input.Key(r))
		case typed:
			runs = append(runs, keyRun{keys: []input.Key{input.Key(r)}})
		case n > 0 && runs[n-1].keys == nil:
			runs[n-1].insert += string(r)
		default:
			runs = append(runs, keyRun{insert: string(r)})
		}
	}
	return runs
}

// typeText sends text to the focused element one key stroke at a time.
func typeText(p *rod.Page, text string) error {
	for _, run := range splitKeys(text) {
		if run.keys == nil {
			if err := p.InsertText(run.insert); err != nil {
				return err
			}
			continue
		}
		if err := p.KeyActions().Type(run.keys...).Do(); err != nil {
			return err
		}
	}
	return nil
}

func (c *BrowserClient) Press(ctx context.Context, key string) error {
	k, err := rodKey(key)
	if err != nil {
		return err
	}
	return c.do(ctx, func(p *rod.Page) error {
		return p.KeyActions().Type(k).Do()
	})
}

func rodKey(name string) (input.Key, error) {
	switch name {
	case "Enter":
		return input.Enter, nil
	case "Escape":
		return input.Escape, nil
	case "Tab":
		return input.Tab, nil
	}
	return 0, fmt.Errorf("unsupported key %q", name)
}

func (c *BrowserClient) Click(ctx context.Context, selector string) error {
	return c.element(ctx, selector, func(el *rod.Element) error {
		return el.Click(proto.InputMouseButtonLeft, 1)
	})
}

func (c *BrowserClient) DoubleClick(ctx context.Context, selector string) error {
	return c.element(ctx, selector, func(el *rod.Element) error {
		return el.Click(proto.InputMouseButtonLeft, 2)
	})
}

func (c *BrowserClient) Hover(ctx context.Context, selector string) error {
	return c.element(ctx, selector, func(el *rod.Element) error {
		return el.Hover()
	})
}

func (c *BrowserClient) ClickText(ctx context.Context, selector, text string) error {
	return c.do(ctx, func(p *rod.Page) error {
		el, err := p.ElementR(selector, "^"+regexp.QuoteMeta(text)+"$")
		if err != nil {
			return fmt.Errorf("find %q with text %q: %w", selector, text, err)
		}
		return el.Click(proto.InputMouseButtonLeft, 1)
	})
}

func (c *BrowserClient) Screenshot(ctx context.Context) ([]byte, error) {
	var data []byte
	err := c.do(ctx, func(p *rod.Page) (err error) {
		data, err = p.Screenshot(false, nil)
		return err
	})
	return data, err
}

// Close cleans up browser resources.
// Always call this (via defer) to prevent orphaned Chrome processes.
func (c *BrowserClient) Close() error {
	if c.browser == nil {
		return nil
	}
	var errs []error
	if c.incog != nil {
		errs = append(errs, c.incog.Close())
	}
	errs = append(errs, c.browser.Close())
	c.launcher.Cleanup()
	c.browser, c.incog, c.page = nil, nil, nil
	c.log.Debug("chrome closed")
	return errors.Join(errs...)
}
