// Package browser wraps a headless Chrome instance behind a small surface:
// navigate, read HTML or rendered text, scroll, screenshot. A single shared
// page is reused across calls and serialized with a mutex, which keeps
// Chrome's memory footprint flat under concurrent extraction requests.
package browser

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Browser is a lazily-started headless Chrome handle. The zero value is not
// usable; construct with New. Safe for concurrent use.
type Browser struct {
	mu       sync.Mutex
	browser  *rod.Browser
	page     *rod.Page
	headless bool
	timeout  time.Duration
}

// New prepares a browser handle without launching Chrome. The process is
// started on first use so API startup does not pay the launch cost.
func New(headless bool, timeout time.Duration) *Browser {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Browser{headless: headless, timeout: timeout}
}

// Start launches Chrome and opens the shared page. Calling Start on a
// running browser is a no-op.
func (b *Browser) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.startLocked()
}

func (b *Browser) startLocked() error {
	if b.browser != nil {
		return nil
	}

	controlURL, err := launcher.New().Headless(b.headless).Launch()
	if err != nil {
		return fmt.Errorf("launch chrome: %w", err)
	}

	br := rod.New().ControlURL(controlURL)
	if err := br.Connect(); err != nil {
		return fmt.Errorf("connect to chrome: %w", err)
	}

	page, err := br.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = br.Close()
		return fmt.Errorf("open page: %w", err)
	}

	b.browser = br
	b.page = page
	log.Printf("Browser started (headless=%v)", b.headless)
	return nil
}

// Navigate loads the given URL in the shared page and waits for the load
// event. The browser is started on demand.
func (b *Browser) Navigate(url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.startLocked(); err != nil {
		return err
	}
	page := b.page.Timeout(b.timeout)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}
	return nil
}

// HTML returns the current page's full outer HTML.
func (b *Browser) HTML() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page == nil {
		return "", errors.New("browser not started")
	}
	html, err := b.page.Timeout(b.timeout).HTML()
	if err != nil {
		return "", fmt.Errorf("read html: %w", err)
	}
	return html, nil
}

// Text returns the rendered text of the page body, as the user would see it
// after JavaScript has run.
func (b *Browser) Text() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page == nil {
		return "", errors.New("browser not started")
	}
	res, err := b.page.Timeout(b.timeout).Evaluate(&rod.EvalOptions{
		JS: `() => document.body ? document.body.innerText : ""`,
	})
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return res.Value.Str(), nil
}

// EvalText runs a JavaScript function on the current page and returns its
// string result. The script must be an arrow function expression.
func (b *Browser) EvalText(js string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page == nil {
		return "", errors.New("browser not started")
	}
	res, err := b.page.Timeout(b.timeout).Evaluate(&rod.EvalOptions{JS: js})
	if err != nil {
		return "", fmt.Errorf("evaluate: %w", err)
	}
	return res.Value.Str(), nil
}

// CurrentURL reports the page's URL after any redirects.
func (b *Browser) CurrentURL() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page == nil {
		return ""
	}
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// ScrollToBottom scrolls the page in steps until its height stabilizes,
// which triggers lazy-loaded content. At most ten rounds are attempted.
func (b *Browser) ScrollToBottom() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page == nil {
		return errors.New("browser not started")
	}

	lastHeight := -1
	for i := 0; i < 10; i++ {
		res, err := b.page.Timeout(b.timeout).Evaluate(&rod.EvalOptions{
			JS: `() => { window.scrollTo(0, document.body.scrollHeight); return document.body.scrollHeight; }`,
		})
		if err != nil {
			return fmt.Errorf("scroll: %w", err)
		}
		height := res.Value.Int()
		if height == lastHeight {
			break
		}
		lastHeight = height
		time.Sleep(500 * time.Millisecond)
	}
	return nil
}

// Screenshot captures the full page as PNG bytes.
func (b *Browser) Screenshot() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page == nil {
		return nil, errors.New("browser not started")
	}
	data, err := b.page.Timeout(b.timeout).Screenshot(true, nil)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return data, nil
}

// Running reports whether Chrome has been launched.
func (b *Browser) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.browser != nil
}

// Close shuts down the page and the Chrome process. Safe to call when the
// browser never started.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser == nil {
		return nil
	}
	if b.page != nil {
		_ = b.page.Close()
		b.page = nil
	}
	err := b.browser.Close()
	b.browser = nil
	log.Printf("Browser closed")
	return err
}
