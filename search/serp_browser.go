package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"searchagent/types"
	"searchagent/urlutil"
)

// BrowserDriver is the slice of browser behaviour the SERP scraper needs.
// *browser.Browser satisfies it; tests substitute a canned fake.
type BrowserDriver interface {
	Navigate(url string) error
	HTML() (string, error)
	Text() (string, error)
	EvalText(js string) (string, error)
}

// captchaSignatures mark a blocked results page. Matching is case-insensitive
// against the rendered page text.
var captchaSignatures = []string{
	"unusual traffic",
	"captcha",
	"verify you are human",
	"i'm not a robot",
	"our systems have detected",
}

// serpExtractJS pulls title/link/snippet triples from a rendered Google
// results page and returns them as a JSON string. Runs inside the page so a
// single round-trip covers the whole result list.
const serpExtractJS = `() => {
	const out = [];
	for (const el of document.querySelectorAll("div.g, div[data-sokoban-container]")) {
		const a = el.querySelector("a[href]");
		const h3 = el.querySelector("h3");
		if (!a || !h3) continue;
		const snippetEl = el.querySelector("div[data-sncf], div[style*='-webkit-line-clamp'], .VwiC3b");
		out.push({
			title: h3.innerText.trim(),
			url: a.href,
			snippet: snippetEl ? snippetEl.innerText.trim() : ""
		});
	}
	return JSON.stringify(out);
}`

// debugSnapshotter is the optional driver capability for capturing the
// rendered page when scraping goes wrong. *browser.Browser satisfies it.
type debugSnapshotter interface {
	Screenshot() ([]byte, error)
	CurrentURL() string
}

// BrowserSERPProvider drives the shared headless browser to a search-engine
// results page and scrapes it with tiered extraction: structured in-page
// selectors first, then a raw-HTML parse, then any link with substantial
// anchor text.
type BrowserSERPProvider struct {
	driver    BrowserDriver
	onFailure func(pageURL string, png []byte)
}

func NewBrowserSERPProvider(driver BrowserDriver) *BrowserSERPProvider {
	return &BrowserSERPProvider{driver: driver}
}

// OnFailure registers a callback that receives a screenshot of the results
// page whenever scraping is blocked or yields nothing. The callback is only
// invoked when the driver can take screenshots.
func (p *BrowserSERPProvider) OnFailure(fn func(pageURL string, png []byte)) {
	p.onFailure = fn
}

// snapshot captures the current page for the failure callback. Best effort:
// a driver without screenshot support or a failed capture is ignored.
func (p *BrowserSERPProvider) snapshot() {
	if p.onFailure == nil {
		return
	}
	snap, ok := p.driver.(debugSnapshotter)
	if !ok {
		return
	}
	png, err := snap.Screenshot()
	if err != nil || len(png) == 0 {
		return
	}
	p.onFailure(snap.CurrentURL(), png)
}

func (p *BrowserSERPProvider) Name() string {
	return "browser-google"
}

func (p *BrowserSERPProvider) Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	searchURL := "https://www.google.com/search?q=" + url.QueryEscape(query)
	if err := p.driver.Navigate(searchURL); err != nil {
		return nil, fmt.Errorf("load results page: %w", err)
	}

	pageText, err := p.driver.Text()
	if err != nil {
		return nil, fmt.Errorf("read results page: %w", err)
	}
	if isBlocked(pageText) {
		p.snapshot()
		return nil, ErrBlocked
	}

	// Tier 1: structured selector extraction inside the page.
	results := p.structuredResults(query, limit)
	if len(results) >= 3 {
		return results, nil
	}

	// Tier 2: parse the raw HTML ourselves; selectors drift, markup less so.
	pageHTML, err := p.driver.HTML()
	if err != nil {
		if len(results) == 0 {
			p.snapshot()
		}
		return results, nil
	}
	if parsed := parseResultAnchors(pageHTML, limit, false); len(parsed) > len(results) {
		results = parsed
	}
	if len(results) >= 3 {
		return results, nil
	}

	// Tier 3: any external link with enough anchor text to be a result.
	if scraped := parseResultAnchors(pageHTML, limit, true); len(scraped) > len(results) {
		results = scraped
	}
	if len(results) == 0 {
		p.snapshot()
	}
	return results, nil
}

func (p *BrowserSERPProvider) structuredResults(query string, limit int) []types.SearchResult {
	raw, err := p.driver.EvalText(serpExtractJS)
	if err != nil || raw == "" {
		return nil
	}

	var items []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Snippet string `json:"snippet"`
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}

	results := make([]types.SearchResult, 0, len(items))
	for _, it := range items {
		if it.Title == "" || !urlutil.IsValid(it.URL) {
			continue
		}
		results = append(results, types.SearchResult{
			Title:    it.Title,
			Snippet:  it.Snippet,
			URL:      it.URL,
			Position: len(results) + 1,
			Source:   "browser-google",
		})
		if len(results) == limit {
			break
		}
	}
	return results
}

func isBlocked(pageText string) bool {
	lower := strings.ToLower(pageText)
	for _, sig := range captchaSignatures {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}

// parseResultAnchors walks the HTML tree collecting candidate result links.
// In strict mode only anchors wrapping an h3 qualify; in loose mode any
// external anchor with at least 20 characters of text is taken.
func parseResultAnchors(pageHTML string, limit int, loose bool) []types.SearchResult {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	var results []types.SearchResult
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(results) >= limit {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attrValue(n, "href")
			href = resolveRedirect(href)
			text := strings.TrimSpace(nodeText(n))
			ok := urlutil.IsValid(href) && !strings.Contains(href, "google.com")
			if ok && !loose {
				ok = hasDescendant(n, "h3")
			}
			if ok && loose {
				ok = len(text) >= 20
			}
			if ok && text != "" {
				results = append(results, types.SearchResult{
					Title:    text,
					URL:      href,
					Position: len(results) + 1,
					Source:   "browser-google",
				})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results
}

// resolveRedirect unwraps Google's /url?q= indirection.
func resolveRedirect(href string) string {
	if !strings.HasPrefix(href, "/url?") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if q := u.Query().Get("q"); q != "" {
		return q
	}
	return href
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func hasDescendant(n *html.Node, tag string) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return true
		}
		if hasDescendant(c, tag) {
			return true
		}
	}
	return false
}
