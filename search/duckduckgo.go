package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"searchagent/config"
	"searchagent/types"
	"searchagent/urlutil"
)

const duckDuckGoEndpoint = "https://html.duckduckgo.com/html/"

// DuckDuckGoProvider scrapes DuckDuckGo's no-JavaScript HTML endpoint. It is
// the browserless final fallback: no key, no Chrome, just one GET.
type DuckDuckGoProvider struct {
	client   *http.Client
	endpoint string
}

func NewDuckDuckGoProvider(timeout time.Duration) *DuckDuckGoProvider {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &DuckDuckGoProvider{
		client:   &http.Client{Timeout: timeout},
		endpoint: duckDuckGoEndpoint,
	}
}

func (p *DuckDuckGoProvider) Name() string {
	return "duckduckgo-html"
}

func (p *DuckDuckGoProvider) Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.endpoint+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("build duckduckgo request: %w", err)
	}
	req.Header.Set("User-Agent", config.UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse duckduckgo response: %w", err)
	}
	return parseDuckDuckGo(doc, limit), nil
}

// parseDuckDuckGo collects result__a anchors and their sibling
// result__snippet text from the HTML results page.
func parseDuckDuckGo(doc *html.Node, limit int) []types.SearchResult {
	var results []types.SearchResult
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(results) >= limit {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" && hasClass(n, "result__a") {
			href := unwrapDuckDuckGo(attrValue(n, "href"))
			title := strings.TrimSpace(nodeText(n))
			if title != "" && urlutil.IsValid(href) {
				results = append(results, types.SearchResult{
					Title:    title,
					Snippet:  siblingSnippet(n),
					URL:      href,
					Position: len(results) + 1,
					Source:   "duckduckgo",
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

// unwrapDuckDuckGo resolves the //duckduckgo.com/l/?uddg= redirect wrapper.
func unwrapDuckDuckGo(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if strings.HasSuffix(u.Host, "duckduckgo.com") {
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
	}
	return href
}

// siblingSnippet looks for a result__snippet node near the result anchor.
func siblingSnippet(anchor *html.Node) string {
	container := anchor.Parent
	for i := 0; i < 3 && container != nil; i++ {
		if snippet := findByClass(container, "result__snippet"); snippet != nil {
			return strings.TrimSpace(nodeText(snippet))
		}
		container = container.Parent
	}
	return ""
}

func findByClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attrValue(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}
