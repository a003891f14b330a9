// Package extract turns candidate URLs into plain-text documents. Each URL
// goes through a two-tier strategy: a fast readability parse first, then a
// full browser render with a selector cascade when the fast path comes back
// thin. URLs whose both tiers fail are dropped, never fatal.
package extract

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"searchagent/textutil"
	"searchagent/types"
)

// PageDriver is the browser behaviour tier 2 needs. *browser.Browser
// satisfies it.
type PageDriver interface {
	Navigate(url string) error
	ScrollToBottom() error
	HTML() (string, error)
}

// contentSelectors are tried in order against the rendered page; the first
// container with enough text wins. Falls back to <body>, then the document.
var contentSelectors = []selector{
	{tag: "article"},
	{tag: "main"},
	{class: "content"},
	{id: "content"},
	{class: "post"},
	{class: "article"},
	{class: "entry"},
}

// boilerplateTags are stripped from the rendered page before text
// conversion.
var boilerplateTags = map[string]bool{
	"nav": true, "header": true, "footer": true, "aside": true,
	"script": true, "style": true, "noscript": true, "form": true,
}

// Engine fetches and extracts documents with bounded concurrency.
type Engine struct {
	driver      PageDriver
	fetch       func(url string, timeout time.Duration) (readability.Article, error)
	minContent  int
	maxContent  int
	concurrency int
	timeout     time.Duration
}

// New builds an engine. driver may be nil, which disables tier 2.
func New(driver PageDriver, minContent, maxContent, concurrency int, timeout time.Duration) *Engine {
	if minContent <= 0 {
		minContent = 500
	}
	if concurrency <= 0 {
		concurrency = 3
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Engine{
		driver:      driver,
		fetch: func(url string, timeout time.Duration) (readability.Article, error) {
			return readability.FromURL(url, timeout)
		},
		minContent:  minContent,
		maxContent:  maxContent,
		concurrency: concurrency,
		timeout:     timeout,
	}
}

// Extract processes all URLs concurrently and returns the documents that
// produced usable content, in input order. A failing URL yields nothing for
// that slot; it never aborts the batch.
func (e *Engine) Extract(ctx context.Context, urls []string) []types.ExtractedDocument {
	if len(urls) == 0 {
		return nil
	}

	docs := make([]*types.ExtractedDocument, len(urls))
	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	for i, u := range urls {
		wg.Add(1)
		go func(idx int, pageURL string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			doc, err := e.extractOne(pageURL)
			if err != nil {
				log.Printf("Extraction failed for %s: %v", pageURL, err)
				return
			}
			docs[idx] = doc
		}(i, u)
	}
	wg.Wait()

	out := make([]types.ExtractedDocument, 0, len(urls))
	for _, d := range docs {
		if d != nil {
			out = append(out, *d)
		}
	}
	return out
}

// extractOne runs the two-tier strategy for a single URL. Tier-2 calls are
// serialized by the browser itself.
func (e *Engine) extractOne(pageURL string) (*types.ExtractedDocument, error) {
	doc, fastErr := e.fastExtract(pageURL)
	if fastErr == nil {
		return doc, nil
	}

	if e.driver == nil {
		return nil, fastErr
	}
	doc, browserErr := e.browserExtract(pageURL)
	if browserErr != nil {
		return nil, fmt.Errorf("fast: %v; browser: %w", fastErr, browserErr)
	}
	return doc, nil
}

// fastExtract is tier 1: direct download plus readability parsing. The
// result is accepted only when the text clears the minimum length.
func (e *Engine) fastExtract(pageURL string) (*types.ExtractedDocument, error) {
	article, err := e.fetch(pageURL, e.timeout)
	if err != nil {
		return nil, err
	}

	content := textutil.NormalizeWhitespace(article.TextContent)
	if len(content) < e.minContent {
		return nil, fmt.Errorf("content too short (%d < %d chars)", len(content), e.minContent)
	}

	metadata := map[string]any{
		"extraction_method": "fast",
	}
	if article.Excerpt != "" {
		metadata["summary"] = article.Excerpt
	}
	if article.Byline != "" {
		metadata["authors"] = article.Byline
	}
	if article.SiteName != "" {
		metadata["site_name"] = article.SiteName
	}
	if article.PublishedTime != nil {
		metadata["published_date"] = article.PublishedTime.Format(time.RFC3339)
	}

	return &types.ExtractedDocument{
		URL:      pageURL,
		Title:    article.Title,
		Content:  e.clamp(content),
		Metadata: metadata,
	}, nil
}

// browserExtract is tier 2: render the page, scroll out lazy content, then
// walk the selector cascade for the main content container.
func (e *Engine) browserExtract(pageURL string) (*types.ExtractedDocument, error) {
	if err := e.driver.Navigate(pageURL); err != nil {
		return nil, err
	}
	if err := e.driver.ScrollToBottom(); err != nil {
		log.Printf("Scroll failed for %s: %v", pageURL, err)
	}
	pageHTML, err := e.driver.HTML()
	if err != nil {
		return nil, err
	}

	title, content := e.extractFromHTML(pageHTML)
	if len(content) < e.minContent {
		return nil, fmt.Errorf("content too short (%d < %d chars)", len(content), e.minContent)
	}

	return &types.ExtractedDocument{
		URL:     pageURL,
		Title:   title,
		Content: e.clamp(content),
		Metadata: map[string]any{
			"extraction_method": "heuristic",
		},
	}, nil
}

// extractFromHTML applies the selector cascade to a rendered document,
// returning the page title and the best container's text.
func (e *Engine) extractFromHTML(pageHTML string) (title, content string) {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return "", textutil.ExtractMainContent(textutil.HTMLToText(pageHTML))
	}

	title = documentTitle(doc)
	stripBoilerplate(doc)

	for _, sel := range contentSelectors {
		node := findBySelector(doc, sel)
		if node == nil {
			continue
		}
		text := textutil.HTMLToText(renderNode(node))
		if len(text) >= e.minContent {
			return title, text
		}
	}

	if body := findBySelector(doc, selector{tag: "body"}); body != nil {
		return title, textutil.HTMLToText(renderNode(body))
	}
	return title, textutil.HTMLToText(pageHTML)
}

func (e *Engine) clamp(content string) string {
	return textutil.Truncate(content, e.maxContent)
}
