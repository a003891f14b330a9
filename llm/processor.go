// Package llm is the optional enrichment layer on top of the heuristic
// pipeline. Every call degrades gracefully: when the model is unconfigured,
// unreachable or returns garbage, callers get the deterministic fallback
// built from the raw pipeline output.
package llm

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"searchagent/textutil"
	"searchagent/types"
)

const defaultModel = "command-r-08-2024"

// ErrDisabled is returned by structured calls when no API key is configured.
var ErrDisabled = errors.New("llm not configured")

// maxDocChars bounds how much of each document is sent to the model.
const maxDocChars = 2000

// Processor wraps a Cohere chat model. The zero value is a disabled
// processor; construct with New.
type Processor struct {
	model string
	chat  func(ctx context.Context, prompt string) (string, error)
}

// New builds a processor. With an empty key the processor is disabled and
// every method returns its fallback immediately.
func New(apiKey, model string) *Processor {
	if model == "" {
		model = defaultModel
	}
	p := &Processor{model: model}
	if apiKey == "" {
		return p
	}

	// Force HTTP/1.1; the Cohere endpoint intermittently breaks HTTP/2
	// connections under load.
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	p.chat = func(ctx context.Context, prompt string) (string, error) {
		resp, err := client.Chat(ctx, &cohere.ChatRequest{
			Message: prompt,
			Model:   &p.model,
		})
		if err != nil {
			return "", fmt.Errorf("cohere chat: %w", err)
		}
		return resp.Text, nil
	}
	return p
}

// Enabled reports whether a model is configured.
func (p *Processor) Enabled() bool {
	return p.chat != nil
}

// RefineQuery asks the model for a search-optimized rewrite. The original
// query is returned on any failure or when the rewrite is empty.
func (p *Processor) RefineQuery(ctx context.Context, query string) string {
	if !p.Enabled() || query == "" {
		return query
	}

	prompt := "Rewrite the following question as a concise web search query. " +
		"Reply with the query only, no explanation.\n\nQuestion: " + query
	text, err := p.chat(ctx, prompt)
	if err != nil {
		log.Printf("LLM query refinement failed: %v", err)
		return query
	}
	refined := strings.TrimSpace(strings.Trim(strings.TrimSpace(text), `"`))
	if refined == "" {
		return query
	}
	return refined
}

// NarrateSearch turns search results into a short narrative answer, falling
// back to a plain formatted list.
func (p *Processor) NarrateSearch(ctx context.Context, query string, results []types.SearchResult) string {
	fallback := FormatSearchResults(query, results)
	if !p.Enabled() || len(results) == 0 {
		return fallback
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Answer the question %q using only these search results. "+
		"Cite result numbers inline.\n\n", query)
	for _, r := range results {
		fmt.Fprintf(&b, "[%d] %s\n%s\n%s\n\n", r.Position, r.Title, r.URL, r.Snippet)
	}

	text, err := p.chat(ctx, b.String())
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			log.Printf("LLM search narration failed: %v", err)
		}
		return fallback
	}
	return strings.TrimSpace(text)
}

// NarrateScrape answers the query from extracted documents in prose,
// falling back to the concatenated document titles.
func (p *Processor) NarrateScrape(ctx context.Context, query string, docs []types.ExtractedDocument) string {
	fallback := FormatDocuments(query, docs)
	if !p.Enabled() || len(docs) == 0 {
		return fallback
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Answer %q using only the extracted page content below.\n\n", query)
	for i, d := range docs {
		content := textutil.Truncate(d.Content, maxDocChars)
		fmt.Fprintf(&b, "Page %d (%s): %s\n\n", i+1, d.URL, content)
	}

	text, err := p.chat(ctx, b.String())
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			log.Printf("LLM scrape narration failed: %v", err)
		}
		return fallback
	}
	return strings.TrimSpace(text)
}

// NarrateNews summarizes news items, falling back to a headline list.
func (p *Processor) NarrateNews(ctx context.Context, query string, items []types.NewsItem) string {
	fallback := FormatNewsItems(query, items)
	if !p.Enabled() || len(items) == 0 {
		return fallback
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Summarize the current news about %q from these headlines in one paragraph.\n\n", query)
	for _, it := range items {
		fmt.Fprintf(&b, "- %s (%s, %s)\n", it.Title, it.Source, it.PublishedDate)
	}

	text, err := p.chat(ctx, b.String())
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			log.Printf("LLM news narration failed: %v", err)
		}
		return fallback
	}
	return strings.TrimSpace(text)
}

// SynthesizeJSON asks the model for a structured summary of the documents.
// The response is parsed defensively; any failure returns an error so the
// caller can keep the heuristic synthesis instead.
func (p *Processor) SynthesizeJSON(ctx context.Context, query string, docs []types.ExtractedDocument) (string, []string, error) {
	if !p.Enabled() {
		return "", nil, ErrDisabled
	}
	if len(docs) == 0 {
		return "", nil, errors.New("no documents to synthesize")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Using the documents below, answer %q. Respond with JSON only, "+
		"shaped as {\"summary\": string, \"key_points\": [string]}.\n\n", query)
	for i, d := range docs {
		content := textutil.Truncate(d.Content, maxDocChars)
		fmt.Fprintf(&b, "Document %d (%s):\n%s\n\n", i+1, d.URL, content)
	}

	text, err := p.chat(ctx, b.String())
	if err != nil {
		return "", nil, err
	}
	summary, points, err := ParseSynthesis(text)
	if err != nil {
		return "", nil, fmt.Errorf("parse llm synthesis: %w", err)
	}
	return summary, points, nil
}

// FormatSearchResults is the non-LLM rendering of a result list.
func FormatSearchResults(query string, results []types.SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for %q.", query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Top results for %q:\n", query)
	for _, r := range results {
		fmt.Fprintf(&b, "%d. %s — %s\n", r.Position, r.Title, r.URL)
		if r.Snippet != "" {
			fmt.Fprintf(&b, "   %s\n", r.Snippet)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDocuments is the non-LLM rendering of extracted pages.
func FormatDocuments(query string, docs []types.ExtractedDocument) string {
	if len(docs) == 0 {
		return fmt.Sprintf("No pages could be extracted for %q.", query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Extracted %d page(s) for %q:\n", len(docs), query)
	for i, d := range docs {
		title := d.Title
		if title == "" {
			title = d.URL
		}
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, title, d.URL)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatNewsItems is the non-LLM rendering of a news list.
func FormatNewsItems(query string, items []types.NewsItem) string {
	if len(items) == 0 {
		return fmt.Sprintf("No recent news found for %q.", query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Recent news for %q:\n", query)
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, it.Title, it.Source)
	}
	return strings.TrimRight(b.String(), "\n")
}
