// Package agent wires the pipeline together and owns the lifecycle of the
// shared browser. Each public method is one end-to-end operation behind an
// API route: search, scrape, analyze, news.
package agent

import (
	"context"
	"errors"
	"log"
	"strings"

	"searchagent/archive"
	"searchagent/browser"
	"searchagent/cache"
	"searchagent/config"
	"searchagent/extract"
	"searchagent/llm"
	"searchagent/news"
	"searchagent/query"
	"searchagent/search"
	"searchagent/stream"
	"searchagent/synth"
	"searchagent/types"
)

// ErrEmptyQuery rejects blank requests before any provider is touched.
var ErrEmptyQuery = errors.New("query must not be empty")

// searcher and newsSearcher are the internal seams the tests fake.
type searcher interface {
	Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error)
}

type newsSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]types.NewsItem, error)
}

type extractor interface {
	Extract(ctx context.Context, urls []string) []types.ExtractedDocument
}

// Agent runs the search/extraction/synthesis pipeline. Cache, Archive and
// Stream are optional attachments; nil disables them.
type Agent struct {
	cfg     config.Settings
	browser *browser.Browser
	chain   searcher
	engine  extractor
	news    newsSearcher
	llm     *llm.Processor

	Cache   *cache.Cache
	Archive *archive.Archive
	Stream  *stream.Publisher
}

// New builds an agent from configuration. The browser process is launched
// lazily on the first operation that needs it.
func New(cfg config.Settings) *Agent {
	b := browser.New(cfg.BrowserHeadless, cfg.BrowserTimeout)

	serp := search.NewBrowserSERPProvider(b)
	var providers []search.Provider
	if cfg.SerpAPIKey != "" {
		providers = append(providers,
			search.NewSerpAPIProvider(cfg.SerpAPIKey, "google", cfg.RequestTimeout),
			search.NewSerpAPIProvider(cfg.SerpAPIKey, "bing", cfg.RequestTimeout),
		)
	}
	providers = append(providers, serp, search.NewDuckDuckGoProvider(cfg.RequestTimeout))
	chain := search.NewChain(cfg.SearchRetries, cfg.RetryDelay, providers...)

	a := &Agent{
		cfg:     cfg,
		browser: b,
		chain:   chain,
		engine: extract.New(b, cfg.MinContentLength, cfg.MaxContentLength,
			cfg.MaxConcurrentExtractions, cfg.RequestTimeout),
		news: news.New(cfg.NewsAPIKey, cfg.GNewsAPIKey, chain, cfg.RequestTimeout),
		llm:  llm.New(cfg.CohereAPIKey, ""),
	}

	// Keep evidence of blocked or empty results pages. Reads a.Archive at
	// capture time since the archive is attached after construction.
	serp.OnFailure(func(pageURL string, png []byte) {
		key, err := a.Archive.SaveScreenshot(context.Background(), pageURL, png)
		if err != nil {
			log.Printf("Archive results-page screenshot %s: %v", pageURL, err)
			return
		}
		if key != "" {
			log.Printf("Archived results-page screenshot for %s as %s", pageURL, key)
		}
	})
	return a
}

// SearchResponse is the payload for the search and scrape operations.
type SearchResponse struct {
	Query        string                    `json:"query"`
	RefinedQuery string                    `json:"refined_query"`
	QueryType    query.Type                `json:"query_type"`
	Results      []types.SearchResult      `json:"results"`
	Documents    []types.ExtractedDocument `json:"documents,omitempty"`
	Answer       string                    `json:"answer"`
}

// AnalyzeResponse adds synthesis output on top of the scrape pipeline.
type AnalyzeResponse struct {
	SearchResponse
	Synthesis      types.SynthesisResult `json:"synthesis"`
	Contradictions []types.Contradiction `json:"contradictions,omitempty"`
}

// NewsResponse is the payload for the news operation.
type NewsResponse struct {
	Query   string           `json:"query"`
	Items   []types.NewsItem `json:"items"`
	Summary string           `json:"summary"`
}

// Search refines the query, runs the provider chain and narrates the
// results. No page content is fetched.
func (a *Agent) Search(ctx context.Context, rawQuery string) (*SearchResponse, error) {
	if rawQuery == "" {
		return nil, ErrEmptyQuery
	}

	cacheKey := cache.Key("search", rawQuery)
	var cached SearchResponse
	if err := a.Cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	refined := a.refine(ctx, rawQuery)
	results, err := a.chain.Search(ctx, refined, a.cfg.SearchResultsLimit)
	if err != nil {
		return nil, err
	}

	resp := &SearchResponse{
		Query:        rawQuery,
		RefinedQuery: refined,
		QueryType:    query.Classify(rawQuery),
		Results:      results,
		Answer:       a.llm.NarrateSearch(ctx, rawQuery, results),
	}
	a.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

// Scrape searches, then extracts readable content from the top results.
func (a *Agent) Scrape(ctx context.Context, rawQuery string) (*SearchResponse, error) {
	if rawQuery == "" {
		return nil, ErrEmptyQuery
	}

	cacheKey := cache.Key("scrape", rawQuery)
	var cached SearchResponse
	if err := a.Cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	refined := a.refine(ctx, rawQuery)
	results, err := a.chain.Search(ctx, refined, a.cfg.SearchResultsLimit)
	if err != nil {
		return nil, err
	}

	docs := a.extractTop(ctx, results)
	resp := &SearchResponse{
		Query:        rawQuery,
		RefinedQuery: refined,
		QueryType:    query.Classify(rawQuery),
		Results:      results,
		Documents:    docs,
		Answer:       a.llm.NarrateScrape(ctx, rawQuery, docs),
	}
	a.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

// Analyze is the full pipeline: search, extract, synthesize, then attempt an
// LLM synthesis that replaces the heuristic one when it parses cleanly.
func (a *Agent) Analyze(ctx context.Context, rawQuery string) (*AnalyzeResponse, error) {
	if rawQuery == "" {
		return nil, ErrEmptyQuery
	}

	cacheKey := cache.Key("analyze", rawQuery)
	var cached AnalyzeResponse
	if err := a.Cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	refined := a.refine(ctx, rawQuery)
	results, err := a.chain.Search(ctx, refined, a.cfg.SearchResultsLimit)
	if err != nil {
		return nil, err
	}

	docs := a.extractTop(ctx, results)
	synthesis := synth.Synthesize(rawQuery, docs)

	if summary, points, llmErr := a.llm.SynthesizeJSON(ctx, rawQuery, docs); llmErr == nil {
		applyLLMSynthesis(&synthesis, summary, points)
	} else if !errors.Is(llmErr, llm.ErrDisabled) {
		log.Printf("LLM synthesis failed for %q, keeping heuristic output: %v", rawQuery, llmErr)
	}

	resp := &AnalyzeResponse{
		SearchResponse: SearchResponse{
			Query:        rawQuery,
			RefinedQuery: refined,
			QueryType:    query.Classify(rawQuery),
			Results:      results,
			Documents:    docs,
			Answer:       synthesis.Summary,
		},
		Synthesis:      synthesis,
		Contradictions: synth.FindContradictions(synthesis.KeyPoints),
	}
	a.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

// News runs the news fallback chain, publishes the items to the stream and
// narrates them.
func (a *Agent) News(ctx context.Context, rawQuery string) (*NewsResponse, error) {
	if rawQuery == "" {
		return nil, ErrEmptyQuery
	}

	items, err := a.news.Search(ctx, rawQuery, a.cfg.SearchResultsLimit)
	if err != nil {
		return nil, err
	}

	if published := a.Stream.PublishNews(rawQuery, items); published > 0 {
		log.Printf("Published %d news items for %q", published, rawQuery)
	}

	return &NewsResponse{
		Query:   rawQuery,
		Items:   items,
		Summary: a.llm.NarrateNews(ctx, rawQuery, items),
	}, nil
}

// AnalyzeQuery exposes the pure query analysis.
func (a *Agent) AnalyzeQuery(rawQuery string) query.Analysis {
	return query.DetailedAnalysis(rawQuery)
}

// BrowserRunning reports whether the shared Chrome process is up; used by
// the health endpoint.
func (a *Agent) BrowserRunning() bool {
	return a.browser.Running()
}

// Close releases the browser and any attached resources.
func (a *Agent) Close() {
	if err := a.browser.Close(); err != nil {
		log.Printf("Browser close: %v", err)
	}
	if err := a.Cache.Close(); err != nil {
		log.Printf("Cache close: %v", err)
	}
	if err := a.Stream.Close(); err != nil {
		log.Printf("Stream close: %v", err)
	}
}

// refine collapses the query to keyword form, letting the model improve on
// the heuristic rewrite when configured.
func (a *Agent) refine(ctx context.Context, rawQuery string) string {
	refined := query.Analyze(rawQuery)
	if a.llm.Enabled() {
		refined = a.llm.RefineQuery(ctx, refined)
	}
	return refined
}

// extractTop fetches content for the best results, bounded by the
// max-pages-to-scrape setting, and archives what survives.
func (a *Agent) extractTop(ctx context.Context, results []types.SearchResult) []types.ExtractedDocument {
	limit := a.cfg.MaxPagesToScrape
	if limit <= 0 || limit > len(results) {
		limit = len(results)
	}
	urls := make([]string, 0, limit)
	for _, r := range results[:limit] {
		urls = append(urls, r.URL)
	}

	docs := a.engine.Extract(ctx, urls)
	for _, d := range docs {
		if _, err := a.Archive.SaveDocument(ctx, d); err != nil {
			log.Printf("Archive document %s: %v", d.URL, err)
		}
	}
	return docs
}

// applyLLMSynthesis overlays the model output onto the heuristic synthesis.
// A blank model field keeps the heuristic text, so a partial parse (bullet
// points without a summary) never blanks the answer.
func applyLLMSynthesis(s *types.SynthesisResult, summary string, points []string) {
	if strings.TrimSpace(summary) != "" {
		s.Summary = summary
	}
	if len(points) > 0 {
		s.KeyPoints = points
	}
}

func (a *Agent) cacheSet(ctx context.Context, key string, value any) {
	if err := a.Cache.Set(ctx, key, value); err != nil {
		log.Printf("Cache set %s: %v", key, err)
	}
}
