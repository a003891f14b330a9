// Package news finds recent news for a query through an ordered fallback:
// dedicated news APIs, RSS aggregators, a domain-constrained web search, and
// finally the generic search chain. RSS output is rebalanced so one prolific
// feed cannot crowd out the rest.
package news

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"searchagent/types"
	"searchagent/urlutil"
)

// maxPerSource caps how many items one source may contribute after RSS
// aggregation.
const maxPerSource = 3

// reputableNewsDomains constrain the web-search fallback.
var reputableNewsDomains = []string{
	"reuters.com", "apnews.com", "bbc.com", "theguardian.com",
	"nytimes.com", "washingtonpost.com", "aljazeera.com", "cnn.com",
	"npr.org", "bloomberg.com",
}

// WebSearcher is the generic search capability used for the last two
// fallback tiers. *search.Chain satisfies it.
type WebSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error)
}

// Orchestrator runs the news fallback chain.
type Orchestrator struct {
	newsAPIKey string
	gnewsKey   string
	client     *http.Client
	parser     *gofeed.Parser
	web        WebSearcher

	newsAPIEndpoint string
	gnewsEndpoint   string
	feeds           func(query string) []string
}

// New builds an orchestrator. Either API key may be empty; unconfigured
// providers are skipped silently. web may be nil, which disables the
// web-search fallbacks.
func New(newsAPIKey, gnewsKey string, web WebSearcher, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Orchestrator{
		newsAPIKey:      newsAPIKey,
		gnewsKey:        gnewsKey,
		client:          &http.Client{Timeout: timeout},
		parser:          gofeed.NewParser(),
		web:             web,
		newsAPIEndpoint: newsAPIEndpoint,
		gnewsEndpoint:   gnewsEndpoint,
		feeds:           aggregatorFeeds,
	}
}

// Search walks the fallback tiers in order and returns the first tier that
// produces anything, capped at limit.
func (o *Orchestrator) Search(ctx context.Context, query string, limit int) ([]types.NewsItem, error) {
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	if o.newsAPIKey != "" {
		items, err := o.fromNewsAPI(ctx, query, limit)
		if err != nil {
			log.Printf("NewsAPI failed for %q: %v", query, err)
		} else if len(items) > 0 {
			return items, nil
		}
	}

	if o.gnewsKey != "" {
		items, err := o.fromGNews(ctx, query, limit)
		if err != nil {
			log.Printf("GNews failed for %q: %v", query, err)
		} else if len(items) > 0 {
			return items, nil
		}
	}

	if items := o.fromRSS(ctx, query, limit); len(items) > 0 {
		return items, nil
	}

	if o.web != nil {
		if items := o.fromConstrainedSearch(ctx, query, limit); len(items) > 0 {
			return items, nil
		}
		results, err := o.web.Search(ctx, query+" news recent", limit)
		if err != nil {
			return nil, err
		}
		return resultsToNews(results, limit), nil
	}
	return nil, nil
}

// fromConstrainedSearch runs a general web search and keeps only hits on
// known news domains.
func (o *Orchestrator) fromConstrainedSearch(ctx context.Context, query string, limit int) []types.NewsItem {
	results, err := o.web.Search(ctx, query+" news", limit*2)
	if err != nil {
		log.Printf("Constrained news search failed for %q: %v", query, err)
		return nil
	}

	var items []types.NewsItem
	for _, r := range results {
		domain := urlutil.Domain(r.URL)
		if !isReputable(domain) {
			continue
		}
		items = append(items, types.NewsItem{
			Title:   r.Title,
			Source:  domain,
			URL:     r.URL,
			Snippet: r.Snippet,
		})
		if len(items) == limit {
			break
		}
	}
	return items
}

func isReputable(domain string) bool {
	for _, d := range reputableNewsDomains {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return true
		}
	}
	return false
}

func resultsToNews(results []types.SearchResult, limit int) []types.NewsItem {
	items := make([]types.NewsItem, 0, len(results))
	for _, r := range results {
		items = append(items, types.NewsItem{
			Title:   r.Title,
			Source:  urlutil.Domain(r.URL),
			URL:     r.URL,
			Snippet: r.Snippet,
		})
		if len(items) == limit {
			break
		}
	}
	return items
}

// rebalance enforces source diversity: at most maxPerSource items per source
// in first-seen order, capped at limit.
func rebalance(items []types.NewsItem, limit int) []types.NewsItem {
	perSource := make(map[string]int)
	out := make([]types.NewsItem, 0, len(items))
	for _, it := range items {
		if perSource[it.Source] >= maxPerSource {
			continue
		}
		perSource[it.Source]++
		out = append(out, it)
		if len(out) == limit {
			break
		}
	}
	return out
}
