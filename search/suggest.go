package search

import (
	"fmt"
	"net/url"

	"searchagent/types"
)

// Suggestions builds synthetic results pointing at manual search pages for
// the query. Used as the chain's last resort so callers always get
// something actionable back.
func Suggestions(query string) []types.SearchResult {
	if query == "" {
		return nil
	}
	escaped := url.QueryEscape(query)

	engines := []struct {
		name string
		url  string
	}{
		{"Google", "https://www.google.com/search?q=" + escaped},
		{"Bing", "https://www.bing.com/search?q=" + escaped},
		{"DuckDuckGo", "https://duckduckgo.com/?q=" + escaped},
		{"Wikipedia", "https://en.wikipedia.org/wiki/Special:Search?search=" + escaped},
	}

	results := make([]types.SearchResult, 0, len(engines))
	for i, e := range engines {
		results = append(results, types.SearchResult{
			Title:    fmt.Sprintf("Search %s for: %s", e.name, query),
			Snippet:  fmt.Sprintf("Automated search was unavailable. Open %s to search for %q manually.", e.name, query),
			URL:      e.url,
			Position: i + 1,
			Source:   "suggestion",
		})
	}
	return results
}
