package news

import (
	"context"
	"log"
	"net/url"
	"time"

	"searchagent/textutil"
	"searchagent/types"
	"searchagent/urlutil"
)

// aggregatorFeeds returns the query-specific RSS feeds to poll.
func aggregatorFeeds(query string) []string {
	escaped := url.QueryEscape(query)
	return []string{
		"https://news.google.com/rss/search?q=" + escaped + "&hl=en-US&gl=US&ceid=US:en",
		"https://www.bing.com/news/search?q=" + escaped + "&format=rss",
	}
}

// fromRSS polls the aggregator feeds, normalizes their items and rebalances
// for source diversity. A failing feed is logged and skipped.
func (o *Orchestrator) fromRSS(ctx context.Context, query string, limit int) []types.NewsItem {
	var items []types.NewsItem
	for _, feedURL := range o.feeds(query) {
		feed, err := o.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			log.Printf("RSS feed failed %s: %v", feedURL, err)
			continue
		}

		for _, item := range feed.Items {
			if item.Title == "" || item.Link == "" {
				continue
			}
			published := item.Published
			if item.PublishedParsed != nil {
				published = item.PublishedParsed.Format(time.RFC3339)
			}
			source := urlutil.Domain(item.Link)
			if source == "" {
				source = feed.Title
			}
			items = append(items, types.NewsItem{
				Title:         textutil.NormalizeWhitespace(item.Title),
				Source:        source,
				URL:           item.Link,
				PublishedDate: published,
				Snippet:       textutil.HTMLToText(item.Description),
			})
		}
	}
	return rebalance(items, limit)
}
