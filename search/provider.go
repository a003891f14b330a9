// Package search implements the web search layer: an ordered chain of
// providers with retry, anti-bot detection and a guaranteed non-empty
// fallback for non-empty queries.
package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"searchagent/types"
	"searchagent/urlutil"
)

// ErrBlocked signals that a provider hit an anti-bot challenge. Blocked
// providers are skipped immediately; retrying a CAPTCHA never helps.
var ErrBlocked = errors.New("provider blocked by anti-bot challenge")

// Provider is one search backend. Implementations must surface transport
// errors distinctly from zero results: an empty slice with nil error means
// the query genuinely matched nothing.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error)
}

// Chain runs providers in order until one returns results. Transient errors
// are retried per provider with a short randomized backoff; ErrBlocked skips
// to the next provider at once. If every provider comes up empty, synthetic
// suggestion results are returned so a non-empty query never yields nothing.
type Chain struct {
	providers []Provider
	retries   int
	delay     time.Duration
}

// NewChain builds a chain over the given providers. retries is the number of
// additional attempts per provider after the first; delay is the base
// backoff between attempts.
func NewChain(retries int, delay time.Duration, providers ...Provider) *Chain {
	if retries < 0 {
		retries = 0
	}
	if delay <= 0 {
		delay = time.Second
	}
	return &Chain{providers: providers, retries: retries, delay: delay}
}

// Search walks the provider chain. Results are deduplicated by cleaned URL,
// capped at limit, and re-ranked by first-seen order.
func (c *Chain) Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	for _, p := range c.providers {
		results, err := c.tryProvider(ctx, p, query, limit)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			log.Printf("Search provider %s failed for %q: %v", p.Name(), query, err)
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
		log.Printf("Search provider %s returned no results for %q", p.Name(), query)
	}

	log.Printf("All search providers exhausted for %q, returning suggestions", query)
	return Suggestions(query), nil
}

func (c *Chain) tryProvider(ctx context.Context, p Provider, query string, limit int) ([]types.SearchResult, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff(attempt)):
			}
		}

		results, err := p.Search(ctx, query, limit)
		if err == nil {
			return dedupe(results, limit), nil
		}
		if errors.Is(err, ErrBlocked) {
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%s: %w", p.Name(), lastErr)
}

// backoff returns the wait before the given retry attempt, jittered so
// concurrent chains do not hammer a provider in lockstep.
func (c *Chain) backoff(attempt int) time.Duration {
	base := c.delay * time.Duration(attempt)
	jitter := time.Duration(rand.Int63n(int64(c.delay) / 2))
	return base + jitter
}

// dedupe drops invalid and repeated URLs, keeping first-seen order, and
// reassigns 1-based positions after the cut.
func dedupe(results []types.SearchResult, limit int) []types.SearchResult {
	seen := make(map[string]bool)
	out := make([]types.SearchResult, 0, len(results))
	for _, r := range results {
		if !urlutil.IsValid(r.URL) {
			continue
		}
		key := urlutil.Clean(r.URL)
		if seen[key] {
			continue
		}
		seen[key] = true
		r.URL = key
		r.Position = len(out) + 1
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out
}
