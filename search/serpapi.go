package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"searchagent/types"
)

const serpAPIEndpoint = "https://serpapi.com/search"

// SerpAPIProvider queries the SerpAPI aggregation service. It needs no
// browser and is the cheapest structured provider when a key is configured.
type SerpAPIProvider struct {
	apiKey   string
	engine   string
	client   *http.Client
	endpoint string
}

// NewSerpAPIProvider builds a provider for one engine ("google" or "bing").
func NewSerpAPIProvider(apiKey, engine string, timeout time.Duration) *SerpAPIProvider {
	if engine == "" {
		engine = "google"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SerpAPIProvider{
		apiKey:   apiKey,
		engine:   engine,
		client:   &http.Client{Timeout: timeout},
		endpoint: serpAPIEndpoint,
	}
}

func (p *SerpAPIProvider) Name() string {
	return "serpapi-" + p.engine
}

type serpAPIResponse struct {
	OrganicResults []struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
		Position int    `json:"position"`
	} `json:"organic_results"`
	Error string `json:"error"`
}

func (p *SerpAPIProvider) Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	if p.apiKey == "" {
		return nil, errors.New("serpapi key not configured")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("engine", p.engine)
	params.Set("num", fmt.Sprint(limit))
	params.Set("api_key", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build serpapi request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi returned status %d", resp.StatusCode)
	}

	var body serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode serpapi response: %w", err)
	}
	if body.Error != "" {
		return nil, fmt.Errorf("serpapi error: %s", body.Error)
	}

	results := make([]types.SearchResult, 0, len(body.OrganicResults))
	for i, r := range body.OrganicResults {
		pos := r.Position
		if pos == 0 {
			pos = i + 1
		}
		results = append(results, types.SearchResult{
			Title:    r.Title,
			Snippet:  r.Snippet,
			URL:      r.Link,
			Position: pos,
			Source:   p.Name(),
		})
	}
	return results, nil
}
