package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"searchagent/types"
	"searchagent/urlutil"
)

const (
	newsAPIEndpoint = "https://newsapi.org/v2/everything"
	gnewsEndpoint   = "https://gnews.io/api/v4/search"
)

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (o *Orchestrator) fromNewsAPI(ctx context.Context, query string, limit int) ([]types.NewsItem, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("pageSize", fmt.Sprint(limit))
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	params.Set("apiKey", o.newsAPIKey)

	var body newsAPIResponse
	if err := o.getJSON(ctx, o.newsAPIEndpoint+"?"+params.Encode(), &body); err != nil {
		return nil, err
	}
	if body.Status != "ok" {
		return nil, fmt.Errorf("newsapi status %q: %s", body.Status, body.Message)
	}

	items := make([]types.NewsItem, 0, len(body.Articles))
	for _, a := range body.Articles {
		items = append(items, types.NewsItem{
			Title:         a.Title,
			Source:        a.Source.Name,
			URL:           a.URL,
			PublishedDate: a.PublishedAt,
			Snippet:       a.Description,
		})
	}
	return items, nil
}

type gnewsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"source"`
	} `json:"articles"`
	Errors []string `json:"errors"`
}

func (o *Orchestrator) fromGNews(ctx context.Context, query string, limit int) ([]types.NewsItem, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("max", fmt.Sprint(limit))
	params.Set("lang", "en")
	params.Set("apikey", o.gnewsKey)

	var body gnewsResponse
	if err := o.getJSON(ctx, o.gnewsEndpoint+"?"+params.Encode(), &body); err != nil {
		return nil, err
	}
	if len(body.Errors) > 0 {
		return nil, fmt.Errorf("gnews error: %s", body.Errors[0])
	}

	items := make([]types.NewsItem, 0, len(body.Articles))
	for _, a := range body.Articles {
		source := a.Source.Name
		if source == "" {
			source = urlutil.Domain(a.URL)
		}
		items = append(items, types.NewsItem{
			Title:         a.Title,
			Source:        source,
			URL:           a.URL,
			PublishedDate: a.PublishedAt,
			Snippet:       a.Description,
		})
	}
	return items, nil
}

func (o *Orchestrator) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
