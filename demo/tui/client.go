package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AgentClient is a thin HTTP client for the search agent API.
type AgentClient struct {
	baseURL string
	client  *http.Client
}

// NewAgentClient creates a client for the given base URL.
func NewAgentClient(baseURL string) *AgentClient {
	return &AgentClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// SourceRef mirrors the API's source entries.
type SourceRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// AnalyzeResponse mirrors the /api/analyze payload fields the demo shows.
type AnalyzeResponse struct {
	Query        string `json:"query"`
	RefinedQuery string `json:"refined_query"`
	QueryType    string `json:"query_type"`
	Answer       string `json:"answer"`
	Synthesis    struct {
		Summary   string      `json:"summary"`
		KeyPoints []string    `json:"key_points"`
		Sources   []SourceRef `json:"sources"`
	} `json:"synthesis"`
}

// SearchResponse mirrors the /api/search payload.
type SearchResponse struct {
	Query        string `json:"query"`
	RefinedQuery string `json:"refined_query"`
	Answer       string `json:"answer"`
	Results      []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		URL     string `json:"url"`
	} `json:"results"`
}

// NewsResponse mirrors the /api/news payload.
type NewsResponse struct {
	Query   string `json:"query"`
	Summary string `json:"summary"`
	Items   []struct {
		Title         string `json:"title"`
		Source        string `json:"source"`
		URL           string `json:"url"`
		PublishedDate string `json:"published_date"`
	} `json:"items"`
}

// Search runs the search-only pipeline.
func (c *AgentClient) Search(query string) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.post("/api/search", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Analyze runs the full pipeline.
func (c *AgentClient) Analyze(query string) (*AnalyzeResponse, error) {
	var resp AnalyzeResponse
	if err := c.post("/api/analyze", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// News runs the news pipeline.
func (c *AgentClient) News(query string) (*NewsResponse, error) {
	var resp NewsResponse
	if err := c.post("/api/news", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *AgentClient) post(path, query string, out any) error {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return err
	}

	resp, err := c.client.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(raw))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
