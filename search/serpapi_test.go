package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSerpAPIProviderParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "golang" {
			t.Errorf("query param = %q, want golang", got)
		}
		if got := r.URL.Query().Get("engine"); got != "google" {
			t.Errorf("engine param = %q, want google", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"organic_results":[
			{"title":"The Go Programming Language","link":"https://go.dev/","snippet":"Build simple software.","position":1},
			{"title":"Go wiki","link":"https://go.dev/wiki","snippet":"Community wiki.","position":2}
		]}`))
	}))
	defer srv.Close()

	p := NewSerpAPIProvider("test-key", "google", time.Second)
	p.endpoint = srv.URL

	got, err := p.Search(context.Background(), "golang", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %v", got)
	}
	if got[0].Title != "The Go Programming Language" || got[0].Position != 1 {
		t.Errorf("unexpected first result: %+v", got[0])
	}
	if got[1].Source != "serpapi-google" {
		t.Errorf("source = %q, want serpapi-google", got[1].Source)
	}
}

func TestSerpAPIProviderSurfacesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewSerpAPIProvider("test-key", "google", time.Second)
	p.endpoint = srv.URL

	if _, err := p.Search(context.Background(), "golang", 10); err == nil {
		t.Fatal("expected error for HTTP 429, got nil")
	}
}

func TestSerpAPIProviderSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Invalid API key"}`))
	}))
	defer srv.Close()

	p := NewSerpAPIProvider("bad-key", "bing", time.Second)
	p.endpoint = srv.URL

	if _, err := p.Search(context.Background(), "golang", 10); err == nil {
		t.Fatal("expected error for API-level error, got nil")
	}
}

func TestSerpAPIProviderRequiresKey(t *testing.T) {
	p := NewSerpAPIProvider("", "google", time.Second)
	if _, err := p.Search(context.Background(), "golang", 10); err == nil {
		t.Fatal("expected error when key unset")
	}
}
