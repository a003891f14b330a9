package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"searchagent/types"
)

func TestParseSynthesisPlainJSON(t *testing.T) {
	raw := `{"summary":"Solar is growing.","key_points":["Capacity up 30%","Storage matters"]}`
	summary, points, err := ParseSynthesis(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "Solar is growing." || len(points) != 2 {
		t.Errorf("got %q / %v", summary, points)
	}
}

func TestParseSynthesisCodeFence(t *testing.T) {
	raw := "Here is the answer you asked for:\n```json\n" +
		`{"summary":"Fenced.","key_points":["one"]}` + "\n```\nLet me know if you need more."
	summary, points, err := ParseSynthesis(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "Fenced." || len(points) != 1 {
		t.Errorf("got %q / %v", summary, points)
	}
}

func TestParseSynthesisEmbeddedObject(t *testing.T) {
	raw := `Sure! {"summary":"Embedded.","key_points":["a","b"]} Hope that helps.`
	summary, points, err := ParseSynthesis(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "Embedded." || len(points) != 2 {
		t.Errorf("got %q / %v", summary, points)
	}
}

func TestParseSynthesisBulletFallback(t *testing.T) {
	raw := "The main findings are:\n- Prices rose sharply\n- Supply remains tight\n* Demand is stable"
	summary, points, err := ParseSynthesis(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Errorf("points = %v, want 3", points)
	}
	if !strings.Contains(summary, "main findings") {
		t.Errorf("summary = %q", summary)
	}
}

func TestParseSynthesisGarbage(t *testing.T) {
	if _, _, err := ParseSynthesis("I cannot answer that."); err == nil {
		t.Fatal("expected error for unusable response")
	}
	if _, _, err := ParseSynthesis(""); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestDisabledProcessorFallsBack(t *testing.T) {
	p := New("", "")
	if p.Enabled() {
		t.Fatal("processor without key must be disabled")
	}

	if got := p.RefineQuery(context.Background(), "original query"); got != "original query" {
		t.Errorf("RefineQuery = %q, want original", got)
	}

	results := []types.SearchResult{{Title: "T", URL: "https://x.example.com", Position: 1}}
	if got := p.NarrateSearch(context.Background(), "q", results); !strings.Contains(got, "T") {
		t.Errorf("fallback narration missing result: %q", got)
	}

	if _, _, err := p.SynthesizeJSON(context.Background(), "q", nil); err == nil {
		t.Error("disabled processor must surface an error for structured synthesis")
	}
}

func TestRefineQueryFailureKeepsOriginal(t *testing.T) {
	p := &Processor{
		model: "test",
		chat: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("transport down")
		},
	}
	if got := p.RefineQuery(context.Background(), "keep me"); got != "keep me" {
		t.Errorf("RefineQuery = %q, want original on failure", got)
	}
}

func TestRefineQueryStripsQuotes(t *testing.T) {
	p := &Processor{
		model: "test",
		chat: func(ctx context.Context, prompt string) (string, error) {
			return `"tight search query"`, nil
		},
	}
	if got := p.RefineQuery(context.Background(), "loose question"); got != "tight search query" {
		t.Errorf("RefineQuery = %q", got)
	}
}

func TestSynthesizeJSONUsesChat(t *testing.T) {
	var prompt string
	p := &Processor{
		model: "test",
		chat: func(ctx context.Context, in string) (string, error) {
			prompt = in
			return `{"summary":"From model.","key_points":["kp"]}`, nil
		},
	}

	docs := []types.ExtractedDocument{{URL: "https://a.example.com", Content: "Body text."}}
	summary, points, err := p.SynthesizeJSON(context.Background(), "what happened", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "From model." || len(points) != 1 {
		t.Errorf("got %q / %v", summary, points)
	}
	if !strings.Contains(prompt, "https://a.example.com") {
		t.Errorf("prompt missing document URL")
	}
}
