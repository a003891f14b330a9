package synth

import (
	"strings"
	"testing"

	"searchagent/types"
)

func doc(url, title, content string) types.ExtractedDocument {
	return types.ExtractedDocument{URL: url, Title: title, Content: content}
}

func TestSynthesizeEmptyDocuments(t *testing.T) {
	got := Synthesize("quantum computing", nil)
	if !strings.Contains(strings.ToLower(got.Summary), "no information found") {
		t.Errorf("summary = %q, want no-information message", got.Summary)
	}
	if len(got.KeyPoints) != 0 || len(got.Sources) != 0 {
		t.Errorf("expected empty key points and sources, got %+v", got)
	}
}

func TestSynthesizeSourcesMatchContributingDocs(t *testing.T) {
	body := "Solar capacity is growing fast worldwide. " +
		"Installations increased by 30% last year across major markets. " +
		"Battery storage makes solar power dispatchable after sunset. " +
		"Grid operators are adapting to variable solar generation patterns."

	docs := []types.ExtractedDocument{
		doc("https://a.example.com", "Solar growth", body),
		doc("https://b.example.com", "Empty page", "   "),
		doc("https://c.example.com", "", body),
	}

	got := Synthesize("solar power growth", docs)
	if len(got.Sources) != 2 {
		t.Fatalf("sources = %d, want 2 (only docs with content)", len(got.Sources))
	}
	if got.Sources[0].URL != "https://a.example.com" || got.Sources[1].URL != "https://c.example.com" {
		t.Errorf("sources out of input order: %+v", got.Sources)
	}
	// Title falls back to URL when the document has none.
	if got.Sources[1].Title != "https://c.example.com" {
		t.Errorf("missing title fallback: %+v", got.Sources[1])
	}
	if got.Summary == "" {
		t.Error("expected non-empty summary")
	}
}

func TestKeyPointsDeduplication(t *testing.T) {
	corpus := "Electric vehicles reduce urban air pollution significantly in cities. " +
		"Electric vehicles reduce urban air pollution significantly in most cities. " +
		"Charging infrastructure is expanding across highway networks this decade."

	points := KeyPoints("electric vehicles pollution", corpus, 10)
	dupes := 0
	for _, p := range points {
		if strings.Contains(p, "reduce urban air pollution") {
			dupes++
		}
	}
	if dupes != 1 {
		t.Errorf("near-duplicate key points not collapsed: %v", points)
	}
}

func TestKeyPointsCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("Renewable energy adoption keeps rising across different regions steadily. ")
		b.WriteString("Wind turbines generate clean power for millions of homes daily. ")
	}
	points := KeyPoints("renewable energy", b.String(), 10)
	if len(points) > 10 {
		t.Errorf("key points = %d, want at most 10", len(points))
	}
}

func TestKeyPointsBoostNumericAndDefinitional(t *testing.T) {
	corpus := "Photosynthesis is the process plants use to convert light into energy. " +
		"Some filler text talks about gardens and various plants in pots here. " +
		"Chlorophyll absorbs roughly 90% of usable light energy in leaves."

	points := KeyPoints("photosynthesis energy", corpus, 2)
	if len(points) != 2 {
		t.Fatalf("expected 2 key points, got %v", points)
	}
	joined := strings.Join(points, " ")
	if !strings.Contains(joined, "90%") {
		t.Errorf("numeric sentence not boosted: %v", points)
	}
	if !strings.Contains(joined, "Photosynthesis is the process") {
		t.Errorf("definitional sentence not boosted: %v", points)
	}
}

func TestFindContradictions(t *testing.T) {
	points := []string{
		"Several studies report that prices will increase next year.",
		"Industry analysts expect costs to decrease as supply recovers.",
		"Shipping volumes remain flat across the region.",
	}

	got := FindContradictions(points)
	if len(got) != 1 {
		t.Fatalf("expected 1 contradiction, got %+v", got)
	}
	if got[0].Terms != [2]string{"increase", "decrease"} {
		t.Errorf("terms = %v", got[0].Terms)
	}
}

func TestFindContradictionsNone(t *testing.T) {
	points := []string{
		"Rainfall patterns are shifting in coastal regions.",
		"Farmers adjust planting schedules accordingly.",
	}
	if got := FindContradictions(points); len(got) != 0 {
		t.Errorf("unexpected contradictions: %+v", got)
	}
}
