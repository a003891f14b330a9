package types

import (
	"crypto/sha256"
	"encoding/hex"
)

// SearchResult is a single entry returned by a search provider.
// Position is the 1-based rank within one provider's result set.
type SearchResult struct {
	Title    string `json:"title"`
	Snippet  string `json:"snippet"`
	URL      string `json:"url"`
	Position int    `json:"position"`
	Source   string `json:"source,omitempty"`
}

// ExtractedDocument holds the readable text pulled out of one page.
// Metadata records how the extraction happened (extraction_method,
// published_date, authors, ...) for observability.
type ExtractedDocument struct {
	URL      string         `json:"url"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewsItem is a single news article reference. PublishedDate is kept as the
// provider-native string (ISO-8601 from APIs, RFC1123 from RSS).
type NewsItem struct {
	Title         string `json:"title"`
	Source        string `json:"source"`
	URL           string `json:"url"`
	PublishedDate string `json:"published_date"`
	Snippet       string `json:"snippet"`
}

// SourceRef points back at a document that contributed to a synthesis.
type SourceRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SynthesisResult is the combined answer built from extracted documents.
type SynthesisResult struct {
	Summary   string      `json:"summary"`
	KeyPoints []string    `json:"key_points"`
	Sources   []SourceRef `json:"sources"`
}

// Contradiction flags two key points containing opposing terms. It is a
// heuristic signal, not a logical guarantee.
type Contradiction struct {
	Point1 string    `json:"point1"`
	Point2 string    `json:"point2"`
	Terms  [2]string `json:"contradictory_terms"`
}

// GenerateID creates a short, stable ID by hashing the provided string input
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}
