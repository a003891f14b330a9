package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestHTMLToText(t *testing.T) {
	input := `<html><head><style>.x{color:red}</style></head><body>
		<nav>Home | About</nav>
		<p>First paragraph with <b>bold</b> text.</p>
		<script>var x = 1;</script>
		<p>Second paragraph.</p>
	</body></html>`

	got := HTMLToText(input)

	if strings.Contains(got, "color:red") || strings.Contains(got, "var x") {
		t.Errorf("script/style content leaked into text: %q", got)
	}
	if !strings.Contains(got, "First paragraph with bold text.") {
		t.Errorf("missing paragraph text in %q", got)
	}
	if !strings.Contains(got, "Second paragraph.") {
		t.Errorf("missing second paragraph in %q", got)
	}
}

func TestSplitSentences(t *testing.T) {
	text := "Go is a language. It was designed at Google. Versions like 1.22 exist. The end"
	got := SplitSentences(text)
	if len(got) != 4 {
		t.Fatalf("expected 4 sentences, got %d: %v", len(got), got)
	}
	if got[2] != "Versions like 1.22 exist." {
		t.Errorf("decimal number split incorrectly: %q", got[2])
	}
}

func TestExtractKeywords(t *testing.T) {
	text := "Solar power is renewable. Solar panels convert sunlight. " +
		"The panels need sunlight and the sunlight is free."
	got := ExtractKeywords(text, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 keywords, got %v", got)
	}
	if got[0] != "sunlight" {
		t.Errorf("most frequent keyword = %q, want \"sunlight\"", got[0])
	}
	for _, kw := range got {
		if stopwords[kw] {
			t.Errorf("stopword %q returned as keyword", kw)
		}
	}
}

func TestSummarizeShortTextUnchanged(t *testing.T) {
	text := "Only one sentence here."
	if got := Summarize(text, 5); got != text {
		t.Errorf("Summarize() = %q, want input unchanged", got)
	}
}

func TestSummarizePreservesOrder(t *testing.T) {
	var b strings.Builder
	b.WriteString("Climate change affects global weather patterns severely. ")
	b.WriteString("Scientists study climate data from many weather stations. ")
	b.WriteString("Ice cores reveal historic climate information clearly. ")
	b.WriteString("Nothing relevant sits in this filler line at all. ")
	b.WriteString("Climate models predict future weather patterns with climate data. ")
	b.WriteString("Another filler line that talks of cooking pasta recipes. ")
	b.WriteString("Global climate agreements target weather pattern stability.")

	summary := Summarize(b.String(), 3)
	sentences := SplitSentences(summary)
	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(sentences), sentences)
	}

	// Selected sentences must appear in their original relative order.
	full := b.String()
	last := -1
	for _, s := range sentences {
		idx := strings.Index(full, s)
		if idx < 0 {
			t.Fatalf("summary sentence %q not found in source", s)
		}
		if idx < last {
			t.Errorf("summary sentences out of original order")
		}
		last = idx
	}
}

func TestJaccardSymmetricAndReflexive(t *testing.T) {
	pairs := [][2]string{
		{"the quick brown fox", "a quick brown dog"},
		{"alpha beta", "gamma delta"},
		{"same words here", "same words here"},
	}
	for _, p := range pairs {
		if Jaccard(p[0], p[1]) != Jaccard(p[1], p[0]) {
			t.Errorf("Jaccard not symmetric for %q / %q", p[0], p[1])
		}
	}
	if !IsSimilar("hello world", "hello world", 0.7) {
		t.Error("identical non-empty strings should be similar")
	}
	if Jaccard("", "") != 0 {
		t.Error("empty union should yield 0")
	}
}

func TestExtractMainContent(t *testing.T) {
	long := strings.Repeat("This is the real article body with substance. ", 10)
	text := "Home | News | Sport\n\n" + long + "\n\nCopyright 2024"
	got := ExtractMainContent(text)
	if !strings.Contains(got, "real article body") {
		t.Errorf("main content missing from %q", got)
	}
	if strings.Contains(got, "Copyright") {
		t.Errorf("footer noise kept: %q", got)
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	s := strings.Repeat("a", 5) + "héllo wörld"

	got := Truncate(s, 7)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated string is invalid UTF-8: %q", got)
	}
	// Byte 7 lands inside the two-byte é, so the cut backs up before it.
	if got != "aaaaah" {
		t.Errorf("Truncate() = %q, want %q", got, "aaaaah")
	}

	if got := Truncate("short", 100); got != "short" {
		t.Errorf("short input changed: %q", got)
	}
	if got := Truncate("unbounded", 0); got != "unbounded" {
		t.Errorf("zero max should disable truncation, got %q", got)
	}
}
