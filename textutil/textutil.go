// Package textutil contains the text processing helpers shared by the
// extraction and synthesis layers: HTML to plain text conversion, sentence
// splitting, keyword extraction, extractive summarization, and the Jaccard
// similarity check used for near-duplicate detection.
package textutil

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var (
	urlRe        = regexp.MustCompile(`https?://\S+`)
	emailRe      = regexp.MustCompile(`\S+@\S+`)
	nonWordRe    = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	digitsRe     = regexp.MustCompile(`\d+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	paragraphRe  = regexp.MustCompile(`\n\s*\n`)
)

// blockTags force a line break when converting HTML to text.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "table": true, "section": true, "article": true,
	"blockquote": true, "pre": true,
}

// skipTags contribute no visible text.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"iframe": true, "svg": true, "head": true,
}

// HTMLToText converts an HTML fragment or document to plain text. Block-level
// elements become paragraph breaks; scripts, styles and similar regions are
// dropped. Unparseable input is returned as-is after tag-stripping.
func HTMLToText(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return NormalizeWhitespace(stripTagsRe.ReplaceAllString(content, " "))
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockTags[n.Data] {
			b.WriteString("\n\n")
		}
	}
	walk(doc)

	text := b.String()
	// Collapse runs of blank lines but keep paragraph boundaries.
	text = paragraphRe.ReplaceAllString(text, "\n\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

var stripTagsRe = regexp.MustCompile(`<[^>]+>`)

// NormalizeWhitespace collapses all whitespace runs to single spaces.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// Truncate cuts s to at most max bytes without splitting a UTF-8 rune.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// CleanText lowercases and strips URLs, emails, punctuation and digits,
// leaving a bag of words suitable for keyword counting.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = urlRe.ReplaceAllString(text, "")
	text = emailRe.ReplaceAllString(text, "")
	text = nonWordRe.ReplaceAllString(text, " ")
	text = digitsRe.ReplaceAllString(text, " ")
	return NormalizeWhitespace(text)
}

// SplitSentences splits text into sentences on terminal punctuation. It is a
// heuristic tokenizer: good enough for scoring scraped prose, not a parser.
func SplitSentences(text string) []string {
	text = NormalizeWhitespace(strings.ReplaceAll(text, "\n", " "))
	if text == "" {
		return nil
	}

	var sentences []string
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// Sentence ends when punctuation is followed by a space and an
			// uppercase letter, or by end of text. Avoids splitting "3.5"
			// and most abbreviations followed by lowercase.
			if i == len(runes)-1 {
				break
			}
			if runes[i+1] == ' ' && i+2 < len(runes) && unicode.IsUpper(runes[i+2]) {
				s := strings.TrimSpace(b.String())
				if s != "" {
					sentences = append(sentences, s)
				}
				b.Reset()
				i++ // consume the space
			}
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// ExtractKeywords returns the most frequent non-stopword terms in the text,
// ordered by count (first occurrence breaks ties).
func ExtractKeywords(text string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	words := strings.Fields(CleanText(text))
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, w := range words {
		if len(w) <= 2 || stopwords[w] {
			continue
		}
		if _, ok := counts[w]; !ok {
			firstSeen[w] = i
		}
		counts[w]++
	}

	keywords := make([]string, 0, len(counts))
	for w := range counts {
		keywords = append(keywords, w)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return firstSeen[keywords[i]] < firstSeen[keywords[j]]
	})

	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords
}

// Summarize builds an extractive summary: sentences are scored by lead
// position and keyword hits with length penalties, the top maxSentences are
// selected, then re-ordered to their original positions for readability.
func Summarize(text string, maxSentences int) string {
	sentences := SplitSentences(text)
	if len(sentences) <= maxSentences {
		return NormalizeWhitespace(text)
	}

	keywords := ExtractKeywords(text, 20)

	scores := make([]float64, len(sentences))
	for i, sentence := range sentences {
		lower := strings.ToLower(sentence)

		// Lead sentences usually carry the topic.
		if i < 3 {
			scores[i] += float64(3 - i)
		}
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				scores[i]++
			}
		}
		length := len(strings.Fields(sentence))
		if length < 5 {
			scores[i] -= 2
		} else if length > 40 {
			scores[i]--
		}
	}

	top := topIndicesByScore(scores, maxSentences)
	picked := make([]string, 0, len(top))
	for _, idx := range top {
		picked = append(picked, sentences[idx])
	}
	return strings.Join(picked, " ")
}

// ExtractMainContent keeps the densest paragraph of a converted page,
// dropping navigation crumbs and footer noise around it. If nothing
// substantial is found the input is returned unchanged.
func ExtractMainContent(text string) string {
	paragraphs := paragraphRe.Split(text, -1)
	if len(paragraphs) == 0 {
		return text
	}

	best := ""
	for _, p := range paragraphs {
		if len(strings.TrimSpace(p)) <= 100 {
			continue
		}
		if len(p) > len(best) {
			best = p
		}
	}

	if len(best) < 200 {
		return text
	}
	return strings.TrimSpace(best)
}

// Jaccard computes |A∩B| / |A∪B| over lowercase whitespace-tokenized word
// sets. An empty union yields 0.
func Jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// IsSimilar reports whether two strings exceed the given Jaccard threshold.
func IsSimilar(a, b string, threshold float64) bool {
	return Jaccard(a, b) > threshold
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

// topIndicesByScore returns the indices of the n highest-scoring entries,
// sorted back into ascending (original) order.
func topIndicesByScore(scores []float64, n int) []int {
	indices := make([]int, len(scores))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return scores[indices[i]] > scores[indices[j]]
	})
	if len(indices) > n {
		indices = indices[:n]
	}
	sort.Ints(indices)
	return indices
}
