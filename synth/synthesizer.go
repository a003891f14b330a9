// Package synth combines extracted documents into a summary, ranked key
// points and contradiction candidates. Everything here is extractive: output
// sentences are selected from the input, never generated.
package synth

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"searchagent/textutil"
	"searchagent/types"
)

const (
	maxSummarySentences = 5
	maxKeyPoints        = 10
	dedupeThreshold     = 0.7
)

var (
	definitionalRe = regexp.MustCompile(`(?i)\b(is|are|refers to|defined as|means)\b`)
	numericRe      = regexp.MustCompile(`\d+(\.\d+)?%?`)
)

// antonymPairs drive the contradiction heuristic: two key points mentioning
// opposite members of a pair are flagged for the reader.
var antonymPairs = [][2]string{
	{"increase", "decrease"},
	{"higher", "lower"},
	{"more", "less"},
	{"positive", "negative"},
	{"agree", "disagree"},
	{"true", "false"},
	{"support", "oppose"},
	{"good", "bad"},
}

// Synthesize builds a SynthesisResult from the documents that carry content.
// With no usable content it returns an explicit "no information" result
// rather than an error.
func Synthesize(query string, docs []types.ExtractedDocument) types.SynthesisResult {
	var parts []string
	var sources []types.SourceRef
	for _, d := range docs {
		if strings.TrimSpace(d.Content) == "" {
			continue
		}
		parts = append(parts, d.Content)
		title := d.Title
		if title == "" {
			title = d.URL
		}
		sources = append(sources, types.SourceRef{Title: title, URL: d.URL})
	}

	if len(parts) == 0 {
		return types.SynthesisResult{
			Summary:   fmt.Sprintf("No information found for query: %s", query),
			KeyPoints: []string{},
			Sources:   []types.SourceRef{},
		}
	}

	corpus := strings.Join(parts, " ")
	return types.SynthesisResult{
		Summary:   textutil.Summarize(corpus, maxSummarySentences),
		KeyPoints: KeyPoints(query, corpus, maxKeyPoints),
		Sources:   sources,
	}
}

// KeyPoints scores corpus sentences against a blended keyword set: query
// keywords weigh double, the top corpus keywords 1.5x, the rest 1x.
// Definitional phrasing and numeric facts get a flat boost. The top limit
// sentences are restored to original order and near-duplicates dropped.
func KeyPoints(query, corpus string, limit int) []string {
	sentences := textutil.SplitSentences(corpus)
	if len(sentences) == 0 {
		return []string{}
	}

	weights := make(map[string]float64)
	corpusKeywords := textutil.ExtractKeywords(corpus, 15)
	for i, kw := range corpusKeywords {
		if i < 5 {
			weights[kw] = 1.5
		} else {
			weights[kw] = 1.0
		}
	}
	for _, kw := range textutil.ExtractKeywords(query, 10) {
		weights[kw] = 2.0
	}

	scores := make([]float64, len(sentences))
	for i, sentence := range sentences {
		words := len(strings.Fields(sentence))
		if words < 5 {
			scores[i] = -1
			continue
		}
		lower := strings.ToLower(sentence)
		for kw, w := range weights {
			if strings.Contains(lower, kw) {
				scores[i] += w
			}
		}
		if definitionalRe.MatchString(sentence) {
			scores[i]++
		}
		if numericRe.MatchString(sentence) {
			scores[i]++
		}
	}

	picked := topSentences(sentences, scores, limit)

	// Later near-duplicates lose to earlier points.
	deduped := make([]string, 0, len(picked))
	for _, candidate := range picked {
		duplicate := false
		for _, kept := range deduped {
			if textutil.IsSimilar(candidate, kept, dedupeThreshold) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			deduped = append(deduped, candidate)
		}
	}
	return deduped
}

// FindContradictions flags key-point pairs containing opposite antonym
// members. Heuristic signal only.
func FindContradictions(points []string) []types.Contradiction {
	var out []types.Contradiction
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			a := wordSet(points[i])
			b := wordSet(points[j])
			for _, pair := range antonymPairs {
				if (a[pair[0]] && b[pair[1]]) || (a[pair[1]] && b[pair[0]]) {
					out = append(out, types.Contradiction{
						Point1: points[i],
						Point2: points[j],
						Terms:  pair,
					})
					break
				}
			}
		}
	}
	return out
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(textutil.CleanText(s)) {
		set[w] = true
	}
	return set
}

// topSentences keeps the limit highest-scoring sentences with positive
// score, in original order.
func topSentences(sentences []string, scores []float64, limit int) []string {
	type scored struct {
		idx   int
		score float64
	}
	candidates := make([]scored, 0, len(sentences))
	for i, s := range scores {
		if s > 0 {
			candidates = append(candidates, scored{idx: i, score: s})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	indices := make([]int, 0, len(candidates))
	for _, c := range candidates {
		indices = append(indices, c.idx)
	}
	sort.Ints(indices)

	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		out = append(out, sentences[idx])
	}
	return out
}
