// Package query turns raw user queries into search-friendly strings and
// classifies their intent so the right pipeline can be picked.
package query

import (
	"regexp"
	"strings"
	"unicode"

	"searchagent/textutil"
)

// Type labels the intent of a query.
type Type string

const (
	TypeFactual     Type = "factual"
	TypeExploratory Type = "exploratory"
	TypeNews        Type = "news"
	TypeComparison  Type = "comparison"
	TypeOpinion     Type = "opinion"
)

// fillerPhrases add no search value and are stripped before searching.
var fillerPhrases = []string{
	"please tell me", "i want to know", "can you tell me",
	"i'm looking for", "i'd like to know", "inform me about",
	"give me information about", "i need information on",
}

var leadingInterrogativeRe = regexp.MustCompile(`(?i)^(what is|who is|where is|when is|how to|why is|can you) `)

// typePatterns are checked in classifyOrder; the first match wins.
var typePatterns = map[Type][]string{
	TypeFactual: {
		"what is", "who is", "where is", "when was", "how many",
		"define", "meaning of", "explain",
	},
	TypeExploratory: {
		"how to", "how do", "ways to", "methods for", "steps",
		"guide", "tutorial", "learn",
	},
	TypeNews: {
		"latest", "recent", "news", "update", "current", "today",
		"this week", "this month", "developments",
	},
	TypeComparison: {
		"compare", "difference between", "vs", "versus", "better",
		"pros and cons", "advantages", "disadvantages",
	},
	TypeOpinion: {
		"best", "worst", "should i", "recommend", "review",
		"opinion", "thoughts on", "top ",
	},
}

var classifyOrder = []Type{TypeFactual, TypeExploratory, TypeNews, TypeComparison, TypeOpinion}

// Analysis is the detailed breakdown of a query.
type Analysis struct {
	QueryType            Type     `json:"query_type"`
	Entities             []string `json:"entities"`
	Keywords             []string `json:"keywords"`
	SuggestedSearchTerms []string `json:"suggested_search_terms"`
	Complexity           float64  `json:"complexity"`
}

// Analyze rewrites a conversational query into keyword form: filler lead-ins
// and the leading interrogative go, whitespace is collapsed. An empty query
// stays empty; if stripping would empty a non-empty query, the trimmed
// original is kept instead.
func Analyze(query string) string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return ""
	}

	refined := trimmed
	for _, phrase := range fillerPhrases {
		refined = removePhrase(refined, phrase)
	}
	refined = leadingInterrogativeRe.ReplaceAllString(strings.TrimSpace(refined), "")
	refined = textutil.NormalizeWhitespace(refined)

	if refined == "" {
		return trimmed
	}
	return refined
}

// Classify determines the query type. Pattern sets are tested in a fixed
// priority order; the default is factual.
func Classify(query string) Type {
	lower := strings.ToLower(query)
	for _, qt := range classifyOrder {
		for _, pattern := range typePatterns[qt] {
			if strings.Contains(lower, pattern) {
				return qt
			}
		}
	}
	return TypeFactual
}

// DetailedAnalysis combines classification, entity and keyword extraction,
// suggested search terms (at most 3) and a length-based complexity score.
func DetailedAnalysis(query string) Analysis {
	if strings.TrimSpace(query) == "" {
		return Analysis{
			QueryType:            TypeFactual,
			Entities:             []string{},
			Keywords:             []string{},
			SuggestedSearchTerms: []string{},
		}
	}

	entities := ExtractEntities(query)

	suggested := []string{Analyze(query)}
	for _, e := range entities {
		if len(e) > 3 && !contains(suggested, e) {
			suggested = append(suggested, e)
		}
	}
	if len(suggested) > 3 {
		suggested = suggested[:3]
	}

	wordCount := len(strings.Fields(query))
	complexity := float64(wordCount) / 3
	if complexity > 10 {
		complexity = 10
	}

	return Analysis{
		QueryType:            Classify(query),
		Entities:             entities,
		Keywords:             textutil.ExtractKeywords(query, 5),
		SuggestedSearchTerms: suggested,
		Complexity:           complexity,
	}
}

// ExtractEntities returns noun-like tokens: capitalized words past the first
// position, plus any remaining token longer than 3 characters that is not a
// stopword-style filler. A tagger-free approximation of noun extraction.
func ExtractEntities(query string) []string {
	words := strings.Fields(query)
	var entities []string
	seen := make(map[string]bool)

	for i, w := range words {
		cleaned := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if cleaned == "" || seen[strings.ToLower(cleaned)] {
			continue
		}
		capitalized := i > 0 && unicode.IsUpper([]rune(cleaned)[0])
		if capitalized || len(cleaned) > 3 {
			entities = append(entities, cleaned)
			seen[strings.ToLower(cleaned)] = true
		}
	}
	return entities
}

func removePhrase(s, phrase string) string {
	for {
		idx := strings.Index(strings.ToLower(s), phrase)
		if idx < 0 {
			return s
		}
		s = s[:idx] + s[idx+len(phrase):]
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
