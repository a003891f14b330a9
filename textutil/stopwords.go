package textutil

// stopwords filtered out before keyword counting.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "have": true, "him": true, "his": true, "how": true,
	"man": true, "new": true, "now": true, "old": true, "see": true,
	"two": true, "way": true, "who": true, "its": true, "did": true,
	"get": true, "may": true, "say": true, "she": true, "use": true,
	"that": true, "this": true, "with": true, "they": true, "them": true,
	"then": true, "than": true, "were": true, "been": true, "from": true,
	"what": true, "when": true, "where": true, "which": true, "while": true,
	"will": true, "would": true, "could": true, "should": true, "there": true,
	"their": true, "these": true, "those": true, "some": true, "such": true,
	"into": true, "over": true, "also": true, "only": true, "other": true,
	"about": true, "after": true, "before": true, "between": true,
	"because": true, "being": true, "both": true, "each": true, "more": true,
	"most": true, "much": true, "many": true, "very": true, "your": true,
	"just": true, "like": true, "make": true, "made": true, "does": true,
	"doing": true, "done": true, "here": true, "under": true, "again": true,
	"further": true, "once": true, "during": true, "against": true,
	"same": true, "any": true, "own": true, "too": true, "why": true,
	"few": true, "nor": true, "off": true, "yet": true, "upon": true,
	"however": true, "within": true, "without": true, "through": true,
	"itself": true, "himself": true, "herself": true, "themselves": true,
}
