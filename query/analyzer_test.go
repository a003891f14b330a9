package query

import "testing"

func TestAnalyzeStripsFiller(t *testing.T) {
	cases := map[string]string{
		"Please tell me what is the capital of France": "the capital of France",
		"I want to know about solar panels":            "about solar panels",
		"how to bake sourdough bread":                  "bake sourdough bread",
		"quantum computing":                            "quantum computing",
		"":                                             "",
	}
	for in, want := range cases {
		if got := Analyze(in); got != want {
			t.Errorf("Analyze(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAnalyzeNeverEmptiesNonEmptyQuery(t *testing.T) {
	in := "can you "
	if got := Analyze(in); got == "" {
		t.Errorf("Analyze(%q) returned empty, want fallback to original", in)
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]Type{
		"what is photosynthesis":               TypeFactual,
		"how to change a tire":                 TypeExploratory,
		"latest developments in fusion energy": TypeNews,
		"python vs go performance":             TypeComparison,
		"best laptops for students":            TypeOpinion,
		"something with no pattern words":      TypeFactual,
	}
	for in, want := range cases {
		if got := Classify(in); got != want {
			t.Errorf("Classify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// Matches both factual ("explain") and news ("latest"); factual is
	// checked first and wins.
	if got := Classify("explain the latest fusion results"); got != TypeFactual {
		t.Errorf("Classify() = %q, want factual", got)
	}
}

func TestDetailedAnalysis(t *testing.T) {
	a := DetailedAnalysis("compare Tesla and Rivian electric trucks")

	if a.QueryType != TypeComparison {
		t.Errorf("QueryType = %q, want comparison", a.QueryType)
	}
	if len(a.SuggestedSearchTerms) == 0 || len(a.SuggestedSearchTerms) > 3 {
		t.Errorf("SuggestedSearchTerms = %v, want 1..3 entries", a.SuggestedSearchTerms)
	}
	if a.Complexity <= 0 || a.Complexity > 10 {
		t.Errorf("Complexity = %v, want within (0,10]", a.Complexity)
	}

	foundTesla := false
	for _, e := range a.Entities {
		if e == "Tesla" {
			foundTesla = true
		}
	}
	if !foundTesla {
		t.Errorf("Entities = %v, want capitalized token Tesla", a.Entities)
	}
}

func TestDetailedAnalysisEmpty(t *testing.T) {
	a := DetailedAnalysis("   ")
	if a.QueryType != TypeFactual || len(a.Keywords) != 0 || len(a.Entities) != 0 {
		t.Errorf("unexpected analysis for blank query: %+v", a)
	}
}

func TestComplexityCap(t *testing.T) {
	long := ""
	for i := 0; i < 60; i++ {
		long += "word "
	}
	if got := DetailedAnalysis(long).Complexity; got != 10 {
		t.Errorf("Complexity = %v, want capped at 10", got)
	}
}
