package tui

// searchDoneMsg carries a completed search response.
type searchDoneMsg struct {
	resp *SearchResponse
}

// analyzeDoneMsg carries a completed analyze response.
type analyzeDoneMsg struct {
	resp *AnalyzeResponse
}

// newsDoneMsg carries a completed news response.
type newsDoneMsg struct {
	resp *NewsResponse
}

// errMsg carries a pipeline failure.
type errMsg struct {
	err error
}
