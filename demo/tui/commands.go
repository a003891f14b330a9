package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// runSearch creates a command that runs the search pipeline.
func runSearch(client *AgentClient, query string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Search(query)
		if err != nil {
			return errMsg{err: err}
		}
		return searchDoneMsg{resp: resp}
	}
}

// runAnalyze creates a command that runs the full analysis pipeline.
func runAnalyze(client *AgentClient, query string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Analyze(query)
		if err != nil {
			return errMsg{err: err}
		}
		return analyzeDoneMsg{resp: resp}
	}
}

// runNews creates a command that runs the news pipeline.
func runNews(client *AgentClient, query string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.News(query)
		if err != nil {
			return errMsg{err: err}
		}
		return newsDoneMsg{resp: resp}
	}
}
