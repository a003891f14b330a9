package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the application state machine
type State string

const (
	StateInput   State = "input"
	StateRunning State = "running"
	StateDone    State = "done"
	StateError   State = "error"
)

// Mode selects which pipeline a submitted query runs through.
type Mode string

const (
	ModeSearch  Mode = "search"
	ModeAnalyze Mode = "analyze"
	ModeNews    Mode = "news"
)

var modeOrder = []Mode{ModeSearch, ModeAnalyze, ModeNews}

// Model represents the TUI client state (thin client)
type Model struct {
	Client *AgentClient

	State State
	Mode  Mode
	Input string

	SearchResult  *SearchResponse
	AnalyzeResult *AnalyzeResponse
	NewsResult    *NewsResponse
	Err           error
}

// NewModel creates a new TUI model
func NewModel(agentURL string) Model {
	return Model{
		Client: NewAgentClient(agentURL),
		State:  StateInput,
		Mode:   ModeSearch,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return nil
}

// nextMode cycles to the following pipeline mode.
func (m Model) nextMode() Mode {
	for i, mode := range modeOrder {
		if mode == m.Mode {
			return modeOrder[(i+1)%len(modeOrder)]
		}
	}
	return ModeSearch
}

// clearResults drops previous responses before a new run.
func (m Model) clearResults() Model {
	m.SearchResult = nil
	m.AnalyzeResult = nil
	m.NewsResult = nil
	m.Err = nil
	return m
}
