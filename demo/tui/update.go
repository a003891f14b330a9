package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case searchDoneMsg:
		m.State = StateDone
		m.SearchResult = msg.resp
		return m, nil

	case analyzeDoneMsg:
		m.State = StateDone
		m.AnalyzeResult = msg.resp
		return m, nil

	case newsDoneMsg:
		m.State = StateDone
		m.NewsResult = msg.resp
		return m, nil

	case errMsg:
		m.State = StateError
		m.Err = msg.err
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	}

	// A run in flight ignores everything except quit.
	if m.State == StateRunning {
		return m, nil
	}

	switch msg.String() {
	case "tab":
		m.Mode = m.nextMode()
		return m, nil

	case "enter":
		if m.Input == "" {
			return m, nil
		}
		m = m.clearResults()
		m.State = StateRunning
		switch m.Mode {
		case ModeAnalyze:
			return m, runAnalyze(m.Client, m.Input)
		case ModeNews:
			return m, runNews(m.Client, m.Input)
		default:
			return m, runSearch(m.Client, m.Input)
		}

	case "backspace":
		if len(m.Input) > 0 {
			m.Input = m.Input[:len(m.Input)-1]
		}
		return m, nil

	default:
		if msg.Type == tea.KeyRunes {
			m.Input += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.Input += " "
		}
		return m, nil
	}
}
