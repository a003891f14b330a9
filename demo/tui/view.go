package tui

import (
	"fmt"
	"strings"
)

const maxListedResults = 5

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("🔎 Search Agent Demo"))
	b.WriteString("\n\n")

	// Mode selector
	b.WriteString(m.renderModes())
	b.WriteString("\n\n")

	// Query input
	b.WriteString(InfoStyle.Render("Query: "))
	b.WriteString(m.Input)
	if m.State == StateInput || m.State == StateDone {
		b.WriteString("▌")
	}
	b.WriteString("\n\n")

	// Current state
	switch m.State {
	case StateRunning:
		b.WriteString(StatusStyle.Render(fmt.Sprintf("⏳ Running %s pipeline...", m.Mode)))
		b.WriteString("\n\n")
	case StateError:
		b.WriteString(ErrorStyle.Render("❌ " + m.Err.Error()))
		b.WriteString("\n\n")
	}

	// Results
	if m.State == StateDone {
		b.WriteString(BoxStyle.Render(m.renderResult()))
		b.WriteString("\n\n")
	}

	// Help text
	b.WriteString(InfoStyle.Render("Type to edit query | Enter to run | Tab to switch mode | Esc or Ctrl+C to quit"))
	b.WriteString("\n")

	return b.String()
}

// renderModes shows the mode switcher with the active mode highlighted.
func (m Model) renderModes() string {
	parts := make([]string, 0, len(modeOrder))
	for _, mode := range modeOrder {
		label := " " + string(mode) + " "
		if mode == m.Mode {
			parts = append(parts, HighlightStyle.Render(label))
		} else {
			parts = append(parts, InfoStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// renderResult formats the response for the completed mode.
func (m Model) renderResult() string {
	var b strings.Builder

	switch {
	case m.AnalyzeResult != nil:
		r := m.AnalyzeResult
		if r.RefinedQuery != "" && r.RefinedQuery != r.Query {
			b.WriteString(InfoStyle.Render(fmt.Sprintf("Refined query: %s (%s)", r.RefinedQuery, r.QueryType)))
			b.WriteString("\n\n")
		}
		b.WriteString(r.Synthesis.Summary)
		b.WriteString("\n")
		if len(r.Synthesis.KeyPoints) > 0 {
			b.WriteString("\n" + StatusStyle.Render("Key points:") + "\n")
			for _, p := range r.Synthesis.KeyPoints {
				b.WriteString("  • " + p + "\n")
			}
		}
		if len(r.Synthesis.Sources) > 0 {
			b.WriteString("\n" + InfoStyle.Render(fmt.Sprintf("Sources: %d", len(r.Synthesis.Sources))) + "\n")
			for _, s := range truncateSources(r.Synthesis.Sources) {
				b.WriteString("  " + URLStyle.Render(s.URL) + "\n")
			}
		}

	case m.SearchResult != nil:
		r := m.SearchResult
		if r.Answer != "" {
			b.WriteString(r.Answer)
			b.WriteString("\n\n")
		}
		b.WriteString(StatusStyle.Render(fmt.Sprintf("Results: %d", len(r.Results))))
		b.WriteString("\n")
		for i, res := range r.Results {
			if i >= maxListedResults {
				break
			}
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, ResultTitleStyle.Render(res.Title)))
			b.WriteString("     " + URLStyle.Render(res.URL) + "\n")
		}

	case m.NewsResult != nil:
		r := m.NewsResult
		if r.Summary != "" {
			b.WriteString(r.Summary)
			b.WriteString("\n\n")
		}
		b.WriteString(StatusStyle.Render(fmt.Sprintf("Articles: %d", len(r.Items))))
		b.WriteString("\n")
		for i, item := range r.Items {
			if i >= maxListedResults {
				break
			}
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, ResultTitleStyle.Render(item.Title)))
			b.WriteString(InfoStyle.Render(fmt.Sprintf("     %s | %s", item.Source, item.PublishedDate)) + "\n")
		}

	default:
		b.WriteString(InfoStyle.Render("No results."))
	}

	return strings.TrimRight(b.String(), "\n")
}

func truncateSources(sources []SourceRef) []SourceRef {
	if len(sources) > maxListedResults {
		return sources[:maxListedResults]
	}
	return sources
}
