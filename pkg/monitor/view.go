package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the monitor
func (m Model) View() string {
	var sb strings.Builder

	title := "qc monitor"
	if m.Version != "" {
		title += " " + m.Version
	}
	sb.WriteString(titleStyle.Render(title))
	if !m.Data.FetchedAt.IsZero() {
		sb.WriteString(subtleStyle.Render("  refreshed " + m.Data.FetchedAt.Format("15:04:05")))
	}
	sb.WriteString("\n")

	sb.WriteString(m.renderTabs())
	sb.WriteString("\n")
	sb.WriteString(m.renderStats())
	sb.WriteString("\n")

	if m.Data.Err != nil {
		sb.WriteString(errorStyle.Render("Error: " + m.Data.Err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(panelStyle.Render(m.Tables[m.ActiveTab].View()))
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(m.Help.View(m.Keys)))
	return sb.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", t+1, t.Title())
		if t == m.ActiveTab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m Model) renderStats() string {
	kind := m.ActiveTab.Kind()
	for _, s := range m.Data.Stats {
		if s.Kind != kind {
			continue
		}
		return fmt.Sprintf("%s  %s  %s  %s",
			subtleStyle.Render(kind.Label()+":"),
			fmt.Sprintf("%d total", s.Total),
			passStyle.Render(fmt.Sprintf("%d pass", s.Passed)),
			failStyle.Render(fmt.Sprintf("%d fail", s.Failed)),
		) + subtleStyle.Render(fmt.Sprintf("  (%.0f%% pass rate)", s.PassRate()*100))
	}
	return subtleStyle.Render(kind.Label() + ": no records")
}
