package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHabits:
		content = m.habitList.View()
	case StateRewards:
		content = m.rewardList.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.viewTabs(), m.viewHeader()),
		m.viewStatus(),
		docStyle.Render(content),
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHeader() string {
	return energyStyle.Render(fmt.Sprintf("⚡ %d   🔥 best %d   %d completions today",
		m.account.TotalEnergy, m.stats.BestStreak, m.stats.TodayCompletions))
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusIsErr {
		return dangerStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}
