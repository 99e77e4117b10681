package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/tui/components/habitlist"
	"github.com/julianstephens/streakly/internal/tui/components/rewardlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case refreshedMsg:
		m.apply(msg)
		return m, nil

	case statusMsg:
		m.status, m.statusIsErr = msg.text, msg.err
		return m, m.refresh

	case habitlist.CompleteHabitMsg:
		return m, m.complete(msg.ID)

	case rewardlist.RedeemRewardMsg:
		return m, m.redeem(msg.ID)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			return m, m.refresh
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateHabits:
		m.habitList, cmd = m.habitList.Update(msg)
	case StateRewards:
		m.rewardList, cmd = m.rewardList.Update(msg)
	}
	return m, cmd
}

func (m Model) complete(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.tracker.CompleteHabit(id)
		switch {
		case errors.Is(err, apperrors.ErrAlreadyComplete):
			return statusMsg{text: fmt.Sprintf("%s is already done for today", res.Habit.Name)}
		case err != nil:
			return statusMsg{text: err.Error(), err: true}
		}
		return statusMsg{text: fmt.Sprintf("%s %d/%d  +%d⚡ (balance %d)",
			res.Habit.Name, res.Habit.CompletedToday, res.Habit.DailyFrequency,
			res.Event.EnergyEarned, res.Balance)}
	}
}

func (m Model) redeem(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.tracker.RedeemReward(id)
		switch {
		case errors.Is(err, apperrors.ErrInsufficientEnergy):
			return statusMsg{text: "not enough energy", err: true}
		case errors.Is(err, apperrors.ErrAlreadyRedeemed):
			return statusMsg{text: "already redeemed", err: true}
		case err != nil:
			return statusMsg{text: err.Error(), err: true}
		}
		return statusMsg{text: fmt.Sprintf("Enjoy %s! (balance %d)", res.Reward.Title, res.Balance)}
	}
}
