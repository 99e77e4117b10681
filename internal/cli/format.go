package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/streakly/internal/habits"
	"github.com/julianstephens/streakly/internal/models"
)

var (
	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	DoneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	MutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	EnergyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	NoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
	BoxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

var iconGlyphs = map[models.Icon]string{
	models.IconBook:     "📖",
	models.IconDumbbell: "🏋",
	models.IconApple:    "🍎",
	models.IconDroplets: "💧",
	models.IconMoon:     "🌙",
	models.IconHeart:    "❤",
	models.IconBrain:    "🧠",
	models.IconTarget:   "🎯",
	models.IconCoffee:   "☕",
	models.IconLeaf:     "🍃",
}

// Glyph returns the emoji shown for an icon.
func Glyph(i models.Icon) string {
	if g, ok := iconGlyphs[i]; ok {
		return g
	}
	return iconGlyphs[models.IconTarget]
}

// ProgressBar renders done/total as a fixed-width bar.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	return DoneStyle.Render(strings.Repeat("█", filled)) + MutedStyle.Render(strings.Repeat("░", width-filled))
}

// HabitLine renders one habit on a single line.
func HabitLine(h models.Habit, now time.Time) string {
	status := fmt.Sprintf("%d/%d", h.CompletedToday, h.DailyFrequency)
	if habits.IsCompletedToday(h, now) {
		status = DoneStyle.Render(status + " ✓")
	}
	return fmt.Sprintf("%s %-24s %s %s  🔥%d (best %d)  %s  %s",
		Glyph(h.Icon), h.Name, ProgressBar(h.CompletedToday, h.DailyFrequency, 10), status,
		h.CurrentStreak, h.LongestStreak,
		EnergyStyle.Render(fmt.Sprintf("+%d⚡", h.EnergyPerCompletion)),
		MutedStyle.Render(h.ID))
}

// RewardLine renders one reward on a single line.
func RewardLine(r models.Reward, balance int) string {
	state := ""
	switch {
	case !r.Redeemable():
		state = MutedStyle.Render(" [redeemed]")
	case r.EnergyCost <= balance:
		state = DoneStyle.Render(" [affordable]")
	}
	repeat := "once"
	if r.IsRepeatable {
		repeat = "repeatable"
	}
	return fmt.Sprintf("%-24s %s  %-10s %s x%d%s  %s",
		r.Title, EnergyStyle.Render(fmt.Sprintf("%3d⚡", r.EnergyCost)), r.Category, repeat,
		r.TimesRedeemed, state, MutedStyle.Render(r.ID))
}
