package progress

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/models"
)

type StatsCmd struct {
	JSON bool `help:"Print the statistics as JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Tracker.Stats()
	if err != nil {
		return err
	}
	if c.JSON {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		ctx.Println(string(data))
		return nil
	}
	ctx.Println(RenderStats(s))
	return nil
}

// RenderStats lays out the summary, the weekly chart and the per-habit rows.
func RenderStats(s models.Stats) string {
	summary := strings.Join([]string{
		cli.TitleStyle.Render("Overview"),
		fmt.Sprintf("Habits:        %d (%d active)", s.TotalHabits, s.ActiveHabits),
		fmt.Sprintf("Completions:   %d total, %d today, %d this week", s.TotalCompletions, s.TodayCompletions, s.WeeklyCompletions),
		fmt.Sprintf("Weekly rate:   %.1f%%", s.WeeklyCompletionRate),
		fmt.Sprintf("Streaks:       %d combined, best %d", s.CurrentStreaks, s.BestStreak),
		fmt.Sprintf("Energy earned: %s", cli.EnergyStyle.Render(fmt.Sprintf("%d⚡", s.TotalEnergyEarned))),
		fmt.Sprintf("Redeemed:      %d", s.TotalRewardsRedeemed),
	}, "\n")

	week := []string{cli.TitleStyle.Render("Last 7 days")}
	peak := 0
	for _, d := range s.WeeklyProgress {
		if d.Completions > peak {
			peak = d.Completions
		}
	}
	for _, d := range s.WeeklyProgress {
		week = append(week, fmt.Sprintf("%s %s %2d", d.Day, cli.ProgressBar(d.Completions, peak, 14), d.Completions))
	}

	blocks := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, cli.BoxStyle.Render(summary), " ", cli.BoxStyle.Render(strings.Join(week, "\n"))),
	}

	if len(s.Habits) > 0 {
		rows := []string{cli.TitleStyle.Render("Habits")}
		for _, h := range s.Habits {
			rows = append(rows, fmt.Sprintf("%s %-20s %s %3.0f%%  🔥%d (best %d)",
				cli.Glyph(h.Icon), h.Name, cli.ProgressBar(h.CompletedToday, h.DailyFrequency, 10),
				h.CompletionRate, h.CurrentStreak, h.LongestStreak))
		}
		blocks = append(blocks, cli.BoxStyle.Render(strings.Join(rows, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

type EnergyCmd struct{}

func (c *EnergyCmd) Run(ctx *cli.Context) error {
	acct, err := ctx.Tracker.Account()
	if err != nil {
		return err
	}
	affordable, err := ctx.Tracker.AffordableRewards()
	if err != nil {
		return err
	}

	body := strings.Join([]string{
		cli.EnergyStyle.Render(fmt.Sprintf("⚡ %d energy", acct.TotalEnergy)),
		fmt.Sprintf("Earned: %d", acct.TotalEnergyEarned),
		fmt.Sprintf("Spent:  %d", acct.TotalEnergySpent),
	}, "\n")
	ctx.Println(cli.BoxStyle.Render(body))

	if len(affordable) > 0 {
		ctx.Println("Rewards you can redeem now:")
		for _, r := range affordable {
			ctx.Println("  " + cli.RewardLine(r, acct.TotalEnergy))
		}
	}
	return nil
}
