package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Tracker), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
