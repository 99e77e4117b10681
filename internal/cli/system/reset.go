package system

import (
	"github.com/julianstephens/streakly/internal/cli"
)

type ResetCmd struct {
	Yes         bool `short:"y" help:"Skip the confirmation prompt."`
	WipeProfile bool `help:"Also reset the profile name, email and settings."`
	NoBackup    bool `help:"Do not take a backup first."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		if err := ctx.Confirm("Delete all habits, completions, rewards and energy?"); err != nil {
			return err
		}
	}
	if !c.NoBackup {
		ctx.PerformAutomaticBackup()
	}
	if err := ctx.Tracker.Reset(c.WipeProfile); err != nil {
		return err
	}
	ctx.Println("✓ All progress has been reset.")
	return nil
}
