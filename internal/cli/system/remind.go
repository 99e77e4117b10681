package system

import (
	"context"
	"errors"
	"time"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/notifier"
	"github.com/julianstephens/streakly/internal/reminders"
)

// RemindCmd is run every minute by a scheduler such as cron or a systemd
// timer. It sends the reminders due in the current minute.
type RemindCmd struct {
	DryRun  bool          `help:"List due reminders without sending them."`
	Timeout time.Duration `help:"Give up delivering after this long." default:"10s"`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Tracker.Habits()
	if err != nil {
		return err
	}
	u, err := ctx.Tracker.User()
	if err != nil {
		return err
	}
	now := ctx.Tracker.Now()
	due := reminders.Due(habits, u.Settings, now)
	weekly := reminders.WeeklySummaryDue(u.Settings, now)

	if c.DryRun {
		for _, r := range due {
			ctx.Printf("%s  %s\n", r.At, reminders.Payload(r, false).Text)
		}
		if weekly {
			ctx.Println("weekly progress summary")
		}
		return nil
	}
	if len(due) == 0 && !weekly {
		return nil
	}

	sender := ctx.Sender
	if sender == nil {
		sender = notifier.New()
	}
	runCtx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	sent, err := reminders.Dispatch(runCtx, sender, due, u.Settings.SoundEnabled)
	if err == nil && weekly {
		s, serr := ctx.Tracker.Stats()
		if serr != nil {
			return serr
		}
		err = sender.Notify(runCtx, reminders.WeeklyPayload(s, u.Settings.SoundEnabled))
	}
	if errors.Is(err, notifier.ErrTrayNotRunning) {
		logger.Info("Reminders skipped, tray app not running", "due", len(due))
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("Reminders sent", "count", sent, "weekly", weekly)
	return nil
}
