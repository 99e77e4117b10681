package rewards

import (
	"fmt"

	"github.com/julianstephens/streakly/internal/cli"
	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/models"
)

type RewardCmd struct {
	Add    RewardAddCmd    `cmd:"" help:"Add a reward."`
	List   RewardListCmd   `cmd:"" help:"List rewards."`
	Edit   RewardEditCmd   `cmd:"" help:"Edit a reward."`
	Redeem RewardRedeemCmd `cmd:"" help:"Spend energy on a reward."`
	Delete RewardDeleteCmd `cmd:"" help:"Delete a reward."`
	Tiers  RewardTiersCmd  `cmd:"" help:"Show the suggested reward tiers."`
}

func parseCategory(s string) (models.RewardCategory, error) {
	c, err := models.ParseRewardCategory(s)
	if err != nil {
		return "", apperrors.InvalidInput("%v", err)
	}
	return c, nil
}

type RewardAddCmd struct {
	Title       string `arg:"" help:"Reward title."`
	Description string `short:"d" help:"Optional description."`
	Category    string `short:"c" help:"Tier: streak_7, streak_14, streak_30, streak_60 or custom." default:"custom"`
	Cost        *int   `help:"Energy cost. Defaults to the tier price; required for custom rewards."`
	Repeatable  bool   `short:"r" help:"Allow redeeming more than once."`
}

func (c *RewardAddCmd) Run(ctx *cli.Context) error {
	category, err := parseCategory(c.Category)
	if err != nil {
		return err
	}
	r, err := ctx.Tracker.CreateReward(models.RewardDefinition{
		Title:        c.Title,
		Description:  c.Description,
		EnergyCost:   c.Cost,
		IsRepeatable: c.Repeatable,
		Category:     category,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added reward: %s (%d energy)\n", r.Title, r.EnergyCost)
	return nil
}

type RewardListCmd struct {
	Affordable bool `help:"Only show rewards you can redeem now."`
}

func (c *RewardListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Tracker.Rewards()
	if c.Affordable {
		list, err = ctx.Tracker.AffordableRewards()
	}
	if err != nil {
		return err
	}
	acct, err := ctx.Tracker.Account()
	if err != nil {
		return err
	}

	if len(list) == 0 {
		ctx.Println("No rewards found.")
		return nil
	}
	for _, r := range list {
		ctx.Println(cli.RewardLine(r, acct.TotalEnergy))
	}
	ctx.Printf("\nEnergy balance: %d\n", acct.TotalEnergy)
	return nil
}

type RewardEditCmd struct {
	Reward      string  `arg:"" help:"Reward id or title."`
	Title       *string `help:"New title."`
	Description *string `short:"d" help:"New description."`
	Category    *string `short:"c" help:"New tier."`
	Cost        *int    `help:"New energy cost."`
	Repeatable  *bool   `help:"Allow or forbid redeeming more than once."`
}

func (c *RewardEditCmd) Run(ctx *cli.Context) error {
	current, err := ctx.Tracker.Reward(c.Reward)
	if err != nil {
		return err
	}

	def := models.RewardDefinition{
		Title:        current.Title,
		Description:  current.Description,
		IsRepeatable: current.IsRepeatable,
		Category:     current.Category,
		EnergyCost:   c.Cost,
	}
	if c.Title != nil {
		def.Title = *c.Title
	}
	if c.Description != nil {
		def.Description = *c.Description
	}
	if c.Category != nil {
		if def.Category, err = parseCategory(*c.Category); err != nil {
			return err
		}
	}
	if c.Repeatable != nil {
		def.IsRepeatable = *c.Repeatable
	}
	// keep the current price unless the tier or cost changed
	if c.Cost == nil && c.Category == nil {
		cost := current.EnergyCost
		def.EnergyCost = &cost
	}

	r, err := ctx.Tracker.UpdateReward(current.ID, def)
	if err != nil {
		return err
	}
	ctx.Printf("Updated reward: %s (%d energy)\n", r.Title, r.EnergyCost)
	return nil
}

type RewardRedeemCmd struct {
	Reward string `arg:"" help:"Reward id or title."`
}

func (c *RewardRedeemCmd) Run(ctx *cli.Context) error {
	res, err := ctx.Tracker.RedeemReward(c.Reward)
	if err != nil {
		return err
	}
	ctx.Printf("🎁 Redeemed %s for %d energy\n", res.Reward.Title, res.Reward.EnergyCost)
	ctx.Printf("Energy balance: %d\n", res.Balance)
	return nil
}

type RewardDeleteCmd struct {
	Reward string `arg:"" help:"Reward id or title."`
	Yes    bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *RewardDeleteCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Tracker.Reward(c.Reward)
	if err != nil {
		return err
	}
	if !c.Yes {
		if err := ctx.Confirm("Delete reward " + r.Title + "?"); err != nil {
			return err
		}
	}
	if _, err := ctx.Tracker.DeleteReward(r.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted reward: %s\n", r.Title)
	return nil
}

type RewardTiersCmd struct{}

func (c *RewardTiersCmd) Run(ctx *cli.Context) error {
	for _, t := range models.RewardTiers {
		ctx.Printf("%-10s %-24s %s\n", t.Category, t.Label, cli.EnergyStyle.Render(fmt.Sprintf("%d⚡", t.Energy)))
	}
	ctx.Printf("%-10s %-24s %s\n", models.CategoryCustom, "any size", "set with --cost")
	return nil
}
