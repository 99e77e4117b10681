package models

import (
	"fmt"
	"time"
)

// RewardCategory is the pricing tier of a reward
type RewardCategory string

const (
	CategoryStreak7  RewardCategory = "streak_7"
	CategoryStreak14 RewardCategory = "streak_14"
	CategoryStreak30 RewardCategory = "streak_30"
	CategoryStreak60 RewardCategory = "streak_60"
	CategoryCustom   RewardCategory = "custom"
)

// RewardTier describes the suggested price of a streak tier
type RewardTier struct {
	Category RewardCategory `json:"category"`
	Label    string         `json:"label"`
	Days     int            `json:"days"`
	Energy   int            `json:"energy"`
}

// RewardTiers lists the priced categories in ascending order.
var RewardTiers = []RewardTier{
	{Category: CategoryStreak7, Label: "small (7-day streak)", Days: 7, Energy: 14},
	{Category: CategoryStreak14, Label: "medium (14-day streak)", Days: 14, Energy: 28},
	{Category: CategoryStreak30, Label: "large (30-day streak)", Days: 30, Energy: 60},
	{Category: CategoryStreak60, Label: "huge (60-day streak)", Days: 60, Energy: 120},
}

// Tier returns the pricing tier for c. Custom has no tier.
func (c RewardCategory) Tier() (RewardTier, bool) {
	for _, t := range RewardTiers {
		if t.Category == c {
			return t, true
		}
	}
	return RewardTier{}, false
}

func (c RewardCategory) Valid() bool {
	if c == CategoryCustom {
		return true
	}
	_, ok := c.Tier()
	return ok
}

// ParseRewardCategory returns the category for s or an error for unknown values.
func ParseRewardCategory(s string) (RewardCategory, error) {
	c := RewardCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown reward category %q", s)
	}
	return c, nil
}

// Reward is a user-defined prize bought with energy
type Reward struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	EnergyCost    int            `json:"energy_cost"`
	IsRepeatable  bool           `json:"is_repeatable"`
	TimesRedeemed int            `json:"times_redeemed"`
	CreatedAt     time.Time      `json:"created_at"`
	Category      RewardCategory `json:"category"`
}

// RewardDefinition holds the user-editable fields of a reward.
// A nil EnergyCost means "use the tier price".
type RewardDefinition struct {
	Title        string `validate:"required,max=100"`
	Description  string `validate:"max=500"`
	EnergyCost   *int   `validate:"omitempty,min=0"`
	IsRepeatable bool
	Category     RewardCategory `validate:"category"`
}

// Redeemable reports whether the reward may be redeemed again, ignoring cost.
func (r Reward) Redeemable() bool {
	return r.IsRepeatable || r.TimesRedeemed == 0
}
