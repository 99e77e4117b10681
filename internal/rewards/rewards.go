// Package rewards manages reward definitions and their redemption.
package rewards

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/ledger"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/utils"
	"github.com/julianstephens/streakly/internal/validation"
)

// Catalog holds rewards in creation order.
type Catalog struct {
	rewards []models.Reward
}

// NewCatalog copies rewards into a new catalog.
func NewCatalog(rewards []models.Reward) *Catalog {
	return &Catalog{rewards: append([]models.Reward(nil), rewards...)}
}

// resolveCost picks the energy cost for def. An explicit cost wins; otherwise
// tier categories use the tier price and custom rewards fall back to current.
func resolveCost(def models.RewardDefinition, current *int) (int, error) {
	if def.EnergyCost != nil {
		return *def.EnergyCost, nil
	}
	if tier, ok := def.Category.Tier(); ok {
		return tier.Energy, nil
	}
	if current != nil {
		return *current, nil
	}
	return 0, apperrors.InvalidInput("energy cost is required for %s rewards", models.CategoryCustom)
}

func prepare(def models.RewardDefinition) (models.RewardDefinition, error) {
	def.Title = strings.TrimSpace(def.Title)
	def.Description = strings.TrimSpace(def.Description)
	if def.Category == "" {
		def.Category = models.CategoryCustom
	}
	if err := validation.Reward(def); err != nil {
		return def, err
	}
	return def, nil
}

// Create validates def and appends a new, never redeemed reward.
func (c *Catalog) Create(def models.RewardDefinition, now time.Time) (models.Reward, error) {
	def, err := prepare(def)
	if err != nil {
		return models.Reward{}, err
	}
	cost, err := resolveCost(def, nil)
	if err != nil {
		return models.Reward{}, err
	}

	r := models.Reward{
		ID:           uuid.New().String(),
		Title:        def.Title,
		Description:  def.Description,
		EnergyCost:   cost,
		IsRepeatable: def.IsRepeatable,
		CreatedAt:    now,
		Category:     def.Category,
	}
	c.rewards = append(c.rewards, r)
	return r, nil
}

func (c *Catalog) index(id string) (int, error) {
	for i := range c.rewards {
		if c.rewards[i].ID == id {
			return i, nil
		}
	}
	return -1, apperrors.NotFound("reward", id)
}

// Redeem spends the reward's cost from l and counts the redemption. Nothing
// changes when the reward is used up or the balance is too low.
func (c *Catalog) Redeem(id string, l *ledger.Ledger) (models.Reward, error) {
	i, err := c.index(id)
	if err != nil {
		return models.Reward{}, err
	}

	r := c.rewards[i]
	if !r.Redeemable() {
		return r, fmt.Errorf("%s: %w", r.Title, apperrors.ErrAlreadyRedeemed)
	}
	if err := l.Debit(r.EnergyCost); err != nil {
		return r, fmt.Errorf("redeem %s: %w", r.Title, err)
	}

	r.TimesRedeemed++
	c.rewards[i] = r
	return r, nil
}

// Update replaces the definition fields of a reward. A nil cost keeps the
// current price unless a tier category supplies one.
func (c *Catalog) Update(id string, def models.RewardDefinition) (models.Reward, error) {
	i, err := c.index(id)
	if err != nil {
		return models.Reward{}, err
	}
	def, err = prepare(def)
	if err != nil {
		return models.Reward{}, err
	}

	r := c.rewards[i]
	if !def.IsRepeatable && r.TimesRedeemed > 1 {
		return models.Reward{}, apperrors.InvalidInput("reward was redeemed %d times and cannot become one-time", r.TimesRedeemed)
	}
	cost, err := resolveCost(def, &r.EnergyCost)
	if err != nil {
		return models.Reward{}, err
	}

	r.Title = def.Title
	r.Description = def.Description
	r.EnergyCost = cost
	r.IsRepeatable = def.IsRepeatable
	r.Category = def.Category
	c.rewards[i] = r
	return r, nil
}

// Delete removes a reward.
func (c *Catalog) Delete(id string) (models.Reward, error) {
	i, err := c.index(id)
	if err != nil {
		return models.Reward{}, err
	}
	removed := c.rewards[i]
	c.rewards = append(c.rewards[:i], c.rewards[i+1:]...)
	return removed, nil
}

// Get returns the reward with the given id.
func (c *Catalog) Get(id string) (models.Reward, error) {
	i, err := c.index(id)
	if err != nil {
		return models.Reward{}, err
	}
	return c.rewards[i], nil
}

// Resolve finds a reward by id, falling back to a case-insensitive title match.
func (c *Catalog) Resolve(ref string) (models.Reward, error) {
	if r, err := c.Get(ref); err == nil {
		return r, nil
	}
	for _, r := range c.rewards {
		if utils.EqualNames(r.Title, ref) {
			return r, nil
		}
	}
	return models.Reward{}, apperrors.NotFound("reward", ref)
}

// List returns every reward in creation order.
func (c *Catalog) List() []models.Reward {
	return append([]models.Reward(nil), c.rewards...)
}

// Affordable returns the rewards that can be redeemed with balance.
func (c *Catalog) Affordable(balance int) []models.Reward {
	var out []models.Reward
	for _, r := range c.rewards {
		if r.Redeemable() && r.EnergyCost <= balance {
			out = append(out, r)
		}
	}
	return out
}

// TotalRedeemed sums the redemption counters of every reward.
func (c *Catalog) TotalRedeemed() int {
	total := 0
	for _, r := range c.rewards {
		total += r.TimesRedeemed
	}
	return total
}

// Len returns the number of rewards.
func (c *Catalog) Len() int {
	return len(c.rewards)
}
