package tracker

import (
	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/models"
)

// Redemption is the outcome of redeeming a reward.
type Redemption struct {
	Reward  models.Reward
	Balance int
}

// CreateReward adds a reward.
func (t *Tracker) CreateReward(def models.RewardDefinition) (models.Reward, error) {
	var created models.Reward
	err := t.op("create-reward", func(s *session) ([]string, error) {
		r, err := s.catalog.Create(def, s.now)
		if err != nil {
			return nil, err
		}
		created = r
		return []string{constants.DocRewards}, nil
	})
	return created, err
}

// UpdateReward edits the definition of the reward matching ref (id or title).
func (t *Tracker) UpdateReward(ref string, def models.RewardDefinition) (models.Reward, error) {
	var updated models.Reward
	err := t.op("update-reward", func(s *session) ([]string, error) {
		r, err := s.catalog.Resolve(ref)
		if err != nil {
			return nil, err
		}
		if updated, err = s.catalog.Update(r.ID, def); err != nil {
			return nil, err
		}
		return []string{constants.DocRewards}, nil
	})
	return updated, err
}

// DeleteReward removes a reward.
func (t *Tracker) DeleteReward(ref string) (models.Reward, error) {
	var removed models.Reward
	err := t.op("delete-reward", func(s *session) ([]string, error) {
		r, err := s.catalog.Resolve(ref)
		if err != nil {
			return nil, err
		}
		if removed, err = s.catalog.Delete(r.ID); err != nil {
			return nil, err
		}
		return []string{constants.DocRewards}, nil
	})
	return removed, err
}

// RedeemReward spends energy on a reward. The debit and the redemption count
// are written together or not at all.
func (t *Tracker) RedeemReward(ref string) (Redemption, error) {
	var res Redemption
	err := t.op("redeem-reward", func(s *session) ([]string, error) {
		r, err := s.catalog.Resolve(ref)
		if err != nil {
			return nil, err
		}
		redeemed, err := s.catalog.Redeem(r.ID, s.ledger)
		if err != nil {
			return nil, err
		}
		res = Redemption{Reward: redeemed, Balance: s.ledger.Balance()}
		return []string{constants.DocRewards, constants.DocUser}, nil
	})
	if err == nil {
		logger.Info("Reward redeemed", "id", res.Reward.ID, "cost", res.Reward.EnergyCost, "balance", res.Balance)
	}
	return res, err
}

// Reward returns the reward matching ref (id or title).
func (t *Tracker) Reward(ref string) (models.Reward, error) {
	var r models.Reward
	err := t.view(func(s *session) error {
		var err error
		r, err = s.catalog.Resolve(ref)
		return err
	})
	return r, err
}

// Rewards lists every reward in creation order.
func (t *Tracker) Rewards() ([]models.Reward, error) {
	var out []models.Reward
	err := t.view(func(s *session) error {
		out = s.catalog.List()
		return nil
	})
	return out, err
}

// AffordableRewards lists rewards redeemable with the current balance.
func (t *Tracker) AffordableRewards() ([]models.Reward, error) {
	var out []models.Reward
	err := t.view(func(s *session) error {
		out = s.catalog.Affordable(s.ledger.Balance())
		return nil
	})
	return out, err
}
