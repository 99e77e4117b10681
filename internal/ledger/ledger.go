// Package ledger keeps the energy balance of a user consistent with what was
// earned and spent.
package ledger

import (
	"fmt"

	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/models"
)

// Ledger mutates an EnergyAccount it does not own. Credit and Debit are the
// only mutators; both keep TotalEnergy == TotalEnergyEarned - TotalEnergySpent.
type Ledger struct {
	acct *models.EnergyAccount
}

// New wraps acct. The account is updated in place.
func New(acct *models.EnergyAccount) *Ledger {
	return &Ledger{acct: acct}
}

// Credit adds earned energy to the balance.
func (l *Ledger) Credit(amount int) error {
	if amount < 0 {
		return apperrors.InvalidInput("credit amount must not be negative, got %d", amount)
	}
	l.acct.TotalEnergy += amount
	l.acct.TotalEnergyEarned += amount
	return nil
}

// Debit spends energy. The balance never goes below zero.
func (l *Ledger) Debit(amount int) error {
	if amount < 0 {
		return apperrors.InvalidInput("debit amount must not be negative, got %d", amount)
	}
	if amount > l.acct.TotalEnergy {
		return fmt.Errorf("need %d, have %d: %w", amount, l.acct.TotalEnergy, apperrors.ErrInsufficientEnergy)
	}
	l.acct.TotalEnergy -= amount
	l.acct.TotalEnergySpent += amount
	return nil
}

// Balance returns the spendable energy.
func (l *Ledger) Balance() int {
	return l.acct.TotalEnergy
}

// Account returns a copy of the underlying account.
func (l *Ledger) Account() models.EnergyAccount {
	return *l.acct
}

// Reconcile repairs an account read from storage. Negative totals are raised
// to zero, spending is capped at earnings and the balance is recomputed.
// The bool reports whether anything changed.
func Reconcile(acct models.EnergyAccount) (models.EnergyAccount, bool) {
	fixed := acct
	if fixed.TotalEnergyEarned < 0 {
		fixed.TotalEnergyEarned = 0
	}
	if fixed.TotalEnergySpent < 0 {
		fixed.TotalEnergySpent = 0
	}
	if fixed.TotalEnergySpent > fixed.TotalEnergyEarned {
		fixed.TotalEnergySpent = fixed.TotalEnergyEarned
	}
	fixed.TotalEnergy = fixed.TotalEnergyEarned - fixed.TotalEnergySpent
	return fixed, fixed != acct
}
