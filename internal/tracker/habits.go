package tracker

import (
	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/habits"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/models"
)

// Completion is the outcome of completing a habit.
type Completion struct {
	Habit   models.Habit
	Event   models.CompletionEvent
	Balance int
}

// CreateHabit adds a habit.
func (t *Tracker) CreateHabit(def models.HabitDefinition) (models.Habit, error) {
	var created models.Habit
	err := t.op("create-habit", func(s *session) ([]string, error) {
		h, err := s.habits.Create(def, s.now)
		if err != nil {
			return nil, err
		}
		created = h
		return []string{constants.DocHabits}, nil
	})
	if err == nil {
		logger.Info("Habit created", "id", created.ID, "name", created.Name)
	}
	return created, err
}

// UpdateHabit edits the definition of the habit matching ref (id or name).
func (t *Tracker) UpdateHabit(ref string, def models.HabitDefinition) (models.Habit, error) {
	var updated models.Habit
	err := t.op("update-habit", func(s *session) ([]string, error) {
		h, err := s.habits.Resolve(ref, s.now)
		if err != nil {
			return nil, err
		}
		if updated, err = s.habits.Update(h.ID, def, s.now); err != nil {
			return nil, err
		}
		return []string{constants.DocHabits}, nil
	})
	return updated, err
}

// DeleteHabit removes a habit and every completion event it owns. The energy
// already earned stays in the account.
func (t *Tracker) DeleteHabit(ref string) (models.Habit, int, error) {
	var (
		removed models.Habit
		events  int
	)
	err := t.op("delete-habit", func(s *session) ([]string, error) {
		h, err := s.habits.Resolve(ref, s.now)
		if err != nil {
			return nil, err
		}
		if removed, err = s.habits.Remove(h.ID); err != nil {
			return nil, err
		}
		events = s.log.RemoveHabit(h.ID)
		return []string{constants.DocHabits, constants.DocCompletions}, nil
	})
	if err == nil {
		logger.Info("Habit deleted", "id", removed.ID, "events", events)
	}
	return removed, events, err
}

// CompleteHabit records one completion: the habit advances, an event is
// appended and the energy is credited, all in one write. A habit already at
// its daily target returns ErrAlreadyComplete and changes nothing.
func (t *Tracker) CompleteHabit(ref string) (Completion, error) {
	var res Completion
	err := t.op("complete-habit", func(s *session) ([]string, error) {
		h, err := s.habits.Resolve(ref, s.now)
		if err != nil {
			return nil, err
		}

		updated, energy, err := s.habits.RecordCompletion(h.ID, s.now)
		if err != nil {
			res.Habit = updated
			res.Balance = s.ledger.Balance()
			return nil, err
		}
		ev := s.log.Append(updated.ID, s.now, energy)
		if err := s.ledger.Credit(energy); err != nil {
			return nil, err
		}

		res = Completion{Habit: updated, Event: ev, Balance: s.ledger.Balance()}
		return []string{constants.DocHabits, constants.DocCompletions, constants.DocUser}, nil
	})
	if err == nil {
		logger.Info("Habit completed", "id", res.Habit.ID, "energy", res.Event.EnergyEarned,
			"streak", res.Habit.CurrentStreak, "today", res.Habit.CompletedToday)
	}
	return res, err
}

// Habit returns the habit matching ref (id or name), normalised to today.
func (t *Tracker) Habit(ref string) (models.Habit, error) {
	var h models.Habit
	err := t.view(func(s *session) error {
		var err error
		h, err = s.habits.Resolve(ref, s.now)
		return err
	})
	return h, err
}

// Habits lists every habit, normalised to today, in creation order.
func (t *Tracker) Habits() ([]models.Habit, error) {
	var out []models.Habit
	err := t.view(func(s *session) error {
		out = s.habits.List(s.now)
		return nil
	})
	return out, err
}

// History returns the completion events of the habit matching ref.
func (t *Tracker) History(ref string) (models.Habit, []models.CompletionEvent, error) {
	var (
		h      models.Habit
		events []models.CompletionEvent
	)
	err := t.view(func(s *session) error {
		var err error
		if h, err = s.habits.Resolve(ref, s.now); err != nil {
			return err
		}
		events = s.log.ForHabit(h.ID)
		return nil
	})
	return h, events, err
}

// Today returns the habits with completions still possible today.
func (t *Tracker) Today() ([]models.Habit, error) {
	var out []models.Habit
	err := t.view(func(s *session) error {
		for _, h := range s.habits.List(s.now) {
			if !habits.IsCompletedToday(h, s.now) {
				out = append(out, h)
			}
		}
		return nil
	})
	return out, err
}
