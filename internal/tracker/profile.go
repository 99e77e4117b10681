package tracker

import (
	"fmt"
	"strings"

	"github.com/julianstephens/streakly/internal/completions"
	"github.com/julianstephens/streakly/internal/constants"
	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/habits"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/rewards"
	"github.com/julianstephens/streakly/internal/stats"
	"github.com/julianstephens/streakly/internal/storage"
)

// Stats summarises the current state.
func (t *Tracker) Stats() (models.Stats, error) {
	var out models.Stats
	err := t.view(func(s *session) error {
		out = stats.Compute(stats.Input{
			Habits:      s.state.Habits,
			Completions: s.state.Completions,
			Account:     s.state.User.EnergyAccount,
			Rewards:     s.state.Rewards,
		}, s.now, t.activeRule)
		return nil
	})
	return out, err
}

// Account returns the energy account.
func (t *Tracker) Account() (models.EnergyAccount, error) {
	var acct models.EnergyAccount
	err := t.view(func(s *session) error {
		acct = s.ledger.Account()
		return nil
	})
	return acct, err
}

// User returns the profile document.
func (t *Tracker) User() (models.User, error) {
	var u models.User
	err := t.view(func(s *session) error {
		u = s.state.User
		return nil
	})
	return u, err
}

// UpdateProfile changes the display name and email. Nil leaves a field as is.
func (t *Tracker) UpdateProfile(name, email *string) (models.User, error) {
	var u models.User
	err := t.op("update-profile", func(s *session) ([]string, error) {
		if name != nil {
			n := strings.TrimSpace(*name)
			if n == "" {
				return nil, apperrors.InvalidInput("name must not be empty")
			}
			s.state.User.Name = n
		}
		if email != nil {
			s.state.User.Email = strings.TrimSpace(*email)
		}
		u = s.state.User
		return []string{constants.DocUser}, nil
	})
	return u, err
}

// SetSetting stores one of the user preference flags by key.
func (t *Tracker) SetSetting(key string, value bool) (models.UserSettings, error) {
	var out models.UserSettings
	err := t.op("set-setting", func(s *session) ([]string, error) {
		settings := &s.state.User.Settings
		switch key {
		case constants.SettingSoundEnabled:
			settings.SoundEnabled = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value
		case constants.SettingCheckinRemindersOnly:
			settings.CheckinRemindersOnly = value
		case constants.SettingWeeklyProgressReminders:
			settings.WeeklyProgressReminders = value
		default:
			return nil, apperrors.InvalidInput("unknown setting %q", key)
		}
		out = *settings
		return []string{constants.DocUser}, nil
	})
	return out, err
}

// Export bundles every document.
func (t *Tracker) Export() (models.ExportSnapshot, error) {
	var snap models.ExportSnapshot
	err := t.view(func(s *session) error {
		snap = models.ExportSnapshot{
			User:        s.state.User,
			Habits:      s.habits.List(s.now),
			Completions: s.log.Events(),
			Rewards:     s.catalog.List(),
			ExportDate:  s.now,
		}
		return nil
	})
	return snap, err
}

// Reset replaces every document with its default. The profile name, email
// and settings survive unless wipeProfile is set.
func (t *Tracker) Reset(wipeProfile bool) error {
	err := t.op("reset", func(s *session) ([]string, error) {
		fresh := storage.DefaultState(s.now)
		if !wipeProfile {
			fresh.User.ID = s.state.User.ID
			fresh.User.Name = s.state.User.Name
			fresh.User.Email = s.state.User.Email
			fresh.User.JoinedAt = s.state.User.JoinedAt
			fresh.User.Settings = s.state.User.Settings
		}
		s.state = fresh
		s.habits = habits.NewRegistry(nil)
		s.log = completions.NewLog(nil)
		s.catalog = rewards.NewCatalog(nil)
		return storage.AllDocuments, nil
	})
	if err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	logger.Warn("All data reset", "wipe_profile", wipeProfile)
	return nil
}
