package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/streakly/internal/constants"
	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/models"
)

// AllDocuments lists the document keys in write order.
var AllDocuments = []string{constants.DocHabits, constants.DocCompletions, constants.DocRewards, constants.DocUser}

// State is the decoded content of every document.
type State struct {
	Habits      []models.Habit
	Completions []models.CompletionEvent
	Rewards     []models.Reward
	User        models.User
}

// DefaultUser returns the profile used when no user document exists.
func DefaultUser(now time.Time) models.User {
	return models.User{
		ID:       constants.DefaultUserID,
		Name:     constants.DefaultUserName,
		JoinedAt: now,
		Settings: models.UserSettings{
			SoundEnabled:            constants.DefaultSoundEnabled,
			NotificationsEnabled:    constants.DefaultNotificationsEnabled,
			CheckinRemindersOnly:    constants.DefaultCheckinRemindersOnly,
			WeeklyProgressReminders: constants.DefaultWeeklyProgressReminders,
		},
	}
}

// DefaultState is the state of a fresh installation.
func DefaultState(now time.Time) State {
	return State{
		Habits:      []models.Habit{},
		Completions: []models.CompletionEvent{},
		Rewards:     []models.Reward{},
		User:        DefaultUser(now),
	}
}

// Documents reads and writes the typed documents of a Provider. A missing
// document reads as its default. A document that cannot be decoded is copied
// to "<key>.corrupt.<unix>" and then read as its default.
type Documents struct {
	store Provider
	now   func() time.Time
}

func NewDocuments(store Provider) *Documents {
	return &Documents{store: store, now: time.Now}
}

// WithClock overrides the clock used for quarantine names and default profiles.
func (d *Documents) WithClock(now func() time.Time) *Documents {
	d.now = now
	return d
}

// Store returns the underlying provider.
func (d *Documents) Store() Provider {
	return d.store
}

// Load decodes and sanitises every document.
func (d *Documents) Load() (State, error) {
	now := d.now()
	state := DefaultState(now)

	if err := d.read(constants.DocHabits, &state.Habits); err != nil {
		return State{}, err
	}
	if err := d.read(constants.DocCompletions, &state.Completions); err != nil {
		return State{}, err
	}
	if err := d.read(constants.DocRewards, &state.Rewards); err != nil {
		return State{}, err
	}
	if err := d.read(constants.DocUser, &state.User); err != nil {
		return State{}, err
	}

	sanitize(&state)
	return state, nil
}

// read decodes key into v, leaving v untouched when the document is missing
// or corrupt.
func (d *Documents) read(key string, v interface{}) error {
	raw, err := d.store.Get(key)
	if err != nil {
		if errors.Is(err, ErrNoDocument) {
			return nil
		}
		return apperrors.Storage("read", key, err)
	}

	if err := decode(raw, v); err != nil {
		logger.Warn("Document is corrupt, using defaults", "key", key, "error", err)
		return d.quarantine(key, raw)
	}
	return nil
}

// decode unmarshals into a scratch value first so a failed decode cannot
// leave v half-written.
func decode(raw []byte, v interface{}) error {
	switch target := v.(type) {
	case *[]models.Habit:
		var out []models.Habit
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
		if out != nil {
			*target = out
		}
	case *[]models.CompletionEvent:
		var out []models.CompletionEvent
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
		if out != nil {
			*target = out
		}
	case *[]models.Reward:
		var out []models.Reward
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
		if out != nil {
			*target = out
		}
	case *models.User:
		out := *target
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
		*target = out
	default:
		return fmt.Errorf("unsupported document type %T", v)
	}
	return nil
}

// quarantine copies raw aside once. Later loads of the same corrupt bytes
// find the existing copy and write nothing.
func (d *Documents) quarantine(key string, raw []byte) error {
	existing, err := d.quarantinedCopy(key, raw)
	if err != nil {
		return err
	}
	if existing != "" {
		logger.Debug("Corrupt document already preserved", "key", key, "copy", existing)
		return nil
	}

	name := QuarantineKey(key, d.now())
	if err := d.store.Put(name, raw); err != nil {
		return apperrors.Storage("quarantine", key, err)
	}
	logger.Warn("Corrupt document preserved", "key", key, "copy", name)
	return nil
}

// quarantinedCopy returns the key of a preserved copy of key holding raw.
func (d *Documents) quarantinedCopy(key string, raw []byte) (string, error) {
	keys, err := d.store.Keys()
	if err != nil {
		return "", apperrors.Storage("list", key, err)
	}
	prefix := key + constants.CorruptSuffix + "."
	for _, k := range keys {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		data, err := d.store.Get(k)
		if err != nil {
			if errors.Is(err, ErrNoDocument) {
				continue
			}
			return "", apperrors.Storage("read", k, err)
		}
		if bytes.Equal(data, raw) {
			return k, nil
		}
	}
	return "", nil
}

// QuarantineKey names the copy of a corrupt document.
func QuarantineKey(key string, at time.Time) string {
	return fmt.Sprintf("%s%s.%d", key, constants.CorruptSuffix, at.Unix())
}

// Encode marshals the documents named by keys.
func Encode(state State, keys ...string) (map[string][]byte, error) {
	docs := make(map[string][]byte, len(keys))
	for _, key := range keys {
		var v interface{}
		switch key {
		case constants.DocHabits:
			v = orEmpty(state.Habits)
		case constants.DocCompletions:
			v = orEmpty(state.Completions)
		case constants.DocRewards:
			v = orEmpty(state.Rewards)
		case constants.DocUser:
			v = state.User
		default:
			return nil, fmt.Errorf("unknown document %q", key)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		docs[key] = data
	}
	return docs, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Save writes the documents named by keys as one unit.
func (d *Documents) Save(state State, keys ...string) error {
	docs, err := Encode(state, keys...)
	if err != nil {
		return apperrors.Storage("encode", "", err)
	}
	return WriteAll(d.store, docs)
}

// Quarantined lists the keys of preserved corrupt documents.
func (d *Documents) Quarantined() ([]string, error) {
	keys, err := d.store.Keys()
	if err != nil {
		return nil, apperrors.Storage("list", "", err)
	}
	var out []string
	for _, k := range keys {
		for _, doc := range AllDocuments {
			if strings.HasPrefix(k, doc+constants.CorruptSuffix+".") {
				out = append(out, k)
				break
			}
		}
	}
	return out, nil
}
