package storage

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/streakly/internal/constants"
	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/models"
)

var fixedNow = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

// flakyStore fails Put for one key
type flakyStore struct {
	*MemoryStore
	failKey string
	puts    []string
}

func (s *flakyStore) Put(key string, data []byte) error {
	if key == s.failKey {
		return errors.New("disk full")
	}
	s.puts = append(s.puts, key)
	return s.MemoryStore.Put(key, data)
}

func newDocs(p Provider) *Documents {
	return NewDocuments(p).WithClock(func() time.Time { return fixedNow })
}

func TestLoadDefaults(t *testing.T) {
	state, err := newDocs(NewMemoryStore()).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(state.Habits) != 0 || len(state.Completions) != 0 || len(state.Rewards) != 0 {
		t.Errorf("expected empty collections, got %+v", state)
	}
	if state.User.ID != constants.DefaultUserID || state.User.Name != constants.DefaultUserName {
		t.Errorf("unexpected default user: %+v", state.User)
	}
	if !state.User.Settings.SoundEnabled || state.User.Settings.CheckinRemindersOnly {
		t.Errorf("unexpected default settings: %+v", state.User.Settings)
	}
	if state.User.TotalEnergy != 0 {
		t.Errorf("expected zero balance, got %d", state.User.TotalEnergy)
	}
	if !state.User.JoinedAt.Equal(fixedNow) {
		t.Errorf("JoinedAt = %v, want %v", state.User.JoinedAt, fixedNow)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	docs := newDocs(store)

	last := fixedNow.Add(-time.Hour)
	state := DefaultState(fixedNow)
	state.Habits = []models.Habit{{
		ID: "h1", Name: "Read", Icon: models.IconBook, Difficulty: models.DifficultyEasy,
		WeeklyDays: 7, DailyFrequency: 2, EnergyPerCompletion: 2,
		CurrentStreak: 3, LongestStreak: 5, CompletedToday: 1, LastCompletedDate: &last,
		Reminders: []string{"07:00"},
	}}
	state.Completions = []models.CompletionEvent{{HabitID: "h1", Date: last, CompletedCount: 1, EnergyEarned: 2}}
	state.User.EnergyAccount = models.EnergyAccount{TotalEnergy: 2, TotalEnergyEarned: 2}

	if err := docs.Save(state, AllDocuments...); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, err := store.Get(constants.DocHabits)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !strings.Contains(string(raw), `"daily_frequency":2`) || !strings.Contains(string(raw), `"last_completed_date"`) {
		t.Errorf("habits document is missing snake_case fields: %s", raw)
	}

	loaded, err := docs.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Habits) != 1 || loaded.Habits[0].LongestStreak != 5 {
		t.Errorf("unexpected habits: %+v", loaded.Habits)
	}
	if loaded.User.TotalEnergy != 2 {
		t.Errorf("TotalEnergy = %d, want 2", loaded.User.TotalEnergy)
	}
}

func TestCorruptDocumentIsQuarantined(t *testing.T) {
	store := NewMemoryStore()
	raw := []byte(`{"oops": [`)
	if err := store.Put(constants.DocRewards, raw); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	docs := newDocs(store)
	state, err := docs.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(state.Rewards) != 0 {
		t.Errorf("expected default rewards, got %+v", state.Rewards)
	}

	copyKey := QuarantineKey(constants.DocRewards, fixedNow)
	preserved, err := store.Get(copyKey)
	if err != nil {
		t.Fatalf("corrupt document was not preserved: %v", err)
	}
	if string(preserved) != string(raw) {
		t.Errorf("preserved = %q, want %q", preserved, raw)
	}

	quarantined, err := docs.Quarantined()
	if err != nil {
		t.Fatalf("Quarantined failed: %v", err)
	}
	if len(quarantined) != 1 || quarantined[0] != copyKey {
		t.Errorf("Quarantined() = %v, want [%s]", quarantined, copyKey)
	}
}

func TestCorruptDocumentQuarantinedOnce(t *testing.T) {
	store := &flakyStore{MemoryStore: NewMemoryStore()}
	if err := store.MemoryStore.Put(constants.DocHabits, []byte(`{"x":1}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	now := fixedNow
	docs := NewDocuments(store).WithClock(func() time.Time { return now })
	for i := 0; i < 3; i++ {
		if _, err := docs.Load(); err != nil {
			t.Fatalf("Load %d failed: %v", i, err)
		}
		now = now.Add(time.Second)
	}

	quarantined, err := docs.Quarantined()
	if err != nil {
		t.Fatalf("Quarantined failed: %v", err)
	}
	if len(quarantined) != 1 {
		t.Errorf("expected one preserved copy, got %v", quarantined)
	}
	if len(store.puts) != 1 {
		t.Errorf("expected a single write across loads, got %v", store.puts)
	}

	// different corrupt bytes are preserved separately
	if err := store.MemoryStore.Put(constants.DocHabits, []byte(`[{"id": 7}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := docs.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	quarantined, err = docs.Quarantined()
	if err != nil {
		t.Fatalf("Quarantined failed: %v", err)
	}
	if len(quarantined) != 2 {
		t.Errorf("expected two preserved copies, got %v", quarantined)
	}
}

func TestCorruptDocumentQuarantineFailure(t *testing.T) {
	mem := NewMemoryStore()
	if err := mem.Put(constants.DocUser, []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	store := &flakyStore{MemoryStore: mem, failKey: QuarantineKey(constants.DocUser, fixedNow)}

	_, err := newDocs(store).Load()
	if !errors.Is(err, apperrors.ErrStorageFailure) {
		t.Fatalf("expected storage failure when the corrupt copy cannot be saved, got %v", err)
	}
}

func TestLoadClampsOutOfRangeValues(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Put(constants.DocHabits, []byte(`[{
		"id": "h1", "name": "Water", "icon": "rocket", "difficulty": "brutal",
		"weekly_days": 9, "daily_frequency": 3, "energy_per_completion": 0,
		"completed_today": 7, "current_streak": 4, "longest_streak": 2,
		"reminders": ["21:00", "bad", "07:00", "21:00"]
	}]`))
	_ = store.Put(constants.DocRewards, []byte(`[{"id":"r1","title":"Snack","energy_cost":-5,"times_redeemed":3,"is_repeatable":false,"category":"streak_99"}]`))
	_ = store.Put(constants.DocUser, []byte(`{"id":"default-user","total_energy":50,"total_energy_earned":10,"total_energy_spent":4}`))

	state, err := newDocs(store).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	h := state.Habits[0]
	if h.CompletedToday != 3 {
		t.Errorf("CompletedToday = %d, want 3", h.CompletedToday)
	}
	if h.LongestStreak != 4 {
		t.Errorf("LongestStreak = %d, want 4", h.LongestStreak)
	}
	if h.WeeklyDays != 7 || h.EnergyPerCompletion != 1 {
		t.Errorf("bounds not clamped: weekly=%d energy=%d", h.WeeklyDays, h.EnergyPerCompletion)
	}
	if h.Icon != models.IconTarget || h.Difficulty != models.DifficultyNormal {
		t.Errorf("enums not defaulted: icon=%q difficulty=%q", h.Icon, h.Difficulty)
	}
	if len(h.Reminders) != 2 || h.Reminders[0] != "07:00" || h.Reminders[1] != "21:00" {
		t.Errorf("Reminders = %v, want [07:00 21:00]", h.Reminders)
	}

	r := state.Rewards[0]
	if r.EnergyCost != 0 || r.TimesRedeemed != 1 || r.Category != models.CategoryCustom {
		t.Errorf("reward not repaired: %+v", r)
	}

	if state.User.TotalEnergy != 6 {
		t.Errorf("TotalEnergy = %d, want 6", state.User.TotalEnergy)
	}
}

func TestEncodeUnknownDocument(t *testing.T) {
	if _, err := Encode(State{}, "plans"); err == nil {
		t.Fatal("expected error for unknown document key")
	}

	docs, err := Encode(State{}, constants.DocHabits)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(docs[constants.DocHabits]) != "[]" {
		t.Errorf("nil habits encoded as %s, want []", docs[constants.DocHabits])
	}
}
