// Package tracker runs each user-facing operation as one unit of work: load
// the documents, apply the change, persist what changed.
package tracker

import (
	"sync"
	"time"

	"github.com/julianstephens/streakly/internal/completions"
	"github.com/julianstephens/streakly/internal/habits"
	"github.com/julianstephens/streakly/internal/ledger"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/rewards"
	"github.com/julianstephens/streakly/internal/stats"
	"github.com/julianstephens/streakly/internal/storage"
)

// Tracker serialises operations over one store. Operations hold an exclusive
// lock from load to persist, so no two of them interleave within a process.
type Tracker struct {
	mu         sync.Mutex
	docs       *storage.Documents
	clock      func() time.Time
	loc        *time.Location
	activeRule stats.ActiveRule
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) { t.clock = clock }
}

// WithLocation sets the location that defines calendar days.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// WithActiveRule selects how stats count active habits.
func WithActiveRule(rule stats.ActiveRule) Option {
	return func(t *Tracker) { t.activeRule = rule }
}

// New returns a tracker over store. The store must already be loaded.
func New(store storage.Provider, opts ...Option) *Tracker {
	t := &Tracker{
		clock:      time.Now,
		loc:        time.Local,
		activeRule: stats.ActiveEngaged,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.docs = storage.NewDocuments(store).WithClock(t.Now)
	return t
}

// Now returns the current time in the tracker's location.
func (t *Tracker) Now() time.Time {
	return t.clock().In(t.loc)
}

// Location returns the location that defines calendar days.
func (t *Tracker) Location() *time.Location {
	return t.loc
}

// Documents exposes the document repository for maintenance commands.
func (t *Tracker) Documents() *storage.Documents {
	return t.docs
}

// session is the in-memory working copy of one operation
type session struct {
	now     time.Time
	state   storage.State
	habits  *habits.Registry
	log     *completions.Log
	catalog *rewards.Catalog
	ledger  *ledger.Ledger
}

// commit copies the component state back into the documents.
func (s *session) commit() storage.State {
	s.state.Habits = s.habits.Habits()
	s.state.Completions = s.log.Events()
	s.state.Rewards = s.catalog.List()
	return s.state
}

// op runs fn under the lock. fn returns the document keys it changed; those
// are written as one unit. When fn fails, or the write fails, nothing is kept.
func (t *Tracker) op(name string, fn func(s *session) ([]string, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, err := t.docs.Load()
	if err != nil {
		return err
	}

	s := &session{
		now:     t.Now(),
		state:   state,
		habits:  habits.NewRegistry(state.Habits),
		log:     completions.NewLog(state.Completions),
		catalog: rewards.NewCatalog(state.Rewards),
	}
	s.ledger = ledger.New(&s.state.User.EnergyAccount)

	changed, err := fn(s)
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		return nil
	}

	if err := t.docs.Save(s.commit(), changed...); err != nil {
		logger.Error("Failed to persist operation", "op", name, "documents", changed, "error", err)
		return err
	}
	logger.Debug("Operation persisted", "op", name, "documents", changed)
	return nil
}

// view runs fn under the lock without persisting any document. The only
// possible write is the one-time copy of a corrupt document made by Load.
func (t *Tracker) view(fn func(s *session) error) error {
	return t.op("view", func(s *session) ([]string, error) {
		return nil, fn(s)
	})
}
