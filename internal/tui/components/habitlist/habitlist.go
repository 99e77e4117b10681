package habitlist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/habits"
	"github.com/julianstephens/streakly/internal/models"
)

// CompleteHabitMsg asks the parent model to record a completion.
type CompleteHabitMsg struct {
	ID string
}

type Item struct {
	Habit models.Habit
	Done  bool
}

func (i Item) Title() string {
	title := cli.Glyph(i.Habit.Icon) + " " + i.Habit.Name
	if i.Done {
		title += " ✓"
	}
	return title
}

func (i Item) Description() string {
	return fmt.Sprintf("%s %d/%d | 🔥%d (best %d) | +%d⚡",
		cli.ProgressBar(i.Habit.CompletedToday, i.Habit.DailyFrequency, 10),
		i.Habit.CompletedToday, i.Habit.DailyFrequency,
		i.Habit.CurrentStreak, i.Habit.LongestStreak, i.Habit.EnergyPerCompletion)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Complete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Complete: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "complete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Complete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

// SetHabits replaces the listed habits, marking those finished for today.
func (m *Model) SetHabits(hs []models.Habit, now time.Time) {
	items := make([]list.Item, len(hs))
	for i, h := range hs {
		items[i] = Item{Habit: h, Done: habits.IsCompletedToday(h, now)}
	}
	m.list.SetItems(items)
}

// Selected returns the highlighted habit.
func (m Model) Selected() (models.Habit, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Habit, ok
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Complete) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				id := i.Habit.ID
				return m, func() tea.Msg { return CompleteHabitMsg{ID: id} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Run 'streakly habit add' to create one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
