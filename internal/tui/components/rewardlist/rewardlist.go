package rewardlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streakly/internal/models"
)

// RedeemRewardMsg asks the parent model to redeem a reward.
type RedeemRewardMsg struct {
	ID string
}

type Item struct {
	Reward     models.Reward
	Affordable bool
}

func (i Item) Title() string {
	switch {
	case !i.Reward.Redeemable():
		return i.Reward.Title + " (redeemed)"
	case i.Affordable:
		return "⭐ " + i.Reward.Title
	}
	return i.Reward.Title
}

func (i Item) Description() string {
	repeat := "once"
	if i.Reward.IsRepeatable {
		repeat = "repeatable"
	}
	return fmt.Sprintf("%d⚡ | %s | %s | redeemed %d×",
		i.Reward.EnergyCost, i.Reward.Category, repeat, i.Reward.TimesRedeemed)
}

func (i Item) FilterValue() string { return i.Reward.Title }

type KeyMap struct {
	Redeem key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Redeem: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "redeem"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Rewards"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Redeem}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

// SetRewards replaces the listed rewards, flagging those the balance covers.
func (m *Model) SetRewards(rs []models.Reward, balance int) {
	items := make([]list.Item, len(rs))
	for i, r := range rs {
		items[i] = Item{Reward: r, Affordable: r.Redeemable() && r.EnergyCost <= balance}
	}
	m.list.SetItems(items)
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Redeem) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				id := i.Reward.ID
				return m, func() tea.Msg { return RedeemRewardMsg{ID: id} }
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
		return "\n  No rewards yet.\n  Run 'streakly reward add' to create one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
