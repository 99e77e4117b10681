package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/tracker"
	"github.com/julianstephens/streakly/internal/tui/components/habitlist"
	"github.com/julianstephens/streakly/internal/tui/components/rewardlist"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateRewards
)

const tabCount = 2

var tabTitles = []string{"Today", "Rewards"}

// refreshedMsg carries a fresh read of the tracker.
type refreshedMsg struct {
	habits  []models.Habit
	rewards []models.Reward
	account models.EnergyAccount
	stats   models.Stats
	err     error
}

// statusMsg is a one-line outcome shown under the tabs.
type statusMsg struct {
	text string
	err  bool
}

type Model struct {
	tracker     *tracker.Tracker
	state       SessionState
	keys        KeyMap
	help        help.Model
	habitList   habitlist.Model
	rewardList  rewardlist.Model
	account     models.EnergyAccount
	stats       models.Stats
	status      string
	statusIsErr bool
	quitting    bool
	width       int
	height      int
}

func NewModel(t *tracker.Tracker) Model {
	return Model{
		tracker:    t,
		state:      StateHabits,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		habitList:  habitlist.New(0, 0),
		rewardList: rewardlist.New(0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return m.refresh
}

func (m Model) refresh() tea.Msg {
	var msg refreshedMsg
	if msg.habits, msg.err = m.tracker.Habits(); msg.err != nil {
		return msg
	}
	if msg.rewards, msg.err = m.tracker.Rewards(); msg.err != nil {
		return msg
	}
	if msg.account, msg.err = m.tracker.Account(); msg.err != nil {
		return msg
	}
	msg.stats, msg.err = m.tracker.Stats()
	return msg
}

func (m *Model) apply(msg refreshedMsg) {
	if msg.err != nil {
		m.status, m.statusIsErr = msg.err.Error(), true
		return
	}
	m.habitList.SetHabits(msg.habits, m.tracker.Now())
	m.rewardList.SetRewards(msg.rewards, msg.account.TotalEnergy)
	m.account = msg.account
	m.stats = msg.stats
}

func (m *Model) resize() {
	// tabs, header, status and help
	reserved := 6
	h := m.height - reserved
	if h < 0 {
		h = 0
	}
	w, v := docStyle.GetFrameSize()
	m.habitList.SetSize(m.width-w, h-v)
	m.rewardList.SetSize(m.width-w, h-v)
}
