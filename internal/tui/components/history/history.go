// Package history renders past attempts and the current attempt's progress.
package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

// ClearHistoryMsg asks the parent model to confirm clearing all attempts.
type ClearHistoryMsg struct{}

type Item struct {
	Attempt models.AttemptRecord
}

func (i Item) Title() string {
	if i.Attempt.Status == models.AttemptSuccess {
		return fmt.Sprintf("✓ SUCCESS, %d days", i.Attempt.Days)
	}
	return fmt.Sprintf("✗ FAILED after %d day(s)", i.Attempt.Days)
}

func (i Item) Description() string {
	return fmt.Sprintf("%s to %s",
		i.Attempt.StartDate.Local().Format(constants.DateFormat),
		i.Attempt.EndDate.Local().Format(constants.DateFormat))
}

func (i Item) FilterValue() string { return string(i.Attempt.Status) }

type KeyMap struct {
	Clear key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear history"),
		),
	}
}

type Model struct {
	list       list.Model
	bar        progress.Model
	keys       KeyMap
	currentDay int
}

func New(rec models.ChallengeRecord, width, height int) Model {
	l := list.New(buildItems(rec.History), list.NewDefaultDelegate(), width, height)
	l.Title = "History"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Clear}
	}

	bar := progress.New(progress.WithDefaultGradient())

	return Model{list: l, bar: bar, keys: keys, currentDay: rec.CurrentDay}
}

func buildItems(attempts []models.AttemptRecord) []list.Item {
	// Newest first.
	items := make([]list.Item, len(attempts))
	for i, a := range attempts {
		items[len(attempts)-1-i] = Item{Attempt: a}
	}
	return items
}

// SetRecord refreshes the view from the latest record state.
func (m *Model) SetRecord(rec models.ChallengeRecord) {
	m.currentDay = rec.CurrentDay
	m.list.SetItems(buildItems(rec.History))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keys.Clear) && len(m.list.Items()) > 0 {
			return m, func() tea.Msg { return ClearHistoryMsg{} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	percent := float64(m.currentDay) / float64(constants.ChallengeLength)
	fmt.Fprintf(&b, "Current attempt: day %d of %d\n", m.currentDay, constants.ChallengeLength)
	b.WriteString(m.bar.ViewAs(percent))
	b.WriteString("\n\n")

	if len(m.list.Items()) == 0 {
		b.WriteString("  No past attempts recorded.")
	} else {
		b.WriteString(m.list.View())
	}
	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.bar.Width = width - 4
	// The progress line and headline take up vertical space.
	m.list.SetSize(width, height-4)
}
