// Package checklist renders the seven daily tasks as a selectable list.
package checklist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ascend/internal/models"
)

// ToggleTaskMsg asks the parent model to flip one task and persist.
type ToggleTaskMsg struct {
	Key string
}

// CompleteDayMsg asks the parent model to start day completion.
type CompleteDayMsg struct{}

type Item struct {
	Def  models.TaskDefinition
	Done bool
}

func (i Item) Title() string {
	if i.Done {
		return "✓ " + i.Def.Label
	}
	return "○ " + i.Def.Label
}

func (i Item) Description() string {
	return i.Def.Description
}

func (i Item) FilterValue() string { return i.Def.Label }

type KeyMap struct {
	Toggle   key.Binding
	Complete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle task"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete day"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(day int, tasks models.TaskSet, width, height int) Model {
	l := list.New(buildItems(day, tasks), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Complete}
	}

	return Model{list: l, keys: keys}
}

func buildItems(day int, tasks models.TaskSet) []list.Item {
	defs := models.TaskDefinitions(day)
	items := make([]list.Item, len(defs))
	for i, def := range defs {
		done, _ := tasks.Get(def.Key)
		items[i] = Item{Def: def, Done: done}
	}
	return items
}

// SetTasks refreshes the list for the given day's checklist state, keeping
// the cursor where it was.
func (m *Model) SetTasks(day int, tasks models.TaskSet) {
	m.list.SetItems(buildItems(day, tasks))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleTaskMsg{Key: i.Def.Key} }
			}
		case key.Matches(msg, m.keys.Complete):
			return m, func() tea.Msg { return CompleteDayMsg{} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
