// Package tui is the interactive checklist: the default way to work through
// a day. It reads and writes records through the progress accessor, so a
// flaky backend degrades to cached data instead of an error screen.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ascend/internal/challenge"
	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/progress"
	"github.com/julianstephens/ascend/internal/quotes"
	"github.com/julianstephens/ascend/internal/tui/components/checklist"
	"github.com/julianstephens/ascend/internal/tui/components/history"
)

// resetPhraseKey names the confirmation input inside the reset form.
const resetPhraseKey = "phrase"

type Model struct {
	progress *progress.Accessor
	userID   string

	rec   models.ChallengeRecord
	state constants.SessionState
	keys  KeyMap
	help  help.Model

	checklist    checklist.Model
	historyModel history.Model

	// resetForm is the typed-phrase confirmation shown in StateConfirmReset.
	resetForm *huh.Form

	// Completion card contents, set when a day is finished.
	completedDay int
	finished     bool
	quote        quotes.Quote

	statusMsg string
	quitting  bool
	width     int
	height    int
}

func NewModel(acc *progress.Accessor, userID string) Model {
	now := time.Now()
	rec := acc.Load(userID)
	tasks := challenge.TasksForToday(rec, now)

	return Model{
		progress:     acc,
		userID:       userID,
		rec:          rec,
		state:        constants.StateChecklist,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		checklist:    checklist.New(rec.CurrentDay, tasks, 0, 0),
		historyModel: history.New(rec, 0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh re-reads the record and pushes it into the components.
func (m *Model) refresh() {
	m.rec = m.progress.Load(m.userID)
	tasks := challenge.TasksForToday(m.rec, time.Now())
	m.checklist.SetTasks(m.rec.CurrentDay, tasks)
	m.historyModel.SetRecord(m.rec)
}

// save persists the in-memory record and refreshes the components from it.
func (m *Model) save() {
	m.progress.Save(m.userID, m.rec)
	tasks := challenge.TasksForToday(m.rec, time.Now())
	m.checklist.SetTasks(m.rec.CurrentDay, tasks)
	m.historyModel.SetRecord(m.rec)
}

// newResetForm builds the typed-phrase confirmation. The typed value is read
// back with GetString rather than a bound pointer: the model is copied on
// every update, so a pointer into it would go stale.
func newResetForm() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key(resetPhraseKey).
			Title("Reset attempt").
			Description("This records the attempt as FAILED and starts over at day 1.\nType " + constants.ResetConfirmPhrase + " to confirm."),
	))
}
