package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ascend/internal/challenge"
	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/progress"
	"github.com/julianstephens/ascend/internal/storage"
	"github.com/julianstephens/ascend/internal/tui/components/checklist"
)

func setupModel(t *testing.T) (Model, *progress.Accessor) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "ascend.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	acc := progress.New(store, nil)
	return NewModel(acc, constants.LocalUserID), acc
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// pump sends a message through Update and replays the messages produced by
// any returned commands, the way the bubbletea runtime would. The embedded
// reset form advances its state through such messages.
func pump(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return replay(t, next.(Model), cmd, 0)
}

func replay(t *testing.T, m Model, cmd tea.Cmd, depth int) Model {
	t.Helper()
	if cmd == nil || depth > 10 {
		return m
	}
	switch msg := cmd().(type) {
	case nil:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = replay(t, m, c, depth+1)
		}
		return m
	case cursor.BlinkMsg, tea.QuitMsg:
		return m
	default:
		next, nextCmd := m.Update(msg)
		return replay(t, next.(Model), nextCmd, depth+1)
	}
}

func TestToggleMessagePersists(t *testing.T) {
	m, acc := setupModel(t)

	next, _ := m.Update(checklist.ToggleTaskMsg{Key: models.TaskWater})
	m = next.(Model)

	rec := acc.Load(constants.LocalUserID)
	tasks := challenge.TasksForToday(rec, time.Now())
	if done, _ := tasks.Get(models.TaskWater); !done {
		t.Error("toggle was not persisted")
	}
}

func TestCompleteDayGatedOnOpenTasks(t *testing.T) {
	m, _ := setupModel(t)

	next, _ := m.Update(checklist.CompleteDayMsg{})
	m = next.(Model)

	if m.state != constants.StateChecklist {
		t.Errorf("state = %v, want checklist", m.state)
	}
	if m.statusMsg == "" {
		t.Error("expected a status message naming the open tasks")
	}
}

func TestCompleteDayFlow(t *testing.T) {
	m, acc := setupModel(t)

	for _, key := range models.TaskKeys {
		next, _ := m.Update(checklist.ToggleTaskMsg{Key: key})
		m = next.(Model)
	}

	next, _ := m.Update(checklist.CompleteDayMsg{})
	m = next.(Model)
	if m.state != constants.StateConfirmComplete {
		t.Fatalf("state = %v, want confirm-complete", m.state)
	}

	next, _ = m.Update(keyMsg("y"))
	m = next.(Model)
	if m.state != constants.StateCompletionCard {
		t.Fatalf("state = %v, want completion card", m.state)
	}
	if m.completedDay != 1 || m.finished {
		t.Errorf("card shows day %d finished=%v, want day 1 in progress", m.completedDay, m.finished)
	}
	if m.quote.Text == "" {
		t.Error("completion card has no quote")
	}

	rec := acc.Load(constants.LocalUserID)
	if rec.CurrentDay != 2 {
		t.Errorf("CurrentDay = %d, want 2", rec.CurrentDay)
	}

	// Any key dismisses the card.
	next, _ = m.Update(keyMsg("x"))
	m = next.(Model)
	if m.state != constants.StateChecklist {
		t.Errorf("state = %v, want checklist after dismissing the card", m.state)
	}
}

func TestConfirmCompleteDeclined(t *testing.T) {
	m, acc := setupModel(t)

	for _, key := range models.TaskKeys {
		next, _ := m.Update(checklist.ToggleTaskMsg{Key: key})
		m = next.(Model)
	}
	next, _ := m.Update(checklist.CompleteDayMsg{})
	m = next.(Model)

	next, _ = m.Update(keyMsg("n"))
	m = next.(Model)
	if m.state != constants.StateChecklist {
		t.Errorf("state = %v, want checklist", m.state)
	}

	rec := acc.Load(constants.LocalUserID)
	if rec.CurrentDay != 1 {
		t.Errorf("declining must not advance the day, got %d", rec.CurrentDay)
	}
}

func TestResetFlowRecordsFailedAttempt(t *testing.T) {
	m, acc := setupModel(t)

	m = pump(t, m, keyMsg("R"))
	if m.state != constants.StateConfirmReset {
		t.Fatalf("state = %v, want confirm-reset", m.state)
	}

	for _, r := range constants.ResetConfirmPhrase {
		m = pump(t, m, keyMsg(string(r)))
	}
	m = pump(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.state != constants.StateChecklist {
		t.Fatalf("state = %v, want checklist after reset", m.state)
	}
	if !strings.Contains(m.statusMsg, "FAILED") {
		t.Errorf("statusMsg = %q, want it to report the failed attempt", m.statusMsg)
	}

	rec := acc.Load(constants.LocalUserID)
	if len(rec.History) != 1 {
		t.Fatalf("history has %d entries, want 1", len(rec.History))
	}
	if rec.History[0].Status != models.AttemptFailed || rec.History[0].Days != 1 {
		t.Errorf("attempt = %+v, want FAILED after 1 day", rec.History[0])
	}
	if rec.CurrentDay != 1 {
		t.Errorf("CurrentDay = %d, want 1", rec.CurrentDay)
	}
}

func TestResetFlowRejectsWrongPhrase(t *testing.T) {
	m, acc := setupModel(t)

	m = pump(t, m, keyMsg("R"))
	for _, r := range "nope" {
		m = pump(t, m, keyMsg(string(r)))
	}
	m = pump(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.state != constants.StateChecklist {
		t.Fatalf("state = %v, want checklist", m.state)
	}
	if m.statusMsg != "Reset not confirmed." {
		t.Errorf("statusMsg = %q, want the not-confirmed notice", m.statusMsg)
	}
	if rec := acc.Load(constants.LocalUserID); len(rec.History) != 0 {
		t.Errorf("history has %d entries, want 0", len(rec.History))
	}
}

func TestResetFlowEscapes(t *testing.T) {
	m, acc := setupModel(t)

	m = pump(t, m, keyMsg("R"))
	m = pump(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.state != constants.StateChecklist {
		t.Fatalf("state = %v, want checklist after esc", m.state)
	}
	if rec := acc.Load(constants.LocalUserID); len(rec.History) != 0 {
		t.Errorf("history has %d entries, want 0", len(rec.History))
	}
}

func TestTabCyclesViews(t *testing.T) {
	m, _ := setupModel(t)

	states := []constants.SessionState{
		constants.StateHistory,
		constants.StateRules,
		constants.StateChecklist,
	}
	for _, want := range states {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(Model)
		if m.state != want {
			t.Fatalf("state = %v, want %v", m.state, want)
		}
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := setupModel(t)

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if !m.quitting {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}
