package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ascend/internal/challenge"
	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/quotes"
	"github.com/julianstephens/ascend/internal/tui/components/checklist"
	"github.com/julianstephens/ascend/internal/tui/components/history"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := msg.Height - 6
		if contentHeight < 1 {
			contentHeight = 1
		}
		m.checklist.SetSize(msg.Width-4, contentHeight)
		m.historyModel.SetSize(msg.Width-4, contentHeight)
		m.help.Width = msg.Width
		return m, nil

	case checklist.ToggleTaskMsg:
		m.statusMsg = ""
		if err := challenge.Toggle(&m.rec, msg.Key, time.Now()); err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		m.save()
		return m, nil

	case checklist.CompleteDayMsg:
		tasks := challenge.TasksForToday(m.rec, time.Now())
		if !challenge.IsComplete(tasks) {
			m.statusMsg = fmt.Sprintf("%d task(s) still open. Finish them all first.",
				len(models.TaskKeys)-tasks.Count())
			return m, nil
		}
		m.statusMsg = ""
		m.state = constants.StateConfirmComplete
		return m, nil

	case history.ClearHistoryMsg:
		m.state = constants.StateConfirmClearHistory
		return m, nil
	}

	switch m.state {
	case constants.StateConfirmComplete:
		return m.updateConfirmComplete(msg)
	case constants.StateCompletionCard:
		return m.updateCompletionCard(msg)
	case constants.StateConfirmReset:
		return m.updateConfirmReset(msg)
	case constants.StateConfirmClearHistory:
		return m.updateConfirmClearHistory(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if handled, next, cmd := m.handleGlobalKeys(msg); handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateChecklist:
		m.checklist, cmd = m.checklist.Update(msg)
	case constants.StateHistory:
		m.historyModel, cmd = m.historyModel.Update(msg)
	}
	return m, cmd
}

func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, m, nil

	case key.Matches(msg, m.keys.Tab):
		m.statusMsg = ""
		switch m.state {
		case constants.StateChecklist:
			m.state = constants.StateHistory
		case constants.StateHistory:
			m.state = constants.StateRules
		case constants.StateRules:
			m.state = constants.StateChecklist
		}
		m.refresh()
		return true, m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.statusMsg = ""
		switch m.state {
		case constants.StateChecklist:
			m.state = constants.StateRules
		case constants.StateHistory:
			m.state = constants.StateChecklist
		case constants.StateRules:
			m.state = constants.StateHistory
		}
		m.refresh()
		return true, m, nil

	case key.Matches(msg, m.keys.Reset):
		m.statusMsg = ""
		m.resetForm = newResetForm()
		m.state = constants.StateConfirmReset
		return true, m, m.resetForm.Init()
	}

	return false, m, nil
}

func (m Model) updateConfirmComplete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			res, err := challenge.CompleteDay(&m.rec, time.Now())
			if err != nil {
				m.statusMsg = err.Error()
				m.state = constants.StateChecklist
				return m, nil
			}
			m.save()
			m.completedDay = res.Day
			m.finished = res.Finished
			m.quote = quotes.Random()
			m.state = constants.StateCompletionCard
		case "n", "N", "esc":
			m.state = constants.StateChecklist
		}
	}
	return m, nil
}

func (m Model) updateCompletionCard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.state = constants.StateChecklist
	}
	return m, nil
}

func (m Model) updateConfirmReset(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateChecklist
		return m, nil
	}

	form, cmd := m.resetForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.resetForm = f
	}

	switch m.resetForm.State {
	case huh.StateCompleted:
		if m.resetForm.GetString(resetPhraseKey) == constants.ResetConfirmPhrase {
			attempt := challenge.Reset(&m.rec, time.Now())
			m.save()
			m.statusMsg = fmt.Sprintf("Attempt recorded as FAILED after %d day(s). Back to day 1.", attempt.Days)
		} else {
			m.statusMsg = "Reset not confirmed."
		}
		m.state = constants.StateChecklist
	case huh.StateAborted:
		m.state = constants.StateChecklist
	}
	return m, cmd
}

func (m Model) updateConfirmClearHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			challenge.ClearHistory(&m.rec)
			m.save()
			m.statusMsg = "History cleared."
			m.state = constants.StateHistory
		case "n", "N", "esc":
			m.state = constants.StateHistory
		}
	}
	return m, nil
}
