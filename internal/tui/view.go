package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/ascend/internal/challenge"
	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateChecklist:
		content = m.viewChecklist()
	case constants.StateHistory:
		content = docStyle.Render(m.historyModel.View())
	case constants.StateRules:
		content = m.viewRules()
	case constants.StateConfirmComplete:
		content = m.viewConfirmComplete()
	case constants.StateCompletionCard:
		content = m.viewCompletionCard()
	case constants.StateConfirmReset:
		content = docStyle.Render(m.resetForm.View())
	case constants.StateConfirmClearHistory:
		content = m.viewConfirmClearHistory()
	}

	var status string
	if m.statusMsg != "" {
		status = statusStyle.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	titles := []string{"Checklist", "History", "Rules"}
	states := []constants.SessionState{
		constants.StateChecklist,
		constants.StateHistory,
		constants.StateRules,
	}
	for i, title := range titles {
		if m.state == states[i] {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewChecklist() string {
	header := fmt.Sprintf("Day %d of %d, %d days remaining",
		m.rec.CurrentDay, constants.ChallengeLength, challenge.DaysRemaining(m.rec.CurrentDay))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.checklist.View()))
}

func (m Model) viewRules() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Complete all seven tasks every day for %d days straight.\n", constants.ChallengeLength)
	b.WriteString("Miss a single task and the attempt is over: reset and start again at day 1.\n\n")
	for i, def := range models.TaskDefinitions(1) {
		fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, def.Label, def.Description)
	}
	fmt.Fprintf(&b, "\nEvery %dth day the second workout must be a high-intensity session.", constants.HIITInterval)
	return docStyle.Render(b.String())
}

func (m Model) viewConfirmComplete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			fmt.Sprintf("Finish day %d?", m.rec.CurrentDay),
			"Completed days cannot be reopened.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewCompletionCard() string {
	headline := successStyle.Render(fmt.Sprintf("DAY %d COMPLETE", m.completedDay))
	var detail string
	if m.finished {
		detail = fmt.Sprintf("You finished the full %d days. A new cycle starts at day 1.", constants.ChallengeLength)
	} else {
		detail = fmt.Sprintf("%d days remaining.", challenge.DaysRemaining(m.completedDay))
	}

	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			headline,
			detail,
			"",
			quoteStyle.Render(fmt.Sprintf("%q", m.quote.Text)),
			quoteStyle.Render(m.quote.Author),
			"",
			"Press any key to continue",
		),
	)
}

func (m Model) viewConfirmClearHistory() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete all past attempts?"),
			"The current attempt is not affected. This cannot be undone.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == constants.StateChecklist || m.state == constants.StateHistory {
		keys = append(keys, m.keys.Reset)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help},
		{m.keys.Up, m.keys.Down, m.keys.Reset},
	}
}
