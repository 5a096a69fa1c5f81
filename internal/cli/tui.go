package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ascend/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Progress, id.UserID), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
