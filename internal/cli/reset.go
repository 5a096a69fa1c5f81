package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ascend/internal/challenge"
	"github.com/julianstephens/ascend/internal/constants"
)

type ResetCmd struct {
	Yes bool `help:"Skip the typed confirmation. For scripts only."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}

	now := time.Now()
	rec := ctx.Progress.Load(id.UserID)

	if !c.Yes {
		fmt.Printf("You are on day %d. Resetting records this attempt as FAILED and starts over at day 1.\n", rec.CurrentDay)

		var typed string
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Type %s to confirm", constants.ResetConfirmPhrase)).
				Value(&typed).
				Validate(func(s string) error {
					if s != constants.ResetConfirmPhrase {
						return fmt.Errorf("type %s exactly to confirm", constants.ResetConfirmPhrase)
					}
					return nil
				}),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}

	ctx.PerformAutomaticBackup()

	attempt := challenge.Reset(&rec, now)
	ctx.Progress.Save(id.UserID, rec)

	fmt.Printf("Attempt recorded as %s after %d day(s). Back to day 1.\n", attempt.Status, attempt.Days)
	return nil
}
