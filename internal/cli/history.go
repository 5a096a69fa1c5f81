package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ascend/internal/challenge"
	"github.com/julianstephens/ascend/internal/models"
)

type HistoryCmd struct{}

func (c *HistoryCmd) Run(ctx *Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}

	rec := ctx.Progress.Load(id.UserID)

	fmt.Println(DayHeadline(rec))
	fmt.Println(FormatProgressBar(rec.CurrentDay, 30))
	fmt.Println()

	if len(rec.History) == 0 {
		fmt.Println("No past attempts recorded.")
		return nil
	}

	succeeded := 0
	for _, a := range rec.History {
		if a.Status == models.AttemptSuccess {
			succeeded++
		}
	}
	fmt.Printf("Past attempts (%d, %d successful):\n", len(rec.History), succeeded)
	for _, a := range rec.History {
		fmt.Println(FormatAttempt(a))
	}
	return nil
}

type ClearHistoryCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

func (c *ClearHistoryCmd) Run(ctx *Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}

	rec := ctx.Progress.Load(id.UserID)
	if len(rec.History) == 0 {
		fmt.Println("No past attempts recorded.")
		return nil
	}

	if !c.Yes {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete all %d past attempts?", len(rec.History))).
				Description("The current attempt is not affected. This cannot be undone.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("History kept.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	challenge.ClearHistory(&rec)
	ctx.Progress.Save(id.UserID, rec)

	fmt.Println("History cleared.")
	return nil
}
