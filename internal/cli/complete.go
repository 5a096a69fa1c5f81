package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ascend/internal/challenge"
	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/quotes"
)

type CompleteCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

func (c *CompleteCmd) Run(ctx *Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}

	now := time.Now()
	rec := ctx.Progress.Load(id.UserID)
	tasks := challenge.TasksForToday(rec, now)

	if !challenge.IsComplete(tasks) {
		fmt.Printf("%d of %d tasks done:\n", tasks.Count(), len(models.TaskKeys))
		for _, def := range models.TaskDefinitions(rec.CurrentDay) {
			done, _ := tasks.Get(def.Key)
			if !done {
				fmt.Println(FormatTaskLine(def, false))
			}
		}
		return challenge.ErrIncompleteDay
	}

	if !c.Yes {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Finish day %d?", rec.CurrentDay)).
				Description("Completed days cannot be reopened.").
				Affirmative("Finish").
				Negative("Not yet").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Day left open.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	res, err := challenge.CompleteDay(&rec, now)
	if err != nil {
		return err
	}
	ctx.Progress.Save(id.UserID, rec)

	q := quotes.Random()
	if res.Finished {
		fmt.Printf("\nDAY %d COMPLETE. You finished the full %d days.\n", res.Day, constants.ChallengeLength)
		fmt.Println("The attempt is recorded in your history, and a new cycle starts at day 1.")
	} else {
		fmt.Printf("\nDAY %d COMPLETE.\n", res.Day)
		fmt.Printf("%d days remaining.\n", challenge.DaysRemaining(res.Day))
	}
	fmt.Printf("\n  %q\n      %s\n", q.Text, q.Author)
	return nil
}
