package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/ascend/internal/challenge"
	"github.com/julianstephens/ascend/internal/models"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}

	now := time.Now()
	rec := ctx.Progress.Load(id.UserID)
	tasks := challenge.TasksForToday(rec, now)

	fmt.Println(DayHeadline(rec))
	fmt.Println(FormatProgressBar(rec.CurrentDay, 30))
	fmt.Println()
	for _, def := range models.TaskDefinitions(rec.CurrentDay) {
		done, _ := tasks.Get(def.Key)
		fmt.Println(FormatTaskLine(def, done))
	}
	fmt.Println()

	if challenge.IsComplete(tasks) {
		fmt.Println("All tasks done. Run 'ascend complete' to finish the day.")
	} else {
		fmt.Printf("%d of %d tasks done. Toggle with 'ascend check <task>'.\n",
			tasks.Count(), len(models.TaskKeys))
	}
	return nil
}

type CheckCmd struct {
	Task string `arg:"" help:"Task key to toggle (workout1, workout2, diet, reading, skill, water, photo)."`
}

func (c *CheckCmd) Run(ctx *Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}

	now := time.Now()
	rec := ctx.Progress.Load(id.UserID)

	if err := challenge.Toggle(&rec, c.Task, now); err != nil {
		return err
	}
	ctx.Progress.Save(id.UserID, rec)

	tasks := challenge.TasksForToday(rec, now)
	done, _ := tasks.Get(c.Task)
	if done {
		fmt.Printf("Checked %s.\n", c.Task)
	} else {
		fmt.Printf("Unchecked %s.\n", c.Task)
	}

	if challenge.IsComplete(tasks) {
		fmt.Println("All tasks done. Run 'ascend complete' to finish the day.")
	}
	return nil
}
