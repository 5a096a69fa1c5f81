package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/ascend/internal/challenge"
	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}

	rec := ctx.Progress.Load(id.UserID)
	tasks := challenge.TasksForToday(rec, time.Now())

	fmt.Println(DayHeadline(rec))
	fmt.Println(FormatProgressBar(rec.CurrentDay, 30))
	fmt.Printf("Started:   %s\n", rec.StartDate.Local().Format(constants.DateFormat))
	fmt.Printf("Today:     %d of %d tasks done\n", tasks.Count(), len(models.TaskKeys))
	fmt.Printf("Logged:    %d days this attempt\n", len(rec.DailyLogs))
	fmt.Printf("Attempts:  %d recorded\n", len(rec.History))
	return nil
}
