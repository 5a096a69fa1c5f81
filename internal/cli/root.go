package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ascend/internal/auth"
	"github.com/julianstephens/ascend/internal/backup"
	"github.com/julianstephens/ascend/internal/challenge"
	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/logger"
	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/progress"
	"github.com/julianstephens/ascend/internal/storage"
)

// Context carries the wired collaborators into every command's Run method.
type Context struct {
	Store    storage.Provider
	Progress *progress.Accessor
	Session  *auth.Session

	// Remote is true when the backend is shared (Postgres or Redis) and
	// records are keyed by a signed-in identity.
	Remote bool
}

// Identity resolves who the current command acts as. Remote backends need a
// session from the keyring; local file stores use the fixed local identity.
func (c *Context) Identity() (auth.Identity, error) {
	if c.Remote {
		return c.Session.CurrentUser()
	}
	return auth.LocalIdentity(), nil
}

// PerformAutomaticBackup snapshots local storage before a destructive
// command. Failures are logged, never allowed to interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	if c.Remote {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FormatProgressBar renders a fixed-width text progress bar for day n of the
// challenge, e.g. [██████----------] Day 30/75.
func FormatProgressBar(day int, width int) string {
	if width < 1 {
		width = 20
	}
	filled := day * width / constants.ChallengeLength
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("-", width-filled)
	return fmt.Sprintf("[%s] Day %d/%d", bar, day, constants.ChallengeLength)
}

// FormatTaskLine renders one checklist row for terminal output.
func FormatTaskLine(def models.TaskDefinition, done bool) string {
	mark := "○"
	if done {
		mark = "✓"
	}
	return fmt.Sprintf("  %s %-10s %s", mark, def.Key, def.Label)
}

// FormatAttempt renders one history row.
func FormatAttempt(a models.AttemptRecord) string {
	return fmt.Sprintf("  %s  %s to %s  (%d days)",
		a.Status,
		a.StartDate.Local().Format(constants.DateFormat),
		a.EndDate.Local().Format(constants.DateFormat),
		a.Days)
}

// CountDone returns how many of today's tasks are checked.
func CountDone(tasks models.TaskSet) int {
	return tasks.Count()
}

// DayHeadline is the line shown at the top of the today and status views.
func DayHeadline(rec models.ChallengeRecord) string {
	return fmt.Sprintf("Day %d of %d, %d days remaining",
		rec.CurrentDay, constants.ChallengeLength, challenge.DaysRemaining(rec.CurrentDay))
}
