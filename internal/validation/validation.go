// Package validation checks challenge records for internal consistency.
// It is advisory: issues are reported for the doctor command, never used to
// block a load.
package validation

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

// Issue describes a single consistency problem in a record.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Check inspects a record and returns all issues found. An empty slice means
// the record is consistent.
func Check(rec models.ChallengeRecord) []Issue {
	var issues []Issue

	if rec.CurrentDay < 1 || rec.CurrentDay > constants.ChallengeLength {
		issues = append(issues, Issue{
			Field:   "currentDay",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", constants.ChallengeLength, rec.CurrentDay),
		})
	}

	if rec.StartDate.IsZero() {
		issues = append(issues, Issue{Field: "startDate", Message: "is not set"})
	}

	seen := make(map[string]bool)
	prevDay := 0
	for i, log := range rec.DailyLogs {
		field := fmt.Sprintf("dailyLogs[%d]", i)

		if log.Day < 1 || log.Day > constants.ChallengeLength {
			issues = append(issues, Issue{
				Field:   field,
				Message: fmt.Sprintf("day %d is out of range", log.Day),
			})
		}
		// Logs are unique per (day, calendar date): a partial log from
		// before midnight legitimately shares its day number with the
		// fresh one started after it.
		date := log.Date.Local().Format(constants.DateFormat)
		key := fmt.Sprintf("%d/%s", log.Day, date)
		if seen[key] {
			issues = append(issues, Issue{
				Field:   field,
				Message: fmt.Sprintf("duplicate entry for day %d on %s", log.Day, date),
			})
		}
		seen[key] = true

		if log.Day < prevDay {
			issues = append(issues, Issue{
				Field:   field,
				Message: fmt.Sprintf("day %d appears after day %d, logs must be in order", log.Day, prevDay),
			})
		}
		prevDay = log.Day

		if log.Date.IsZero() {
			issues = append(issues, Issue{Field: field, Message: "date is not set"})
		}
	}

	for i, a := range rec.History {
		field := fmt.Sprintf("history[%d]", i)

		if a.Status != models.AttemptSuccess && a.Status != models.AttemptFailed {
			issues = append(issues, Issue{
				Field:   field,
				Message: fmt.Sprintf("unknown status %q", a.Status),
			})
		}
		if a.Days < 1 || a.Days > constants.ChallengeLength {
			issues = append(issues, Issue{
				Field:   field,
				Message: fmt.Sprintf("days %d is out of range", a.Days),
			})
		}
		if a.Status == models.AttemptSuccess && a.Days != constants.ChallengeLength {
			issues = append(issues, Issue{
				Field:   field,
				Message: fmt.Sprintf("successful attempt must record %d days, got %d", constants.ChallengeLength, a.Days),
			})
		}
		if !a.StartDate.IsZero() && !a.EndDate.IsZero() && a.EndDate.Before(a.StartDate) {
			issues = append(issues, Issue{Field: field, Message: "ends before it starts"})
		}
	}

	return issues
}

// rawLog mirrors the wire shape of a daily log with the task map left open,
// so unknown task keys can be detected.
type rawLog struct {
	Tasks map[string]json.RawMessage `json:"tasks"`
}

type rawRecord struct {
	DailyLogs []rawLog `json:"dailyLogs"`
}

// CheckRaw flags task keys in a serialized record that this version does not
// recognize. Unknown keys survive a round trip silently, which usually means
// the record was written by a newer version.
func CheckRaw(data []byte) []Issue {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return []Issue{{Field: "record", Message: fmt.Sprintf("not valid JSON: %v", err)}}
	}

	known := make(map[string]bool, len(models.TaskKeys))
	for _, k := range models.TaskKeys {
		known[k] = true
	}

	var issues []Issue
	for i, log := range raw.DailyLogs {
		for key := range log.Tasks {
			if !known[key] {
				issues = append(issues, Issue{
					Field:   fmt.Sprintf("dailyLogs[%d].tasks", i),
					Message: fmt.Sprintf("unknown task key %q", key),
				})
			}
		}
	}

	return issues
}
