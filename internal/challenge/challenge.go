// Package challenge implements the progress state machine for the 75-day
// challenge: per-day task tracking, day completion, attempt rollover, and
// the reset path. All functions operate on an in-memory ChallengeRecord;
// persistence is the caller's concern.
package challenge

import (
	"errors"
	"time"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

// ErrIncompleteDay is returned when a day-completion is attempted while one
// or more of today's tasks is still unchecked.
var ErrIncompleteDay = errors.New("all seven daily tasks must be complete before finishing the day")

// Result describes the outcome of a successful CompleteDay call.
type Result struct {
	// Day is the challenge day that was just finished.
	Day int
	// Finished is true when the completed day was the final day of the
	// challenge and the attempt rolled over into history.
	Finished bool
}

// sameDate reports whether two timestamps fall on the same calendar date in
// the local timezone.
func sameDate(a, b time.Time) bool {
	return a.Local().Format(constants.DateFormat) == b.Local().Format(constants.DateFormat)
}

// todayLogIndex finds the log for the current day number recorded on now's
// calendar date. Both conditions are required: a log with the right day
// number but a stale date does not count, so a new calendar day always
// starts from a blank checklist.
func todayLogIndex(rec models.ChallengeRecord, now time.Time) int {
	for i, log := range rec.DailyLogs {
		if log.Day == rec.CurrentDay && sameDate(log.Date, now) {
			return i
		}
	}
	return -1
}

// TasksForToday returns the task completion set for the current day, or
// all-false defaults when no log exists for today's date and day number.
func TasksForToday(rec models.ChallengeRecord, now time.Time) models.TaskSet {
	if i := todayLogIndex(rec, now); i >= 0 {
		return rec.DailyLogs[i].Tasks
	}
	return models.TaskSet{}
}

// Toggle flips the completion state of one task for the current day and
// upserts today's log, keeping at most one log per (day, date) pair.
// Unknown task keys are rejected.
func Toggle(rec *models.ChallengeRecord, key string, now time.Time) error {
	tasks := TasksForToday(*rec, now)
	done, err := tasks.Get(key)
	if err != nil {
		return err
	}
	tasks, err = tasks.Set(key, !done)
	if err != nil {
		return err
	}
	upsertTodayLog(rec, tasks, now)
	return nil
}

func upsertTodayLog(rec *models.ChallengeRecord, tasks models.TaskSet, now time.Time) {
	if i := todayLogIndex(*rec, now); i >= 0 {
		rec.DailyLogs[i].Tasks = tasks
		return
	}
	rec.DailyLogs = append(rec.DailyLogs, models.DayLog{
		Date:  now,
		Day:   rec.CurrentDay,
		Tasks: tasks,
	})
}

// IsComplete reports whether every task in the set is done.
func IsComplete(tasks models.TaskSet) bool {
	return tasks.Complete()
}

// CompleteDay finalizes the current day and advances the day counter. The
// completion is rejected with ErrIncompleteDay unless all of today's tasks
// are checked. Finishing the final day appends a SUCCESS attempt to history
// and restarts the cycle at day 1 with a fresh start date and empty logs.
func CompleteDay(rec *models.ChallengeRecord, now time.Time) (Result, error) {
	tasks := TasksForToday(*rec, now)
	if !IsComplete(tasks) {
		return Result{}, ErrIncompleteDay
	}

	// The incremental per-toggle log and the finalization log are unified:
	// a single upsert is the authoritative record of the finished day.
	upsertTodayLog(rec, tasks, now)

	res := Result{Day: rec.CurrentDay}
	rec.CurrentDay++

	if rec.CurrentDay > constants.ChallengeLength {
		rec.History = append(rec.History, models.AttemptRecord{
			StartDate: rec.StartDate,
			EndDate:   now,
			Status:    models.AttemptSuccess,
			Days:      constants.ChallengeLength,
		})
		rec.CurrentDay = 1
		rec.StartDate = now
		rec.DailyLogs = []models.DayLog{}
		res.Finished = true
	}

	return res, nil
}

// Reset abandons the current attempt, recording it in history as FAILED,
// and restarts the cycle immediately. It is available regardless of task
// state; even a same-day reset counts as one day attempted.
func Reset(rec *models.ChallengeRecord, now time.Time) models.AttemptRecord {
	days := rec.CurrentDay - 1
	if days < 1 {
		days = 1
	}
	attempt := models.AttemptRecord{
		StartDate: rec.StartDate,
		EndDate:   now,
		Status:    models.AttemptFailed,
		Days:      days,
	}
	rec.History = append(rec.History, attempt)
	rec.CurrentDay = 1
	rec.StartDate = now
	rec.DailyLogs = []models.DayLog{}
	return attempt
}

// ClearHistory empties the attempt history without touching the current
// attempt. It does not create an AttemptRecord.
func ClearHistory(rec *models.ChallengeRecord) {
	rec.History = []models.AttemptRecord{}
}

// Progress returns the fraction of the challenge completed so far, in the
// range [0, 1], for the history view's progress bar.
func Progress(rec models.ChallengeRecord) float64 {
	return float64(rec.CurrentDay) / float64(constants.ChallengeLength)
}

// DaysRemaining returns the number of days left after the given day is
// finished.
func DaysRemaining(day int) int {
	if day >= constants.ChallengeLength {
		return 0
	}
	return constants.ChallengeLength - day
}
