package models

import (
	"fmt"
	"time"
)

// AttemptStatus is the outcome of a concluded attempt
type AttemptStatus string

const (
	AttemptSuccess AttemptStatus = "SUCCESS"
	AttemptFailed  AttemptStatus = "FAILED"
)

// TaskSet records completion of the seven fixed daily tasks. The challenge
// defines exactly these tasks; holding them as struct fields keeps the
// persisted shape closed against extra keys.
type TaskSet struct {
	Workout1 bool `json:"workout1"`
	Workout2 bool `json:"workout2"`
	Diet     bool `json:"diet"`
	Reading  bool `json:"reading"`
	Skill    bool `json:"skill"`
	Water    bool `json:"water"`
	Photo    bool `json:"photo"`
}

// TaskKeys lists the task keys in display order.
var TaskKeys = []string{
	TaskWorkout1,
	TaskWorkout2,
	TaskDiet,
	TaskReading,
	TaskSkill,
	TaskWater,
	TaskPhoto,
}

const (
	TaskWorkout1 = "workout1"
	TaskWorkout2 = "workout2"
	TaskDiet     = "diet"
	TaskReading  = "reading"
	TaskSkill    = "skill"
	TaskWater    = "water"
	TaskPhoto    = "photo"
)

func (ts TaskSet) field(key string) *bool {
	switch key {
	case TaskWorkout1:
		return &ts.Workout1
	case TaskWorkout2:
		return &ts.Workout2
	case TaskDiet:
		return &ts.Diet
	case TaskReading:
		return &ts.Reading
	case TaskSkill:
		return &ts.Skill
	case TaskWater:
		return &ts.Water
	case TaskPhoto:
		return &ts.Photo
	}
	return nil
}

// Get returns the completion state for a task key.
func (ts TaskSet) Get(key string) (bool, error) {
	f := ts.field(key)
	if f == nil {
		return false, fmt.Errorf("unknown task key: %q", key)
	}
	return *f, nil
}

// Set returns a copy of the set with the given task key set to done.
func (ts TaskSet) Set(key string, done bool) (TaskSet, error) {
	switch key {
	case TaskWorkout1:
		ts.Workout1 = done
	case TaskWorkout2:
		ts.Workout2 = done
	case TaskDiet:
		ts.Diet = done
	case TaskReading:
		ts.Reading = done
	case TaskSkill:
		ts.Skill = done
	case TaskWater:
		ts.Water = done
	case TaskPhoto:
		ts.Photo = done
	default:
		return ts, fmt.Errorf("unknown task key: %q", key)
	}
	return ts, nil
}

// Complete reports whether all seven tasks are done.
func (ts TaskSet) Complete() bool {
	return ts.Workout1 && ts.Workout2 && ts.Diet && ts.Reading &&
		ts.Skill && ts.Water && ts.Photo
}

// Count returns the number of completed tasks.
func (ts TaskSet) Count() int {
	n := 0
	for _, key := range TaskKeys {
		if done, _ := ts.Get(key); done {
			n++
		}
	}
	return n
}

// DayLog is the per-day record of which tasks were completed
type DayLog struct {
	Date  time.Time `json:"date"`
	Day   int       `json:"day"`
	Tasks TaskSet   `json:"tasks"`
}

// AttemptRecord is one concluded run of the challenge, success or failure
type AttemptRecord struct {
	StartDate time.Time     `json:"startDate"`
	EndDate   time.Time     `json:"endDate"`
	Status    AttemptStatus `json:"status"`
	Days      int           `json:"days"`
}

// ChallengeRecord is the sole persisted aggregate: the user's position in
// the current attempt plus the log of past attempts. History is append-only
// except for the explicit clear-history action.
type ChallengeRecord struct {
	CurrentDay int             `json:"currentDay"`
	StartDate  time.Time       `json:"startDate"`
	DailyLogs  []DayLog        `json:"dailyLogs"`
	History    []AttemptRecord `json:"history"`
}

// NewChallengeRecord returns the default record created the first time a
// user is seen with no stored progress.
func NewChallengeRecord(now time.Time) ChallengeRecord {
	return ChallengeRecord{
		CurrentDay: 1,
		StartDate:  now,
		DailyLogs:  []DayLog{},
		History:    []AttemptRecord{},
	}
}

// Normalize fills in defaults for a record decoded from storage that may be
// missing keys (older writers, partial documents). Readers must treat
// missing keys as defaulted rather than failing.
func (r *ChallengeRecord) Normalize(now time.Time) {
	if r.CurrentDay < 1 {
		r.CurrentDay = 1
	}
	if r.StartDate.IsZero() {
		r.StartDate = now
	}
	if r.DailyLogs == nil {
		r.DailyLogs = []DayLog{}
	}
	if r.History == nil {
		r.History = []AttemptRecord{}
	}
}

// Clone returns a deep copy, so callers can mutate a working copy without
// aliasing the cached one.
func (r ChallengeRecord) Clone() ChallengeRecord {
	out := r
	out.DailyLogs = make([]DayLog, len(r.DailyLogs))
	copy(out.DailyLogs, r.DailyLogs)
	out.History = make([]AttemptRecord, len(r.History))
	copy(out.History, r.History)
	return out
}
