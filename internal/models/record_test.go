package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRecordWireShape(t *testing.T) {
	rec := NewChallengeRecord(time.Date(2026, 4, 1, 6, 0, 0, 0, time.UTC))
	rec.CurrentDay = 3
	rec.DailyLogs = append(rec.DailyLogs, DayLog{
		Date:  rec.StartDate,
		Day:   1,
		Tasks: TaskSet{Workout1: true, Water: true},
	})
	rec.History = append(rec.History, AttemptRecord{
		StartDate: rec.StartDate.AddDate(0, -3, 0),
		EndDate:   rec.StartDate,
		Status:    AttemptFailed,
		Days:      12,
	})

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}
	for _, key := range []string{"currentDay", "startDate", "dailyLogs", "history"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("serialized record missing key %q", key)
		}
	}

	var logs []map[string]json.RawMessage
	if err := json.Unmarshal(doc["dailyLogs"], &logs); err != nil {
		t.Fatalf("unmarshal dailyLogs failed: %v", err)
	}
	var tasks map[string]bool
	if err := json.Unmarshal(logs[0]["tasks"], &tasks); err != nil {
		t.Fatalf("unmarshal tasks failed: %v", err)
	}
	for _, key := range TaskKeys {
		if _, ok := tasks[key]; !ok {
			t.Errorf("serialized tasks missing key %q", key)
		}
	}
	if len(tasks) != len(TaskKeys) {
		t.Errorf("serialized tasks has %d keys, want %d", len(tasks), len(TaskKeys))
	}
}

func TestNormalizeDefaultsMissingKeys(t *testing.T) {
	now := time.Now()

	var rec ChallengeRecord
	if err := json.Unmarshal([]byte(`{}`), &rec); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	rec.Normalize(now)

	if rec.CurrentDay != 1 {
		t.Errorf("CurrentDay = %d, want 1", rec.CurrentDay)
	}
	if !rec.StartDate.Equal(now) {
		t.Errorf("StartDate = %v, want %v", rec.StartDate, now)
	}
	if rec.DailyLogs == nil || rec.History == nil {
		t.Error("slices must be non-nil after Normalize")
	}
}

func TestNormalizeKeepsKnownValues(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	rec := ChallengeRecord{CurrentDay: 30, StartDate: start}
	rec.Normalize(time.Now())

	if rec.CurrentDay != 30 {
		t.Errorf("CurrentDay = %d, want 30", rec.CurrentDay)
	}
	if !rec.StartDate.Equal(start) {
		t.Errorf("StartDate changed by Normalize")
	}
}

func TestTaskSetGetSet(t *testing.T) {
	var ts TaskSet

	updated, err := ts.Set(TaskDiet, true)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if done, _ := ts.Get(TaskDiet); done {
		t.Error("Set must not mutate the receiver")
	}
	if done, _ := updated.Get(TaskDiet); !done {
		t.Error("Set result does not reflect the change")
	}

	if _, err := ts.Get("stretching"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := ts.Set("stretching", true); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestTaskSetCountAndComplete(t *testing.T) {
	var ts TaskSet
	if ts.Count() != 0 || ts.Complete() {
		t.Error("zero value must be empty and incomplete")
	}

	for _, key := range TaskKeys {
		ts, _ = ts.Set(key, true)
	}
	if ts.Count() != len(TaskKeys) || !ts.Complete() {
		t.Errorf("all-set TaskSet: count=%d complete=%v", ts.Count(), ts.Complete())
	}
}

func TestCloneIsDeep(t *testing.T) {
	rec := NewChallengeRecord(time.Now())
	rec.DailyLogs = append(rec.DailyLogs, DayLog{Day: 1})
	rec.History = append(rec.History, AttemptRecord{Days: 5})

	clone := rec.Clone()
	clone.DailyLogs[0].Day = 99
	clone.History[0].Days = 99

	if rec.DailyLogs[0].Day == 99 || rec.History[0].Days == 99 {
		t.Error("Clone shares slice storage with the original")
	}
}

func TestTaskDefinitionsHIITCadence(t *testing.T) {
	plain := TaskDefinitions(9)[1]
	hiit := TaskDefinitions(10)[1]

	if plain.Key != TaskWorkout2 || hiit.Key != TaskWorkout2 {
		t.Fatal("second entry should be the second workout")
	}
	if plain.Description == hiit.Description {
		t.Error("every 10th day should change the second workout description")
	}
	if TaskDefinitions(20)[1].Description != hiit.Description {
		t.Error("day 20 should use the high-intensity description too")
	}
}
