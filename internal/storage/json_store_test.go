package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

func setupJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "ascend.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store
}

func TestJSONStoreInitRefusesExisting(t *testing.T) {
	store := setupJSONStore(t)
	if err := store.Init(); err == nil {
		t.Error("Init on an existing file should fail")
	}
}

func TestJSONStoreLoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("Load on a missing file should fail")
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	store := setupJSONStore(t)

	rec := models.NewChallengeRecord(time.Now())
	rec.CurrentDay = 7
	rec.DailyLogs = append(rec.DailyLogs, models.DayLog{
		Date:  time.Now(),
		Day:   7,
		Tasks: models.TaskSet{Workout1: true},
	})
	if err := store.SaveRecord(constants.LocalUserID, rec); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	// Reload from disk to prove persistence.
	fresh := NewJSONStore(store.GetConfigPath())
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := fresh.GetRecord(constants.LocalUserID)
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if got.CurrentDay != 7 || len(got.DailyLogs) != 1 || !got.DailyLogs[0].Tasks.Workout1 {
		t.Errorf("record did not round-trip: %+v", got)
	}
}

func TestJSONStoreGetMissingRecord(t *testing.T) {
	store := setupJSONStore(t)
	_, err := store.GetRecord("nobody")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestJSONStoreDeleteRecord(t *testing.T) {
	store := setupJSONStore(t)
	rec := models.NewChallengeRecord(time.Now())
	if err := store.SaveRecord("u1", rec); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	if err := store.DeleteRecord("u1"); err != nil {
		t.Fatalf("DeleteRecord failed: %v", err)
	}
	if _, err := store.GetRecord("u1"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("record still present after delete")
	}
	if err := store.DeleteRecord("u1"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("second delete should report not found, got %v", err)
	}
}

func TestJSONStoreReturnsCopies(t *testing.T) {
	store := setupJSONStore(t)
	rec := models.NewChallengeRecord(time.Now())
	rec.DailyLogs = append(rec.DailyLogs, models.DayLog{Day: 1})
	if err := store.SaveRecord("u1", rec); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	got, _ := store.GetRecord("u1")
	got.DailyLogs[0].Day = 99

	again, _ := store.GetRecord("u1")
	if again.DailyLogs[0].Day == 99 {
		t.Error("GetRecord must return an isolated copy")
	}
}

func TestJSONStoreLoadOrInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	store := NewJSONStore(path)

	if err := store.LoadOrInit(); err != nil {
		t.Fatalf("LoadOrInit on a fresh path failed: %v", err)
	}
	if err := store.SaveRecord("u1", models.NewChallengeRecord(time.Now())); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	again := NewJSONStore(path)
	if err := again.LoadOrInit(); err != nil {
		t.Fatalf("LoadOrInit on an existing file failed: %v", err)
	}
	if _, err := again.GetRecord("u1"); err != nil {
		t.Errorf("record lost across LoadOrInit: %v", err)
	}
}
