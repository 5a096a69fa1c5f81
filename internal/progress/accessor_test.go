package progress

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/storage"
)

// flakyStore fails every call once failing is set, simulating a remote
// backend outage.
type flakyStore struct {
	records map[string]models.ChallengeRecord
	failing bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{records: make(map[string]models.ChallengeRecord)}
}

var errDown = errors.New("backend unreachable")

func (s *flakyStore) Init() error          { return nil }
func (s *flakyStore) Load() error          { return nil }
func (s *flakyStore) Close() error         { return nil }
func (s *flakyStore) GetConfigPath() string { return "flaky" }

func (s *flakyStore) GetRecord(userID string) (models.ChallengeRecord, error) {
	if s.failing {
		return models.ChallengeRecord{}, errDown
	}
	rec, ok := s.records[userID]
	if !ok {
		return models.ChallengeRecord{}, storage.ErrRecordNotFound
	}
	return rec.Clone(), nil
}

func (s *flakyStore) SaveRecord(userID string, rec models.ChallengeRecord) error {
	if s.failing {
		return errDown
	}
	s.records[userID] = rec.Clone()
	return nil
}

func (s *flakyStore) DeleteRecord(userID string) error {
	if s.failing {
		return errDown
	}
	if _, ok := s.records[userID]; !ok {
		return storage.ErrRecordNotFound
	}
	delete(s.records, userID)
	return nil
}

func TestLoadCreatesDefaultRecord(t *testing.T) {
	store := newFlakyStore()
	acc := New(store, nil)

	rec := acc.Load("u1")
	if rec.CurrentDay != 1 {
		t.Errorf("CurrentDay = %d, want 1", rec.CurrentDay)
	}
	if _, ok := store.records["u1"]; !ok {
		t.Error("default record should be persisted to the backend")
	}
}

func TestLoadFallsBackToMemory(t *testing.T) {
	store := newFlakyStore()
	acc := New(store, nil)

	rec := acc.Load("u1")
	rec.CurrentDay = 10
	acc.Save("u1", rec)

	store.failing = true
	got := acc.Load("u1")
	if got.CurrentDay != 10 {
		t.Errorf("expected in-memory fallback with CurrentDay 10, got %d", got.CurrentDay)
	}
}

func TestLoadFallsBackToCacheFile(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cache.json")
	store := newFlakyStore()

	// One accessor writes through to the cache file.
	first := New(store, storage.NewJSONStore(cachePath))
	rec := first.Load("u1")
	rec.CurrentDay = 23
	first.Save("u1", rec)

	// A second accessor with no memory of u1 and a dead backend must find
	// the cached copy.
	store.failing = true
	second := New(store, storage.NewJSONStore(cachePath))
	got := second.Load("u1")
	if got.CurrentDay != 23 {
		t.Errorf("expected cache-file fallback with CurrentDay 23, got %d", got.CurrentDay)
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	store := newFlakyStore()
	store.failing = true
	acc := New(store, nil)

	rec := acc.Load("u1")
	if rec.CurrentDay != 1 || len(rec.DailyLogs) != 0 {
		t.Errorf("expected a default record, got %+v", rec)
	}
}

func TestSaveSurvivesBackendFailure(t *testing.T) {
	store := newFlakyStore()
	acc := New(store, nil)

	rec := acc.Load("u1")
	store.failing = true

	rec.CurrentDay = 5
	acc.Save("u1", rec)

	got := acc.Load("u1")
	if got.CurrentDay != 5 {
		t.Errorf("in-memory copy lost on backend failure: %d", got.CurrentDay)
	}
}

func TestLoadNormalizesBackendRecord(t *testing.T) {
	store := newFlakyStore()
	// A record with missing fields, as an older writer might store it.
	store.records["u1"] = models.ChallengeRecord{}

	acc := New(store, nil)
	rec := acc.Load("u1")
	if rec.CurrentDay != 1 || rec.StartDate.IsZero() || rec.DailyLogs == nil {
		t.Errorf("record not normalized: %+v", rec)
	}
}

func TestDeleteSurfacesBackendErrors(t *testing.T) {
	store := newFlakyStore()
	acc := New(store, nil)
	acc.Save("u1", models.NewChallengeRecord(time.Now()))

	store.failing = true
	if err := acc.Delete("u1"); !errors.Is(err, errDown) {
		t.Errorf("expected backend error to surface, got %v", err)
	}
}
