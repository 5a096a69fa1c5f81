package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/ascend/internal/models"
)

// fileStore is the on-disk shape of the JSON backend: one document per user.
type fileStore struct {
	Version int                               `json:"version"`
	Records map[string]models.ChallengeRecord `json:"records"`
}

// JSONStore is a single-file document store. It serves two roles: the
// simplest local backend, and the accessor's write-through cache file that
// covers remote-backend outages.
type JSONStore struct {
	path  string
	store *fileStore
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &fileStore{
		Version: 1,
		Records: make(map[string]models.ChallengeRecord),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'ascend init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &fileStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if s.store.Records == nil {
		s.store.Records = make(map[string]models.ChallengeRecord)
	}

	return nil
}

// LoadOrInit loads the file if it exists and creates it otherwise. Used for
// the cache role, where "not initialized" is not an error.
func (s *JSONStore) LoadOrInit() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return s.Init()
	}
	return s.Load()
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetRecord(userID string) (models.ChallengeRecord, error) {
	if s.store == nil {
		return models.ChallengeRecord{}, fmt.Errorf("storage not loaded")
	}

	rec, ok := s.store.Records[userID]
	if !ok {
		return models.ChallengeRecord{}, ErrRecordNotFound
	}
	rec.Normalize(time.Now())
	return rec.Clone(), nil
}

func (s *JSONStore) SaveRecord(userID string, rec models.ChallengeRecord) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Records[userID] = rec.Clone()
	return s.save()
}

func (s *JSONStore) DeleteRecord(userID string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Records[userID]; !ok {
		return ErrRecordNotFound
	}
	delete(s.store.Records, userID)
	return s.save()
}

// GetConfigPath returns the path of the underlying storage file.
//
// Concurrency note: JSONStore is not safe for concurrent use by multiple
// goroutines or processes sharing the same path.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
