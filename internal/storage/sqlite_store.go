package storage

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/storage/sqlite"
)

// SQLiteStore adapts sqlite.Store to the Provider interface.
type SQLiteStore struct {
	store *sqlite.Store
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{store: sqlite.NewStore(path)}
}

func (s *SQLiteStore) Init() error  { return s.store.Init() }
func (s *SQLiteStore) Load() error  { return s.store.Load() }
func (s *SQLiteStore) Close() error { return s.store.Close() }

func (s *SQLiteStore) GetConfigPath() string { return s.store.GetConfigPath() }

func (s *SQLiteStore) GetRecord(userID string) (models.ChallengeRecord, error) {
	rec, err := s.store.GetRecord(userID)
	if errors.Is(err, sqlite.ErrNotFound) {
		return models.ChallengeRecord{}, ErrRecordNotFound
	}
	return rec, err
}

func (s *SQLiteStore) SaveRecord(userID string, rec models.ChallengeRecord) error {
	return s.store.SaveRecord(userID, rec)
}

func (s *SQLiteStore) DeleteRecord(userID string) error {
	err := s.store.DeleteRecord(userID)
	if errors.Is(err, sqlite.ErrNotFound) {
		return ErrRecordNotFound
	}
	return err
}

// Migrate applies pending schema migrations.
func (s *SQLiteStore) Migrate(report func(msg string)) (int, error) {
	return s.store.Migrate(report)
}

// GetDB exposes the underlying handle for diagnostics and backups.
func (s *SQLiteStore) GetDB() *sql.DB { return s.store.GetDB() }
