package storage

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/storage/postgres"
)

// PostgresStore adapts postgres.Store to the Provider interface.
type PostgresStore struct {
	store *postgres.Store
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{store: postgres.NewStore(connStr)}
}

// ValidatePostgresConnString checks a connection string before it is stored
// in the keyring.
func ValidatePostgresConnString(connStr string) (bool, error) {
	return postgres.ValidateConnString(connStr)
}

func (s *PostgresStore) Init() error  { return s.store.Init() }
func (s *PostgresStore) Load() error  { return s.store.Load() }
func (s *PostgresStore) Close() error { return s.store.Close() }

func (s *PostgresStore) GetConfigPath() string { return s.store.GetConfigPath() }

func (s *PostgresStore) GetRecord(userID string) (models.ChallengeRecord, error) {
	rec, err := s.store.GetRecord(userID)
	if errors.Is(err, postgres.ErrNotFound) {
		return models.ChallengeRecord{}, ErrRecordNotFound
	}
	return rec, err
}

func (s *PostgresStore) SaveRecord(userID string, rec models.ChallengeRecord) error {
	return s.store.SaveRecord(userID, rec)
}

func (s *PostgresStore) DeleteRecord(userID string) error {
	err := s.store.DeleteRecord(userID)
	if errors.Is(err, postgres.ErrNotFound) {
		return ErrRecordNotFound
	}
	return err
}

// Migrate applies pending schema migrations.
func (s *PostgresStore) Migrate(report func(msg string)) (int, error) {
	return s.store.Migrate(report)
}

// GetDB exposes the underlying handle for diagnostics.
func (s *PostgresStore) GetDB() *sql.DB { return s.store.GetDB() }
