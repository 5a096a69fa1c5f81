package storage

import (
	"errors"

	"github.com/julianstephens/ascend/internal/models"
)

// ErrRecordNotFound is returned when no challenge record exists for a user.
var ErrRecordNotFound = errors.New("challenge record not found")

// Provider is a document store of challenge records keyed by user identity.
// Writes are whole-record and last-write-wins; there is no partial update.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Records
	GetRecord(userID string) (models.ChallengeRecord, error)
	SaveRecord(userID string, rec models.ChallengeRecord) error
	DeleteRecord(userID string) error

	// Utils
	GetConfigPath() string
}
