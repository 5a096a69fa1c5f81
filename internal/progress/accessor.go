// Package progress mediates all reads and writes of challenge records. The
// accessor never fails a load: when the backend is unreachable it falls back
// to the in-memory copy, then the local cache file, then a fresh default
// record, so the UI always has something coherent to show.
package progress

import (
	"errors"
	"time"

	"github.com/julianstephens/ascend/internal/logger"
	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/storage"
)

// Accessor layers an in-memory copy and a cache file over a storage backend.
type Accessor struct {
	store storage.Provider
	cache *storage.JSONStore
	mem   map[string]models.ChallengeRecord
	now   func() time.Time
}

// New creates an accessor over the given backend. cache may be nil, in which
// case fallback stops at the in-memory copy.
func New(store storage.Provider, cache *storage.JSONStore) *Accessor {
	return &Accessor{
		store: store,
		cache: cache,
		mem:   make(map[string]models.ChallengeRecord),
		now:   time.Now,
	}
}

// Load returns the user's record. A missing record is created with defaults
// and persisted; a backend failure falls back without surfacing an error.
func (a *Accessor) Load(userID string) models.ChallengeRecord {
	rec, err := a.store.GetRecord(userID)
	if err == nil {
		rec.Normalize(a.now())
		a.mem[userID] = rec.Clone()
		return rec
	}

	if errors.Is(err, storage.ErrRecordNotFound) {
		rec = models.NewChallengeRecord(a.now())
		a.Save(userID, rec)
		return rec
	}

	logger.Warn("Failed to load record from backend, using fallback", "error", err)

	if rec, ok := a.mem[userID]; ok {
		return rec.Clone()
	}

	if a.cache != nil {
		if err := a.cache.LoadOrInit(); err == nil {
			if rec, err := a.cache.GetRecord(userID); err == nil {
				a.mem[userID] = rec.Clone()
				return rec
			}
		}
	}

	return models.NewChallengeRecord(a.now())
}

// Save writes the record through to the in-memory copy, the cache file, and
// the backend. Backend failures are logged, not surfaced: the local copies
// keep the session usable and the next Save retries.
func (a *Accessor) Save(userID string, rec models.ChallengeRecord) {
	a.mem[userID] = rec.Clone()

	if a.cache != nil {
		if err := a.cache.LoadOrInit(); err != nil {
			logger.Warn("Failed to open cache file", "error", err)
		} else if err := a.cache.SaveRecord(userID, rec); err != nil {
			logger.Warn("Failed to write cache file", "error", err)
		}
	}

	if err := a.store.SaveRecord(userID, rec); err != nil {
		logger.Warn("Failed to save record to backend", "error", err)
	}
}

// Delete removes the user's record everywhere. Unlike Load and Save this
// surfaces backend errors, deleting data should not silently half-succeed.
func (a *Accessor) Delete(userID string) error {
	delete(a.mem, userID)

	if a.cache != nil {
		if err := a.cache.LoadOrInit(); err == nil {
			if err := a.cache.DeleteRecord(userID); err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
				logger.Warn("Failed to remove cached record", "error", err)
			}
		}
	}

	return a.store.DeleteRecord(userID)
}
