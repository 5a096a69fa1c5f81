package storage

import (
	"errors"

	"github.com/julianstephens/ascend/internal/models"
	redisstore "github.com/julianstephens/ascend/internal/storage/redis"
)

// RedisStore adapts redis.Store to the Provider interface.
type RedisStore struct {
	store *redisstore.Store
}

func NewRedisStore(url string) *RedisStore {
	return &RedisStore{store: redisstore.NewStore(url)}
}

func (s *RedisStore) Init() error  { return s.store.Init() }
func (s *RedisStore) Load() error  { return s.store.Load() }
func (s *RedisStore) Close() error { return s.store.Close() }

func (s *RedisStore) GetConfigPath() string { return s.store.GetConfigPath() }

func (s *RedisStore) GetRecord(userID string) (models.ChallengeRecord, error) {
	rec, err := s.store.GetRecord(userID)
	if errors.Is(err, redisstore.ErrNotFound) {
		return models.ChallengeRecord{}, ErrRecordNotFound
	}
	return rec, err
}

func (s *RedisStore) SaveRecord(userID string, rec models.ChallengeRecord) error {
	return s.store.SaveRecord(userID, rec)
}

func (s *RedisStore) DeleteRecord(userID string) error {
	err := s.store.DeleteRecord(userID)
	if errors.Is(err, redisstore.ErrNotFound) {
		return ErrRecordNotFound
	}
	return err
}
