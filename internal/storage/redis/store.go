// Package redis stores each user's record as a JSON document in Redis,
// keyed by user ID. It suits shared deployments where a relational schema
// is more than the data needs.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

var ErrNotFound = errors.New("record not found")

type Store struct {
	url    string
	client *redis.Client
}

func NewStore(url string) *Store {
	return &Store{url: url}
}

func (s *Store) connect() error {
	opt, err := redis.ParseURL(s.url)
	if err != nil {
		return fmt.Errorf("invalid Redis URL: %w", err)
	}

	opt.MaxRetries = 5
	opt.MinRetryBackoff = 300 * time.Millisecond
	opt.MaxRetryBackoff = 3 * time.Second
	opt.DialTimeout = 10 * time.Second
	opt.ReadTimeout = 5 * time.Second
	opt.WriteTimeout = 5 * time.Second
	opt.PoolSize = 5

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	s.client = client
	return nil
}

func (s *Store) Init() error {
	if s.client != nil {
		return nil
	}
	return s.connect()
}

// Load is identical to Init for Redis, there is no schema to validate.
func (s *Store) Load() error {
	return s.Init()
}

func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func recordKey(userID string) string {
	return constants.AppName + ":record:" + userID
}

func (s *Store) GetRecord(userID string) (models.ChallengeRecord, error) {
	ctx := context.Background()

	data, err := s.client.Get(ctx, recordKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.ChallengeRecord{}, ErrNotFound
		}
		return models.ChallengeRecord{}, err
	}

	var rec models.ChallengeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.ChallengeRecord{}, fmt.Errorf("failed to decode record: %w", err)
	}

	return rec, nil
}

func (s *Store) SaveRecord(userID string, rec models.ChallengeRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	return s.client.Set(context.Background(), recordKey(userID), data, 0).Err()
}

func (s *Store) DeleteRecord(userID string) error {
	n, err := s.client.Del(context.Background(), recordKey(userID)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	// Never expose the connection URL.
	return "redis"
}
