package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fixora/config"
	"fixora/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	draftPrefix   = "sessionDraft:"
	pendingPrefix = "pendingBooking:"
	sessionPrefix = "authSession:"
	cachedPrefix  = "cachedRequests:"

	draftTTL = 24 * time.Hour
)

// RedisStore shares draft state across tabs on the same machine. Keys
// are scoped by a stable client identifier (device ID). The pending
// booking carries no TTL: it is cleared manually, never by expiry.
type RedisStore struct {
	client   *redis.Client
	clientID string
}

// NewRedisStore connects using the loaded app configuration. An empty
// clientID gets a generated one, scoping the draft to this process.
func NewRedisStore(clientID string) (*RedisStore, error) {
	if clientID == "" {
		clientID = uuid.NewString()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDraftDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisStore{client: client, clientID: clientID}, nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) getJSON(key string, target any) (bool, error) {
	ctx := context.Background()
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(data), target); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (s *RedisStore) setJSON(key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	ctx := context.Background()
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) SaveDraft(partial models.SessionDraftRecord) error {
	current, err := s.ReadDraft()
	if err != nil {
		return err
	}
	current.Merge(partial)
	return s.setJSON(draftPrefix+s.clientID, current, draftTTL)
}

func (s *RedisStore) ReadDraft() (models.SessionDraftRecord, error) {
	var record models.SessionDraftRecord
	if _, err := s.getJSON(draftPrefix+s.clientID, &record); err != nil {
		return models.SessionDraftRecord{}, err
	}
	return record, nil
}

func (s *RedisStore) ClearDraft() error {
	return s.client.Del(context.Background(), draftPrefix+s.clientID).Err()
}

func (s *RedisStore) SavePending(pending models.PendingBooking) error {
	return s.setJSON(pendingPrefix+s.clientID, pending, 0)
}

func (s *RedisStore) ReadPending() (*models.PendingBooking, error) {
	var pending models.PendingBooking
	found, err := s.getJSON(pendingPrefix+s.clientID, &pending)
	if err != nil || !found {
		return nil, err
	}
	return &pending, nil
}

func (s *RedisStore) ClearPending() error {
	return s.client.Del(context.Background(), pendingPrefix+s.clientID).Err()
}

// Sessions carry no TTL: restore rejects stale tokens, and logout
// clears the key.
func (s *RedisStore) SaveSession(session models.AuthSession) error {
	return s.setJSON(sessionPrefix+s.clientID, session, 0)
}

func (s *RedisStore) ReadSession() (*models.AuthSession, error) {
	var session models.AuthSession
	found, err := s.getJSON(sessionPrefix+s.clientID, &session)
	if err != nil || !found {
		return nil, err
	}
	return &session, nil
}

func (s *RedisStore) ClearSession() error {
	return s.client.Del(context.Background(), sessionPrefix+s.clientID).Err()
}

func (s *RedisStore) CacheRequests(items []models.RequestItem) error {
	return s.setJSON(cachedPrefix+s.clientID, items, draftTTL)
}

func (s *RedisStore) CachedRequests() ([]models.RequestItem, error) {
	var items []models.RequestItem
	if _, err := s.getJSON(cachedPrefix+s.clientID, &items); err != nil {
		return nil, err
	}
	return items, nil
}
