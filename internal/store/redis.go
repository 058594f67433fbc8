package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"floorten/internal/config"
	"floorten/internal/models"
)

// RedisStore keeps the whole catalog as a single JSON document under a
// prefixed key.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{
		client: client,
		key:    cfg.KeyPrefix + "catalog",
	}, nil
}

// NewRedisStoreWithClient allows injecting a client for tests.
func NewRedisStoreWithClient(client *redis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{client: client, key: keyPrefix + "catalog"}
}

func (s *RedisStore) Load(ctx context.Context) (map[string]*models.Room, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		rooms := DefaultRooms()
		if err := s.Save(ctx, rooms); err != nil {
			return nil, err
		}
		return rooms, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return decodeCatalog(data)
}

func (s *RedisStore) Save(ctx context.Context, rooms map[string]*models.Room) error {
	data, err := encodeCatalog(rooms)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
