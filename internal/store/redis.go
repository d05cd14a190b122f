package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/go-redis/redis/v8"

	"mockapi/internal/mockgen"
)

const redisKeyPrefix = "mockapi"

// RedisStore provides schema persistence in Redis. Each schema is a JSON
// string under schema:<subject>:<endpoint>; a per-subject set indexes the
// endpoint names.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// DialRedis connects to addr and verifies the connection with PING.
func DialRedis(ctx context.Context, addr string, db int) (*RedisStore, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis (%s): %w", addr, err)
	}
	return NewRedisStore(client), nil
}

func schemaKey(subject, endpoint string) string {
	return fmt.Sprintf("%s:schema:%s:%s", redisKeyPrefix, subject, endpoint)
}

func endpointsKey(subject string) string {
	return fmt.Sprintf("%s:endpoints:%s", redisKeyPrefix, subject)
}

// Save stores the schema and indexes its endpoint name.
func (s *RedisStore) Save(ctx context.Context, subject, endpoint string, fields []mockgen.Field) error {
	data, err := json.Marshal(fileEntry{Fields: cloneFields(fields)})
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, schemaKey(subject, endpoint), data, 0)
	pipe.SAdd(ctx, endpointsKey(subject), endpoint)
	_, err = pipe.Exec(ctx)
	return err
}

// Load retrieves a schema by subject and endpoint.
func (s *RedisStore) Load(ctx context.Context, subject, endpoint string) ([]mockgen.Field, error) {
	data, err := s.client.Get(ctx, schemaKey(subject, endpoint)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return cloneFields(entry.Fields), nil
}

// List returns the subject's endpoint names, sorted.
func (s *RedisStore) List(ctx context.Context, subject string) ([]string, error) {
	names, err := s.client.SMembers(ctx, endpointsKey(subject)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
