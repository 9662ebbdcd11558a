package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"perspective/internal/identity"
	"perspective/pkg/sentinel"
)

// identityKey is the single key holding the serialized record.
const identityKey = "perspective:identity"

// Redis persists the identity record in Redis so it survives process
// restarts. This is the production implementation of the persistence
// boundary.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Load(ctx context.Context) (*identity.Record, error) {
	raw, err := r.client.Get(ctx, identityKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load identity record: %w", err)
	}

	var rec identity.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode identity record: %w", err)
	}
	return &rec, nil
}

func (r *Redis) Save(ctx context.Context, rec *identity.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode identity record: %w", err)
	}
	if err := r.client.Set(ctx, identityKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("save identity record: %w", err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, identityKey).Err(); err != nil {
		return fmt.Errorf("clear identity record: %w", err)
	}
	return nil
}
