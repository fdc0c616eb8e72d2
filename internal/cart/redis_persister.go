package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPersister stores the cart blob under one key per device. Unlike the
// catalog cache the key carries no TTL.
type RedisPersister struct {
	client *redis.Client
	device string
}

func NewRedisPersister(client *redis.Client, device string) *RedisPersister {
	return &RedisPersister{client: client, device: device}
}

func (r *RedisPersister) Load(ctx context.Context) (Snapshot, error) {
	data, err := r.client.Get(ctx, blobKey(r.device)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("redis get failed: %w", err)
	}
	return decodeSnapshot(data)
}

func (r *RedisPersister) Save(ctx context.Context, snap Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, blobKey(r.device), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func blobKey(device string) string {
	return fmt.Sprintf("%s:%s", BlobName, device)
}
