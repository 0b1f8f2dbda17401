package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist remembers revoked token ids until they would have expired.
// A Blacklist without a Redis client accepts every token and revokes nothing.
type Blacklist struct {
	client *redis.Client
	prefix string
}

func NewBlacklist(client *redis.Client) *Blacklist {
	return &Blacklist{client: client, prefix: "blacklist:access:"}
}

func (b *Blacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if b == nil || b.client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	return b.client.Set(ctx, b.prefix+tokenID, "1", ttl).Err()
}

func (b *Blacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if b == nil || b.client == nil {
		return false, nil
	}
	n, err := b.client.Exists(ctx, b.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
