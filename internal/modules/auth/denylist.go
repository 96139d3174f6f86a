package auth

import (
	"context"
	"time"

	"github.com/jkco/site-core/internal/pkg/redis"
)

// RedisDenylist stores revoked token ids under site:revoked:<jti>.
type RedisDenylist struct {
	client *redis.Client
}

func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

func revokedKey(jti string) string { return redis.KeyPrefix + "revoked:" + jti }

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return d.client.Set(ctx, revokedKey(jti), "1", ttl)
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return d.client.Exists(ctx, revokedKey(jti))
}
