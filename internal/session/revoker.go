package session

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "session:revoked:"

// Revoker tracks signed-out token IDs until their natural expiry. Tokens are
// self-contained JWTs, so logout needs a denylist to take effect server-side.
type Revoker struct {
	rdb *redis.Client
}

func NewRevoker(rdb *redis.Client) *Revoker {
	return &Revoker{rdb: rdb}
}

// Revoke records a token id for the remainder of the token's life.
func (r *Revoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, keyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether the token id was signed out. When redis is down
// the check degrades open: a dead cache must not lock staff out.
func (r *Revoker) IsRevoked(ctx context.Context, jti string) bool {
	n, err := r.rdb.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		log.Printf("session: revocation check failed, allowing token: %v", err)
		return false
	}
	return n > 0
}
