package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/rueidis"
)

const redisVerifiedTokenPrefix = "auth:verified:"

// DefaultCacheTTL is the default upper bound for caching a verified token.
const DefaultCacheTTL = 5 * time.Minute

// CachedVerifier remembers successful verifications in Redis.
//
// Entries are keyed by the SHA-256 of the token and never outlive the token.
// Redis failures fall back to the wrapped verifier.
type CachedVerifier struct {
	next   Verifier
	redis  rueidis.Client
	maxTTL time.Duration
}

// NewCachedVerifier wraps next with a Redis cache.
func NewCachedVerifier(next Verifier, redis rueidis.Client, maxTTL time.Duration) *CachedVerifier {
	if maxTTL <= 0 {
		maxTTL = DefaultCacheTTL
	}

	return &CachedVerifier{
		next:   next,
		redis:  redis,
		maxTTL: maxTTL,
	}
}

func (v *CachedVerifier) Verify(ctx context.Context, token string) (AuthData, error) {
	key := cacheKey(token)

	if data, ok := v.lookup(ctx, key); ok {
		return data, nil
	}

	data, err := v.next.Verify(ctx, token)
	if err != nil {
		return AuthData{}, err
	}

	v.store(ctx, key, data)
	return data, nil
}

func (v *CachedVerifier) lookup(ctx context.Context, key string) (AuthData, bool) {
	reply := v.redis.Do(ctx, v.redis.B().Get().Key(key).Build())
	if err := reply.Error(); err != nil {
		if !rueidis.IsRedisNil(err) {
			slog.Warn("error reading verified token cache", "error", err)
		}
		return AuthData{}, false
	}

	var data AuthData
	if err := reply.DecodeJSON(&data); err != nil {
		slog.Warn("error decoding verified token cache entry", "error", err)
		return AuthData{}, false
	}

	if !data.ExpiresAt.IsZero() && time.Now().After(data.ExpiresAt) {
		return AuthData{}, false
	}

	return data, true
}

func (v *CachedVerifier) store(ctx context.Context, key string, data AuthData) {
	ttl := v.maxTTL
	if !data.ExpiresAt.IsZero() {
		ttl = min(ttl, time.Until(data.ExpiresAt))
	}

	seconds := int64(ttl / time.Second)
	if seconds < 1 {
		return
	}

	payload, err := json.Marshal(data)
	if err != nil {
		slog.Warn("error encoding verified token cache entry", "error", err)
		return
	}

	reply := v.redis.Do(ctx, v.redis.B().Set().Key(key).Value(rueidis.BinaryString(payload)).ExSeconds(seconds).Build())
	if err := reply.Error(); err != nil {
		slog.Warn("error writing verified token cache", "error", err)
	}
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return redisVerifiedTokenPrefix + hex.EncodeToString(sum[:])
}

var _ Verifier = (*CachedVerifier)(nil)
