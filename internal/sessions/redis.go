package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements Cache on Redis: SET with EX on login, GET on refresh, DEL on logout.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Save(ctx context.Context, userID, tokenHash string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Second
	}
	return r.client.Set(ctx, Key(userID), tokenHash, ttl).Err()
}

func (r *RedisCache) Get(ctx context.Context, userID string) (string, bool, error) {
	v, err := r.client.Get(ctx, Key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisCache) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, Key(userID)).Err()
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
