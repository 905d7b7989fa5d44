package tokenstore

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Provider отозванные токены, хранятся до истечения их срока
type Provider interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// RevokeOnce атомарно отзывает токен, first=false если он уже был отозван
	RevokeOnce(ctx context.Context, jti string, expiresAt time.Time) (first bool, err error)
}

var Instance Provider

const keyPrefix = "revoked_jti:"

// NewHandler redis при заданном клиенте, иначе память процесса
func NewHandler(client *redis.Client) {
	if client != nil {
		Instance = NewRedisStore(client)
		return
	}
	Instance = NewMemoryStore()
}

func NewMemoryStore() Provider {
	return &memoryImpl{
		cache: cache.New(time.Hour, 10*time.Minute),
		now:   time.Now,
	}
}

type memoryImpl struct {
	cache *cache.Cache
	now   func() time.Time
}

func (i *memoryImpl) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(i.now())
	if jti == "" || ttl <= 0 {
		return nil
	}
	i.cache.Set(jti, true, ttl)
	return nil
}

func (i *memoryImpl) RevokeOnce(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	ttl := expiresAt.Sub(i.now())
	if jti == "" || ttl <= 0 {
		return false, nil
	}
	return i.cache.Add(jti, true, ttl) == nil, nil
}

func (i *memoryImpl) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, found := i.cache.Get(jti)
	return found, nil
}

func NewRedisStore(client *redis.Client) Provider {
	return &redisImpl{
		client: client,
		now:    time.Now,
	}
}

type redisImpl struct {
	client *redis.Client
	now    func() time.Time
}

func (i *redisImpl) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(i.now())
	if jti == "" || ttl <= 0 {
		return nil
	}
	err := i.client.Set(ctx, keyPrefix+jti, 1, ttl).Err()
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения отозванного токена")
	}
	return nil
}

func (i *redisImpl) RevokeOnce(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	ttl := expiresAt.Sub(i.now())
	if jti == "" || ttl <= 0 {
		return false, nil
	}
	first, err := i.client.SetNX(ctx, keyPrefix+jti, 1, ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "ошибка сохранения отозванного токена")
	}
	return first, nil
}

func (i *redisImpl) IsRevoked(ctx context.Context, jti string) (bool, error) {
	count, err := i.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, errors.Wrap(err, "ошибка проверки отозванного токена")
	}
	return count > 0, nil
}
