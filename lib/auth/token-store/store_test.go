package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore().(*memoryImpl)
	store.now = func() time.Time { return testNow }

	require.NoError(t, store.Revoke(ctx, "jti-1", testNow.Add(time.Hour)))
	require.NoError(t, store.Revoke(ctx, "jti-expired", testNow.Add(-time.Minute)))

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "jti-expired")
	require.NoError(t, err)
	require.False(t, revoked)

	revoked, err = store.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestMemoryRevokeOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore().(*memoryImpl)
	store.now = func() time.Time { return testNow }

	first, err := store.RevokeOnce(ctx, "jti-1", testNow.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, first)

	first, err = store.RevokeOnce(ctx, "jti-1", testNow.Add(time.Hour))
	require.NoError(t, err)
	require.False(t, first, "second revoke of the same jti")

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)

	first, err = store.RevokeOnce(ctx, "jti-expired", testNow.Add(-time.Minute))
	require.NoError(t, err)
	require.False(t, first)

	first, err = store.RevokeOnce(ctx, "", testNow.Add(time.Hour))
	require.NoError(t, err)
	require.False(t, first)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client).(*redisImpl)
	store.now = func() time.Time { return testNow }

	t.Run(`revoke sets key with ttl`, func(t *testing.T) {
		mock.ExpectSet(keyPrefix+"jti-1", 1, time.Hour).SetVal("OK")
		require.NoError(t, store.Revoke(ctx, "jti-1", testNow.Add(time.Hour)))
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run(`expired token is not stored`, func(t *testing.T) {
		require.NoError(t, store.Revoke(ctx, "jti-2", testNow))
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run(`is revoked`, func(t *testing.T) {
		mock.ExpectExists(keyPrefix + "jti-1").SetVal(1)
		revoked, err := store.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		require.True(t, revoked)

		mock.ExpectExists(keyPrefix + "jti-3").SetVal(0)
		revoked, err = store.IsRevoked(ctx, "jti-3")
		require.NoError(t, err)
		require.False(t, revoked)
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run(`revoke once uses setnx`, func(t *testing.T) {
		mock.ExpectSetNX(keyPrefix+"jti-5", 1, time.Hour).SetVal(true)
		first, err := store.RevokeOnce(ctx, "jti-5", testNow.Add(time.Hour))
		require.NoError(t, err)
		require.True(t, first)

		mock.ExpectSetNX(keyPrefix+"jti-5", 1, time.Hour).SetVal(false)
		first, err = store.RevokeOnce(ctx, "jti-5", testNow.Add(time.Hour))
		require.NoError(t, err)
		require.False(t, first)
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run(`revoke once redis error`, func(t *testing.T) {
		mock.ExpectSetNX(keyPrefix+"jti-6", 1, time.Hour).SetErr(errors.New("connection refused"))
		_, err := store.RevokeOnce(ctx, "jti-6", testNow.Add(time.Hour))
		require.Error(t, err)
	})
	t.Run(`redis error`, func(t *testing.T) {
		mock.ExpectExists(keyPrefix + "jti-4").SetErr(errors.New("connection refused"))
		_, err := store.IsRevoked(ctx, "jti-4")
		require.Error(t, err)
	})
}
