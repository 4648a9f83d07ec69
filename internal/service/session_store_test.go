package service

import (
	"context"
	"errors"
	"testing"
	"time"
	"trackme/internal/adapter"
	"trackme/internal/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionID = "01HQ3Z8X5K7M9N2P4R6T8V0W2Y"

func newTestSessionStore(t *testing.T) (*sessionStoreImpl, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	store := NewSessionStore(adapter.NewRedisCacheAdapter(db), 7*24*time.Hour).(*sessionStoreImpl)
	store.newID = func() (string, error) { return testSessionID, nil }
	store.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return store, mock
}

func TestSessionStore_Create(t *testing.T) {
	store, mock := newTestSessionStore(t)
	ctx := context.Background()

	mock.ExpectSet(cache.SessionKey(testSessionID), `{"userId":"u1","createdAt":"2024-03-01T10:00:00Z"}`, 7*24*time.Hour).SetVal("OK")

	sid, err := store.Create(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, testSessionID, sid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionStore_Create_RedisError(t *testing.T) {
	store, mock := newTestSessionStore(t)

	mock.ExpectSet(cache.SessionKey(testSessionID), `{"userId":"u1","createdAt":"2024-03-01T10:00:00Z"}`, 7*24*time.Hour).SetErr(errors.New("connection refused"))

	_, err := store.Create(context.Background(), "u1")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionStore_UserID(t *testing.T) {
	store, mock := newTestSessionStore(t)
	ctx := context.Background()
	key := cache.SessionKey(testSessionID)

	t.Run("FoundSlidesExpiry", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(`{"userId":"u1","createdAt":"2024-03-01T10:00:00Z"}`)
		mock.ExpectExpire(key, 7*24*time.Hour).SetVal(true)
		userID, err := store.UserID(ctx, testSessionID)
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RefreshErrorKeepsSession", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(`{"userId":"u1","createdAt":"2024-03-01T10:00:00Z"}`)
		mock.ExpectExpire(key, 7*24*time.Hour).SetErr(errors.New("connection reset"))
		userID, err := store.UserID(ctx, testSessionID)
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExpiredBeforeRefresh", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(`{"userId":"u1","createdAt":"2024-03-01T10:00:00Z"}`)
		mock.ExpectExpire(key, 7*24*time.Hour).SetVal(false)
		userID, err := store.UserID(ctx, testSessionID)
		require.NoError(t, err)
		assert.Empty(t, userID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Expired", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.Nil)
		userID, err := store.UserID(ctx, testSessionID)
		require.NoError(t, err)
		assert.Empty(t, userID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Corrupt", func(t *testing.T) {
		mock.ExpectGet(key).SetVal("not-json")
		_, err := store.UserID(ctx, testSessionID)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MalformedIDSkipsRedis", func(t *testing.T) {
		userID, err := store.UserID(ctx, "../../etc")
		require.NoError(t, err)
		assert.Empty(t, userID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionStore_Destroy(t *testing.T) {
	store, mock := newTestSessionStore(t)
	ctx := context.Background()

	mock.ExpectDel(cache.SessionKey(testSessionID)).SetVal(1)
	require.NoError(t, store.Destroy(ctx, testSessionID))

	// no session id means nothing to destroy
	require.NoError(t, store.Destroy(ctx, ""))
	assert.NoError(t, mock.ExpectationsWereMet())
}
