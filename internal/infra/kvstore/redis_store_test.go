package kvstore

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tracker/internal/domain/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (service.KeyValueStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_SetGetWithTTL(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetWithTTL(ctx, "otp:abc", []byte(`{"otp":"123456"}`), 300*time.Second))

	value, err := store.Get(ctx, "otp:abc")
	require.NoError(t, err)
	assert.Equal(t, `{"otp":"123456"}`, string(value))
	assert.Equal(t, 300*time.Second, mr.TTL("otp:abc"))

	mr.FastForward(301 * time.Second)

	_, err = store.Get(ctx, "otp:abc")
	assert.True(t, errors.Is(err, service.ErrKeyNotFound))
}

func TestRedisStore_SetWithoutTTL(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetWithTTL(ctx, "blacklist:x", []byte("true"), 0))
	assert.Equal(t, time.Duration(0), mr.TTL("blacklist:x"))

	mr.FastForward(24 * time.Hour)

	exists, err := store.Exists(ctx, "blacklist:x")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisStore_DeleteReportsRemoval(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetWithTTL(ctx, "k", []byte("v"), time.Minute))

	removed, err := store.Delete(ctx, "k")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Delete(ctx, "k")
	require.NoError(t, err)
	assert.False(t, removed)

	exists, err := store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisStore_ConcurrentDeleteHasSingleWinner(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetWithTTL(ctx, "otp:race", []byte("v"), time.Minute))

	var winners atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if removed, err := store.Delete(ctx, "otp:race"); err == nil && removed {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	mr.Close()

	_, err := store.Get(ctx, "k")
	require.Error(t, err)
	assert.False(t, errors.Is(err, service.ErrKeyNotFound))

	_, err = store.Exists(ctx, "k")
	require.Error(t, err)

	err = store.SetWithTTL(ctx, "k", []byte("v"), time.Minute)
	require.Error(t, err)
}

func TestRedisStore_ErrorsDoNotLeakKeys(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()
	const key = "blacklist:eyJhbGciOiJIUzI1NiJ9.secret-access-token"

	mr.Close()

	_, err := store.Exists(ctx, key)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-access-token")
	assert.Contains(t, err.Error(), `"blacklist"`)

	_, err = store.Get(ctx, "otp:handle-value")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "handle-value")

	_, err = store.Delete(ctx, "otp:handle-value")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "handle-value")

	err = store.SetWithTTL(ctx, key, []byte("true"), time.Minute)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-access-token")
}

func TestKeyNamespace(t *testing.T) {
	assert.Equal(t, "otp", keyNamespace("otp:abc:def"))
	assert.Equal(t, "blacklist", keyNamespace("blacklist:tok"))
	assert.Equal(t, "<unnamespaced>", keyNamespace("plain-secret"))
}
