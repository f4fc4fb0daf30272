package kvstore

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tracker/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryStore_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	store := NewMemoryStoreWithClock(clock.Now)
	ctx := context.Background()

	require.NoError(t, store.SetWithTTL(ctx, "short", []byte("a"), time.Second))
	require.NoError(t, store.SetWithTTL(ctx, "forever", []byte("b"), 0))
	require.NoError(t, store.SetWithTTL(ctx, "negative", []byte("c"), -time.Second))

	value, err := store.Get(ctx, "short")
	require.NoError(t, err)
	assert.Equal(t, "a", string(value))

	clock.Advance(time.Second)

	_, err = store.Get(ctx, "short")
	assert.True(t, errors.Is(err, service.ErrKeyNotFound))

	clock.Advance(365 * 24 * time.Hour)

	exists, err := store.Exists(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(ctx, "negative")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 2, store.Len())
}

func TestMemoryStore_DeleteExpiredEntryIsNotRemoval(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	store := NewMemoryStoreWithClock(clock.Now)
	ctx := context.Background()

	require.NoError(t, store.SetWithTTL(ctx, "k", []byte("v"), time.Minute))
	clock.Advance(2 * time.Minute)

	removed, err := store.Delete(ctx, "k")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, store.SetWithTTL(ctx, "k", value, time.Minute))
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestMemoryStore_ConcurrentDeleteHasSingleWinner(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SetWithTTL(ctx, "otp:race", []byte("v"), time.Minute))

	var winners atomic.Int32
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if removed, _ := store.Delete(ctx, "otp:race"); removed {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}
