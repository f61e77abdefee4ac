package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/turnstile/internal/testutils"
	"github.com/aretw0/turnstile/pkg/adapters/redis"
	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/aretw0/turnstile/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunAutomatonStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "even", domain.MustNew(testutils.EvenOnes())))

	assert.True(t, mr.Exists("test:even"))
	assert.False(t, mr.Exists(redis.DefaultPrefix+"even"))

	raw, err := mr.Get("test:even")
	require.NoError(t, err)
	assert.Contains(t, raw, `"state_transitions"`)
}

func TestRedisStore_RejectsInvalidNames(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "even", domain.MustNew(testutils.EvenOnes())))
	require.True(t, mr.Exists(redis.DefaultPrefix+"_index"))

	_, err := store.Load(ctx, "_index")
	assert.ErrorIs(t, err, ports.ErrInvalidName)

	assert.ErrorIs(t, store.Delete(ctx, "_index"), ports.ErrInvalidName)
	assert.True(t, mr.Exists(redis.DefaultPrefix+"_index"), "index must survive")

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"even"}, names)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	require.NoError(t, mr.Set(redis.DefaultPrefix+"bad", `{"symbol_set": {"length": 1}}`))

	_, err := store.Load(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrMalformedDescription)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short-lived", domain.MustNew(testutils.ContainsOne())))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "short-lived")

	// Key expiration is driven by miniredis time.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "short-lived")
	assert.ErrorIs(t, err, ports.ErrAutomatonNotFound)

	// Index pruning compares against the wall clock.
	time.Sleep(1200 * time.Millisecond)

	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisStore_Ping(t *testing.T) {
	_, client := newClient(t)
	assert.NoError(t, redis.NewFromClient(client).Ping(context.Background()))
}
