package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func withMiniredis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
}

func TestAside_MissThenHit(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			dest.ID = 1
			dest.Username = "ada"
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey(1), &first, UserTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "ada", first.Username)

	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey(1), &second, UserTTL, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read should be served from cache")
	assert.Equal(t, "ada", second.Username)
}

func TestAside_InvalidateForcesRefetch(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	load := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			dest.ID = 2
			dest.Username = "bob"
			return nil
		}
	}

	var u cachedUser
	require.NoError(t, Aside(ctx, UserKey(2), &u, UserTTL, load(&u)))
	InvalidateUser(ctx, 2)

	var again cachedUser
	require.NoError(t, Aside(ctx, UserKey(2), &again, UserTTL, load(&again)))
	assert.Equal(t, 2, fetches)
}

func TestAside_NilClientAlwaysFetches(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	fetches := 0
	var u cachedUser
	fetch := func() error {
		fetches++
		u.ID = 3
		return nil
	}

	require.NoError(t, Aside(ctx, UserKey(3), &u, time.Minute, fetch))
	require.NoError(t, Aside(ctx, UserKey(3), &u, time.Minute, fetch))
	assert.Equal(t, 2, fetches, "without redis every read goes to the source")
}
