// Package relationtest holds the behaviour every relation.PairStore backend
// must show, so the memory, SQL and Mongo stores run the same checks.
package relationtest

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"friendgraph/internal/relation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// ids hands out user ids that no earlier run has used, so suites can run
// against a persistent database without cleanup.
var ids atomic.Uint64

func init() {
	ids.Store(uint64(time.Now().UnixNano()/1000) * 100)
}

func newUsers(n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = ids.Add(1)
	}
	return out
}

// RunPairStoreSuite exercises store through a relation.Graph.
func RunPairStoreSuite(t *testing.T, store relation.PairStore) {
	t.Helper()
	ctx := context.Background()
	g := relation.NewGraph(store, zaptest.NewLogger(t), relation.WithMaxAttempts(64))

	t.Run("load missing pair", func(t *testing.T) {
		u := newUsers(2)
		p, err := store.LoadPair(ctx, u[0], u[1])
		require.NoError(t, err)
		assert.Equal(t, uint64(0), p.Version)
		assert.True(t, p.Empty())
	})

	t.Run("swap is conditional on version", func(t *testing.T) {
		u := newUsers(2)
		prev := relation.Pair{Low: u[0], High: u[1]}
		next := prev
		next.LowRequested = true
		next.Version = 1

		ok, err := store.SwapPair(ctx, prev, next)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = store.SwapPair(ctx, prev, next)
		require.NoError(t, err)
		assert.False(t, ok, "second insert must lose")

		stale := next
		stale.Version = 7
		ok, err = store.SwapPair(ctx, stale, relation.Pair{Low: u[0], High: u[1], Friends: true, Version: 8})
		require.NoError(t, err)
		assert.False(t, ok, "stale version must lose")

		got, err := store.LoadPair(ctx, u[0], u[1])
		require.NoError(t, err)
		assert.Equal(t, next, got)
	})

	t.Run("request then accept", func(t *testing.T) {
		u := newUsers(2)
		a, b := u[0], u[1]
		require.NoError(t, g.SendRequest(ctx, a, b))
		require.ErrorIs(t, g.SendRequest(ctx, a, b), relation.ErrDuplicateRequest)

		received, err := g.ListPendingReceived(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, []uint64{a}, received)
		sent, err := g.ListPendingSent(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, []uint64{b}, sent)

		require.NoError(t, g.ResolveRequest(ctx, b, a, relation.ActionAccept))
		friends, err := g.ListFriends(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, []uint64{b}, friends)
		friends, err = g.ListFriends(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, []uint64{a}, friends)

		received, err = g.ListPendingReceived(ctx, b)
		require.NoError(t, err)
		assert.Empty(t, received)
		require.ErrorIs(t, g.ResolveRequest(ctx, b, a, relation.ActionReject), relation.ErrNoPendingRequest)
	})

	t.Run("request then reject", func(t *testing.T) {
		u := newUsers(2)
		a, b := u[0], u[1]
		require.NoError(t, g.SendRequest(ctx, b, a))
		require.NoError(t, g.ResolveRequest(ctx, a, b, relation.ActionReject))

		for _, user := range u {
			friends, err := g.ListFriends(ctx, user)
			require.NoError(t, err)
			assert.Empty(t, friends)
			sent, err := g.ListPendingSent(ctx, user)
			require.NoError(t, err)
			assert.Empty(t, sent)
		}
	})

	t.Run("listing is ascending on both sides of the key", func(t *testing.T) {
		u := newUsers(5)
		mid := u[2]
		for _, other := range []uint64{u[4], u[0], u[3], u[1]} {
			require.NoError(t, g.SendRequest(ctx, other, mid))
		}
		received, err := g.ListPendingReceived(ctx, mid)
		require.NoError(t, err)
		assert.Equal(t, []uint64{u[0], u[1], u[3], u[4]}, received)

		require.NoError(t, g.ResolveRequest(ctx, mid, u[4], relation.ActionAccept))
		require.NoError(t, g.ResolveRequest(ctx, mid, u[0], relation.ActionAccept))
		friends, err := g.ListFriends(ctx, mid)
		require.NoError(t, err)
		assert.Equal(t, []uint64{u[0], u[4]}, friends)
	})

	t.Run("concurrent duplicate sends", func(t *testing.T) {
		u := newUsers(2)
		var ok, dup atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := g.SendRequest(ctx, u[0], u[1])
				switch {
				case err == nil:
					ok.Add(1)
				case errors.Is(err, relation.ErrDuplicateRequest):
					dup.Add(1)
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), ok.Load())
		assert.Equal(t, int32(3), dup.Load())
	})

	t.Run("concurrent accept and reject", func(t *testing.T) {
		u := newUsers(2)
		require.NoError(t, g.SendRequest(ctx, u[0], u[1]))

		errs := make(chan error, 2)
		for _, action := range []relation.Action{relation.ActionAccept, relation.ActionReject} {
			go func(action relation.Action) {
				errs <- g.ResolveRequest(ctx, u[1], u[0], action)
			}(action)
		}
		var winners int
		for i := 0; i < 2; i++ {
			if err := <-errs; err == nil {
				winners++
			} else {
				assert.ErrorIs(t, err, relation.ErrNoPendingRequest)
			}
		}
		assert.Equal(t, 1, winners)
	})
}
