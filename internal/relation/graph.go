package relation

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

//go:generate mockgen -destination=../user/mock_relation_test.go -package=user friendgraph/internal/relation Store

// Store is the relationship API the rest of the service is allowed to use.
// SendRequest and ResolveRequest are the only ways to change relationships.
type Store interface {
	SendRequest(ctx context.Context, requester, target uint64) error
	ResolveRequest(ctx context.Context, responder, requester uint64, action Action) error
	ListFriends(ctx context.Context, user uint64) ([]uint64, error)
	ListPendingReceived(ctx context.Context, user uint64) ([]uint64, error)
	ListPendingSent(ctx context.Context, user uint64) ([]uint64, error)
	Status(ctx context.Context, viewer, other uint64) (State, error)
}

// PairStore is implemented by storage backends. It only knows how to load a
// pair record and swap it for a newer one; all relationship rules live in
// Graph and Pair.
type PairStore interface {
	// LoadPair returns the stored record or an empty one with Version 0.
	LoadPair(ctx context.Context, low, high uint64) (Pair, error)
	// SwapPair stores next if the stored version still equals prev.Version
	// (absent when prev.Version is 0). It returns false if another writer
	// got there first.
	SwapPair(ctx context.Context, prev, next Pair) (bool, error)
	// The list methods return user ids in ascending order.
	FriendsOf(ctx context.Context, user uint64) ([]uint64, error)
	ReceivedBy(ctx context.Context, user uint64) ([]uint64, error)
	SentBy(ctx context.Context, user uint64) ([]uint64, error)
}

const DefaultMaxAttempts = 8

type Graph struct {
	pairs       PairStore
	log         *zap.Logger
	maxAttempts int
}

type Option func(*Graph)

// WithMaxAttempts bounds how many times a transition re-reads a pair after
// losing a swap.
func WithMaxAttempts(n int) Option {
	return func(g *Graph) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

func NewGraph(pairs PairStore, log *zap.Logger, opts ...Option) *Graph {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Graph{pairs: pairs, log: log.Named("relation"), maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ Store = (*Graph)(nil)

func (g *Graph) SendRequest(ctx context.Context, requester, target uint64) error {
	if requester == target {
		return ErrSelfRequest
	}
	err := g.transition(ctx, requester, target, func(p *Pair) error {
		return p.Send(requester)
	})
	if err != nil {
		g.logRejection("send request rejected", requester, target, err)
		return err
	}
	g.log.Info("friend request sent",
		zap.Uint64("requester", requester),
		zap.Uint64("target", target))
	return nil
}

func (g *Graph) ResolveRequest(ctx context.Context, responder, requester uint64, action Action) error {
	if !action.Valid() {
		return ErrInvalidAction
	}
	if responder == requester {
		return ErrNoPendingRequest
	}
	err := g.transition(ctx, responder, requester, func(p *Pair) error {
		return p.Resolve(responder, action)
	})
	if err != nil {
		g.logRejection("resolve request rejected", requester, responder, err)
		return err
	}
	g.log.Info("friend request resolved",
		zap.Uint64("requester", requester),
		zap.Uint64("responder", responder),
		zap.Stringer("action", action))
	return nil
}

func (g *Graph) ListFriends(ctx context.Context, user uint64) ([]uint64, error) {
	ids, err := g.pairs.FriendsOf(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("list friends of %d: %w", user, err)
	}
	return ids, nil
}

func (g *Graph) ListPendingReceived(ctx context.Context, user uint64) ([]uint64, error) {
	ids, err := g.pairs.ReceivedBy(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("list requests received by %d: %w", user, err)
	}
	return ids, nil
}

func (g *Graph) ListPendingSent(ctx context.Context, user uint64) ([]uint64, error) {
	ids, err := g.pairs.SentBy(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("list requests sent by %d: %w", user, err)
	}
	return ids, nil
}

func (g *Graph) Status(ctx context.Context, viewer, other uint64) (State, error) {
	if viewer == other {
		return StateNone, nil
	}
	low, high := Order(viewer, other)
	p, err := g.pairs.LoadPair(ctx, low, high)
	if err != nil {
		return "", fmt.Errorf("load pair %d:%d: %w", low, high, err)
	}
	return p.StateFor(viewer), nil
}

// transition reads the pair, applies fn and swaps the result in. Losing the
// swap means another transition on the same pair committed first, so fn is
// evaluated again against the committed state.
func (g *Graph) transition(ctx context.Context, a, b uint64, fn func(*Pair) error) error {
	low, high := Order(a, b)
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		prev, err := g.pairs.LoadPair(ctx, low, high)
		if err != nil {
			g.log.Error("load pair failed", zap.Uint64("low", low), zap.Uint64("high", high), zap.Error(err))
			return fmt.Errorf("load pair %d:%d: %w", low, high, err)
		}
		prev.Low, prev.High = low, high

		next := prev
		if err := fn(&next); err != nil {
			return err
		}
		next.Version = prev.Version + 1

		ok, err := g.pairs.SwapPair(ctx, prev, next)
		if err != nil {
			g.log.Error("swap pair failed", zap.Uint64("low", low), zap.Uint64("high", high), zap.Error(err))
			return fmt.Errorf("store pair %d:%d: %w", low, high, err)
		}
		if ok {
			return nil
		}
		g.log.Debug("pair changed concurrently",
			zap.Uint64("low", low),
			zap.Uint64("high", high),
			zap.Int("attempt", attempt+1))
	}
	return ErrConflict
}

func (g *Graph) logRejection(msg string, from, to uint64, err error) {
	if IsDomain(err) || errors.Is(err, context.Canceled) {
		g.log.Debug(msg, zap.Uint64("from", from), zap.Uint64("to", to), zap.String("kind", KindOf(err)))
	}
}
