package relation

import (
	"context"
	"sort"
	"sync"
)

const memoryShards = 64

type pairKey struct {
	low, high uint64
}

type pairShard struct {
	mu    sync.RWMutex
	pairs map[pairKey]Pair
}

type peerIndex struct {
	mu    sync.RWMutex
	peers map[uint64]struct{}
}

// MemoryStore keeps pair records in process. Pairs are spread over shards and
// every user has its own peer index, so transitions on disjoint pairs do not
// share a lock.
type MemoryStore struct {
	shards  [memoryShards]pairShard
	indexes sync.Map // uint64 -> *peerIndex
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	for i := range s.shards {
		s.shards[i].pairs = make(map[pairKey]Pair)
	}
	return s
}

var _ PairStore = (*MemoryStore)(nil)

func (s *MemoryStore) shard(k pairKey) *pairShard {
	h := k.low*0x9e3779b97f4a7c15 ^ k.high
	return &s.shards[h%memoryShards]
}

// index returns the user's peer index, creating it. Only writers call it.
func (s *MemoryStore) index(user uint64) *peerIndex {
	if idx, ok := s.indexes.Load(user); ok {
		return idx.(*peerIndex)
	}
	idx, _ := s.indexes.LoadOrStore(user, &peerIndex{peers: make(map[uint64]struct{})})
	return idx.(*peerIndex)
}

func (s *MemoryStore) LoadPair(_ context.Context, low, high uint64) (Pair, error) {
	k := pairKey{low, high}
	sh := s.shard(k)
	sh.mu.RLock()
	p, ok := sh.pairs[k]
	sh.mu.RUnlock()
	if !ok {
		return Pair{Low: low, High: high}, nil
	}
	return p, nil
}

func (s *MemoryStore) SwapPair(_ context.Context, prev, next Pair) (bool, error) {
	k := pairKey{next.Low, next.High}
	sh := s.shard(k)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	cur, exists := sh.pairs[k]
	if exists && cur.Version != prev.Version {
		return false, nil
	}
	if !exists {
		if prev.Version != 0 {
			return false, nil
		}
		// Indexes go first so a lister that finds the peer blocks on this
		// shard until the record is in place.
		for _, u := range [2]uint64{k.low, k.high} {
			idx := s.index(u)
			idx.mu.Lock()
			idx.peers[next.Other(u)] = struct{}{}
			idx.mu.Unlock()
		}
	}
	sh.pairs[k] = next
	return true, nil
}

func (s *MemoryStore) FriendsOf(ctx context.Context, user uint64) ([]uint64, error) {
	return s.collect(ctx, user, func(p Pair) bool { return p.Friends })
}

func (s *MemoryStore) ReceivedBy(ctx context.Context, user uint64) ([]uint64, error) {
	return s.collect(ctx, user, func(p Pair) bool { return p.Requested(p.Other(user)) })
}

func (s *MemoryStore) SentBy(ctx context.Context, user uint64) ([]uint64, error) {
	return s.collect(ctx, user, func(p Pair) bool { return p.Requested(user) })
}

func (s *MemoryStore) collect(ctx context.Context, user uint64, match func(Pair) bool) ([]uint64, error) {
	v, ok := s.indexes.Load(user)
	if !ok {
		return []uint64{}, nil
	}
	idx := v.(*peerIndex)
	idx.mu.RLock()
	peers := make([]uint64, 0, len(idx.peers))
	for peer := range idx.peers {
		peers = append(peers, peer)
	}
	idx.mu.RUnlock()
	sort.Slice(peers, func(i, j int) bool { return peers[i] < peers[j] })

	out := make([]uint64, 0, len(peers))
	for _, peer := range peers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		low, high := Order(user, peer)
		p, _ := s.LoadPair(ctx, low, high)
		if match(p) {
			out = append(out, peer)
		}
	}
	return out, nil
}
