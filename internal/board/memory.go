package board

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// MemoryStore is an in-process Store for single-instance deployments and
// tests. A single mutex gives every operation the same atomicity the Redis
// backend provides per command; key expiry is evaluated lazily against the
// injected clock on access.
type MemoryStore struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	counters  map[string]int64
	hashes    map[string]map[string]string
	sets      map[string]map[string]struct{}
	zsets     map[string]map[string]float64
	deadlines map[string]time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{
		clock:     clock,
		counters:  make(map[string]int64),
		hashes:    make(map[string]map[string]string),
		sets:      make(map[string]map[string]struct{}),
		zsets:     make(map[string]map[string]float64),
		deadlines: make(map[string]time.Time),
	}
}

func (s *MemoryStore) Increment(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked(key)
	s.counters[key]++
	return s.counters[key], nil
}

func (s *MemoryStore) HashGetAll(ctx context.Context, key string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked(key)
	fields := make(map[string]string, len(s.hashes[key]))
	for k, v := range s.hashes[key] {
		fields[k] = v
	}
	return fields, nil
}

func (s *MemoryStore) HashIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked(key)
	s.hashSetLocked(key, field, delta+parseIntOrZero(s.hashes[key][field]))
	n := parseIntOrZero(s.hashes[key][field])
	return n, nil
}

func (s *MemoryStore) SetAdd(ctx context.Context, key, member string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked(key)
	return s.setAddLocked(key, member), nil
}

func (s *MemoryStore) SetRemove(ctx context.Context, key, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked(key)
	delete(s.sets[key], member)
	return nil
}

func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked(key)
	if _, ok := s.counters[key]; ok {
		return true, nil
	}
	if m, ok := s.hashes[key]; ok && len(m) > 0 {
		return true, nil
	}
	if m, ok := s.sets[key]; ok && len(m) > 0 {
		return true, nil
	}
	if m, ok := s.zsets[key]; ok && len(m) > 0 {
		return true, nil
	}
	return false, nil
}

func (s *MemoryStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked(key)
	s.expireLocked(key, ttl)
	return nil
}

func (s *MemoryStore) SortedSetAdd(ctx context.Context, key, member string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked(key)
	s.zsetAddLocked(key, member, score)
	return nil
}

func (s *MemoryStore) SortedSetIncrBy(ctx context.Context, key, member string, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked(key)
	s.zsetAddLocked(key, member, s.zsets[key][member]+delta)
	return s.zsets[key][member], nil
}

func (s *MemoryStore) SortedSetScore(ctx context.Context, key, member string) (float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked(key)
	score, ok := s.zsets[key][member]
	return score, ok, nil
}

func (s *MemoryStore) SortedSetRevRangeByRank(ctx context.Context, key string, start, stop int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked(key)

	members := make([]string, 0, len(s.zsets[key]))
	for m := range s.zsets[key] {
		members = append(members, m)
	}
	// Descending score, ties broken by reverse lexicographic member order,
	// matching ZREVRANGE.
	sort.Slice(members, func(i, j int) bool {
		si, sj := s.zsets[key][members[i]], s.zsets[key][members[j]]
		if si != sj {
			return si > sj
		}
		return members[i] > members[j]
	})

	if start < 0 || start >= int64(len(members)) {
		return nil, nil
	}
	if stop >= int64(len(members)) {
		stop = int64(len(members)) - 1
	}
	return members[start : stop+1], nil
}

func (s *MemoryStore) SortedSetIntersectMax(ctx context.Context, dest string, ttl time.Duration, sources ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, src := range sources {
		s.purgeLocked(src)
	}

	result := make(map[string]float64)
	for m, score := range s.sourceMembersLocked(sources[0]) {
		inAll := true
		for _, src := range sources[1:] {
			other, ok := s.sourceMembersLocked(src)[m]
			if !ok {
				inAll = false
				break
			}
			if other > score {
				score = other
			}
		}
		if inAll {
			result[m] = score
		}
	}

	s.zsets[dest] = result
	delete(s.deadlines, dest)
	s.expireLocked(dest, ttl)
	return nil
}

func (s *MemoryStore) Batch(ctx context.Context, fn func(b Batch)) error {
	b := &memoryBatch{}
	fn(b)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range b.ops {
		op(s)
	}
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// memoryBatch records writes and replays them under a single lock acquisition,
// so readers never observe a partial batch.
type memoryBatch struct {
	ops []func(*MemoryStore)
}

var _ Batch = (*memoryBatch)(nil)

func (b *memoryBatch) HashSetAll(key string, fields map[string]any) {
	b.ops = append(b.ops, func(s *MemoryStore) {
		for field, value := range fields {
			s.hashSetLocked(key, field, value)
		}
	})
}

func (b *memoryBatch) SetAdd(key, member string) {
	b.ops = append(b.ops, func(s *MemoryStore) {
		s.setAddLocked(key, member)
	})
}

func (b *memoryBatch) SortedSetAdd(key, member string, score float64) {
	b.ops = append(b.ops, func(s *MemoryStore) {
		s.zsetAddLocked(key, member, score)
	})
}

func (b *memoryBatch) Expire(key string, ttl time.Duration) {
	b.ops = append(b.ops, func(s *MemoryStore) {
		s.expireLocked(key, ttl)
	})
}

// --- internals, callers hold mu ---

func (s *MemoryStore) purgeLocked(key string) {
	deadline, ok := s.deadlines[key]
	if !ok || s.clock.Now().Before(deadline) {
		return
	}
	delete(s.counters, key)
	delete(s.hashes, key)
	delete(s.sets, key)
	delete(s.zsets, key)
	delete(s.deadlines, key)
}

func (s *MemoryStore) expireLocked(key string, ttl time.Duration) {
	if ttl > 0 {
		s.deadlines[key] = s.clock.Now().Add(ttl)
	}
}

func (s *MemoryStore) hashSetLocked(key, field string, value any) {
	if s.hashes[key] == nil {
		s.hashes[key] = make(map[string]string)
	}
	s.hashes[key][field] = fmt.Sprint(value)
}

func (s *MemoryStore) setAddLocked(key, member string) bool {
	if s.sets[key] == nil {
		s.sets[key] = make(map[string]struct{})
	}
	if _, ok := s.sets[key][member]; ok {
		return false
	}
	s.sets[key][member] = struct{}{}
	return true
}

func (s *MemoryStore) zsetAddLocked(key, member string, score float64) {
	if s.zsets[key] == nil {
		s.zsets[key] = make(map[string]float64)
	}
	s.zsets[key][member] = score
}

// sourceMembersLocked views a set or sorted set uniformly as member->score,
// plain set members scoring 1, as ZINTERSTORE does.
func (s *MemoryStore) sourceMembersLocked(key string) map[string]float64 {
	if z, ok := s.zsets[key]; ok {
		return z
	}
	view := make(map[string]float64, len(s.sets[key]))
	for m := range s.sets[key] {
		view[m] = 1
	}
	return view
}

func parseIntOrZero(s string) int64 {
	var n int64
	_, _ = fmt.Sscanf(s, "%d", &n)
	return n
}
