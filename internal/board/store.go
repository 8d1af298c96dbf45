package board

import (
	"context"
	"time"
)

// Store is the capability boundary to the key-value backend. Every method is a
// single store round-trip with atomic semantics; SetAdd in particular must be
// an atomic test-and-add, since vote deduplication depends on it.
type Store interface {
	// Increment atomically increments the integer at key and returns the new value.
	Increment(ctx context.Context, key string) (int64, error)

	// HashGetAll returns all fields of a hash, or an empty map if the key is absent.
	HashGetAll(ctx context.Context, key string) (map[string]string, error)
	// HashIncrBy atomically adds delta to an integer hash field.
	HashIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)

	// SetAdd adds member to a set, reporting whether it was newly added.
	SetAdd(ctx context.Context, key, member string) (bool, error)
	SetRemove(ctx context.Context, key, member string) error

	// Exists reports whether key is present (and not expired).
	Exists(ctx context.Context, key string) (bool, error)
	// Expire sets a time-to-live on key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	SortedSetAdd(ctx context.Context, key, member string, score float64) error
	// SortedSetIncrBy atomically adds delta to a member's score and returns the new score.
	SortedSetIncrBy(ctx context.Context, key, member string, delta float64) (float64, error)
	// SortedSetScore returns a member's score, with ok=false if the member is absent.
	SortedSetScore(ctx context.Context, key, member string) (score float64, ok bool, err error)
	// SortedSetRevRangeByRank returns members of the rank range [start, stop]
	// in descending score order. Out-of-range pages yield an empty slice.
	SortedSetRevRangeByRank(ctx context.Context, key string, start, stop int64) ([]string, error)
	// SortedSetIntersectMax stores the max-aggregated intersection of the source
	// keys under dest with the given time-to-live.
	SortedSetIntersectMax(ctx context.Context, dest string, ttl time.Duration, sources ...string) error

	// Batch applies the recorded writes as one atomic group. Readers never
	// observe a partial batch.
	Batch(ctx context.Context, fn func(b Batch)) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// Batch records writes to be applied atomically by Store.Batch.
type Batch interface {
	HashSetAll(key string, fields map[string]any)
	SetAdd(key, member string)
	SortedSetAdd(key, member string, score float64)
	Expire(key string, ttl time.Duration)
}
