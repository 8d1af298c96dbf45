package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/abhigyani/rankboard/internal/board"
)

// Store implements board.Store on Redis. Each primitive is one command, so
// the store's atomicity guarantees are Redis's own; SAdd in particular is the
// atomic test-and-add the vote ledger relies on.
type Store struct {
	rdb *goredis.Client
}

var _ board.Store = (*Store)(nil)

func NewStore(client *Client) *Store {
	return &Store{rdb: client.Underlying()}
}

func (s *Store) Increment(ctx context.Context, key string) (int64, error) {
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("INCR %s: %w", key, err)
	}
	return n, nil
}

func (s *Store) HashGetAll(ctx context.Context, key string) (map[string]string, error) {
	fields, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("HGETALL %s: %w", key, err)
	}
	return fields, nil
}

func (s *Store) HashIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	n, err := s.rdb.HIncrBy(ctx, key, field, delta).Result()
	if err != nil {
		return 0, fmt.Errorf("HINCRBY %s %s: %w", key, field, err)
	}
	return n, nil
}

func (s *Store) SetAdd(ctx context.Context, key, member string) (bool, error) {
	added, err := s.rdb.SAdd(ctx, key, member).Result()
	if err != nil {
		return false, fmt.Errorf("SADD %s: %w", key, err)
	}
	return added == 1, nil
}

func (s *Store) SetRemove(ctx context.Context, key, member string) error {
	if err := s.rdb.SRem(ctx, key, member).Err(); err != nil {
		return fmt.Errorf("SREM %s: %w", key, err)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("EXISTS %s: %w", key, err)
	}
	return n > 0, nil
}

func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.rdb.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("EXPIRE %s: %w", key, err)
	}
	return nil
}

func (s *Store) SortedSetAdd(ctx context.Context, key, member string, score float64) error {
	if err := s.rdb.ZAdd(ctx, key, goredis.Z{Score: score, Member: member}).Err(); err != nil {
		return fmt.Errorf("ZADD %s: %w", key, err)
	}
	return nil
}

func (s *Store) SortedSetIncrBy(ctx context.Context, key, member string, delta float64) (float64, error) {
	score, err := s.rdb.ZIncrBy(ctx, key, delta, member).Result()
	if err != nil {
		return 0, fmt.Errorf("ZINCRBY %s: %w", key, err)
	}
	return score, nil
}

func (s *Store) SortedSetScore(ctx context.Context, key, member string) (float64, bool, error) {
	score, err := s.rdb.ZScore(ctx, key, member).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("ZSCORE %s: %w", key, err)
	}
	return score, true, nil
}

func (s *Store) SortedSetRevRangeByRank(ctx context.Context, key string, start, stop int64) ([]string, error) {
	members, err := s.rdb.ZRevRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("ZREVRANGE %s: %w", key, err)
	}
	return members, nil
}

// SortedSetIntersectMax pipelines ZINTERSTORE and EXPIRE so the view and its
// time-to-live land together.
func (s *Store) SortedSetIntersectMax(ctx context.Context, dest string, ttl time.Duration, sources ...string) error {
	pipe := s.rdb.TxPipeline()
	pipe.ZInterStore(ctx, dest, &goredis.ZStore{
		Keys:      sources,
		Aggregate: "MAX",
	})
	pipe.Expire(ctx, dest, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("ZINTERSTORE %s: %w", dest, err)
	}
	return nil
}

// Batch runs the recorded writes as a MULTI/EXEC transaction.
func (s *Store) Batch(ctx context.Context, fn func(b board.Batch)) error {
	pipe := s.rdb.TxPipeline()
	fn(&redisBatch{ctx: ctx, pipe: pipe})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("batch exec: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

type redisBatch struct {
	ctx  context.Context
	pipe goredis.Pipeliner
}

var _ board.Batch = (*redisBatch)(nil)

func (b *redisBatch) HashSetAll(key string, fields map[string]any) {
	b.pipe.HSet(b.ctx, key, fields)
}

func (b *redisBatch) SetAdd(key, member string) {
	b.pipe.SAdd(b.ctx, key, member)
}

func (b *redisBatch) SortedSetAdd(key, member string, score float64) {
	b.pipe.ZAdd(b.ctx, key, goredis.Z{Score: score, Member: member})
}

func (b *redisBatch) Expire(key string, ttl time.Duration) {
	b.pipe.Expire(b.ctx, key, ttl)
}
