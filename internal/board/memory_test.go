package board

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetAddReportsNewMembers(t *testing.T) {
	store := NewMemoryStore(clockwork.NewFakeClock())
	ctx := context.Background()

	wasNew, err := store.SetAdd(ctx, "voted:1", "alice")
	require.NoError(t, err)
	assert.True(t, wasNew)

	wasNew, err = store.SetAdd(ctx, "voted:1", "alice")
	require.NoError(t, err)
	assert.False(t, wasNew)
}

func TestMemoryStoreKeysExpire(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := NewMemoryStore(clock)
	ctx := context.Background()

	_, err := store.SetAdd(ctx, "voted:1", "alice")
	require.NoError(t, err)
	require.NoError(t, store.Expire(ctx, "voted:1", time.Minute))

	exists, err := store.Exists(ctx, "voted:1")
	require.NoError(t, err)
	require.True(t, exists)

	clock.Advance(2 * time.Minute)

	exists, err = store.Exists(ctx, "voted:1")
	require.NoError(t, err)
	assert.False(t, exists)

	// Expiry also clears membership: the same member reads as new again.
	wasNew, err := store.SetAdd(ctx, "voted:1", "alice")
	require.NoError(t, err)
	assert.True(t, wasNew)
}

func TestMemoryStoreIntersectMaxAggregation(t *testing.T) {
	store := NewMemoryStore(clockwork.NewFakeClock())
	ctx := context.Background()

	// Plain set members score 1; the zset score wins under max aggregation.
	_, err := store.SetAdd(ctx, "group:g", "1")
	require.NoError(t, err)
	_, err = store.SetAdd(ctx, "group:g", "2")
	require.NoError(t, err)
	require.NoError(t, store.SortedSetAdd(ctx, "score:", "1", 500))
	require.NoError(t, store.SortedSetAdd(ctx, "score:", "2", 700))
	require.NoError(t, store.SortedSetAdd(ctx, "score:", "3", 900))

	require.NoError(t, store.SortedSetIntersectMax(ctx, "score:group:g", time.Minute, "group:g", "score:"))

	members, err := store.SortedSetRevRangeByRank(ctx, "score:group:g", 0, 9)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, members, "member 3 is not in the group")

	score, ok, err := store.SortedSetScore(ctx, "score:group:g", "1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, float64(500), score)
}

func TestMemoryStoreBatchIsAtomicallyVisible(t *testing.T) {
	store := NewMemoryStore(clockwork.NewFakeClock())
	ctx := context.Background()

	err := store.Batch(ctx, func(b Batch) {
		b.HashSetAll("article:1", map[string]any{"title": "Flask", "votes": 1})
		b.SetAdd("voted:1", "alice")
		b.SortedSetAdd("time:", "1", 1000)
	})
	require.NoError(t, err)

	fields, err := store.HashGetAll(ctx, "article:1")
	require.NoError(t, err)
	assert.Equal(t, "Flask", fields["title"])
	assert.Equal(t, "1", fields["votes"])

	_, ok, err := store.SortedSetScore(ctx, "time:", "1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStoreRevRangeClampsBounds(t *testing.T) {
	store := NewMemoryStore(clockwork.NewFakeClock())
	ctx := context.Background()

	require.NoError(t, store.SortedSetAdd(ctx, "score:", "1", 10))
	require.NoError(t, store.SortedSetAdd(ctx, "score:", "2", 20))

	members, err := store.SortedSetRevRangeByRank(ctx, "score:", 0, 24)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, members)

	members, err = store.SortedSetRevRangeByRank(ctx, "score:", 25, 49)
	require.NoError(t, err)
	assert.Empty(t, members)
}
