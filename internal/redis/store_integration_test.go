package redis

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhigyani/rankboard/internal/board"
	"github.com/abhigyani/rankboard/internal/domain"
)

func TestIncrementAllocatesSequentialIDs(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first, err := store.Increment(ctx, "article:")
	require.NoError(t, err)
	second, err := store.Increment(ctx, "article:")
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}

func TestSetAddReportsNewMembers(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	wasNew, err := store.SetAdd(ctx, "voted:1", "alice")
	require.NoError(t, err)
	assert.True(t, wasNew)

	wasNew, err = store.SetAdd(ctx, "voted:1", "alice")
	require.NoError(t, err)
	assert.False(t, wasNew)
}

func TestSortedSetScoreAbsentMember(t *testing.T) {
	store := setupTestStore(t)

	_, ok, err := store.SortedSetScore(context.Background(), "time:", "42")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSortedSetRevRangeOrdersByScore(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SortedSetAdd(ctx, "score:", "1", 5))
	require.NoError(t, store.SortedSetAdd(ctx, "score:", "2", 3))
	require.NoError(t, store.SortedSetAdd(ctx, "score:", "3", 8))

	members, err := store.SortedSetRevRangeByRank(ctx, "score:", 0, 24)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1", "2"}, members)
}

func TestIntersectMaxBuildsExpiringView(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.SetAdd(ctx, "group:g", "1")
	require.NoError(t, err)
	require.NoError(t, store.SortedSetAdd(ctx, "score:", "1", 500))
	require.NoError(t, store.SortedSetAdd(ctx, "score:", "2", 700))

	require.NoError(t, store.SortedSetIntersectMax(ctx, "score:group:g", time.Minute, "group:g", "score:"))

	exists, err := store.Exists(ctx, "score:group:g")
	require.NoError(t, err)
	require.True(t, exists)

	score, ok, err := store.SortedSetScore(ctx, "score:group:g", "1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, float64(500), score, "max of zset score 500 and set score 1")

	_, ok, err = store.SortedSetScore(ctx, "score:group:g", "2")
	require.NoError(t, err)
	assert.False(t, ok, "member 2 is not in the group")

	ttl, err := store.rdb.TTL(ctx, "score:group:g").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestBatchWritesAreAtomicallyVisible(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.Batch(ctx, func(b board.Batch) {
		b.HashSetAll("article:1", map[string]any{"title": "Flask", "votes": 1})
		b.SetAdd("voted:1", "alice")
		b.Expire("voted:1", time.Hour)
		b.SortedSetAdd("time:", "1", 1000)
	})
	require.NoError(t, err)

	fields, err := store.HashGetAll(ctx, "article:1")
	require.NoError(t, err)
	assert.Equal(t, "Flask", fields["title"])

	ttl, err := store.rdb.TTL(ctx, "voted:1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

// TestBoardEngineOverRedis runs the full engine flow against a real backend.
func TestBoardEngineOverRedis(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	cfg := board.DefaultConfig()
	clock := clockwork.NewRealClock()
	repo := board.NewArticleRepository(store, clock, cfg)
	ledger := board.NewVoteLedger(store, clock, cfg)
	groups := board.NewGroupIndex(store, cfg)
	listing := board.NewListingService(store, groups, cfg)

	id, err := repo.CreateArticle(ctx, "u1", "Flask", "http://x")
	require.NoError(t, err)

	outcome, err := ledger.UpVote(ctx, id, "u2")
	require.NoError(t, err)
	require.Equal(t, domain.VoteApplied, outcome)

	outcome, err = ledger.UpVote(ctx, id, "u2")
	require.NoError(t, err)
	require.Equal(t, domain.VoteAlreadyCast, outcome)

	article, err := repo.GetArticle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), article.Votes)

	require.NoError(t, groups.AddToGroups(ctx, id, "programming"))

	articles, err := listing.ListGroupArticles(ctx, "programming", 1, domain.OrderScore)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, id, articles[0].ID)
	assert.Equal(t, int64(2), articles[0].Votes)
}
