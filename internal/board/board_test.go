package board

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// fixture wires the four components over a shared MemoryStore and fake clock.
type fixture struct {
	store   *MemoryStore
	clock   *clockwork.FakeClock
	cfg     Config
	repo    *ArticleRepository
	ledger  *VoteLedger
	groups  *GroupIndex
	listing *ListingService
}

func newFixture() *fixture {
	return newFixtureWithStore(nil)
}

// newFixtureWithStore lets tests interpose a wrapping Store (e.g. a call
// counter) between the components and the memory backend.
func newFixtureWithStore(wrap func(Store) Store) *fixture {
	clock := clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0))
	mem := NewMemoryStore(clock)
	cfg := DefaultConfig()

	var store Store = mem
	if wrap != nil {
		store = wrap(mem)
	}

	groups := NewGroupIndex(store, cfg)
	return &fixture{
		store:   mem,
		clock:   clock,
		cfg:     cfg,
		repo:    NewArticleRepository(store, clock, cfg),
		ledger:  NewVoteLedger(store, clock, cfg),
		groups:  groups,
		listing: NewListingService(store, groups, cfg),
	}
}

// countingStore wraps a Store and counts calls by method name.
type countingStore struct {
	Store
	mu    sync.Mutex
	calls map[string]int
}

func newCountingStore(inner Store) *countingStore {
	return &countingStore{Store: inner, calls: make(map[string]int)}
}

func (c *countingStore) count(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[method]++
}

func (c *countingStore) callCount(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

func (c *countingStore) Exists(ctx context.Context, key string) (bool, error) {
	c.count("Exists")
	return c.Store.Exists(ctx, key)
}

func (c *countingStore) SortedSetIntersectMax(ctx context.Context, dest string, ttl time.Duration, sources ...string) error {
	c.count("SortedSetIntersectMax")
	return c.Store.SortedSetIntersectMax(ctx, dest, ttl, sources...)
}
