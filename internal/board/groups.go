package board

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/abhigyani/rankboard/internal/domain"
	"github.com/abhigyani/rankboard/internal/metrics"
)

// GroupIndex maintains group membership sets and cached, time-limited
// intersection views for group-scoped ranked queries.
type GroupIndex struct {
	store Store
	cfg   Config
}

func NewGroupIndex(store Store, cfg Config) *GroupIndex {
	return &GroupIndex{store: store, cfg: cfg}
}

// AddToGroups adds the article to each named group. Adding an already-present
// member is a no-op.
func (g *GroupIndex) AddToGroups(ctx context.Context, id int64, groups ...string) error {
	for _, group := range lo.Uniq(groups) {
		if _, err := g.store.SetAdd(ctx, groupKey(group), member(id)); err != nil {
			return fmt.Errorf("add article %d to group %q: %w", id, group, err)
		}
	}
	return nil
}

// RemoveFromGroups removes the article from each named group. Removing an
// absent member is a no-op.
func (g *GroupIndex) RemoveFromGroups(ctx context.Context, id int64, groups ...string) error {
	for _, group := range lo.Uniq(groups) {
		if err := g.store.SetRemove(ctx, groupKey(group), member(id)); err != nil {
			return fmt.Errorf("remove article %d from group %q: %w", id, group, err)
		}
	}
	return nil
}

// GroupView returns the key of the cached intersection of the group's
// membership set with the chosen ordering index. Existence of the key is the
// sole freshness signal; the store's TTL retires stale views. The
// check-then-create sequence is deliberately not atomic: a concurrent rebuild
// is redundant but never wrong, since the intersection content is exact at
// computation time.
func (g *GroupIndex) GroupView(ctx context.Context, group string, order domain.Order) (string, error) {
	key := viewKey(order, group)

	exists, err := g.store.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("check group view %q: %w", key, err)
	}
	if exists {
		return key, nil
	}

	if err := g.store.SortedSetIntersectMax(ctx, key, g.cfg.GroupViewTTL, groupKey(group), indexKey(order)); err != nil {
		return "", fmt.Errorf("build group view %q: %w", key, err)
	}

	metrics.GroupViewRebuildsTotal.Inc()
	return key, nil
}
