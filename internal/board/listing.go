package board

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/abhigyani/rankboard/internal/domain"
	"github.com/abhigyani/rankboard/internal/metrics"
	"github.com/abhigyani/rankboard/internal/platform/retry"
)

// ListingService paginates an ordered index (global or group-intersected) and
// hydrates article bodies. Index reads are idempotent and retried on transient
// store faults; nothing here mutates state.
type ListingService struct {
	store  Store
	groups *GroupIndex
	cfg    Config
	policy retry.Policy
}

func NewListingService(store Store, groups *GroupIndex, cfg Config) *ListingService {
	return &ListingService{
		store:  store,
		groups: groups,
		cfg:    cfg,
		policy: retry.Policy{
			MaxAttempts:    3,
			InitialBackoff: 50 * time.Millisecond,
		},
	}
}

// ListArticles returns page (1-based) of the chosen ordering index in
// descending score order. Pages beyond the available range are empty, not
// errors.
func (s *ListingService) ListArticles(ctx context.Context, page int64, order domain.Order) ([]domain.RankedArticle, error) {
	return s.listIndex(ctx, indexKey(order), page)
}

// ListGroupArticles is ListArticles restricted to a group, paginating the
// cached intersection view instead of the raw index.
func (s *ListingService) ListGroupArticles(ctx context.Context, group string, page int64, order domain.Order) ([]domain.RankedArticle, error) {
	key, err := s.groups.GroupView(ctx, group, order)
	if err != nil {
		return nil, err
	}
	return s.listIndex(ctx, key, page)
}

func (s *ListingService) listIndex(ctx context.Context, key string, page int64) ([]domain.RankedArticle, error) {
	if page < 1 {
		return nil, domain.ErrInvalidPage
	}

	start := (page - 1) * s.cfg.PageSize
	end := start + s.cfg.PageSize - 1

	ids, err := retry.Do(ctx, s.policy, classifyStoreErr, func() ([]string, error) {
		return s.store.SortedSetRevRangeByRank(ctx, key, start, end)
	})
	if err != nil {
		return nil, err
	}

	articles := make([]domain.RankedArticle, 0, len(ids))
	for _, rawID := range ids {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			// Defensive: a non-numeric index member is an inconsistency,
			// never a failed page.
			slog.Warn("skipping malformed index member", "index", key, "member", rawID)
			metrics.DanglingIndexEntriesTotal.Inc()
			continue
		}

		fields, err := retry.Do(ctx, s.policy, classifyStoreErr, func() (map[string]string, error) {
			return s.store.HashGetAll(ctx, articleKey(id))
		})
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			slog.Warn("index entry without article record", "index", key, "article_id", id)
			metrics.DanglingIndexEntriesTotal.Inc()
			continue
		}

		article, err := parseArticle(fields)
		if err != nil {
			slog.Warn("skipping malformed article record", "article_id", id, "error", err)
			metrics.DanglingIndexEntriesTotal.Inc()
			continue
		}

		articles = append(articles, domain.RankedArticle{ID: id, Article: article})
	}

	return articles, nil
}

// classifyStoreErr treats caller cancellation as permanent and everything else
// the store reports as transient.
func classifyStoreErr(err error) retry.Action {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retry.Stop
	}
	return retry.Retry
}
