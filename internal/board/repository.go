package board

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jonboulle/clockwork"

	"github.com/abhigyani/rankboard/internal/domain"
	"github.com/abhigyani/rankboard/internal/metrics"
)

// ArticleRepository owns article creation and retrieval. It maintains the
// article hash plus the time and score indexes.
type ArticleRepository struct {
	store Store
	clock clockwork.Clock
	cfg   Config
}

func NewArticleRepository(store Store, clock clockwork.Clock, cfg Config) *ArticleRepository {
	return &ArticleRepository{store: store, clock: clock, cfg: cfg}
}

// CreateArticle allocates a fresh identifier and writes the article record,
// both indexes, and the poster-seeded voter set as one atomic batch. The poster
// counts as the first vote, so the score index is seeded with createdAt plus
// one vote bonus.
func (r *ArticleRepository) CreateArticle(ctx context.Context, user, title, link string) (int64, error) {
	id, err := r.store.Increment(ctx, idCounterKey)
	if err != nil {
		return 0, fmt.Errorf("allocate article id: %w", err)
	}

	now := r.clock.Now().Unix()
	err = r.store.Batch(ctx, func(b Batch) {
		b.HashSetAll(articleKey(id), map[string]any{
			fieldTitle:  title,
			fieldLink:   link,
			fieldPoster: user,
			fieldTime:   now,
			fieldVotes:  1,
		})
		b.SetAdd(votedKey(id), user)
		b.Expire(votedKey(id), r.cfg.EligibilityWindow)
		b.SortedSetAdd(timeIndexKey, member(id), float64(now))
		b.SortedSetAdd(scoreIndexKey, member(id), float64(now)+r.cfg.VoteBonus)
	})
	if err != nil {
		return 0, fmt.Errorf("write article %d: %w", id, err)
	}

	metrics.ArticlesCreatedTotal.Inc()
	return id, nil
}

// GetArticle hydrates a single article record.
func (r *ArticleRepository) GetArticle(ctx context.Context, id int64) (domain.Article, error) {
	fields, err := r.store.HashGetAll(ctx, articleKey(id))
	if err != nil {
		return domain.Article{}, fmt.Errorf("read article %d: %w", id, err)
	}
	if len(fields) == 0 {
		return domain.Article{}, domain.ErrArticleNotFound
	}
	return parseArticle(fields)
}

// parseArticle converts the loosely-typed hash payload into a typed record,
// rejecting malformed numeric fields at the boundary.
func parseArticle(fields map[string]string) (domain.Article, error) {
	createdAt, err := strconv.ParseInt(fields[fieldTime], 10, 64)
	if err != nil {
		return domain.Article{}, fmt.Errorf("malformed %q field: %w", fieldTime, err)
	}
	votes, err := strconv.ParseInt(fields[fieldVotes], 10, 64)
	if err != nil {
		return domain.Article{}, fmt.Errorf("malformed %q field: %w", fieldVotes, err)
	}

	return domain.Article{
		Title:     fields[fieldTitle],
		Link:      fields[fieldLink],
		Poster:    fields[fieldPoster],
		CreatedAt: createdAt,
		Votes:     votes,
	}, nil
}
