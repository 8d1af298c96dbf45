package board

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/abhigyani/rankboard/internal/domain"
	"github.com/abhigyani/rankboard/internal/metrics"
)

// VoteLedger applies vote deltas and enforces the eligibility window and the
// one-vote-per-user guarantee. Deduplication is delivered by the store's
// atomic set test-and-add, not by locking here.
type VoteLedger struct {
	store Store
	clock clockwork.Clock
	cfg   Config
}

func NewVoteLedger(store Store, clock clockwork.Clock, cfg Config) *VoteLedger {
	return &VoteLedger{store: store, clock: clock, cfg: cfg}
}

// UpVote records an up-vote by user on the article. Exactly one of N
// concurrent calls for the same (article, user) pair observes a fresh
// voter-set addition and applies the vote count and score deltas.
func (l *VoteLedger) UpVote(ctx context.Context, id int64, user string) (domain.VoteOutcome, error) {
	eligible, err := l.eligible(ctx, id)
	if err != nil {
		return "", err
	}
	if !eligible {
		metrics.VotesTotal.WithLabelValues(string(domain.VoteUp), string(domain.VoteExpired)).Inc()
		return domain.VoteExpired, nil
	}

	wasNew, err := l.store.SetAdd(ctx, votedKey(id), user)
	if err != nil {
		return "", fmt.Errorf("record voter on article %d: %w", id, err)
	}
	if !wasNew {
		metrics.VotesTotal.WithLabelValues(string(domain.VoteUp), string(domain.VoteAlreadyCast)).Inc()
		return domain.VoteAlreadyCast, nil
	}

	if _, err := l.store.HashIncrBy(ctx, articleKey(id), fieldVotes, 1); err != nil {
		return "", fmt.Errorf("increment vote count on article %d: %w", id, err)
	}
	if _, err := l.store.SortedSetIncrBy(ctx, scoreIndexKey, member(id), l.cfg.VoteBonus); err != nil {
		return "", fmt.Errorf("increase score of article %d: %w", id, err)
	}

	metrics.VotesTotal.WithLabelValues(string(domain.VoteUp), string(domain.VoteApplied)).Inc()
	return domain.VoteApplied, nil
}

// DownVote lowers the article's ranking score by one vote bonus. Down-votes
// are not deduplicated per user and do not touch the vote count; only the
// score index moves.
func (l *VoteLedger) DownVote(ctx context.Context, id int64) (domain.VoteOutcome, error) {
	eligible, err := l.eligible(ctx, id)
	if err != nil {
		return "", err
	}
	if !eligible {
		metrics.VotesTotal.WithLabelValues(string(domain.VoteDown), string(domain.VoteExpired)).Inc()
		return domain.VoteExpired, nil
	}

	if _, err := l.store.SortedSetIncrBy(ctx, scoreIndexKey, member(id), -l.cfg.VoteBonus); err != nil {
		return "", fmt.Errorf("decrease score of article %d: %w", id, err)
	}

	metrics.VotesTotal.WithLabelValues(string(domain.VoteDown), string(domain.VoteApplied)).Inc()
	return domain.VoteApplied, nil
}

// eligible checks the article's age against the voting window. The time index
// is the source of truth for createdAt; absence there means the article does
// not exist.
func (l *VoteLedger) eligible(ctx context.Context, id int64) (bool, error) {
	createdAt, ok, err := l.store.SortedSetScore(ctx, timeIndexKey, member(id))
	if err != nil {
		return false, fmt.Errorf("read creation time of article %d: %w", id, err)
	}
	if !ok {
		return false, domain.ErrArticleNotFound
	}

	cutoff := float64(l.clock.Now().Add(-l.cfg.EligibilityWindow).Unix())
	return createdAt >= cutoff, nil
}
