package board

import "time"

// Config carries the ranking policy knobs. Represented as named fields rather
// than package constants so deployments and tests can vary them.
type Config struct {
	// VoteBonus is the score weight of a single vote.
	VoteBonus float64
	// EligibilityWindow is how long after creation an article accepts votes.
	EligibilityWindow time.Duration
	// PageSize is the number of articles per listing page.
	PageSize int64
	// GroupViewTTL is how long a cached group view stays valid.
	GroupViewTTL time.Duration
}

// DefaultConfig returns the reference policy: 432 points per vote, a one-week
// voting window, 25 articles per page, and 60s group view caching.
func DefaultConfig() Config {
	return Config{
		VoteBonus:         432,
		EligibilityWindow: 7 * 24 * time.Hour,
		PageSize:          25,
		GroupViewTTL:      60 * time.Second,
	}
}
