package domain

// VoteOutcome is the result of a vote attempt. Rejections are normal
// business outcomes, not errors.
type VoteOutcome string

const (
	// VoteApplied means the vote was counted.
	VoteApplied VoteOutcome = "applied"
	// VoteAlreadyCast means this user already voted on the article.
	VoteAlreadyCast VoteOutcome = "already_voted"
	// VoteExpired means the article's voting window has elapsed.
	VoteExpired VoteOutcome = "expired"
)

// VoteDirection labels the two vote kinds for metrics and logging.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)
