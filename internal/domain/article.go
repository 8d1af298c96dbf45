package domain

// Article is the canonical record for a submitted article.
// All fields except Votes are set once at creation. Votes is mutated
// only by the vote ledger.
type Article struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Poster    string `json:"poster"`
	CreatedAt int64  `json:"created_at"`
	Votes     int64  `json:"votes"`
}

// RankedArticle is an Article annotated with its identifier, as returned
// by listing queries.
type RankedArticle struct {
	ID int64 `json:"id"`
	Article
}
