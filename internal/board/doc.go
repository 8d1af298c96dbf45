// Package board implements the ranking and voting engine.
//
// ArticleRepository owns article creation and retrieval, VoteLedger enforces
// the one-vote-per-user window, GroupIndex maintains group sets and cached
// intersection views, and ListingService paginates the ordered indexes.
// All state lives behind the Store interface; concurrency correctness rests
// on the store's per-operation atomicity (no application-level locking).
package board
