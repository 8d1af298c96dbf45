// Package domain defines the core domain types shared across the board.
//
// This package contains concept-oriented files (article.go, vote.go, order.go,
// errors.go) with shared types and sentinel errors. No implementation code -
// just contracts. Prevents circular imports by keeping types on the consumer side.
package domain
