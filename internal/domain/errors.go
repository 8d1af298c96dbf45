package domain

import "errors"

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrUnknownOrder    = errors.New("unknown ordering index")
	ErrInvalidPage     = errors.New("page numbers start at 1")
)
