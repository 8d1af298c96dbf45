// Package redis implements the board.Store capability on a Redis backend.
//
// A single Store type maps each capability primitive onto one Redis command,
// inheriting Redis's per-command atomicity. Creation batches run as a
// transactional pipeline. Client hooks add operation metrics and a circuit
// breaker so a dead backend fails fast instead of hanging callers.
package redis
