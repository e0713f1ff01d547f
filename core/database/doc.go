// Package database manages the PostgreSQL connection used as the mirror store.
//
// The pool is intentionally small: every upsert and sweep acquires a connection
// for the duration of a single statement, so a stuck record cannot starve
// concurrent entity runs.
package database
