package reconcile

import (
	"context"

	"github.com/marvalsa/Integration-Web-Site/core/crm"
	"github.com/marvalsa/Integration-Web-Site/core/report"
)

// Source yields every raw record of the entity's current upstream state.
// crm.Pager is the production implementation.
type Source interface {
	Each(ctx context.Context, fn func(crm.Record) error) error
}

// Strategy is the per-entity behavior the engine is parameterized by: how to
// key a record, how to write it, and how to remove rows that fell out of the
// active set. Everything else (pagination, dedup, phase ordering, accounting)
// is the engine's.
type Strategy interface {
	// Task is the human-readable task name carried on the run report.
	Task() string

	// NaturalKey extracts the record's canonical key. Returning "" drops the
	// record before it reaches the active set.
	NaturalKey(rec crm.Record) string

	// Upsert writes one record to the store. Per-record failures are returned
	// as errors and isolated by the engine; the given report may be used to
	// attach finer-grained outcomes (e.g. child rows).
	Upsert(ctx context.Context, rec crm.Record, rep *report.Report) error

	// Sweep deletes every row whose key is not in active and returns the
	// number of rows removed. active may be empty only when the engine's
	// wipe-on-empty policy allows it.
	Sweep(ctx context.Context, active []string) (int64, error)
}

// Preparer is an optional Strategy extension invoked between mark and sync
// with the deduplicated record set. Parent/child entities use it to collect
// the child active set and prefetch child records before any write happens.
// A Preparer error is fatal to the run: an incomplete child set must never
// reach the sweep.
type Preparer interface {
	Prepare(ctx context.Context, recs []crm.Record, rep *report.Report) error
}

// Referencer optionally customizes the reference string attached to
// per-record failures. Without it the engine uses the natural key.
type Referencer interface {
	Reference(rec crm.Record) string
}
