// Package reconcile implements the generic mark/sync/sweep reconciliation
// that keeps a mirrored table converged with the upstream source's active set.
//
// Every mirrored entity is an Engine parameterized by a small Strategy
// (natural key extraction, row upsert, bulk sweep). The engine owns the
// phase ordering and its safety properties:
//
//   - mark drains all pages before any write happens, so the active set used
//     by the sweep is always complete;
//   - per-record write failures are counted and detailed on the run report
//     but never abort the run;
//   - transport failures during mark/prepare, and sweep failures, are
//     critical: the run stops and no (further) deletion happens;
//   - an empty active set only triggers the delete-all sweep when the
//     wipe-on-empty policy is explicitly enabled.
//
// After a successful run the table's primary keys equal exactly the
// deduplicated key set seen across all source pages.
package reconcile
