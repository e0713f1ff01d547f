package reconcile

import "github.com/marvalsa/Integration-Web-Site/core/crm"

// Index is the identity index built during the mark phase: a mapping from
// natural key to the last-seen record for that key. The source returns
// denormalized rows (one per related sub-object), so the same key routinely
// appears on several pages; last write wins. Iteration order is first-seen
// key order, which keeps runs deterministic.
type Index struct {
	order   []string
	records map[string]crm.Record
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{records: make(map[string]crm.Record)}
}

// Add inserts or overwrites the record for key. Keys must already be in
// canonical string form (Record accessors guarantee this); empty keys are
// ignored so keyless rows never enter the active set.
func (i *Index) Add(key string, rec crm.Record) {
	if key == "" {
		return
	}
	if _, seen := i.records[key]; !seen {
		i.order = append(i.order, key)
	}
	i.records[key] = rec
}

// Len returns the number of unique keys.
func (i *Index) Len() int {
	return len(i.records)
}

// Has reports whether key is in the active set.
func (i *Index) Has(key string) bool {
	_, ok := i.records[key]
	return ok
}

// Keys returns the active key set in first-seen order.
func (i *Index) Keys() []string {
	out := make([]string, len(i.order))
	copy(out, i.order)
	return out
}

// Records returns the unique records in first-seen key order, each holding
// the values of its last occurrence.
func (i *Index) Records() []crm.Record {
	out := make([]crm.Record, 0, len(i.order))
	for _, key := range i.order {
		out = append(out, i.records[key])
	}
	return out
}
