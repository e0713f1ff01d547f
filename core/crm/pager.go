package crm

import (
	"context"
	"fmt"
)

// Pager drives offset-based COQL pagination, yielding every record of the
// select exactly as the source returns it (duplicates included). The sequence
// is lazy, finite and non-restartable: a failed page surfaces immediately and
// the run is expected to treat it as fatal, since offsets are recomputed from
// scratch on restart.
type Pager struct {
	Client   Querier
	Select   string // COQL select without a LIMIT clause
	PageSize int
}

// Each fetches pages until exhaustion, invoking fn for every raw record.
// An empty data page terminates the walk even if the source still claims
// more_records; the flag has been observed to lie on the last page.
func (p *Pager) Each(ctx context.Context, fn func(Record) error) error {
	limit := p.PageSize
	if limit <= 0 {
		limit = 200
	}

	for offset := 0; ; offset += limit {
		page, err := p.Client.Query(ctx, p.Select, offset, limit)
		if err != nil {
			return fmt.Errorf("page fetch at offset %d: %w", offset, err)
		}
		if page == nil || len(page.Data) == 0 {
			return nil
		}
		for _, rec := range page.Data {
			if err := fn(rec); err != nil {
				return err
			}
		}
		if !page.MoreRecords {
			return nil
		}
	}
}
