package sequence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DefaultStart seeds brand-new sequences well above any identifier range
// the CRM hands out, so locally minted ids can never collide with source ids.
const DefaultStart int64 = 1000000000000000001

// Allocator hands out blocks of identifiers from a named row in the
// "Sequences" table. Reservation is a single upsert, so concurrent callers
// always receive disjoint blocks.
type Allocator struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Allocator {
	return &Allocator{db: db}
}

// Reserve claims n consecutive identifiers from the named sequence and
// returns the first of them. The sequence row is created on first use.
func (a *Allocator) Reserve(ctx context.Context, name string, n int64) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("reserve: block size must be positive, got %d", n)
	}

	var next int64
	err := a.db.WithContext(ctx).Raw(
		`INSERT INTO "Sequences" (name, next_value) VALUES (?, ? + ?)
		 ON CONFLICT (name) DO UPDATE SET next_value = "Sequences".next_value + ?
		 RETURNING next_value`,
		name, DefaultStart, n, n,
	).Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("reserve %d ids from sequence %q: %w", n, name, err)
	}
	return next - n, nil
}
