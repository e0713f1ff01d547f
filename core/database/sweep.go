package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DeleteNotIn removes every row of model whose column is absent from keys and
// returns the number of rows deleted. An empty key set wipes the whole table,
// so callers must gate that case behind an explicit policy check.
func DeleteNotIn(ctx context.Context, db *gorm.DB, model any, column string, keys []string) (int64, error) {
	tx := db.WithContext(ctx)

	var res *gorm.DB
	if len(keys) == 0 {
		res = tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model)
	} else {
		res = tx.Where(fmt.Sprintf("%q NOT IN ?", column), keys).Delete(model)
	}
	if res.Error != nil {
		return 0, fmt.Errorf("delete obsolete rows by %s: %w", column, res.Error)
	}
	return res.RowsAffected, nil
}
