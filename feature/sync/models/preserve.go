package models

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreserveNotNull builds an ON CONFLICT assignment that keeps the stored
// value once it has been set, only filling NULLs from the incoming row.
// Editors own these columns after the first sync.
func PreserveNotNull(table, column string) clause.Assignment {
	return clause.Assignment{
		Column: clause.Column{Name: column},
		Value: gorm.Expr(fmt.Sprintf(
			`CASE WHEN %[1]q.%[2]q IS NOT NULL THEN %[1]q.%[2]q ELSE EXCLUDED.%[2]q END`,
			table, column,
		)),
	}
}

// PreserveJSONArray builds an ON CONFLICT assignment for jsonb gallery
// columns: a stored non-empty array wins over the incoming value, anything
// else (NULL, empty array, non-array) is replaced.
func PreserveJSONArray(table, column string) clause.Assignment {
	return clause.Assignment{
		Column: clause.Column{Name: column},
		Value: gorm.Expr(fmt.Sprintf(
			`CASE WHEN jsonb_typeof(%[1]q.%[2]q) = 'array' AND jsonb_array_length(%[1]q.%[2]q) > 0 THEN %[1]q.%[2]q ELSE EXCLUDED.%[2]q END`,
			table, column,
		)),
	}
}
