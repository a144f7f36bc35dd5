package repositories

import (
	"strings"

	"gorm.io/gorm"
)

// applySearch adds a case-insensitive substring match OR-combined over the
// given columns. LOWER/LIKE is used instead of ILIKE so the same predicate
// runs on Postgres and the sqlite test driver.
func applySearch(tx *gorm.DB, q string, columns ...string) *gorm.DB {
	if q == "" {
		return tx
	}
	pattern := "%" + strings.ToLower(q) + "%"
	clauses := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		clauses = append(clauses, "LOWER("+col+") LIKE ?")
		args = append(args, pattern)
	}
	return tx.Where(strings.Join(clauses, " OR "), args...)
}

// applyContainsAll narrows a JSON-list text column to rows containing every
// given value. List columns are stored JSON-encoded, so each value appears
// quoted; one LIKE per value makes the filter an AND of exact-element
// matches.
func applyContainsAll(tx *gorm.DB, column string, values []string) *gorm.DB {
	for _, v := range values {
		tx = tx.Where(column+" LIKE ?", `%"`+v+`"%`)
	}
	return tx
}
