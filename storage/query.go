package storage

import (
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// applyFind builds the common Find query shape: an exact-match conjunction
// over the filter fields, a single-field sort ("-field" means descending),
// and an optional limit (0 returns all matches).
func applyFind(q *gorm.DB, filter map[string]interface{}, sort string, limit int) *gorm.DB {
	if len(filter) > 0 {
		q = q.Where(filter)
	}
	if expr := orderExpr(sort); expr != "" {
		q = q.Order(expr)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}

func orderExpr(sort string) string {
	if sort == "" {
		return ""
	}
	field := sort
	desc := false
	if strings.HasPrefix(field, "-") {
		field = field[1:]
		desc = true
	}
	col := toSnake(field)
	if col == "" {
		return ""
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

// toSnake converts the facade's camelCase field names ("createdAt") to the
// underlying column names ("created_at").
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
