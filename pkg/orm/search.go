package orm

import (
	"strings"

	"gorm.io/gorm"
)

// Lookup is how a search term is matched against a column.
type Lookup string

const (
	IContains   Lookup = "icontains"
	IStartsWith Lookup = "istartswith"
)

// SearchField is one column searched by Search.
type SearchField struct {
	Column string
	Lookup Lookup
}

// Search splits term on whitespace; every word must match at least one of
// fields. Matching is case-insensitive on every supported driver.
func Search(fields []SearchField, term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		words := strings.Fields(term)
		if len(fields) == 0 || len(words) == 0 {
			return db
		}

		for _, word := range words {
			clauses := make([]string, 0, len(fields))
			args := make([]interface{}, 0, len(fields))
			for _, f := range fields {
				clauses = append(clauses, "LOWER("+f.Column+") LIKE ? ESCAPE '!'")
				args = append(args, pattern(f.Lookup, strings.ToLower(word)))
			}
			db = db.Where("("+strings.Join(clauses, " OR ")+")", args...)
		}
		return db
	}
}

func pattern(l Lookup, word string) string {
	escaped := strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`).Replace(word)
	if l == IStartsWith {
		return escaped + "%"
	}
	return "%" + escaped + "%"
}
