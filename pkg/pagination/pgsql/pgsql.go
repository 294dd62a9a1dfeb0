// Package pgsql renders a pagination.WhereClause as a parameterised PostgreSQL fragment.
// Nothing is executed; the caller appends the fragment to its own SELECT.
package pgsql

import (
	"fmt"
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/apikit/pkg/objutil"
	"github.com/DjordjeVuckovic/apikit/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

const (
	limitArg  = "limit"
	offsetArg = "offset"
)

// Build renders the full WHERE / ORDER BY / LIMIT / OFFSET tail of a query
func Build(w pagination.WhereClause) (string, pgx.NamedArgs) {
	where, args := Where(w.Where)

	parts := make([]string, 0, 3)
	if where != "" {
		parts = append(parts, "WHERE "+where)
	}
	if orderBy := OrderBy(w.OrderBy); orderBy != "" {
		parts = append(parts, "ORDER BY "+orderBy)
	}
	parts = append(parts, fmt.Sprintf("LIMIT @%s OFFSET @%s", limitArg, offsetArg))

	args[limitArg] = w.Limit
	args[offsetArg] = w.Skip

	return strings.Join(parts, " "), args
}

// Where renders equality predicates joined by AND.
// nil values become IS NULL and slices become = ANY(...).
func Where(where map[string]any) (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{}
	if len(where) == 0 {
		return "", args
	}

	conds := make([]string, 0, len(where))
	for i, key := range sortedKeys(where) {
		column := identifier(key)
		value := where[key]

		if objutil.IsNil(value) {
			conds = append(conds, column+" IS NULL")
			continue
		}

		name := fmt.Sprintf("where_%d", i)
		args[name] = value
		if _, ok := objutil.ListElements(value); ok {
			conds = append(conds, fmt.Sprintf("%s = ANY(@%s)", column, name))
		} else {
			conds = append(conds, fmt.Sprintf("%s = @%s", column, name))
		}
	}

	return strings.Join(conds, " AND "), args
}

// OrderBy renders the ordering keys, sorted by column name.
// Any direction other than desc is rendered as ASC.
func OrderBy(orderBy map[string]pagination.SortOrder) string {
	if len(orderBy) == 0 {
		return ""
	}

	cols := make([]string, 0, len(orderBy))
	for _, key := range sortedKeys(orderBy) {
		if key == "" {
			continue
		}
		cols = append(cols, identifier(key)+" "+direction(orderBy[key]))
	}

	return strings.Join(cols, ", ")
}

func direction(o pagination.SortOrder) string {
	if strings.EqualFold(string(o), string(pagination.SortDesc)) {
		return "DESC"
	}
	return "ASC"
}

// identifier quotes a possibly schema-qualified column name ("a.b" -> "a"."b")
func identifier(key string) string {
	return pgx.Identifier(strings.Split(key, ".")).Sanitize()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
