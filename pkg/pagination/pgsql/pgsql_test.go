package pgsql

import (
	"testing"

	"github.com/DjordjeVuckovic/apikit/pkg/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	page, limit := 2, 10
	w := pagination.GenerateWhereClause(
		pagination.Query{Page: &page, Limit: &limit, SortBy: "name", SortOrder: pagination.SortAsc},
		pagination.Sort{Key: "createdAt", Value: pagination.SortDesc},
		map[string]any{"status": "active"},
	)

	sql, args := Build(w)

	assert.Equal(t, `WHERE "status" = @where_0 ORDER BY "name" ASC LIMIT @limit OFFSET @offset`, sql)
	assert.Equal(t, pgx.NamedArgs{"where_0": "active", "limit": 10, "offset": 10}, args)
}

func TestBuild_NoFilter(t *testing.T) {
	sql, args := Build(pagination.WhereClause{
		OrderBy: map[string]pagination.SortOrder{"createdAt": pagination.SortDesc},
		Limit:   20,
	})

	assert.Equal(t, `ORDER BY "createdAt" DESC LIMIT @limit OFFSET @offset`, sql)
	assert.Equal(t, pgx.NamedArgs{"limit": 20, "offset": 0}, args)
}

func TestWhere(t *testing.T) {
	var deletedAt *string

	sql, args := Where(map[string]any{
		"tags":          []string{"go", "sql"},
		"deleted_at":    deletedAt,
		"owner":         nil,
		"public.tenant": "acme",
	})

	assert.Equal(t,
		`"deleted_at" IS NULL AND "owner" IS NULL AND "public"."tenant" = @where_2 AND "tags" = ANY(@where_3)`,
		sql)
	assert.Equal(t, pgx.NamedArgs{"where_2": "acme", "where_3": []string{"go", "sql"}}, args)
}

func TestWhere_UUIDIsScalar(t *testing.T) {
	id := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	other := uuid.MustParse("987fcdeb-51a2-43d7-b890-123456789abc")

	sql, args := Where(map[string]any{
		"owner_id": id,
		"team_id":  []uuid.UUID{id, other},
	})

	assert.Equal(t, `"owner_id" = @where_0 AND "team_id" = ANY(@where_1)`, sql)
	assert.Equal(t, pgx.NamedArgs{"where_0": id, "where_1": []uuid.UUID{id, other}}, args)
}

func TestWhere_Empty(t *testing.T) {
	sql, args := Where(nil)

	assert.Empty(t, sql)
	assert.Empty(t, args)
}

func TestOrderBy_QuotesAndNormalizesDirection(t *testing.T) {
	tests := []struct {
		name    string
		orderBy map[string]pagination.SortOrder
		want    string
	}{
		{name: "desc", orderBy: map[string]pagination.SortOrder{"name": "desc"}, want: `"name" DESC`},
		{name: "upper case desc", orderBy: map[string]pagination.SortOrder{"name": "DESC"}, want: `"name" DESC`},
		{name: "unknown direction", orderBy: map[string]pagination.SortOrder{"name": "sideways"}, want: `"name" ASC`},
		{name: "injection attempt is quoted", orderBy: map[string]pagination.SortOrder{`name"; DROP TABLE x; --`: "asc"}, want: `"name""; DROP TABLE x; --" ASC`},
		{name: "empty", orderBy: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderBy(tt.orderBy))
		})
	}
}
