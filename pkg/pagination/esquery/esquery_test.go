package esquery

import (
	"testing"

	"github.com/DjordjeVuckovic/apikit/pkg/pagination"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	page, limit := 3, 20
	w := pagination.GenerateWhereClause(
		pagination.Query{Page: &page, Limit: &limit},
		pagination.Sort{Key: "publishedAt", Value: pagination.SortDesc},
		map[string]any{"language": "en"},
	)

	req := Build(w)

	require.NotNil(t, req.From)
	require.NotNil(t, req.Size)
	assert.Equal(t, 40, *req.From)
	assert.Equal(t, 20, *req.Size)

	require.Len(t, req.Sort, 1)
	opts, ok := req.Sort[0].(*types.SortOptions)
	require.True(t, ok)
	require.Contains(t, opts.SortOptions, "publishedAt")
	assert.Equal(t, sortorder.Desc, *opts.SortOptions["publishedAt"].Order)

	require.NotNil(t, req.Query)
	require.NotNil(t, req.Query.Bool)
	require.Len(t, req.Query.Bool.Filter, 1)
	assert.Equal(t, "en", req.Query.Bool.Filter[0].Term["language"].Value)
}

func TestSort_DirectionAndOrder(t *testing.T) {
	sorts := Sort(map[string]pagination.SortOrder{
		"title": "asc",
		"score": "DESC",
		"":      "desc",
	})

	require.Len(t, sorts, 2)

	first := sorts[0].(*types.SortOptions)
	assert.Equal(t, sortorder.Desc, *first.SortOptions["score"].Order)

	second := sorts[1].(*types.SortOptions)
	assert.Equal(t, sortorder.Asc, *second.SortOptions["title"].Order)
}

func TestFilter(t *testing.T) {
	q := Filter(map[string]any{
		"category": []string{"tech", "science"},
		"deleted":  nil,
		"source":   "bbc",
	})

	require.NotNil(t, q.Bool)
	require.Len(t, q.Bool.Filter, 2)
	require.Len(t, q.Bool.MustNot, 1)

	require.NotNil(t, q.Bool.Filter[0].Terms)
	assert.Equal(t,
		[]types.FieldValue{"tech", "science"},
		q.Bool.Filter[0].Terms.TermsQuery["category"])
	assert.Equal(t, "bbc", q.Bool.Filter[1].Term["source"].Value)
	assert.Equal(t, "deleted", q.Bool.MustNot[0].Exists.Field)
}

func TestFilter_UUIDIsScalar(t *testing.T) {
	id := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	other := uuid.MustParse("987fcdeb-51a2-43d7-b890-123456789abc")

	q := Filter(map[string]any{
		"owner_id": id,
		"team_id":  []uuid.UUID{id, other},
	})

	require.NotNil(t, q.Bool)
	require.Len(t, q.Bool.Filter, 2)

	require.NotNil(t, q.Bool.Filter[0].Term)
	assert.Nil(t, q.Bool.Filter[0].Terms)
	assert.Equal(t, id, q.Bool.Filter[0].Term["owner_id"].Value)

	require.NotNil(t, q.Bool.Filter[1].Terms)
	assert.Equal(t,
		[]types.FieldValue{id, other},
		q.Bool.Filter[1].Terms.TermsQuery["team_id"])
}

func TestFilter_EmptyMatchesAll(t *testing.T) {
	q := Filter(nil)

	assert.NotNil(t, q.MatchAll)
	assert.Nil(t, q.Bool)
}
