// Package esquery renders a pagination.WhereClause as an Elasticsearch typed search request.
package esquery

import (
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/apikit/pkg/objutil"
	"github.com/DjordjeVuckovic/apikit/pkg/pagination"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
)

// Build maps skip/limit to from/size, orderBy to field sorts and the where
// filter to a bool query of term filters. Use it with client.Search().Request(req).
func Build(w pagination.WhereClause) *search.Request {
	from, size := w.Skip, w.Limit

	return &search.Request{
		From:  &from,
		Size:  &size,
		Sort:  Sort(w.OrderBy),
		Query: Filter(w.Where),
	}
}

// Sort converts orderBy into field sorts, sorted by field name
func Sort(orderBy map[string]pagination.SortOrder) []types.SortCombinations {
	fields := make([]string, 0, len(orderBy))
	for field := range orderBy {
		if field != "" {
			fields = append(fields, field)
		}
	}
	slices.Sort(fields)

	sorts := make([]types.SortCombinations, 0, len(fields))
	for _, field := range fields {
		order := sortorder.Asc
		if strings.EqualFold(string(orderBy[field]), string(pagination.SortDesc)) {
			order = sortorder.Desc
		}
		sorts = append(sorts, &types.SortOptions{
			SortOptions: map[string]types.FieldSort{
				field: {Order: &order},
			},
		})
	}

	return sorts
}

// Filter converts equality predicates into a bool filter.
// Slices become terms queries and nil values require the field to be missing.
// An empty filter matches everything.
func Filter(where map[string]any) *types.Query {
	if len(where) == 0 {
		return &types.Query{MatchAll: &types.MatchAllQuery{}}
	}

	fields := make([]string, 0, len(where))
	for field := range where {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	boolQuery := &types.BoolQuery{}
	for _, field := range fields {
		value := where[field]

		if objutil.IsNil(value) {
			boolQuery.MustNot = append(boolQuery.MustNot, types.Query{
				Exists: &types.ExistsQuery{Field: field},
			})
			continue
		}

		if elems, ok := objutil.ListElements(value); ok {
			boolQuery.Filter = append(boolQuery.Filter, types.Query{
				Terms: &types.TermsQuery{
					TermsQuery: map[string]types.TermsQueryField{field: fieldValues(elems)},
				},
			})
			continue
		}

		boolQuery.Filter = append(boolQuery.Filter, types.Query{
			Term: map[string]types.TermQuery{field: {Value: value}},
		})
	}

	return &types.Query{Bool: boolQuery}
}

func fieldValues(elems []any) []types.FieldValue {
	values := make([]types.FieldValue, len(elems))
	for i, elem := range elems {
		values[i] = elem
	}
	return values
}
