package urlutil

import (
	"errors"
	"testing"

	"github.com/DjordjeVuckovic/apikit/pkg/apperr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateURL(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://env.example.com")

	tests := []struct {
		name string
		path string
		opts []URLOption
		want string
	}{
		{
			name: "base from env",
			path: "/users",
			want: "https://env.example.com/users",
		},
		{
			name: "explicit base wins",
			path: "/users",
			opts: []URLOption{WithBaseURL("https://api.example.com")},
			want: "https://api.example.com/users",
		},
		{
			name: "with query",
			path: "/users",
			opts: []URLOption{WithQuery(map[string]any{"page": 2, "limit": 10})},
			want: "https://env.example.com/users?limit=10&page=2",
		},
		{
			name: "with ordered query",
			path: "/search",
			opts: []URLOption{WithOrderedQuery(P("q", "go"), P("page", 1))},
			want: "https://env.example.com/search?q=go&page=1",
		},
		{
			name: "query with nothing to emit drops the question mark",
			path: "/users",
			opts: []URLOption{WithQuery(map[string]any{"search": nil})},
			want: "https://env.example.com/users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateURL(tt.path, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateURL_MissingBase(t *testing.T) {
	t.Setenv(EnvBaseURL, "")

	_, err := GenerateURL("/users")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBaseURLNotConfigured))

	var ce *apperr.ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestBuildURL(t *testing.T) {
	id := uuid.MustParse("987fcdeb-51a2-43d7-b890-123456789abc")
	base := WithBaseURL("https://api.example.com")

	tests := []struct {
		name     string
		template string
		params   map[string]any
		opts     []URLOption
		want     string
	}{
		{
			name:     "substitutes params",
			template: "/users/:userId/posts/:postId",
			params:   map[string]any{"userId": 42, "postId": "abc"},
			want:     "https://api.example.com/users/42/posts/abc",
		},
		{
			name:     "stringer value",
			template: "/articles/:id",
			params:   map[string]any{"id": id},
			want:     "https://api.example.com/articles/987fcdeb-51a2-43d7-b890-123456789abc",
		},
		{
			name:     "unmatched placeholder left verbatim",
			template: "/users/:userId/posts/:postId",
			params:   map[string]any{"userId": 1},
			want:     "https://api.example.com/users/1/posts/:postId",
		},
		{
			name:     "longer names are not partially replaced",
			template: "/items/:idx/:id",
			params:   map[string]any{"id": 7},
			want:     "https://api.example.com/items/:idx/7",
		},
		{
			name:     "with query",
			template: "/users/:id",
			params:   map[string]any{"id": 5},
			opts:     []URLOption{WithQuery(map[string]any{"expand": []string{"posts", "roles"}})},
			want:     "https://api.example.com/users/5?expand=posts&expand=roles",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildURL(tt.template, tt.params, append([]URLOption{base}, tt.opts...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildURL_MissingBase(t *testing.T) {
	t.Setenv(EnvBaseURL, "")

	_, err := BuildURL("/users/:id", map[string]any{"id": 1})

	assert.ErrorIs(t, err, ErrBaseURLNotConfigured)
}
