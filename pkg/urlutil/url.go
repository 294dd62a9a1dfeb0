package urlutil

import (
	"os"
	"regexp"
	"slices"

	"github.com/DjordjeVuckovic/apikit/pkg/apperr"
)

// EnvBaseURL names the environment variable holding the default base URL
const EnvBaseURL = "BASE_URL"

// ErrBaseURLNotConfigured is returned when neither WithBaseURL nor BASE_URL provides a base
var ErrBaseURLNotConfigured = apperr.NewConfig("base URL is not configured: pass WithBaseURL or set " + EnvBaseURL)

var placeholder = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

type urlOptions struct {
	baseURL string
	query   []Param
}

type URLOption func(*urlOptions)

// WithBaseURL overrides the base URL taken from the environment
func WithBaseURL(baseURL string) URLOption {
	return func(o *urlOptions) {
		o.baseURL = baseURL
	}
}

// WithQuery appends params to the query string, keys sorted
func WithQuery(params map[string]any) URLOption {
	return func(o *urlOptions) {
		for _, k := range sortedKeys(params) {
			o.query = append(o.query, P(k, params[k]))
		}
	}
}

// WithOrderedQuery appends params to the query string in the given order
func WithOrderedQuery(params ...Param) URLOption {
	return func(o *urlOptions) {
		o.query = append(o.query, params...)
	}
}

// GenerateURL joins the base URL, path and query string.
// The query string and its "?" are omitted when no param survives encoding.
func GenerateURL(path string, opts ...URLOption) (string, error) {
	o := urlOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	base := o.baseURL
	if base == "" {
		base = os.Getenv(EnvBaseURL)
	}
	if base == "" {
		return "", ErrBaseURLNotConfigured
	}

	u := base + path
	if qs := BuildOrderedQueryString(o.query...); qs != "" {
		u += "?" + qs
	}

	return u, nil
}

// BuildURL substitutes :name placeholders in template with the matching params
// and passes the result to GenerateURL. Values are coerced to strings without
// escaping; placeholders with no matching param are left as they are.
func BuildURL(template string, params map[string]any, opts ...URLOption) (string, error) {
	path := placeholder.ReplaceAllStringFunc(template, func(token string) string {
		value, ok := params[token[1:]]
		if !ok {
			return token
		}
		return stringify(value)
	})

	return GenerateURL(path, opts...)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
