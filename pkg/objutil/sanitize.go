package objutil

import "slices"

// SanitizeOptions selects which entries Sanitize drops.
// Only RemoveUndefined is enabled by default.
type SanitizeOptions struct {
	RemoveUndefined   bool
	RemoveNull        bool
	RemoveEmptyString bool
	RemoveZero        bool
	RemoveNaN         bool
	// ExcludeKeys are always kept, whatever the filters say
	ExcludeKeys []string
	// IncludeKeys, when non-empty, restricts filtering to the listed keys; every other key is kept
	IncludeKeys []string
}

func DefaultSanitizeOptions() SanitizeOptions {
	return SanitizeOptions{RemoveUndefined: true}
}

type SanitizeOption func(*SanitizeOptions)

func WithSanitizeOptions(o SanitizeOptions) SanitizeOption {
	return func(opts *SanitizeOptions) {
		*opts = o
	}
}

func KeepUndefined() SanitizeOption {
	return func(o *SanitizeOptions) {
		o.RemoveUndefined = false
	}
}

func RemoveNull() SanitizeOption {
	return func(o *SanitizeOptions) {
		o.RemoveNull = true
	}
}

func RemoveEmptyString() SanitizeOption {
	return func(o *SanitizeOptions) {
		o.RemoveEmptyString = true
	}
}

func RemoveZero() SanitizeOption {
	return func(o *SanitizeOptions) {
		o.RemoveZero = true
	}
}

func RemoveNaN() SanitizeOption {
	return func(o *SanitizeOptions) {
		o.RemoveNaN = true
	}
}

func ExcludeKeys(keys ...string) SanitizeOption {
	return func(o *SanitizeOptions) {
		o.ExcludeKeys = append(o.ExcludeKeys, keys...)
	}
}

func IncludeKeys(keys ...string) SanitizeOption {
	return func(o *SanitizeOptions) {
		o.IncludeKeys = append(o.IncludeKeys, keys...)
	}
}

// Sanitize returns a new map without the entries matched by the active filters.
//
// Each key is evaluated in order:
//  1. keys in ExcludeKeys are kept
//  2. if IncludeKeys is set, keys outside it are kept
//  3. otherwise the entry is dropped by the first matching filter:
//     undefined, null, empty string, zero, NaN
func Sanitize(m map[string]any, opts ...SanitizeOption) map[string]any {
	o := DefaultSanitizeOptions()
	for _, opt := range opts {
		opt(&o)
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		if o.keep(k, v) {
			out[k] = v
		}
	}
	return out
}

func (o SanitizeOptions) keep(key string, value any) bool {
	if slices.Contains(o.ExcludeKeys, key) {
		return true
	}
	if len(o.IncludeKeys) > 0 && !slices.Contains(o.IncludeKeys, key) {
		return true
	}

	switch {
	case o.RemoveUndefined && IsUndefined(value):
		return false
	case o.RemoveNull && IsNull(value):
		return false
	case o.RemoveEmptyString && isEmptyString(value):
		return false
	case o.RemoveZero && isZero(value):
		return false
	case o.RemoveNaN && isNaN(value):
		return false
	}
	return true
}

// RemoveUndefined drops undefined entries only
func RemoveUndefined(m map[string]any) map[string]any {
	return Sanitize(m)
}

// RemoveNullish drops null and undefined entries
func RemoveNullish(m map[string]any) map[string]any {
	return Sanitize(m, RemoveNull())
}

// RemoveFalsy keeps only truthy entries, see IsTruthy
func RemoveFalsy(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if IsTruthy(v) {
			out[k] = v
		}
	}
	return out
}
