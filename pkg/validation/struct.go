package validation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// Defaulter is implemented by schema types that fill in missing values after decoding
type Defaulter interface {
	SetDefaults()
}

// Refiner is implemented by schema types with checks that need the request
// context, such as lookups against another service. Refine runs only after
// every tag rule has passed. Returning Issues reports field errors.
type Refiner interface {
	Refine(ctx context.Context) error
}

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

func validate() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
		engine.RegisterTagNameFunc(jsonFieldName)
	})
	return engine
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	default:
		return name
	}
}

// RegisterRule adds a custom `validate` tag. Call it during initialization,
// before any schema is parsed.
func RegisterRule(tag string, fn validator.FuncCtx) error {
	return validate().RegisterValidationCtx(tag, fn)
}

// StructSchema validates input by decoding it into the struct type T.
//
// Parse runs these steps in order:
//  1. decode the input into T using json tag names
//  2. SetDefaults, if *T implements Defaulter
//  3. `validate` tag rules
//  4. Refine, if *T implements Refiner
type StructSchema[T any] struct {
	coerce bool
}

type StructOption func(*structOptions)

type structOptions struct {
	coerce bool
}

// Coerce accepts string input for numeric, boolean and time fields,
// which is what query strings and path parameters carry.
func Coerce() StructOption {
	return func(o *structOptions) {
		o.coerce = true
	}
}

// Struct builds a schema for the struct type T
func Struct[T any](opts ...StructOption) *StructSchema[T] {
	o := structOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return &StructSchema[T]{coerce: o.coerce}
}

func (s *StructSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	var out T

	if err := s.decode(v, &out); err != nil {
		return out, err
	}

	if d, ok := any(&out).(Defaulter); ok {
		d.SetDefaults()
	}

	if err := validate().StructCtx(ctx, &out); err != nil {
		return out, toIssues(err)
	}

	if r, ok := any(&out).(Refiner); ok {
		if err := r.Refine(ctx); err != nil {
			return out, err
		}
	}

	return out, nil
}

func (s *StructSchema[T]) decode(v any, out *T) error {
	switch typed := v.(type) {
	case T:
		*out = typed
		return nil
	case *T:
		if typed == nil {
			return Issues{{Message: "is required"}}
		}
		*out = *typed
		return nil
	case nil:
		return Issues{{Message: "is required"}}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: s.coerce,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			wholeNumberHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := dec.Decode(v); err != nil {
		return decodeIssues(err)
	}
	return nil
}

// wholeNumberHook rejects fractional floats headed for integer fields,
// which mapstructure would otherwise truncate.
func wholeNumberHook(from, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return data, nil
	}

	f := reflect.ValueOf(data).Float()
	if f != math.Trunc(f) {
		return nil, errors.New("must be an integer")
	}
	return data, nil
}

// decodeIssues turns the joined mapstructure errors into one Issue per field
func decodeIssues(err error) Issues {
	var issues Issues
	collectDecodeIssues(err, &issues)
	if len(issues) == 0 {
		return Issues{{Message: err.Error()}}
	}
	return issues
}

func collectDecodeIssues(err error, issues *Issues) {
	switch e := err.(type) {
	case *mapstructure.DecodeError:
		inner := e.Unwrap()
		var nested *mapstructure.DecodeError
		if errors.As(inner, &nested) {
			collectDecodeIssues(inner, issues)
			return
		}
		*issues = append(*issues, Issue{Path: parsePath(e.Name()), Message: decodeMessage(inner)})
	case interface{ Unwrap() []error }:
		for _, child := range e.Unwrap() {
			collectDecodeIssues(child, issues)
		}
	case interface{ Unwrap() error }:
		collectDecodeIssues(e.Unwrap(), issues)
	default:
		*issues = append(*issues, Issue{Message: err.Error()})
	}
}

func decodeMessage(err error) string {
	var unconvertible *mapstructure.UnconvertibleTypeError
	if errors.As(err, &unconvertible) {
		return fmt.Sprintf("must be of type %s", unconvertible.Expected.Type())
	}
	var parse *mapstructure.ParseError
	if errors.As(err, &parse) {
		return fmt.Sprintf("must be of type %s", parse.Expected.Type())
	}
	return err.Error()
}

func toIssues(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	issues := make(Issues, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{
			Path:    namespacePath(fe.Namespace()),
			Message: message(fe),
		})
	}
	return issues
}

var indexed = regexp.MustCompile(`^([^\[]*)((?:\[[^\]]*\])*)$`)

// namespacePath splits "User.items[2].price" into ["items", 2, "price"]; the root type name is dropped
func namespacePath(ns string) []any {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return nil
	}
	return parsePath(rest)
}

// parsePath splits a dotted field name with bracketed indexes, as in "items[2].price"
func parsePath(name string) []any {
	if name == "" {
		return nil
	}

	var path []any
	for _, seg := range strings.Split(name, ".") {
		m := indexed.FindStringSubmatch(seg)
		if m == nil {
			path = append(path, seg)
			continue
		}
		if m[1] != "" {
			path = append(path, m[1])
		}
		for _, key := range strings.Split(strings.Trim(m[2], "[]"), "][") {
			if key == "" {
				continue
			}
			if n, err := strconv.Atoi(key); err == nil {
				path = append(path, n)
			} else {
				path = append(path, key)
			}
		}
	}
	return path
}

func message(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required", "required_if", "required_unless", "required_with", "required_without":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "uuid", "uuid4", "uuid7":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", param)
	case "min":
		return bound("at least", param, fe.Kind())
	case "max":
		return bound("at most", param, fe.Kind())
	case "len":
		return bound("exactly", param, fe.Kind())
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "gt":
		return "must be greater than " + param
	case "lt":
		return "must be less than " + param
	default:
		return fmt.Sprintf("failed on the '%s' validation", fe.Tag())
	}
}

func bound(qualifier, param string, kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return fmt.Sprintf("must be %s %s characters long", qualifier, param)
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("must contain %s %s items", qualifier, param)
	default:
		return fmt.Sprintf("must be %s %s", qualifier, param)
	}
}
