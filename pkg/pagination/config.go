package pagination

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPage is the page used when the request does not carry one
	DefaultPage = 1
	// DefaultLimit is the page size used when the request does not carry one
	DefaultLimit = 10
	// MinLimit is the smallest page size a request can end up with
	MinLimit = 1
	// MaxLimit is the largest page size a request can end up with
	MaxLimit = 100
)

// Config holds the process-wide pagination defaults.
// Every field can be overridden per call with an Option.
type Config struct {
	DefaultLimit int `json:"defaultLimit" yaml:"defaultLimit"`
	MaxLimit     int `json:"maxLimit" yaml:"maxLimit"`
	MinLimit     int `json:"minLimit" yaml:"minLimit"`
	DefaultPage  int `json:"defaultPage" yaml:"defaultPage"`
}

func DefaultConfig() Config {
	return Config{
		DefaultLimit: DefaultLimit,
		MaxLimit:     MaxLimit,
		MinLimit:     MinLimit,
		DefaultPage:  DefaultPage,
	}
}

// Validate checks that MinLimit <= DefaultLimit <= MaxLimit and that the default page is positive.
func (c Config) Validate() error {
	if c.MinLimit < 1 {
		return errors.New("minLimit must be at least 1")
	}
	if c.DefaultLimit < c.MinLimit || c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("defaultLimit %d must be within [%d, %d]", c.DefaultLimit, c.MinLimit, c.MaxLimit)
	}
	if c.DefaultPage < 1 {
		return errors.New("defaultPage must be at least 1")
	}
	return nil
}

// LoadConfig decodes a YAML document into a Config.
// Keys missing from the document keep their DefaultConfig values.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode pagination config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid pagination config: %w", err)
	}

	return cfg, nil
}

// Option overrides a pagination default for a single call
type Option func(*options)

type options struct {
	cfg    Config
	search func(search string) map[string]any
}

func newOptions(opts []Option) options {
	o := options{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

func WithDefaultLimit(limit int) Option {
	return func(o *options) {
		o.cfg.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) Option {
	return func(o *options) {
		o.cfg.MaxLimit = limit
	}
}

func WithMinLimit(limit int) Option {
	return func(o *options) {
		o.cfg.MinLimit = limit
	}
}

func WithDefaultPage(page int) Option {
	return func(o *options) {
		o.cfg.DefaultPage = page
	}
}

// WithSearch merges the predicates returned by fn over the default filter
// whenever the query carries a non-empty search term.
func WithSearch(fn func(search string) map[string]any) Option {
	return func(o *options) {
		o.search = fn
	}
}
