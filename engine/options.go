package engine

import (
	"golang.org/x/text/language"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Execute()
// ============================================================================

// DefaultTopN is the number of projects ranked when no option overrides it.
const DefaultTopN = 10

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	TopN           int
	CurrencySymbol string
	Language       language.Tag
	Levels         []Field // hierarchy levels for the treemap
}

// WithTopN sets how many projects the ranking chart shows.
// Execute rejects n <= 0 with ErrInvalidArgument.
func WithTopN(n int) Option {
	return func(c *config) {
		c.TopN = n
	}
}

// WithCurrencySymbol sets the prefix used when formatting investment values.
func WithCurrencySymbol(symbol string) Option {
	return func(c *config) {
		c.CurrencySymbol = symbol
	}
}

// WithLanguage sets the locale used for thousands separators.
func WithLanguage(tag language.Tag) Option {
	return func(c *config) {
		c.Language = tag
	}
}

// ValidateOptions reports options that no Execute call could accept, so
// long-lived callers can reject them at startup.
func ValidateOptions(opts ...Option) error {
	return applyOptions(opts).validate()
}

func (c *config) validate() error {
	if c.TopN <= 0 {
		return invalidArgument("n", "must be a positive integer, got %d", c.TopN)
	}
	return nil
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		TopN:           DefaultTopN,
		CurrencySymbol: "$",
		Language:       language.English,
		Levels:         []Field{FieldRegion, FieldSector, FieldCity},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
