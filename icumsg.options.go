package icumsg

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring a MessageFormat.
type Option func(*config)

// config holds the construction-time configuration of a MessageFormat.
// There is no process-wide mutable state; every knob is set here.
type config struct {
	formats   *Formats
	cache     *FormatterCache
	parser    Parser
	ignoreTag bool
	logger    *zap.Logger
}

// defaultConfig returns the default message configuration.
func defaultConfig() *config {
	return &config{
		formats:   nil,
		cache:     nil,
		parser:    nil,
		ignoreTag: false,
		logger:    zap.NewNop(),
	}
}

// WithFormats merges the given preset overrides into the built-in format
// configuration. The preset vocabulary is fixed; overrides tune individual
// option fields of same-named presets and never introduce new presets.
func WithFormats(formats *Formats) Option {
	return func(c *config) {
		c.formats = formats
	}
}

// WithCache shares a formatter cache across messages. Without it every
// message owns a fresh private cache.
func WithCache(cache *FormatterCache) Option {
	return func(c *config) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithParser replaces the built-in message text parser.
func WithParser(parser Parser) Option {
	return func(c *config) {
		if parser != nil {
			c.parser = parser
		}
	}
}

// WithIgnoreTag disables rich-text tag syntax in the built-in parser; angle
// brackets then stay plain text.
func WithIgnoreTag(ignore bool) Option {
	return func(c *config) {
		c.ignoreTag = ignore
	}
}

// WithLogger sets the logger for parse and evaluation events.
// Default: no logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
