package subst

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring a Processor. The same
// options are accepted per call by ProcessWithOptions, where they apply to
// a copy of the processor's configuration.
type Option func(*processorConfig)

// processorConfig holds the internal configuration for a Processor.
type processorConfig struct {
	startDelim         string
	endDelim           string
	ignoreCase         bool
	ignoreMissing      bool
	enableDefaultValue bool
	defaultDelimiter   rune
	escapeChar         rune
	registries         []*Registry
	logger             *zap.Logger
}

// defaultProcessorConfig returns the default processor configuration.
func defaultProcessorConfig() *processorConfig {
	return &processorConfig{
		startDelim:         DefaultStartDelim,
		endDelim:           DefaultEndDelim,
		ignoreCase:         DefaultIgnoreCase,
		ignoreMissing:      DefaultIgnoreMissing,
		enableDefaultValue: DefaultEnableDefaultValue,
		defaultDelimiter:   DefaultDefaultDelimiter,
		escapeChar:         DefaultEscapeChar,
		logger:             nil,
	}
}

// clone returns a copy of the configuration for per-call overrides.
// The registry slice is copied so per-call options cannot mutate the
// shared processor.
func (c *processorConfig) clone() *processorConfig {
	dup := *c
	dup.registries = make([]*Registry, len(c.registries))
	copy(dup.registries, c.registries)
	return &dup
}

// validate fails fast on malformed configuration.
func (c *processorConfig) validate() error {
	if c.startDelim == "" {
		return NewConfigError(ErrMsgEmptyStartDelim, OptionNameDelimiters)
	}
	if c.endDelim == "" {
		return NewConfigError(ErrMsgEmptyEndDelim, OptionNameDelimiters)
	}
	if c.startDelim == c.endDelim {
		return NewConfigError(ErrMsgEqualDelims, OptionNameDelimiters)
	}
	if c.enableDefaultValue {
		if c.defaultDelimiter == 0 {
			return NewConfigError(ErrMsgZeroDefaultDelim, OptionNameDefaultDelimiter)
		}
		if c.escapeChar == 0 {
			return NewConfigError(ErrMsgZeroEscapeChar, OptionNameEscapeChar)
		}
		if c.defaultDelimiter == c.escapeChar {
			return NewConfigError(ErrMsgEscapeCollision, OptionNameDefaultDelimiter)
		}
	}
	return nil
}

// Option name constants used in configuration error metadata
const (
	OptionNameDelimiters       = "delimiters"
	OptionNameDefaultDelimiter = "defaultDelimiter"
	OptionNameEscapeChar       = "escapeChar"
)

// WithDelimiters sets custom token delimiters.
// Default: "%{" and "}%"
func WithDelimiters(start, end string) Option {
	return func(c *processorConfig) {
		c.startDelim = start
		c.endDelim = end
	}
}

// WithIgnoreCase controls case-insensitive matching of token names against
// resolver names and context keys.
// Default: true
func WithIgnoreCase(ignore bool) Option {
	return func(c *processorConfig) {
		c.ignoreCase = ignore
	}
}

// WithIgnoreMissing controls what an unresolved token without a default
// becomes: the original literal token text (true) or an empty string
// (false).
// Default: false
func WithIgnoreMissing(ignore bool) Option {
	return func(c *processorConfig) {
		c.ignoreMissing = ignore
	}
}

// WithDefaultValues enables the name|default clause syntax inside tokens.
// Default: false
func WithDefaultValues(enable bool) Option {
	return func(c *processorConfig) {
		c.enableDefaultValue = enable
	}
}

// WithDefaultDelimiter sets the character separating a token name from its
// default clause.
// Default: '|'
func WithDefaultDelimiter(delim rune) Option {
	return func(c *processorConfig) {
		c.defaultDelimiter = delim
	}
}

// WithEscapeChar sets the character escaping a literal default delimiter
// (or itself) inside default text.
// Default: '\\'
func WithEscapeChar(esc rune) Option {
	return func(c *processorConfig) {
		c.escapeChar = esc
	}
}

// WithRegistries appends resolver registries. Registry order is priority
// order: the first registry containing a name wins, so registries appended
// later act as overridable fallbacks.
func WithRegistries(registries ...*Registry) Option {
	return func(c *processorConfig) {
		for _, r := range registries {
			if r != nil {
				c.registries = append(c.registries, r)
			}
		}
	}
}

// WithBuiltins appends the built-in resolver registry at the current end
// of the registry list, making the builtins overridable by registries
// added earlier.
func WithBuiltins() Option {
	return func(c *processorConfig) {
		c.registries = append(c.registries, Builtins())
	}
}

// WithLogger sets the logger for the processor.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *processorConfig) {
		c.logger = logger
	}
}
