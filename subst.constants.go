package subst

// Delimiter defaults - the %{ }% syntax chosen for minimal collision with
// shell and printf style content
const (
	DefaultStartDelim = "%{"
	DefaultEndDelim   = "}%"
)

// Default clause defaults
const (
	DefaultDefaultDelimiter = '|'
	DefaultEscapeChar       = '\\'
)

// Option defaults
const (
	DefaultIgnoreCase         = true
	DefaultIgnoreMissing      = false
	DefaultEnableDefaultValue = false
)

// Metadata keys used in error context
const (
	MetaKeyToken    = "token"
	MetaKeyOffset   = "offset"
	MetaKeyOption   = "option"
	MetaKeyValue    = "value"
	MetaKeyResolver = "resolver"
	MetaKeyTemplate = "template"
	MetaKeyPath     = "path"
	MetaKeyFormat   = "format"
	MetaKeyStore    = "store"
)

// Log messages - ALL log messages must be constants (NO MAGIC STRINGS)
const (
	LogMsgProcessorCreated   = "processor created"
	LogMsgProcessStart       = "processing template"
	LogMsgProcessComplete    = "processing complete"
	LogMsgTokenResolved      = "token resolved"
	LogMsgTokenUnresolved    = "token unresolved"
	LogMsgResolverFault      = "resolver fault"
	LogMsgTemplateRegistered = "template registered"
	LogMsgConfigLoaded       = "config file loaded"
	LogMsgStoreReload        = "template store reloaded"
)

// Log field names
const (
	LogFieldTemplate   = "template_len"
	LogFieldTokenName  = "token_name"
	LogFieldSource     = "source"
	LogFieldRegistries = "registries"
	LogFieldName       = "name"
	LogFieldPath       = "path"
	LogFieldExisting   = "existing"
)

// Token resolution sources, used in debug logging
const (
	ResolutionSourceResolver = "resolver"
	ResolutionSourceContext  = "context"
	ResolutionSourceDefault  = "default"
	ResolutionSourceLiteral  = "literal"
	ResolutionSourceEmpty    = "empty"
)
