package subst

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Configuration errors
	ErrMsgEmptyStartDelim  = "start delimiter cannot be empty"
	ErrMsgEmptyEndDelim    = "end delimiter cannot be empty"
	ErrMsgEqualDelims      = "start and end delimiters must differ"
	ErrMsgEscapeCollision  = "default delimiter and escape character must differ"
	ErrMsgZeroDefaultDelim = "default delimiter cannot be the zero rune"
	ErrMsgZeroEscapeChar   = "escape character cannot be the zero rune"
	ErrMsgSequenceValue    = "sequence is not a valid terminal substitution value"
	ErrMsgUnstringifiable  = "value cannot be rendered as a string"

	// Resolution errors
	ErrMsgResolverFault = "resolver execution failed"
	ErrMsgResolverPanic = "resolver panicked"

	// Registry errors
	ErrMsgNilResolver        = "resolver cannot be nil"
	ErrMsgEmptyResolverName  = "resolver name cannot be empty"
	ErrMsgResolverExists     = "resolver already registered"
	ErrMsgNonNumericArgument = "argument is not numeric"

	// Template registration errors
	ErrMsgEmptyTemplateName = "template name cannot be empty"
	ErrMsgTemplateExists    = "template already registered"
	ErrMsgTemplateNotFound  = "template not found"

	// Config file errors
	ErrMsgConfigRead   = "config file could not be read"
	ErrMsgConfigParse  = "config file could not be parsed"
	ErrMsgConfigFormat = "unsupported config file format"

	// Store errors
	ErrMsgStoreClosed           = "template store is closed"
	ErrMsgStoreTemplateNotFound = "stored template not found"
	ErrMsgStoreEmptyName        = "stored template name cannot be empty"
	ErrMsgStoreConnFailed       = "template store connection failed"
	ErrMsgStoreMigrateFailed    = "template store migration failed"
	ErrMsgStoreQueryFailed      = "template store query failed"
	ErrMsgStoreWatchFailed      = "template store watch failed"
)

// Error code constants for categorization
const (
	ErrCodeConfig   = "SUBST_CONFIG"
	ErrCodeResolve  = "SUBST_RESOLVE"
	ErrCodeRegistry = "SUBST_REGISTRY"
	ErrCodeTemplate = "SUBST_TEMPLATE"
	ErrCodeStore    = "SUBST_STORE"
)

// NewConfigError creates a configuration error naming the offending option.
func NewConfigError(msg string, option string) error {
	return cuserr.NewValidationError(ErrCodeConfig, msg).
		WithMetadata(MetaKeyOption, option)
}

// NewSequenceValueError reports a sequence produced as a terminal
// substitution value, which is a configuration fault, not a benign miss.
func NewSequenceValueError(tokenName string, offset int) error {
	return cuserr.NewValidationError(ErrCodeConfig, ErrMsgSequenceValue).
		WithMetadata(MetaKeyToken, tokenName).
		WithMetadata(MetaKeyOffset, strconv.Itoa(offset))
}

// NewUnstringifiableValueError reports a value of a type the engine cannot
// render.
func NewUnstringifiableValueError(tokenName string, value any) error {
	return cuserr.NewValidationError(ErrCodeConfig, ErrMsgUnstringifiable).
		WithMetadata(MetaKeyToken, tokenName).
		WithMetadata(MetaKeyValue, toDebugString(value))
}

// resolverFault marks per-token resolver failures so the render loop can
// collect them and keep resolving later tokens, while configuration
// faults abort the call.
type resolverFault struct {
	err error
}

func (f *resolverFault) Error() string { return f.err.Error() }

func (f *resolverFault) Unwrap() error { return f.err }

// IsResolverFault reports whether err (or any error it wraps) is a
// per-token resolver failure rather than a configuration fault.
func IsResolverFault(err error) bool {
	var f *resolverFault
	return errors.As(err, &f)
}

// NewResolverFaultError wraps a resolver failure, identifying the
// offending token so callers can report it precisely.
func NewResolverFaultError(tokenName string, offset int, cause error) error {
	return &resolverFault{
		err: cuserr.WrapStdError(cause, ErrCodeResolve, ErrMsgResolverFault).
			WithMetadata(MetaKeyToken, tokenName).
			WithMetadata(MetaKeyOffset, strconv.Itoa(offset)),
	}
}

// NewRegistryError creates a registry construction error.
func NewRegistryError(msg string, name string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, msg).
		WithMetadata(MetaKeyResolver, name)
}

// NewTemplateExistsError reports a named template collision.
func NewTemplateExistsError(name string) error {
	return cuserr.NewValidationError(ErrCodeTemplate, ErrMsgTemplateExists).
		WithMetadata(MetaKeyTemplate, name)
}

// NewTemplateNotFoundError reports a missing named template.
func NewTemplateNotFoundError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyTemplate, ErrMsgTemplateNotFound).
		WithMetadata(MetaKeyTemplate, name)
}

// NewEmptyTemplateNameError reports an empty template name.
func NewEmptyTemplateNameError() error {
	return cuserr.NewValidationError(ErrCodeTemplate, ErrMsgEmptyTemplateName)
}

// NewConfigFileError wraps a config file read/parse failure.
func NewConfigFileError(msg string, path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeConfig, msg).
		WithMetadata(MetaKeyPath, path)
}

// NewConfigFormatError reports an unsupported config file extension.
func NewConfigFormatError(path string, ext string) error {
	return cuserr.NewValidationError(ErrCodeConfig, ErrMsgConfigFormat).
		WithMetadata(MetaKeyPath, path).
		WithMetadata(MetaKeyFormat, ext)
}

// NewStoreError creates a store operation error.
func NewStoreError(msg string, cause error) error {
	if cause != nil {
		return cuserr.WrapStdError(cause, ErrCodeStore, msg)
	}
	return cuserr.NewInternalError(ErrCodeStore, nil).
		WithMetadata(MetaKeyStore, msg)
}

// NewStoreClosedError reports an operation on a closed store.
func NewStoreClosedError() error {
	return cuserr.NewValidationError(ErrCodeStore, ErrMsgStoreClosed)
}

// NewStoreTemplateNotFoundError reports a missing stored template.
func NewStoreTemplateNotFoundError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyTemplate, ErrMsgStoreTemplateNotFound).
		WithMetadata(MetaKeyTemplate, name)
}

// toDebugString renders a value for error metadata without recursing into
// the engine's own stringification rules.
func toDebugString(v any) string {
	return fmt.Sprintf("%T", v)
}
