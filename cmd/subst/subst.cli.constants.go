package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagTemplate   = "template"
	FlagData       = "data"
	FlagDataFile   = "data-file"
	FlagConfig     = "config"
	FlagOutput     = "output"
	FlagStartDelim = "start-delim"
	FlagEndDelim   = "end-delim"
	FlagDefaults   = "defaults"
	FlagMissing    = "keep-missing"
	FlagBuiltins   = "builtins"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagConfigShort   = "c"
	FlagOutputShort   = "o"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgMissingTemplate   = "template source required"
	ErrMsgReadFileFailed    = "failed to read input"
	ErrMsgInvalidData       = "failed to parse data"
	ErrMsgConfigLoadFailed  = "failed to load config"
	ErrMsgProcessFailed     = "substitution failed"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgUnknownCommand    = "unknown command"
)

// Output format strings
const (
	FmtErrorWithCause = "Error: %s: %v\n"
	FmtUnknownCommand = "Error: %s: %s\n\n"
	FmtValidateOK     = "OK: %d token(s)\n"
	FmtVersionLine    = "subst version %s\n"
)

// Version is the CLI version, set at build time via -ldflags
var Version = "dev"
