package internal

// Log messages - ALL log messages must be constants (NO MAGIC STRINGS)
const (
	LogMsgScannerCreated = "scanner created"
	LogMsgScanStart      = "scan started"
	LogMsgTokenFound     = "token span found"
	LogMsgUnterminated   = "unterminated token, emitting as literal text"
	LogMsgScanComplete   = "scan complete"
)

// Log field names
const (
	LogFieldSource     = "source_len"
	LogFieldStartDelim = "start_delim"
	LogFieldEndDelim   = "end_delim"
	LogFieldOffset     = "offset"
	LogFieldInner      = "inner"
	LogFieldTokenCount = "token_count"
)

// StringValueEmpty is the canonical empty string value
const StringValueEmpty = ""
