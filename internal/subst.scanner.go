package internal

import (
	"strings"

	"go.uber.org/zap"
)

// Span is one delimiter-bounded token occurrence in a template.
// Literal holds the untouched text between the previous span (or the start
// of the template) and this token's start delimiter. Raw holds the full
// token text including both delimiters, so a caller can splice it back
// verbatim when a token must pass through unresolved.
type Span struct {
	Literal string // text before the start delimiter
	Inner   string // text between the delimiters
	Raw     string // full token text including delimiters
	Start   int    // byte offset of the start delimiter
	End     int    // byte offset just past the end delimiter
}

// Scanner walks a template left to right and produces token spans bounded
// by a configurable delimiter pair. Delimiters are matched literally, not
// as patterns. A Scanner is consumed once; it is not restartable.
//
// An unterminated token (start delimiter with no end delimiter after it)
// is not an error: the start delimiter and everything following it become
// trailing literal text.
type Scanner struct {
	source     string
	startDelim string
	endDelim   string
	pos        int
	trailing   string
	done       bool
	logger     *zap.Logger
}

// NewScanner creates a scanner over source with the given delimiter pair.
// Delimiter validity (non-empty, distinct) is enforced by the caller before
// construction.
func NewScanner(source, startDelim, endDelim string, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgScannerCreated,
		zap.Int(LogFieldSource, len(source)),
		zap.String(LogFieldStartDelim, startDelim),
		zap.String(LogFieldEndDelim, endDelim),
	)
	return &Scanner{
		source:     source,
		startDelim: startDelim,
		endDelim:   endDelim,
		logger:     logger,
	}
}

// Next returns the next token span and true, or the zero Span and false
// when the template is exhausted. After Next returns false, Trailing holds
// the remaining literal text.
func (s *Scanner) Next() (Span, bool) {
	if s.done {
		return Span{}, false
	}

	rel := strings.Index(s.source[s.pos:], s.startDelim)
	if rel < 0 {
		s.trailing = s.source[s.pos:]
		s.done = true
		return Span{}, false
	}

	tokenStart := s.pos + rel
	innerStart := tokenStart + len(s.startDelim)

	// Search for the end delimiter strictly after the start marker so that
	// overlapping delimiter pairs (one marker a prefix of the other) still
	// favor the earliest valid non-overlapping match.
	endRel := strings.Index(s.source[innerStart:], s.endDelim)
	if endRel < 0 {
		s.logger.Debug(LogMsgUnterminated, zap.Int(LogFieldOffset, tokenStart))
		s.trailing = s.source[s.pos:]
		s.done = true
		return Span{}, false
	}

	innerEnd := innerStart + endRel
	tokenEnd := innerEnd + len(s.endDelim)

	span := Span{
		Literal: s.source[s.pos:tokenStart],
		Inner:   s.source[innerStart:innerEnd],
		Raw:     s.source[tokenStart:tokenEnd],
		Start:   tokenStart,
		End:     tokenEnd,
	}
	s.pos = tokenEnd

	s.logger.Debug(LogMsgTokenFound,
		zap.Int(LogFieldOffset, tokenStart),
		zap.String(LogFieldInner, span.Inner),
	)
	return span, true
}

// Trailing returns the literal text after the last token span.
// It is only meaningful once Next has returned false.
func (s *Scanner) Trailing() string {
	return s.trailing
}
