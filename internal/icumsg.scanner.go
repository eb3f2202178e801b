package internal

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Position represents a location in the message source
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Scanner is a byte-level cursor over message source with position tracking.
// It only provides lookahead and consumption primitives; every syntax
// decision lives in the parser that drives it. Multi-byte UTF-8 sequences
// pass through untouched because all structural characters are ASCII.
type Scanner struct {
	source string
	pos    int // current byte position
	line   int // current line (1-indexed)
	column int // current column (1-indexed)
	logger *zap.Logger
}

// NewScanner creates a scanner over the given source.
func NewScanner(source string, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgScannerCreated, zap.Int(LogFieldSource, len(source)))
	return &Scanner{
		source: source,
		pos:    0,
		line:   1,
		column: 1,
		logger: logger,
	}
}

// Position returns the current position.
func (s *Scanner) Position() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.column,
	}
}

// AtEnd returns true if the cursor has consumed all input.
func (s *Scanner) AtEnd() bool {
	return s.pos >= len(s.source)
}

// Peek returns the current byte without advancing.
func (s *Scanner) Peek() byte {
	if s.AtEnd() {
		return 0
	}
	return s.source[s.pos]
}

// PeekAt returns the byte n positions ahead of the cursor, or 0 past the end.
func (s *Scanner) PeekAt(n int) byte {
	if s.pos+n >= len(s.source) {
		return 0
	}
	return s.source[s.pos+n]
}

// Advance consumes and returns the current byte.
func (s *Scanner) Advance() byte {
	if s.AtEnd() {
		return 0
	}
	ch := s.source[s.pos]
	s.pos++
	if ch == CharNewline {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return ch
}

// AdvanceN advances by n bytes.
func (s *Scanner) AdvanceN(n int) {
	for i := 0; i < n && !s.AtEnd(); i++ {
		s.Advance()
	}
}

// Match returns true if the remaining source starts with str.
func (s *Scanner) Match(str string) bool {
	return strings.HasPrefix(s.source[s.pos:], str)
}

// ScanWhile consumes bytes while pred holds and returns the consumed run.
func (s *Scanner) ScanWhile(pred func(byte) bool) string {
	start := s.pos
	for !s.AtEnd() && pred(s.Peek()) {
		s.Advance()
	}
	return s.source[start:s.pos]
}

// SkipWhitespace consumes consecutive whitespace bytes.
func (s *Scanner) SkipWhitespace() {
	for !s.AtEnd() && IsWhitespace(s.Peek()) {
		s.Advance()
	}
}

// Character classification helpers

// IsWhitespace reports pattern whitespace.
func IsWhitespace(ch byte) bool {
	return ch == CharSpace || ch == CharTab || ch == CharNewline || ch == CharCarriageRet
}

// IsLetter reports ASCII letters.
func IsLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// IsDigit reports ASCII digits.
func IsDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// IsNameChar reports bytes usable inside argument, selector, and tag names.
// Structural syntax characters and whitespace end a name; everything else,
// including multi-byte UTF-8 continuation bytes, is part of it.
func IsNameChar(ch byte) bool {
	if IsWhitespace(ch) {
		return false
	}
	switch ch {
	case CharOpenBrace, CharCloseBrace, CharComma, CharPound, CharLess,
		CharGreater, CharSlash, CharEquals, CharColon, CharApostrophe,
		CharDoubleQuote:
		return false
	}
	return ch != 0
}
