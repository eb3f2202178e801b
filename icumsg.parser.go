package icumsg

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/itsatony/go-icumsg/internal"
)

// Tag delimiter strings
const (
	strCloseTagOpen = "</"
	strSelfClose    = "/>"
)

// Parser turns message text into a node sequence. Implementations must fail
// with a syntax error instead of producing a partial AST.
type Parser interface {
	Parse(text string) ([]Node, error)
}

var _ Parser = (*MessageParser)(nil)

// MessageParser parses ICU MessageFormat text into a node sequence. It
// understands plain arguments, number/date/time sub-formats with style names,
// select, plural and selectordinal with offsets and exact selectors, pound
// placeholders, rich-text tags, and apostrophe quoting. A MessageParser is
// immutable and safe for concurrent use; every Parse call runs on its own
// scanner.
type MessageParser struct {
	ignoreTag bool
	logger    *zap.Logger
}

// ParserOption configures a MessageParser.
type ParserOption func(*parserConfig)

type parserConfig struct {
	ignoreTag bool
	logger    *zap.Logger
}

func defaultParserConfig() *parserConfig {
	return &parserConfig{
		ignoreTag: false,
		logger:    zap.NewNop(),
	}
}

// WithParserIgnoreTag disables rich-text tag syntax; angle brackets become
// plain text.
func WithParserIgnoreTag(ignore bool) ParserOption {
	return func(c *parserConfig) {
		c.ignoreTag = ignore
	}
}

// WithParserLogger sets the logger for parse events.
func WithParserLogger(logger *zap.Logger) ParserOption {
	return func(c *parserConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewMessageParser creates a message parser.
func NewMessageParser(opts ...ParserOption) *MessageParser {
	config := defaultParserConfig()
	for _, opt := range opts {
		opt(config)
	}
	return &MessageParser{
		ignoreTag: config.ignoreTag,
		logger:    config.logger,
	}
}

// Parse parses message text into an AST with a default-configured parser.
func Parse(text string, opts ...ParserOption) ([]Node, error) {
	return NewMessageParser(opts...).Parse(text)
}

// Parse produces the node sequence for the given message text.
func (p *MessageParser) Parse(text string) ([]Node, error) {
	p.logger.Debug(LogMsgParserStart, zap.Int(LogFieldSource, len(text)))

	run := &parseRun{
		scanner:   internal.NewScanner(text, p.logger),
		ignoreTag: p.ignoreTag,
	}
	nodes, err := run.parseNodes(false)
	if err != nil {
		return nil, err
	}
	if !run.scanner.AtEnd() {
		// Only an unmatched closing tag can stop the top-level walk.
		return nil, NewSyntaxError(ErrMsgStrayCloseTag, publicPos(run.scanner.Position()))
	}

	p.logger.Debug(LogMsgParserEnd, zap.Int(LogFieldNodes, len(nodes)))
	return nodes, nil
}

// parseRun holds the mutable state of one Parse call.
type parseRun struct {
	scanner    *internal.Scanner
	ignoreTag  bool
	braceDepth int
	depth      int
}

// parseNodes parses a node sequence until EOF, a closing brace of an
// enclosing branch body, or a closing tag. inPlural marks that the sequence
// is the immediate body of a plural branch, where pound is a placeholder.
func (r *parseRun) parseNodes(inPlural bool) ([]Node, error) {
	r.depth++
	defer func() { r.depth-- }()
	if r.depth > MaxNestingDepth {
		return nil, NewSyntaxError(ErrMsgNestingTooDeep, publicPos(r.scanner.Position()))
	}

	var nodes []Node
	for !r.scanner.AtEnd() {
		if r.scanner.Peek() == internal.CharCloseBrace && r.braceDepth > 0 {
			break
		}
		if r.atCloseTag() {
			break
		}
		node, err := r.parseNode(inPlural)
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

// parseNode parses a single node starting at the current character.
func (r *parseRun) parseNode(inPlural bool) (Node, error) {
	c := r.scanner.Peek()
	switch {
	case c == internal.CharOpenBrace:
		return r.parseArgument(inPlural)
	case c == internal.CharCloseBrace:
		// Reachable only outside branch bodies.
		return nil, NewSyntaxError(ErrMsgStrayCloseBrace, publicPos(r.scanner.Position()))
	case c == internal.CharPound && inPlural:
		pos := r.scanner.Position()
		r.scanner.Advance()
		return NewPoundNode(publicPos(pos)), nil
	case c == internal.CharLess && r.atTagOpen():
		return r.parseTag(inPlural)
	default:
		return r.parseLiteral(inPlural), nil
	}
}

// parseLiteral consumes plain text up to the next structural character,
// resolving apostrophe quoting as it goes.
func (r *parseRun) parseLiteral(inPlural bool) Node {
	pos := r.scanner.Position()
	var sb strings.Builder
	for !r.scanner.AtEnd() {
		c := r.scanner.Peek()
		if c == internal.CharOpenBrace || c == internal.CharCloseBrace {
			break
		}
		if c == internal.CharPound && inPlural {
			break
		}
		if c == internal.CharLess && (r.atTagOpen() || r.atCloseTag()) {
			break
		}
		if c == internal.CharApostrophe {
			sb.WriteString(r.scanQuoted(inPlural))
			continue
		}
		sb.WriteByte(r.scanner.Advance())
	}
	if sb.Len() == 0 {
		return nil
	}
	return NewLiteralNode(sb.String(), publicPos(pos))
}

// scanQuoted resolves one apostrophe. A doubled apostrophe is a literal one.
// An apostrophe directly before a syntax character quotes everything up to
// the next single apostrophe, or to the end of the message when unterminated.
// Any other apostrophe is plain text.
func (r *parseRun) scanQuoted(inPlural bool) string {
	next := r.scanner.PeekAt(1)
	if next == internal.CharApostrophe {
		r.scanner.AdvanceN(2)
		return string(internal.CharApostrophe)
	}
	if !quotable(next, inPlural) {
		r.scanner.Advance()
		return string(internal.CharApostrophe)
	}
	r.scanner.Advance()
	var sb strings.Builder
	for !r.scanner.AtEnd() {
		c := r.scanner.Advance()
		if c == internal.CharApostrophe {
			if r.scanner.Peek() == internal.CharApostrophe {
				sb.WriteByte(internal.CharApostrophe)
				r.scanner.Advance()
				continue
			}
			break
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// quotable reports whether an apostrophe before c starts quoted text. Pound
// only needs quoting where it would otherwise be a placeholder.
func quotable(c byte, inPlural bool) bool {
	switch c {
	case internal.CharOpenBrace, internal.CharCloseBrace,
		internal.CharLess, internal.CharGreater:
		return true
	case internal.CharPound:
		return inPlural
	default:
		return false
	}
}

// parseArgument parses everything between one balanced pair of braces.
func (r *parseRun) parseArgument(inPlural bool) (Node, error) {
	pos := r.scanner.Position()
	r.scanner.Advance()
	r.scanner.SkipWhitespace()

	name := r.scanner.ScanWhile(internal.IsNameChar)
	if name == "" {
		return nil, NewSyntaxError(ErrMsgEmptyArgName, publicPos(pos))
	}
	r.scanner.SkipWhitespace()

	switch r.scanner.Peek() {
	case internal.CharCloseBrace:
		r.scanner.Advance()
		return NewArgumentNode(name, publicPos(pos)), nil
	case internal.CharComma:
		r.scanner.Advance()
		r.scanner.SkipWhitespace()
		return r.parseArgumentFormat(name, pos)
	default:
		return nil, NewSyntaxError(ErrMsgUnclosedArg, publicPos(pos))
	}
}

// parseArgumentFormat dispatches on the argument type keyword following the
// first comma.
func (r *parseRun) parseArgumentFormat(name string, pos internal.Position) (Node, error) {
	argType := r.scanner.ScanWhile(internal.IsLetter)
	r.scanner.SkipWhitespace()

	switch argType {
	case ArgTypeNumber, ArgTypeDate, ArgTypeTime:
		return r.parseSimpleFormat(name, argType, pos)
	case ArgTypeSelect:
		return r.parseSelect(name, pos)
	case ArgTypePlural:
		return r.parsePlural(name, Cardinal, pos)
	case ArgTypeSelectOrdinal:
		return r.parsePlural(name, Ordinal, pos)
	default:
		return nil, NewSyntaxError(ErrMsgBadArgType, publicPos(pos))
	}
}

// parseSimpleFormat finishes a number, date, or time argument, with an
// optional style name after a second comma.
func (r *parseRun) parseSimpleFormat(name, argType string, pos internal.Position) (Node, error) {
	style := ""
	if r.scanner.Peek() == internal.CharComma {
		r.scanner.Advance()
		r.scanner.SkipWhitespace()
		style = strings.TrimSpace(r.scanner.ScanWhile(func(c byte) bool {
			return c != internal.CharCloseBrace
		}))
		if style == "" {
			return nil, NewSyntaxError(ErrMsgEmptyStyle, publicPos(pos))
		}
	}
	if r.scanner.Peek() != internal.CharCloseBrace {
		return nil, NewSyntaxError(ErrMsgUnclosedArg, publicPos(pos))
	}
	r.scanner.Advance()

	switch argType {
	case ArgTypeNumber:
		return NewNumberNode(name, style, publicPos(pos)), nil
	case ArgTypeDate:
		return NewDateNode(name, style, publicPos(pos)), nil
	default:
		return NewTimeNode(name, style, publicPos(pos)), nil
	}
}

// parseSelect finishes a select argument.
func (r *parseRun) parseSelect(name string, pos internal.Position) (Node, error) {
	if r.scanner.Peek() != internal.CharComma {
		return nil, NewSyntaxError(ErrMsgNoBranches, publicPos(pos))
	}
	r.scanner.Advance()

	branches, err := r.parseBranches(false)
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		return nil, NewSyntaxError(ErrMsgNoBranches, publicPos(pos))
	}
	if _, ok := findBranch(branches, LabelOther); !ok {
		return nil, NewSyntaxError(ErrMsgMissingOther, publicPos(pos))
	}
	if r.scanner.Peek() != internal.CharCloseBrace {
		return nil, NewSyntaxError(ErrMsgUnclosedArg, publicPos(pos))
	}
	r.scanner.Advance()
	return NewSelectNode(name, branches, publicPos(pos)), nil
}

// parsePlural finishes a plural or selectordinal argument, with an optional
// offset clause before the branches.
func (r *parseRun) parsePlural(name string, pluralType PluralType, pos internal.Position) (Node, error) {
	if r.scanner.Peek() != internal.CharComma {
		return nil, NewSyntaxError(ErrMsgNoBranches, publicPos(pos))
	}
	r.scanner.Advance()
	r.scanner.SkipWhitespace()

	var offset int64
	if r.atOffsetClause() {
		parsed, err := r.parseOffset()
		if err != nil {
			return nil, err
		}
		offset = parsed
	}

	branches, err := r.parseBranches(true)
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		return nil, NewSyntaxError(ErrMsgNoBranches, publicPos(pos))
	}
	if _, ok := findBranch(branches, LabelOther); !ok {
		return nil, NewSyntaxError(ErrMsgMissingOther, publicPos(pos))
	}
	if r.scanner.Peek() != internal.CharCloseBrace {
		return nil, NewSyntaxError(ErrMsgUnclosedArg, publicPos(pos))
	}
	r.scanner.Advance()
	return NewPluralNode(name, pluralType, offset, branches, publicPos(pos)), nil
}

// atOffsetClause reports whether the cursor sits on an offset clause rather
// than a branch label that merely starts with the keyword.
func (r *parseRun) atOffsetClause() bool {
	if !r.scanner.Match(OffsetKeyword) {
		return false
	}
	i := len(OffsetKeyword)
	for internal.IsWhitespace(r.scanner.PeekAt(i)) {
		i++
	}
	return r.scanner.PeekAt(i) == internal.CharColon
}

func (r *parseRun) parseOffset() (int64, error) {
	pos := r.scanner.Position()
	r.scanner.AdvanceN(len(OffsetKeyword))
	r.scanner.SkipWhitespace()
	r.scanner.Advance()
	r.scanner.SkipWhitespace()

	digits := r.scanner.ScanWhile(internal.IsDigit)
	if digits == "" {
		return 0, NewSyntaxError(ErrMsgBadOffset, publicPos(pos))
	}
	offset, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, NewSyntaxError(ErrMsgBadOffset, publicPos(pos))
	}
	return offset, nil
}

// parseBranches parses labeled branch bodies until the argument's closing
// brace. plural enables exact selectors and pound placeholders in bodies.
func (r *parseRun) parseBranches(plural bool) ([]Branch, error) {
	var branches []Branch
	seen := make(map[string]bool)

	for {
		r.scanner.SkipWhitespace()
		if r.scanner.AtEnd() || r.scanner.Peek() == internal.CharCloseBrace {
			break
		}

		label, err := r.parseBranchLabel(plural)
		if err != nil {
			return nil, err
		}
		if seen[label] {
			return nil, NewSyntaxError(ErrMsgDuplicateLabel, publicPos(r.scanner.Position()))
		}
		seen[label] = true

		r.scanner.SkipWhitespace()
		if r.scanner.Peek() != internal.CharOpenBrace {
			return nil, NewSyntaxError(ErrMsgEmptyBranch, publicPos(r.scanner.Position()))
		}
		r.scanner.Advance()
		r.braceDepth++
		nodes, err := r.parseNodes(plural)
		r.braceDepth--
		if err != nil {
			return nil, err
		}
		if r.scanner.Peek() != internal.CharCloseBrace {
			return nil, NewSyntaxError(ErrMsgUnclosedArg, publicPos(r.scanner.Position()))
		}
		r.scanner.Advance()

		branches = append(branches, Branch{Label: label, Nodes: nodes})
	}
	return branches, nil
}

// parseBranchLabel parses one selector, either an exact numeric selector in
// plural context or a keyword.
func (r *parseRun) parseBranchLabel(plural bool) (string, error) {
	pos := r.scanner.Position()
	if plural && r.scanner.Peek() == internal.CharEquals {
		r.scanner.Advance()
		digits := r.scanner.ScanWhile(internal.IsDigit)
		if digits == "" {
			return "", NewSyntaxError(ErrMsgBadSelector, publicPos(pos))
		}
		return ExactPrefix + digits, nil
	}
	label := r.scanner.ScanWhile(internal.IsNameChar)
	if label == "" {
		return "", NewSyntaxError(ErrMsgBadSelector, publicPos(pos))
	}
	return label, nil
}

// parseTag parses a rich-text tag. Self-closing tags collapse to literal
// text, matching how unstyled markup is treated elsewhere.
func (r *parseRun) parseTag(inPlural bool) (Node, error) {
	pos := r.scanner.Position()
	r.scanner.Advance()
	name := r.scanner.ScanWhile(internal.IsNameChar)
	r.scanner.SkipWhitespace()

	if r.scanner.Match(strSelfClose) {
		r.scanner.AdvanceN(len(strSelfClose))
		return NewLiteralNode(fmt.Sprintf("<%s/>", name), publicPos(pos)), nil
	}
	if r.scanner.Peek() != internal.CharGreater {
		return nil, NewSyntaxError(ErrMsgUnclosedTag, publicPos(pos))
	}
	r.scanner.Advance()

	children, err := r.parseNodes(inPlural)
	if err != nil {
		return nil, err
	}

	if !r.scanner.Match(strCloseTagOpen) {
		return nil, NewSyntaxError(ErrMsgUnclosedTag, publicPos(pos))
	}
	r.scanner.AdvanceN(len(strCloseTagOpen))
	closeName := r.scanner.ScanWhile(internal.IsNameChar)
	if r.scanner.Peek() != internal.CharGreater {
		return nil, NewSyntaxError(ErrMsgUnclosedTag, publicPos(pos))
	}
	closePos := r.scanner.Position()
	r.scanner.Advance()
	if closeName != name {
		return nil, NewMismatchedTagError(name, closeName, publicPos(closePos))
	}
	return NewTagNode(name, children, publicPos(pos)), nil
}

// atTagOpen reports an opening tag at the cursor.
func (r *parseRun) atTagOpen() bool {
	if r.ignoreTag || r.scanner.Peek() != internal.CharLess {
		return false
	}
	return internal.IsLetter(r.scanner.PeekAt(1))
}

// atCloseTag reports a closing tag at the cursor.
func (r *parseRun) atCloseTag() bool {
	if r.ignoreTag || r.scanner.Peek() != internal.CharLess {
		return false
	}
	return r.scanner.PeekAt(1) == internal.CharSlash
}

func publicPos(pos internal.Position) Position {
	return Position{Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}
