package icumsg

import (
	"go.uber.org/zap"
)

// MessageFormat is a compiled message bound to a locale list and a merged
// format configuration. It is immutable after construction and safe for
// concurrent use; the only mutation across calls happens inside the formatter
// cache, which is populated first-writer-wins.
type MessageFormat struct {
	nodes    []Node
	locales  []string
	resolved string
	formats  *Formats
	cache    *FormatterCache
	logger   *zap.Logger
}

// ResolvedOptions reports the options a message settled on at construction.
type ResolvedOptions struct {
	// Locale is the primary locale tag the message formats with.
	Locale string
}

// New compiles message text for the given locale preference list.
// Parser failures are returned unchanged; see IsSyntaxError.
func New(text string, locales []string, opts ...Option) (*MessageFormat, error) {
	config := buildConfig(opts)
	parser := config.parser
	if parser == nil {
		parser = NewMessageParser(
			WithParserIgnoreTag(config.ignoreTag),
			WithParserLogger(config.logger),
		)
	}
	nodes, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return newMessage(nodes, locales, config)
}

// NewFromAST compiles a pre-parsed node sequence for the given locale
// preference list.
func NewFromAST(nodes []Node, locales []string, opts ...Option) (*MessageFormat, error) {
	return newMessage(nodes, locales, buildConfig(opts))
}

// MustNew compiles message text and panics on error.
func MustNew(text string, locales []string, opts ...Option) *MessageFormat {
	m, err := New(text, locales, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// MustNewFromAST compiles a node sequence and panics on error.
func MustNewFromAST(nodes []Node, locales []string, opts ...Option) *MessageFormat {
	m, err := NewFromAST(nodes, locales, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

func buildConfig(opts []Option) *config {
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	return config
}

func newMessage(nodes []Node, locales []string, config *config) (*MessageFormat, error) {
	if err := validateNodes(nodes); err != nil {
		return nil, err
	}

	cache := config.cache
	if cache == nil {
		cache = NewFormatterCache(WithCacheLogger(config.logger))
	}

	m := &MessageFormat{
		nodes:    nodes,
		locales:  append([]string(nil), locales...),
		resolved: resolveTag(locales).String(),
		formats:  MergeFormats(DefaultFormats(), config.formats),
		cache:    cache,
		logger:   config.logger,
	}
	m.logger.Debug(LogMsgMessageCompiled,
		zap.Int(LogFieldNodes, len(nodes)),
		zap.Strings(LogFieldLocales, m.locales))
	return m, nil
}

// FormatToParts evaluates the message against the given values into an
// ordered part sequence with adjacent literals coalesced. A failure anywhere
// in the tree aborts the whole evaluation; no partial sequence is returned.
func (m *MessageFormat) FormatToParts(values Values) ([]Part, error) {
	m.logger.Debug(LogMsgEvalStart, zap.Int(LogFieldNodes, len(m.nodes)))

	eval := &evaluator{
		locales: m.locales,
		formats: m.formats,
		cache:   m.cache,
		values:  values,
		logger:  m.logger,
	}
	parts, err := eval.evaluate(m.nodes, nil)
	if err != nil {
		return nil, err
	}

	m.logger.Debug(LogMsgEvalEnd, zap.Int(LogFieldParts, len(parts)))
	return parts, nil
}

// Format evaluates the message and collapses the part sequence: an empty
// result is an empty string, a single part returns its bare payload (string
// or rich value), and a mixed result is an ordered []any preserving the
// literal/object distinction.
func (m *MessageFormat) Format(values Values) (any, error) {
	parts, err := m.FormatToParts(values)
	if err != nil {
		return nil, err
	}
	switch len(parts) {
	case 0:
		return "", nil
	case 1:
		return partPayload(parts[0]), nil
	default:
		out := make([]any, len(parts))
		for i, part := range parts {
			out[i] = partPayload(part)
		}
		return out, nil
	}
}

// FormatString evaluates the message into a plain string. It fails when the
// result carries rich content parts.
func (m *MessageFormat) FormatString(values Values) (string, error) {
	parts, err := m.FormatToParts(values)
	if err != nil {
		return "", err
	}
	s, ok := PartsString(parts)
	if !ok {
		return "", NewFormatError(ErrMsgRichParts, nil)
	}
	return s, nil
}

// ResolvedOptions reports the primary locale the message resolved to.
func (m *MessageFormat) ResolvedOptions() ResolvedOptions {
	return ResolvedOptions{Locale: m.resolved}
}

// AST returns the message's node sequence. Callers must treat it as
// immutable.
func (m *MessageFormat) AST() []Node {
	return m.nodes
}

// Locales returns the locale preference list the message was compiled with.
func (m *MessageFormat) Locales() []string {
	return append([]string(nil), m.locales...)
}

// Formats returns the merged format configuration. Callers must treat it as
// immutable.
func (m *MessageFormat) Formats() *Formats {
	return m.formats
}

func partPayload(part Part) any {
	if lit, ok := part.(LiteralPart); ok {
		return lit.Text
	}
	if obj, ok := part.(ObjectPart); ok {
		return obj.Value
	}
	return part
}
