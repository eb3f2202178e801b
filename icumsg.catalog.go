package icumsg

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Catalog is a concurrency-safe registry of compiled messages keyed by locale
// and message id. All messages compiled through one catalog share its
// formatter cache, so locale primitives are constructed once per catalog
// rather than once per message.
//
// Lookups negotiate the best available locale for a request and fall back to
// the catalog's default locale when the negotiated locale lacks the message.
type Catalog struct {
	mu            sync.RWMutex
	messages      map[string]map[string]*MessageFormat
	locales       []string
	matcher       language.Matcher
	matched       []string
	defaultLocale string
	formats       *Formats
	cache         *FormatterCache
	parser        Parser
	ignoreTag     bool
	logger        *zap.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogConfig)

type catalogConfig struct {
	defaultLocale string
	formats       *Formats
	cache         *FormatterCache
	parser        Parser
	ignoreTag     bool
	logger        *zap.Logger
}

func defaultCatalogConfig() catalogConfig {
	return catalogConfig{
		defaultLocale: DefaultLocale,
		logger:        zap.NewNop(),
	}
}

// WithCatalogDefaultLocale sets the locale used as the last lookup fallback.
// Unparsable values keep the built-in default.
func WithCatalogDefaultLocale(locale string) CatalogOption {
	return func(c *catalogConfig) {
		if _, err := language.Parse(locale); err == nil {
			c.defaultLocale = locale
		}
	}
}

// WithCatalogFormats sets named format presets applied to every message
// compiled by the catalog, merged over the built-in defaults.
func WithCatalogFormats(formats *Formats) CatalogOption {
	return func(c *catalogConfig) {
		c.formats = formats
	}
}

// WithCatalogCache sets the formatter cache shared by all catalog messages.
func WithCatalogCache(cache *FormatterCache) CatalogOption {
	return func(c *catalogConfig) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithCatalogParser sets the parser used by AddMessage and the file loaders.
func WithCatalogParser(parser Parser) CatalogOption {
	return func(c *catalogConfig) {
		if parser != nil {
			c.parser = parser
		}
	}
}

// WithCatalogIgnoreTag disables rich-text tag syntax for catalog messages.
func WithCatalogIgnoreTag(ignore bool) CatalogOption {
	return func(c *catalogConfig) {
		c.ignoreTag = ignore
	}
}

// WithCatalogLogger sets the logger for catalog operations.
func WithCatalogLogger(logger *zap.Logger) CatalogOption {
	return func(c *catalogConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCatalog creates an empty catalog.
func NewCatalog(opts ...CatalogOption) *Catalog {
	config := defaultCatalogConfig()
	for _, opt := range opts {
		opt(&config)
	}

	cache := config.cache
	if cache == nil {
		cache = NewFormatterCache(WithCacheLogger(config.logger))
	}

	catalog := &Catalog{
		messages:      make(map[string]map[string]*MessageFormat),
		defaultLocale: canonicalLocale(config.defaultLocale),
		formats:       config.formats,
		cache:         cache,
		parser:        config.parser,
		ignoreTag:     config.ignoreTag,
		logger:        config.logger,
	}

	catalog.logger.Debug(LogMsgCatalogCreated,
		zap.String(LogFieldLocale, catalog.defaultLocale))
	return catalog
}

// AddMessage parses and compiles message text under the given locale and id.
// Re-adding an existing id replaces the previous message.
func (c *Catalog) AddMessage(locale, id, text string) error {
	canonical, err := parseCanonicalLocale(locale)
	if err != nil {
		return err
	}
	message, err := New(text, []string{canonical}, c.messageOptions()...)
	if err != nil {
		return err
	}
	c.insert(canonical, id, message)
	return nil
}

// AddAST compiles a pre-built node sequence under the given locale and id.
func (c *Catalog) AddAST(locale, id string, nodes []Node) error {
	canonical, err := parseCanonicalLocale(locale)
	if err != nil {
		return err
	}
	message, err := NewFromAST(nodes, []string{canonical}, c.messageOptions()...)
	if err != nil {
		return err
	}
	c.insert(canonical, id, message)
	return nil
}

// Format renders the message id for the best available locale. The result
// follows MessageFormat.Format: a string for text-only messages, a single
// payload, or a payload slice for mixed content.
func (c *Catalog) Format(locale, id string, values Values) (any, error) {
	message, _, err := c.lookup(locale, id)
	if err != nil {
		return nil, err
	}
	return message.Format(values)
}

// FormatString renders the message id as plain text. Messages producing rich
// content parts fail with a format error.
func (c *Catalog) FormatString(locale, id string, values Values) (string, error) {
	message, _, err := c.lookup(locale, id)
	if err != nil {
		return "", err
	}
	return message.FormatString(values)
}

// FormatToParts renders the message id as its ordered part sequence.
func (c *Catalog) FormatToParts(locale, id string, values Values) ([]Part, error) {
	message, _, err := c.lookup(locale, id)
	if err != nil {
		return nil, err
	}
	return message.FormatToParts(values)
}

// Message returns the compiled message resolved for the requested locale,
// along with the locale it resolved to.
func (c *Catalog) Message(locale, id string) (*MessageFormat, string, error) {
	return c.lookup(locale, id)
}

// Has reports whether the exact locale carries the message id. It does not
// negotiate; use Format for fallback-aware lookups.
func (c *Catalog) Has(locale, id string) bool {
	canonical := canonicalLocale(locale)

	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.messages[canonical][id]
	return ok
}

// Locales returns all locales with at least one message, sorted.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	locales := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// MessageIDs returns the message ids registered for the exact locale, sorted.
func (c *Catalog) MessageIDs(locale string) []string {
	canonical := canonicalLocale(locale)

	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.messages[canonical]))
	for id := range c.messages[canonical] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultLocale returns the catalog's fallback locale.
func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Cache returns the formatter cache shared by the catalog's messages.
func (c *Catalog) Cache() *FormatterCache {
	return c.cache
}

// LoadStore hydrates the catalog with every message of a store. Compilation
// stops at the first message that fails to parse.
func (c *Catalog) LoadStore(ctx context.Context, store MessageStore) error {
	stored, err := store.List(ctx, "")
	if err != nil {
		return err
	}
	for _, message := range stored {
		if err := ctx.Err(); err != nil {
			return NewStoreError(ErrMsgStoreInterrupted, err)
		}
		if err := c.AddMessage(message.Locale, message.ID, message.Source); err != nil {
			return err
		}
	}
	c.logger.Debug(LogMsgStoreHydrated, zap.Int(LogFieldCount, len(stored)))
	return nil
}

// messageOptions assembles the compile options threading the catalog's shared
// configuration into each message.
func (c *Catalog) messageOptions() []Option {
	opts := []Option{
		WithCache(c.cache),
		WithIgnoreTag(c.ignoreTag),
		WithLogger(c.logger),
	}
	if c.formats != nil {
		opts = append(opts, WithFormats(c.formats))
	}
	if c.parser != nil {
		opts = append(opts, WithParser(c.parser))
	}
	return opts
}

// insert stores a compiled message and refreshes the locale matcher when the
// locale is new.
func (c *Catalog) insert(canonical, id string, message *MessageFormat) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byID, ok := c.messages[canonical]
	if !ok {
		byID = make(map[string]*MessageFormat)
		c.messages[canonical] = byID
		c.locales = append(c.locales, canonical)
		c.rebuildMatcherLocked()
	}
	byID[id] = message

	c.logger.Debug(LogMsgCatalogAdded,
		zap.String(LogFieldLocale, canonical),
		zap.String(LogFieldMessageID, id))
}

// rebuildMatcherLocked recomputes the negotiation matcher after a locale set
// change. The default locale leads the candidate list so negotiation prefers
// it on ties; matched mirrors the candidate order so matcher indices map back
// to locale keys. Callers must hold the write lock.
func (c *Catalog) rebuildMatcherLocked() {
	ordered := make([]string, 0, len(c.locales))
	for _, locale := range c.locales {
		if locale == c.defaultLocale {
			ordered = append(ordered, locale)
		}
	}
	for _, locale := range c.locales {
		if locale != c.defaultLocale {
			ordered = append(ordered, locale)
		}
	}

	tags := make([]language.Tag, 0, len(ordered))
	keys := make([]string, 0, len(ordered))
	for _, locale := range ordered {
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		keys = append(keys, locale)
	}

	if len(tags) == 0 {
		c.matcher = nil
		c.matched = nil
		return
	}
	c.matcher = language.NewMatcher(tags)
	c.matched = keys
}

// lookup resolves the message id against the negotiated locale, then against
// the default locale, and fails with a not-found error carrying the original
// request when neither carries the id.
func (c *Catalog) lookup(locale, id string) (*MessageFormat, string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	resolved := c.negotiateLocked(locale)
	if message, ok := c.messages[resolved][id]; ok {
		return message, resolved, nil
	}
	if resolved != c.defaultLocale {
		if message, ok := c.messages[c.defaultLocale][id]; ok {
			return message, c.defaultLocale, nil
		}
	}
	return nil, "", NewMessageNotFoundError(locale, id)
}

// negotiateLocked maps a requested locale to the best available catalog
// locale: an exact canonical hit wins, then matcher negotiation, then the
// default locale. Callers must hold a read lock.
func (c *Catalog) negotiateLocked(locale string) string {
	canonical := canonicalLocale(locale)
	if _, ok := c.messages[canonical]; ok {
		return canonical
	}
	if c.matcher == nil {
		return c.defaultLocale
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return c.defaultLocale
	}
	_, index, confidence := c.matcher.Match(tag)
	if confidence == language.No || index < 0 || index >= len(c.matched) {
		return c.defaultLocale
	}
	resolved := c.matched[index]

	c.logger.Debug(LogMsgCatalogNegotiate,
		zap.String(LogFieldLocale, locale),
		zap.String(LogFieldResolved, resolved))
	return resolved
}

// parseCanonicalLocale canonicalizes a locale tag or fails with a catalog
// error carrying the rejected value.
func parseCanonicalLocale(locale string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", NewBadLocaleError(locale, err)
	}
	return tag.String(), nil
}

// canonicalLocale canonicalizes best-effort, passing unparsable values
// through unchanged so they miss lookups instead of failing them.
func canonicalLocale(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	return tag.String()
}
