package icumsg

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// FormatterCache memoizes the locale-aware primitives so that repeated
// evaluation of the same message reuses one NumberFormat, DateTimeFormat and
// PluralRules instance per distinct (locales, options) input. Keys are
// structural: any differing option field yields an independent instance, and
// structurally equal inputs always return the identical instance.
type FormatterCache struct {
	store  CacheStore
	logger *zap.Logger
	mu     sync.Mutex
	stats  CacheStats
}

// CacheStats tracks cache performance metrics.
type CacheStats struct {
	Hits       int64
	Misses     int64
	EntryCount int
}

// CacheStore is the storage medium behind a FormatterCache. Implementations
// must be safe for concurrent use; population is first-writer-wins.
type CacheStore interface {
	// Load returns the value stored under key.
	Load(key string) (any, bool)

	// LoadOrStore stores value under key if the key is absent and returns the
	// value that ended up stored. The bool reports whether the value was
	// already present.
	LoadOrStore(key string, value any) (any, bool)

	// Len returns the number of stored entries.
	Len() int

	// Clear drops all entries.
	Clear()
}

// memoryCacheStore is the default mutex-guarded in-memory store.
type memoryCacheStore struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewMemoryCacheStore creates the default unbounded in-memory cache store.
func NewMemoryCacheStore() CacheStore {
	return &memoryCacheStore{entries: make(map[string]any)}
}

func (s *memoryCacheStore) Load(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	return value, ok
}

func (s *memoryCacheStore) LoadOrStore(key string, value any) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[key]; ok {
		return existing, true
	}
	s.entries[key] = value
	return value, false
}

func (s *memoryCacheStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *memoryCacheStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]any)
}

// CacheOption configures a FormatterCache.
type CacheOption func(*cacheConfig)

type cacheConfig struct {
	store  CacheStore
	logger *zap.Logger
}

func defaultCacheConfig() *cacheConfig {
	return &cacheConfig{
		store:  NewMemoryCacheStore(),
		logger: zap.NewNop(),
	}
}

// WithCacheStore replaces the default in-memory store, for callers that need
// bounded or shared storage.
func WithCacheStore(store CacheStore) CacheOption {
	return func(c *cacheConfig) {
		if store != nil {
			c.store = store
		}
	}
}

// WithCacheLogger sets the logger used for cache hit/miss events.
func WithCacheLogger(logger *zap.Logger) CacheOption {
	return func(c *cacheConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewFormatterCache creates a formatter cache.
func NewFormatterCache(opts ...CacheOption) *FormatterCache {
	config := defaultCacheConfig()
	for _, opt := range opts {
		opt(config)
	}
	return &FormatterCache{store: config.store, logger: config.logger}
}

// NumberFormat returns the memoized number primitive for the locale list and
// options record, constructing and storing it on first use.
func (c *FormatterCache) NumberFormat(locales []string, opts NumberOptions) (*NumberFormat, error) {
	key, err := cacheKey(CacheKindNumber, locales, opts)
	if err != nil {
		return nil, err
	}
	if cached, ok := c.load(key, CacheKindNumber); ok {
		if format, ok := cached.(*NumberFormat); ok {
			return format, nil
		}
	}
	format, err := newNumberFormat(locales, opts)
	if err != nil {
		return nil, err
	}
	stored, _ := c.store.LoadOrStore(key, format)
	if cached, ok := stored.(*NumberFormat); ok {
		return cached, nil
	}
	return format, nil
}

// DateTimeFormat returns the memoized temporal primitive for the locale list
// and options record.
func (c *FormatterCache) DateTimeFormat(locales []string, opts DateTimeOptions) (*DateTimeFormat, error) {
	key, err := cacheKey(CacheKindDateTime, locales, opts)
	if err != nil {
		return nil, err
	}
	if cached, ok := c.load(key, CacheKindDateTime); ok {
		if format, ok := cached.(*DateTimeFormat); ok {
			return format, nil
		}
	}
	format, err := newDateTimeFormat(locales, opts)
	if err != nil {
		return nil, err
	}
	stored, _ := c.store.LoadOrStore(key, format)
	if cached, ok := stored.(*DateTimeFormat); ok {
		return cached, nil
	}
	return format, nil
}

// PluralRules returns the memoized plural classifier for the locale list and
// rule family.
func (c *FormatterCache) PluralRules(locales []string, pluralType PluralType) (*PluralRules, error) {
	key, err := cacheKey(CacheKindPlural, locales, pluralType.String())
	if err != nil {
		return nil, err
	}
	if cached, ok := c.load(key, CacheKindPlural); ok {
		if rules, ok := cached.(*PluralRules); ok {
			return rules, nil
		}
	}
	rules, err := newPluralRules(locales, pluralType)
	if err != nil {
		return nil, err
	}
	stored, _ := c.store.LoadOrStore(key, rules)
	if cached, ok := stored.(*PluralRules); ok {
		return cached, nil
	}
	return rules, nil
}

// Stats returns current cache statistics.
func (c *FormatterCache) Stats() CacheStats {
	c.mu.Lock()
	stats := c.stats
	c.mu.Unlock()
	stats.EntryCount = c.store.Len()
	return stats
}

// HitRate returns the cache hit rate (0.0 to 1.0).
func (c *FormatterCache) HitRate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.stats.Hits + c.stats.Misses
	if total == 0 {
		return 0
	}
	return float64(c.stats.Hits) / float64(total)
}

// Clear removes all cached primitives. Hit and miss counters are retained.
func (c *FormatterCache) Clear() {
	c.store.Clear()
}

func (c *FormatterCache) load(key, kind string) (any, bool) {
	value, ok := c.store.Load(key)
	c.mu.Lock()
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	c.mu.Unlock()
	if ok {
		c.logger.Debug(LogMsgCacheHit, zap.String(LogFieldKind, kind), zap.String(LogFieldKey, key))
	} else {
		c.logger.Debug(LogMsgCacheMiss, zap.String(LogFieldKind, kind), zap.String(LogFieldKey, key))
	}
	return value, ok
}

// cacheKey builds the kind-prefixed structural key. encoding/json writes
// struct fields in declaration order, so structurally equal inputs produce
// byte-identical keys and any differing field changes the key.
func cacheKey(kind string, locales []string, options any) (string, error) {
	payload := struct {
		Locales []string `json:"locales"`
		Options any      `json:"options"`
	}{Locales: locales, Options: options}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", NewFormatError(ErrMsgCacheKey, err)
	}
	return kind + ":" + string(raw), nil
}
