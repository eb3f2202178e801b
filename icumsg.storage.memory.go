package icumsg

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of MessageStore.
// It is primarily intended for testing and embedding.
// All data is lost when the process terminates.
type MemoryStore struct {
	mu       sync.RWMutex
	byLocale map[string]map[string]*StoredMessage
	closed   bool
}

// MemoryStoreDriver is the driver for creating MemoryStore instances.
type MemoryStoreDriver struct{}

func init() {
	RegisterStoreDriver(StoreDriverMemory, &MemoryStoreDriver{})
}

// Open creates a new MemoryStore instance.
// The connection string is ignored for memory stores.
func (d *MemoryStoreDriver) Open(connectionString string) (MessageStore, error) {
	return NewMemoryStore(), nil
}

// NewMemoryStore creates a new in-memory message store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byLocale: make(map[string]map[string]*StoredMessage),
	}
}

// Get retrieves one message by locale and id.
func (s *MemoryStore) Get(ctx context.Context, locale, id string) (*StoredMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreError(ErrMsgStoreClosed, nil)
	}

	message, ok := s.byLocale[canonicalLocale(locale)][id]
	if !ok {
		return nil, NewMessageNotFoundError(locale, id)
	}
	return copyStoredMessage(message), nil
}

// Save upserts a message, incrementing the version of an existing record.
func (s *MemoryStore) Save(ctx context.Context, message *StoredMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateStoredMessage(message); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreError(ErrMsgStoreClosed, nil)
	}

	byID, ok := s.byLocale[message.Locale]
	if !ok {
		byID = make(map[string]*StoredMessage)
		s.byLocale[message.Locale] = byID
	}

	version := 1
	if existing, ok := byID[message.ID]; ok {
		version = existing.Version + 1
	}

	message.Version = version
	message.UpdatedAt = time.Now()
	byID[message.ID] = copyStoredMessage(message)
	return nil
}

// Delete removes one message by locale and id.
func (s *MemoryStore) Delete(ctx context.Context, locale, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreError(ErrMsgStoreClosed, nil)
	}

	canonical := canonicalLocale(locale)
	byID, ok := s.byLocale[canonical]
	if !ok {
		return NewMessageNotFoundError(locale, id)
	}
	if _, ok := byID[id]; !ok {
		return NewMessageNotFoundError(locale, id)
	}

	delete(byID, id)
	if len(byID) == 0 {
		delete(s.byLocale, canonical)
	}
	return nil
}

// List returns messages for the locale, or all messages when it is empty,
// ordered by locale then id.
func (s *MemoryStore) List(ctx context.Context, locale string) ([]*StoredMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreError(ErrMsgStoreClosed, nil)
	}

	var results []*StoredMessage
	if locale != "" {
		for _, message := range s.byLocale[canonicalLocale(locale)] {
			results = append(results, copyStoredMessage(message))
		}
	} else {
		for _, byID := range s.byLocale {
			for _, message := range byID {
				results = append(results, copyStoredMessage(message))
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Locale != results[j].Locale {
			return results[i].Locale < results[j].Locale
		}
		return results[i].ID < results[j].ID
	})
	return results, nil
}

// Exists checks if a message with the given locale and id exists.
func (s *MemoryStore) Exists(ctx context.Context, locale, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStoreError(ErrMsgStoreClosed, nil)
	}

	_, ok := s.byLocale[canonicalLocale(locale)][id]
	return ok, nil
}

// Close marks the store as closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.byLocale = nil
	return nil
}
