package icumsg

import (
	"context"
	"sync"
	"time"
)

// StoredMessage is one message record of a MessageStore. Source holds raw
// ICU MessageFormat text; Description is free-form translator context.
// Version and UpdatedAt are maintained by the store on Save.
type StoredMessage struct {
	Locale      string    `json:"locale" yaml:"locale"`
	ID          string    `json:"id" yaml:"id"`
	Source      string    `json:"source" yaml:"source"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Version     int       `json:"version" yaml:"version"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// MessageStore is the interface for pluggable message persistence backends.
// Implementations must be safe for concurrent use. Every operation takes a
// context for cancellation and deadlines; Close releases backend resources.
type MessageStore interface {
	// Get retrieves one message by locale and id.
	// Returns a not-found error if the message doesn't exist.
	Get(ctx context.Context, locale, id string) (*StoredMessage, error)

	// Save upserts a message. An existing (locale, id) pair gets its version
	// incremented; the message's Version and UpdatedAt fields are set by the
	// store implementation.
	Save(ctx context.Context, message *StoredMessage) error

	// Delete removes one message by locale and id.
	// Returns a not-found error if the message doesn't exist.
	Delete(ctx context.Context, locale, id string) error

	// List returns messages for the given locale, or all messages when the
	// locale is empty. Results are ordered by locale, then by id.
	List(ctx context.Context, locale string) ([]*StoredMessage, error)

	// Exists checks if a message with the given locale and id exists.
	Exists(ctx context.Context, locale, id string) (bool, error)

	// Close releases any resources held by the store.
	// After Close, the store should not be used.
	Close() error
}

// StoreDriver is a factory for store instances, made available by name
// through RegisterStoreDriver.
type StoreDriver interface {
	// Open connects a store to its backend. What the connection string means
	// is up to the driver: a DSN, a directory path, or nothing at all.
	Open(connectionString string) (MessageStore, error)
}

// Store driver registry
var (
	storeDriversMu sync.RWMutex
	storeDrivers   = make(map[string]StoreDriver)
)

// RegisterStoreDriver makes a driver available under the given name, usually
// from the driver's init function. A nil driver or a reused name panics.
func RegisterStoreDriver(name string, driver StoreDriver) {
	storeDriversMu.Lock()
	defer storeDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgStoreDriverNil)
	}
	if _, exists := storeDrivers[name]; exists {
		panic(ErrMsgStoreDriverDup + ": " + name)
	}
	storeDrivers[name] = driver
}

// OpenStore opens a message store by driver name.
//
// Example:
//
//	store, err := icumsg.OpenStore(icumsg.StoreDriverMemory, "")
//	store, err := icumsg.OpenStore(icumsg.StoreDriverFilesystem, "/path/to/messages")
func OpenStore(driverName, connectionString string) (MessageStore, error) {
	storeDriversMu.RLock()
	driver, ok := storeDrivers[driverName]
	storeDriversMu.RUnlock()

	if !ok {
		return nil, annotateError(
			NewStoreError(ErrMsgStoreDriverUnknown, nil), MetaKeyDriver, driverName)
	}
	return driver.Open(connectionString)
}

// ListStoreDrivers returns the names of all registered store drivers.
func ListStoreDrivers() []string {
	storeDriversMu.RLock()
	defer storeDriversMu.RUnlock()

	names := make([]string, 0, len(storeDrivers))
	for name := range storeDrivers {
		names = append(names, name)
	}
	return names
}

// validateStoredMessage checks the fields every backend requires and
// canonicalizes the locale so all backends key messages identically.
func validateStoredMessage(message *StoredMessage) error {
	if message == nil {
		return NewStoreError(ErrMsgStoreMessageNil, nil)
	}
	if message.Locale == "" || message.ID == "" {
		return NewStoreError(ErrMsgStoreKeyEmpty, nil)
	}
	canonical, err := parseCanonicalLocale(message.Locale)
	if err != nil {
		return err
	}
	message.Locale = canonical
	return nil
}

// copyStoredMessage creates a copy so store internals never alias caller data.
func copyStoredMessage(message *StoredMessage) *StoredMessage {
	if message == nil {
		return nil
	}
	clone := *message
	return &clone
}
