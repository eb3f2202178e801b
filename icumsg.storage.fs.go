package icumsg

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FSStore stores messages as files on the filesystem, one YAML document per
// locale under the root directory:
//
//	<root>/
//	  en.yaml
//	  de.yaml
//	  ...
//
// Each document maps message ids to source, description, version, and update
// time. Writes go through a temp file and rename, so readers never observe a
// partially written document.
type FSStore struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

// fsLocaleDoc is the YAML document shape of one locale file.
type fsLocaleDoc struct {
	Messages map[string]fsMessageEntry `yaml:"messages"`
}

// fsMessageEntry is one message record inside a locale document.
type fsMessageEntry struct {
	Source      string    `yaml:"source"`
	Description string    `yaml:"description,omitempty"`
	Version     int       `yaml:"version"`
	UpdatedAt   time.Time `yaml:"updated_at"`
}

// FSStoreDriver is the driver for creating FSStore instances.
type FSStoreDriver struct{}

func init() {
	RegisterStoreDriver(StoreDriverFilesystem, &FSStoreDriver{})
}

// Open creates a new FSStore instance.
// The connection string is the root directory path.
func (d *FSStoreDriver) Open(connectionString string) (MessageStore, error) {
	return NewFSStore(connectionString)
}

// NewFSStore creates a filesystem-backed message store.
// The root directory is created if it doesn't exist.
func NewFSStore(root string) (*FSStore, error) {
	if root == "" {
		return nil, NewStoreError(ErrMsgStoreRootEmpty, nil)
	}
	if err := os.MkdirAll(root, FSStoreDirPerm); err != nil {
		return nil, annotateError(
			NewStoreError(ErrMsgStoreDirFailed, err), MetaKeyFile, root)
	}
	return &FSStore{root: root}, nil
}

// Get retrieves one message by locale and id.
func (s *FSStore) Get(ctx context.Context, locale, id string) (*StoredMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreError(ErrMsgStoreClosed, nil)
	}

	canonical := canonicalLocale(locale)
	doc, err := s.loadDoc(canonical)
	if err != nil {
		return nil, err
	}
	entry, ok := doc.Messages[id]
	if !ok {
		return nil, NewMessageNotFoundError(locale, id)
	}
	return entry.toStoredMessage(canonical, id), nil
}

// Save upserts a message, incrementing the version of an existing record and
// rewriting the locale document atomically.
func (s *FSStore) Save(ctx context.Context, message *StoredMessage) error {
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

	doc, err := s.loadDoc(message.Locale)
	if err != nil {
		return err
	}
	if doc.Messages == nil {
		doc.Messages = make(map[string]fsMessageEntry)
	}

	version := 1
	if existing, ok := doc.Messages[message.ID]; ok {
		version = existing.Version + 1
	}
	now := time.Now()

	doc.Messages[message.ID] = fsMessageEntry{
		Source:      message.Source,
		Description: message.Description,
		Version:     version,
		UpdatedAt:   now,
	}
	if err := s.writeDoc(message.Locale, doc); err != nil {
		return err
	}

	message.Version = version
	message.UpdatedAt = now
	return nil
}

// Delete removes one message by locale and id. The locale document is
// removed entirely when its last message is deleted.
func (s *FSStore) Delete(ctx context.Context, locale, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreError(ErrMsgStoreClosed, nil)
	}

	canonical := canonicalLocale(locale)
	doc, err := s.loadDoc(canonical)
	if err != nil {
		return err
	}
	if _, ok := doc.Messages[id]; !ok {
		return NewMessageNotFoundError(locale, id)
	}

	delete(doc.Messages, id)
	if len(doc.Messages) == 0 {
		if err := os.Remove(s.localePath(canonical)); err != nil {
			return annotateError(
				NewStoreError(ErrMsgStoreWriteFailed, err), MetaKeyFile, s.localePath(canonical))
		}
		return nil
	}
	return s.writeDoc(canonical, doc)
}

// List returns messages for the locale, or all messages when it is empty,
// ordered by locale then id.
func (s *FSStore) List(ctx context.Context, locale string) ([]*StoredMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreError(ErrMsgStoreClosed, nil)
	}

	locales, err := s.localesOnDisk(locale)
	if err != nil {
		return nil, err
	}

	var results []*StoredMessage
	for _, loc := range locales {
		doc, err := s.loadDoc(loc)
		if err != nil {
			return nil, err
		}
		for id, entry := range doc.Messages {
			results = append(results, entry.toStoredMessage(loc, id))
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
func (s *FSStore) Exists(ctx context.Context, locale, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStoreError(ErrMsgStoreClosed, nil)
	}

	doc, err := s.loadDoc(canonicalLocale(locale))
	if err != nil {
		return false, err
	}
	_, ok := doc.Messages[id]
	return ok, nil
}

// Close marks the store as closed.
func (s *FSStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// localePath returns the document path for a locale.
func (s *FSStore) localePath(locale string) string {
	return filepath.Join(s.root, locale+FSStoreExt)
}

// localesOnDisk lists the locales present under the root, or just the one
// requested locale.
func (s *FSStore) localesOnDisk(locale string) ([]string, error) {
	if locale != "" {
		return []string{canonicalLocale(locale)}, nil
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, annotateError(
			NewStoreError(ErrMsgStoreReadFailed, err), MetaKeyFile, s.root)
	}

	var locales []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, FSStoreExt) {
			continue
		}
		locales = append(locales, strings.TrimSuffix(name, FSStoreExt))
	}
	sort.Strings(locales)
	return locales, nil
}

// loadDoc reads and decodes one locale document. A missing file yields an
// empty document.
func (s *FSStore) loadDoc(locale string) (fsLocaleDoc, error) {
	var doc fsLocaleDoc

	data, err := os.ReadFile(s.localePath(locale))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return doc, annotateError(
			NewStoreError(ErrMsgStoreReadFailed, err), MetaKeyFile, s.localePath(locale))
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, annotateError(
			NewStoreError(ErrMsgStoreDecodeFailed, err), MetaKeyFile, s.localePath(locale))
	}
	return doc, nil
}

// writeDoc encodes and writes one locale document through a temp file and
// rename, so a crash mid-write never corrupts the previous document.
func (s *FSStore) writeDoc(locale string, doc fsLocaleDoc) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return NewStoreError(ErrMsgStoreEncodeFailed, err)
	}

	target := s.localePath(locale)
	tmp, err := os.CreateTemp(s.root, "."+locale+".tmp-*")
	if err != nil {
		return annotateError(
			NewStoreError(ErrMsgStoreWriteFailed, err), MetaKeyFile, target)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return annotateError(
			NewStoreError(ErrMsgStoreWriteFailed, err), MetaKeyFile, target)
	}
	if err := tmp.Chmod(FSStoreFilePerm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return annotateError(
			NewStoreError(ErrMsgStoreWriteFailed, err), MetaKeyFile, target)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return annotateError(
			NewStoreError(ErrMsgStoreWriteFailed, err), MetaKeyFile, target)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return annotateError(
			NewStoreError(ErrMsgStoreWriteFailed, err), MetaKeyFile, target)
	}
	return nil
}

// toStoredMessage converts a document entry back to the store record shape.
func (e fsMessageEntry) toStoredMessage(locale, id string) *StoredMessage {
	return &StoredMessage{
		Locale:      locale,
		ID:          id,
		Source:      e.Source,
		Description: e.Description,
		Version:     e.Version,
		UpdatedAt:   e.UpdatedAt,
	}
}
