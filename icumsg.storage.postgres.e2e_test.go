//go:build integration

package icumsg

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgresContainer creates an ephemeral PostgreSQL container for testing.
func setupPostgresContainer(t *testing.T) (*PostgresStore, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15",
		postgres.WithDatabase("icumsg_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	store, err := NewPostgresStore(PostgresConfig{
		ConnectionString: connStr,
		AutoMigrate:      true,
		QueryTimeout:     30 * time.Second,
	})
	require.NoError(t, err, "failed to create postgres store")

	cleanup := func() {
		if store != nil {
			_ = store.Close()
		}
		if container != nil {
			_ = container.Terminate(ctx)
		}
	}

	return store, cleanup
}

// =============================================================================
// Basic CRUD Tests
// =============================================================================

func TestPostgres_E2E_BasicCRUD(t *testing.T) {
	store, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("Save", func(t *testing.T) {
		message := &StoredMessage{
			Locale:      "en",
			ID:          "app.greeting",
			Source:      "Hello, {name}!",
			Description: "Shown on the landing page",
		}

		err := store.Save(ctx, message)
		require.NoError(t, err)
		assert.Equal(t, 1, message.Version)
		assert.False(t, message.UpdatedAt.IsZero())
	})

	t.Run("Get", func(t *testing.T) {
		message, err := store.Get(ctx, "en", "app.greeting")
		require.NoError(t, err)
		assert.Equal(t, "en", message.Locale)
		assert.Equal(t, "app.greeting", message.ID)
		assert.Equal(t, "Hello, {name}!", message.Source)
		assert.Equal(t, "Shown on the landing page", message.Description)
		assert.Equal(t, 1, message.Version)
	})

	t.Run("Exists", func(t *testing.T) {
		exists, err := store.Exists(ctx, "en", "app.greeting")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = store.Exists(ctx, "en", "nonexistent")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("GetNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "en", "nonexistent")
		require.Error(t, err)
		assert.True(t, IsMessageNotFoundError(err))
	})

	t.Run("Update", func(t *testing.T) {
		message := &StoredMessage{
			Locale: "en",
			ID:     "app.greeting",
			Source: "Hi, {name}!",
		}
		err := store.Save(ctx, message)
		require.NoError(t, err)
		assert.Equal(t, 2, message.Version)

		loaded, err := store.Get(ctx, "en", "app.greeting")
		require.NoError(t, err)
		assert.Equal(t, "Hi, {name}!", loaded.Source)
		assert.Equal(t, 2, loaded.Version)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, &StoredMessage{Locale: "en", ID: "to-delete", Source: "x"})
		require.NoError(t, err)

		err = store.Delete(ctx, "en", "to-delete")
		require.NoError(t, err)

		exists, err := store.Exists(ctx, "en", "to-delete")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("DeleteNotFound", func(t *testing.T) {
		err := store.Delete(ctx, "en", "nonexistent")
		require.Error(t, err)
		assert.True(t, IsMessageNotFoundError(err))
	})
}

func TestPostgres_E2E_LocaleCanonicalization(t *testing.T) {
	store, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	message := &StoredMessage{Locale: "EN-us", ID: "a", Source: "x"}
	require.NoError(t, store.Save(ctx, message))
	assert.Equal(t, "en-US", message.Locale)

	loaded, err := store.Get(ctx, "en-us", "a")
	require.NoError(t, err)
	assert.Equal(t, "en-US", loaded.Locale)

	exists, err := store.Exists(ctx, "EN-US", "a")
	require.NoError(t, err)
	assert.True(t, exists)
}

// =============================================================================
// Versioning Tests
// =============================================================================

func TestPostgres_E2E_Versioning(t *testing.T) {
	store, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		message := &StoredMessage{
			Locale: "en",
			ID:     "versioned",
			Source: fmt.Sprintf("Revision %d", i),
		}
		err := store.Save(ctx, message)
		require.NoError(t, err)
		assert.Equal(t, i, message.Version)
	}

	loaded, err := store.Get(ctx, "en", "versioned")
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Version)
	assert.Equal(t, "Revision 5", loaded.Source)
}

// =============================================================================
// Concurrent Access Tests
// =============================================================================

func TestPostgres_E2E_ConcurrentSaves(t *testing.T) {
	store, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	const numGoroutines = 50
	var wg sync.WaitGroup
	errChan := make(chan error, numGoroutines)
	versionChan := make(chan int, numGoroutines)

	// 50 goroutines all saving the same (locale, id) pair
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			message := &StoredMessage{
				Locale: "en",
				ID:     "concurrent",
				Source: fmt.Sprintf("Content from goroutine %d", id),
			}

			if err := store.Save(ctx, message); err != nil {
				errChan <- err
				return
			}
			versionChan <- message.Version
		}(i)
	}

	wg.Wait()
	close(errChan)
	close(versionChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	assert.Empty(t, errs, "expected no errors from concurrent saves")

	// Every save must have received a distinct version
	versionSet := make(map[int]bool)
	for v := range versionChan {
		assert.False(t, versionSet[v], "duplicate version detected: %d", v)
		versionSet[v] = true
	}
	assert.Len(t, versionSet, numGoroutines)

	loaded, err := store.Get(ctx, "en", "concurrent")
	require.NoError(t, err)
	assert.Equal(t, numGoroutines, loaded.Version)
}

func TestPostgres_E2E_ConcurrentReads(t *testing.T) {
	store, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Save(ctx, &StoredMessage{Locale: "en", ID: "read-test", Source: "Read me"})
	require.NoError(t, err)

	const numGoroutines = 100
	var wg sync.WaitGroup
	errChan := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			loaded, err := store.Get(ctx, "en", "read-test")
			if err != nil {
				errChan <- err
				return
			}
			if loaded.Source != "Read me" {
				errChan <- fmt.Errorf("unexpected source: %s", loaded.Source)
			}
		}()
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	assert.Empty(t, errs, "expected no errors from concurrent reads")
}

// =============================================================================
// Listing Tests
// =============================================================================

func TestPostgres_E2E_List(t *testing.T) {
	store, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	seed := []struct {
		locale string
		id     string
	}{
		{"en", "b"},
		{"en", "a"},
		{"de", "z"},
		{"fr", "q"},
	}
	for _, s := range seed {
		err := store.Save(ctx, &StoredMessage{Locale: s.locale, ID: s.id, Source: "x"})
		require.NoError(t, err)
	}

	t.Run("All", func(t *testing.T) {
		all, err := store.List(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, "de", all[0].Locale)
		assert.Equal(t, "z", all[0].ID)
		assert.Equal(t, "a", all[1].ID)
		assert.Equal(t, "b", all[2].ID)
		assert.Equal(t, "fr", all[3].Locale)
	})

	t.Run("FilterByLocale", func(t *testing.T) {
		english, err := store.List(ctx, "en")
		require.NoError(t, err)
		require.Len(t, english, 2)
		assert.Equal(t, "a", english[0].ID)
		assert.Equal(t, "b", english[1].ID)
	})

	t.Run("FilterCanonicalizes", func(t *testing.T) {
		german, err := store.List(ctx, "DE")
		require.NoError(t, err)
		require.Len(t, german, 1)
		assert.Equal(t, "z", german[0].ID)
	})

	t.Run("EmptyLocale", func(t *testing.T) {
		none, err := store.List(ctx, "ja")
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

// =============================================================================
// Migration Tests
// =============================================================================

func TestPostgres_E2E_Migrations(t *testing.T) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15",
		postgres.WithDatabase("icumsg_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	defer func() { _ = container.Terminate(ctx) }()

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	t.Run("InitialMigration", func(t *testing.T) {
		store, err := NewPostgresStore(PostgresConfig{
			ConnectionString: connStr,
			AutoMigrate:      true,
		})
		require.NoError(t, err)
		defer store.Close()

		version, err := store.CurrentSchemaVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, version)

		err = store.Save(ctx, &StoredMessage{Locale: "en", ID: "migration-test", Source: "x"})
		require.NoError(t, err)
	})

	t.Run("IdempotentRerun", func(t *testing.T) {
		store, err := NewPostgresStore(PostgresConfig{
			ConnectionString: connStr,
			AutoMigrate:      true,
		})
		require.NoError(t, err)
		defer store.Close()

		version, err := store.CurrentSchemaVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, version)

		// Data from the first instance survives
		exists, err := store.Exists(ctx, "en", "migration-test")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("ManualMigration", func(t *testing.T) {
		store, err := NewPostgresStore(PostgresConfig{
			ConnectionString: connStr,
			AutoMigrate:      false,
		})
		require.NoError(t, err)
		defer store.Close()

		err = store.RunMigrations(ctx)
		require.NoError(t, err)

		err = store.RunMigrations(ctx)
		require.NoError(t, err)
	})

	t.Run("CustomTablePrefix", func(t *testing.T) {
		store, err := NewPostgresStore(PostgresConfig{
			ConnectionString: connStr,
			TablePrefix:      "custom_",
			AutoMigrate:      true,
		})
		require.NoError(t, err)
		defer store.Close()

		err = store.Save(ctx, &StoredMessage{Locale: "en", ID: "prefixed", Source: "x"})
		require.NoError(t, err)

		loaded, err := store.Get(ctx, "en", "prefixed")
		require.NoError(t, err)
		assert.Equal(t, "x", loaded.Source)
	})
}

// =============================================================================
// Connection Pool Tests
// =============================================================================

func TestPostgres_E2E_ConnectionPooling(t *testing.T) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15",
		postgres.WithDatabase("icumsg_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	defer func() { _ = container.Terminate(ctx) }()

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	t.Run("CustomPoolConfig", func(t *testing.T) {
		store, err := NewPostgresStore(PostgresConfig{
			ConnectionString: connStr,
			MaxOpenConns:     5,
			MaxIdleConns:     2,
			ConnMaxLifetime:  1 * time.Minute,
			ConnMaxIdleTime:  30 * time.Second,
			AutoMigrate:      true,
		})
		require.NoError(t, err)
		defer store.Close()

		err = store.Save(ctx, &StoredMessage{Locale: "en", ID: "pool-test", Source: "x"})
		require.NoError(t, err)
	})

	t.Run("HighConcurrencyWithLimitedPool", func(t *testing.T) {
		store, err := NewPostgresStore(PostgresConfig{
			ConnectionString: connStr,
			MaxOpenConns:     3,
			MaxIdleConns:     1,
			AutoMigrate:      false, // already migrated
		})
		require.NoError(t, err)
		defer store.Close()

		const numGoroutines = 20
		var wg sync.WaitGroup
		errChan := make(chan error, numGoroutines)

		for i := 0; i < numGoroutines; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()

				if id%2 == 0 {
					message := &StoredMessage{
						Locale: "en",
						ID:     fmt.Sprintf("pool-high-%d", id),
						Source: "x",
					}
					if err := store.Save(ctx, message); err != nil {
						errChan <- err
					}
				} else {
					if _, err := store.List(ctx, "en"); err != nil {
						errChan <- err
					}
				}
			}(i)
		}

		wg.Wait()
		close(errChan)

		var errs []error
		for err := range errChan {
			errs = append(errs, err)
		}
		assert.Empty(t, errs, "pool should handle high concurrency")
	})

	t.Run("TimeoutBehavior", func(t *testing.T) {
		store, err := NewPostgresStore(PostgresConfig{
			ConnectionString: connStr,
			QueryTimeout:     100 * time.Millisecond,
			AutoMigrate:      false,
		})
		require.NoError(t, err)
		defer store.Close()

		_, err = store.List(ctx, "")
		require.NoError(t, err)
	})
}

// =============================================================================
// Edge Cases and Error Handling
// =============================================================================

func TestPostgres_E2E_EdgeCases(t *testing.T) {
	store, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("EmptyKey", func(t *testing.T) {
		err := store.Save(ctx, &StoredMessage{Locale: "en", Source: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgStoreKeyEmpty)
	})

	t.Run("BadLocale", func(t *testing.T) {
		err := store.Save(ctx, &StoredMessage{Locale: "!!!", ID: "a", Source: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgLocaleInvalid)
	})

	t.Run("UnicodeContent", func(t *testing.T) {
		message := &StoredMessage{
			Locale:      "ja",
			ID:          "unicode-test",
			Source:      "こんにちは {name}! Привет мир! 🎉",
			Description: "日本語の挨拶",
		}
		err := store.Save(ctx, message)
		require.NoError(t, err)

		loaded, err := store.Get(ctx, "ja", "unicode-test")
		require.NoError(t, err)
		assert.Contains(t, loaded.Source, "こんにちは")
		assert.Equal(t, "日本語の挨拶", loaded.Description)
	})

	t.Run("LargeSource", func(t *testing.T) {
		source := ""
		for i := 0; i < 5000; i++ {
			source += fmt.Sprintf("line %d {arg%d} ", i, i)
		}
		message := &StoredMessage{Locale: "en", ID: "large", Source: source}
		err := store.Save(ctx, message)
		require.NoError(t, err)

		loaded, err := store.Get(ctx, "en", "large")
		require.NoError(t, err)
		assert.Equal(t, len(source), len(loaded.Source))
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := store.Get(cancelCtx, "en", "any")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("OperationsAfterClose", func(t *testing.T) {
		container, err := postgres.Run(ctx, "postgres:15",
			postgres.WithDatabase("close_test"),
			postgres.WithUsername("test"),
			postgres.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		require.NoError(t, err)
		defer func() { _ = container.Terminate(ctx) }()

		connStr, err := container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)

		tmpStore, err := NewPostgresStore(PostgresConfig{
			ConnectionString: connStr,
			AutoMigrate:      true,
		})
		require.NoError(t, err)

		err = tmpStore.Close()
		require.NoError(t, err)

		_, err = tmpStore.Get(ctx, "en", "a")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgStoreClosed)

		err = tmpStore.Save(ctx, &StoredMessage{Locale: "en", ID: "a", Source: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgStoreClosed)

		// Double close errors
		err = tmpStore.Close()
		require.Error(t, err)
	})
}

// =============================================================================
// Catalog Integration
// =============================================================================

func TestPostgres_E2E_CatalogIntegration(t *testing.T) {
	store, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	seed := []*StoredMessage{
		{Locale: "en", ID: "inbox.count", Source: "{n, plural, one {# message} other {# messages}}"},
		{Locale: "de", ID: "inbox.count", Source: "{n, plural, one {# Nachricht} other {# Nachrichten}}"},
		{Locale: "en", ID: "greeting", Source: "Hello, {name}!"},
	}
	for _, message := range seed {
		require.NoError(t, store.Save(ctx, message))
	}

	catalog := NewCatalog()
	require.NoError(t, catalog.LoadStore(ctx, store))

	s, err := catalog.FormatString("de-AT", "inbox.count", Values{"n": Int(1)})
	require.NoError(t, err)
	assert.Equal(t, "1 Nachricht", s)

	s, err = catalog.FormatString("en", "inbox.count", Values{"n": Int(3)})
	require.NoError(t, err)
	assert.Equal(t, "3 messages", s)

	// The default locale backfills ids the negotiated locale lacks
	s, err = catalog.FormatString("de", "greeting", Values{"name": String("Mia")})
	require.NoError(t, err)
	assert.Equal(t, "Hello, Mia!", s)
}
