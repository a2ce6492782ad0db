package local

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-pagekit/internal/identity"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ErrKeyRequired = errors.New("pagekit cache: key is required", errors.CategoryValidation)

// NewCacheEntryRepository creates a repository for CacheEntry rows.
func NewCacheEntryRepository(db *bun.DB) repository.Repository[*CacheEntry] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*CacheEntry]{
		NewRecord:          func() *CacheEntry { return &CacheEntry{} },
		GetID:              func(e *CacheEntry) uuid.UUID { return e.ID },
		SetID:              func(e *CacheEntry, id uuid.UUID) { e.ID = id },
		GetIdentifier:      func() string { return "cache_key" },
		GetIdentifierValue: func(e *CacheEntry) string { return e.Key },
	})
}

// EnsureSchema creates the cache_entries table when missing.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*CacheEntry)(nil)).IfNotExists().Exec(ctx)
	return err
}

// BunCache implements interfaces.LocalCache on a SQL table.
type BunCache struct {
	repo   repository.Repository[*CacheEntry]
	now    func() time.Time
	logger interfaces.Logger
}

var _ interfaces.LocalCache = (*BunCache)(nil)

// BunCacheOption configures a BunCache.
type BunCacheOption func(*BunCache)

func WithClock(clock func() time.Time) BunCacheOption {
	return func(c *BunCache) {
		if clock != nil {
			c.now = clock
		}
	}
}

func WithLogger(logger interfaces.Logger) BunCacheOption {
	return func(c *BunCache) {
		c.logger = logging.Ensure(logger)
	}
}

// NewBunCache creates a cache without a read cache layer.
func NewBunCache(db *bun.DB, opts ...BunCacheOption) *BunCache {
	return NewBunCacheWithCache(db, nil, nil, opts...)
}

// NewBunCacheWithCache creates a cache whose reads go through cacheService.
func NewBunCacheWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer, opts ...BunCacheOption) *BunCache {
	base := NewCacheEntryRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	c := &BunCache{
		repo:   base,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the stored bytes or interfaces.ErrCacheMiss.
func (c *BunCache) Get(ctx context.Context, key string) ([]byte, error) {
	record, err := c.repo.GetByID(ctx, entryID(key).String())
	if err != nil {
		return nil, mapRepositoryError(err, key)
	}
	return append([]byte(nil), record.Value...), nil
}

// Set stores value under key, creating the row on first write.
func (c *BunCache) Set(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return ErrKeyRequired
	}
	entry := &CacheEntry{
		ID:        entryID(key),
		Key:       key,
		Value:     append([]byte(nil), value...),
		UpdatedAt: c.now(),
	}

	_, err := c.repo.GetByID(ctx, entry.ID.String())
	switch {
	case err == nil:
		_, err = c.repo.Update(ctx, entry,
			repository.UpdateByID(entry.ID.String()),
			repository.UpdateColumns("value", "updated_at"),
		)
	case errors.IsCategory(err, repository.CategoryDatabaseNotFound):
		_, err = c.repo.Create(ctx, entry)
	}
	if err != nil {
		c.logger.Error("storage.cache.write_failed", "key", key, "error", err)
		return fmt.Errorf("cache entry %s: %w", key, err)
	}
	c.logger.Debug("storage.cache.written", "key", key, "bytes", len(value))
	return nil
}

func entryID(key string) uuid.UUID {
	return identity.UUID("pagekit:cache:" + key)
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return interfaces.ErrCacheMiss
	}
	return fmt.Errorf("cache entry %s: %w", key, err)
}
