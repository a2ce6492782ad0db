package local

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/runtimeconfig"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Open builds the local cache selected by cfg. The returned close func
// releases any database handle.
func Open(ctx context.Context, cfg runtimeconfig.LocalConfig, provider interfaces.LoggerProvider) (interfaces.LocalCache, func() error, error) {
	logger := logging.StorageLogger(provider, "local")
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "memory":
		return NewMemoryCache(), func() error { return nil }, nil
	case "sqlite":
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open local cache: %w", err)
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
		if err := EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("prepare local cache: %w", err)
		}

		opts := []BunCacheOption{WithLogger(logger)}
		if cfg.CacheTTL <= 0 {
			return NewBunCache(db, opts...), db.Close, nil
		}
		cacheCfg := repocache.DefaultConfig()
		cacheCfg.TTL = cfg.CacheTTL
		cacheService, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("local read cache: %w", err)
		}
		return NewBunCacheWithCache(db, cacheService, repocache.NewDefaultKeySerializer(), opts...), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLocalDriverUnknown, cfg.Driver)
	}
}
