package remote

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/runtimeconfig"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func noopClose() error { return nil }

// Open builds the remote store selected by cfg.Provider for handle. A nil
// store with a nil error means no remote tier is configured.
func Open(ctx context.Context, cfg runtimeconfig.RemoteConfig, handle string, provider interfaces.LoggerProvider) (interfaces.RemoteStore, func() error, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	logger := logging.StorageLogger(provider, "remote."+name)

	switch name {
	case "", runtimeconfig.RemoteNone:
		return nil, noopClose, nil
	case runtimeconfig.RemoteMemory:
		return NewMemoryStore(), noopClose, nil
	case runtimeconfig.RemoteHTTP:
		opts := []HTTPOption{WithToken(cfg.Token), WithHTTPLogger(logger)}
		if cfg.Timeout > 0 {
			opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
		}
		store, err := NewHTTPStore(cfg.URL, handle, opts...)
		if err != nil {
			return nil, nil, err
		}
		return store, noopClose, nil
	case runtimeconfig.RemoteRedis:
		store, err := NewRedisStore(ctx, cfg.URL, handle)
		if err != nil {
			return nil, nil, err
		}
		if key := strings.TrimSpace(cfg.Key); key != "" {
			store.key = key
		}
		return store, store.Close, nil
	case runtimeconfig.RemoteSQL:
		db, err := openDB(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("prepare documents table: %w", err)
		}
		return NewBunStore(db, handle, WithLogger(logger)), db.Close, nil
	case runtimeconfig.RemoteObject:
		store, err := NewObjectStore(ObjectConfig{
			Endpoint:  cfg.Endpoint,
			Bucket:    cfg.Bucket,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Secure:    cfg.Secure,
			Key:       cfg.Key,
		}, handle)
		if err != nil {
			return nil, nil, err
		}
		return store, noopClose, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", runtimeconfig.ErrRemoteProviderUnknown, cfg.Provider)
	}
}

func openDB(driver, dsn string) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
		return db, nil
	case "postgres":
		sqlDB, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrRemoteSQLDriverUnknown, driver)
	}
}
