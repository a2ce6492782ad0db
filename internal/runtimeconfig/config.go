package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrHandleRequired         = errors.New("pagekit config: handle is required")
	ErrDebounceInvalid        = errors.New("pagekit config: persistence debounce must be positive")
	ErrCacheKeyRequired       = errors.New("pagekit config: persistence cache key is required")
	ErrHistoryLimitInvalid    = errors.New("pagekit config: history limit must be zero or positive")
	ErrLocalDriverUnknown     = errors.New("pagekit config: local cache driver is invalid")
	ErrLocalDSNRequired       = errors.New("pagekit config: local cache dsn is required for sqlite")
	ErrRemoteProviderUnknown  = errors.New("pagekit config: remote provider is invalid")
	ErrRemoteURLRequired      = errors.New("pagekit config: remote url is required")
	ErrRemoteDSNRequired      = errors.New("pagekit config: remote dsn is required for sql provider")
	ErrRemoteSQLDriverUnknown = errors.New("pagekit config: remote sql driver is invalid")
	ErrRemoteBucketRequired   = errors.New("pagekit config: remote bucket and endpoint are required for object provider")
	ErrRemoteTimeoutInvalid   = errors.New("pagekit config: remote timeout must be zero or positive")
	ErrLoggingProviderUnknown = errors.New("pagekit config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("pagekit config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("pagekit config: logging format is invalid")
)

// Remote providers understood by storage/remote.Open.
const (
	RemoteNone   = "none"
	RemoteMemory = "memory"
	RemoteHTTP   = "http"
	RemoteRedis  = "redis"
	RemoteSQL    = "sql"
	RemoteObject = "object"
)

// Config aggregates everything needed to open an editing session.
type Config struct {
	Handle      string
	Persistence PersistenceConfig
	History     HistoryConfig
	Local       LocalConfig
	Remote      RemoteConfig
	Logging     LoggingConfig
}

// PersistenceConfig controls the save debounce and the cache slot used for the document.
type PersistenceConfig struct {
	Debounce time.Duration
	CacheKey string
}

// HistoryConfig bounds the undo stack. Zero disables the limit.
type HistoryConfig struct {
	Limit int
}

// LocalConfig selects the local cache backend.
type LocalConfig struct {
	Driver   string
	DSN      string
	CacheTTL time.Duration
}

// RemoteConfig selects and configures the remote document store.
type RemoteConfig struct {
	Provider  string
	URL       string
	Token     string
	Key       string
	Driver    string
	DSN       string
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	Secure    bool
	Timeout   time.Duration
}

// LoggingConfig captures provider specific logging options.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns a local only configuration backed by an in-memory cache.
func DefaultConfig() Config {
	return Config{
		Handle: "me",
		Persistence: PersistenceConfig{
			Debounce: 900 * time.Millisecond,
			CacheKey: "pagekit:document",
		},
		History: HistoryConfig{
			Limit: 50,
		},
		Local: LocalConfig{
			Driver: "memory",
		},
		Remote: RemoteConfig{
			Provider: RemoteNone,
			Timeout:  10 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks across sections.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Handle) == "" {
		return ErrHandleRequired
	}
	if cfg.Persistence.Debounce <= 0 {
		return ErrDebounceInvalid
	}
	if strings.TrimSpace(cfg.Persistence.CacheKey) == "" {
		return ErrCacheKeyRequired
	}
	if cfg.History.Limit < 0 {
		return ErrHistoryLimitInvalid
	}

	switch normalize(cfg.Local.Driver) {
	case "memory":
	case "sqlite":
		if strings.TrimSpace(cfg.Local.DSN) == "" {
			return ErrLocalDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrLocalDriverUnknown, cfg.Local.Driver)
	}

	if err := cfg.Remote.validate(); err != nil {
		return err
	}

	switch normalize(cfg.Logging.Provider) {
	case "", "console", "gologger":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Logging.Provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if normalize(cfg.Logging.Provider) == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func (r RemoteConfig) validate() error {
	if r.Timeout < 0 {
		return ErrRemoteTimeoutInvalid
	}
	switch normalize(r.Provider) {
	case "", RemoteNone, RemoteMemory:
		return nil
	case RemoteHTTP, RemoteRedis:
		if strings.TrimSpace(r.URL) == "" {
			return fmt.Errorf("%w: %s", ErrRemoteURLRequired, r.Provider)
		}
	case RemoteSQL:
		if strings.TrimSpace(r.DSN) == "" {
			return ErrRemoteDSNRequired
		}
		switch normalize(r.Driver) {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("%w: %s", ErrRemoteSQLDriverUnknown, r.Driver)
		}
	case RemoteObject:
		if strings.TrimSpace(r.Bucket) == "" || strings.TrimSpace(r.Endpoint) == "" {
			return ErrRemoteBucketRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrRemoteProviderUnknown, r.Provider)
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
