package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-pagekit/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Persistence.Debounce.Milliseconds() != 900 {
		t.Fatalf("expected 900ms debounce, got %s", cfg.Persistence.Debounce)
	}
	if cfg.History.Limit != 50 {
		t.Fatalf("expected history limit 50, got %d", cfg.History.Limit)
	}
}

func TestConfigValidate_RequiresHandle(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Handle = "  "

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrHandleRequired) {
		t.Fatalf("expected ErrHandleRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsNonPositiveDebounce(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Persistence.Debounce = 0

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrDebounceInvalid) {
		t.Fatalf("expected ErrDebounceInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeHistoryLimit(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.History.Limit = -1

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrHistoryLimitInvalid) {
		t.Fatalf("expected ErrHistoryLimitInvalid, got %v", err)
	}
}

func TestConfigValidate_SQLiteLocalCacheRequiresDSN(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Local.Driver = "sqlite"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLocalDSNRequired) {
		t.Fatalf("expected ErrLocalDSNRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLocalDriver(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Local.Driver = "leveldb"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLocalDriverUnknown) {
		t.Fatalf("expected ErrLocalDriverUnknown, got %v", err)
	}
}

func TestConfigValidate_RemoteProviders(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.RemoteConfig)
		want   error
	}{
		{"http without url", func(r *runtimeconfig.RemoteConfig) { r.Provider = "http" }, runtimeconfig.ErrRemoteURLRequired},
		{"redis without url", func(r *runtimeconfig.RemoteConfig) { r.Provider = "redis" }, runtimeconfig.ErrRemoteURLRequired},
		{"sql without dsn", func(r *runtimeconfig.RemoteConfig) { r.Provider = "sql"; r.Driver = "sqlite" }, runtimeconfig.ErrRemoteDSNRequired},
		{"sql with unknown driver", func(r *runtimeconfig.RemoteConfig) { r.Provider = "sql"; r.DSN = "x"; r.Driver = "mysql" }, runtimeconfig.ErrRemoteSQLDriverUnknown},
		{"object without bucket", func(r *runtimeconfig.RemoteConfig) { r.Provider = "object"; r.Endpoint = "localhost:9000" }, runtimeconfig.ErrRemoteBucketRequired},
		{"unknown provider", func(r *runtimeconfig.RemoteConfig) { r.Provider = "ftp" }, runtimeconfig.ErrRemoteProviderUnknown},
		{"negative timeout", func(r *runtimeconfig.RemoteConfig) { r.Timeout = -1 }, runtimeconfig.ErrRemoteTimeoutInvalid},
		{"memory", func(r *runtimeconfig.RemoteConfig) { r.Provider = "memory" }, nil},
		{"sql postgres", func(r *runtimeconfig.RemoteConfig) {
			r.Provider = "sql"
			r.Driver = "postgres"
			r.DSN = "postgres://localhost/pagekit"
		}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg.Remote)
			err := cfg.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "loud"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}
