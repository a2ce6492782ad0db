package pagekit_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-pagekit"
)

func TestConfigValidateRequiresCacheKey(t *testing.T) {
	cfg := pagekit.DefaultConfig()
	cfg.Persistence.CacheKey = ""
	if err := cfg.Validate(); !errors.Is(err, pagekit.ErrCacheKeyRequired) {
		t.Fatalf("expected ErrCacheKeyRequired, got %v", err)
	}
}

func TestConfigValidateRemoteProviderUnknown(t *testing.T) {
	cfg := pagekit.DefaultConfig()
	cfg.Remote.Provider = "invalid"
	if err := cfg.Validate(); !errors.Is(err, pagekit.ErrRemoteProviderUnknown) {
		t.Fatalf("expected ErrRemoteProviderUnknown, got %v", err)
	}
}

func TestConfigValidateAcceptsRedisRemote(t *testing.T) {
	cfg := pagekit.DefaultConfig()
	cfg.Remote = pagekit.RemoteConfig{
		Provider: "redis",
		URL:      "redis://localhost:6379/0",
		Timeout:  time.Second,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
