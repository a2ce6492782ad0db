package local

import (
	"context"
	"strings"

	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// ThemeModeKey is the cache slot holding the standalone theme mode toggle.
const ThemeModeKey = "theme-mode"

// PreferenceStore keeps user preferences that live outside the document.
type PreferenceStore struct {
	cache interfaces.LocalCache
}

var _ interfaces.PreferenceStore = (*PreferenceStore)(nil)

func NewPreferenceStore(cache interfaces.LocalCache) *PreferenceStore {
	return &PreferenceStore{cache: cache}
}

// ThemeMode returns the stored mode, if any.
func (p *PreferenceStore) ThemeMode(ctx context.Context) (string, bool) {
	if p == nil || p.cache == nil {
		return "", false
	}
	value, err := p.cache.Get(ctx, ThemeModeKey)
	if err != nil {
		return "", false
	}
	mode := strings.TrimSpace(string(value))
	return mode, mode != ""
}

// SetThemeMode records mode. An empty mode clears the preference.
func (p *PreferenceStore) SetThemeMode(ctx context.Context, mode string) error {
	if p == nil || p.cache == nil {
		return nil
	}
	return p.cache.Set(ctx, ThemeModeKey, []byte(strings.TrimSpace(mode)))
}
