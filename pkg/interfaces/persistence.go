package interfaces

import (
	"context"
	"errors"
)

var (
	// ErrCacheMiss is returned by LocalCache.Get when no value is stored for a key.
	ErrCacheMiss = errors.New("pagekit cache: key not found")
	// ErrDocumentNotFound is returned by RemoteStore.Fetch when the store holds no document yet.
	ErrDocumentNotFound = errors.New("pagekit remote: document not found")
)

// LocalCache is the durable key/value tier written on every debounced save.
// Values are opaque bytes; the persistence coordinator stores the JSON encoded
// document payload.
type LocalCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// RemoteStore is the eventually consistent document tier. Payloads are the
// nested key/value form produced by the document codec.
type RemoteStore interface {
	Fetch(ctx context.Context) (map[string]any, error)
	Replace(ctx context.Context, payload map[string]any) error
}

// PreferenceSource exposes preferences recorded outside the document, such as
// a standalone theme mode toggle, that are merged into remotely loaded documents.
type PreferenceSource interface {
	ThemeMode(ctx context.Context) (string, bool)
}

// PreferenceStore is a PreferenceSource that can also record the theme mode.
type PreferenceStore interface {
	PreferenceSource
	SetThemeMode(ctx context.Context, mode string) error
}
