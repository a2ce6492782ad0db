package pagekit

import (
	"context"

	editorcmd "github.com/goliatone/go-pagekit/internal/commands/editor"
	"github.com/goliatone/go-pagekit/internal/di"
	"github.com/goliatone/go-pagekit/internal/document"
	"github.com/goliatone/go-pagekit/internal/editor"
	"github.com/goliatone/go-pagekit/internal/identity"
	"github.com/goliatone/go-pagekit/internal/importer"
	"github.com/goliatone/go-pagekit/internal/markup"
	"github.com/goliatone/go-pagekit/internal/persistence"
	"github.com/goliatone/go-pagekit/internal/reorder"
	"github.com/goliatone/go-pagekit/internal/schema"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// Document model types.
type (
	Document = document.Document
	Block    = document.Block
	Props    = document.Props
	Profile  = document.Profile
	Theme    = document.Theme
	Layout   = document.Layout
)

// Session is the single writer of one document.
type Session = editor.Session

// Drop is a finished drag gesture handed to Session.Drop.
type Drop = reorder.Drop

// Node is one parsed rich text element.
type Node = markup.Node

// Status is the persistence sync status.
type Status = persistence.Status

const (
	StatusIdle      = persistence.StatusIdle
	StatusLoading   = persistence.StatusLoading
	StatusSaving    = persistence.StatusSaving
	StatusSaved     = persistence.StatusSaved
	StatusLocalOnly = persistence.StatusLocalOnly
	StatusError     = persistence.StatusError
)

// Registry is the block catalog.
type Registry = schema.Registry

// Definition describes one block type and variant.
type Definition = schema.Definition

// CommandHandlers exposes the editor command handlers.
type CommandHandlers = editorcmd.HandlerSet

// Option overrides a runtime dependency.
type Option = di.Option

// WithLoggerProvider plugs in a host logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithRegistry replaces the built-in catalog.
func WithRegistry(registry *Registry) Option {
	return di.WithRegistry(registry)
}

// WithLocalCache replaces the configured local cache.
func WithLocalCache(cache interfaces.LocalCache) Option {
	return di.WithLocalCache(cache)
}

// WithRemoteStore replaces the configured remote store.
func WithRemoteStore(store interfaces.RemoteStore) Option {
	return di.WithRemoteStore(store)
}

// WithIDGenerator overrides block id generation.
func WithIDGenerator(gen func() string) Option {
	return di.WithIDGenerator(identity.Generator(gen))
}

// Module is the top level runtime facade.
type Module struct {
	container *di.Container
}

// New builds a module from cfg.
func New(ctx context.Context, cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

func (m *Module) Session() *Session {
	return m.container.Session()
}

// Open loads the document and starts the editing session.
func (m *Module) Open(ctx context.Context) (Document, error) {
	return m.container.Session().Open(ctx)
}

func (m *Module) Registry() *Registry {
	return m.container.Registry()
}

func (m *Module) Commands() *CommandHandlers {
	return m.container.Commands()
}

func (m *Module) Status() Status {
	return m.container.Session().Status()
}

// Close flushes pending edits and releases storage.
func (m *Module) Close(ctx context.Context) error {
	return m.container.Close(ctx)
}

// NewRegistry returns a registry holding the built-in catalog.
func NewRegistry() *Registry {
	return schema.Builtin()
}

// Parse turns free text into rich text nodes. chipLogos maps chip names to
// logo URLs or inline SVG.
func Parse(text string, chipLogos map[string]string) []Node {
	return markup.Parse(text, chipLogos)
}

// RenderHTML renders nodes as an escaped HTML fragment.
func RenderHTML(nodes []Node) string {
	return markup.RenderHTML(nodes)
}

// ImportMarkdown builds a document from frontmatter and a markdown body.
func ImportMarkdown(src []byte, registry *Registry, handle string) (Document, error) {
	if registry == nil {
		registry = schema.Builtin()
	}
	return importer.ImportMarkdown(src, registry, importer.WithHandle(handle))
}

// MarshalDocument encodes doc as JSON.
func MarshalDocument(doc Document) ([]byte, error) {
	return document.Marshal(doc)
}

// UnmarshalDocument decodes a JSON document.
func UnmarshalDocument(data []byte) (Document, error) {
	return document.Unmarshal(data)
}
