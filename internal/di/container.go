package di

import (
	"context"
	"errors"
	"os"
	"strings"

	editorcmd "github.com/goliatone/go-pagekit/internal/commands/editor"
	"github.com/goliatone/go-pagekit/internal/editor"
	"github.com/goliatone/go-pagekit/internal/identity"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/logging/console"
	"github.com/goliatone/go-pagekit/internal/logging/gologger"
	"github.com/goliatone/go-pagekit/internal/persistence"
	"github.com/goliatone/go-pagekit/internal/runtimeconfig"
	"github.com/goliatone/go-pagekit/internal/schema"
	"github.com/goliatone/go-pagekit/internal/storage/local"
	"github.com/goliatone/go-pagekit/internal/storage/remote"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// Container wires the runtime for one document handle from a Config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	registry       *schema.Registry
	local          interfaces.LocalCache
	remote         interfaces.RemoteStore
	remoteSet      bool
	preferences    *local.PreferenceStore
	ids            identity.Generator

	coordinator *persistence.Coordinator
	session     *editor.Session
	commands    *editorcmd.HandlerSet

	closers []func() error
}

// Option overrides a container dependency.
type Option func(*Container)

// WithLoggerProvider replaces the provider selected by Logging.Provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithRegistry replaces the built-in block catalog.
func WithRegistry(registry *schema.Registry) Option {
	return func(c *Container) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithLocalCache replaces the cache selected by Local.Driver.
func WithLocalCache(cache interfaces.LocalCache) Option {
	return func(c *Container) {
		if cache != nil {
			c.local = cache
		}
	}
}

// WithRemoteStore replaces the store selected by Remote.Provider. A nil
// store forces local only operation.
func WithRemoteStore(store interfaces.RemoteStore) Option {
	return func(c *Container) {
		c.remote = store
		c.remoteSet = true
	}
}

func WithIDGenerator(gen identity.Generator) Option {
	return func(c *Container) {
		if gen != nil {
			c.ids = gen
		}
	}
}

// NewContainer validates cfg and builds every collaborator. Storage handles
// opened here are released by Close.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		ids:    identity.Random(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if c.registry == nil {
		c.registry = schema.Builtin(schema.WithLogger(logging.RegistryLogger(c.loggerProvider)))
	}
	if err := c.configureStorage(ctx); err != nil {
		_ = c.closeAll()
		return nil, err
	}
	c.configureEditor()

	commands, err := editorcmd.RegisterEditorCommands(nil, c.session, c.loggerProvider)
	if err != nil {
		_ = c.closeAll()
		return nil, err
	}
	c.commands = commands

	logging.ModuleLogger(c.loggerProvider, "pagekit.di").Info("container.configured",
		"handle", cfg.Handle,
		"local", cfg.Local.Driver,
		"remote", c.remoteName(),
	)
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level := console.ParseLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{Writer: os.Stderr, MinLevel: &level})
	}
	return nil
}

func (c *Container) configureStorage(ctx context.Context) error {
	if c.local == nil {
		cache, closeFn, err := local.Open(ctx, c.Config.Local, c.loggerProvider)
		if err != nil {
			return err
		}
		c.local = cache
		c.closers = append(c.closers, closeFn)
	}
	c.preferences = local.NewPreferenceStore(c.local)

	if !c.remoteSet {
		store, closeFn, err := remote.Open(ctx, c.Config.Remote, c.Config.Handle, c.loggerProvider)
		if err != nil {
			return err
		}
		c.remote = store
		c.closers = append(c.closers, closeFn)
	}
	return nil
}

func (c *Container) configureEditor() {
	coordOpts := []persistence.Option{
		persistence.WithDebounce(c.Config.Persistence.Debounce),
		persistence.WithCacheKey(c.Config.Persistence.CacheKey),
		persistence.WithRemoteTimeout(c.Config.Remote.Timeout),
		persistence.WithPreferences(c.preferences),
		persistence.WithLogger(logging.PersistenceLogger(c.loggerProvider)),
	}
	if c.remote != nil {
		coordOpts = append(coordOpts, persistence.WithRemoteStore(c.remote))
	}
	c.coordinator = persistence.NewCoordinator(c.local, coordOpts...)

	c.session = editor.NewSession(c.Config.Handle,
		editor.WithRegistry(c.registry),
		editor.WithCoordinator(c.coordinator),
		editor.WithPreferences(c.preferences),
		editor.WithIDGenerator(c.ids),
		editor.WithHistoryLimit(c.Config.History.Limit),
		editor.WithLogger(logging.EditorLogger(c.loggerProvider)),
	)
}

func (c *Container) remoteName() string {
	if c.remote == nil {
		return runtimeconfig.RemoteNone
	}
	if c.remoteSet {
		return "custom"
	}
	return c.Config.Remote.Provider
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

func (c *Container) Registry() *schema.Registry { return c.registry }

func (c *Container) LocalCache() interfaces.LocalCache { return c.local }

// RemoteStore returns nil when no remote tier is configured.
func (c *Container) RemoteStore() interfaces.RemoteStore { return c.remote }

func (c *Container) Preferences() *local.PreferenceStore { return c.preferences }

func (c *Container) Coordinator() *persistence.Coordinator { return c.coordinator }

func (c *Container) Session() *editor.Session { return c.session }

func (c *Container) Commands() *editorcmd.HandlerSet { return c.commands }

func (c *Container) IDGenerator() identity.Generator { return c.ids }

// Close flushes the session and releases storage handles.
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	if c.session != nil {
		if err := c.session.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.closeAll(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Container) closeAll() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if c.closers[i] == nil {
			continue
		}
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
