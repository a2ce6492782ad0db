package persistence

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/goliatone/go-pagekit/internal/document"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

const (
	DefaultDebounce = 900 * time.Millisecond
	DefaultCacheKey = "pagekit:document"
)

var ErrClosed = errors.New("pagekit persistence: coordinator closed")

// Coordinator loads the document from the remote store with a local cache
// fallback and writes edits to both tiers behind a rolling debounce.
// Remote failures are reported through Status only; Schedule never blocks on I/O.
type Coordinator struct {
	mu      sync.Mutex
	local   interfaces.LocalCache
	remote  interfaces.RemoteStore
	prefs   interfaces.PreferenceSource
	key     string
	delay   time.Duration
	timeout time.Duration
	logger  interfaces.Logger

	debounced func(func())
	machine   *Machine
	pending   *document.Document
	seq       uint64
	closed    bool
	inflight  sync.WaitGroup
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRemoteStore sets the remote tier. Without one the coordinator runs local only.
func WithRemoteStore(store interfaces.RemoteStore) Option {
	return func(c *Coordinator) {
		c.remote = store
	}
}

// WithPreferences merges an independently stored theme mode into remote loads.
func WithPreferences(prefs interfaces.PreferenceSource) Option {
	return func(c *Coordinator) {
		c.prefs = prefs
	}
}

func WithDebounce(delay time.Duration) Option {
	return func(c *Coordinator) {
		if delay > 0 {
			c.delay = delay
		}
	}
}

func WithCacheKey(key string) Option {
	return func(c *Coordinator) {
		if key != "" {
			c.key = key
		}
	}
}

// WithRemoteTimeout bounds each remote call; zero leaves calls unbounded.
func WithRemoteTimeout(timeout time.Duration) Option {
	return func(c *Coordinator) {
		c.timeout = timeout
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logging.Ensure(logger)
	}
}

// NewCoordinator builds a coordinator writing to local.
func NewCoordinator(local interfaces.LocalCache, opts ...Option) *Coordinator {
	c := &Coordinator{
		local:  local,
		key:    DefaultCacheKey,
		delay:  DefaultDebounce,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.machine = NewMachine(c.logger)
	c.debounced = debounce.New(c.delay)
	return c
}

// Status returns the current sync status.
func (c *Coordinator) Status() Status {
	return c.machine.Status()
}

// Subscribe observes status changes. Observers run while the coordinator
// holds its lock and must not call Schedule, Flush, Close or Pending.
func (c *Coordinator) Subscribe(fn func(from, to Status)) func() {
	return c.machine.Subscribe(fn)
}

// HasRemote reports whether a remote tier is configured.
func (c *Coordinator) HasRemote() bool {
	return c.remote != nil
}

// Load resolves the starting document. The remote store wins when reachable;
// otherwise the local cache is used, and defaults when both are empty.
func (c *Coordinator) Load(ctx context.Context, defaults func() document.Document) document.Document {
	if _, err := c.machine.Fire(EventLoad); err != nil {
		c.logger.Warn("persistence.load.repeated", "error", err)
	}
	fallback := func() document.Document {
		if defaults == nil {
			return document.Document{}
		}
		return defaults()
	}

	if c.remote == nil {
		doc, ok := c.readLocal(ctx)
		if !ok {
			doc = fallback()
		}
		c.machine.Fire(EventLocalFallback)
		c.logger.Info("persistence.load.local_only", "cache_hit", ok)
		return doc
	}

	payload, err := c.fetch(ctx)
	switch {
	case err == nil:
		doc, decodeErr := document.FromPayload(payload)
		if decodeErr == nil {
			doc = c.mergePreferences(ctx, doc)
			c.writeLocal(ctx, doc)
			c.machine.Fire(EventRemoteLoaded)
			c.logger.Info("persistence.load.remote", "blocks", len(doc.Blocks))
			return doc
		}
		err = decodeErr
	case errors.Is(err, interfaces.ErrDocumentNotFound):
		doc, ok := c.readLocal(ctx)
		if !ok {
			doc = fallback()
		}
		c.machine.Fire(EventRemoteLoaded)
		c.logger.Info("persistence.load.remote_empty", "cache_hit", ok)
		return doc
	}

	c.logger.Warn("persistence.load.remote_failed", "error", err)
	if doc, ok := c.readLocal(ctx); ok {
		c.machine.Fire(EventLocalFallback)
		return doc
	}
	c.machine.Fire(EventLoadFailed)
	return fallback()
}

// Schedule records doc as the latest state and (re)arms the debounce.
func (c *Coordinator) Schedule(doc document.Document) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Warn("persistence.schedule.closed")
		return
	}
	pending := doc.Clone()
	c.pending = &pending
	if c.remote != nil {
		c.machine.Fire(EventSchedule)
	}
	c.mu.Unlock()

	c.debounced(func() {
		c.flush(context.Background())
	})
}

// Pending reports whether an edit is waiting for the debounce.
func (c *Coordinator) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Flush writes any pending edit immediately and returns the remote error, if any.
func (c *Coordinator) Flush(ctx context.Context) error {
	return c.flush(ctx)
}

// Close marks the coordinator closed, writes any pending edit and waits for
// in-flight saves. Later schedules are rejected.
func (c *Coordinator) Close(ctx context.Context) error {
	c.mu.Lock()
	c.closed = true
	doc, seq, ok := c.takePendingLocked()
	c.mu.Unlock()
	c.debounced(func() {})

	var err error
	if ok {
		err = c.save(ctx, doc, seq)
	}
	c.inflight.Wait()
	return err
}

func (c *Coordinator) flush(ctx context.Context) error {
	c.mu.Lock()
	doc, seq, ok := c.takePendingLocked()
	c.mu.Unlock()
	if !ok {
		return nil
	}
	return c.save(ctx, doc, seq)
}

// takePendingLocked claims the pending edit under a new sequence number.
// The caller must hold c.mu and call save when ok is true.
func (c *Coordinator) takePendingLocked() (document.Document, uint64, bool) {
	if c.pending == nil {
		return document.Document{}, 0, false
	}
	doc := *c.pending
	c.pending = nil
	c.seq++
	c.inflight.Add(1)
	return doc, c.seq, true
}

func (c *Coordinator) save(ctx context.Context, doc document.Document, seq uint64) error {
	defer c.inflight.Done()

	c.writeLocal(ctx, doc)
	if c.remote == nil {
		return nil
	}

	err := c.replace(ctx, doc)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq || c.pending != nil {
		c.logger.Debug("persistence.save.superseded", "seq", seq)
		return err
	}
	if err != nil {
		c.logger.Error("persistence.save.failed", "seq", seq, "error", err)
		c.machine.Fire(EventSaveFailed)
		return err
	}
	c.machine.Fire(EventSaved)
	c.logger.Info("persistence.save.completed", "seq", seq, "status", StatusSaved)
	return nil
}

func (c *Coordinator) fetch(ctx context.Context) (map[string]any, error) {
	ctx, cancel := c.remoteContext(ctx)
	defer cancel()
	return c.remote.Fetch(ctx)
}

func (c *Coordinator) replace(ctx context.Context, doc document.Document) error {
	ctx, cancel := c.remoteContext(ctx)
	defer cancel()
	return c.remote.Replace(ctx, document.ToPayload(doc))
}

func (c *Coordinator) remoteContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func (c *Coordinator) readLocal(ctx context.Context) (document.Document, bool) {
	if c.local == nil {
		return document.Document{}, false
	}
	data, err := c.local.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			c.logger.Warn("persistence.cache.read_failed", "key", c.key, "error", err)
		}
		return document.Document{}, false
	}
	doc, err := document.Unmarshal(data)
	if err != nil {
		c.logger.Warn("persistence.cache.decode_failed", "key", c.key, "error", err)
		return document.Document{}, false
	}
	return doc, true
}

func (c *Coordinator) writeLocal(ctx context.Context, doc document.Document) {
	if c.local == nil {
		return
	}
	data, err := document.Marshal(doc)
	if err != nil {
		c.logger.Error("persistence.cache.encode_failed", "error", err)
		return
	}
	if err := c.local.Set(ctx, c.key, data); err != nil {
		c.logger.Error("persistence.cache.write_failed", "key", c.key, "error", err)
	}
}

func (c *Coordinator) mergePreferences(ctx context.Context, doc document.Document) document.Document {
	if c.prefs == nil {
		return doc
	}
	if mode, ok := c.prefs.ThemeMode(ctx); ok && mode != "" {
		doc.Theme.Mode = mode
	}
	return doc
}
