package editor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-pagekit/internal/document"
	"github.com/goliatone/go-pagekit/internal/history"
	"github.com/goliatone/go-pagekit/internal/identity"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/markup"
	"github.com/goliatone/go-pagekit/internal/persistence"
	"github.com/goliatone/go-pagekit/internal/reorder"
	"github.com/goliatone/go-pagekit/internal/schema"
	"github.com/goliatone/go-pagekit/internal/storage/local"
	"github.com/goliatone/go-pagekit/internal/util"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

var (
	ErrNotOpen     = errors.New("pagekit editor: session not open")
	ErrAlreadyOpen = errors.New("pagekit editor: session already open")
	ErrClosed      = errors.New("pagekit editor: session closed")
)

// History labels recorded by the session.
const (
	LabelAdd       = "add"
	LabelRemove    = "remove"
	LabelDuplicate = "duplicate"
	LabelMove      = "move"
	LabelGap       = "gap"
	LabelEdit      = "edit"
)

// Session is the single mutator of one document. It serialises every
// operation behind a mutex, records history for completed actions and
// schedules a save after each mutation.
type Session struct {
	mu sync.Mutex

	handle   string
	registry *schema.Registry
	coord    *persistence.Coordinator
	ids      identity.Generator
	logger   interfaces.Logger
	prefs    interfaces.PreferenceStore

	model   *document.Model
	history *history.Manager
	reorder *reorder.Controller

	opened bool
	closed bool
	dirty  bool
}

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	registry     *schema.Registry
	coord        *persistence.Coordinator
	ids          identity.Generator
	logger       interfaces.Logger
	prefs        interfaces.PreferenceStore
	historyLimit int
	clock        func() time.Time
}

// WithRegistry overrides the built-in block catalog.
func WithRegistry(registry *schema.Registry) Option {
	return func(c *sessionConfig) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithCoordinator sets the persistence coordinator. Without one edits are
// kept in an in-memory cache.
func WithCoordinator(coord *persistence.Coordinator) Option {
	return func(c *sessionConfig) {
		if coord != nil {
			c.coord = coord
		}
	}
}

// WithPreferences records theme mode changes in prefs so the mode merged into
// later loads matches the document.
func WithPreferences(prefs interfaces.PreferenceStore) Option {
	return func(c *sessionConfig) {
		c.prefs = prefs
	}
}

func WithIDGenerator(gen identity.Generator) Option {
	return func(c *sessionConfig) {
		if gen != nil {
			c.ids = gen
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(c *sessionConfig) {
		c.logger = logging.Ensure(logger)
	}
}

func WithHistoryLimit(limit int) Option {
	return func(c *sessionConfig) {
		c.historyLimit = limit
	}
}

func WithClock(clock func() time.Time) Option {
	return func(c *sessionConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewSession prepares a session for handle. Call Open before editing.
func NewSession(handle string, opts ...Option) *Session {
	cfg := sessionConfig{
		ids:          identity.Random(),
		logger:       logging.NoOp(),
		historyLimit: history.DefaultLimit,
		clock:        time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = schema.Builtin(schema.WithLogger(cfg.logger))
	}
	if cfg.coord == nil {
		cfg.coord = persistence.NewCoordinator(local.NewMemoryCache(), persistence.WithLogger(cfg.logger))
	}

	s := &Session{
		handle:   strings.TrimSpace(handle),
		registry: cfg.registry,
		coord:    cfg.coord,
		ids:      cfg.ids,
		logger:   cfg.logger,
		prefs:    cfg.prefs,
		history:  history.New(history.WithLimit(cfg.historyLimit), history.WithClock(cfg.clock)),
	}
	s.model = document.NewModel(document.Document{Handle: s.handle}, s.registry, document.WithIDGenerator(s.ids))
	s.reorder = reorder.NewController(s.model, s.history)
	return s
}

// Open loads the starting document and seeds history with it.
func (s *Session) Open(ctx context.Context) (document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return document.Document{}, ErrClosed
	}
	if s.opened {
		return document.Document{}, ErrAlreadyOpen
	}

	doc := s.coord.Load(ctx, func() document.Document {
		return document.Default(s.handle, s.registry, s.ids)
	})
	if doc.Handle == "" {
		doc.Handle = s.handle
	}
	s.model.ReplaceDocument(doc)
	s.history.Reset(s.model.Blocks())
	s.opened = true

	s.logger.Info("editor.session.opened",
		"handle", s.handle,
		"blocks", s.model.Len(),
		"status", s.coord.Status(),
	)
	return s.model.Document(), nil
}

// Reset replaces the whole document, for example after an import, and
// restarts history from it.
func (s *Session) Reset(doc document.Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return false
	}
	if doc.Handle == "" {
		doc.Handle = s.handle
	}
	previous := s.model.Document().Theme.Mode
	s.dirty = false
	s.model.ReplaceDocument(doc)
	s.history.Reset(s.model.Blocks())
	s.schedule()
	if doc.Theme.Mode != previous {
		s.storeThemeMode(doc.Theme.Mode)
	}
	return true
}

// Add appends a block of blockType and selects it.
func (s *Session) Add(blockType, variant string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return "", false
	}
	s.commitPending()
	id, ok := s.model.Add(blockType, variant)
	if !ok {
		s.logger.Debug("editor.add.unknown_type", "type", blockType, "variant", variant)
		return "", false
	}
	s.record(LabelAdd)
	return id, true
}

// Update replaces the props of id. History is recorded on Commit.
func (s *Session) Update(id string, props document.Props) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened || !s.model.Update(id, props) {
		return false
	}
	s.dirty = true
	s.schedule()
	return true
}

// Commit records uncommitted prop edits as one history entry. It reports
// whether anything was recorded.
func (s *Session) Commit(label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened || !s.dirty {
		return false
	}
	s.dirty = false
	s.history.Record(util.FirstNonEmpty(strings.TrimSpace(label), LabelEdit), s.model.Blocks())
	return true
}

func (s *Session) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return false
	}
	s.commitPending()
	if !s.model.Remove(id) {
		return false
	}
	s.record(LabelRemove)
	return true
}

func (s *Session) Duplicate(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return "", false
	}
	s.commitPending()
	dup, ok := s.model.Duplicate(id)
	if !ok {
		return "", false
	}
	s.record(LabelDuplicate)
	return dup, true
}

// Move repositions the block at from to index to.
func (s *Session) Move(from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return false
	}
	s.commitPending()
	if !s.model.Move(from, to) {
		return false
	}
	s.record(LabelMove)
	return true
}

// Drop applies a finished drag gesture.
func (s *Session) Drop(drop reorder.Drop) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return false
	}
	s.commitPending()
	if !s.reorder.Apply(drop) {
		return false
	}
	s.schedule()
	return true
}

// SetGap sets or clears the spacing override above id.
func (s *Session) SetGap(id string, gap *float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return false
	}
	s.commitPending()
	if !s.model.SetGap(id, gap) {
		return false
	}
	s.record(LabelGap)
	return true
}

func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return false
	}
	s.commitPending()
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.model.Replace(snap.Blocks)
	s.schedule()
	s.logger.Debug("editor.history.undo", "label", snap.Label, "cursor", s.history.Cursor())
	return true
}

func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return false
	}
	s.commitPending()
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.model.Replace(snap.Blocks)
	s.schedule()
	s.logger.Debug("editor.history.redo", "label", snap.Label, "cursor", s.history.Cursor())
	return true
}

func (s *Session) SetProfile(profile document.Profile) bool {
	return s.mutateDocument(func(m *document.Model) { m.SetProfile(profile) })
}

// SetTheme replaces the theme. A changed mode is also written to the
// preference store.
func (s *Session) SetTheme(theme document.Theme) bool {
	var previous string
	ok := s.mutateDocument(func(m *document.Model) {
		previous = m.Document().Theme.Mode
		m.SetTheme(theme)
	})
	if ok && theme.Mode != previous {
		s.storeThemeMode(theme.Mode)
	}
	return ok
}

// SetThemeMode switches only the theme mode.
func (s *Session) SetThemeMode(mode string) bool {
	var previous string
	ok := s.mutateDocument(func(m *document.Model) {
		theme := m.Document().Theme
		previous = theme.Mode
		theme.Mode = mode
		m.SetTheme(theme)
	})
	if ok && mode != previous {
		s.storeThemeMode(mode)
	}
	return ok
}

func (s *Session) SetLayout(layout document.Layout) bool {
	return s.mutateDocument(func(m *document.Model) { m.SetLayout(layout) })
}

// Select focuses id; an empty id clears the selection. Unknown ids are ignored.
func (s *Session) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		s.model.Selection().Clear()
		return true
	}
	if s.model.Index(id) < 0 {
		return false
	}
	s.model.Selection().Select(id)
	return true
}

func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Selection().Selected()
}

// Selection exposes the observable selection store.
func (s *Session) Selection() *document.Selection {
	return s.model.Selection()
}

// Document returns a copy of the current document.
func (s *Session) Document() document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Document()
}

func (s *Session) Block(id string) (document.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Block(id)
}

func (s *Session) Status() persistence.Status {
	return s.coord.Status()
}

// SubscribeStatus observes persistence status changes. fn must not call
// back into the session.
func (s *Session) SubscribeStatus(fn func(from, to persistence.Status)) func() {
	return s.coord.Subscribe(fn)
}

// HistoryLabels lists history entries oldest first.
func (s *Session) HistoryLabels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Labels()
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty || s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.dirty && s.history.CanRedo()
}

// Registry returns the block catalog in use.
func (s *Session) Registry() *schema.Registry {
	return s.registry
}

// RichText parses the richtext field of blockID, resolving chip logos from
// the field's logos table. It reports false when the block or field is
// unknown or the field is not richtext.
func (s *Session) RichText(blockID, field string) ([]markup.Node, bool) {
	s.mu.Lock()
	block, ok := s.model.Block(blockID)
	s.mu.Unlock()
	if !ok {
		return nil, false
	}

	for _, f := range s.registry.RichTextFields(block.Type, block.Variant) {
		if f.Name != field {
			continue
		}
		text, _ := block.Props[field].(string)
		var logos map[string]string
		if f.LogosField != "" {
			logos = util.StringMap(block.Props[f.LogosField])
		}
		return markup.Parse(text, logos), true
	}
	return nil, false
}

// Flush writes pending edits immediately.
func (s *Session) Flush(ctx context.Context) error {
	return s.coord.Flush(ctx)
}

// Close flushes pending edits and stops the save loop. Operations after
// Close are ignored.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitPending()
	s.opened = false
	s.closed = true
	return s.coord.Close(ctx)
}

func (s *Session) mutateDocument(fn func(*document.Model)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return false
	}
	fn(s.model)
	s.schedule()
	return true
}

// commitPending folds uncommitted prop edits into history before a
// structural action so undo never skips them.
func (s *Session) commitPending() {
	if !s.dirty {
		return
	}
	s.dirty = false
	s.history.Record(LabelEdit, s.model.Blocks())
}

func (s *Session) record(label string) {
	s.history.Record(label, s.model.Blocks())
	s.schedule()
}

func (s *Session) schedule() {
	s.coord.Schedule(s.model.Document())
}

func (s *Session) storeThemeMode(mode string) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.SetThemeMode(context.Background(), mode); err != nil {
		s.logger.Warn("editor.preferences.write_failed", "mode", mode, "error", err)
	}
}
