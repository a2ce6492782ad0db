package editor_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/goliatone/go-pagekit/internal/document"
	"github.com/goliatone/go-pagekit/internal/editor"
	"github.com/goliatone/go-pagekit/internal/identity"
	"github.com/goliatone/go-pagekit/internal/markup"
	"github.com/goliatone/go-pagekit/internal/persistence"
	"github.com/goliatone/go-pagekit/internal/reorder"
	"github.com/goliatone/go-pagekit/internal/schema"
	"github.com/goliatone/go-pagekit/internal/storage/local"
	"github.com/goliatone/go-pagekit/internal/storage/remote"
)

type harness struct {
	session *editor.Session
	cache   *local.MemoryCache
	remote  *remote.MemoryStore
}

func newHarness(t *testing.T, withRemote bool) harness {
	t.Helper()
	h := harness{cache: local.NewMemoryCache()}
	opts := []persistence.Option{persistence.WithDebounce(time.Hour)}
	if withRemote {
		h.remote = remote.NewMemoryStore()
		opts = append(opts, persistence.WithRemoteStore(h.remote))
	}
	coord := persistence.NewCoordinator(h.cache, opts...)
	h.session = editor.NewSession("ada",
		editor.WithCoordinator(coord),
		editor.WithIDGenerator(identity.Sequence("blk")),
	)
	return h
}

func openHarness(t *testing.T, withRemote bool) harness {
	t.Helper()
	h := newHarness(t, withRemote)
	if _, err := h.session.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = h.session.Close(context.Background()) })
	return h
}

func blockIDs(s *editor.Session) []string {
	return document.IDs(s.Document().Blocks)
}

func TestOpenWithoutRemoteUsesDefaults(t *testing.T) {
	h := openHarness(t, false)

	doc := h.session.Document()
	if doc.Handle != "ada" {
		t.Fatalf("expected handle ada, got %q", doc.Handle)
	}
	if len(doc.Blocks) != 2 || doc.Blocks[0].Type != "header" || doc.Blocks[1].Type != "about" {
		t.Fatalf("expected header and about blocks, got %+v", doc.Blocks)
	}
	if h.session.Status() != persistence.StatusLocalOnly {
		t.Fatalf("expected local-only status, got %s", h.session.Status())
	}
	if labels := h.session.HistoryLabels(); !reflect.DeepEqual(labels, []string{"initial"}) {
		t.Fatalf("expected initial history, got %v", labels)
	}
}

func TestOpenTwiceFails(t *testing.T) {
	h := openHarness(t, false)
	if _, err := h.session.Open(context.Background()); !errors.Is(err, editor.ErrAlreadyOpen) {
		t.Fatalf("expected ErrAlreadyOpen, got %v", err)
	}
}

func TestOperationsBeforeOpenAreIgnored(t *testing.T) {
	h := newHarness(t, false)
	if _, ok := h.session.Add("quote", ""); ok {
		t.Fatalf("expected add before open to be ignored")
	}
	if h.session.Undo() {
		t.Fatalf("expected undo before open to be ignored")
	}
}

func TestOpenPrefersRemoteDocument(t *testing.T) {
	h := newHarness(t, true)
	stored := document.Document{
		Handle: "ada",
		Theme:  document.Theme{Mode: "dark"},
		Blocks: []document.Block{{ID: "r1", Type: "quote", Props: map[string]any{"text": "hi"}}},
	}
	if err := h.remote.Replace(context.Background(), document.ToPayload(stored)); err != nil {
		t.Fatalf("seed remote: %v", err)
	}

	doc, err := h.session.Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer h.session.Close(context.Background())

	if got := document.IDs(doc.Blocks); !reflect.DeepEqual(got, []string{"r1"}) {
		t.Fatalf("expected remote blocks, got %v", got)
	}
	if h.session.Status() != persistence.StatusSaved {
		t.Fatalf("expected saved status, got %s", h.session.Status())
	}
}

func TestAddRecordsHistoryAndPersists(t *testing.T) {
	h := openHarness(t, true)

	id, ok := h.session.Add("quote", "")
	if !ok {
		t.Fatalf("expected quote to be added")
	}
	if h.session.Selected() != id {
		t.Fatalf("expected new block selected, got %q", h.session.Selected())
	}
	if h.session.Status() != persistence.StatusSaving {
		t.Fatalf("expected saving status, got %s", h.session.Status())
	}
	if err := h.session.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if h.session.Status() != persistence.StatusSaved {
		t.Fatalf("expected saved after flush, got %s", h.session.Status())
	}

	saved, err := document.FromPayload(h.remote.Payload())
	if err != nil {
		t.Fatalf("decode remote: %v", err)
	}
	if got := document.IDs(saved.Blocks); !reflect.DeepEqual(got, blockIDs(h.session)) {
		t.Fatalf("expected remote to match session, got %v", got)
	}
	if labels := h.session.HistoryLabels(); !reflect.DeepEqual(labels, []string{"initial", editor.LabelAdd}) {
		t.Fatalf("expected add recorded, got %v", labels)
	}
}

func TestAddUnknownTypeIsNoOp(t *testing.T) {
	h := openHarness(t, false)
	if _, ok := h.session.Add("hologram", ""); ok {
		t.Fatalf("expected unknown type to be rejected")
	}
	if h.session.HistoryLabels()[0] != "initial" || len(h.session.HistoryLabels()) != 1 {
		t.Fatalf("expected no history entry, got %v", h.session.HistoryLabels())
	}
}

func TestUpdateRecordsHistoryOnlyOnCommit(t *testing.T) {
	h := openHarness(t, false)
	id := blockIDs(h.session)[0]

	if !h.session.Update(id, document.Props{"name": "Ada L."}) {
		t.Fatalf("expected update to apply")
	}
	if !h.session.Update(id, document.Props{"name": "Ada Lovelace"}) {
		t.Fatalf("expected update to apply")
	}
	if len(h.session.HistoryLabels()) != 1 {
		t.Fatalf("expected updates not to push history, got %v", h.session.HistoryLabels())
	}
	if !h.session.Commit("rename") {
		t.Fatalf("expected commit to record")
	}
	if h.session.Commit("rename") {
		t.Fatalf("expected second commit to be a no-op")
	}
	if labels := h.session.HistoryLabels(); !reflect.DeepEqual(labels, []string{"initial", "rename"}) {
		t.Fatalf("expected one commit entry, got %v", labels)
	}
}

func TestUndoRevertsUncommittedEdit(t *testing.T) {
	h := openHarness(t, false)
	id := blockIDs(h.session)[0]

	h.session.Update(id, document.Props{"name": "changed"})
	if !h.session.Undo() {
		t.Fatalf("expected undo")
	}
	block, _ := h.session.Block(id)
	if block.Props["name"] != "ada" {
		t.Fatalf("expected name restored to ada, got %v", block.Props["name"])
	}
	if !h.session.Redo() {
		t.Fatalf("expected redo")
	}
	block, _ = h.session.Block(id)
	if block.Props["name"] != "changed" {
		t.Fatalf("expected redo to reapply edit, got %v", block.Props["name"])
	}
}

func TestUndoRedoAndBranchPruning(t *testing.T) {
	h := openHarness(t, false)
	initial := blockIDs(h.session)

	first, _ := h.session.Add("quote", "")
	if !h.session.Undo() {
		t.Fatalf("expected undo")
	}
	if got := blockIDs(h.session); !reflect.DeepEqual(got, initial) {
		t.Fatalf("expected initial blocks after undo, got %v", got)
	}
	if !h.session.Redo() {
		t.Fatalf("expected redo")
	}
	if _, ok := h.session.Block(first); !ok {
		t.Fatalf("expected redo to restore %s", first)
	}

	h.session.Undo()
	h.session.Add("divider", "")
	if h.session.CanRedo() || h.session.Redo() {
		t.Fatalf("expected redo branch to be pruned")
	}
	if _, ok := h.session.Block(first); ok {
		t.Fatalf("expected pruned block %s to be gone", first)
	}
}

func TestRemoveClearsSelection(t *testing.T) {
	h := openHarness(t, false)
	id, _ := h.session.Add("quote", "")
	if !h.session.Remove(id) {
		t.Fatalf("expected remove")
	}
	if h.session.Selected() != "" {
		t.Fatalf("expected selection cleared, got %q", h.session.Selected())
	}
	if h.session.Remove(id) {
		t.Fatalf("expected removing unknown id to be a no-op")
	}
}

func TestDuplicateAndMove(t *testing.T) {
	h := openHarness(t, false)
	ids := blockIDs(h.session)

	dup, ok := h.session.Duplicate(ids[0])
	if !ok {
		t.Fatalf("expected duplicate")
	}
	if got := blockIDs(h.session); !reflect.DeepEqual(got, []string{ids[0], dup, ids[1]}) {
		t.Fatalf("expected duplicate after source, got %v", got)
	}
	if !h.session.Move(0, 2) {
		t.Fatalf("expected move")
	}
	if got := blockIDs(h.session); !reflect.DeepEqual(got, []string{dup, ids[1], ids[0]}) {
		t.Fatalf("unexpected order after move: %v", got)
	}
	if h.session.Move(1, 1) {
		t.Fatalf("expected move to same index to be a no-op")
	}
	labels := h.session.HistoryLabels()
	if !reflect.DeepEqual(labels, []string{"initial", editor.LabelDuplicate, editor.LabelMove}) {
		t.Fatalf("unexpected history: %v", labels)
	}
}

func TestDropRecordsSingleSnapshot(t *testing.T) {
	h := openHarness(t, false)
	ids := blockIDs(h.session)

	if !h.session.Drop(reorder.Drop{DraggedID: ids[0], TargetID: ids[1]}) {
		t.Fatalf("expected drop to reorder")
	}
	if h.session.Drop(reorder.Drop{DraggedID: ids[0]}) {
		t.Fatalf("expected drop over nothing to be ignored")
	}
	if labels := h.session.HistoryLabels(); !reflect.DeepEqual(labels, []string{"initial", reorder.HistoryLabel}) {
		t.Fatalf("expected one reorder entry, got %v", labels)
	}
}

func TestSetGapAndDocumentSettings(t *testing.T) {
	h := openHarness(t, false)
	id := blockIDs(h.session)[1]
	gap := 48.0

	if !h.session.SetGap(id, &gap) {
		t.Fatalf("expected gap to apply")
	}
	block, _ := h.session.Block(id)
	if block.GapBefore == nil || *block.GapBefore != 48 {
		t.Fatalf("expected gap 48, got %v", block.GapBefore)
	}

	h.session.SetTheme(document.Theme{Mode: "dark", Accent: "#ff0066"})
	h.session.SetLayout(document.Layout{Gap: 16, Width: "wide"})
	h.session.SetProfile(document.Profile{Name: "Ada", Links: map[string]string{"web": "https://ada.dev"}})

	doc := h.session.Document()
	if doc.Theme.Mode != "dark" || doc.Layout.Width != "wide" || doc.Profile.Links["web"] != "https://ada.dev" {
		t.Fatalf("unexpected document settings: %+v", doc)
	}
	if len(h.session.HistoryLabels()) != 2 {
		t.Fatalf("expected settings not to push history, got %v", h.session.HistoryLabels())
	}
}

func TestRichTextResolvesLogos(t *testing.T) {
	h := openHarness(t, false)
	id, _ := h.session.Add("skills", "chips")
	h.session.Update(id, document.Props{
		"title":  "Skills",
		"skills": "**Go** #go",
		"logos":  map[string]any{"go": "https://cdn.example.com/go.png"},
	})

	nodes, ok := h.session.RichText(id, "skills")
	if !ok {
		t.Fatalf("expected skills to be a richtext field")
	}
	want := []markup.Node{markup.Bold("Go"), markup.Text(" "), markup.Chip("go", "https://cdn.example.com/go.png")}
	if !markup.Equal(nodes, want) {
		t.Fatalf("expected %v, got %v", want, nodes)
	}

	if _, ok := h.session.RichText(id, "title"); ok {
		t.Fatalf("expected title not to be richtext")
	}
	if _, ok := h.session.RichText("missing", "skills"); ok {
		t.Fatalf("expected unknown block to be rejected")
	}
}

func TestCloseFlushesToLocalCache(t *testing.T) {
	h := newHarness(t, false)
	if _, err := h.session.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	id, _ := h.session.Add("quote", "")
	if err := h.session.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := h.cache.Get(context.Background(), persistence.DefaultCacheKey)
	if err != nil {
		t.Fatalf("expected cached document: %v", err)
	}
	doc, err := document.Unmarshal(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, block := range doc.Blocks {
		if block.ID == id {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s in cached document", id)
	}
}

func TestResetReplacesDocumentAndHistory(t *testing.T) {
	h := openHarness(t, false)
	h.session.Add("quote", "")

	next := document.Document{Blocks: []document.Block{{ID: "x1", Type: "divider"}}}
	if !h.session.Reset(next) {
		t.Fatalf("expected reset")
	}
	doc := h.session.Document()
	if doc.Handle != "ada" || !reflect.DeepEqual(document.IDs(doc.Blocks), []string{"x1"}) {
		t.Fatalf("unexpected document after reset: %+v", doc)
	}
	if labels := h.session.HistoryLabels(); !reflect.DeepEqual(labels, []string{"initial"}) {
		t.Fatalf("expected history restarted, got %v", labels)
	}
	if h.session.Undo() {
		t.Fatalf("expected nothing to undo after reset")
	}
}

func TestSetThemeModeSurvivesReload(t *testing.T) {
	ctx := context.Background()
	cache := local.NewMemoryCache()
	store := remote.NewMemoryStore()
	prefs := local.NewPreferenceStore(cache)
	if err := prefs.SetThemeMode(ctx, "dark"); err != nil {
		t.Fatalf("seed preference: %v", err)
	}
	seed := document.Default("ada", schema.Builtin(), identity.Sequence("seed"))
	seed.Theme.Mode = "light"
	if err := store.Replace(ctx, document.ToPayload(seed)); err != nil {
		t.Fatalf("seed remote: %v", err)
	}

	open := func() *editor.Session {
		coord := persistence.NewCoordinator(cache,
			persistence.WithDebounce(time.Hour),
			persistence.WithRemoteStore(store),
			persistence.WithPreferences(prefs),
		)
		session := editor.NewSession("ada",
			editor.WithCoordinator(coord),
			editor.WithPreferences(prefs),
			editor.WithIDGenerator(identity.Sequence("blk")),
		)
		if _, err := session.Open(ctx); err != nil {
			t.Fatalf("open: %v", err)
		}
		return session
	}

	first := open()
	if got := first.Document().Theme.Mode; got != "dark" {
		t.Fatalf("expected stored preference dark on first open, got %q", got)
	}
	theme := first.Document().Theme
	theme.Mode = "light"
	if !first.SetTheme(theme) {
		t.Fatalf("expected SetTheme to apply")
	}
	if mode, _ := prefs.ThemeMode(ctx); mode != "light" {
		t.Fatalf("expected preference light, got %q", mode)
	}
	if err := first.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	second := open()
	defer second.Close(ctx)
	if got := second.Document().Theme.Mode; got != "light" {
		t.Fatalf("expected theme mode light after reload, got %q", got)
	}

	if !second.SetThemeMode("dark") {
		t.Fatalf("expected SetThemeMode to apply")
	}
	if mode, _ := prefs.ThemeMode(ctx); mode != "dark" {
		t.Fatalf("expected preference dark, got %q", mode)
	}
}

func TestOperationsAfterCloseAreIgnored(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()
	if _, err := h.session.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := h.session.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, ok := h.session.Add("quote", ""); ok {
		t.Fatalf("expected add after close to be ignored")
	}
	if h.session.SetThemeMode("dark") {
		t.Fatalf("expected theme change after close to be ignored")
	}
	if _, err := h.session.Open(ctx); !errors.Is(err, editor.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
