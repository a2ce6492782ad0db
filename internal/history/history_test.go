package history_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/goliatone/go-pagekit/internal/document"
	"github.com/goliatone/go-pagekit/internal/history"
)

func blocks(ids ...string) []document.Block {
	out := make([]document.Block, len(ids))
	for i, id := range ids {
		out[i] = document.Block{ID: id, Type: "quote", Order: i, Props: map[string]any{"text": id}}
	}
	return out
}

func TestEmptyManager(t *testing.T) {
	m := history.New()
	if m.Cursor() != -1 || m.Len() != 0 {
		t.Fatalf("expected empty history, got cursor %d len %d", m.Cursor(), m.Len())
	}
	if _, ok := m.Undo(); ok {
		t.Fatalf("expected undo on empty history to be a no-op")
	}
	if _, ok := m.Redo(); ok {
		t.Fatalf("expected redo on empty history to be a no-op")
	}
}

func TestUndoRedoWalk(t *testing.T) {
	m := history.New()
	m.Reset(blocks("a"))
	m.Record("add", blocks("a", "b"))
	m.Record("add", blocks("a", "b", "c"))

	snap, ok := m.Undo()
	if !ok || !reflect.DeepEqual(document.IDs(snap.Blocks), []string{"a", "b"}) {
		t.Fatalf("expected [a b] after undo, got %v", document.IDs(snap.Blocks))
	}
	m.Undo()
	if _, ok := m.Undo(); ok {
		t.Fatalf("expected undo past the first snapshot to be a no-op")
	}
	if m.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", m.Cursor())
	}

	m.Redo()
	snap, _ = m.Redo()
	if !reflect.DeepEqual(document.IDs(snap.Blocks), []string{"a", "b", "c"}) {
		t.Fatalf("expected [a b c] after redo, got %v", document.IDs(snap.Blocks))
	}
	if _, ok := m.Redo(); ok {
		t.Fatalf("expected redo past the end to be a no-op")
	}
}

func TestPushAfterUndoPrunesBranch(t *testing.T) {
	m := history.New()
	m.Reset(blocks("a"))
	m.Record("add b", blocks("a", "b"))
	m.Record("add c", blocks("a", "b", "c"))

	m.Undo()
	m.Undo()
	m.Record("add d", blocks("a", "d"))

	if m.Len() != 2 || m.Cursor() != 1 {
		t.Fatalf("expected pruned history of 2 with cursor 1, got len %d cursor %d", m.Len(), m.Cursor())
	}
	if m.CanRedo() {
		t.Fatalf("expected no redo after new push")
	}
	if labels := m.Labels(); !reflect.DeepEqual(labels, []string{"initial", "add d"}) {
		t.Fatalf("expected labels [initial add d], got %v", labels)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	m := history.New()
	src := blocks("a")
	m.Reset(src)
	src[0].Props["text"] = "mutated"

	current, _ := m.Current()
	if current.Blocks[0].Props["text"] != "a" {
		t.Fatalf("expected stored snapshot isolated from caller, got %v", current.Blocks[0].Props["text"])
	}
	current.Blocks[0].Props["text"] = "mutated again"
	again, _ := m.Current()
	if again.Blocks[0].Props["text"] != "a" {
		t.Fatalf("expected returned snapshot to be a copy")
	}
}

func TestLimitDropsOldest(t *testing.T) {
	m := history.New(history.WithLimit(3))
	m.Reset(blocks("a"))
	m.Record("1", blocks("a", "b"))
	m.Record("2", blocks("a", "b", "c"))
	m.Record("3", blocks("a", "b", "c", "d"))

	if m.Len() != 3 || m.Cursor() != 2 {
		t.Fatalf("expected len 3 cursor 2, got len %d cursor %d", m.Len(), m.Cursor())
	}
	if labels := m.Labels(); !reflect.DeepEqual(labels, []string{"1", "2", "3"}) {
		t.Fatalf("expected oldest dropped, got %v", labels)
	}
}

func TestSnapshotTimestamp(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := history.New(history.WithClock(func() time.Time { return fixed }))
	m.Record("add", blocks("a"))

	current, _ := m.Current()
	if !current.TakenAt.Equal(fixed) {
		t.Fatalf("expected %s, got %s", fixed, current.TakenAt)
	}
}
