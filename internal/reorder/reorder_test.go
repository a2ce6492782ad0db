package reorder_test

import (
	"reflect"
	"testing"

	"github.com/goliatone/go-pagekit/internal/document"
	"github.com/goliatone/go-pagekit/internal/history"
	"github.com/goliatone/go-pagekit/internal/reorder"
	"github.com/goliatone/go-pagekit/internal/schema"
)

func setup(t *testing.T) (*reorder.Controller, *document.Model, *history.Manager) {
	t.Helper()
	blocks := []document.Block{
		{ID: "B0", Type: "quote"},
		{ID: "B1", Type: "quote"},
		{ID: "B2", Type: "quote"},
	}
	model := document.NewModel(document.Document{Handle: "ada", Blocks: blocks}, schema.Builtin())
	hist := history.New()
	hist.Reset(model.Blocks())
	return reorder.NewController(model, hist), model, hist
}

func TestApplyMovesDraggedIntoTargetSlot(t *testing.T) {
	ctrl, model, hist := setup(t)

	if !ctrl.Apply(reorder.Drop{DraggedID: "B0", TargetID: "B2"}) {
		t.Fatalf("expected drop to change order")
	}
	if got := document.IDs(model.Blocks()); !reflect.DeepEqual(got, []string{"B1", "B2", "B0"}) {
		t.Fatalf("expected [B1 B2 B0], got %v", got)
	}
	if hist.Len() != 2 {
		t.Fatalf("expected exactly one snapshot recorded, got %d total", hist.Len())
	}
	if labels := hist.Labels(); labels[1] != reorder.HistoryLabel {
		t.Fatalf("expected reorder label, got %v", labels)
	}
}

func TestApplyIgnoresNoOpDrops(t *testing.T) {
	cases := []struct {
		name string
		drop reorder.Drop
	}{
		{name: "same block", drop: reorder.Drop{DraggedID: "B1", TargetID: "B1"}},
		{name: "released over nothing", drop: reorder.Drop{DraggedID: "B1"}},
		{name: "unknown target", drop: reorder.Drop{DraggedID: "B1", TargetID: "B9"}},
		{name: "unknown dragged", drop: reorder.Drop{DraggedID: "B9", TargetID: "B1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl, model, hist := setup(t)
			if ctrl.Apply(tc.drop) {
				t.Fatalf("expected no change")
			}
			if got := document.IDs(model.Blocks()); !reflect.DeepEqual(got, []string{"B0", "B1", "B2"}) {
				t.Fatalf("expected order untouched, got %v", got)
			}
			if hist.Len() != 1 {
				t.Fatalf("expected no snapshot, got %d", hist.Len())
			}
		})
	}
}

func TestApplyThenUndoRestoresOrder(t *testing.T) {
	ctrl, model, hist := setup(t)
	ctrl.Apply(reorder.Drop{DraggedID: "B2", TargetID: "B0"})
	if got := document.IDs(model.Blocks()); !reflect.DeepEqual(got, []string{"B2", "B0", "B1"}) {
		t.Fatalf("expected [B2 B0 B1], got %v", got)
	}

	snap, ok := hist.Undo()
	if !ok {
		t.Fatalf("expected undo to succeed")
	}
	model.Replace(snap.Blocks)
	if got := document.IDs(model.Blocks()); !reflect.DeepEqual(got, []string{"B0", "B1", "B2"}) {
		t.Fatalf("expected original order after undo, got %v", got)
	}
}
