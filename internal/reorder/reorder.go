// Package reorder applies finished drag gestures to a document model.
package reorder

import (
	"strings"

	"github.com/goliatone/go-pagekit/internal/document"
	"github.com/goliatone/go-pagekit/internal/history"
)

// HistoryLabel labels snapshots recorded for a drop.
const HistoryLabel = "reorder"

// Drop is a completed drag gesture. TargetID is empty when the block was
// released over nothing.
type Drop struct {
	DraggedID string
	TargetID  string
}

// Controller moves the dragged block into the target's slot and records one
// history snapshot per effective drop.
type Controller struct {
	model   *document.Model
	history *history.Manager
}

func NewController(model *document.Model, hist *history.Manager) *Controller {
	return &Controller{model: model, history: hist}
}

// Apply reports whether the block order changed.
func (c *Controller) Apply(drop Drop) bool {
	dragged := strings.TrimSpace(drop.DraggedID)
	target := strings.TrimSpace(drop.TargetID)
	if dragged == "" || target == "" || dragged == target {
		return false
	}
	from := c.model.Index(dragged)
	to := c.model.Index(target)
	if from < 0 || to < 0 {
		return false
	}
	if !c.model.Move(from, to) {
		return false
	}
	if c.history != nil {
		c.history.Record(HistoryLabel, c.model.Blocks())
	}
	return true
}
