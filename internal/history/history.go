package history

import (
	"time"

	"github.com/goliatone/go-pagekit/internal/document"
)

// DefaultLimit bounds the number of retained snapshots.
const DefaultLimit = 50

// Snapshot is a deep copy of the block sequence after a completed action.
type Snapshot struct {
	Blocks  []document.Block
	Label   string
	TakenAt time.Time
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Blocks = document.CloneBlocks(s.Blocks)
	return out
}

// Manager is a linear undo/redo stack. The cursor points at the snapshot that
// matches the current model state, or -1 when empty.
type Manager struct {
	snapshots []Snapshot
	cursor    int
	limit     int
	now       func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithLimit caps retained snapshots; zero or less disables the cap.
func WithLimit(limit int) Option {
	return func(m *Manager) {
		m.limit = limit
	}
}

// WithClock overrides the snapshot timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		if clock != nil {
			m.now = clock
		}
	}
}

// New returns an empty manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		cursor: -1,
		limit:  DefaultLimit,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Record pushes a snapshot of blocks labelled label.
func (m *Manager) Record(label string, blocks []document.Block) {
	m.Push(Snapshot{Blocks: blocks, Label: label})
}

// Push discards every snapshot after the cursor, appends snap and moves the
// cursor onto it. When the limit is exceeded the oldest snapshots are dropped.
func (m *Manager) Push(snap Snapshot) {
	snap = snap.clone()
	if snap.TakenAt.IsZero() {
		snap.TakenAt = m.now()
	}
	m.snapshots = append(m.snapshots[:m.cursor+1], snap)
	m.cursor = len(m.snapshots) - 1

	if m.limit > 0 && len(m.snapshots) > m.limit {
		drop := len(m.snapshots) - m.limit
		m.snapshots = append([]Snapshot(nil), m.snapshots[drop:]...)
		m.cursor -= drop
	}
}

// Undo steps back one snapshot and returns a copy of it.
func (m *Manager) Undo() (Snapshot, bool) {
	if !m.CanUndo() {
		return Snapshot{}, false
	}
	m.cursor--
	return m.snapshots[m.cursor].clone(), true
}

// Redo steps forward one snapshot and returns a copy of it.
func (m *Manager) Redo() (Snapshot, bool) {
	if !m.CanRedo() {
		return Snapshot{}, false
	}
	m.cursor++
	return m.snapshots[m.cursor].clone(), true
}

// Reset clears history and seeds it with initial.
func (m *Manager) Reset(initial []document.Block) {
	m.snapshots = nil
	m.cursor = -1
	m.Push(Snapshot{Blocks: initial, Label: "initial"})
}

func (m *Manager) CanUndo() bool { return m.cursor > 0 }

func (m *Manager) CanRedo() bool { return m.cursor < len(m.snapshots)-1 }

func (m *Manager) Cursor() int { return m.cursor }

func (m *Manager) Len() int { return len(m.snapshots) }

// Current returns a copy of the snapshot at the cursor.
func (m *Manager) Current() (Snapshot, bool) {
	if m.cursor < 0 {
		return Snapshot{}, false
	}
	return m.snapshots[m.cursor].clone(), true
}

// Labels lists snapshot labels oldest first.
func (m *Manager) Labels() []string {
	out := make([]string, len(m.snapshots))
	for i, snap := range m.snapshots {
		out[i] = snap.Label
	}
	return out
}
