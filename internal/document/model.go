package document

import (
	"github.com/goliatone/go-pagekit/internal/identity"
	"github.com/goliatone/go-pagekit/internal/schema"
	"github.com/goliatone/go-pagekit/internal/util"
)

// Model owns a Document and applies block operations to it. Order is
// recomputed after every structural change so it always matches slice
// position. Unknown ids are ignored rather than reported.
//
// Model is not safe for concurrent use; callers serialise access.
type Model struct {
	doc       Document
	registry  *schema.Registry
	ids       identity.Generator
	selection *Selection
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithIDGenerator overrides block id generation.
func WithIDGenerator(gen identity.Generator) ModelOption {
	return func(m *Model) {
		if gen != nil {
			m.ids = gen
		}
	}
}

// WithSelection shares an existing selection store.
func WithSelection(sel *Selection) ModelOption {
	return func(m *Model) {
		if sel != nil {
			m.selection = sel
		}
	}
}

// NewModel wraps a deep copy of doc.
func NewModel(doc Document, registry *schema.Registry, opts ...ModelOption) *Model {
	m := &Model{
		doc:       doc.Clone(),
		registry:  registry,
		ids:       identity.Random(),
		selection: &Selection{},
	}
	for _, opt := range opts {
		opt(m)
	}
	renumber(m.doc.Blocks, 0)
	return m
}

// Document returns a deep copy of the current document.
func (m *Model) Document() Document {
	return m.doc.Clone()
}

// Blocks returns a deep copy of the block sequence.
func (m *Model) Blocks() []Block {
	return CloneBlocks(m.doc.Blocks)
}

// Len returns the number of blocks.
func (m *Model) Len() int {
	return len(m.doc.Blocks)
}

// Block returns a copy of the block with id.
func (m *Model) Block(id string) (Block, bool) {
	idx := m.Index(id)
	if idx < 0 {
		return Block{}, false
	}
	return m.doc.Blocks[idx].Clone(), true
}

// Index returns the position of id, or -1.
func (m *Model) Index(id string) int {
	if id == "" {
		return -1
	}
	for i, block := range m.doc.Blocks {
		if block.ID == id {
			return i
		}
	}
	return -1
}

// Selection returns the selection store owned by the model.
func (m *Model) Selection() *Selection {
	return m.selection
}

// Add appends a block of blockType seeded with the registry defaults and
// selects it. Unknown types return ("", false) and leave the model untouched.
func (m *Model) Add(blockType, variant string) (string, bool) {
	def, ok := m.registry.Lookup(blockType, variant)
	if !ok {
		return "", false
	}
	block := Block{
		ID:      m.ids(),
		Type:    def.Type,
		Variant: def.Variant,
		Props:   util.CloneMap(def.Defaults),
		Order:   len(m.doc.Blocks),
	}
	m.doc.Blocks = append(m.doc.Blocks, block)
	m.selection.Select(block.ID)
	return block.ID, true
}

// Update replaces the property bag of id.
func (m *Model) Update(id string, props Props) bool {
	idx := m.Index(id)
	if idx < 0 {
		return false
	}
	m.doc.Blocks[idx].Props = util.CloneMap(props)
	return true
}

// SetGap sets or clears the gap override above id.
func (m *Model) SetGap(id string, gap *float64) bool {
	idx := m.Index(id)
	if idx < 0 {
		return false
	}
	if gap == nil {
		m.doc.Blocks[idx].GapBefore = nil
		return true
	}
	value := *gap
	m.doc.Blocks[idx].GapBefore = &value
	return true
}

// Remove deletes id and clears the selection when it pointed at id.
func (m *Model) Remove(id string) bool {
	idx := m.Index(id)
	if idx < 0 {
		return false
	}
	m.doc.Blocks = append(m.doc.Blocks[:idx], m.doc.Blocks[idx+1:]...)
	renumber(m.doc.Blocks, idx)
	if m.selection.Selected() == id {
		m.selection.Clear()
	}
	return true
}

// Duplicate inserts a deep copy of id right after it under a fresh id and
// selects the copy.
func (m *Model) Duplicate(id string) (string, bool) {
	idx := m.Index(id)
	if idx < 0 {
		return "", false
	}
	dup := m.doc.Blocks[idx].Clone()
	dup.ID = m.ids()

	blocks := make([]Block, 0, len(m.doc.Blocks)+1)
	blocks = append(blocks, m.doc.Blocks[:idx+1]...)
	blocks = append(blocks, dup)
	blocks = append(blocks, m.doc.Blocks[idx+1:]...)
	m.doc.Blocks = blocks
	renumber(m.doc.Blocks, idx+1)

	m.selection.Select(dup.ID)
	return dup.ID, true
}

// Move extracts the block at from and reinserts it at to. An out of range to
// is clamped; an out of range from is ignored. Reports whether order changed.
func (m *Model) Move(from, to int) bool {
	n := len(m.doc.Blocks)
	if from < 0 || from >= n {
		return false
	}
	if to < 0 {
		to = 0
	}
	if to >= n {
		to = n - 1
	}
	if from == to {
		return false
	}
	moved := m.doc.Blocks[from]
	rest := append(m.doc.Blocks[:from:from], m.doc.Blocks[from+1:]...)

	blocks := make([]Block, 0, n)
	blocks = append(blocks, rest[:to]...)
	blocks = append(blocks, moved)
	blocks = append(blocks, rest[to:]...)
	m.doc.Blocks = blocks
	renumber(m.doc.Blocks, 0)
	return true
}

// Replace restores a block sequence, typically a history snapshot.
func (m *Model) Replace(blocks []Block) {
	m.doc.Blocks = CloneBlocks(blocks)
	renumber(m.doc.Blocks, 0)
	if selected := m.selection.Selected(); selected != "" && m.Index(selected) < 0 {
		m.selection.Clear()
	}
}

// ReplaceDocument swaps the whole document, e.g. after a load completes.
func (m *Model) ReplaceDocument(doc Document) {
	m.doc = doc.Clone()
	renumber(m.doc.Blocks, 0)
	if selected := m.selection.Selected(); selected != "" && m.Index(selected) < 0 {
		m.selection.Clear()
	}
}

func (m *Model) SetProfile(profile Profile) {
	profile.Links = util.CloneStringMap(profile.Links)
	m.doc.Profile = profile
}

func (m *Model) SetTheme(theme Theme) {
	theme.Params = util.CloneMap(theme.Params)
	m.doc.Theme = theme
}

func (m *Model) SetLayout(layout Layout) {
	m.doc.Layout = layout
}
