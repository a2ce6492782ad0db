package document

import (
	"errors"

	"github.com/goliatone/go-pagekit/internal/util"
)

var (
	ErrPayloadInvalid = errors.New("pagekit document: payload invalid")
	ErrDuplicateID    = errors.New("pagekit document: duplicate block id")
)

// BlockType names a registered block schema, e.g. "gallery".
type BlockType = string

// Props is the property bag of a block, shaped by its (type, variant) schema.
type Props = map[string]any

// Block is one placed, reorderable content unit.
type Block struct {
	ID      string
	Type    BlockType
	Variant string
	Props   Props
	// Order mirrors the block's position in Document.Blocks.
	Order int
	// GapBefore overrides the layout gap above this block when set.
	GapBefore *float64
}

// Clone returns a deep copy of b.
func (b Block) Clone() Block {
	out := b
	out.Props = util.CloneMap(b.Props)
	if b.GapBefore != nil {
		gap := *b.GapBefore
		out.GapBefore = &gap
	}
	return out
}

type Profile struct {
	Name     string
	Headline string
	Location string
	Avatar   string
	Email    string
	Links    map[string]string
}

// Theme carries opaque style values; nothing in pagekit interprets them beyond Mode.
type Theme struct {
	Mode   string
	Accent string
	Font   string
	Params map[string]any
}

type Layout struct {
	Gap   float64
	Width string
}

// Document is the full personal page: profile, theme, layout and ordered blocks.
type Document struct {
	Handle  string
	Profile Profile
	Theme   Theme
	Blocks  []Block
	Layout  Layout
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := d
	out.Profile.Links = util.CloneStringMap(d.Profile.Links)
	out.Theme.Params = util.CloneMap(d.Theme.Params)
	out.Blocks = CloneBlocks(d.Blocks)
	return out
}

// CloneBlocks deep copies a block sequence.
func CloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, block := range blocks {
		out[i] = block.Clone()
	}
	return out
}

// IDs returns the block ids in order.
func IDs(blocks []Block) []string {
	out := make([]string, len(blocks))
	for i, block := range blocks {
		out[i] = block.ID
	}
	return out
}

func renumber(blocks []Block, from int) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(blocks); i++ {
		blocks[i].Order = i
	}
}
