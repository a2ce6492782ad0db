// Package importer builds documents from markdown files with YAML frontmatter.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-pagekit/internal/document"
	"github.com/goliatone/go-pagekit/internal/identity"
	"github.com/goliatone/go-pagekit/internal/schema"
	"github.com/goliatone/go-pagekit/internal/util"
)

var (
	ErrHandleRequired   = errors.New("pagekit import: handle is required")
	ErrUnknownBlockType = errors.New("pagekit import: unknown block type")
)

// BodyBlock and BodyField name where the markdown body lands.
const (
	BodyBlock = "about"
	BodyField = "bio"
)

type frontMatterEnvelope struct {
	Handle  string         `yaml:"handle"`
	Profile profileMatter  `yaml:"profile"`
	Theme   themeMatter    `yaml:"theme"`
	Layout  layoutMatter   `yaml:"layout"`
	Blocks  []blockMatter  `yaml:"blocks"`
}

type profileMatter struct {
	Name     string            `yaml:"name"`
	Headline string            `yaml:"headline"`
	Location string            `yaml:"location"`
	Avatar   string            `yaml:"avatar"`
	Email    string            `yaml:"email"`
	Links    map[string]string `yaml:"links"`
}

type themeMatter struct {
	Mode   string         `yaml:"mode"`
	Accent string         `yaml:"accent"`
	Font   string         `yaml:"font"`
	Params map[string]any `yaml:"params"`
}

type layoutMatter struct {
	Gap   *float64 `yaml:"gap"`
	Width string   `yaml:"width"`
}

type blockMatter struct {
	ID      string         `yaml:"id"`
	Type    string         `yaml:"type"`
	Variant string         `yaml:"variant"`
	Gap     *float64       `yaml:"gap"`
	Props   map[string]any `yaml:"props"`
}

// Option configures an import.
type Option func(*options)

type options struct {
	handle string
	ids    identity.Generator
}

// WithHandle supplies the handle used when the frontmatter has none.
func WithHandle(handle string) Option {
	return func(o *options) {
		o.handle = handle
	}
}

func WithIDGenerator(gen identity.Generator) Option {
	return func(o *options) {
		if gen != nil {
			o.ids = gen
		}
	}
}

// ImportMarkdown reads the frontmatter profile, theme, layout and block list
// from src. Block props are layered over the registry defaults. A non blank
// markdown body becomes the bio of the first about block, which is appended
// when the list has none. An empty block list yields the default document's
// blocks.
func ImportMarkdown(src []byte, registry *schema.Registry, opts ...Option) (document.Document, error) {
	cfg := options{ids: identity.Random()}
	for _, opt := range opts {
		opt(&cfg)
	}

	var meta frontMatterEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return document.Document{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	handle := schema.Key(util.FirstNonEmpty(meta.Handle, cfg.handle))
	if handle == "" {
		return document.Document{}, ErrHandleRequired
	}

	doc := document.Default(handle, registry, cfg.ids)
	applyProfile(&doc, meta.Profile)
	applyTheme(&doc, meta.Theme)
	if meta.Layout.Gap != nil {
		doc.Layout.Gap = *meta.Layout.Gap
	}
	if width := strings.TrimSpace(meta.Layout.Width); width != "" {
		doc.Layout.Width = width
	}

	if len(meta.Blocks) > 0 {
		blocks, err := buildBlocks(meta.Blocks, registry, cfg.ids)
		if err != nil {
			return document.Document{}, err
		}
		doc.Blocks = blocks
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		placeBody(&doc, text, registry, cfg.ids)
	}
	for i := range doc.Blocks {
		doc.Blocks[i].Order = i
	}
	return doc, nil
}

func applyProfile(doc *document.Document, p profileMatter) {
	doc.Profile = document.Profile{
		Name:     util.FirstNonEmpty(p.Name, doc.Profile.Name),
		Headline: p.Headline,
		Location: p.Location,
		Avatar:   p.Avatar,
		Email:    p.Email,
		Links:    util.CloneStringMap(p.Links),
	}
	for i, block := range doc.Blocks {
		if block.Type == "header" && p.Name != "" {
			doc.Blocks[i].Props["name"] = p.Name
			if p.Headline != "" {
				doc.Blocks[i].Props["headline"] = p.Headline
			}
			if p.Location != "" {
				doc.Blocks[i].Props["location"] = p.Location
			}
		}
	}
}

func applyTheme(doc *document.Document, t themeMatter) {
	if mode := strings.TrimSpace(t.Mode); mode != "" {
		doc.Theme.Mode = mode
	}
	doc.Theme.Accent = t.Accent
	doc.Theme.Font = t.Font
	if params, ok := normalize(t.Params).(map[string]any); ok && len(params) > 0 {
		doc.Theme.Params = params
	}
}

func buildBlocks(entries []blockMatter, registry *schema.Registry, ids identity.Generator) ([]document.Block, error) {
	blocks := make([]document.Block, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		def, ok := registry.Lookup(entry.Type, entry.Variant)
		if !ok {
			return nil, fmt.Errorf("%w: blocks[%d] %q", ErrUnknownBlockType, i, entry.Type)
		}
		props := util.CloneMap(def.Defaults)
		if props == nil {
			props = map[string]any{}
		}
		if overrides, ok := normalize(entry.Props).(map[string]any); ok {
			for key, value := range overrides {
				props[key] = value
			}
		}

		id := strings.TrimSpace(entry.ID)
		if _, dup := seen[id]; id == "" || dup {
			id = ids()
		}
		seen[id] = struct{}{}

		block := document.Block{
			ID:      id,
			Type:    def.Type,
			Variant: def.Variant,
			Props:   props,
			Order:   i,
		}
		if entry.Gap != nil {
			gap := *entry.Gap
			block.GapBefore = &gap
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func placeBody(doc *document.Document, text string, registry *schema.Registry, ids identity.Generator) {
	for i, block := range doc.Blocks {
		if block.Type == BodyBlock {
			doc.Blocks[i].Props[BodyField] = text
			return
		}
	}
	def, ok := registry.Lookup(BodyBlock, "")
	if !ok {
		return
	}
	props := util.CloneMap(def.Defaults)
	if props == nil {
		props = map[string]any{}
	}
	props[BodyField] = text
	doc.Blocks = append(doc.Blocks, document.Block{
		ID:      ids(),
		Type:    def.Type,
		Variant: def.Variant,
		Props:   props,
	})
}

// normalize turns YAML decoded maps with interface keys into string keyed maps.
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		if v == nil {
			return nil
		}
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	default:
		return value
	}
}
