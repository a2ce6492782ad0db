package document

import (
	"github.com/goliatone/go-pagekit/internal/identity"
	"github.com/goliatone/go-pagekit/internal/schema"
)

// Default layout values applied to new documents.
const (
	DefaultGap   = 24
	DefaultWidth = "regular"
	DefaultMode  = "light"
)

// Default builds the starter document for handle: a header seeded from the
// handle followed by an about block.
func Default(handle string, registry *schema.Registry, ids identity.Generator) Document {
	if ids == nil {
		ids = identity.Random()
	}
	doc := Document{
		Handle:  handle,
		Profile: Profile{Name: handle},
		Theme:   Theme{Mode: DefaultMode},
		Layout:  Layout{Gap: DefaultGap, Width: DefaultWidth},
	}
	for _, blockType := range []string{"header", "about"} {
		def, ok := registry.Lookup(blockType, "")
		if !ok {
			continue
		}
		props := def.Defaults
		if blockType == "header" && handle != "" {
			props["name"] = handle
		}
		doc.Blocks = append(doc.Blocks, Block{
			ID:      ids(),
			Type:    def.Type,
			Variant: def.Variant,
			Props:   props,
			Order:   len(doc.Blocks),
		})
	}
	return doc
}
