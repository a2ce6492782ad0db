package document

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/goliatone/go-pagekit/internal/util"
)

// Payload keys shared by every storage tier.
const (
	keyHandle    = "handle"
	keyProfile   = "profile"
	keyTheme     = "theme"
	keyLayout    = "layout"
	keyBlocks    = "blocks"
	keyID        = "id"
	keyType      = "type"
	keyVariant   = "variant"
	keyProps     = "props"
	keyOrder     = "order"
	keyGapBefore = "gapBefore"
)

// ToPayload converts doc to the nested key/value form written to storage.
func ToPayload(doc Document) map[string]any {
	blocks := make([]any, len(doc.Blocks))
	for i, block := range doc.Blocks {
		entry := map[string]any{
			keyID:    block.ID,
			keyType:  block.Type,
			keyProps: util.CloneMap(block.Props),
			keyOrder: block.Order,
		}
		if block.Variant != "" {
			entry[keyVariant] = block.Variant
		}
		if block.GapBefore != nil {
			entry[keyGapBefore] = *block.GapBefore
		}
		blocks[i] = entry
	}

	profile := map[string]any{
		"name":     doc.Profile.Name,
		"headline": doc.Profile.Headline,
		"location": doc.Profile.Location,
		"avatar":   doc.Profile.Avatar,
		"email":    doc.Profile.Email,
	}
	if doc.Profile.Links != nil {
		links := make(map[string]any, len(doc.Profile.Links))
		for key, value := range doc.Profile.Links {
			links[key] = value
		}
		profile["links"] = links
	}

	theme := map[string]any{
		"mode":   doc.Theme.Mode,
		"accent": doc.Theme.Accent,
		"font":   doc.Theme.Font,
	}
	if doc.Theme.Params != nil {
		theme["params"] = util.CloneMap(doc.Theme.Params)
	}

	return map[string]any{
		keyHandle:  doc.Handle,
		keyProfile: profile,
		keyTheme:   theme,
		keyLayout: map[string]any{
			"gap":   doc.Layout.Gap,
			"width": doc.Layout.Width,
		},
		keyBlocks: blocks,
	}
}

// FromPayload rebuilds a Document. Blocks are ordered by their recorded order
// and renumbered; duplicate ids are rejected.
func FromPayload(payload map[string]any) (Document, error) {
	if payload == nil {
		return Document{}, fmt.Errorf("%w: empty payload", ErrPayloadInvalid)
	}
	var doc Document
	doc.Handle = stringValue(payload[keyHandle])

	if raw, ok := payload[keyProfile]; ok && raw != nil {
		profile, ok := raw.(map[string]any)
		if !ok {
			return Document{}, fmt.Errorf("%w: profile must be an object", ErrPayloadInvalid)
		}
		doc.Profile = Profile{
			Name:     stringValue(profile["name"]),
			Headline: stringValue(profile["headline"]),
			Location: stringValue(profile["location"]),
			Avatar:   stringValue(profile["avatar"]),
			Email:    stringValue(profile["email"]),
			Links:    util.StringMap(profile["links"]),
		}
	}

	if raw, ok := payload[keyTheme]; ok && raw != nil {
		theme, ok := raw.(map[string]any)
		if !ok {
			return Document{}, fmt.Errorf("%w: theme must be an object", ErrPayloadInvalid)
		}
		doc.Theme = Theme{
			Mode:   stringValue(theme["mode"]),
			Accent: stringValue(theme["accent"]),
			Font:   stringValue(theme["font"]),
		}
		if params, ok := theme["params"].(map[string]any); ok {
			doc.Theme.Params = util.CloneMap(params)
		}
	}

	if raw, ok := payload[keyLayout]; ok && raw != nil {
		layout, ok := raw.(map[string]any)
		if !ok {
			return Document{}, fmt.Errorf("%w: layout must be an object", ErrPayloadInvalid)
		}
		gap, _ := floatValue(layout["gap"])
		doc.Layout = Layout{Gap: gap, Width: stringValue(layout["width"])}
	}

	entries, err := blockEntries(payload[keyBlocks])
	if err != nil {
		return Document{}, err
	}
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		block, err := blockFromEntry(entry, i)
		if err != nil {
			return Document{}, err
		}
		if _, dup := seen[block.ID]; dup {
			return Document{}, fmt.Errorf("%w: %s", ErrDuplicateID, block.ID)
		}
		seen[block.ID] = struct{}{}
		doc.Blocks = append(doc.Blocks, block)
	}
	sort.SliceStable(doc.Blocks, func(i, j int) bool {
		return doc.Blocks[i].Order < doc.Blocks[j].Order
	})
	renumber(doc.Blocks, 0)
	return doc, nil
}

// Marshal encodes doc as JSON.
func Marshal(doc Document) ([]byte, error) {
	return json.Marshal(ToPayload(doc))
}

// Unmarshal decodes a JSON document.
func Unmarshal(data []byte) (Document, error) {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrPayloadInvalid, err)
	}
	return FromPayload(payload)
}

func blockEntries(raw any) ([]map[string]any, error) {
	switch typed := raw.(type) {
	case nil:
		return nil, nil
	case []map[string]any:
		return typed, nil
	case []any:
		out := make([]map[string]any, len(typed))
		for i, item := range typed {
			entry, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: block %d must be an object", ErrPayloadInvalid, i)
			}
			out[i] = entry
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: blocks must be a list", ErrPayloadInvalid)
	}
}

func blockFromEntry(entry map[string]any, position int) (Block, error) {
	block := Block{
		ID:      stringValue(entry[keyID]),
		Type:    stringValue(entry[keyType]),
		Variant: stringValue(entry[keyVariant]),
		Order:   position,
	}
	if block.ID == "" || block.Type == "" {
		return Block{}, fmt.Errorf("%w: block %d requires id and type", ErrPayloadInvalid, position)
	}
	if order, ok := floatValue(entry[keyOrder]); ok {
		block.Order = int(order)
	}
	switch props := entry[keyProps].(type) {
	case nil:
	case map[string]any:
		block.Props = util.CloneMap(props)
	default:
		return Block{}, fmt.Errorf("%w: block %s props must be an object", ErrPayloadInvalid, block.ID)
	}
	if gap, ok := floatValue(entry[keyGapBefore]); ok {
		block.GapBefore = &gap
	}
	return block, nil
}

func stringValue(raw any) string {
	s, _ := raw.(string)
	return s
}

func floatValue(raw any) (float64, bool) {
	switch typed := raw.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case json.Number:
		f, err := typed.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
