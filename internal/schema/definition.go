package schema

import (
	"errors"

	"github.com/goliatone/go-pagekit/internal/util"
	"github.com/google/uuid"
)

var (
	ErrDefinitionInvalid  = errors.New("pagekit schema: definition invalid")
	ErrDefaultsInvalid    = errors.New("pagekit schema: defaults do not match fields")
	ErrDuplicateVariant   = errors.New("pagekit schema: variant already registered")
	ErrDefinitionNotFound = errors.New("pagekit schema: definition not found")
)

// FieldKind describes how an editor renders a prop and which JSON type its value carries.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldRichText FieldKind = "richtext"
	FieldURL      FieldKind = "url"
	FieldImage    FieldKind = "image"
	FieldList     FieldKind = "list"
	FieldNumber   FieldKind = "number"
	FieldBoolean  FieldKind = "boolean"
	FieldColor    FieldKind = "color"
	FieldSelect   FieldKind = "select"
	FieldLogos    FieldKind = "logos"
)

// Field describes one prop of a block.
type Field struct {
	Name    string
	Label   string
	Kind    FieldKind
	Options []string
	// LogosField names the sibling prop holding the chip name to logo table of a richtext field.
	LogosField string
	// Item describes list entries; nil means a list of strings.
	Item []Field
}

// Definition is the schema for one (type, variant) pair.
type Definition struct {
	ID          uuid.UUID
	Type        string
	Variant     string
	Label       string
	Description string
	Icon        string
	Category    string
	Fields      []Field
	Defaults    map[string]any
	// Schema is the JSON schema derived from Fields at registration.
	Schema map[string]any
}

// Field returns the named field.
func (d Definition) Field(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

func (d Definition) clone() Definition {
	out := d
	out.Fields = cloneFields(d.Fields)
	out.Defaults = util.CloneMap(d.Defaults)
	out.Schema = util.CloneMap(d.Schema)
	return out
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, field := range fields {
		out[i] = field
		out[i].Options = append([]string(nil), field.Options...)
		out[i].Item = cloneFields(field.Item)
	}
	return out
}
