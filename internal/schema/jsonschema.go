package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// FieldsSchema derives a JSON schema describing the props bag of a definition.
func FieldsSchema(fields []Field) map[string]any {
	properties := make(map[string]any, len(fields))
	for _, field := range fields {
		properties[field.Name] = fieldSchema(field)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
}

func fieldSchema(field Field) map[string]any {
	switch field.Kind {
	case FieldNumber:
		return map[string]any{"type": "number"}
	case FieldBoolean:
		return map[string]any{"type": "boolean"}
	case FieldSelect:
		if len(field.Options) == 0 {
			return map[string]any{"type": "string"}
		}
		enum := make([]any, len(field.Options))
		for i, option := range field.Options {
			enum[i] = option
		}
		return map[string]any{"type": "string", "enum": enum}
	case FieldLogos:
		return map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		}
	case FieldList:
		if len(field.Item) == 0 {
			return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
		}
		return map[string]any{"type": "array", "items": FieldsSchema(field.Item)}
	default:
		return map[string]any{"type": "string"}
	}
}

// checkDefaults validates a definition's defaults against its derived schema
// and returns them in their JSON shape (numbers as float64, lists as []any),
// which is what every storage tier hands back.
func checkDefaults(schemaDoc map[string]any, defaults map[string]any) (map[string]any, error) {
	compiled, err := compileSchema(schemaDoc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
	}
	payload, err := roundTrip(defaults)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDefaultsInvalid, err)
	}
	if err := compiled.Validate(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDefaultsInvalid, err)
	}
	normalized, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: defaults must be an object", ErrDefaultsInvalid)
	}
	return normalized, nil
}

func compileSchema(schemaDoc map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schemaDoc)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("definition.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("definition.json")
}

// roundTrip converts Go typed values (ints, []string, map[string]string) to the
// generic JSON shapes the validator expects.
func roundTrip(value map[string]any) (any, error) {
	if value == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
