package schema

import (
	"fmt"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-pagekit/internal/identity"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/util"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
	"github.com/goliatone/go-slug"
)

// Registry stores block definitions keyed by (type, variant). The first
// variant registered for a type is its default.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	variants map[string][]string
	entries  map[string]map[string]Definition
	logger   interfaces.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(logger interfaces.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logging.Ensure(logger)
	}
}

// NewRegistry constructs an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		variants: make(map[string][]string),
		entries:  make(map[string]map[string]Definition),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register validates def and records it. Defaults are checked against the JSON
// schema derived from Fields.
func (r *Registry) Register(def Definition) error {
	if r == nil {
		return ErrDefinitionInvalid
	}
	def = def.clone()
	def.Type = Key(def.Type)
	def.Variant = Key(def.Variant)

	if err := validateDefinition(def); err != nil {
		return err
	}

	def.Schema = FieldsSchema(def.Fields)
	if def.Defaults == nil {
		def.Defaults = map[string]any{}
	}
	defaults, err := checkDefaults(def.Schema, def.Defaults)
	if err != nil {
		return fmt.Errorf("%s/%s: %w", def.Type, def.Variant, err)
	}
	def.Defaults = defaults
	def.ID = identity.DefinitionUUID(def.Type, def.Variant)

	r.mu.Lock()
	defer r.mu.Unlock()

	byVariant, ok := r.entries[def.Type]
	if !ok {
		byVariant = make(map[string]Definition)
		r.entries[def.Type] = byVariant
		r.order = append(r.order, def.Type)
	}
	if _, exists := byVariant[def.Variant]; exists {
		return fmt.Errorf("%w: %s/%s", ErrDuplicateVariant, def.Type, def.Variant)
	}
	byVariant[def.Variant] = def
	r.variants[def.Type] = append(r.variants[def.Type], def.Variant)

	r.logger.Debug("schema.definition.registered", "type", def.Type, "variant", def.Variant)
	return nil
}

// MustRegister registers every definition and panics on the first error.
func (r *Registry) MustRegister(defs ...Definition) *Registry {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}

// Lookup resolves (type, variant). An empty or unknown variant falls back to
// the type's default variant.
func (r *Registry) Lookup(blockType, variant string) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	blockType = Key(blockType)
	variant = Key(variant)

	r.mu.RLock()
	defer r.mu.RUnlock()

	byVariant, ok := r.entries[blockType]
	if !ok {
		return Definition{}, false
	}
	if def, ok := byVariant[variant]; ok {
		return def.clone(), true
	}
	variants := r.variants[blockType]
	if len(variants) == 0 {
		return Definition{}, false
	}
	return byVariant[variants[0]].clone(), true
}

// Has reports whether blockType is registered.
func (r *Registry) Has(blockType string) bool {
	_, ok := r.Lookup(blockType, "")
	return ok
}

// Defaults returns a deep copy of the default props for (type, variant).
func (r *Registry) Defaults(blockType, variant string) (map[string]any, bool) {
	def, ok := r.Lookup(blockType, variant)
	if !ok {
		return nil, false
	}
	return util.CloneMap(def.Defaults), true
}

// DefaultVariant returns the variant used when none is requested.
func (r *Registry) DefaultVariant(blockType string) string {
	def, ok := r.Lookup(blockType, "")
	if !ok {
		return ""
	}
	return def.Variant
}

// Types lists registered types in registration order.
func (r *Registry) Types() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Variants lists a type's variants in registration order.
func (r *Registry) Variants(blockType string) []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.variants[Key(blockType)]...)
}

// RichTextFields returns the richtext fields of (type, variant).
func (r *Registry) RichTextFields(blockType, variant string) []Field {
	def, ok := r.Lookup(blockType, variant)
	if !ok {
		return nil
	}
	var out []Field
	for _, field := range def.Fields {
		if field.Kind == FieldRichText {
			out = append(out, field)
		}
	}
	return out
}

// Key normalizes a type or variant name.
func Key(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	normalized, err := slug.Default().Normalize(trimmed)
	if err != nil || normalized == "" {
		return strings.ToLower(trimmed)
	}
	return normalized
}

var fieldKinds = []any{
	FieldText, FieldTextarea, FieldRichText, FieldURL, FieldImage, FieldList,
	FieldNumber, FieldBoolean, FieldColor, FieldSelect, FieldLogos,
}

func validateDefinition(def Definition) error {
	err := validation.ValidateStruct(&def,
		validation.Field(&def.Type, validation.Required),
		validation.Field(&def.Fields, validation.By(func(value any) error {
			return validateFields(value.([]Field))
		})),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
	}
	return nil
}

func validateFields(fields []Field) error {
	seen := make(map[string]FieldKind, len(fields))
	for _, field := range fields {
		if err := validation.ValidateStruct(&field,
			validation.Field(&field.Name, validation.Required),
			validation.Field(&field.Kind, validation.Required, validation.In(fieldKinds...)),
		); err != nil {
			return err
		}
		if _, dup := seen[field.Name]; dup {
			return validation.NewError("pagekit.schema.field_duplicate", "duplicate field "+field.Name)
		}
		seen[field.Name] = field.Kind
		if len(field.Item) > 0 {
			if err := validateFields(field.Item); err != nil {
				return err
			}
		}
	}
	for _, field := range fields {
		if field.LogosField == "" {
			continue
		}
		if field.Kind != FieldRichText {
			return validation.NewError("pagekit.schema.logos_not_richtext", "logos table set on non richtext field "+field.Name)
		}
		if kind, ok := seen[field.LogosField]; !ok || kind != FieldLogos {
			return validation.NewError("pagekit.schema.logos_field_missing", "logos field "+field.LogosField+" is not a logos field")
		}
	}
	return nil
}
