package schema

import "go.yaml.in/yaml/v4"

// Keyword names the schema model gives typed fields to. Every other keyword is
// carried verbatim in Schema.Keywords.
const (
	KeyRef                   = "$ref"
	KeyDefinitions           = "definitions"
	KeyDefs                  = "$defs"
	KeyProperties            = "properties"
	KeyPatternProperties     = "patternProperties"
	KeyAdditionalProperties  = "additionalProperties"
	KeyDependentSchemas      = "dependentSchemas"
	KeyDependencies          = "dependencies"
	KeyPropertyNames         = "propertyNames"
	KeyItems                 = "items"
	KeyPrefixItems           = "prefixItems"
	KeyAdditionalItems       = "additionalItems"
	KeyContains              = "contains"
	KeyUnevaluatedItems      = "unevaluatedItems"
	KeyUnevaluatedProperties = "unevaluatedProperties"
	KeyContentSchema         = "contentSchema"
	KeyAllOf                 = "allOf"
	KeyAnyOf                 = "anyOf"
	KeyOneOf                 = "oneOf"
	KeyNot                   = "not"
	KeyIf                    = "if"
	KeyThen                  = "then"
	KeyElse                  = "else"
	KeyDiscriminator         = "discriminator"
)

// typedKeys is the emission order for typed fields that were set
// programmatically rather than decoded from a source document.
var typedKeys = []string{
	KeyRef,
	KeyDefinitions,
	KeyDefs,
	KeyProperties,
	KeyPatternProperties,
	KeyAdditionalProperties,
	KeyDependentSchemas,
	KeyDependencies,
	KeyPropertyNames,
	KeyItems,
	KeyPrefixItems,
	KeyAdditionalItems,
	KeyContains,
	KeyUnevaluatedItems,
	KeyUnevaluatedProperties,
	KeyContentSchema,
	KeyAllOf,
	KeyAnyOf,
	KeyOneOf,
	KeyNot,
	KeyIf,
	KeyThen,
	KeyElse,
}

// Schema is one JSON-Schema / OpenAPI schema fragment.
//
// Keywords that hold sub-schemas have explicit fields so traversal never has
// to probe a generic map. Everything else (type, format, enum, description,
// discriminator, vendor extensions, ...) lives in Keywords with its original
// YAML node, so values round-trip without reinterpretation.
//
// A Schema with Bool set is a boolean schema (`true` / `false`) and carries no
// other content.
type Schema struct {
	Bool *bool

	Ref string

	Definitions       *Map
	Defs              *Map
	Properties        *Map
	PatternProperties *Map
	DependentSchemas  *Map

	// Dependencies holds the schema-valued entries of draft-04/06
	// `dependencies`; property-list entries stay in DependencyLists.
	Dependencies    *Map
	DependencyLists []Keyword

	Items            *Schema
	ItemsTuple       []*Schema // draft-04 `items: [...]`
	PrefixItems      []*Schema
	AdditionalItems  *Schema
	Contains         *Schema
	UnevaluatedItems *Schema

	AdditionalProperties  *Schema
	PropertyNames         *Schema
	UnevaluatedProperties *Schema

	ContentSchema *Schema

	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema

	If   *Schema
	Then *Schema
	Else *Schema

	Keywords []Keyword

	// order is the key order observed when decoding.
	order []string

	// depOrder is the entry order of `dependencies` observed when decoding.
	depOrder []string
}

// Keyword is a schema keyword the model does not interpret.
type Keyword struct {
	Name  string
	Value *yaml.Node
}

// NewBool returns a boolean schema.
func NewBool(v bool) *Schema {
	return &Schema{Bool: &v}
}

// IsBool reports whether s is a boolean schema.
func (s *Schema) IsBool() bool {
	return s != nil && s.Bool != nil
}

// IsEmpty reports whether s has no keywords at all (`{}`).
func (s *Schema) IsEmpty() bool {
	if s == nil || s.Bool != nil {
		return false
	}
	for _, key := range typedKeys {
		if s.hasTyped(key) {
			return false
		}
	}
	return len(s.Keywords) == 0
}

// Keyword returns the raw value of an uninterpreted keyword.
func (s *Schema) Keyword(name string) (*yaml.Node, bool) {
	if s == nil {
		return nil, false
	}
	for _, kw := range s.Keywords {
		if kw.Name == name {
			return kw.Value, true
		}
	}
	return nil, false
}

// SetKeyword sets an uninterpreted keyword, replacing an existing value in
// place or appending a new one after all existing keys.
func (s *Schema) SetKeyword(name string, value *yaml.Node) {
	for i := range s.Keywords {
		if s.Keywords[i].Name == name {
			s.Keywords[i].Value = value
			return
		}
	}
	s.Keywords = append(s.Keywords, Keyword{Name: name, Value: value})
	if s.order != nil {
		s.order = append(s.order, name)
	}
}

// hasTyped reports whether the typed field for key is populated.
func (s *Schema) hasTyped(key string) bool {
	switch key {
	case KeyRef:
		return s.Ref != ""
	case KeyDefinitions:
		return s.Definitions != nil
	case KeyDefs:
		return s.Defs != nil
	case KeyProperties:
		return s.Properties != nil
	case KeyPatternProperties:
		return s.PatternProperties != nil
	case KeyAdditionalProperties:
		return s.AdditionalProperties != nil
	case KeyDependentSchemas:
		return s.DependentSchemas != nil
	case KeyDependencies:
		return s.Dependencies != nil || s.DependencyLists != nil
	case KeyPropertyNames:
		return s.PropertyNames != nil
	case KeyItems:
		return s.Items != nil || s.ItemsTuple != nil
	case KeyPrefixItems:
		return s.PrefixItems != nil
	case KeyAdditionalItems:
		return s.AdditionalItems != nil
	case KeyContains:
		return s.Contains != nil
	case KeyUnevaluatedItems:
		return s.UnevaluatedItems != nil
	case KeyUnevaluatedProperties:
		return s.UnevaluatedProperties != nil
	case KeyContentSchema:
		return s.ContentSchema != nil
	case KeyAllOf:
		return s.AllOf != nil
	case KeyAnyOf:
		return s.AnyOf != nil
	case KeyOneOf:
		return s.OneOf != nil
	case KeyNot:
		return s.Not != nil
	case KeyIf:
		return s.If != nil
	case KeyThen:
		return s.Then != nil
	case KeyElse:
		return s.Else != nil
	}
	return false
}
