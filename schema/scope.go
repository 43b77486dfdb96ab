package schema

import "go.yaml.in/yaml/v4"

// scopeKind classifies a raw mapping by what its keys mean.
type scopeKind int

const (
	scopeObject      scopeKind = iota // OpenAPI object with fixed field names
	scopeNames                        // map keyed by user-chosen names
	scopeSchema                       // schema object
	scopeSchemaNames                  // name -> schema map inside a schema
	scopeExample                      // Example Object
)

// Scope tells walkers over raw YAML whether a key is document structure, a
// user-chosen name, or the start of a literal value such as an example.
// Literal values may contain "$ref" keys that are data and must not be read
// as references.
type Scope struct {
	kind      scopeKind
	container string
}

var (
	// DocumentScope is the scope of an OpenAPI document root.
	DocumentScope = Scope{kind: scopeObject}
	// SchemaScope is the scope of a schema object.
	SchemaScope = Scope{kind: scopeSchema}
)

// schemaLiterals are schema keywords whose values are instance data.
var schemaLiterals = map[string]bool{
	"example":  true,
	"examples": true,
	"default":  true,
	"enum":     true,
	"const":    true,
}

// schemaNameMaps are schema keywords mapping user names to sub-schemas.
var schemaNameMaps = map[string]bool{
	KeyDefinitions:       true,
	KeyDefs:              true,
	KeyProperties:        true,
	KeyPatternProperties: true,
	KeyDependentSchemas:  true,
	KeyDependencies:      true,
}

// schemaValued are schema keywords holding one schema or a list of schemas.
var schemaValued = map[string]bool{
	KeyItems:                 true,
	KeyPrefixItems:           true,
	KeyAdditionalItems:       true,
	KeyContains:              true,
	KeyAdditionalProperties:  true,
	KeyPropertyNames:         true,
	KeyUnevaluatedProperties: true,
	KeyUnevaluatedItems:      true,
	KeyContentSchema:         true,
	KeyAllOf:                 true,
	KeyAnyOf:                 true,
	KeyOneOf:                 true,
	KeyNot:                   true,
	KeyIf:                    true,
	KeyThen:                  true,
	KeyElse:                  true,
}

// objectNameMaps are OpenAPI fields whose mapping values are keyed by
// user-chosen names (paths, response codes, media types, component names).
var objectNameMaps = map[string]bool{
	"paths":           true,
	"webhooks":        true,
	"callbacks":       true,
	"pathItems":       true,
	"responses":       true,
	"parameters":      true,
	"requestBodies":   true,
	"headers":         true,
	"examples":        true,
	"links":           true,
	"securitySchemes": true,
	"content":         true,
	"encoding":        true,
	"variables":       true,
	"mapping":         true,
	"scopes":          true,
	FieldSchemas:      true,
	KeyDefinitions:    true,
	KeyDefs:           true,
}

// IsNames reports whether the keys of a mapping in this scope are user-chosen
// names rather than keywords. A "$ref" key there is a name, not a reference.
func (sc Scope) IsNames() bool {
	return sc.kind == scopeNames || sc.kind == scopeSchemaNames
}

// Enter returns the scope of value found under key in a mapping of scope sc.
// literal reports that value is instance data and should not be walked.
// Sequence elements share the scope returned for the sequence itself.
func (sc Scope) Enter(key string, value *yaml.Node) (next Scope, literal bool) {
	switch sc.kind {
	case scopeSchemaNames:
		return SchemaScope, false
	case scopeNames:
		switch sc.container {
		case FieldSchemas, KeyDefinitions, KeyDefs:
			return SchemaScope, false
		case "examples":
			return Scope{kind: scopeExample}, false
		}
		return DocumentScope, false
	case scopeExample:
		if key == "value" {
			return sc, true
		}
		return DocumentScope, false
	case scopeSchema:
		switch {
		case schemaLiterals[key]:
			return sc, true
		case schemaNameMaps[key]:
			return Scope{kind: scopeSchemaNames, container: key}, false
		case schemaValued[key]:
			return SchemaScope, false
		}
		return DocumentScope, false
	}

	switch {
	case key == "schema":
		return SchemaScope, false
	case key == "example":
		return sc, true
	case objectNameMaps[key] && dealias(value) != nil && dealias(value).Kind == yaml.MappingNode:
		return Scope{kind: scopeNames, container: key}, false
	}
	return DocumentScope, false
}
