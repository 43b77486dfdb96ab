package schema

import (
	"fmt"
	"strconv"

	"github.com/erraggy/oasrebase/internal/pathutil"
	"github.com/erraggy/oasrebase/oaserrors"
	"go.yaml.in/yaml/v4"
)

// DecodeSchema converts a YAML node into a Schema. path is the JSON pointer
// of node and is only used for error reporting.
func DecodeSchema(node *yaml.Node, path string) (*Schema, error) {
	pb := pathutil.Get()
	defer pathutil.Put(pb)
	if path != "" {
		tokens, err := pathutil.ParsePointer(path)
		if err != nil {
			return nil, fmt.Errorf("schema: invalid path %q: %w", path, err)
		}
		for _, tok := range tokens {
			pb.Push(tok)
		}
	}
	return decodeSchema(node, pb)
}

func decodeSchema(node *yaml.Node, path *pathutil.PathBuilder) (*Schema, error) {
	node = dealias(node)
	if node == nil {
		return nil, structuralError(path, "missing", "schema must be an object")
	}

	switch node.Kind {
	case yaml.MappingNode:
	case yaml.ScalarNode:
		if node.ShortTag() == "!!bool" {
			b, err := strconv.ParseBool(node.Value)
			if err != nil {
				return nil, structuralError(path, "boolean", err.Error())
			}
			return NewBool(b), nil
		}
		return nil, structuralError(path, describe(node), "schema must be an object")
	default:
		return nil, structuralError(path, describe(node), "schema must be an object")
	}

	s := &Schema{order: make([]string, 0, len(node.Content)/2)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]
		s.order = append(s.order, key)

		path.Push(key)
		if err := s.decodeKeyword(key, value, path); err != nil {
			return nil, err
		}
		path.Pop()
	}
	return s, nil
}

func (s *Schema) decodeKeyword(key string, value *yaml.Node, path *pathutil.PathBuilder) error {
	var err error
	switch key {
	case KeyRef:
		v := dealias(value)
		if v != nil && v.Kind == yaml.ScalarNode && v.ShortTag() == "!!str" && v.Value != "" {
			s.Ref = v.Value
			return nil
		}
		// Malformed refs are preserved verbatim for a downstream validator.
		s.Keywords = append(s.Keywords, Keyword{Name: key, Value: value})
	case KeyDefinitions:
		s.Definitions, err = decodeMap(value, path)
	case KeyDefs:
		s.Defs, err = decodeMap(value, path)
	case KeyProperties:
		s.Properties, err = decodeMap(value, path)
	case KeyPatternProperties:
		s.PatternProperties, err = decodeMap(value, path)
	case KeyDependentSchemas:
		s.DependentSchemas, err = decodeMap(value, path)
	case KeyDependencies:
		err = s.decodeDependencies(value, path)
	case KeyItems:
		if v := dealias(value); v != nil && v.Kind == yaml.SequenceNode {
			s.ItemsTuple, err = decodeList(v, path)
			if err == nil && s.ItemsTuple == nil {
				s.ItemsTuple = []*Schema{}
			}
		} else {
			s.Items, err = decodeSchema(value, path)
		}
	case KeyPrefixItems:
		s.PrefixItems, err = decodeNonNilList(value, path)
	case KeyAllOf:
		s.AllOf, err = decodeNonNilList(value, path)
	case KeyAnyOf:
		s.AnyOf, err = decodeNonNilList(value, path)
	case KeyOneOf:
		s.OneOf, err = decodeNonNilList(value, path)
	case KeyAdditionalProperties:
		s.AdditionalProperties, err = decodeSchema(value, path)
	case KeyAdditionalItems:
		s.AdditionalItems, err = decodeSchema(value, path)
	case KeyPropertyNames:
		s.PropertyNames, err = decodeSchema(value, path)
	case KeyContains:
		s.Contains, err = decodeSchema(value, path)
	case KeyUnevaluatedItems:
		s.UnevaluatedItems, err = decodeSchema(value, path)
	case KeyUnevaluatedProperties:
		s.UnevaluatedProperties, err = decodeSchema(value, path)
	case KeyContentSchema:
		s.ContentSchema, err = decodeSchema(value, path)
	case KeyNot:
		s.Not, err = decodeSchema(value, path)
	case KeyIf:
		s.If, err = decodeSchema(value, path)
	case KeyThen:
		s.Then, err = decodeSchema(value, path)
	case KeyElse:
		s.Else, err = decodeSchema(value, path)
	default:
		s.Keywords = append(s.Keywords, Keyword{Name: key, Value: value})
	}
	return err
}

// decodeDependencies splits draft-04/06 `dependencies` into schema entries
// and property-list entries, remembering their interleaved order.
func (s *Schema) decodeDependencies(node *yaml.Node, path *pathutil.PathBuilder) error {
	node = dealias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return structuralError(path, describe(node), "expected a mapping of dependencies")
	}
	s.Dependencies = NewMap()
	s.depOrder = make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, value := node.Content[i].Value, node.Content[i+1]
		s.depOrder = append(s.depOrder, name)
		if v := dealias(value); v != nil && v.Kind == yaml.SequenceNode {
			s.DependencyLists = append(s.DependencyLists, Keyword{Name: name, Value: value})
			continue
		}
		path.Push(name)
		child, err := decodeSchema(value, path)
		if err != nil {
			return err
		}
		path.Pop()
		s.Dependencies.Set(name, child)
	}
	return nil
}

// DecodeMap converts a YAML mapping of name -> schema into a Map.
func DecodeMap(node *yaml.Node, path string) (*Map, error) {
	pb := pathutil.Get()
	defer pathutil.Put(pb)
	tokens, err := pathutil.ParsePointer(path)
	if err != nil {
		return nil, fmt.Errorf("schema: invalid path %q: %w", path, err)
	}
	for _, tok := range tokens {
		pb.Push(tok)
	}
	return decodeMap(node, pb)
}

func decodeMap(node *yaml.Node, path *pathutil.PathBuilder) (*Map, error) {
	node = dealias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, structuralError(path, describe(node), "expected a mapping of schemas")
	}
	m := NewMap()
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		path.Push(name)
		child, err := decodeSchema(node.Content[i+1], path)
		if err != nil {
			return nil, err
		}
		path.Pop()
		m.Set(name, child)
	}
	return m, nil
}

func decodeList(node *yaml.Node, path *pathutil.PathBuilder) ([]*Schema, error) {
	var out []*Schema
	for i, item := range node.Content {
		path.PushIndex(i)
		child, err := decodeSchema(item, path)
		if err != nil {
			return nil, err
		}
		path.Pop()
		out = append(out, child)
	}
	return out, nil
}

// decodeNonNilList decodes a sequence of schemas, keeping an empty sequence
// distinct from an absent one.
func decodeNonNilList(node *yaml.Node, path *pathutil.PathBuilder) ([]*Schema, error) {
	node = dealias(node)
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil, structuralError(path, describe(node), "expected a sequence of schemas")
	}
	out, err := decodeList(node, path)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*Schema{}
	}
	return out, nil
}

func dealias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node != nil && node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		return dealias(node.Content[0])
	}
	return node
}

// describe names a node's kind the way a JSON reader would.
func describe(node *yaml.Node) string {
	if node == nil {
		return "nothing"
	}
	switch node.Kind {
	case yaml.MappingNode:
		return "object"
	case yaml.SequenceNode:
		return "array"
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return "null"
		case "!!bool":
			return "boolean"
		case "!!int", "!!float":
			return "number"
		default:
			return "string"
		}
	}
	return "unknown"
}

func structuralError(path *pathutil.PathBuilder, found, msg string) error {
	return &oaserrors.StructuralError{Path: path.String(), Found: found, Message: msg}
}
