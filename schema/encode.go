package schema

import (
	"strconv"

	"go.yaml.in/yaml/v4"
)

// EncodeSchema converts a Schema into a YAML mapping node. Decoded schemas
// emit their keys in source order; keys added afterwards follow, typed
// keywords first.
func EncodeSchema(s *Schema) *yaml.Node {
	if s == nil {
		return nullNode()
	}
	if s.Bool != nil {
		return scalarNode("!!bool", strconv.FormatBool(*s.Bool))
	}

	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range s.Keys() {
		out.Content = append(out.Content, scalarNode("!!str", key), s.encodeKey(key))
	}
	return out
}

// encodeKey returns the encoded value for a key reported by Keys.
func (s *Schema) encodeKey(key string) *yaml.Node {
	if s.hasTyped(key) {
		switch key {
		case KeyRef:
			return scalarNode("!!str", s.Ref)
		case KeyDefinitions:
			return EncodeMap(s.Definitions)
		case KeyDefs:
			return EncodeMap(s.Defs)
		case KeyProperties:
			return EncodeMap(s.Properties)
		case KeyPatternProperties:
			return EncodeMap(s.PatternProperties)
		case KeyDependentSchemas:
			return EncodeMap(s.DependentSchemas)
		case KeyDependencies:
			return s.encodeDependencies()
		case KeyItems:
			if s.ItemsTuple != nil {
				return encodeList(s.ItemsTuple)
			}
			return EncodeSchema(s.Items)
		case KeyPrefixItems:
			return encodeList(s.PrefixItems)
		case KeyAllOf:
			return encodeList(s.AllOf)
		case KeyAnyOf:
			return encodeList(s.AnyOf)
		case KeyOneOf:
			return encodeList(s.OneOf)
		case KeyAdditionalProperties:
			return EncodeSchema(s.AdditionalProperties)
		case KeyAdditionalItems:
			return EncodeSchema(s.AdditionalItems)
		case KeyPropertyNames:
			return EncodeSchema(s.PropertyNames)
		case KeyContains:
			return EncodeSchema(s.Contains)
		case KeyUnevaluatedItems:
			return EncodeSchema(s.UnevaluatedItems)
		case KeyUnevaluatedProperties:
			return EncodeSchema(s.UnevaluatedProperties)
		case KeyContentSchema:
			return EncodeSchema(s.ContentSchema)
		case KeyNot:
			return EncodeSchema(s.Not)
		case KeyIf:
			return EncodeSchema(s.If)
		case KeyThen:
			return EncodeSchema(s.Then)
		case KeyElse:
			return EncodeSchema(s.Else)
		}
	}
	// Raw keywords, including a malformed $ref kept verbatim.
	v, _ := s.Keyword(key)
	return plainNode(v)
}

// encodeDependencies emits `dependencies` entries in decoded order, followed
// by schema entries and then property lists added afterwards.
func (s *Schema) encodeDependencies() *yaml.Node {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	seen := make(map[string]bool)
	emit := func(name string) {
		if seen[name] {
			return
		}
		var value *yaml.Node
		if sub, ok := s.Dependencies.Get(name); ok {
			value = EncodeSchema(sub)
		} else {
			for _, kw := range s.DependencyLists {
				if kw.Name == name {
					value = plainNode(kw.Value)
					break
				}
			}
		}
		if value == nil {
			return
		}
		seen[name] = true
		out.Content = append(out.Content, scalarNode("!!str", name), value)
	}
	for _, name := range s.depOrder {
		emit(name)
	}
	for name := range s.Dependencies.All() {
		emit(name)
	}
	for _, kw := range s.DependencyLists {
		emit(kw.Name)
	}
	return out
}

// EncodeMap converts a Map into a YAML mapping node.
func EncodeMap(m *Map) *yaml.Node {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for name, s := range m.All() {
		out.Content = append(out.Content, scalarNode("!!str", name), EncodeSchema(s))
	}
	return out
}

func encodeList(list []*Schema) *yaml.Node {
	out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, s := range list {
		out.Content = append(out.Content, EncodeSchema(s))
	}
	return out
}

// MarshalYAML implements yaml.Marshaler.
func (s *Schema) MarshalYAML() (any, error) {
	return EncodeSchema(s), nil
}

// MarshalJSON implements json.Marshaler, keeping keyword order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return NodeToJSON(EncodeSchema(s))
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func nullNode() *yaml.Node {
	return scalarNode("!!null", "null")
}

// plainNode deep-copies node with aliases expanded and flow/quoting styles
// cleared, so YAML output is uniformly block style whatever the input format.
func plainNode(node *yaml.Node) *yaml.Node {
	node = dealias(node)
	if node == nil {
		return nullNode()
	}
	cp := &yaml.Node{
		Kind:  node.Kind,
		Tag:   node.ShortTag(),
		Value: node.Value,
	}
	if node.Kind == yaml.ScalarNode && node.Style&yaml.LiteralStyle != 0 {
		cp.Style = yaml.LiteralStyle
	}
	if len(node.Content) > 0 {
		cp.Content = make([]*yaml.Node, len(node.Content))
		for i, child := range node.Content {
			cp.Content[i] = plainNode(child)
		}
	}
	return cp
}
