package schema

import "go.yaml.in/yaml/v4"

// Clone returns a deep copy of s. Raw keyword nodes are copied too, so the
// result shares no mutable state with s.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	cp := &Schema{
		Ref:                   s.Ref,
		Definitions:           s.Definitions.Clone(),
		Defs:                  s.Defs.Clone(),
		Properties:            s.Properties.Clone(),
		PatternProperties:     s.PatternProperties.Clone(),
		DependentSchemas:      s.DependentSchemas.Clone(),
		Dependencies:          s.Dependencies.Clone(),
		Items:                 s.Items.Clone(),
		ItemsTuple:            cloneList(s.ItemsTuple),
		PrefixItems:           cloneList(s.PrefixItems),
		AdditionalItems:       s.AdditionalItems.Clone(),
		Contains:              s.Contains.Clone(),
		UnevaluatedItems:      s.UnevaluatedItems.Clone(),
		AdditionalProperties:  s.AdditionalProperties.Clone(),
		PropertyNames:         s.PropertyNames.Clone(),
		ContentSchema:         s.ContentSchema.Clone(),
		AllOf:                 cloneList(s.AllOf),
		AnyOf:                 cloneList(s.AnyOf),
		OneOf:                 cloneList(s.OneOf),
		Not:                   s.Not.Clone(),
		If:                    s.If.Clone(),
		Then:                  s.Then.Clone(),
		Else:                  s.Else.Clone(),
		UnevaluatedProperties: s.UnevaluatedProperties.Clone(),
	}
	if s.Bool != nil {
		b := *s.Bool
		cp.Bool = &b
	}
	cp.Keywords = cloneKeywords(s.Keywords)
	cp.DependencyLists = cloneKeywords(s.DependencyLists)
	if s.order != nil {
		cp.order = append([]string(nil), s.order...)
	}
	if s.depOrder != nil {
		cp.depOrder = append([]string(nil), s.depOrder...)
	}
	return cp
}

func cloneKeywords(kws []Keyword) []Keyword {
	if kws == nil {
		return nil
	}
	out := make([]Keyword, len(kws))
	for i, kw := range kws {
		out[i] = Keyword{Name: kw.Name, Value: CloneNode(kw.Value)}
	}
	return out
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	cp := NewMap()
	for name, s := range m.All() {
		cp.Set(name, s.Clone())
	}
	return cp
}

func cloneList(list []*Schema) []*Schema {
	if list == nil {
		return nil
	}
	out := make([]*Schema, len(list))
	for i, s := range list {
		out[i] = s.Clone()
	}
	return out
}

// CloneNode deep-copies a YAML node tree, expanding aliases.
func CloneNode(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		cp := CloneNode(node.Alias)
		cp.Anchor = ""
		return cp
	}
	cp := *node
	if node.Content != nil {
		cp.Content = make([]*yaml.Node, len(node.Content))
		for i, child := range node.Content {
			cp.Content[i] = CloneNode(child)
		}
	}
	return &cp
}

// Copy returns a shallow copy of s. Sub-schemas and raw keyword nodes are
// shared with s; the keyword list itself is not.
func (s *Schema) Copy() *Schema {
	if s == nil {
		return nil
	}
	cp := *s
	if s.Keywords != nil {
		cp.Keywords = append([]Keyword(nil), s.Keywords...)
	}
	if s.DependencyLists != nil {
		cp.DependencyLists = append([]Keyword(nil), s.DependencyLists...)
	}
	if s.order != nil {
		cp.order = append([]string(nil), s.order...)
	}
	return &cp
}
