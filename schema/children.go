package schema

import (
	"iter"
	"strconv"
)

// Keys returns the keywords s carries, in emission order: source order first,
// then typed keywords set afterwards, then raw keywords added afterwards.
func (s *Schema) Keys() []string {
	if s == nil || s.Bool != nil {
		return nil
	}
	keys := make([]string, 0, len(s.order)+len(s.Keywords))
	seen := make(map[string]bool, cap(keys))
	add := func(key string) {
		if seen[key] || !s.has(key) {
			return
		}
		seen[key] = true
		keys = append(keys, key)
	}
	for _, key := range s.order {
		add(key)
	}
	for _, key := range typedKeys {
		add(key)
	}
	for _, kw := range s.Keywords {
		add(kw.Name)
	}
	return keys
}

// has reports whether s currently carries key, typed or raw.
func (s *Schema) has(key string) bool {
	if s.hasTyped(key) {
		return true
	}
	_, ok := s.Keyword(key)
	return ok
}

// Children yields every direct sub-schema of s with the JSON-pointer tokens
// leading to it: [keyword] for single schemas, [keyword, name] for mappings
// and [keyword, index] for sequences. Order follows [Schema.Keys].
//
// Nil entries are yielded as-is so callers can report them.
func (s *Schema) Children() iter.Seq2[[]string, *Schema] {
	return func(yield func([]string, *Schema) bool) {
		for _, key := range s.Keys() {
			if !s.hasTyped(key) {
				continue
			}
			if !s.yieldChildren(key, yield) {
				return
			}
		}
	}
}

func (s *Schema) yieldChildren(key string, yield func([]string, *Schema) bool) bool {
	named := func(m *Map) bool {
		for name, child := range m.All() {
			if !yield([]string{key, name}, child) {
				return false
			}
		}
		return true
	}
	indexed := func(list []*Schema) bool {
		for i, child := range list {
			if !yield([]string{key, strconv.Itoa(i)}, child) {
				return false
			}
		}
		return true
	}

	switch key {
	case KeyDefinitions:
		return named(s.Definitions)
	case KeyDefs:
		return named(s.Defs)
	case KeyProperties:
		return named(s.Properties)
	case KeyPatternProperties:
		return named(s.PatternProperties)
	case KeyDependentSchemas:
		return named(s.DependentSchemas)
	case KeyDependencies:
		return named(s.Dependencies)
	case KeyItems:
		if s.ItemsTuple != nil {
			return indexed(s.ItemsTuple)
		}
		return yield([]string{key}, s.Items)
	case KeyPrefixItems:
		return indexed(s.PrefixItems)
	case KeyAllOf:
		return indexed(s.AllOf)
	case KeyAnyOf:
		return indexed(s.AnyOf)
	case KeyOneOf:
		return indexed(s.OneOf)
	case KeyAdditionalProperties:
		return yield([]string{key}, s.AdditionalProperties)
	case KeyAdditionalItems:
		return yield([]string{key}, s.AdditionalItems)
	case KeyPropertyNames:
		return yield([]string{key}, s.PropertyNames)
	case KeyContains:
		return yield([]string{key}, s.Contains)
	case KeyUnevaluatedItems:
		return yield([]string{key}, s.UnevaluatedItems)
	case KeyUnevaluatedProperties:
		return yield([]string{key}, s.UnevaluatedProperties)
	case KeyContentSchema:
		return yield([]string{key}, s.ContentSchema)
	case KeyNot:
		return yield([]string{key}, s.Not)
	case KeyIf:
		return yield([]string{key}, s.If)
	case KeyThen:
		return yield([]string{key}, s.Then)
	case KeyElse:
		return yield([]string{key}, s.Else)
	}
	return true
}

// Child returns the sub-schema addressed by the given pointer tokens,
// following typed keywords only. It returns false when the tokens leave the
// schema model (for example into a raw keyword) or name a missing entry.
func (s *Schema) Child(tokens ...string) (*Schema, []string, bool) {
	cur := s
	for len(tokens) > 0 {
		if cur == nil || cur.Bool != nil {
			return nil, tokens, false
		}
		key := tokens[0]
		var next *Schema
		consumed := 1
		switch key {
		case KeyDefinitions, KeyDefs, KeyProperties, KeyPatternProperties, KeyDependentSchemas, KeyDependencies:
			if len(tokens) < 2 {
				return cur, tokens, false
			}
			next, _ = cur.namedMap(key).Get(tokens[1])
			consumed = 2
		case KeyItems:
			if cur.ItemsTuple != nil {
				if len(tokens) < 2 {
					return cur, tokens, false
				}
				next = index(cur.ItemsTuple, tokens[1])
				consumed = 2
			} else {
				next = cur.Items
			}
		case KeyPrefixItems, KeyAllOf, KeyAnyOf, KeyOneOf:
			if len(tokens) < 2 {
				return cur, tokens, false
			}
			next = index(cur.indexedList(key), tokens[1])
			consumed = 2
		case KeyAdditionalProperties:
			next = cur.AdditionalProperties
		case KeyAdditionalItems:
			next = cur.AdditionalItems
		case KeyPropertyNames:
			next = cur.PropertyNames
		case KeyContains:
			next = cur.Contains
		case KeyUnevaluatedItems:
			next = cur.UnevaluatedItems
		case KeyUnevaluatedProperties:
			next = cur.UnevaluatedProperties
		case KeyContentSchema:
			next = cur.ContentSchema
		case KeyNot:
			next = cur.Not
		case KeyIf:
			next = cur.If
		case KeyThen:
			next = cur.Then
		case KeyElse:
			next = cur.Else
		default:
			return cur, tokens, false
		}
		if next == nil {
			return nil, tokens, false
		}
		cur = next
		tokens = tokens[consumed:]
	}
	return cur, nil, true
}

func (s *Schema) namedMap(key string) *Map {
	switch key {
	case KeyDefinitions:
		return s.Definitions
	case KeyDefs:
		return s.Defs
	case KeyProperties:
		return s.Properties
	case KeyPatternProperties:
		return s.PatternProperties
	case KeyDependentSchemas:
		return s.DependentSchemas
	case KeyDependencies:
		return s.Dependencies
	}
	return nil
}

func (s *Schema) indexedList(key string) []*Schema {
	switch key {
	case KeyPrefixItems:
		return s.PrefixItems
	case KeyAllOf:
		return s.AllOf
	case KeyAnyOf:
		return s.AnyOf
	case KeyOneOf:
		return s.OneOf
	}
	return nil
}

func index(list []*Schema, token string) *Schema {
	i, err := strconv.Atoi(token)
	if err != nil || i < 0 || i >= len(list) {
		return nil
	}
	return list[i]
}
