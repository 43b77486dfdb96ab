package schema

import (
	"iter"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// Map is an insertion-ordered name -> *Schema mapping, used for
// `definitions`, `properties`, and the `components.schemas` registry.
//
// The zero value is not usable; create one with [NewMap]. A nil *Map is a
// valid empty map for reads.
type Map struct {
	m   *sequencedmap.Map[string, *Schema]
	len int
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{m: sequencedmap.New[string, *Schema]()}
}

// Set stores s under name. A new name is appended; an existing name keeps
// its position.
func (m *Map) Set(name string, s *Schema) {
	if _, exists := m.m.Get(name); !exists {
		m.len++
	}
	m.m.Set(name, s)
}

// Get returns the schema stored under name.
func (m *Map) Get(name string) (*Schema, bool) {
	if m == nil {
		return nil, false
	}
	return m.m.Get(name)
}

// Has reports whether name is present.
func (m *Map) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return m.len
}

// All iterates entries in insertion order.
func (m *Map) All() iter.Seq2[string, *Schema] {
	return func(yield func(string, *Schema) bool) {
		if m == nil {
			return
		}
		for name, s := range m.m.All() {
			if !yield(name, s) {
				return
			}
		}
	}
}

// Keys returns the names in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	for name := range m.All() {
		keys = append(keys, name)
	}
	return keys
}
