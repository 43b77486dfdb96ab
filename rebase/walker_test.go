package rebase

import (
	"errors"
	"testing"

	"github.com/erraggy/oasrebase/oaserrors"
	"github.com/erraggy/oasrebase/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_PreOrder(t *testing.T) {
	doc := mustParse(t, `components:
  schemas:
    r1:
      definitions:
        a:
          definitions:
            a1: {}
            a2:
              definitions:
                a2x: {}
        b: {}
    r2:
      properties:
        p:
          $ref: '#/definitions/c'
          definitions:
            c: {}
`)
	walked, err := Walk(doc.Schemas)
	require.NoError(t, err)

	var got []string
	for _, def := range walked.Definitions {
		got = append(got, def.Path.String())
	}
	assert.Equal(t, []string{
		"r1/definitions/a",
		"r1/definitions/a/definitions/a1",
		"r1/definitions/a/definitions/a2",
		"r1/definitions/a/definitions/a2/definitions/a2x",
		"r1/definitions/b",
		"r2/properties/p/definitions/c",
	}, got)

	deep := walked.Definitions[3]
	assert.Equal(t, []string{"r1", "a", "a2", "a2x"}, deep.Path.Names)
	assert.Equal(t, "r1", deep.Path.Root())
	assert.Equal(t, "a2x", deep.Path.Leaf())
	assert.Equal(t, "#/components/schemas/r1/definitions/a/definitions/a2/definitions/a2x", deep.Path.Pointer())

	nested := walked.Definitions[5]
	assert.Equal(t, []string{"r2", "c"}, nested.Path.Names)

	require.Len(t, walked.Refs, 1)
	assert.Equal(t, "r2", walked.Refs[0].Root)
	assert.Equal(t, "#/definitions/c", walked.Refs[0].Ref)
	assert.Equal(t, "/components/schemas/r2/properties/p", walked.Refs[0].Pointer())
}

func TestWalk_NilSchema(t *testing.T) {
	tests := []struct {
		name  string
		build func() *schema.Map
		path  string
	}{
		{
			name: "top-level entry",
			build: func() *schema.Map {
				m := schema.NewMap()
				m.Set("a", nil)
				return m
			},
			path: "/components/schemas/a",
		},
		{
			name: "allOf member",
			build: func() *schema.Map {
				m := schema.NewMap()
				m.Set("a", &schema.Schema{AllOf: []*schema.Schema{{}, nil}})
				return m
			},
			path: "/components/schemas/a/allOf/1",
		},
		{
			name: "nested definition with escaped name",
			build: func() *schema.Map {
				defs := schema.NewMap()
				defs.Set("x/y", nil)
				m := schema.NewMap()
				m.Set("a", &schema.Schema{Definitions: defs})
				return m
			},
			path: "/components/schemas/a/definitions/x~1y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walked, err := Walk(tt.build())
			require.Error(t, err)
			assert.Nil(t, walked)

			var se *oaserrors.StructuralError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.path, se.Path)
		})
	}
}

func TestWalk_Empty(t *testing.T) {
	walked, err := Walk(nil)
	require.NoError(t, err)
	assert.Empty(t, walked.Definitions)
	assert.Empty(t, walked.Refs)
}

func TestLastDefinitionsPair(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		start  int
		want   int
	}{
		{"none", []string{"a", "properties", "b"}, 1, -1},
		{"single", []string{"a", "definitions", "b"}, 1, 1},
		{"last of two", []string{"a", "definitions", "b", "definitions", "c", "properties", "x"}, 1, 3},
		{"property named definitions", []string{"a", "properties", "definitions"}, 1, -1},
		{"definitions without name", []string{"a", "definitions"}, 1, -1},
		{"tuple items", []string{"a", "items", "0", "definitions", "c"}, 1, 3},
		{"document level", []string{"definitions", "b"}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lastDefinitionsPair(tt.tokens, tt.start))
		})
	}
}
