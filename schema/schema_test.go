package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/erraggy/oasrebase/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreYAML = `openapi: 3.0.3
info:
  title: Pets
  version: "1.0"
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
components:
  responses:
    NotFound:
      description: missing
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name:
          type: string
        tag:
          $ref: '#/components/schemas/Pet/definitions/Tag'
      definitions:
        Tag:
          type: string
          enum: [a, b]
    Empty: {}
    Anything: true
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(petstoreYAML))
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", doc.OpenAPI())
	assert.Equal(t, []string{"Pet", "Empty", "Anything"}, doc.Schemas.Keys())

	pet, ok := doc.Schemas.Get("Pet")
	require.True(t, ok)
	assert.Equal(t, []string{"name", "tag"}, pet.Properties.Keys())
	tag, ok := pet.Properties.Get("tag")
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/Pet/definitions/Tag", tag.Ref)
	assert.Equal(t, 1, pet.Definitions.Len())

	typ, ok := pet.Keyword("type")
	require.True(t, ok)
	assert.Equal(t, "object", typ.Value)

	empty, _ := doc.Schemas.Get("Empty")
	assert.True(t, empty.IsEmpty())

	anything, _ := doc.Schemas.Get("Anything")
	assert.True(t, anything.IsBool())
	assert.True(t, *anything.Bool)

	_, ok = doc.Component("responses")
	assert.True(t, ok)
	_, ok = doc.Field(FieldPaths)
	assert.True(t, ok)
}

func TestParse_JSON(t *testing.T) {
	doc, err := Parse([]byte(`{"openapi":"3.1.0","components":{"schemas":{"b":{"type":"integer","maximum":1.50},"a":{}}}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, doc.Schemas.Keys())

	out, err := doc.MarshalOrderedJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"openapi":"3.1.0","components":{"schemas":{"b":{"type":"integer","maximum":1.50},"a":{}}}}`, string(out))
}

func TestParse_StructuralErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		path  string
		found string
	}{
		{
			name:  "null schema entry",
			input: "components:\n  schemas:\n    a: null\n",
			path:  "/components/schemas/a",
			found: "null",
		},
		{
			name:  "string nested definition",
			input: "components:\n  schemas:\n    a:\n      definitions:\n        b: hello\n",
			path:  "/components/schemas/a/definitions/b",
			found: "string",
		},
		{
			name:  "definitions not a mapping",
			input: "components:\n  schemas:\n    a:\n      definitions: [1]\n",
			path:  "/components/schemas/a/definitions",
			found: "array",
		},
		{
			name:  "allOf member is a number",
			input: "components:\n  schemas:\n    a:\n      allOf:\n        - {}\n        - 3\n",
			path:  "/components/schemas/a/allOf/1",
			found: "number",
		},
		{
			name:  "escaped name in path",
			input: "components:\n  schemas:\n    a/b:\n      properties:\n        c~d: null\n",
			path:  "/components/schemas/a~1b/properties/c~0d",
			found: "null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrStructure)

			var se *oaserrors.StructuralError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.path, se.Path)
			assert.Equal(t, tt.found, se.Found)
		})
	}
}

func TestParse_InvalidInput(t *testing.T) {
	_, err := Parse([]byte("a: [unclosed"))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrParse)

	_, err = Parse([]byte("- just\n- a list\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrStructure)
}

func TestParse_MalformedRefKept(t *testing.T) {
	doc, err := Parse([]byte("components:\n  schemas:\n    a:\n      $ref: 42\n"))
	require.NoError(t, err)

	a, _ := doc.Schemas.Get("a")
	assert.Empty(t, a.Ref)
	_, ok := a.Keyword(KeyRef)
	assert.True(t, ok)

	out, err := doc.MarshalOrderedJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"components":{"schemas":{"a":{"$ref":42}}}}`, string(out))
}

func TestEncode_KeepsOrder(t *testing.T) {
	doc, err := Parse([]byte(petstoreYAML))
	require.NoError(t, err)

	out, err := doc.MarshalOrderedJSON()
	require.NoError(t, err)

	again, err := Parse(out)
	require.NoError(t, err)
	out2, err := again.MarshalOrderedJSON()
	require.NoError(t, err)
	assert.Equal(t, string(out), string(out2))

	// Keys come out in source order, not sorted.
	assert.Less(t, strings.Index(string(out), `"openapi"`), strings.Index(string(out), `"info"`))
	assert.Less(t, strings.Index(string(out), `"responses":{"NotFound"`), strings.Index(string(out), `"schemas"`))
	assert.Less(t, strings.Index(string(out), `"Pet"`), strings.Index(string(out), `"Empty"`))
	assert.Less(t, strings.Index(string(out), `"properties"`), strings.Index(string(out), `"definitions"`))
}

func TestEncode_YAMLRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(petstoreYAML))
	require.NoError(t, err)

	data, err := doc.MarshalOrderedYAML()
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)

	want, err := doc.MarshalOrderedJSON()
	require.NoError(t, err)
	got, err := again.MarshalOrderedJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestEncode_TypedFieldsSetProgrammatically(t *testing.T) {
	s := &Schema{}
	s.SetKeyword("type", scalarNode("!!str", "object"))
	s.Properties = NewMap()
	s.Properties.Set("id", &Schema{Ref: "#/components/schemas/Id"})
	s.AllOf = []*Schema{NewBool(false)}

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"properties":{"id":{"$ref":"#/components/schemas/Id"}},"allOf":[false],"type":"object"}`, string(out))
}

func TestEncode_DroppedTypedFieldIsOmitted(t *testing.T) {
	doc, err := Parse([]byte("components:\n  schemas:\n    a:\n      definitions:\n        b: {}\n      type: string\n"))
	require.NoError(t, err)

	a, _ := doc.Schemas.Get("a")
	a.Definitions = nil

	out, err := a.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"type":"string"}`, string(out))
}

func TestEncode_EmptyCollectionsSurvive(t *testing.T) {
	s, err := ParseSchema([]byte(`{"properties":{},"allOf":[],"items":[]}`))
	require.NoError(t, err)

	out, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"properties":{},"allOf":[],"items":[]}`, string(out))
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("3.1.0")
	doc.Schemas.Set("a", &Schema{})

	out, err := doc.MarshalOrderedJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"openapi":"3.1.0","components":{"schemas":{"a":{}}}}`, string(out))
}

func TestDocument_SetSchemasAddsSections(t *testing.T) {
	doc, err := Parse([]byte("openapi: 3.0.0\ninfo:\n  title: t\n"))
	require.NoError(t, err)
	assert.Nil(t, doc.Schemas)

	m := NewMap()
	m.Set("x", NewBool(true))
	doc.SetSchemas(m)

	out, err := doc.MarshalOrderedJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"openapi":"3.0.0","info":{"title":"t"},"components":{"schemas":{"x":true}}}`, string(out))
}

func TestClone_Independent(t *testing.T) {
	doc, err := Parse([]byte(petstoreYAML))
	require.NoError(t, err)
	before, err := doc.MarshalOrderedJSON()
	require.NoError(t, err)

	cp := doc.Clone()
	pet, _ := cp.Schemas.Get("Pet")
	pet.Definitions = nil
	name, _ := pet.Properties.Get("name")
	typ, _ := name.Keyword("type")
	typ.Value = "integer"
	cp.Schemas.Set("Extra", &Schema{})

	after, err := doc.MarshalOrderedJSON()
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestMap(t *testing.T) {
	var nilMap *Map
	assert.Equal(t, 0, nilMap.Len())
	assert.False(t, nilMap.Has("a"))
	assert.Empty(t, nilMap.Keys())

	m := NewMap()
	m.Set("b", &Schema{})
	m.Set("a", &Schema{})
	m.Set("b", NewBool(true))

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"b", "a"}, m.Keys())
	b, ok := m.Get("b")
	require.True(t, ok)
	assert.True(t, b.IsBool())
}

func TestNodeToJSON_Numbers(t *testing.T) {
	s, err := ParseSchema([]byte("minimum: 0x1F\nmaximum: 1e3\nmultipleOf: 0.5\n"))
	require.NoError(t, err)

	out, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"minimum":31,"maximum":1e3,"multipleOf":0.5}`, string(out))
}

func TestNodeToJSON_Infinity(t *testing.T) {
	s, err := ParseSchema([]byte("maximum: .inf\n"))
	require.NoError(t, err)

	_, err = s.MarshalJSON()
	assert.Error(t, err)
}
