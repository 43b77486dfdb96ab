package rebase

import (
	"testing"

	"github.com/erraggy/oasrebase/oaserrors"
	"github.com/erraggy/oasrebase/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointer(t *testing.T) {
	tests := []struct {
		name    string
		context string
		ref     string
		want    string
	}{
		{
			name:    "relative definitions",
			context: "my_schema",
			ref:     "#/definitions/a",
			want:    "#/components/schemas/my_schema/definitions/a",
		},
		{
			name:    "named properties",
			context: "x",
			ref:     "global#/properties/a",
			want:    "#/components/schemas/global/properties/a",
		},
		{
			name:    "absolute URL unchanged",
			context: "x",
			ref:     "https://example.com",
			want:    "https://example.com",
		},
		{
			name:    "absolute URL with fragment unchanged",
			context: "x",
			ref:     "https://example.com/s.json#/definitions/a",
			want:    "https://example.com/s.json#/definitions/a",
		},
		{
			name:    "named definitions",
			context: "x",
			ref:     "global#/definitions/s",
			want:    "#/components/schemas/global/definitions/s",
		},
		{
			name:    "bare name",
			context: "x",
			ref:     "global",
			want:    "#/components/schemas/global",
		},
		{
			name:    "name with empty fragment",
			context: "x",
			ref:     "global#",
			want:    "#/components/schemas/global",
		},
		{
			name:    "relative properties",
			context: "ctx",
			ref:     "#/properties/a",
			want:    "#/components/schemas/ctx/properties/a",
		},
		{
			name:    "root of context",
			context: "ctx",
			ref:     "#",
			want:    "#/components/schemas/ctx",
		},
		{
			name:    "other relative pointer",
			context: "ctx",
			ref:     "#/items/0",
			want:    "#/components/schemas/ctx/items/0",
		},
		{
			name:    "already canonical",
			context: "x",
			ref:     "#/components/schemas/y/properties/z",
			want:    "#/components/schemas/y/properties/z",
		},
		{
			name:    "other component section",
			context: "x",
			ref:     "#/components/parameters/limit",
			want:    "#/components/parameters/limit",
		},
		{
			name:    "name is escaped",
			context: "x",
			ref:     "a/b~c#/definitions/d",
			want:    "#/components/schemas/a~1b~0c/definitions/d",
		},
		{
			name:    "context is escaped",
			context: "a/b",
			ref:     "#/definitions/d",
			want:    "#/components/schemas/a~1b/definitions/d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pointer(tt.context, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := Pointer(tt.context, got)
			require.NoError(t, err)
			assert.Equal(t, got, again, "canonical output must be stable")
		})
	}
}

func TestPointer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		context string
		ref     string
	}{
		{name: "empty ref", context: "x", ref: ""},
		{name: "relative without context", context: "", ref: "#/definitions/a"},
		{name: "root without context", context: "", ref: "#"},
		{name: "fragment without slash", context: "x", ref: "#definitions/a"},
		{name: "named fragment without slash", context: "x", ref: "global#foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pointer(tt.context, tt.ref)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrInvalidReference)
			assert.ErrorIs(t, err, oaserrors.ErrReference)
		})
	}
}

func TestRebasePointer(t *testing.T) {
	node := &schema.Schema{Ref: "#/definitions/a"}
	node.SetKeyword("description", nil)

	got, err := RebasePointer("my_schema", node)
	require.NoError(t, err)
	assert.Equal(t, "#/components/schemas/my_schema/definitions/a", got.Ref)
	assert.Len(t, got.Keywords, 1)

	// The input is untouched.
	assert.Equal(t, "#/definitions/a", node.Ref)

	got, err = RebasePointer("x", &schema.Schema{Ref: "global#/properties/a"})
	require.NoError(t, err)
	assert.Equal(t, "#/components/schemas/global/properties/a", got.Ref)

	got, err = RebasePointer("x", &schema.Schema{Ref: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got.Ref)
}

func TestRebasePointer_Errors(t *testing.T) {
	_, err := RebasePointer("x", nil)
	assert.ErrorIs(t, err, oaserrors.ErrStructure)

	_, err = RebasePointer("x", &schema.Schema{})
	assert.ErrorIs(t, err, oaserrors.ErrInvalidReference)
}
