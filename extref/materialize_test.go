package extref

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/erraggy/oasrebase"
	"github.com/erraggy/oasrebase/oaserrors"
	"github.com/erraggy/oasrebase/rebase"
	"github.com/erraggy/oasrebase/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commonJSON = `{
  "definitions": {
    "Money": {
      "type": "object",
      "properties": {
        "currency": {"$ref": "#/definitions/Currency"}
      }
    },
    "Currency": {"type": "string", "enum": ["EUR"]}
  }
}`

// newServer serves files from a map of path -> body and counts requests.
func newServer(t *testing.T, files map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func orderDoc(t *testing.T, ref string) *schema.Document {
	t.Helper()
	doc, err := schema.Parse([]byte(`openapi: 3.0.3
components:
  schemas:
    Order:
      type: object
      properties:
        total:
          $ref: '` + ref + `'
        note:
          $ref: '#/components/schemas/Note'
      example:
        total:
          $ref: 'not a reference'
    Note:
      type: string
`))
	require.NoError(t, err)
	return doc
}

func schemaJSON(t *testing.T, doc *schema.Document, name string) string {
	t.Helper()
	s, ok := doc.Schemas.Get(name)
	require.True(t, ok, "schema %s missing", name)
	data, err := s.MarshalJSON()
	require.NoError(t, err)
	return string(data)
}

func TestMaterialize_HTTP(t *testing.T) {
	var userAgent atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent.Store(r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(commonJSON))
	}))
	defer srv.Close()

	doc := orderDoc(t, srv.URL+"/common.json#/definitions/Money")
	before := schemaJSON(t, doc, "Order")

	out, err := Materialize(context.Background(), doc, NewHTTPResolver())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"total": {
				"type": "object",
				"properties": {"currency": {"type": "string", "enum": ["EUR"]}}
			},
			"note": {"$ref": "#/components/schemas/Note"}
		},
		"example": {"total": {"$ref": "not a reference"}}
	}`, schemaJSON(t, out, "Order"))
	assert.Equal(t, []string{"Order", "Note"}, out.Schemas.Keys())
	assert.Equal(t, oasrebase.UserAgent(), userAgent.Load())

	// The input document is untouched.
	assert.Equal(t, before, schemaJSON(t, doc, "Order"))
}

func TestMaterialize_FetchesEachDocumentOnce(t *testing.T) {
	srv, hits := newServer(t, map[string]string{"/common.json": commonJSON})

	doc, err := schema.Parse([]byte(`components:
  schemas:
    A:
      $ref: '` + srv.URL + `/common.json#/definitions/Money'
    B:
      $ref: '` + srv.URL + `/common.json#/definitions/Currency'
`))
	require.NoError(t, err)

	out, err := Materialize(context.Background(), doc, NewHTTPResolver())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "string", "enum": ["EUR"]}`, schemaJSON(t, out, "B"))
	assert.Equal(t, int32(1), hits.Load())
}

func TestMaterialize_RelativeDocumentRef(t *testing.T) {
	srv, _ := newServer(t, map[string]string{
		"/api/money.json":    `{"properties": {"currency": {"$ref": "currency.json#/definitions/Currency"}}}`,
		"/api/currency.json": `{"definitions": {"Currency": {"type": "string"}}}`,
	})

	doc := orderDoc(t, srv.URL+"/api/money.json")
	out, err := Materialize(context.Background(), doc, NewHTTPResolver())
	require.NoError(t, err)
	assert.Contains(t, schemaJSON(t, out, "Order"), `"total":{"properties":{"currency":{"type":"string"}}}`)
}

func TestMaterialize_Errors(t *testing.T) {
	srv, _ := newServer(t, map[string]string{
		"/common.json": commonJSON,
		"/cycle.json":  `{"definitions": {"Node": {"properties": {"next": {"$ref": "#/definitions/Node"}}}}}`,
		"/nested.json": `{"properties": {"money": {"$ref": "common.json#/definitions/Money"}}}`,
		"/list.json":   `[1, 2]`,
	})

	tests := []struct {
		name  string
		ref   string
		opts  []Option
		check func(t *testing.T, err error)
	}{
		{
			name: "not found",
			ref:  srv.URL + "/missing.json",
			check: func(t *testing.T, err error) {
				var refErr *oaserrors.ReferenceError
				require.ErrorAs(t, err, &refErr)
				assert.Equal(t, "http", refErr.RefType)
				assert.Equal(t, http.StatusNotFound, refErr.StatusCode)
			},
		},
		{
			name: "circular",
			ref:  srv.URL + "/cycle.json#/definitions/Node",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, oaserrors.ErrCircularReference)
			},
		},
		{
			name: "depth limit",
			ref:  srv.URL + "/nested.json",
			opts: []Option{WithMaxDepth(1)},
			check: func(t *testing.T, err error) {
				var limitErr *oaserrors.ResourceLimitError
				require.ErrorAs(t, err, &limitErr)
				assert.Equal(t, "ref_depth", limitErr.ResourceType)
			},
		},
		{
			name: "missing fragment target",
			ref:  srv.URL + "/common.json#/definitions/Nope",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, oaserrors.ErrUnresolvableReference)
			},
		},
		{
			name: "fragment is not a pointer",
			ref:  srv.URL + "/common.json#Money",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, oaserrors.ErrInvalidReference)
			},
		},
		{
			name: "document is not a schema",
			ref:  srv.URL + "/list.json",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, oaserrors.ErrReference)
				assert.ErrorIs(t, err, oaserrors.ErrStructure)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Materialize(context.Background(), orderDoc(t, tt.ref), NewHTTPResolver(), tt.opts...)
			require.Error(t, err)
			assert.Nil(t, out)
			tt.check(t, err)
		})
	}
}

func TestMaterialize_NestedWithinDepth(t *testing.T) {
	srv, _ := newServer(t, map[string]string{
		"/common.json": commonJSON,
		"/nested.json": `{"properties": {"money": {"$ref": "common.json#/definitions/Money"}}}`,
	})

	out, err := Materialize(context.Background(), orderDoc(t, srv.URL+"/nested.json"), NewHTTPResolver(), WithMaxDepth(3))
	require.NoError(t, err)
	assert.Contains(t, schemaJSON(t, out, "Order"), `"currency":{"type":"string","enum":["EUR"]}`)
}

func TestMaterialize_ResponseTooLarge(t *testing.T) {
	srv, _ := newServer(t, map[string]string{"/common.json": commonJSON})

	r := NewHTTPResolver()
	r.MaxSize = 16
	_, err := Materialize(context.Background(), orderDoc(t, srv.URL+"/common.json"), r)

	var limitErr *oaserrors.ResourceLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, "file_size", limitErr.ResourceType)
	assert.Equal(t, int64(16), limitErr.Limit)
}

func TestMaterialize_CanceledContext(t *testing.T) {
	srv, hits := newServer(t, map[string]string{"/common.json": commonJSON})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Materialize(ctx, orderDoc(t, srv.URL+"/common.json"), NewHTTPResolver())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, hits.Load())
}

func TestMaterialize_File(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "common.yaml")
	require.NoError(t, os.WriteFile(path, []byte(commonJSON), 0o600))

	ref := "file://" + filepath.ToSlash(path) + "#/definitions/Currency"
	out, err := Materialize(context.Background(), orderDoc(t, ref), NewFileResolver(base))
	require.NoError(t, err)
	assert.Contains(t, schemaJSON(t, out, "Order"), `"total":{"type":"string","enum":["EUR"]}`)
}

func TestFileResolver_PathTraversal(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "schemas")
	require.NoError(t, os.Mkdir(base, 0o700))
	outside := filepath.Join(root, "secret.yaml")
	require.NoError(t, os.WriteFile(outside, []byte("type: string\n"), 0o600))

	_, err := NewFileResolver(base).Resolve(context.Background(), "file://"+filepath.ToSlash(outside))
	var refErr *oaserrors.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.True(t, refErr.IsPathTraversal)
	assert.Equal(t, "file", refErr.RefType)
	assert.ErrorIs(t, err, oaserrors.ErrPathTraversal)
}

func TestFileResolver_Errors(t *testing.T) {
	base := t.TempDir()
	big := filepath.Join(base, "big.yaml")
	require.NoError(t, os.WriteFile(big, []byte(strings.Repeat("# padding\n", 10)), 0o600))

	r := NewFileResolver(base)
	r.MaxSize = 8

	_, err := r.Resolve(context.Background(), "file://"+filepath.ToSlash(big))
	assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)

	_, err = r.Resolve(context.Background(), "file://"+filepath.ToSlash(filepath.Join(base, "missing.yaml")))
	var refErr *oaserrors.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "file", refErr.RefType)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = r.Resolve(context.Background(), "https://example.com/x.json")
	assert.ErrorIs(t, err, oaserrors.ErrInvalidReference)
}

func TestCachingResolver(t *testing.T) {
	var calls atomic.Int32
	next := ResolverFunc(func(_ context.Context, uri string) (*schema.Schema, error) {
		calls.Add(1)
		if strings.HasSuffix(uri, "fail") {
			return nil, errors.New("boom")
		}
		return schema.NewBool(true), nil
	})

	c := NewCachingResolver(next)
	c.MaxDocuments = 2
	ctx := context.Background()

	first, err := c.Resolve(ctx, "https://example.com/a")
	require.NoError(t, err)
	second, err := c.Resolve(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls.Load())

	_, err = c.Resolve(ctx, "https://example.com/fail")
	require.Error(t, err)
	assert.Equal(t, 1, c.Len(), "failures are not cached")

	_, err = c.Resolve(ctx, "https://example.com/b")
	require.NoError(t, err)

	_, err = c.Resolve(ctx, "https://example.com/c")
	var limitErr *oaserrors.ResourceLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, "cached_documents", limitErr.ResourceType)
}

func TestSchemeMux(t *testing.T) {
	var got string
	mux := SchemeMux{
		"https": ResolverFunc(func(_ context.Context, uri string) (*schema.Schema, error) {
			got = uri
			return schema.NewBool(false), nil
		}),
	}

	_, err := mux.Resolve(context.Background(), "https://example.com/a.json")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.json", got)

	_, err = mux.Resolve(context.Background(), "ftp://example.com/a.json")
	assert.ErrorIs(t, err, oaserrors.ErrInvalidReference)
}

func TestMaterialize_SchemaKeywordsAndLiterals(t *testing.T) {
	srv, _ := newServer(t, map[string]string{"/common.json": commonJSON})
	money := srv.URL + "/common.json#/definitions/Money"

	doc, err := schema.Parse([]byte(`components:
  schemas:
    Order:
      dependencies:
        total:
          $ref: '` + money + `'
      properties:
        default:
          $ref: '` + money + `'
      default:
        $ref: '` + money + `'
`))
	require.NoError(t, err)

	out, err := Materialize(context.Background(), doc, NewHTTPResolver())
	require.NoError(t, err)

	order, ok := out.Schemas.Get("Order")
	require.True(t, ok)
	dep, ok := order.Dependencies.Get("total")
	require.True(t, ok)
	assert.Empty(t, dep.Ref)
	prop, ok := order.Properties.Get("default")
	require.True(t, ok)
	assert.Empty(t, prop.Ref)

	// Schema defaults are data and keep the URL.
	assert.Contains(t, schemaJSON(t, out, "Order"), `"default":{"$ref":"`+money+`"}`)
}

func TestMaterialize_NoExternalRefs(t *testing.T) {
	doc := orderDoc(t, "#/components/schemas/Note")
	out, err := Materialize(context.Background(), doc, ResolverFunc(func(context.Context, string) (*schema.Schema, error) {
		t.Fatal("resolver must not be called")
		return nil, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, schemaJSON(t, doc, "Order"), schemaJSON(t, out, "Order"))
	assert.NotSame(t, doc, out)
}

func TestMaterialize_InvalidInput(t *testing.T) {
	doc := orderDoc(t, "#/components/schemas/Note")
	ctx := context.Background()

	_, err := Materialize(ctx, nil, NewHTTPResolver())
	assert.Error(t, err)

	_, err = Materialize(ctx, doc, nil)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	_, err = Materialize(ctx, doc, NewHTTPResolver(), WithMaxDepth(0))
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
	assert.Contains(t, err.Error(), "extref: invalid options")
}

func TestMaterialize_ThenRebase(t *testing.T) {
	srv, _ := newServer(t, map[string]string{
		"/shared.json": `{"type": "object", "definitions": {"id": {"type": "string"}}, "properties": {"id": {"$ref": "#/definitions/id"}}}`,
	})

	doc, err := schema.Parse([]byte(`openapi: 3.0.3
components:
  schemas:
    account:
      properties:
        owner:
          $ref: '` + srv.URL + `/shared.json'
        plan:
          $ref: '#/definitions/plan'
      definitions:
        plan:
          type: string
`))
	require.NoError(t, err)

	local, err := Materialize(context.Background(), doc, NewCachingResolver(NewHTTPResolver()),
		WithLogger(schema.NopLogger{}))
	require.NoError(t, err)

	flat, err := rebase.Definitions(local)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "plan", "account"}, flat.Schemas.Keys())
	assert.Empty(t, rebase.CheckReferences(flat))
}
