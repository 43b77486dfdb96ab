package extref

import (
	"context"
	"net/url"

	"github.com/erraggy/oasrebase/oaserrors"
	"github.com/erraggy/oasrebase/schema"
)

const (
	// MaxRefDepth is the maximum depth of nested external references.
	MaxRefDepth = 100
	// MaxCachedDocuments is the maximum number of documents a CachingResolver keeps.
	MaxCachedDocuments = 100
	// MaxFileSize is the maximum size (in bytes) of a fetched document.
	MaxFileSize = 10 * 1024 * 1024 // 10MB
)

// Resolver loads the document at an absolute URI. The URI never carries a
// fragment; Materialize applies fragments itself.
//
// Implementations must return a schema the caller may read but not mutate,
// so cached documents can be shared.
type Resolver interface {
	Resolve(ctx context.Context, uri string) (*schema.Schema, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(ctx context.Context, uri string) (*schema.Schema, error)

// Resolve calls f(ctx, uri).
func (f ResolverFunc) Resolve(ctx context.Context, uri string) (*schema.Schema, error) {
	return f(ctx, uri)
}

// SchemeMux dispatches to a Resolver by URI scheme ("http", "https", "file").
type SchemeMux map[string]Resolver

// Resolve implements Resolver.
func (m SchemeMux) Resolve(ctx context.Context, uri string) (*schema.Schema, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: uri, RefType: refType(uri), IsInvalid: true, Cause: err}
	}
	r, ok := m[u.Scheme]
	if !ok {
		return nil, &oaserrors.ReferenceError{
			Ref:       uri,
			RefType:   refType(uri),
			IsInvalid: true,
			Message:   "no resolver for scheme " + u.Scheme,
		}
	}
	return r.Resolve(ctx, uri)
}

// refType classifies a URI the way ReferenceError.RefType expects.
func refType(uri string) string {
	if u, err := url.Parse(uri); err == nil && u.Scheme == "file" {
		return "file"
	}
	return "http"
}

var (
	_ Resolver = ResolverFunc(nil)
	_ Resolver = SchemeMux(nil)
	_ Resolver = (*HTTPResolver)(nil)
	_ Resolver = (*FileResolver)(nil)
	_ Resolver = (*CachingResolver)(nil)
)
