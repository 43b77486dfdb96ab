package extref

import (
	"context"
	"sync"

	"github.com/erraggy/oasrebase/oaserrors"
	"github.com/erraggy/oasrebase/schema"
)

// CachingResolver remembers parsed documents by URI. Failed lookups are not
// cached. It is safe for concurrent use.
type CachingResolver struct {
	next Resolver

	// MaxDocuments bounds the cache. Defaults to MaxCachedDocuments.
	MaxDocuments int

	mu   sync.Mutex
	docs map[string]*schema.Schema
}

// NewCachingResolver wraps next with a document cache.
func NewCachingResolver(next Resolver) *CachingResolver {
	return &CachingResolver{
		next:         next,
		MaxDocuments: MaxCachedDocuments,
		docs:         make(map[string]*schema.Schema),
	}
}

// Resolve returns the cached document for uri, loading it on first use.
func (c *CachingResolver) Resolve(ctx context.Context, uri string) (*schema.Schema, error) {
	c.mu.Lock()
	if s, ok := c.docs[uri]; ok {
		c.mu.Unlock()
		return s, nil
	}
	limit := c.MaxDocuments
	if limit <= 0 {
		limit = MaxCachedDocuments
	}
	if len(c.docs) >= limit {
		n := len(c.docs)
		c.mu.Unlock()
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "cached_documents",
			Limit:        int64(limit),
			Actual:       int64(n),
			Message:      "too many external references",
		}
	}
	c.mu.Unlock()

	// Loading happens outside the lock; concurrent first loads of the same
	// URI may both fetch, and the first stored result wins.
	s, err := c.next.Resolve(ctx, uri)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.docs[uri]; ok {
		return cached, nil
	}
	if c.docs == nil {
		c.docs = make(map[string]*schema.Schema)
	}
	c.docs[uri] = s
	return s, nil
}

// Len returns the number of cached documents.
func (c *CachingResolver) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}
