package extref

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/erraggy/oasrebase"
	"github.com/erraggy/oasrebase/oaserrors"
	"github.com/erraggy/oasrebase/schema"
)

// HTTPResolver fetches documents over http and https.
type HTTPResolver struct {
	// Client performs the requests. Defaults to a client with a 30 second timeout.
	Client *http.Client
	// UserAgent is sent with every request. Defaults to oasrebase.UserAgent().
	UserAgent string
	// MaxSize is the largest accepted response body in bytes. Defaults to MaxFileSize.
	MaxSize int64
}

// NewHTTPResolver returns an HTTPResolver with default settings.
func NewHTTPResolver() *HTTPResolver {
	return &HTTPResolver{
		Client:  &http.Client{Timeout: 30 * time.Second},
		MaxSize: MaxFileSize,
	}
}

// Resolve fetches and parses the document at uri.
func (r *HTTPResolver) Resolve(ctx context.Context, uri string) (*schema.Schema, error) {
	data, err := r.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}
	s, err := schema.ParseSchema(data)
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: uri, RefType: "http", Message: "failed to parse response", Cause: err}
	}
	return s, nil
}

// Fetch returns the raw body at uri, enforcing the status check and size limit.
func (r *HTTPResolver) Fetch(ctx context.Context, uri string) ([]byte, error) {
	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	maxSize := r.MaxSize
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: uri, RefType: "http", IsInvalid: true, Cause: err}
	}
	userAgent := r.UserAgent
	if userAgent == "" {
		userAgent = oasrebase.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req) //nolint:gosec // URL comes from the document being materialized
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: uri, RefType: "http", Message: "failed to fetch", Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &oaserrors.ReferenceError{
			Ref:        uri,
			RefType:    "http",
			StatusCode: resp.StatusCode,
			Message:    "unexpected status",
		}
	}

	// Read one byte past the limit to tell "exactly at" from "over".
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: uri, RefType: "http", Message: "failed to read response", Cause: err}
	}
	if int64(len(data)) > maxSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        maxSize,
			Message:      fmt.Sprintf("response from %s is too large", uri),
		}
	}
	return data, nil
}
