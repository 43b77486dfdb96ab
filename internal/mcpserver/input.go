package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/oasrebase/extref"
	"github.com/erraggy/oasrebase/internal/options"
	"github.com/erraggy/oasrebase/schema"
)

// specInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a YAML or JSON document on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch the document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// load parses the document from whichever input was provided.
func (s specInput) load(ctx context.Context) (*schema.Document, error) {
	if err := options.ExactlyOne(
		options.Source{Name: "file", Set: s.File != ""},
		options.Source{Name: "url", Set: s.URL != ""},
		options.Source{Name: "content", Set: s.Content != ""},
	); err != nil {
		return nil, err
	}

	switch {
	case s.File != "":
		return schema.ParseFile(s.File)
	case s.URL != "":
		r := &extref.HTTPResolver{Client: newHTTPClient(), MaxSize: cfg.MaxInlineSize}
		data, err := r.Fetch(ctx, s.URL)
		if err != nil {
			return nil, err
		}
		return schema.Parse(data)
	default:
		if int64(len(s.Content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASREBASE_MAX_INLINE_SIZE to increase",
				len(s.Content), cfg.MaxInlineSize)
		}
		return schema.Parse([]byte(s.Content))
	}
}

// baseDir is the directory file:// references are confined to.
func (s specInput) baseDir() string {
	if s.File != "" {
		return filepath.Dir(s.File)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// newResolver builds the external reference resolver for one tool call.
func newResolver(baseDir string) extref.Resolver {
	web := extref.NewCachingResolver(&extref.HTTPResolver{
		Client:  newHTTPClient(),
		MaxSize: extref.MaxFileSize,
	})
	return extref.SchemeMux{
		"http":  web,
		"https": web,
		"file":  extref.NewFileResolver(baseDir),
	}
}

// materialize inlines absolute-URL references when requested.
func (s specInput) materialize(ctx context.Context, doc *schema.Document, enabled bool) (*schema.Document, error) {
	if !enabled {
		return doc, nil
	}
	return extref.Materialize(ctx, doc, newResolver(s.baseDir()), extref.WithMaxDepth(cfg.MaxRefDepth))
}
