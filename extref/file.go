package extref

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasrebase/oaserrors"
	"github.com/erraggy/oasrebase/schema"
)

// FileResolver reads file:// URIs from the local filesystem. Only files
// inside BaseDir are served.
type FileResolver struct {
	BaseDir string
	// MaxSize is the largest accepted file in bytes. Defaults to MaxFileSize.
	MaxSize int64
}

// NewFileResolver returns a FileResolver rooted at baseDir.
func NewFileResolver(baseDir string) *FileResolver {
	return &FileResolver{BaseDir: baseDir, MaxSize: MaxFileSize}
}

// Resolve reads and parses the file addressed by uri.
func (r *FileResolver) Resolve(ctx context.Context, uri string) (*schema.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := r.localPath(uri)
	if err != nil {
		return nil, err
	}

	maxSize := r.MaxSize
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: uri, RefType: "file", Message: "failed to read file", Cause: err}
	}
	if info.Size() > maxSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        maxSize,
			Actual:       info.Size(),
			Message:      fmt.Sprintf("external file %s is too large", path),
		}
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is confined to BaseDir above
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: uri, RefType: "file", Message: "failed to read file", Cause: err}
	}
	s, err := schema.ParseSchema(data)
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: uri, RefType: "file", Message: "failed to parse file", Cause: err}
	}
	return s, nil
}

// localPath maps uri to a filesystem path and rejects paths outside BaseDir.
func (r *FileResolver) localPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", &oaserrors.ReferenceError{Ref: uri, RefType: "file", IsInvalid: true, Cause: err}
	}
	raw := u.Path
	if raw == "" {
		raw = u.Opaque
	}
	if raw == "" {
		return "", &oaserrors.ReferenceError{Ref: uri, RefType: "file", IsInvalid: true, Message: "empty path"}
	}

	baseDir := r.BaseDir
	if baseDir == "" {
		baseDir = "."
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("extref: failed to resolve base directory: %w", err)
	}

	path := filepath.FromSlash(raw)
	if !filepath.IsAbs(path) {
		path = filepath.Join(absBase, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(absBase, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &oaserrors.ReferenceError{Ref: uri, RefType: "file", IsPathTraversal: true}
	}
	return path, nil
}
