package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasrebase/extref"
	"github.com/erraggy/oasrebase/internal/pathutil"
	"github.com/erraggy/oasrebase/schema"
	"go.yaml.in/yaml/v4"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat returns an error unless format is one of allowed.
func ValidateOutputFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %s", format, strings.Join(allowed, ", "))
}

// OutputStructured writes data to w as indented JSON or YAML.
func OutputStructured(w io.Writer, data any, format string) error {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	_, err = fmt.Fprintln(w, strings.TrimRight(string(out), "\n"))
	return err
}

// isURL reports whether source should be fetched over HTTP.
func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// loadDocument reads a document from a file, a URL, or stdin ("-").
func loadDocument(ctx context.Context, stdin io.Reader, source string) (*schema.Document, error) {
	var doc *schema.Document
	var err error
	switch {
	case source == StdinFilePath:
		doc, err = schema.ParseReader(stdin)
	case isURL(source):
		var data []byte
		data, err = extref.NewHTTPResolver().Fetch(ctx, source)
		if err == nil {
			doc, err = schema.Parse(data)
		}
	default:
		doc, err = schema.ParseFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", source, err)
	}
	return doc, nil
}

// defaultFormat picks the output format matching the input's extension.
func defaultFormat(source string) string {
	if strings.EqualFold(filepath.Ext(source), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// marshalDocument encodes doc in the given format.
func marshalDocument(doc *schema.Document, format string) ([]byte, error) {
	if format == FormatJSON {
		data, err := doc.MarshalOrderedJSONIndent("", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return doc.MarshalOrderedYAML()
}

// writeOutput writes data to the output file, or to w when output is empty.
func writeOutput(w io.Writer, data []byte, output string) error {
	if output == "" {
		_, err := w.Write(data)
		return err
	}
	path, err := pathutil.SanitizeOutputPath(output)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// newResolver builds the resolver used by --resolve-external. file:// refs
// are confined to baseDir.
func newResolver(baseDir string) extref.Resolver {
	web := extref.NewCachingResolver(extref.NewHTTPResolver())
	return extref.SchemeMux{
		"http":  web,
		"https": web,
		"file":  extref.NewFileResolver(baseDir),
	}
}

// inputDir is the default base directory for file:// references.
func inputDir(source string) string {
	if source == StdinFilePath || isURL(source) {
		return "."
	}
	return filepath.Dir(source)
}
