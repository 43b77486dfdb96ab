package rebase

import (
	"fmt"

	"github.com/erraggy/oasrebase/schema"
)

// Result contains the outcome of rebasing a document.
type Result struct {
	// Document is the rebased document. It shares no state with the input.
	Document *schema.Document
	// Hoisted lists every nested definition that was moved to the top level,
	// in discovery order, with its flat name and rebased body.
	Hoisted []*HoistedDefinition
	// Events records every definition that did not keep its bare name.
	Events []NamingEvent
	// RewrittenRefs is the number of $ref strings that changed.
	RewrittenRefs int
}

// HasWarnings reports whether any definition had to be renamed to stay unique.
func (r *Result) HasWarnings() bool {
	for _, e := range r.Events {
		if e.Severity >= SeverityWarning {
			return true
		}
	}
	return false
}

// Rebaser flattens nested definitions into components.schemas.
type Rebaser struct {
	// NamingPolicy decides the flat names of hoisted definitions.
	// Default: NamingLeaf.
	NamingPolicy NamingPolicy
	// Logger receives debug output about hoisting and renaming.
	// Default: schema.NopLogger.
	Logger schema.Logger
}

// New creates a Rebaser with default settings.
func New() *Rebaser {
	return &Rebaser{
		NamingPolicy: NamingLeaf,
		Logger:       schema.NopLogger{},
	}
}

// Definitions rebases doc with the default settings and returns the new
// document. doc itself is left untouched.
//
// Example:
//
//	doc, err := schema.ParseFile("api.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	flat, err := rebase.Definitions(doc)
func Definitions(doc *schema.Document) (*schema.Document, error) {
	result, err := New().Rebase(doc)
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

// Rebase hoists every nested definition of doc into components.schemas and
// rewrites all references to them. It works on a deep copy of doc, so on
// error nothing is returned and doc is never modified.
func (r *Rebaser) Rebase(doc *schema.Document) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("rebase: document cannot be nil")
	}
	logger := r.Logger
	if logger == nil {
		logger = schema.NopLogger{}
	}

	work := doc.Clone()
	roots := work.Schemas

	walked, err := Walk(roots)
	if err != nil {
		return nil, fmt.Errorf("rebase: %w", err)
	}
	logger.Debug("walked schemas",
		"schemas", roots.Len(),
		"definitions", len(walked.Definitions),
		"refs", len(walked.Refs))

	names, events, err := resolveNames(roots, walked.Definitions, r.NamingPolicy)
	if err != nil {
		logger.Error("naming collision", "error", err, "policy", r.NamingPolicy.String())
		return nil, fmt.Errorf("rebase: %w", err)
	}
	for _, e := range events {
		attrs := []any{"path", e.Path.String(), "name", e.FlatName}
		if e.Severity >= SeverityWarning {
			logger.Warn(e.Message, attrs...)
		} else {
			logger.Debug(e.Message, attrs...)
		}
	}

	rw := newRewriter(roots, names, logger)
	for name, s := range roots.All() {
		rw.rebaseRoot(name, s)
	}
	for _, f := range work.Fields {
		rw.rewriteSection(f)
	}
	for _, f := range work.Components {
		rw.rewriteSection(f)
	}
	if roots != nil {
		work.SetSchemas(rw.out)
	}

	logger.Info("rebased document",
		"hoisted", len(walked.Definitions),
		"renamed", len(events),
		"rewritten_refs", rw.rewritten)

	return &Result{
		Document:      work,
		Hoisted:       walked.Definitions,
		Events:        events,
		RewrittenRefs: rw.rewritten,
	}, nil
}
