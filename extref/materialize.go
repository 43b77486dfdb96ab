package extref

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/erraggy/oasrebase/internal/pathutil"
	"github.com/erraggy/oasrebase/oaserrors"
	"github.com/erraggy/oasrebase/schema"
	"go.yaml.in/yaml/v4"
)

// Option configures Materialize.
type Option func(*config) error

type config struct {
	maxDepth int
	logger   schema.Logger
}

// WithMaxDepth limits how deeply external references may nest.
// Default: MaxRefDepth.
func WithMaxDepth(depth int) Option {
	return func(cfg *config) error {
		if depth <= 0 {
			return &oaserrors.ConfigError{Option: "max depth", Value: depth, Message: "must be positive"}
		}
		cfg.maxDepth = depth
		return nil
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l schema.Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			l = schema.NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}

// Materialize returns a copy of doc in which every schema whose $ref is an
// absolute URL has been replaced by the schema that URL addresses. Schemas
// pulled in this way are materialized too, with their own relative $refs
// resolved against the URL of the document they came from.
//
// Only components.schemas is materialized. doc is never modified; on error no
// partial result is returned.
func Materialize(ctx context.Context, doc *schema.Document, r Resolver, opts ...Option) (*schema.Document, error) {
	cfg := &config{maxDepth: MaxRefDepth, logger: schema.NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("extref: invalid options: %w", err)
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("extref: document is nil")
	}
	if r == nil {
		return nil, fmt.Errorf("extref: invalid options: %w",
			&oaserrors.ConfigError{Option: "resolver", Message: "resolver is required"})
	}

	out := doc.Clone()
	if out.Schemas == nil || out.Schemas.Len() == 0 {
		return out, nil
	}

	m := &materializer{
		ctx:    ctx,
		r:      r,
		cfg:    cfg,
		active: make(map[string]bool),
		docs:   make(map[string]*yaml.Node),
	}
	registry := schema.EncodeMap(out.Schemas)
	for i := 1; i < len(registry.Content); i += 2 {
		if err := m.visit(registry.Content[i], "", 0, schema.SchemaScope); err != nil {
			return nil, err
		}
	}
	if m.inlined == 0 {
		return out, nil
	}

	schemas, err := schema.DecodeMap(registry, "/components/schemas")
	if err != nil {
		return nil, fmt.Errorf("extref: %w", err)
	}
	out.SetSchemas(schemas)
	cfg.logger.Info("materialized external references",
		"inlined", m.inlined,
		"documents", len(m.docs),
	)
	return out, nil
}

type materializer struct {
	ctx context.Context
	r   Resolver
	cfg *config

	// active holds the references currently being expanded.
	active map[string]bool
	// docs holds each fetched document, encoded, for the duration of one run.
	docs    map[string]*yaml.Node
	inlined int
}

// visit walks a schema node tree. base is the URI of the document the tree
// came from, or "" for the local document.
func (m *materializer) visit(node *yaml.Node, base string, depth int, sc schema.Scope) error {
	switch node.Kind {
	case yaml.SequenceNode:
		for _, child := range node.Content {
			if err := m.visit(child, base, depth, sc); err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		if !sc.IsNames() {
			if ref, ok := refValue(node); ok {
				target, err := m.inline(ref, base, depth)
				if err != nil {
					return err
				}
				if target != nil {
					*node = *target
					return nil
				}
			}
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i].Value, node.Content[i+1]
			if key == schema.KeyRef && !sc.IsNames() {
				continue
			}
			next, literal := sc.Enter(key, value)
			if literal {
				continue
			}
			if err := m.visit(value, base, depth, next); err != nil {
				return err
			}
		}
	}
	return nil
}

// inline returns the materialized target of ref, or nil when ref stays local.
func (m *materializer) inline(ref, base string, depth int) (*yaml.Node, error) {
	abs := ref
	if !pathutil.IsAbsoluteURL(ref) {
		_, _, hasHash := pathutil.SplitRef(ref)
		if base == "" || !hasHash {
			return nil, nil
		}
		var err error
		if abs, err = resolveURL(base, ref); err != nil {
			return nil, &oaserrors.ReferenceError{Ref: ref, RefType: refType(base), IsInvalid: true, Cause: err}
		}
	}

	if m.active[abs] {
		return nil, &oaserrors.ReferenceError{Ref: abs, RefType: refType(abs), IsCircular: true}
	}
	if depth >= m.cfg.maxDepth {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "ref_depth",
			Limit:        int64(m.cfg.maxDepth),
			Actual:       int64(depth + 1),
			Message:      "external references nest too deeply at " + abs,
		}
	}
	if err := m.ctx.Err(); err != nil {
		return nil, err
	}

	uri, fragment, _ := pathutil.SplitRef(abs)
	root, err := m.document(uri)
	if err != nil {
		return nil, err
	}
	target, err := lookupFragment(root, fragment)
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: abs, RefType: refType(abs), IsInvalid: true, Cause: err}
	}
	if target == nil {
		return nil, &oaserrors.ReferenceError{
			Ref:            abs,
			RefType:        refType(abs),
			IsUnresolvable: true,
			Message:        "fragment does not exist in " + uri,
		}
	}
	target = schema.CloneNode(target)

	m.active[abs] = true
	defer delete(m.active, abs)

	m.cfg.logger.Debug("inlining external reference", "ref", abs, "depth", depth+1)
	if err := m.visit(target, uri, depth+1, schema.SchemaScope); err != nil {
		return nil, err
	}
	m.inlined++
	return target, nil
}

// document returns the encoded document at uri, fetching it once per run.
func (m *materializer) document(uri string) (*yaml.Node, error) {
	if node, ok := m.docs[uri]; ok {
		return node, nil
	}
	s, err := m.r.Resolve(m.ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("extref: %w", err)
	}
	node := schema.EncodeSchema(s)
	m.docs[uri] = node
	return node, nil
}

// lookupFragment applies a URI fragment, which must be empty or a
// (percent-encoded) JSON pointer.
func lookupFragment(root *yaml.Node, fragment string) (*yaml.Node, error) {
	if f, err := url.PathUnescape(fragment); err == nil {
		fragment = f
	}
	if fragment != "" && !strings.HasPrefix(fragment, "/") {
		return nil, fmt.Errorf("fragment %q is not a JSON pointer", fragment)
	}
	tokens, err := pathutil.ParsePointer(fragment)
	if err != nil {
		return nil, err
	}
	return schema.LookupNode(root, tokens), nil
}

func resolveURL(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(r).String(), nil
}

// refValue returns the string $ref of a mapping node, if it has one.
func refValue(node *yaml.Node) (string, bool) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != schema.KeyRef {
			continue
		}
		v := node.Content[i+1]
		if v.Kind == yaml.ScalarNode && v.Value != "" {
			return v.Value, true
		}
		return "", false
	}
	return "", false
}
