package rebase

import (
	"strings"

	"github.com/erraggy/oasrebase/internal/pathutil"
	"github.com/erraggy/oasrebase/oaserrors"
	"github.com/erraggy/oasrebase/schema"
	"go.yaml.in/yaml/v4"
)

// CheckReferences reports every local $ref in doc whose target does not
// exist. Absolute URLs are not checked. Relative refs inside a schema are
// resolved against the top-level schema they appear in.
//
// Rebasing itself never verifies targets; this is the downstream check that
// a rebased document is self-contained.
func CheckReferences(doc *schema.Document) []*oaserrors.ReferenceError {
	if doc == nil {
		return nil
	}
	c := &refChecker{root: doc.Encode()}
	pb := pathutil.Get()
	defer pathutil.Put(pb)
	c.visit(c.root, pb, schema.DocumentScope)
	return c.errs
}

type refChecker struct {
	root *yaml.Node
	errs []*oaserrors.ReferenceError
}

func (c *refChecker) visit(node *yaml.Node, path *pathutil.PathBuilder, sc schema.Scope) {
	switch node.Kind {
	case yaml.SequenceNode:
		for i, child := range node.Content {
			path.PushIndex(i)
			c.visit(child, path, sc)
			path.Pop()
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i].Value, node.Content[i+1]
			if key == schema.KeyRef && value.Kind == yaml.ScalarNode && !sc.IsNames() {
				c.check(value.Value, path)
				continue
			}
			next, literal := sc.Enter(key, value)
			if literal {
				continue
			}
			path.Push(key)
			c.visit(value, path, next)
			path.Pop()
		}
	}
}

func (c *refChecker) check(ref string, path *pathutil.PathBuilder) {
	if pathutil.IsAbsoluteURL(ref) {
		return
	}
	location := path.String()

	contextName := ""
	if tokens := path.Tokens(); len(tokens) > 2 && tokens[0] == schema.FieldComponents && tokens[1] == schema.FieldSchemas {
		contextName = tokens[2]
	}

	canonical, err := Pointer(contextName, ref)
	if err != nil {
		_, fragment, hasHash := pathutil.SplitRef(ref)
		if !hasHash || !strings.HasPrefix(fragment, "/") {
			c.fail(&oaserrors.ReferenceError{Ref: ref, RefType: "local", Location: location, IsInvalid: true, Cause: err})
			return
		}
		// A document-level pointer outside any schema.
		canonical = "#" + fragment
	}

	tokens, err := pathutil.ParsePointer(canonical[1:])
	if err != nil {
		c.fail(&oaserrors.ReferenceError{Ref: ref, RefType: "local", Location: location, IsInvalid: true, Cause: err})
		return
	}
	if schema.LookupNode(c.root, tokens) == nil {
		c.fail(&oaserrors.ReferenceError{
			Ref:            ref,
			RefType:        "local",
			Location:       location,
			IsUnresolvable: true,
			Message:        "target " + canonical + " does not exist",
		})
	}
}

func (c *refChecker) fail(err *oaserrors.ReferenceError) {
	c.errs = append(c.errs, err)
}
