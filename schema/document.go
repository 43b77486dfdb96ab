package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasrebase/internal/pathutil"
	"github.com/erraggy/oasrebase/oaserrors"
	"go.yaml.in/yaml/v4"
)

// Section names inside an OpenAPI document.
const (
	FieldOpenAPI    = "openapi"
	FieldInfo       = "info"
	FieldPaths      = "paths"
	FieldWebhooks   = "webhooks"
	FieldComponents = "components"
	FieldSchemas    = "schemas"
)

// Field is one key of a mapping kept as a raw node.
type Field struct {
	Key   string
	Value *yaml.Node
}

// Document is an OpenAPI-like document. Only components.schemas is decoded
// into typed schemas; every other section is kept as its raw node so it
// survives a round trip unchanged and in order.
type Document struct {
	// Fields holds the top-level keys in order. The "components" entry, if
	// present, has a nil Value; its content is Components plus Schemas.
	Fields []Field

	// Components holds the keys of the components object in order. The
	// "schemas" entry, if present, has a nil Value; its content is Schemas.
	Components []Field

	// Schemas is components.schemas.
	Schemas *Map
}

// NewDocument returns a document with the given OpenAPI version and an empty
// components.schemas registry.
func NewDocument(version string) *Document {
	return &Document{
		Fields: []Field{
			{Key: FieldOpenAPI, Value: scalarNode("!!str", version)},
			{Key: FieldComponents},
		},
		Components: []Field{{Key: FieldSchemas}},
		Schemas:    NewMap(),
	}
}

// Field returns the raw node of a top-level key other than components.
func (d *Document) Field(key string) (*yaml.Node, bool) {
	for _, f := range d.Fields {
		if f.Key == key && f.Value != nil {
			return f.Value, true
		}
	}
	return nil, false
}

// SetField sets a top-level raw field, appending it when new.
func (d *Document) SetField(key string, value *yaml.Node) {
	for i := range d.Fields {
		if d.Fields[i].Key == key {
			d.Fields[i].Value = value
			return
		}
	}
	d.Fields = append(d.Fields, Field{Key: key, Value: value})
}

// Component returns the raw node of a components section other than schemas.
func (d *Document) Component(section string) (*yaml.Node, bool) {
	for _, f := range d.Components {
		if f.Key == section && f.Value != nil {
			return f.Value, true
		}
	}
	return nil, false
}

// SetComponent sets a components section other than schemas.
func (d *Document) SetComponent(section string, value *yaml.Node) {
	d.ensureComponents()
	for i := range d.Components {
		if d.Components[i].Key == section {
			d.Components[i].Value = value
			return
		}
	}
	d.Components = append(d.Components, Field{Key: section, Value: value})
}

// OpenAPI returns the openapi version string, or "" when absent.
func (d *Document) OpenAPI() string {
	if n, ok := d.Field(FieldOpenAPI); ok {
		return dealias(n).Value
	}
	return ""
}

// SetSchemas replaces components.schemas, adding the components and schemas
// keys when the document lacks them.
func (d *Document) SetSchemas(m *Map) {
	d.ensureComponents()
	found := false
	for _, f := range d.Components {
		if f.Key == FieldSchemas {
			found = true
			break
		}
	}
	if !found {
		d.Components = append([]Field{{Key: FieldSchemas}}, d.Components...)
	}
	d.Schemas = m
}

func (d *Document) ensureComponents() {
	for _, f := range d.Fields {
		if f.Key == FieldComponents {
			return
		}
	}
	d.Fields = append(d.Fields, Field{Key: FieldComponents})
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{
		Fields:     cloneFields(d.Fields),
		Components: cloneFields(d.Components),
		Schemas:    d.Schemas.Clone(),
	}
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = Field{Key: f.Key, Value: CloneNode(f.Value)}
	}
	return out
}

// Parse decodes a YAML or JSON document.
func Parse(data []byte) (*Document, error) {
	return parse(data, "")
}

// ParseReader decodes a YAML or JSON document from r.
func ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("schema: reading document: %w", err)
	}
	return parse(data, "")
}

// ParseFile decodes the YAML or JSON document at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading the caller-supplied document is the point
	if err != nil {
		return nil, fmt.Errorf("schema: reading %s: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "invalid YAML or JSON", Cause: err}
	}
	doc, err := DecodeDocument(&root)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// DecodeDocument converts a parsed YAML node into a Document.
func DecodeDocument(root *yaml.Node) (*Document, error) {
	node := dealias(root)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, &oaserrors.StructuralError{Found: describe(node), Message: "document must be an object"}
	}

	doc := &Document{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]
		if key != FieldComponents {
			doc.Fields = append(doc.Fields, Field{Key: key, Value: value})
			continue
		}
		doc.Fields = append(doc.Fields, Field{Key: key})
		if err := doc.decodeComponents(value); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (d *Document) decodeComponents(node *yaml.Node) error {
	node = dealias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return &oaserrors.StructuralError{
			Path:    "/" + FieldComponents,
			Found:   describe(node),
			Message: "components must be an object",
		}
	}

	pb := pathutil.Get()
	defer pathutil.Put(pb)
	pb.Push(FieldComponents)
	pb.Push(FieldSchemas)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]
		if key != FieldSchemas {
			d.Components = append(d.Components, Field{Key: key, Value: value})
			continue
		}
		schemas, err := decodeMap(value, pb)
		if err != nil {
			return err
		}
		d.Components = append(d.Components, Field{Key: key})
		d.Schemas = schemas
	}
	return nil
}

// Encode converts d back into a YAML mapping node.
func (d *Document) Encode() *yaml.Node {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range d.Fields {
		var value *yaml.Node
		if f.Key == FieldComponents && f.Value == nil {
			value = d.encodeComponents()
		} else {
			value = plainNode(f.Value)
		}
		out.Content = append(out.Content, scalarNode("!!str", f.Key), value)
	}
	return out
}

func (d *Document) encodeComponents() *yaml.Node {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range d.Components {
		var value *yaml.Node
		if f.Key == FieldSchemas && f.Value == nil {
			value = EncodeMap(d.Schemas)
		} else {
			value = plainNode(f.Value)
		}
		out.Content = append(out.Content, scalarNode("!!str", f.Key), value)
	}
	return out
}

// MarshalOrderedYAML renders d as YAML with keys in document order.
func (d *Document) MarshalOrderedYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.Encode()); err != nil {
		return nil, fmt.Errorf("schema: encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("schema: encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalOrderedJSON renders d as compact JSON with keys in document order.
func (d *Document) MarshalOrderedJSON() ([]byte, error) {
	return NodeToJSON(d.Encode())
}

// MarshalOrderedJSONIndent renders d as indented JSON with keys in document order.
func (d *Document) MarshalOrderedJSONIndent(prefix, indent string) ([]byte, error) {
	data, err := d.MarshalOrderedJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.MarshalOrderedJSON()
}

// MarshalYAML implements yaml.Marshaler.
func (d *Document) MarshalYAML() (any, error) {
	return d.Encode(), nil
}

// ParseSchema decodes a standalone YAML or JSON schema document.
func ParseSchema(data []byte) (*Schema, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Message: "invalid YAML or JSON", Cause: err}
	}
	return DecodeSchema(&root, "")
}
