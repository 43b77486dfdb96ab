package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// NodeToJSON writes a YAML node tree as compact JSON, keeping mapping key order.
func NodeToJSON(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNodeJSON(&buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeNodeJSON(buf *bytes.Buffer, node *yaml.Node) error {
	node = dealias(node)
	if node == nil {
		buf.WriteString("null")
		return nil
	}

	switch node.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(node.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeNodeJSON(buf, node.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNodeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		return writeScalarJSON(buf, node)
	}
	return fmt.Errorf("schema: cannot encode YAML node kind %d as JSON", node.Kind)
}

func writeScalarJSON(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.ShortTag() {
	case "!!null":
		buf.WriteString("null")
		return nil

	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return fmt.Errorf("schema: invalid boolean %q: %w", node.Value, err)
		}
		buf.WriteString(strconv.FormatBool(b))
		return nil

	case "!!int", "!!float":
		// Numbers already written in JSON syntax are copied byte for byte.
		if isJSONNumber(node.Value) {
			buf.WriteString(node.Value)
			return nil
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(node.Value, "_", ""), 64)
		if err != nil {
			i, ierr := strconv.ParseInt(strings.ReplaceAll(node.Value, "_", ""), 0, 64)
			if ierr != nil {
				return fmt.Errorf("schema: %s has no JSON representation", node.Value)
			}
			f = float64(i)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return fmt.Errorf("schema: %s has no JSON representation", node.Value)
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		return nil
	}

	data, err := json.Marshal(node.Value)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

func isJSONNumber(s string) bool {
	if s == "" {
		return false
	}
	var n json.Number
	if err := json.Unmarshal([]byte(s), &n); err != nil {
		return false
	}
	return n.String() == s
}
