package schema

import (
	"strconv"

	"go.yaml.in/yaml/v4"
)

// LookupNode follows unescaped JSON pointer tokens through a YAML node tree
// and returns the node they address. Aliases are followed. It returns nil when
// a token names a missing key or an out-of-range index.
func LookupNode(node *yaml.Node, tokens []string) *yaml.Node {
	node = dealias(node)
	for _, tok := range tokens {
		if node == nil {
			return nil
		}
		switch node.Kind {
		case yaml.MappingNode:
			var next *yaml.Node
			for i := 0; i+1 < len(node.Content); i += 2 {
				if node.Content[i].Value == tok {
					next = node.Content[i+1]
					break
				}
			}
			node = dealias(next)
		case yaml.SequenceNode:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(node.Content) {
				return nil
			}
			node = dealias(node.Content[i])
		default:
			return nil
		}
	}
	return node
}
