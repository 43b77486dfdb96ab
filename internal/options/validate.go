// Package options validates option combinations shared by the CLI and the MCP server.
package options

import (
	"fmt"
	"strings"
)

// Source is one candidate input together with whether the caller set it.
type Source struct {
	Name string
	Set  bool
}

// ExactlyOne returns an error unless exactly one source is set.
// The message lists every source name in the order given.
func ExactlyOne(sources ...Source) error {
	names := make([]string, 0, len(sources))
	count := 0
	for _, s := range sources {
		names = append(names, s.Name)
		if s.Set {
			count++
		}
	}
	if count == 1 {
		return nil
	}
	return fmt.Errorf("exactly one of %s must be provided (got %d)", joinOr(names), count)
}

// joinOr renders names as "a, b, or c".
func joinOr(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
