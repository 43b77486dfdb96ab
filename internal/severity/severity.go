// Package severity provides severity levels for events reported while
// rebasing a document (naming decisions, skipped references).
//
// Levels are ordered from least to most severe: Info < Warning < Critical.
package severity

import "fmt"

// Severity indicates how much attention a reported event deserves.
type Severity int

const (
	// SeverityInfo marks a decision that needs no action, such as a
	// definition hoisted under a path-qualified name.
	SeverityInfo Severity = iota

	// SeverityWarning marks output that differs from what a reader would
	// guess, such as a numeric suffix added to break a tie.
	SeverityWarning

	// SeverityCritical marks an event that aborted the transform.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText renders the level by name in JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	if s < SeverityInfo || s > SeverityCritical {
		return nil, fmt.Errorf("severity: unknown level %d", int(s))
	}
	return []byte(s.String()), nil
}
