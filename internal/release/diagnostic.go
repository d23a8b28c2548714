package release

import "strings"

// Severity indicates the importance of a lineage diagnostic.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError indicates a broken upgrade path that must be remediated.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	default:
		return SeverityWarning, false
	}
}

// Rule identifiers for lineage diagnostics.
const (
	// RuleBadFork: two or more non-patch released versions share an ancestor.
	RuleBadFork = "RL01"
	// RuleOrdering: a child version is not later than its parent.
	RuleOrdering = "RL02"
	// RuleUnresolvedAncestor: an ancestor id resolves to nothing retained.
	RuleUnresolvedAncestor = "RL03"
)

// Diagnostic represents a single lineage finding for one package family.
type Diagnostic struct {
	RuleID   string
	Family   string
	Severity Severity
	Message  string
}
