package release

import "strings"

// Sentinel ancestor values the Dev Hub emits for versions that start a line.
const noAncestor = "N/A"

// doNotUseMarker flags versions that were already renamed after a previous
// bad-fork remediation. Matching is case-insensitive on the label.
const doNotUseMarker = "DO NOT USE"

// Record is one package version row from the Dev Hub's released-version list.
// Records are read-only input to the builder; tree structure lives in the
// Forest's child index lists, never on the record itself.
type Record struct {
	// ID is the 18-character Package2Version id.
	ID string
	// SubscriberID is the SubscriberPackageVersionId, the identity that
	// AncestorID of other records points at.
	SubscriberID string
	// AncestorID is the parent's SubscriberID, or empty / "N/A" for a root.
	AncestorID string
	// Family is the owning package name (Package2Name).
	Family string
	// Name is the human-readable version label.
	Name     string
	Version  Version
	Released bool
}

// IsRoot reports whether the record starts its family's lineage.
func (r Record) IsRoot() bool {
	return r.AncestorID == "" || r.AncestorID == noAncestor
}

// flaggedDoNotUse reports whether the label carries the reserved marker.
func (r Record) flaggedDoNotUse() bool {
	return strings.Contains(strings.ToUpper(r.Name), doNotUseMarker)
}
