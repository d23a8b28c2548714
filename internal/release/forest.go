package release

import (
	"fmt"
	"sort"
)

// UnresolvedAncestorError reports a retained record whose ancestor id does not
// resolve to any retained record. The ancestry tree of the affected family
// cannot be trusted, so the family is excluded from fork validation.
type UnresolvedAncestorError struct {
	Family     string
	ChildID    string
	AncestorID string
}

func (e *UnresolvedAncestorError) Error() string {
	return fmt.Sprintf("package %s: version %s references ancestor %s which is not among the retained released versions",
		e.Family, e.ChildID, e.AncestorID)
}

// Forest holds the retained release records of all managed families as an
// arena: records live in a flat slice and tree structure is expressed through
// child index lists. Built once by BuildForest, read-only afterwards.
type Forest struct {
	recs       []Record
	kids       [][]int
	roots      map[string][]int
	unresolved map[string][]*UnresolvedAncestorError
	families   []string
}

// BuildForest filters the raw record collection down to released, non-flagged
// records of managed families and links them into per-family trees by
// ancestor id. Records appear as children in their input order.
//
// A record whose ancestor id resolves to nothing retained produces an
// UnresolvedAncestorError for its family; other families are unaffected.
func BuildForest(records []Record, managed []string) *Forest {
	managedSet := make(map[string]bool, len(managed))
	for _, name := range managed {
		managedSet[name] = true
	}

	f := &Forest{
		roots:      make(map[string][]int),
		unresolved: make(map[string][]*UnresolvedAncestorError),
	}

	// Filtering happens once, before any tree logic. Excluded records must
	// never resurface as parents or roots.
	for _, rec := range records {
		if !managedSet[rec.Family] || !rec.Released || rec.flaggedDoNotUse() {
			continue
		}
		f.recs = append(f.recs, rec)
	}
	f.kids = make([][]int, len(f.recs))

	byID := make(map[string]int, len(f.recs))
	seen := make(map[string]bool)
	for i, rec := range f.recs {
		byID[rec.SubscriberID] = i
		if !seen[rec.Family] {
			seen[rec.Family] = true
			f.families = append(f.families, rec.Family)
		}
	}
	sort.Strings(f.families)

	for i, rec := range f.recs {
		if rec.IsRoot() {
			f.roots[rec.Family] = append(f.roots[rec.Family], i)
			continue
		}
		parent, ok := byID[rec.AncestorID]
		if !ok {
			f.unresolved[rec.Family] = append(f.unresolved[rec.Family], &UnresolvedAncestorError{
				Family:     rec.Family,
				ChildID:    rec.SubscriberID,
				AncestorID: rec.AncestorID,
			})
			continue
		}
		f.kids[parent] = append(f.kids[parent], i)
	}

	return f
}

// Families returns the sorted names of managed families that retained at
// least one record.
func (f *Forest) Families() []string {
	return f.families
}

// Roots returns the arena indexes of the family's root records.
func (f *Forest) Roots(family string) []int {
	return f.roots[family]
}

// Children returns the arena indexes of the record's direct children.
func (f *Forest) Children(i int) []int {
	return f.kids[i]
}

// Rec returns the record at an arena index.
func (f *Forest) Rec(i int) *Record {
	return &f.recs[i]
}

// Size returns the number of retained records in the family.
func (f *Forest) Size(family string) int {
	n := 0
	for _, rec := range f.recs {
		if rec.Family == family {
			n++
		}
	}
	return n
}

// Unresolved returns the family's fatal ancestry errors, if any.
func (f *Forest) Unresolved(family string) []*UnresolvedAncestorError {
	return f.unresolved[family]
}
