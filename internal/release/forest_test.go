package release

import (
	"reflect"
	"testing"
)

// rec builds a released test record with the given linkage.
func rec(family, subID, ancestorID string, v Version) Record {
	return Record{
		ID:           "04t" + subID,
		SubscriberID: subID,
		AncestorID:   ancestorID,
		Family:       family,
		Name:         "ver " + v.String(),
		Version:      v,
		Released:     true,
	}
}

func TestBuildForest_Filtering(t *testing.T) {
	unreleased := rec("base", "X2", "", Version{Major: 1})
	unreleased.Released = false

	flagged := rec("base", "X3", "X1", Version{Major: 1, Minor: 1})
	flagged.Name = "do not use - 1.1"

	records := []Record{
		rec("base", "X1", "", Version{Major: 1}),
		unreleased,
		flagged,
		rec("other", "X4", "", Version{Major: 1}),
	}

	f := BuildForest(records, []string{"base"})

	if got := f.Families(); !reflect.DeepEqual(got, []string{"base"}) {
		t.Fatalf("expected families [base], got %v", got)
	}
	if f.Size("base") != 1 {
		t.Errorf("expected 1 retained record, got %d", f.Size("base"))
	}
	if f.Size("other") != 0 {
		t.Errorf("unmanaged family should retain nothing, got %d", f.Size("other"))
	}

	roots := f.Roots("base")
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	if kids := f.Children(roots[0]); len(kids) != 0 {
		t.Errorf("excluded records must not appear as children, got %d", len(kids))
	}
}

func TestBuildForest_LinksChildrenInInputOrder(t *testing.T) {
	records := []Record{
		rec("base", "X1", "", Version{Major: 1}),
		rec("base", "X2", "X1", Version{Major: 1, Minor: 1}),
		rec("base", "X3", "X1", Version{Major: 2}),
	}

	f := BuildForest(records, []string{"base"})

	roots := f.Roots("base")
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}

	kids := f.Children(roots[0])
	if len(kids) != 2 {
		t.Fatalf("expected 2 children, got %d", len(kids))
	}
	if f.Rec(kids[0]).SubscriberID != "X2" || f.Rec(kids[1]).SubscriberID != "X3" {
		t.Errorf("children out of input order: %s, %s",
			f.Rec(kids[0]).SubscriberID, f.Rec(kids[1]).SubscriberID)
	}
}

func TestBuildForest_SentinelAncestorIsRoot(t *testing.T) {
	records := []Record{
		rec("base", "X1", "N/A", Version{Major: 1}),
	}

	f := BuildForest(records, []string{"base"})

	if len(f.Roots("base")) != 1 {
		t.Fatalf("expected N/A ancestor to make a root")
	}
	if len(f.Unresolved("base")) != 0 {
		t.Errorf("sentinel ancestor must not count as unresolved")
	}
}

func TestBuildForest_UnresolvedAncestor(t *testing.T) {
	records := []Record{
		rec("base", "X1", "", Version{Major: 1}),
		rec("base", "X2", "Xmissing", Version{Major: 1, Minor: 1}),
	}

	f := BuildForest(records, []string{"base"})

	unresolved := f.Unresolved("base")
	if len(unresolved) != 1 {
		t.Fatalf("expected 1 unresolved ancestor, got %d", len(unresolved))
	}
	e := unresolved[0]
	if e.ChildID != "X2" || e.AncestorID != "Xmissing" {
		t.Errorf("error should name child and missing ancestor, got %+v", e)
	}
}

func TestBuildForest_ExcludedAncestorIsUnresolved(t *testing.T) {
	// The parent exists in the raw input but is filtered out; the child's
	// ancestor must then be a hard error, not a silent root.
	parent := rec("base", "X1", "", Version{Major: 1})
	parent.Released = false

	records := []Record{
		parent,
		rec("base", "X2", "X1", Version{Major: 1, Minor: 1}),
	}

	f := BuildForest(records, []string{"base"})

	if len(f.Roots("base")) != 0 {
		t.Errorf("filtered parent must not leave the child as a root")
	}
	if len(f.Unresolved("base")) != 1 {
		t.Errorf("expected unresolved ancestor for filtered parent")
	}
}

func TestBuildForest_FamiliesSorted(t *testing.T) {
	records := []Record{
		rec("jam", "Y1", "", Version{Minor: 1}),
		rec("base", "X1", "", Version{Major: 1}),
	}

	f := BuildForest(records, []string{"base", "jam"})

	if got := f.Families(); !reflect.DeepEqual(got, []string{"base", "jam"}) {
		t.Errorf("expected sorted families, got %v", got)
	}
}
