package release

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// FamilyResult is the validation outcome for one package family.
type FamilyResult struct {
	Family      string
	Releases    int
	Diagnostics []Diagnostic
	// Fatal marks families whose ancestry could not be reconstructed; their
	// fork validation was skipped.
	Fatal bool
}

// Report aggregates the validation outcomes of every managed family in one
// run. All diagnostics across all families are carried verbatim; callers must
// not stop at the first finding.
type Report struct {
	RunID    string
	Families []FamilyResult
}

// Ok reports whether every family validated clean.
func (r *Report) Ok() bool {
	for _, fam := range r.Families {
		if len(fam.Diagnostics) > 0 {
			return false
		}
	}
	return true
}

// Diagnostics returns every finding across all families, in family order.
func (r *Report) Diagnostics() []Diagnostic {
	var all []Diagnostic
	for _, fam := range r.Families {
		all = append(all, fam.Diagnostics...)
	}
	return all
}

// ValidateAll walks every family in the forest and collects all lineage
// diagnostics. Families share no state, so they are validated concurrently;
// results are merged in sorted family order so the report is deterministic.
func ValidateAll(ctx context.Context, f *Forest) *Report {
	families := f.Families()
	results := make([]FamilyResult, len(families))

	g, ctx := errgroup.WithContext(ctx)
	for i, family := range families {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = validateFamily(f, family)
			return nil
		})
	}
	// Validation itself never fails; the only error is cancellation, and a
	// partial report is still a valid (failed) report in that case.
	_ = g.Wait()

	return &Report{RunID: uuid.NewString(), Families: results}
}

// validateFamily checks one family's trees for a single upgrade path.
// A family with unresolved ancestors only gets those reported; its trees are
// not walked because they cannot be trusted.
func validateFamily(f *Forest, family string) FamilyResult {
	res := FamilyResult{Family: family, Releases: f.Size(family)}

	if unresolved := f.Unresolved(family); len(unresolved) > 0 {
		res.Fatal = true
		for _, e := range unresolved {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				RuleID:   RuleUnresolvedAncestor,
				Family:   family,
				Severity: SeverityError,
				Message:  e.Error(),
			})
		}
		return res
	}

	res.Diagnostics = walkLevel(f, f.Roots(family), Version{})
	return res
}

// walkLevel validates one level of a family's tree against the current
// non-patch cursor version and descends into the chosen successor.
//
// Patch releases of the cursor are accepted unconditionally and their
// children are absorbed into this same level's candidate pool, so a patch
// never adds tree depth. Among the rest, exactly one version may continue the
// line; each additional one is a bad fork and its branch is not descended
// into.
func walkLevel(f *Forest, level []int, cursor Version) []Diagnostic {
	var diags []Diagnostic

	pool := make([]int, len(level))
	copy(pool, level)

	var survivors []int
	for n := 0; n < len(pool); n++ {
		idx := pool[n]
		rec := f.Rec(idx)

		if rec.Version.IsPatchOf(cursor) {
			pool = append(pool, f.Children(idx)...)
			continue
		}

		if !cursor.IsPriorTo(rec.Version) {
			// Signals a builder or input defect, not a fork; keep scanning.
			diags = append(diags, Diagnostic{
				RuleID:   RuleOrdering,
				Family:   rec.Family,
				Severity: SeverityError,
				Message: fmt.Sprintf("package %s: version %s (%s) is not later than its ancestor version %s",
					rec.Family, rec.Version, rec.SubscriberID, cursor),
			})
			continue
		}

		survivors = append(survivors, idx)
	}

	if len(survivors) == 0 {
		return diags
	}

	next := f.Rec(survivors[0])
	for _, extra := range survivors[1:] {
		rec := f.Rec(extra)
		diags = append(diags, Diagnostic{
			RuleID:   RuleBadFork,
			Family:   rec.Family,
			Severity: SeverityError,
			Message: fmt.Sprintf("package %s: bad fork after version %s: %s (%s) and %s (%s) both continue the same line",
				rec.Family, cursor, next.Name, next.SubscriberID, rec.Name, rec.SubscriberID),
		})
	}

	diags = append(diags, walkLevel(f, f.Children(survivors[0]), next.Version)...)
	return diags
}

// SortDiagnostics orders diagnostics by family, then rule, then message.
// Useful for stable assertions and rendering.
func SortDiagnostics(diags []Diagnostic) {
	sort.Slice(diags, func(i, j int) bool {
		if diags[i].Family != diags[j].Family {
			return diags[i].Family < diags[j].Family
		}
		if diags[i].RuleID != diags[j].RuleID {
			return diags[i].RuleID < diags[j].RuleID
		}
		return diags[i].Message < diags[j].Message
	})
}
