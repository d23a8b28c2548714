package release

import "testing"

func TestVersion_Compare_Trichotomy(t *testing.T) {
	versions := []Version{
		{},
		{Build: 1},
		{Patch: 1},
		{Minor: 1},
		{Major: 1},
		{Major: 1, Minor: 3},
		{Major: 1, Minor: 3, Patch: 1},
		{Major: 1, Minor: 3, Patch: 1, Build: 7},
		{Major: 2},
	}

	for i, a := range versions {
		for j, b := range versions {
			prior := a.IsPriorTo(b)
			after := b.IsPriorTo(a)
			equal := a == b

			if prior && after {
				t.Errorf("%s and %s are both prior to each other", a, b)
			}

			holds := 0
			for _, p := range []bool{prior, after, equal} {
				if p {
					holds++
				}
			}
			if holds != 1 {
				t.Errorf("expected exactly one of prior/after/equal for %s vs %s, got %d", a, b, holds)
			}

			// The fixture is sorted ascending, so index order is version order.
			if (i < j) != prior {
				t.Errorf("expected %s.IsPriorTo(%s) == %v", a, b, i < j)
			}
		}
	}
}

func TestVersion_IsPatchOf(t *testing.T) {
	tests := []struct {
		name string
		a, b Version
		want bool
	}{
		{"same minor line", Version{Major: 1, Minor: 3, Patch: 1}, Version{Major: 1, Minor: 3}, true},
		{"patch and build ignored", Version{Major: 1, Minor: 3, Patch: 9, Build: 4}, Version{Major: 1, Minor: 3, Patch: 2, Build: 1}, true},
		{"different minor", Version{Major: 1, Minor: 4}, Version{Major: 1, Minor: 3}, false},
		{"different major", Version{Major: 2, Minor: 3}, Version{Major: 1, Minor: 3}, false},
		{"zero versions", Version{}, Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.IsPatchOf(tt.b); got != tt.want {
				t.Errorf("%s.IsPatchOf(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestVersion_String(t *testing.T) {
	v := Version{Major: 1, Minor: 2, Patch: 0, Build: 3}
	if got := v.String(); got != "1.2.0.3" {
		t.Errorf("expected 1.2.0.3, got %s", got)
	}
}
