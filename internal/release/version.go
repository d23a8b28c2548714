package release

import "fmt"

// Version is a four-part 2GP release identifier (major.minor.patch.build).
// It is an immutable value type ordered lexicographically over its parts.
type Version struct {
	Major int
	Minor int
	Patch int
	Build int
}

// Compare returns -1, 0, or 1 depending on whether v sorts before, equal to,
// or after other under the lexicographic (major, minor, patch, build) order.
func (v Version) Compare(other Version) int {
	pairs := [4][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
		{v.Build, other.Build},
	}
	for _, p := range pairs {
		switch {
		case p[0] < p[1]:
			return -1
		case p[0] > p[1]:
			return 1
		}
	}
	return 0
}

// IsPriorTo reports whether v sorts strictly before other.
func (v Version) IsPriorTo(other Version) bool {
	return v.Compare(other) < 0
}

// IsPatchOf reports whether v is a patch release on other's minor line.
// Only major and minor participate; patch and build are ignored.
func (v Version) IsPatchOf(other Version) bool {
	return v.Major == other.Major && v.Minor == other.Minor
}

// String returns the dotted form, e.g. "1.2.0.3".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Build)
}
