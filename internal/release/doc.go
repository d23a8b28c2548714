// Package release reconstructs the ancestry trees of a Dev Hub's released
// package versions and checks each package family for a single upgrade path.
//
// The package has three parts:
//   - Version: a four-part release identifier with a strict ordering and a
//     "same minor line" predicate.
//   - Forest: an arena of release records linked by ancestor id into one or
//     more rooted trees per package family.
//   - Validator: a recursive walk over each family's trees that reports bad
//     forks, out-of-order children, and unresolved ancestors as diagnostics.
//
// The Golden Rule: internal/release imports only the stdlib plus uuid and
// errgroup. All other packages depend on release, not the reverse.
package release
