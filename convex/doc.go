// Package convex provides a small 2D convex-geometry kernel: vectors,
// 2×2 matrices, affine maps, affine functionals, and convex regions
// represented as conjunctions of half-planes.
//
// The half-plane (H-rep) representation is the primary one. A Region is a
// finite set of constraints N·x ≤ C; intersection is concatenation, and the
// push-forward of a Region under an invertible affine map is a pure
// algebraic transform of the constraints — no vertex reconstruction is
// needed until a query actually asks for vertices.
//
// Queries (emptiness, membership, extremal values of an affine functional)
// discover boundary vertices by pairwise boundary probing: every pair of
// constraint lines is intersected, candidate points are kept when they
// satisfy all constraints within tolerance, and duplicates are merged.
// Regions that contain at least one bounded conjunct (which is the case for
// every region produced in this module — all of them start from a bounded
// ridge polygon) are handled exactly this way; an infeasible region reports
// Empty rather than returning a wrong vertex set.
//
// All predicates share a single tolerance, Eps. It is a configuration
// constant of the package, not a per-call-site magic number.
//
// Complexity:
//
//   - Transform/Clip:   O(k) over k constraints.
//   - Vertices/Empty:   O(k³) worst case (k² candidate points × k checks).
//   - Reduce:           O(k·k³); keeps k small along long clip chains.
package convex
