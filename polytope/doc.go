// Package polytope implements the 4-dimensional polytope and face kernel:
// dual half-space/vertex representation, facet and ridge enumeration by
// saturation, per-facet Reeb directions, and per-ridge orthonormal oriented
// charts.
//
// Conventions. Coordinates are (x1, y1, x2, y2) with the standard symplectic
// form ω = dx1∧dy1 + dx2∧dy2 and complex structure
//
//	J(x1, y1, x2, y2) = (−y1, x1, −y2, x2),   ω(u, v) = (J·u)·v.
//
// A polytope is given as half-spaces N·x ≤ C with outward unit normals and
// positive offsets (the body is star-shaped around the origin). Build is a
// validated constructor: it enumerates vertices by solving every 4-subset of
// boundary hyperplanes, keeps the feasible solutions, derives facets and
// ridges by saturation, and attaches the derived geometry: Reeb direction
// J·N per facet, an orthonormal chart per ridge whose orientation is fixed
// exactly once so that ω is positive on the basis. The returned *Polytope is
// immutable and safe for concurrent reads.
//
// Ridges whose tangent plane is Lagrangian (ω vanishes on it) are flagged,
// not rejected: the search layer drops them from its graphs, as the theory
// guarantees minimizers avoid them under the genericity precondition.
//
// Errors:
//
//	ErrInvalidPolytope — the half-spaces do not bound a non-degenerate
//	                     star-shaped 4-dimensional body.
//	ErrBadHalfSpace    — a half-space has a zero normal or a non-positive offset.
//	ErrDegenerateRidge — a ridge's saturating vertices are affinely degenerate.
//	ErrSingular        — a 4×4 system or map inversion is numerically singular.
package polytope
