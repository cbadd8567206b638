// Package reebgraph builds the two directed graphs that drive the capacity
// search: the facet digraph and the ridge digraph.
//
// Facet digraph. An arc f → f' exists when the two facets share a ridge and
// the Reeb direction of f, extended from a neighborhood of that ridge,
// points into f' (equivalently, ω(N_f, N_{f'}) > 0). Convexity plus the
// genericity precondition (no Reeb direction tangent to a ridge) guarantee
// exactly one of the two directions holds per shared ridge; a vanishing
// pairing means the shared ridge is Lagrangian and contributes no arc.
//
// Ridge digraph — the search graph. Nodes are the non-Lagrangian ridges.
// An edge i → j exists via a facet F containing both when the Reeb flow on
// F, started from some positive-extent part of i, first exits F through j.
// Each edge carries immutable derived data computed exactly once:
//
//	Domain — the convex chart polygon on i where j is provably the first exit;
//	Map    — the affine first-hit map from Domain into j's chart (+ inverse);
//	Image  — the chart polygon Map(Domain) clipped to j's extent;
//	Action — the affine action increment ½·C_F·t_exit over Domain;
//	Rot    — the principal polar angle of Map's linear part, in units of π.
//
// First-exit ties within the EpsTau window are broken deterministically in
// favor of the lower co-facet index, which keeps results reproducible under
// floating-point noise.
//
// The graphs are plain integer-indexed arenas: ridges and facets are
// referenced by index, never by pointer, so the cyclic structure carries no
// ownership hazards and the whole graph is safely shared read-only.
package reebgraph
