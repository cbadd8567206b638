// Package symcap computes the Ekeland–Hofer–Zehnder (EHZ) symplectic
// capacity of a convex 4-dimensional polytope, together with a certificate:
// the closed, piecewise-linear Reeb orbit on the polytope boundary that
// realizes the minimal action.
//
// 🚀 What is symcap?
//
//	A combinatorial-geometric search library that brings together:
//		• 2D convex kernel: half-plane regions, affine push-forwards, extremal queries
//		• 4D face kernel: vertex enumeration, facets/ridges by saturation, oriented charts
//		• Reeb digraphs: facet and ridge digraphs with per-edge affine first-hit data
//		• Capacity search: pruned, exhaustive DFS over directed ridge cycles
//		• Certificates: fixed points lifted to 4D polylines, optionally re-validated
//		  in exact rational arithmetic
//
// ✨ Why symcap?
//
//   - Exact over heuristic – the search is exhaustive within provable bounds
//   - Deterministic – fixed tie-breaking rules make every run reproducible
//   - Numerically honest – borderline candidates are reported as unconfirmed,
//     never silently accepted
//   - Pure Go – no cgo, no hidden deps
//
// Under the hood, everything is organized under four subpackages:
//
//	convex/    — 2D half-plane regions, affine maps and functionals
//	polytope/  — 4D polytopes, face enumeration, Reeb directions, ridge charts
//	reebgraph/ — facet & ridge digraphs with affine edge geometry
//	capsearch/ — the pruned cycle search, certificates and exact re-validation
//
// Quick sketch of the pipeline:
//
//	polytope.Build → reebgraph.New → capsearch.Search → (capacity, orbit)
//
// See each package's doc.go for theory notes, invariants and examples.
//
//	go get github.com/katalvlaran/symcap
package symcap
