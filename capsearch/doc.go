// Package capsearch finds the minimal-action closed Reeb orbit on the
// boundary of a convex 4D polytope and reports its action, the EHZ
// symplectic capacity, together with a verifiable certificate.
//
// The search is a depth-first enumeration of cycles in the ridge digraph
// built by package reebgraph. A partial path carries an immutable frame:
// the polygon of surviving start points (pushed forward into the current
// ridge's chart), the composed affine return map and its inverse, the
// accumulated action as a functional over the start chart, and the
// accumulated rotation. Three prunes keep the enumeration finite and
// sharp:
//
//  1. facet prune    — a facet is never crossed twice;
//  2. action prune   — points whose accumulated action already exceeds the
//     incumbent (plus EpsAction) are clipped away; an empty region kills
//     the branch;
//  3. rotation prune — paths whose rotation exceeds 2 (plus EpsRot) are cut;
//     overshoot inside the window survives flagged unconfirmed.
//
// When a path returns to its start ridge, the closed return map is solved
// for a fixed point inside the surviving region. Degenerate return maps are
// handled by rank: a unique fixed point (rank 2), a segment of fixed points
// minimized over the action (rank 1), or an identity map minimized over the
// whole region (rank 0, typical for product polytopes). The winning fixed
// point is lifted back to a closed 4D polyline.
//
// Start ridges are processed in ascending index order and paths never
// descend to a ridge below their start, so every cycle is enumerated from
// its minimal ridge exactly once. With Workers > 1 the start ridges fan out
// over a goroutine pool sharing one atomic incumbent bound.
//
// Candidates that survive only inside a tolerance window can be re-checked
// in exact rational arithmetic (WithExactCheck): the cycle's closure system
// is solved over big.Rat and every travel time, membership constraint and
// the action sum is verified without rounding.
package capsearch
