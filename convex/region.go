// Package convex — Region: a convex subset of the plane represented as a
// conjunction of half-planes, with lazy vertex discovery.
package convex

import (
	"math"
	"sort"
)

// vertexTol is the feasibility slack used when keeping candidate boundary
// vertices. It is deliberately looser than Eps so that thin, nearly
// degenerate regions (slivers produced by long clip chains) are retained
// rather than discarded; the search layer never loses a feasible subtree to
// vertex rounding.
const vertexTol = 16 * Eps

// Region is an intersection of half-planes N·x ≤ C.
//
// The zero value is the whole plane. Regions are immutable: Clip, Transform
// and Reduce return new values and share no mutable state with the receiver,
// so a Region may be read concurrently without locking.
type Region struct {
	hs []HalfPlane
}

// NewRegion builds a region from the given constraints. Constraint normals
// are normalized to unit length; zero-normal constraints are dropped when
// vacuous (C ≥ 0) and replaced by a canonical infeasible pair otherwise.
func NewRegion(hs ...HalfPlane) Region {
	r := Region{hs: make([]HalfPlane, 0, len(hs))}

	return r.Clip(hs...)
}

// FromVertices builds the H-representation of the convex hull of pts.
// The hull is computed by Andrew's monotone chain; each counter-clockwise
// hull edge p→q contributes the outward constraint (qY−pY, −(qX−pX))·x ≤ C.
// Degenerate inputs are supported: a single point becomes an axis-aligned
// equality box, a segment becomes two lateral and two longitudinal bounds.
func FromVertices(pts []Vec2) Region {
	hull := convexHull(pts)
	switch len(hull) {
	case 0:
		// No points: canonical infeasible region.
		return NewRegion(HalfPlane{N: Vec2{X: 1}, C: -1}, HalfPlane{N: Vec2{X: -1}, C: -1})
	case 1:
		p := hull[0]

		return NewRegion(
			HalfPlane{N: Vec2{X: 1}, C: p.X},
			HalfPlane{N: Vec2{X: -1}, C: -p.X},
			HalfPlane{N: Vec2{Y: 1}, C: p.Y},
			HalfPlane{N: Vec2{Y: -1}, C: -p.Y},
		)
	case 2:
		p, q := hull[0], hull[1]
		d := q.Sub(p)
		n := Vec2{X: -d.Y, Y: d.X} // lateral normal

		return NewRegion(
			HalfPlane{N: n, C: n.Dot(p)},
			HalfPlane{N: n.Scale(-1), C: -n.Dot(p)},
			HalfPlane{N: d, C: d.Dot(q)},
			HalfPlane{N: d.Scale(-1), C: -d.Dot(p)},
		)
	}

	hs := make([]HalfPlane, 0, len(hull))
	var p, q Vec2
	for i := range hull {
		p, q = hull[i], hull[(i+1)%len(hull)]
		n := Vec2{X: q.Y - p.Y, Y: -(q.X - p.X)} // outward for CCW winding
		hs = append(hs, HalfPlane{N: n, C: n.Dot(p)})
	}

	return NewRegion(hs...)
}

// HalfPlanes returns a copy of the constraint list.
func (r Region) HalfPlanes() []HalfPlane {
	out := make([]HalfPlane, len(r.hs))
	copy(out, r.hs)

	return out
}

// Clip returns the intersection of r with the given constraints.
func (r Region) Clip(hs ...HalfPlane) Region {
	out := make([]HalfPlane, len(r.hs), len(r.hs)+len(hs))
	copy(out, r.hs)
	for _, h := range hs {
		n := h.N.Norm()
		if n <= Eps {
			if h.C < -Eps {
				// 0 ≤ C with C < 0: canonically infeasible.
				out = append(out,
					HalfPlane{N: Vec2{X: 1}, C: -1},
					HalfPlane{N: Vec2{X: -1}, C: -1})
			}
			continue // vacuous constraint
		}
		out = append(out, HalfPlane{N: h.N.Scale(1 / n), C: h.C / n})
	}

	return Region{hs: out}
}

// ClipRegion intersects r with every constraint of o.
func (r Region) ClipRegion(o Region) Region { return r.Clip(o.hs...) }

// Transform pushes r forward through an invertible affine map f: the result
// is { f(x) : x ∈ r }. Constraints transform algebraically, N' = A⁻ᵀ·N and
// C' = C + N'·B, with no vertex reconstruction. Returns ErrSingular when the
// linear part is not invertible.
func (r Region) Transform(f Affine) (Region, error) {
	inv, err := f.A.Inverse()
	if err != nil {
		return Region{}, err
	}
	invT := inv.Transpose()
	out := make([]HalfPlane, len(r.hs))
	for i, h := range r.hs {
		n := invT.Apply(h.N)
		out[i] = HalfPlane{N: n, C: h.C + n.Dot(f.B)}
	}

	// Route the transformed constraints through Clip so they are
	// renormalized: A⁻ᵀ scales ‖N'‖ by the map's contraction factor, and
	// every downstream tolerance assumes unit normals.
	return Region{}.Clip(out...), nil
}

// Contains reports whether p satisfies every constraint within eps.
func (r Region) Contains(p Vec2, eps float64) bool {
	for _, h := range r.hs {
		if h.Eval(p) > eps {
			return false
		}
	}

	return true
}

// Vertices discovers the boundary vertices of r by pairwise probing:
// every pair of constraint lines is solved, candidates feasible within
// vertexTol are kept, duplicates merged, and the result is sorted
// counter-clockwise around the centroid (deterministically).
//
// For regions carrying at least one bounded conjunct — every region in this
// module — a nonempty feasible set always exposes at least one such vertex,
// including the degenerate point and segment cases.
func (r Region) Vertices() []Vec2 {
	var cand []Vec2
	var i, j int
	for i = 0; i < len(r.hs); i++ {
		for j = i + 1; j < len(r.hs); j++ {
			p, ok := lineIntersect(r.hs[i], r.hs[j])
			if !ok || !r.Contains(p, vertexTol) {
				continue
			}
			cand = append(cand, p)
		}
	}
	if len(cand) == 0 {
		return nil
	}

	// Deduplicate within tolerance (quadratic; vertex counts are tiny).
	uniq := cand[:0]
	for _, p := range cand {
		dup := false
		for _, q := range uniq {
			if p.Sub(q).Norm() <= vertexTol {
				dup = true
				break
			}
		}
		if !dup {
			uniq = append(uniq, p)
		}
	}

	// CCW sort around the centroid; ties resolved by (angle, radius).
	var c Vec2
	for _, p := range uniq {
		c = c.Add(p)
	}
	c = c.Scale(1 / float64(len(uniq)))
	sort.SliceStable(uniq, func(a, b int) bool {
		da, db := uniq[a].Sub(c), uniq[b].Sub(c)
		aa, ab := math.Atan2(da.Y, da.X), math.Atan2(db.Y, db.X)
		if aa != ab {
			return aa < ab
		}

		return da.Norm() < db.Norm()
	})

	return uniq
}

// Empty reports whether the feasible set is empty. See Vertices for the
// boundedness assumption this relies on.
func (r Region) Empty() bool { return len(r.Vertices()) == 0 }

// Extremes returns the minimum and maximum of the affine functional l over
// the region's vertex set. ok is false when the region is empty.
func (r Region) Extremes(l Functional) (min, max float64, ok bool) {
	vs := r.Vertices()
	if len(vs) == 0 {
		return 0, 0, false
	}
	min, max = l.At(vs[0]), l.At(vs[0])
	var v float64
	for _, p := range vs[1:] {
		v = l.At(p)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return min, max, true
}

// Centroid returns the arithmetic mean of the vertex set: a deterministic
// interior (or relative-interior) representative point. ok is false when
// the region is empty.
func (r Region) Centroid() (Vec2, bool) {
	vs := r.Vertices()
	if len(vs) == 0 {
		return Vec2{}, false
	}
	var c Vec2
	for _, p := range vs {
		c = c.Add(p)
	}

	return c.Scale(1 / float64(len(vs))), true
}

// ClipLine intersects the parametric line p0 + s·d with the region and
// returns the feasible parameter interval [lo, hi]. ok is false when the
// intersection is empty or d is (numerically) zero.
func (r Region) ClipLine(p0, d Vec2) (lo, hi float64, ok bool) {
	if d.Norm() <= Eps {
		return 0, 0, false
	}
	lo, hi = math.Inf(-1), math.Inf(1)
	var nd, rhs float64
	for _, h := range r.hs {
		nd = h.N.Dot(d)
		rhs = h.C - h.N.Dot(p0)
		switch {
		case math.Abs(nd) <= Eps:
			if rhs < -vertexTol {
				return 0, 0, false // line entirely outside this constraint
			}
		case nd > 0:
			if s := rhs / nd; s < hi {
				hi = s
			}
		default:
			if s := rhs / nd; s > lo {
				lo = s
			}
		}
	}
	if lo > hi+vertexTol {
		return 0, 0, false
	}
	if lo > hi { // collapse a tolerance-thin interval to its midpoint
		m := (lo + hi) / 2
		lo, hi = m, m
	}

	return lo, hi, true
}

// Reduce drops redundant constraints: a constraint is kept only if some
// vertex of the full region is active on it (within vertexTol). Near-exact
// duplicate constraints collapse to their first occurrence. Reducing an
// empty region returns the canonical infeasible region.
func (r Region) Reduce() Region {
	vs := r.Vertices()
	if len(vs) == 0 {
		return NewRegion(HalfPlane{N: Vec2{X: 1}, C: -1}, HalfPlane{N: Vec2{X: -1}, C: -1})
	}
	out := make([]HalfPlane, 0, len(r.hs))
	for _, h := range r.hs {
		active := false
		for _, p := range vs {
			if math.Abs(h.Eval(p)) <= vertexTol {
				active = true
				break
			}
		}
		if !active {
			continue
		}
		dup := false
		for _, k := range out {
			if k.N.Sub(h.N).Norm() <= Eps && math.Abs(k.C-h.C) <= vertexTol {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, h)
		}
	}

	return Region{hs: out}
}

// lineIntersect solves the 2×2 system of two constraint boundary lines.
func lineIntersect(a, b HalfPlane) (Vec2, bool) {
	det := a.N.Cross(b.N)
	if math.Abs(det) <= Eps {
		return Vec2{}, false
	}

	return Vec2{
		X: (a.C*b.N.Y - b.C*a.N.Y) / det,
		Y: (a.N.X*b.C - b.N.X*a.C) / det,
	}, true
}

// convexHull computes the convex hull of pts (Andrew's monotone chain),
// returned in counter-clockwise order. Collinear interior points are
// dropped. Duplicates within Eps are merged first for stability.
func convexHull(pts []Vec2) []Vec2 {
	// Merge near-duplicates, then sort lexicographically.
	var uniq []Vec2
	for _, p := range pts {
		dup := false
		for _, q := range uniq {
			if p.Sub(q).Norm() <= Eps {
				dup = true
				break
			}
		}
		if !dup {
			uniq = append(uniq, p)
		}
	}
	if len(uniq) <= 2 {
		return uniq
	}
	sort.Slice(uniq, func(i, j int) bool {
		if uniq[i].X != uniq[j].X {
			return uniq[i].X < uniq[j].X
		}

		return uniq[i].Y < uniq[j].Y
	})

	var lower, upper []Vec2
	for _, p := range uniq {
		for len(lower) >= 2 && lower[len(lower)-1].Sub(lower[len(lower)-2]).Cross(p.Sub(lower[len(lower)-2])) <= Eps {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(uniq) - 1; i >= 0; i-- {
		p := uniq[i]
		for len(upper) >= 2 && upper[len(upper)-1].Sub(upper[len(upper)-2]).Cross(p.Sub(upper[len(upper)-2])) <= Eps {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		// All points collinear after pruning; fall back to the extremes.
		return []Vec2{uniq[0], uniq[len(uniq)-1]}
	}

	return hull
}
