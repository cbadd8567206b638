package capsearch

import (
	"math"

	"github.com/katalvlaran/symcap/convex"
)

// dirNoise separates a genuinely flat action gradient from rounding noise
// when sliding along a line of fixed points.
const dirNoise = 1e-12

type frameFixedPoint struct {
	point    convex.Vec2
	action   float64
	marginal bool
}

// fixedPoint solves p = fwd(p) inside the closed frame's region, which at
// closure lives in the start chart again. The branch on rank of (A − I)
// handles degenerate return maps: a line of fixed points (rank 1) or the
// identity (rank 0), both common on product polytopes.
func (e *engine) fixedPoint(fr frame) (frameFixedPoint, bool) {
	m := fr.fwd.A.Sub(convex.Eye2())
	b := fr.fwd.B
	det := m.Det()
	scale := m.MaxAbs()

	// Regular case: unique fixed point by Cramer's rule on (A−I)·p = −B.
	if math.Abs(det) > e.o.EpsDet*math.Max(1, scale*scale) {
		p := convex.Vec2{
			X: (-b.X*m.A22 + b.Y*m.A12) / det,
			Y: (b.X*m.A21 - b.Y*m.A11) / det,
		}
		if !fr.region.Contains(p, e.o.EpsFeas) {
			return frameFixedPoint{}, false
		}

		return frameFixedPoint{
			point:    p,
			action:   fr.act.At(p),
			marginal: !fr.region.Contains(p, convex.Eps),
		}, true
	}

	// Rank 0: the return map is (numerically) the identity and every point
	// of the region is fixed. Minimize the action over the region; when it
	// is constant, the centroid keeps the choice deterministic.
	if scale <= e.o.EpsDet {
		if b.Norm() > e.o.EpsFeas {
			return frameFixedPoint{}, false // pure translation, nothing closes
		}
		if fr.act.G.Norm() <= dirNoise {
			c, ok := fr.region.Centroid()
			if !ok {
				return frameFixedPoint{}, false
			}

			return frameFixedPoint{point: c, action: fr.act.At(c)}, true
		}
		p, ok := minVertex(fr.region, fr.act)
		if !ok {
			return frameFixedPoint{}, false
		}

		return frameFixedPoint{point: p, action: fr.act.At(p)}, true
	}

	// Rank 1: fixed points form a line. Pick the dominant row of (A−I) as
	// the line's normal, check the other row is consistent, then slide
	// along the line to the action minimum inside the region.
	r1, c1 := convex.Vec2{X: m.A11, Y: m.A12}, -b.X
	r2, c2 := convex.Vec2{X: m.A21, Y: m.A22}, -b.Y
	if r2.Norm() > r1.Norm() {
		r1, r2 = r2, r1
		c1, c2 = c2, c1
	}
	n := r1.Norm()
	p0 := r1.Scale(c1 / (n * n))
	d := convex.Vec2{X: -r1.Y, Y: r1.X}.Scale(1 / n)
	if math.Abs(r2.Dot(p0)-c2) > e.o.EpsFeas*(1+math.Abs(c2)) {
		return frameFixedPoint{}, false // rows disagree, no fixed points
	}

	lo, hi, ok := fr.region.ClipLine(p0, d)
	if !ok {
		return frameFixedPoint{}, false
	}
	slope := fr.act.G.Dot(d)
	s := (lo + hi) / 2
	switch {
	case slope > dirNoise:
		s = lo
	case slope < -dirNoise:
		s = hi
	}
	p := p0.Add(d.Scale(s))

	return frameFixedPoint{point: p, action: fr.act.At(p)}, true
}

// minVertex returns the region vertex minimizing l, breaking ties
// lexicographically so repeated runs report the same certificate.
func minVertex(r convex.Region, l convex.Functional) (convex.Vec2, bool) {
	vs := r.Vertices()
	if len(vs) == 0 {
		return convex.Vec2{}, false
	}
	best := vs[0]
	bestVal := l.At(best)
	for _, v := range vs[1:] {
		val := l.At(v)
		switch {
		case val < bestVal-dirNoise:
			best, bestVal = v, val
		case val <= bestVal+dirNoise:
			if v.X < best.X || (v.X == best.X && v.Y < best.Y) {
				best, bestVal = v, val
			}
		}
	}

	return best, true
}
