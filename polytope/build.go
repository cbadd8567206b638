// Package polytope — Build: the validated constructor that enumerates the
// face lattice and attaches derived Reeb/chart geometry.
package polytope

import (
	"fmt"
	"math"

	"github.com/katalvlaran/symcap/convex"
)

// vertexDedupTol merges enumerated vertices that coincide within tolerance
// (the same corner is discovered once per saturated 4-subset).
const vertexDedupTol = 1e-7

// Build validates the half-space list and constructs the full face kernel:
// vertices by exhaustive 4-subset enumeration, facets and ridges by
// saturation, Reeb directions and oriented ridge charts. The returned
// polytope is immutable.
//
// Validation performed here (fatal, never guessed around):
//   - every half-space has a nonzero normal and a positive offset
//     (star-shapedness around the origin);
//   - the normals positively span every coordinate direction (a cheap
//     necessary condition for boundedness);
//   - at least five distinct vertices exist and every facet kept is
//     genuinely 3-dimensional (≥4 saturating vertices).
//
// Redundant (non-tight) half-spaces are tolerated: they simply produce no
// facet. Lagrangian ridges are flagged, not rejected.
func Build(halfspaces []HalfSpace) (*Polytope, error) {
	if len(halfspaces) < 5 {
		return nil, fmt.Errorf("%w: need at least 5 half-spaces, got %d", ErrInvalidPolytope, len(halfspaces))
	}

	// 1) Normalize and validate the half-spaces.
	hs := make([]HalfSpace, len(halfspaces))
	for i, h := range halfspaces {
		n := h.N.Norm()
		if n <= 1e-12 || h.C <= 0 {
			return nil, fmt.Errorf("%w: half-space %d", ErrBadHalfSpace, i)
		}
		hs[i] = HalfSpace{N: h.N.Scale(1 / n), C: h.C / n}
	}

	// 2) Boundedness guard: every signed coordinate direction must be
	//    cut off by some half-space.
	axes := [4]Vec4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
	for _, e := range axes {
		for _, sgn := range [2]float64{1, -1} {
			covered := false
			for _, h := range hs {
				if h.N.Dot(e.Scale(sgn)) > 1e-9 {
					covered = true
					break
				}
			}
			if !covered {
				return nil, fmt.Errorf("%w: unbounded along a coordinate direction", ErrInvalidPolytope)
			}
		}
	}

	p := &Polytope{hs: hs}

	// 3) Vertex enumeration: solve every 4-subset of boundary hyperplanes,
	//    keep feasible solutions, deduplicate.
	if err := p.enumerateVertices(); err != nil {
		return nil, err
	}

	// 4) Facets by saturation.
	p.buildFacets()

	// 5) Ridges: facet pairs with a 2-dimensional saturating set.
	if err := p.buildRidges(); err != nil {
		return nil, err
	}

	// 6) Edges: vertex pairs saturating at least three common hyperplanes.
	p.buildEdges()

	return p, nil
}

func (p *Polytope) enumerateVertices() error {
	m := len(p.hs)
	var i, j, k, l int
	for i = 0; i < m; i++ {
		for j = i + 1; j < m; j++ {
			for k = j + 1; k < m; k++ {
				for l = k + 1; l < m; l++ {
					var a Mat4
					a[0], a[1], a[2], a[3] = p.hs[i].N, p.hs[j].N, p.hs[k].N, p.hs[l].N
					b := Vec4{p.hs[i].C, p.hs[j].C, p.hs[k].C, p.hs[l].C}
					x, ok := solve4(a, b)
					if !ok {
						continue // the four hyperplanes are not in general position
					}
					if !p.feasible(x) {
						continue
					}
					p.addVertex(x)
				}
			}
		}
	}
	if len(p.verts) < 5 {
		return fmt.Errorf("%w: only %d vertices found", ErrInvalidPolytope, len(p.verts))
	}

	return nil
}

func (p *Polytope) feasible(x Vec4) bool {
	for _, h := range p.hs {
		if h.N.Dot(x)-h.C > EpsFeas {
			return false
		}
	}

	return true
}

func (p *Polytope) addVertex(x Vec4) {
	for _, v := range p.verts {
		if x.Sub(v).Norm() <= vertexDedupTol {
			return
		}
	}
	p.verts = append(p.verts, x)
}

func (p *Polytope) buildFacets() {
	p.facetByHS = make([]int, len(p.hs))
	for i, h := range p.hs {
		var sat []int
		for vi, v := range p.verts {
			if math.Abs(h.N.Dot(v)-h.C) <= EpsSat {
				sat = append(sat, vi)
			}
		}
		if len(sat) < 4 {
			// Redundant or lower-dimensional half-space: tolerated, no facet.
			p.facetByHS[i] = -1
			continue
		}
		p.facetByHS[i] = len(p.facets)
		p.facets = append(p.facets, Facet{
			HS:    i,
			N:     h.N,
			C:     h.C,
			Reeb:  J(h.N),
			Verts: sat,
		})
	}
}

func (p *Polytope) buildRidges() error {
	p.ridgeIdx = make(map[[2]int]int)
	var fa, fb int
	for fa = 0; fa < len(p.facets); fa++ {
		for fb = fa + 1; fb < len(p.facets); fb++ {
			shared := intersectSorted(p.facets[fa].Verts, p.facets[fb].Verts)
			if len(shared) < 3 {
				continue // an edge or vertex, not a ridge
			}
			r, err := p.newRidge(p.facets[fa].HS, p.facets[fb].HS, shared)
			if err != nil {
				return err
			}
			r.Index = len(p.ridges)
			p.ridges = append(p.ridges, r)
			p.ridgeIdx[[2]int{r.Fa, r.Fb}] = r.Index
			p.facets[fa].Ridges = append(p.facets[fa].Ridges, r.Index)
			p.facets[fb].Ridges = append(p.facets[fb].Ridges, r.Index)
		}
	}

	return nil
}

// buildEdges enumerates the 1-faces by saturation: two vertices are joined
// by an edge exactly when at least three supporting hyperplanes are tight
// at both of them, pinning the segment between the endpoints.
func (p *Polytope) buildEdges() {
	satBy := make([][]int, len(p.verts))
	for _, f := range p.facets {
		for _, vi := range f.Verts {
			satBy[vi] = append(satBy[vi], f.HS)
		}
	}
	for a := 0; a < len(p.verts); a++ {
		for b := a + 1; b < len(p.verts); b++ {
			shared := intersectSorted(satBy[a], satBy[b])
			if len(shared) < 3 {
				continue
			}
			p.edges = append(p.edges, Edge{Va: a, Vb: b, Facets: shared})
		}
	}
}

// newRidge constructs the validated ridge between half-spaces a < b: a
// fixed orthonormal chart oriented once so that ω(U,V) > 0, and the chart
// image of the saturating vertices as a bounded convex polygon.
func (p *Polytope) newRidge(a, b int, shared []int) (Ridge, error) {
	if a > b {
		a, b = b, a
	}

	u, v, ok := tangentBasis(p.hs[a].N, p.hs[b].N)
	if !ok {
		return Ridge{}, fmt.Errorf("%w: facets %d/%d", ErrDegenerateRidge, a, b)
	}

	// Orientation is fixed exactly once per ridge, before any projection,
	// so every consumer sees the same chart regardless of entry facet.
	w := Omega(u, v)
	lag := math.Abs(w) <= EpsOmega
	if !lag && w < 0 {
		v = v.Scale(-1)
		w = -w
	}

	// Deterministic origin: the centroid of the saturating vertices.
	var o Vec4
	for _, vi := range shared {
		o = o.Add(p.verts[vi])
	}
	o = o.Scale(1 / float64(len(shared)))
	chart := Chart{Origin: o, U: u, V: v}

	// Project the extent and verify it is genuinely 2-dimensional.
	pts := make([]convex.Vec2, 0, len(shared))
	for _, vi := range shared {
		pts = append(pts, chart.Project(p.verts[vi]))
	}
	if !spans2D(pts) {
		return Ridge{}, fmt.Errorf("%w: facets %d/%d have a collinear vertex set", ErrDegenerateRidge, a, b)
	}

	return Ridge{
		Fa:         a,
		Fb:         b,
		Chart:      chart,
		Poly:       convex.FromVertices(pts),
		Verts:      shared,
		OmegaUV:    w,
		Lagrangian: lag,
	}, nil
}

// spans2D reports whether the points have genuine 2-dimensional affine
// extent: some triangle among them has non-negligible area.
func spans2D(pts []convex.Vec2) bool {
	if len(pts) < 3 {
		return false
	}
	base := pts[0]
	var d1 convex.Vec2
	for _, q := range pts[1:] {
		d := q.Sub(base)
		if d.Norm() <= vertexDedupTol {
			continue
		}
		if d1.Norm() == 0 {
			d1 = d
			continue
		}
		if math.Abs(d1.Cross(d)) > vertexDedupTol*d1.Norm() {
			return true
		}
	}

	return false
}

// intersectSorted intersects two ascending index slices.
func intersectSorted(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}

	return out
}
