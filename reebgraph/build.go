// Package reebgraph — construction of the facet and ridge digraphs.
package reebgraph

import (
	"math"
	"sort"

	"github.com/katalvlaran/symcap/convex"
	"github.com/katalvlaran/symcap/polytope"
)

// angleNoise absorbs floating-point noise around a zero polar angle so a
// numerically tiny negative angle is not lifted by a full turn.
const angleNoise = 1e-12

// NewFacetGraph orients the facet adjacency by Reeb flow: an arc f → f'
// per shared ridge with ω(N_f, N_{f'}) > EpsOmega. Lagrangian ridges
// (vanishing pairing) contribute no arc.
func NewFacetGraph(p *polytope.Polytope, opts ...Option) (*FacetGraph, error) {
	if p == nil {
		return nil, ErrNilPolytope
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	facets := p.Facets()
	bySlice := make(map[int]int, len(facets)) // half-space index → slice index
	for i, f := range facets {
		bySlice[f.HS] = i
	}

	g := &FacetGraph{Out: make([][]int, len(facets))}
	for fi, f := range facets {
		for _, ri := range f.Ridges {
			r := p.Ridges()[ri]
			other := r.Fa
			if other == f.HS {
				other = r.Fb
			}
			// Arc f → other iff the Reeb direction of f points across the
			// shared ridge into the other facet.
			if p.HalfSpace(other).N.Dot(f.Reeb) > o.EpsOmega {
				g.Out[fi] = append(g.Out[fi], bySlice[other])
			}
		}
		sort.Ints(g.Out[fi])
	}

	return g, nil
}

// NewRidgeGraph builds the primary search graph: for every facet F, every
// ridge through which the Reeb flow enters F, and every co-facet through
// which it can exit first, the affine edge geometry is derived in closed
// form and cached. All EdgeData is immutable afterwards; the graph is safe
// for concurrent read-only use.
func NewRidgeGraph(p *polytope.Polytope, opts ...Option) (*RidgeGraph, error) {
	if p == nil {
		return nil, ErrNilPolytope
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	ridges := p.Ridges()
	g := &RidgeGraph{Edges: make([][]EdgeData, len(ridges)), p: p}
	for _, r := range ridges {
		if !r.Lagrangian {
			g.Nodes = append(g.Nodes, r.Index)
		} else if o.Logger != nil {
			o.Logger.Debug("excluding Lagrangian ridge", "ridge", r.Index, "facets", [2]int{r.Fa, r.Fb})
		}
	}
	if len(g.Nodes) == 0 {
		return nil, ErrNoRidges
	}

	for _, f := range p.Facets() {
		buildFacetEdges(p, f, o, g)
	}

	// Deterministic traversal order: ascending action lower bound, then
	// target ridge, then exit co-facet.
	for i := range g.Edges {
		es := g.Edges[i]
		sort.SliceStable(es, func(a, b int) bool {
			if es[a].MinAction != es[b].MinAction {
				return es[a].MinAction < es[b].MinAction
			}
			if es[a].To != es[b].To {
				return es[a].To < es[b].To
			}

			return es[a].Exit < es[b].Exit
		})
	}

	return g, nil
}

// exitPlane is the per-co-facet exit-time functional over a fixed source
// chart: t(x) = (C_K − N_K·x)/(N_K·Reeb), affine in chart coordinates.
type exitPlane struct {
	hs    int               // co-facet half-space index
	ridge int               // ridge shared with the traversed facet
	t     convex.Functional // exit time over the source chart
}

// buildFacetEdges derives every ridge-digraph edge that crosses facet f.
func buildFacetEdges(p *polytope.Polytope, f polytope.Facet, o Options, g *RidgeGraph) {
	ridges := p.Ridges()

	// 1) Split f's co-facets into entries and exits by the sign of
	//    N_other · Reeb(f). Tangent pairings (|·| ≤ EpsOmega) are excluded
	//    by the genericity precondition and contribute nothing.
	type coFacet struct {
		hs, ridge int
		d         float64
	}
	var entries, exits []coFacet
	for _, ri := range f.Ridges {
		r := ridges[ri]
		other := r.Fa
		if other == f.HS {
			other = r.Fb
		}
		d := p.HalfSpace(other).N.Dot(f.Reeb)
		switch {
		case d > o.EpsOmega:
			exits = append(exits, coFacet{hs: other, ridge: ri, d: d})
		case d < -o.EpsOmega:
			entries = append(entries, coFacet{hs: other, ridge: ri, d: d})
		}
	}

	// 2) For each non-Lagrangian entry ridge, express every exit time as an
	//    affine functional over the entry chart and carve out the first-exit
	//    domains.
	for _, in := range entries {
		src := ridges[in.ridge]
		if src.Lagrangian {
			continue
		}
		planes := make([]exitPlane, 0, len(exits))
		for _, ex := range exits {
			c := p.HalfSpace(ex.hs)
			planes = append(planes, exitPlane{
				hs:    ex.hs,
				ridge: ex.ridge,
				t: convex.Functional{
					G: convex.Vec2{
						X: -c.N.Dot(src.Chart.U) / ex.d,
						Y: -c.N.Dot(src.Chart.V) / ex.d,
					},
					H: (c.C - c.N.Dot(src.Chart.Origin)) / ex.d,
				},
			})
		}

		for ki, k := range planes {
			dst := ridges[k.ridge]
			if dst.Lagrangian {
				continue // first exit into excluded geometry: no edge
			}
			if e, ok := newEdge(p, f, src, dst, k, planes, ki, o); ok {
				g.Edges[src.Index] = append(g.Edges[src.Index], e)
			}
		}
	}
}

// newEdge assembles the EdgeData for first exit through planes[ki]. ok is
// false when the first-exit domain is empty or the hit map degenerates.
func newEdge(
	p *polytope.Polytope,
	f polytope.Facet,
	src, dst polytope.Ridge,
	k exitPlane,
	planes []exitPlane,
	ki int,
	o Options,
) (EdgeData, bool) {
	// 1) Domain: within src's extent, t_k must undercut every other exit.
	//    Near-ties inside the EpsTau window go to the lower co-facet index.
	cons := make([]convex.HalfPlane, 0, len(planes)-1)
	for mi, m := range planes {
		if mi == ki {
			continue
		}
		tau := o.EpsTau
		if k.hs > m.hs {
			tau = -o.EpsTau
		}
		cons = append(cons, convex.HalfPlane{
			N: k.t.G.Sub(m.t.G),
			C: m.t.H - k.t.H + tau,
		})
	}
	domain := src.Poly.Clip(cons...).Reduce()
	if domain.Empty() {
		return EdgeData{}, false
	}

	// 2) First-hit map: y(x) = x + t_k(x)·Reeb, read in dst's chart. The
	//    map is affine, so three probe evaluations determine it exactly.
	hit := func(q convex.Vec2) convex.Vec2 {
		x := src.Chart.Lift(q)
		y := x.Add(f.Reeb.Scale(k.t.At(q)))

		return dst.Chart.Project(y)
	}
	q00 := hit(convex.Vec2{})
	q10 := hit(convex.Vec2{X: 1})
	q01 := hit(convex.Vec2{Y: 1})
	mp := convex.Affine{
		A: convex.Mat2{
			A11: q10.X - q00.X, A12: q01.X - q00.X,
			A21: q10.Y - q00.Y, A22: q01.Y - q00.Y,
		},
		B: q00,
	}
	inv, err := mp.Inverse()
	if err != nil {
		if o.Logger != nil {
			o.Logger.Debug("degenerate first-hit map", "from", src.Index, "to", dst.Index, "facet", f.HS)
		}

		return EdgeData{}, false
	}

	// 3) Image: the push-forward of the domain clipped to dst's extent.
	img, err := domain.Transform(mp)
	if err != nil {
		return EdgeData{}, false
	}
	img = img.ClipRegion(dst.Poly).Reduce()
	if img.Empty() {
		return EdgeData{}, false
	}

	// 4) Action increment ½·C_F·t(x) and the rotation increment from the
	//    polar factor of the linear part, normalized to [0, 2) half-turns.
	act := convex.Functional{G: k.t.G.Scale(f.C / 2), H: k.t.H * f.C / 2}
	th := mp.A.RotationAngle()
	if th < -angleNoise {
		th += 2 * math.Pi
	} else if th < 0 {
		th = 0
	}

	minAct, _, ok := domain.Extremes(act)
	if !ok {
		return EdgeData{}, false
	}

	return EdgeData{
		From:      src.Index,
		To:        dst.Index,
		Facet:     f.HS,
		Exit:      k.hs,
		Domain:    domain,
		Map:       mp,
		Inv:       inv,
		Image:     img,
		Action:    act,
		Rot:       th / math.Pi,
		MinAction: minAct,
	}, true
}
