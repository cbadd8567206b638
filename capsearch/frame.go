package capsearch

import (
	"math"

	"github.com/katalvlaran/symcap/convex"
	"github.com/katalvlaran/symcap/polytope"
	"github.com/katalvlaran/symcap/reebgraph"
)

// frame is an immutable snapshot of a partial orbit. extend never mutates
// its receiver, so sibling branches of the DFS share parent frames freely.
type frame struct {
	// path holds the visited ridge indices, path[0] being the start ridge.
	path []int

	// edges holds the traversed edges, one per step; len(edges) == len(path)-1
	// on open paths and len(path) once a closing edge is appended.
	edges []reebgraph.EdgeData

	// facets marks every facet crossed so far (bitset over half-space
	// indices). A facet is never crossed twice by a minimal orbit.
	facets []uint64

	// region is the surviving start-point set, expressed in the chart of
	// the CURRENT ridge (pushed forward through every map so far).
	region convex.Region

	// act is the accumulated action as a functional over the START chart.
	act convex.Functional

	// rot is the accumulated rotation in units of pi.
	rot float64

	// fwd maps start-chart points to current-chart points; inv is its
	// accumulated inverse.
	fwd, inv convex.Affine

	// unconfirmed is set once the path survives only inside a tolerance
	// window (rotation overshoot).
	unconfirmed bool
}

func newFrame(start int, r polytope.Ridge) frame {
	return frame{
		path:   []int{start},
		facets: make([]uint64, 0),
		region: r.Poly,
		fwd:    convex.IdentityAffine(),
		inv:    convex.IdentityAffine(),
	}
}

func (fr frame) facetVisited(hs int) bool {
	w := hs >> 6
	if w >= len(fr.facets) {
		return false
	}
	return fr.facets[w]&(1<<uint(hs&63)) != 0
}

func (fr frame) withFacet(hs int) []uint64 {
	w := hs >> 6
	n := len(fr.facets)
	if w >= n {
		n = w + 1
	}
	out := make([]uint64, n)
	copy(out, fr.facets)
	out[w] |= 1 << uint(hs&63)
	return out
}

// extend crosses one edge, intersecting the pushed-forward region with the
// edge's first-exit domain and image, and applies the action/rotation
// prunes against bound. Returns false when the branch dies.
func (e *engine) extend(fr frame, ed reebgraph.EdgeData, bound float64) (frame, bool) {
	if fr.facetVisited(ed.Facet) {
		return frame{}, false
	}

	// 1) Restrict to points that actually exit through ed.Exit, then push
	//    forward into the destination chart and its ridge polygon.
	clipped := fr.region.ClipRegion(ed.Domain)
	if clipped.Empty() {
		return frame{}, false
	}
	pushed, err := clipped.Transform(ed.Map)
	if err != nil {
		return frame{}, false
	}
	pushed = pushed.ClipRegion(ed.Image)
	if pushed.Empty() {
		return frame{}, false
	}

	// 2) Rotation prune. Overshoot inside EpsRot survives as unconfirmed.
	rot := fr.rot + ed.Rot
	unconf := fr.unconfirmed
	if rot > RotationBound+e.o.EpsRot {
		return frame{}, false
	}
	if rot > RotationBound {
		unconf = true
	}

	// 3) Accumulate action over the start chart and the chart maps.
	act := fr.act.Add(ed.Action.Compose(fr.fwd))
	fwd := ed.Map.Compose(fr.fwd)
	inv := fr.inv.Compose(ed.Inv)

	// 4) Action prune: drop points whose accumulated action alone already
	//    beats the incumbent. The functional is pulled back into the
	//    current chart so it clips pushed directly.
	if !math.IsInf(bound, 1) {
		cur := act.Compose(inv)
		pushed = pushed.Clip(convex.HalfPlane{N: cur.G, C: bound + e.o.EpsAction - cur.H})
		if pushed.Empty() {
			return frame{}, false
		}
	}
	pushed = pushed.Reduce()

	path := make([]int, len(fr.path)+1)
	copy(path, fr.path)
	path[len(fr.path)] = ed.To

	edges := make([]reebgraph.EdgeData, len(fr.edges)+1)
	copy(edges, fr.edges)
	edges[len(fr.edges)] = ed

	return frame{
		path:        path,
		edges:       edges,
		facets:      fr.withFacet(ed.Facet),
		region:      pushed,
		act:         act,
		rot:         rot,
		fwd:         fwd,
		inv:         inv,
		unconfirmed: unconf,
	}, true
}
