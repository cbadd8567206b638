package capsearch

import (
	"fmt"

	"github.com/katalvlaran/symcap/convex"
	"github.com/katalvlaran/symcap/polytope"
	"github.com/katalvlaran/symcap/reebgraph"
)

// closureTol bounds the 4D gap between the lifted endpoint and the start
// point; a wider gap means the 2D certificate does not lift to a closed
// polyline and the candidate is bogus.
const closureTol = 1e-6

// liftOrbit replays the cycle in 4D: the fixed point is lifted through the
// start ridge's chart and pushed along each facet's Reeb direction until it
// hits the exit plane. The returned polyline repeats the start point at the
// end.
func liftOrbit(p *polytope.Polytope, edges []reebgraph.EdgeData, fp convex.Vec2) ([]polytope.Vec4, error) {
	if len(edges) == 0 {
		return nil, fmt.Errorf("empty cycle")
	}

	start := p.Ridges()[edges[0].From]
	x := start.Chart.Lift(fp)
	orbit := make([]polytope.Vec4, 0, len(edges)+1)
	orbit = append(orbit, x)

	for i, ed := range edges {
		f, ok := p.FacetByHS(ed.Facet)
		if !ok {
			return nil, fmt.Errorf("edge %d crosses unknown facet %d", i, ed.Facet)
		}
		exit := p.HalfSpace(ed.Exit)
		den := exit.N.Dot(f.Reeb)
		if den <= 0 {
			return nil, fmt.Errorf("edge %d: Reeb flow does not reach exit plane %d", i, ed.Exit)
		}
		t := (exit.C - exit.N.Dot(x)) / den
		if t < -closureTol {
			return nil, fmt.Errorf("edge %d: negative travel time %g", i, t)
		}
		x = x.Add(f.Reeb.Scale(t))
		orbit = append(orbit, x)
	}

	if gap := orbit[len(orbit)-1].Sub(orbit[0]).Norm(); gap > closureTol {
		return nil, fmt.Errorf("orbit does not close: endpoint gap %g", gap)
	}
	orbit[len(orbit)-1] = orbit[0]

	return orbit, nil
}

// PolylineAction integrates the symplectic action ½∮⟨J·x, dx⟩ along a
// closed polyline, segment by segment. For an orbit returned by Search it
// reproduces Result.Capacity up to floating-point error.
func PolylineAction(orbit []polytope.Vec4) float64 {
	var sum float64
	for i := 0; i+1 < len(orbit); i++ {
		sum += 0.5 * polytope.Omega(orbit[i], orbit[i+1])
	}

	return sum
}

// OrbitLength returns the Euclidean length of the polyline, mostly for
// reporting.
func OrbitLength(orbit []polytope.Vec4) float64 {
	var sum float64
	for i := 0; i+1 < len(orbit); i++ {
		sum += orbit[i+1].Sub(orbit[i]).Norm()
	}

	return sum
}
