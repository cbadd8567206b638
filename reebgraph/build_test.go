package reebgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symcap/convex"
	"github.com/katalvlaran/symcap/polytope"
	"github.com/katalvlaran/symcap/reebgraph"
)

func buildCubeGraph(t *testing.T) (*polytope.Polytope, *reebgraph.RidgeGraph) {
	t.Helper()
	p, err := polytope.Build(polytope.Hypercube(1))
	require.NoError(t, err)
	g, err := reebgraph.NewRidgeGraph(p)
	require.NoError(t, err)

	return p, g
}

func TestNewRidgeGraph_NilPolytope(t *testing.T) {
	_, err := reebgraph.NewRidgeGraph(nil)
	assert.ErrorIs(t, err, reebgraph.ErrNilPolytope)
}

func TestRidgeGraph_Cube_Shape(t *testing.T) {
	p, g := buildCubeGraph(t)

	// Only the 8 same-block ridges are nodes; the 16 Lagrangian ridges are
	// excluded from the search graph entirely.
	assert.Len(t, g.Nodes, 8)
	for _, ri := range g.Nodes {
		assert.False(t, p.Ridges()[ri].Lagrangian)
	}

	// Each node has exactly one outgoing edge (the flow on a cube facet is
	// a parallel translation toward a single co-facet), and Lagrangian
	// ridges have none.
	total := 0
	for ri, es := range g.Edges {
		if p.Ridges()[ri].Lagrangian {
			assert.Empty(t, es, "Lagrangian ridge %d must have no edges", ri)
			continue
		}
		assert.Len(t, es, 1, "ridge %d", ri)
		total += len(es)
	}
	assert.Equal(t, 8, total)
}

func TestRidgeGraph_Cube_EdgeData(t *testing.T) {
	p, g := buildCubeGraph(t)

	for _, ri := range g.Nodes {
		for _, e := range g.Edges[ri] {
			// On the unit cube every crossing takes time 2 on a support-1
			// facet: the action increment is the constant 1.
			lo, hi, ok := e.Domain.Extremes(e.Action)
			require.True(t, ok)
			assert.InDelta(t, 1, lo, 1e-9)
			assert.InDelta(t, 1, hi, 1e-9)
			assert.InDelta(t, 1, e.MinAction, 1e-9)

			// The transverse part of the flow is a translation: the hit map
			// is the identity up to chart offsets, so no rotation.
			assert.InDelta(t, 0, e.Rot, 1e-9)

			// Map and Inv really are inverse to each other.
			p0 := convex.Vec2{X: 0.25, Y: -0.5}
			back := e.Inv.Apply(e.Map.Apply(p0))
			assert.InDelta(t, p0.X, back.X, 1e-9)
			assert.InDelta(t, p0.Y, back.Y, 1e-9)

			// The edge stays inside one symplectic block: both ridges sit
			// on the traversed facet.
			r := p.Ridges()[e.To]
			assert.True(t, r.Fa == e.Facet || r.Fb == e.Facet)
			assert.True(t, r.Fa == e.Exit || r.Fb == e.Exit)
		}
	}
}

func TestRidgeGraph_Cube_TwoFourCycles(t *testing.T) {
	_, g := buildCubeGraph(t)

	// Follow the unique out-edge from every node: each orbit must close
	// after exactly 4 steps.
	for _, start := range g.Nodes {
		cur, steps := start, 0
		for {
			es := g.Edges[cur]
			require.Len(t, es, 1)
			cur = es[0].To
			steps++
			if cur == start || steps > 8 {
				break
			}
		}
		assert.Equal(t, 4, steps, "orbit from ridge %d", start)
	}
}

func TestRidgeGraph_BoxProduct_Actions(t *testing.T) {
	p, err := polytope.Build(polytope.BoxProduct(1, 1, 2, 2))
	require.NoError(t, err)
	g, err := reebgraph.NewRidgeGraph(p)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 8)
	for _, ri := range g.Nodes {
		for _, e := range g.Edges[ri] {
			c := p.HalfSpace(e.Facet).C
			lo, _, ok := e.Domain.Extremes(e.Action)
			require.True(t, ok)
			switch c {
			case 1:
				// Small-box facet: exit time 2 at support 1 → ½·1·2.
				assert.InDelta(t, 1, lo, 1e-9)
			case 2:
				// Large-box facet: exit time 4 at support 2 → ½·2·4.
				assert.InDelta(t, 4, lo, 1e-9)
			default:
				t.Fatalf("unexpected support value %v", c)
			}
		}
	}
}

func TestFacetGraph_Cube_Orientation(t *testing.T) {
	p, err := polytope.Build(polytope.Hypercube(1))
	require.NoError(t, err)
	fg, err := reebgraph.NewFacetGraph(p)
	require.NoError(t, err)

	// Every facet of the cube has exactly one Reeb-outgoing neighbor (the
	// paired coordinate's facet); arcs are antisymmetric.
	for fi, out := range fg.Out {
		assert.Len(t, out, 1, "facet %d", fi)
		for _, fj := range out {
			assert.NotContains(t, fg.Out[fj], fi, "arc %d→%d must not be mirrored", fi, fj)
		}
	}
}
