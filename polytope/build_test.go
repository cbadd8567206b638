package polytope_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symcap/polytope"
)

func TestBuild_Hypercube_FaceLattice(t *testing.T) {
	p, err := polytope.Build(polytope.Hypercube(1))
	require.NoError(t, err)

	assert.Len(t, p.Vertices(), 16, "hypercube has 16 vertices")
	assert.Len(t, p.Facets(), 8, "hypercube has 8 facets")
	assert.Len(t, p.Ridges(), 24, "hypercube has 24 ridges")

	// Every facet is a 3-cube: 8 saturating vertices, 6 ridges.
	for _, f := range p.Facets() {
		assert.Len(t, f.Verts, 8)
		assert.Len(t, f.Ridges, 6)
	}
}

func TestBuild_Hypercube_Edges(t *testing.T) {
	p, err := polytope.Build(polytope.Hypercube(1))
	require.NoError(t, err)

	edges := p.Edges()
	assert.Len(t, edges, 32, "hypercube has 32 edges")

	verts := p.Vertices()
	for _, e := range edges {
		assert.Less(t, e.Va, e.Vb)
		assert.GreaterOrEqual(t, len(e.Facets), 3)

		// Cube edge endpoints differ in exactly one coordinate.
		diff := 0
		for k := 0; k < 4; k++ {
			if verts[e.Va][k] != verts[e.Vb][k] {
				diff++
			}
		}
		assert.Equal(t, 1, diff, "edge %d-%d", e.Va, e.Vb)

		// The shared hyperplanes are tight at both endpoints.
		for _, hi := range e.Facets {
			h := p.HalfSpace(hi)
			assert.InDelta(t, h.C, h.N.Dot(verts[e.Va]), 1e-9)
			assert.InDelta(t, h.C, h.N.Dot(verts[e.Vb]), 1e-9)
		}
	}
}

func TestBuild_Hypercube_LagrangianRidges(t *testing.T) {
	p, err := polytope.Build(polytope.Hypercube(1))
	require.NoError(t, err)

	nonLag := 0
	for _, r := range p.Ridges() {
		if r.Lagrangian {
			// The form must really vanish on the tangent basis.
			assert.InDelta(t, 0, polytope.Omega(r.Chart.U, r.Chart.V), 1e-12)
			continue
		}
		nonLag++
		// Oriented charts: ω positive on the basis, basis orthonormal.
		assert.Greater(t, r.OmegaUV, 0.0)
		assert.InDelta(t, 1, r.Chart.U.Norm(), 1e-12)
		assert.InDelta(t, 1, r.Chart.V.Norm(), 1e-12)
		assert.InDelta(t, 0, r.Chart.U.Dot(r.Chart.V), 1e-12)
	}
	// Only same-block facet pairs (±x_i with ±y_i) are non-Lagrangian.
	assert.Equal(t, 8, nonLag)
}

func TestBuild_ReebDirections(t *testing.T) {
	p, err := polytope.Build(polytope.Hypercube(1))
	require.NoError(t, err)

	for _, f := range p.Facets() {
		// Reeb = J·N, tangent to the facet.
		assert.InDelta(t, 0, f.N.Dot(f.Reeb), 1e-12)
		assert.InDelta(t, 1, f.Reeb.Norm(), 1e-12)
	}
}

func TestBuild_RedundantHalfSpaceTolerated(t *testing.T) {
	hs := append(polytope.Hypercube(1), polytope.HalfSpace{N: polytope.Vec4{1, 0, 0, 0}, C: 2})
	p, err := polytope.Build(hs)
	require.NoError(t, err)

	assert.Len(t, p.Facets(), 8, "the loose half-space produces no facet")
	_, tight := p.FacetByHS(8)
	assert.False(t, tight)
}

func TestBuild_InputValidation(t *testing.T) {
	// Too few half-spaces.
	_, err := polytope.Build(polytope.Hypercube(1)[:4])
	assert.ErrorIs(t, err, polytope.ErrInvalidPolytope)

	// Non-positive offset: not star-shaped around the origin.
	bad := polytope.Hypercube(1)
	bad[0].C = -1
	_, err = polytope.Build(bad)
	assert.ErrorIs(t, err, polytope.ErrBadHalfSpace)

	// Removing one side leaves the body unbounded.
	unbounded := polytope.Hypercube(1)[1:]
	_, err = polytope.Build(unbounded)
	assert.ErrorIs(t, err, polytope.ErrInvalidPolytope)
}

func TestBuild_RotatedCube(t *testing.T) {
	m := polytope.BlockRotation(0.3, 1.1)
	hs, err := polytope.ApplyLinear(m, polytope.Hypercube(1))
	require.NoError(t, err)

	p, err := polytope.Build(hs)
	require.NoError(t, err)
	assert.Len(t, p.Vertices(), 16)
	assert.Len(t, p.Facets(), 8)
	assert.Len(t, p.Ridges(), 24)
}

func TestBlockRotation_IsSymplectic(t *testing.T) {
	m := polytope.BlockRotation(0.7, -0.2)
	u := polytope.Vec4{0.3, -1.2, 0.8, 0.5}
	v := polytope.Vec4{-0.9, 0.4, 1.5, -0.6}
	assert.InDelta(t, polytope.Omega(u, v), polytope.Omega(m.MulVec(u), m.MulVec(v)), 1e-12)
}

func TestMat4_Inverse(t *testing.T) {
	m := polytope.BlockRotation(0.5, 0.9)
	inv, err := m.Inverse()
	require.NoError(t, err)

	id := m.Mul(inv)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, id[i][j], 1e-12)
		}
	}
}

func TestChart_ProjectLiftRoundtrip(t *testing.T) {
	p, err := polytope.Build(polytope.Hypercube(1))
	require.NoError(t, err)

	for _, r := range p.Ridges() {
		for _, vi := range r.Verts {
			x := p.Vertices()[vi]
			back := r.Chart.Lift(r.Chart.Project(x))
			assert.InDelta(t, 0, back.Sub(x).Norm(), 1e-9,
				"ridge %d vertex %d must round-trip through its chart", r.Index, vi)
		}
	}
}

func TestRidgePolygon_ContainsProjectedVertices(t *testing.T) {
	m := polytope.BlockRotation(math.Pi/5, math.Pi/7)
	hs, err := polytope.ApplyLinear(m, polytope.BoxProduct(1, 1, 2, 2))
	require.NoError(t, err)
	p, err := polytope.Build(hs)
	require.NoError(t, err)

	for _, r := range p.Ridges() {
		for _, vi := range r.Verts {
			q := r.Chart.Project(p.Vertices()[vi])
			assert.True(t, r.Poly.Contains(q, 1e-6),
				"ridge %d polygon must contain its own vertex image", r.Index)
		}
	}
}
