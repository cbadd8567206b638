package capsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symcap/convex"
)

func testEngine() *engine {
	return &engine{o: DefaultOptions()}
}

func unitSquare() convex.Region {
	return convex.FromVertices([]convex.Vec2{
		{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1},
	})
}

func TestFixedPoint_Regular(t *testing.T) {
	// Contraction toward (0.5, 0.5): p = 0.5·p + (0.25, 0.25).
	fr := frame{
		region: unitSquare(),
		fwd: convex.Affine{
			A: convex.Mat2{A11: 0.5, A22: 0.5},
			B: convex.Vec2{X: 0.25, Y: 0.25},
		},
		act: convex.Functional{G: convex.Vec2{X: 1}, H: 1},
	}

	fp, ok := testEngine().fixedPoint(fr)
	require.True(t, ok)
	assert.InDelta(t, 0.5, fp.point.X, 1e-12)
	assert.InDelta(t, 0.5, fp.point.Y, 1e-12)
	assert.InDelta(t, 1.5, fp.action, 1e-12)
	assert.False(t, fp.marginal)
}

func TestFixedPoint_RegularOutsideRegion(t *testing.T) {
	// Same map, but the region excludes the fixed point.
	fr := frame{
		region: convex.FromVertices([]convex.Vec2{
			{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 0, Y: 0}, {X: -1, Y: 0},
		}),
		fwd: convex.Affine{
			A: convex.Mat2{A11: 0.5, A22: 0.5},
			B: convex.Vec2{X: 0.25, Y: 0.25},
		},
	}

	_, ok := testEngine().fixedPoint(fr)
	assert.False(t, ok)
}

func TestFixedPoint_IdentityConstantAction(t *testing.T) {
	// Identity return map with flat action: every point is fixed and the
	// centroid is the deterministic representative.
	fr := frame{
		region: unitSquare(),
		fwd:    convex.IdentityAffine(),
		act:    convex.Functional{H: 4},
	}

	fp, ok := testEngine().fixedPoint(fr)
	require.True(t, ok)
	assert.InDelta(t, 0, fp.point.X, 1e-9)
	assert.InDelta(t, 0, fp.point.Y, 1e-9)
	assert.InDelta(t, 4, fp.action, 1e-12)
}

func TestFixedPoint_IdentitySlopedAction(t *testing.T) {
	// Identity map with a sloped action: the minimizing vertex wins.
	fr := frame{
		region: unitSquare(),
		fwd:    convex.IdentityAffine(),
		act:    convex.Functional{G: convex.Vec2{X: 1}, H: 2},
	}

	fp, ok := testEngine().fixedPoint(fr)
	require.True(t, ok)
	assert.InDelta(t, -1, fp.point.X, 1e-9)
	assert.InDelta(t, 1, fp.action, 1e-9)
}

func TestFixedPoint_Translation(t *testing.T) {
	// A pure translation has no fixed point at all.
	fr := frame{
		region: unitSquare(),
		fwd:    convex.Affine{A: convex.Eye2(), B: convex.Vec2{X: 0.5}},
	}

	_, ok := testEngine().fixedPoint(fr)
	assert.False(t, ok)
}

func TestFixedPoint_RankOneLine(t *testing.T) {
	// p = (x, 0.5·y + 0.25) fixes the line y = 0.5. With action growing in
	// x the solver slides to the left end of the chord.
	fr := frame{
		region: unitSquare(),
		fwd: convex.Affine{
			A: convex.Mat2{A11: 1, A22: 0.5},
			B: convex.Vec2{Y: 0.25},
		},
		act: convex.Functional{G: convex.Vec2{X: 1}, H: 3},
	}

	fp, ok := testEngine().fixedPoint(fr)
	require.True(t, ok)
	assert.InDelta(t, -1, fp.point.X, 1e-9)
	assert.InDelta(t, 0.5, fp.point.Y, 1e-9)
	assert.InDelta(t, 2, fp.action, 1e-9)
}

func TestFixedPoint_RankOneFlatAction(t *testing.T) {
	// Flat action along the fixed line: the chord midpoint is chosen.
	fr := frame{
		region: unitSquare(),
		fwd: convex.Affine{
			A: convex.Mat2{A11: 1, A22: 0.5},
			B: convex.Vec2{Y: 0.25},
		},
		act: convex.Functional{H: 7},
	}

	fp, ok := testEngine().fixedPoint(fr)
	require.True(t, ok)
	assert.InDelta(t, 0, fp.point.X, 1e-9)
	assert.InDelta(t, 0.5, fp.point.Y, 1e-9)
	assert.InDelta(t, 7, fp.action, 1e-12)
}

func TestMinVertex_TieBreak(t *testing.T) {
	// Action depends only on y, so both bottom vertices tie; the
	// lexicographically smaller one is reported.
	p, ok := minVertex(unitSquare(), convex.Functional{G: convex.Vec2{Y: 1}})
	require.True(t, ok)
	assert.InDelta(t, -1, p.X, 1e-9)
	assert.InDelta(t, -1, p.Y, 1e-9)
}
