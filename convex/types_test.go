package convex_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symcap/convex"
)

func TestMat2_Inverse(t *testing.T) {
	m := convex.Mat2{2, 1, 1, 3}
	inv, err := m.Inverse()
	require.NoError(t, err)

	id := m.Mul(inv)
	assert.InDelta(t, 1, id.A11, 1e-12)
	assert.InDelta(t, 0, id.A12, 1e-12)
	assert.InDelta(t, 0, id.A21, 1e-12)
	assert.InDelta(t, 1, id.A22, 1e-12)
}

func TestMat2_Inverse_Singular(t *testing.T) {
	m := convex.Mat2{1, 2, 2, 4}
	_, err := m.Inverse()
	assert.ErrorIs(t, err, convex.ErrSingular)
}

func TestMat2_RotationAngle(t *testing.T) {
	// A pure rotation reports its own angle.
	th := 0.73
	rot := convex.Mat2{math.Cos(th), -math.Sin(th), math.Sin(th), math.Cos(th)}
	assert.InDelta(t, th, rot.RotationAngle(), 1e-12)

	// Uniform scaling does not change the polar angle.
	scaled := convex.Mat2{3 * math.Cos(th), -3 * math.Sin(th), 3 * math.Sin(th), 3 * math.Cos(th)}
	assert.InDelta(t, th, scaled.RotationAngle(), 1e-12)

	// The identity has angle zero.
	assert.InDelta(t, 0, convex.Eye2().RotationAngle(), 1e-15)
}

func TestAffine_ComposeInverse(t *testing.T) {
	f := convex.Affine{A: convex.Mat2{1, 2, 0, 1}, B: convex.Vec2{X: 3, Y: -1}}
	g := convex.Affine{A: convex.Mat2{0, -1, 1, 0}, B: convex.Vec2{X: 1, Y: 1}}

	p := convex.Vec2{X: 0.5, Y: -2}
	fg := f.Compose(g)
	assert.InDelta(t, f.Apply(g.Apply(p)).X, fg.Apply(p).X, 1e-12)
	assert.InDelta(t, f.Apply(g.Apply(p)).Y, fg.Apply(p).Y, 1e-12)

	inv, err := f.Inverse()
	require.NoError(t, err)
	back := inv.Apply(f.Apply(p))
	assert.InDelta(t, p.X, back.X, 1e-12)
	assert.InDelta(t, p.Y, back.Y, 1e-12)
}

func TestFunctional_Compose(t *testing.T) {
	l := convex.Functional{G: convex.Vec2{X: 2, Y: -1}, H: 0.25}
	f := convex.Affine{A: convex.Mat2{1, 1, 0, 2}, B: convex.Vec2{X: -1, Y: 3}}

	p := convex.Vec2{X: 1.5, Y: 0.5}
	lf := l.Compose(f)
	assert.InDelta(t, l.At(f.Apply(p)), lf.At(p), 1e-12)
}
