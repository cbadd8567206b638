// Package convex — core value types: Vec2, Mat2, Affine, Functional,
// HalfPlane, and the shared predicate tolerance.
//
// All types are plain immutable values; every operation returns a new value
// and never mutates its receiver.
package convex

import (
	"errors"
	"math"
)

// Eps is the shared tolerance for all geometric predicates in this package:
// feasibility of a point against a half-plane, vertex deduplication, and
// singularity of 2×2 linear parts.
const Eps = 1e-9

var (
	// ErrSingular indicates a 2×2 matrix (or the linear part of an affine
	// map) whose determinant vanishes within Eps, so it cannot be inverted.
	ErrSingular = errors.New("convex: singular matrix")
)

// Vec2 is a point or direction in the plane.
type Vec2 struct {
	X, Y float64
}

// Add returns a + b.
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

// Sub returns a - b.
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Scale returns s·a.
func (a Vec2) Scale(s float64) Vec2 { return Vec2{s * a.X, s * a.Y} }

// Dot returns the scalar product a·b.
func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// Cross returns the scalar cross product a ∧ b = aX·bY − aY·bX.
func (a Vec2) Cross(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// Norm returns the Euclidean length of a.
func (a Vec2) Norm() float64 { return math.Hypot(a.X, a.Y) }

// Mat2 is a 2×2 matrix in row-major naming: row i, column j.
type Mat2 struct {
	A11, A12 float64
	A21, A22 float64
}

// Eye2 is the 2×2 identity.
func Eye2() Mat2 { return Mat2{1, 0, 0, 1} }

// Det returns the determinant.
func (m Mat2) Det() float64 { return m.A11*m.A22 - m.A12*m.A21 }

// Transpose returns mᵀ.
func (m Mat2) Transpose() Mat2 { return Mat2{m.A11, m.A21, m.A12, m.A22} }

// Apply returns m·v.
func (m Mat2) Apply(v Vec2) Vec2 {
	return Vec2{m.A11*v.X + m.A12*v.Y, m.A21*v.X + m.A22*v.Y}
}

// Mul returns the matrix product m·o.
func (m Mat2) Mul(o Mat2) Mat2 {
	return Mat2{
		m.A11*o.A11 + m.A12*o.A21, m.A11*o.A12 + m.A12*o.A22,
		m.A21*o.A11 + m.A22*o.A21, m.A21*o.A12 + m.A22*o.A22,
	}
}

// Sub returns m − o.
func (m Mat2) Sub(o Mat2) Mat2 {
	return Mat2{m.A11 - o.A11, m.A12 - o.A12, m.A21 - o.A21, m.A22 - o.A22}
}

// MaxAbs returns the largest absolute entry (the ∞-norm over entries).
func (m Mat2) MaxAbs() float64 {
	r := math.Abs(m.A11)
	if v := math.Abs(m.A12); v > r {
		r = v
	}
	if v := math.Abs(m.A21); v > r {
		r = v
	}
	if v := math.Abs(m.A22); v > r {
		r = v
	}

	return r
}

// Inverse returns m⁻¹, or ErrSingular when |det m| ≤ Eps·‖m‖.
func (m Mat2) Inverse() (Mat2, error) {
	d := m.Det()
	scale := m.MaxAbs()
	if scale == 0 || math.Abs(d) <= Eps*scale*scale {
		return Mat2{}, ErrSingular
	}

	return Mat2{m.A22 / d, -m.A12 / d, -m.A21 / d, m.A11 / d}, nil
}

// RotationAngle returns the principal angle θ ∈ (−π, π] of the orthogonal
// polar factor of m (the rotation closest to m in the Frobenius sense),
// assuming det m > 0. For m = Q·S with Q a rotation and S symmetric
// positive-definite, θ = atan2(A21 − A12, A11 + A22).
//
// The angle is invariant under uniform rescaling of m, which is exactly why
// it is used as the per-edge rotation measure: it does not require the
// source and target charts to preserve any particular area.
func (m Mat2) RotationAngle() float64 {
	return math.Atan2(m.A21-m.A12, m.A11+m.A22)
}

// Affine is the affine map x ↦ A·x + B.
type Affine struct {
	A Mat2
	B Vec2
}

// IdentityAffine returns the identity map.
func IdentityAffine() Affine { return Affine{A: Eye2()} }

// Apply evaluates the map at p.
func (f Affine) Apply(p Vec2) Vec2 { return f.A.Apply(p).Add(f.B) }

// Compose returns f∘g, the map p ↦ f(g(p)).
func (f Affine) Compose(g Affine) Affine {
	return Affine{A: f.A.Mul(g.A), B: f.A.Apply(g.B).Add(f.B)}
}

// Inverse returns the inverse map, or ErrSingular.
func (f Affine) Inverse() (Affine, error) {
	inv, err := f.A.Inverse()
	if err != nil {
		return Affine{}, err
	}

	return Affine{A: inv, B: inv.Apply(f.B).Scale(-1)}, nil
}

// Functional is the affine functional x ↦ G·x + H.
type Functional struct {
	G Vec2
	H float64
}

// At evaluates the functional at p.
func (l Functional) At(p Vec2) float64 { return l.G.Dot(p) + l.H }

// Add returns the pointwise sum l + o.
func (l Functional) Add(o Functional) Functional {
	return Functional{G: l.G.Add(o.G), H: l.H + o.H}
}

// Compose returns l∘f, the functional p ↦ l(f(p)).
// Expanding: G' = Aᵀ·G and H' = G·B + H.
func (l Functional) Compose(f Affine) Functional {
	return Functional{G: f.A.Transpose().Apply(l.G), H: l.G.Dot(f.B) + l.H}
}

// HalfPlane is the constraint N·x ≤ C.
type HalfPlane struct {
	N Vec2
	C float64
}

// Eval returns N·p − C: negative strictly inside, zero on the boundary.
func (h HalfPlane) Eval(p Vec2) float64 { return h.N.Dot(p) - h.C }
