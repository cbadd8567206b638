// Package polytope — deterministic constructors for the standard bodies
// used throughout the tests and examples. Random or enumerative polytope
// generation is a collaborator's concern, not this package's.
package polytope

import (
	"fmt"
	"math"
)

// Hypercube returns the half-spaces of [-r, r]⁴.
func Hypercube(r float64) []HalfSpace {
	return BoxProduct(r, r, r, r)
}

// BoxProduct returns the half-spaces of the product of two planar boxes:
// [-a1, a1]×[-b1, b1] in the (x1, y1) symplectic plane and
// [-a2, a2]×[-b2, b2] in the (x2, y2) plane. The EHZ capacity of such a
// product is the smaller of the two box areas.
func BoxProduct(a1, b1, a2, b2 float64) []HalfSpace {
	return []HalfSpace{
		{N: Vec4{1, 0, 0, 0}, C: a1},
		{N: Vec4{-1, 0, 0, 0}, C: a1},
		{N: Vec4{0, 1, 0, 0}, C: b1},
		{N: Vec4{0, -1, 0, 0}, C: b1},
		{N: Vec4{0, 0, 1, 0}, C: a2},
		{N: Vec4{0, 0, -1, 0}, C: a2},
		{N: Vec4{0, 0, 0, 1}, C: b2},
		{N: Vec4{0, 0, 0, -1}, C: b2},
	}
}

// BlockRotation returns the linear symplectomorphism that rotates the
// (x1, y1) plane by alpha and the (x2, y2) plane by beta.
func BlockRotation(alpha, beta float64) Mat4 {
	ca, sa := math.Cos(alpha), math.Sin(alpha)
	cb, sb := math.Cos(beta), math.Sin(beta)

	return Mat4{
		{ca, -sa, 0, 0},
		{sa, ca, 0, 0},
		{0, 0, cb, -sb},
		{0, 0, sb, cb},
	}
}

// ApplyLinear pushes a half-space list forward under an invertible linear
// map m: the image of {x : N·x ≤ C} under x ↦ m·x is {y : (m⁻ᵀN)·y ≤ C},
// renormalized to keep unit normals. Returns ErrSingular when m is not
// invertible.
func ApplyLinear(m Mat4, hs []HalfSpace) ([]HalfSpace, error) {
	inv, err := m.Inverse()
	if err != nil {
		return nil, fmt.Errorf("ApplyLinear: %w", err)
	}
	invT := inv.Transpose()

	out := make([]HalfSpace, len(hs))
	for i, h := range hs {
		n := invT.MulVec(h.N)
		s := n.Norm()
		if s <= 1e-12 {
			return nil, fmt.Errorf("ApplyLinear: %w", ErrSingular)
		}
		out[i] = HalfSpace{N: n.Scale(1 / s), C: h.C / s}
	}

	return out, nil
}
