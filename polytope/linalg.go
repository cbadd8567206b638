// Package polytope — dense 4D linear-algebra kernels: vector arithmetic,
// the complex structure J and symplectic form ω, 4×4 elimination with
// partial pivoting, and Gram–Schmidt tangent bases.
package polytope

import "math"

// Add returns a + b.
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

// Sub returns a − b.
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

// Scale returns s·a.
func (a Vec4) Scale(s float64) Vec4 {
	return Vec4{s * a[0], s * a[1], s * a[2], s * a[3]}
}

// Dot returns the scalar product a·b.
func (a Vec4) Dot(b Vec4) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// Norm returns the Euclidean length of a.
func (a Vec4) Norm() float64 { return math.Sqrt(a.Dot(a)) }

// J applies the standard complex structure:
// (x1, y1, x2, y2) ↦ (−y1, x1, −y2, x2).
func J(v Vec4) Vec4 { return Vec4{-v[1], v[0], -v[3], v[2]} }

// Omega evaluates the standard symplectic form ω(u, v) = (J·u)·v.
func Omega(u, v Vec4) float64 { return J(u).Dot(v) }

// Mat4 is a dense 4×4 matrix, row major.
type Mat4 [4][4]float64

// Eye4 is the 4×4 identity.
func Eye4() Mat4 {
	return Mat4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

// MulVec returns m·v.
func (m Mat4) MulVec(v Vec4) Vec4 {
	var out Vec4
	for i := 0; i < 4; i++ {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2] + m[i][3]*v[3]
	}

	return out
}

// Mul returns the matrix product m·o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	var i, j, k int
	for i = 0; i < 4; i++ {
		for j = 0; j < 4; j++ {
			var s float64
			for k = 0; k < 4; k++ {
				s += m[i][k] * o[k][j]
			}
			out[i][j] = s
		}
	}

	return out
}

// Transpose returns mᵀ.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = m[j][i]
		}
	}

	return out
}

// Inverse returns m⁻¹ by Gauss–Jordan elimination with partial pivoting.
// Returns ErrSingular when a pivot falls below EpsPivot relative to the
// largest entry.
func (m Mat4) Inverse() (Mat4, error) {
	a := m
	inv := Eye4()
	scale := 0.0
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if v := math.Abs(a[i][j]); v > scale {
				scale = v
			}
		}
	}
	if scale == 0 {
		return Mat4{}, ErrSingular
	}

	var col, row, r, c int
	for col = 0; col < 4; col++ {
		// 1) Partial pivoting: pick the largest remaining entry in column.
		row = col
		for r = col + 1; r < 4; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[row][col]) {
				row = r
			}
		}
		if math.Abs(a[row][col]) <= EpsPivot*scale {
			return Mat4{}, ErrSingular
		}
		a[col], a[row] = a[row], a[col]
		inv[col], inv[row] = inv[row], inv[col]

		// 2) Normalize the pivot row.
		piv := a[col][col]
		for c = 0; c < 4; c++ {
			a[col][c] /= piv
			inv[col][c] /= piv
		}

		// 3) Eliminate the column everywhere else.
		for r = 0; r < 4; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			f := a[r][col]
			for c = 0; c < 4; c++ {
				a[r][c] -= f * a[col][c]
				inv[r][c] -= f * inv[col][c]
			}
		}
	}

	return inv, nil
}

// solve4 solves a·x = b with partial pivoting. ok is false when the system
// is singular within EpsPivot (relative).
func solve4(a Mat4, b Vec4) (Vec4, bool) {
	scale := 0.0
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if v := math.Abs(a[i][j]); v > scale {
				scale = v
			}
		}
	}
	if scale == 0 {
		return Vec4{}, false
	}

	var col, row, r, c int
	for col = 0; col < 4; col++ {
		row = col
		for r = col + 1; r < 4; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[row][col]) {
				row = r
			}
		}
		if math.Abs(a[row][col]) <= EpsPivot*scale {
			return Vec4{}, false
		}
		a[col], a[row] = a[row], a[col]
		b[col], b[row] = b[row], b[col]

		for r = col + 1; r < 4; r++ {
			f := a[r][col] / a[col][col]
			if f == 0 {
				continue
			}
			for c = col; c < 4; c++ {
				a[r][c] -= f * a[col][c]
			}
			b[r] -= f * b[col]
		}
	}

	var x Vec4
	for row = 3; row >= 0; row-- {
		s := b[row]
		for c = row + 1; c < 4; c++ {
			s -= a[row][c] * x[c]
		}
		x[row] = s / a[row][row]
	}

	return x, true
}

// tangentBasis returns an orthonormal basis (u, v) of the orthogonal
// complement of span(na, nb) in R⁴. The construction is deterministic:
// na and nb are orthonormalized first, then the coordinate axes are probed
// in order and Gram–Schmidt residuals above tolerance are kept.
func tangentBasis(na, nb Vec4) (u, v Vec4, ok bool) {
	q1 := na.Scale(1 / na.Norm())
	w := nb.Sub(q1.Scale(q1.Dot(nb)))
	if w.Norm() <= 1e-12 {
		return Vec4{}, Vec4{}, false // parallel facet normals
	}
	q2 := w.Scale(1 / w.Norm())

	axes := [4]Vec4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
	found := 0
	for _, e := range axes {
		r := e.Sub(q1.Scale(q1.Dot(e))).Sub(q2.Scale(q2.Dot(e)))
		if found == 1 {
			r = r.Sub(u.Scale(u.Dot(r)))
		}
		if r.Norm() <= 1e-9 {
			continue
		}
		r = r.Scale(1 / r.Norm())
		if found == 0 {
			u = r
			found = 1
			continue
		}
		v = r

		return u, v, true
	}

	return Vec4{}, Vec4{}, false
}
