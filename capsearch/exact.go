package capsearch

import (
	"fmt"
	"math"
	"math/big"

	"github.com/katalvlaran/symcap/convex"
	"github.com/katalvlaran/symcap/polytope"
	"github.com/katalvlaran/symcap/reebgraph"
)

// exactActionTol is the relative agreement required between the floating
// incumbent action and its exact rational recomputation.
const exactActionTol = 1e-6

// rvec is a rational 4-vector; rmat a rational 4x4 matrix. Both are used
// only inside the exact re-validation pass, where every half-space
// coefficient converts from float64 without rounding.
type rvec [4]*big.Rat

type rmat [4][4]*big.Rat

func rat(f float64) *big.Rat { return new(big.Rat).SetFloat64(f) }

func rzero() *big.Rat { return new(big.Rat) }

func rvecOf(v polytope.Vec4) rvec {
	return rvec{rat(v[0]), rat(v[1]), rat(v[2]), rat(v[3])}
}

func (a rvec) dot(b rvec) *big.Rat {
	s := rzero()
	t := new(big.Rat)
	for i := 0; i < 4; i++ {
		s.Add(s, t.Mul(a[i], b[i]))
	}

	return s
}

// ratJ applies the standard complex structure exactly: only sign flips and
// coordinate swaps, so no arithmetic error is possible.
func ratJ(v rvec) rvec {
	return rvec{
		new(big.Rat).Neg(v[1]), new(big.Rat).Set(v[0]),
		new(big.Rat).Neg(v[3]), new(big.Rat).Set(v[2]),
	}
}

func rmatEye() rmat {
	var m rmat
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m[i][j] = rzero()
			if i == j {
				m[i][j].SetInt64(1)
			}
		}
	}

	return m
}

// exactStep is one edge of the cycle in exact form: the exit time as an
// affine functional t(x0) = g·x0 + h of the start point, the Reeb
// direction, and the facet support level entering the action sum.
type exactStep struct {
	g     rvec
	h     *big.Rat
	reeb  rvec
	cFace *big.Rat
}

// exactValidate re-runs the incumbent cycle in exact rational arithmetic:
// it rebuilds the composed flow symbolically, solves the closure system for
// the true start point, and verifies positivity of every travel time,
// membership of every breakpoint, and agreement of the exact action with
// the floating capacity. Any failure means the float certificate lives on
// the wrong side of a tolerance.
func exactValidate(p *polytope.Polytope, edges []reebgraph.EdgeData, fp convex.Vec2, capacity float64) error {
	if len(edges) == 0 {
		return fmt.Errorf("empty cycle")
	}

	hs := p.HalfSpaces()
	normals := make([]rvec, len(hs))
	supports := make([]*big.Rat, len(hs))
	for i, h := range hs {
		normals[i] = rvecOf(h.N)
		supports[i] = rat(h.C)
	}

	// 1) Compose the flow symbolically: x_m = A·x0 + d with A, d exact.
	a := rmatEye()
	d := rvec{rzero(), rzero(), rzero(), rzero()}
	steps := make([]exactStep, len(edges))
	for i, ed := range edges {
		nF, cK := normals[ed.Facet], supports[ed.Exit]
		nK := normals[ed.Exit]
		reeb := ratJ(nF)

		den := nK.dot(reeb)
		if den.Sign() <= 0 {
			return fmt.Errorf("edge %d: exit plane %d not reachable", i, ed.Exit)
		}

		// t(x0) = (c_K − n_K·(A·x0 + d)) / den
		var g rvec
		for j := 0; j < 4; j++ {
			col := rvec{a[0][j], a[1][j], a[2][j], a[3][j]}
			g[j] = new(big.Rat).Neg(nK.dot(col))
			g[j].Quo(g[j], den)
		}
		h := new(big.Rat).Sub(cK, nK.dot(d))
		h.Quo(h, den)

		steps[i] = exactStep{g: g, h: h, reeb: reeb, cFace: supports[ed.Facet]}

		// A ← A + R·gᵀ, d ← d + R·h
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				a[r][c] = new(big.Rat).Add(a[r][c], new(big.Rat).Mul(reeb[r], g[c]))
			}
			d[r] = new(big.Rat).Add(d[r], new(big.Rat).Mul(reeb[r], h))
		}
	}

	// 2) Closure system: x0 on the start ridge's two planes, (A−I)·x0 = −d.
	ridge := p.Ridges()[edges[0].From]
	rows := make([][]*big.Rat, 0, 6)
	for _, fi := range []int{ridge.Fa, ridge.Fb} {
		row := make([]*big.Rat, 5)
		for j := 0; j < 4; j++ {
			row[j] = new(big.Rat).Set(normals[fi][j])
		}
		row[4] = new(big.Rat).Set(supports[fi])
		rows = append(rows, row)
	}
	for r := 0; r < 4; r++ {
		row := make([]*big.Rat, 5)
		for c := 0; c < 4; c++ {
			row[c] = new(big.Rat).Set(a[r][c])
			if r == c {
				row[c].Sub(row[c], big.NewRat(1, 1))
			}
		}
		row[4] = new(big.Rat).Neg(d[r])
		rows = append(rows, row)
	}

	part, basis, err := solveRat(rows)
	if err != nil {
		return err
	}

	// 3) Pin free directions to the float fixed point by least squares, so
	//    the exact start point certifies the same orbit the search found.
	x0 := pinToTarget(part, basis, rvecOf(ridge.Chart.Lift(fp)))

	// 4) Walk the cycle exactly: positive times, all breakpoints inside.
	action := rzero()
	x := x0
	for i, st := range steps {
		t := new(big.Rat).Add(st.g.dot(x0), st.h)
		if t.Sign() < 0 {
			return fmt.Errorf("edge %d: exact travel time is negative", i)
		}
		action.Add(action, new(big.Rat).Mul(new(big.Rat).Mul(st.cFace, t), big.NewRat(1, 2)))

		var next rvec
		for r := 0; r < 4; r++ {
			next[r] = new(big.Rat).Add(x[r], new(big.Rat).Mul(st.reeb[r], t))
		}
		x = next
		for j := range normals {
			if normals[j].dot(x).Cmp(supports[j]) > 0 {
				return fmt.Errorf("edge %d: breakpoint leaves half-space %d", i, j)
			}
		}
	}

	got, _ := action.Float64()
	if math.Abs(got-capacity) > exactActionTol*math.Max(1, math.Abs(capacity)) {
		return fmt.Errorf("exact action %g disagrees with capacity %g", got, capacity)
	}

	return nil
}

// solveRat reduces an n×4 rational system [M | rhs] and returns a
// particular solution plus a nullspace basis. Inconsistent systems mean
// the cycle does not close exactly.
func solveRat(rows [][]*big.Rat) (rvec, []rvec, error) {
	pivotCol := make([]int, 0, 4)
	r := 0
	for c := 0; c < 4 && r < len(rows); c++ {
		pr := -1
		for i := r; i < len(rows); i++ {
			if rows[i][c].Sign() != 0 {
				pr = i
				break
			}
		}
		if pr < 0 {
			continue
		}
		rows[r], rows[pr] = rows[pr], rows[r]

		inv := new(big.Rat).Inv(rows[r][c])
		for j := c; j < 5; j++ {
			rows[r][j].Mul(rows[r][j], inv)
		}
		for i := range rows {
			if i == r || rows[i][c].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Set(rows[i][c])
			for j := c; j < 5; j++ {
				rows[i][j].Sub(rows[i][j], new(big.Rat).Mul(f, rows[r][j]))
			}
		}
		pivotCol = append(pivotCol, c)
		r++
	}
	for i := r; i < len(rows); i++ {
		if rows[i][4].Sign() != 0 {
			return rvec{}, nil, fmt.Errorf("closure system is inconsistent")
		}
	}

	isPivot := [4]bool{}
	part := rvec{rzero(), rzero(), rzero(), rzero()}
	for i, c := range pivotCol {
		isPivot[c] = true
		part[c] = new(big.Rat).Set(rows[i][4])
	}

	var basis []rvec
	for free := 0; free < 4; free++ {
		if isPivot[free] {
			continue
		}
		v := rvec{rzero(), rzero(), rzero(), rzero()}
		v[free].SetInt64(1)
		for i, c := range pivotCol {
			v[c] = new(big.Rat).Neg(rows[i][free])
		}
		basis = append(basis, v)
	}

	return part, basis, nil
}

// pinToTarget projects target onto the affine solution space part+span(basis)
// by exact normal equations; the basis has at most two vectors, so the
// system is at most 2×2.
func pinToTarget(part rvec, basis []rvec, target rvec) rvec {
	if len(basis) == 0 {
		return part
	}

	var diff rvec
	for i := 0; i < 4; i++ {
		diff[i] = new(big.Rat).Sub(target[i], part[i])
	}

	n := len(basis)
	gram := make([][]*big.Rat, n)
	rhs := make([]*big.Rat, n)
	for i := 0; i < n; i++ {
		gram[i] = make([]*big.Rat, n)
		for j := 0; j < n; j++ {
			gram[i][j] = basis[i].dot(basis[j])
		}
		rhs[i] = basis[i].dot(diff)
	}

	coef := make([]*big.Rat, n)
	if n == 1 {
		coef[0] = new(big.Rat).Quo(rhs[0], gram[0][0])
	} else {
		det := new(big.Rat).Sub(
			new(big.Rat).Mul(gram[0][0], gram[1][1]),
			new(big.Rat).Mul(gram[0][1], gram[1][0]))
		coef[0] = new(big.Rat).Sub(
			new(big.Rat).Mul(rhs[0], gram[1][1]),
			new(big.Rat).Mul(gram[0][1], rhs[1]))
		coef[0].Quo(coef[0], det)
		coef[1] = new(big.Rat).Sub(
			new(big.Rat).Mul(gram[0][0], rhs[1]),
			new(big.Rat).Mul(rhs[0], gram[1][0]))
		coef[1].Quo(coef[1], det)
	}

	out := part
	for i := 0; i < 4; i++ {
		out[i] = new(big.Rat).Set(part[i])
		for k := 0; k < n; k++ {
			out[i].Add(out[i], new(big.Rat).Mul(coef[k], basis[k][i]))
		}
	}

	return out
}
