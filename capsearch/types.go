// Package capsearch — result type, sentinel errors and defaults.
package capsearch

import (
	"errors"

	"github.com/katalvlaran/symcap/convex"
	"github.com/katalvlaran/symcap/polytope"
)

// RotationBound caps the accumulated Conley-Zehnder style rotation of a
// candidate cycle. Cycles beyond the bound cannot carry the minimal action.
const RotationBound = 2.0

var (
	// ErrNilGraph is returned when Search receives a nil ridge graph.
	ErrNilGraph = errors.New("capsearch: ridge graph is nil")

	// ErrNoCycle is returned when no closed characteristic exists below
	// the configured action bound.
	ErrNoCycle = errors.New("capsearch: no closed orbit below action bound")

	// ErrUnconfirmed is returned when the best candidate sits inside a
	// tolerance window and exact re-validation rejects it.
	ErrUnconfirmed = errors.New("capsearch: candidate failed exact re-validation")

	// ErrTimeLimit is returned when the time budget expires before the
	// search space is exhausted.
	ErrTimeLimit = errors.New("capsearch: time limit exceeded")
)

// Result is the certificate of a minimal-action closed characteristic.
type Result struct {
	// Capacity is the action of the minimizing orbit, i.e. the EHZ
	// capacity of the polytope.
	Capacity float64

	// Cycle lists the ridge indices visited by the orbit, in order. The
	// orbit closes from the last ridge back to Cycle[0].
	Cycle []int

	// FixedPoint is the orbit's start point in the chart of ridge Cycle[0].
	FixedPoint convex.Vec2

	// Orbit is the closed 4D polyline: one breakpoint per ridge crossing,
	// with the first point repeated at the end.
	Orbit []polytope.Vec4

	// Rotation is the accumulated rotation of the orbit in units of pi;
	// it never exceeds RotationBound (up to the EpsRot window). For generic
	// polytopes it is strictly positive, but on products of planar bodies
	// the transverse hit maps degenerate to translations and a legitimate
	// orbit can report exactly zero.
	Rotation float64

	// Confirmed reports whether the certificate passed all feasibility
	// checks strictly, or (when requested) an exact rational re-check.
	// An unconfirmed result sits within floating-point tolerance of a
	// pruning boundary and should be treated as approximate.
	Confirmed bool
}
