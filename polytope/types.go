// Package polytope — value types, tolerances and sentinel errors.
package polytope

import (
	"errors"

	"github.com/katalvlaran/symcap/convex"
)

// Tolerances used by the face-enumeration predicates. They are configuration
// constants of the package, shared by every call site.
const (
	// EpsFeas is the feasibility slack when accepting candidate vertices
	// against the half-space system.
	EpsFeas = 1e-7

	// EpsSat is the saturation tolerance: a vertex lies on a face when it
	// satisfies the defining inequalities with equality within EpsSat.
	EpsSat = 1e-7

	// EpsOmega is the Lagrangian threshold: a ridge whose chart basis has
	// |ω(U,V)| ≤ EpsOmega is flagged Lagrangian and excluded from search.
	EpsOmega = 1e-9

	// EpsPivot is the relative pivot threshold below which a 4×4 system is
	// treated as singular.
	EpsPivot = 1e-12
)

var (
	// ErrInvalidPolytope indicates the supplied half-spaces do not bound a
	// non-degenerate star-shaped 4-dimensional body.
	ErrInvalidPolytope = errors.New("polytope: half-spaces do not bound a valid body")

	// ErrBadHalfSpace indicates a half-space with a zero normal or a
	// non-positive support offset.
	ErrBadHalfSpace = errors.New("polytope: bad half-space (zero normal or offset ≤ 0)")

	// ErrDegenerateRidge indicates a ridge whose saturating vertex set is
	// affinely degenerate (no 2-dimensional extent).
	ErrDegenerateRidge = errors.New("polytope: degenerate ridge")

	// ErrSingular indicates a numerically singular 4×4 system or linear map.
	ErrSingular = errors.New("polytope: singular linear system")
)

// Vec4 is a point or direction in R⁴, coordinates (x1, y1, x2, y2).
type Vec4 [4]float64

// HalfSpace is the constraint N·x ≤ C with outward unit normal N and
// positive support offset C.
type HalfSpace struct {
	N Vec4
	C float64
}

// Facet is a 3-face of the polytope: one tight half-space together with its
// derived Reeb direction and saturating vertices. Immutable once built.
type Facet struct {
	// HS is the index of the defining half-space in the input list.
	HS int

	// N and C restate the defining half-space.
	N Vec4
	C float64

	// Reeb is the characteristic direction J·N along which boundary
	// trajectories travel on this facet.
	Reeb Vec4

	// Verts are indices into the polytope vertex list of the vertices
	// saturating this facet.
	Verts []int

	// Ridges are indices into the polytope ridge list of the ridges lying
	// on this facet.
	Ridges []int
}

// Chart is a fixed orthonormal 2D coordinate system on a ridge's affine
// plane. The basis is chosen once when the ridge is built, independent of
// traversal direction, and oriented so that ω(U, V) > 0 on non-Lagrangian
// ridges.
type Chart struct {
	Origin Vec4
	U, V   Vec4
}

// Project returns the chart coordinates of a 4D point (assumed to lie on,
// or be measured against, the ridge plane).
func (c Chart) Project(x Vec4) convex.Vec2 {
	d := x.Sub(c.Origin)

	return convex.Vec2{X: d.Dot(c.U), Y: d.Dot(c.V)}
}

// Lift maps chart coordinates back to the 4D ridge plane.
func (c Chart) Lift(p convex.Vec2) Vec4 {
	return c.Origin.Add(c.U.Scale(p.X)).Add(c.V.Scale(p.Y))
}

// Ridge is a 2-face: the intersection of exactly two facets, carrying its
// fixed oriented chart and the chart image of its extent. Immutable once
// built.
type Ridge struct {
	// Index is the ridge's position in the polytope ridge list.
	Index int

	// Fa and Fb are the half-space indices of the two defining facets,
	// Fa < Fb.
	Fa, Fb int

	// Chart is the fixed orthonormal oriented coordinate system.
	Chart Chart

	// Poly is the chart image of the ridge's extent: a bounded convex
	// polygon in chart coordinates.
	Poly convex.Region

	// Verts are indices of the vertices saturating both facets.
	Verts []int

	// OmegaUV is ω(U, V) after orientation; positive on non-Lagrangian
	// ridges, near zero on Lagrangian ones.
	OmegaUV float64

	// Lagrangian marks ridges on which the ambient 2-form vanishes; such
	// ridges never enter the search graphs.
	Lagrangian bool
}

// Edge is a 1-face: a segment between two vertices whose saturating facet
// sets share at least three supporting hyperplanes.
type Edge struct {
	// Va and Vb are the endpoint vertex indices, Va < Vb.
	Va, Vb int

	// Facets are the half-space indices tight at both endpoints, ascending.
	Facets []int
}

// Polytope is a convex, star-shaped, non-degenerate body in R⁴ in dual
// representation. Construct with Build; all fields are frozen afterwards,
// so a *Polytope may be shared read-only across goroutines.
type Polytope struct {
	hs     []HalfSpace
	verts  []Vec4
	facets []Facet
	ridges []Ridge
	edges  []Edge

	facetByHS []int         // half-space index → facet slice index, −1 if not tight
	ridgeIdx  map[[2]int]int // facet pair (Fa,Fb) → ridge index
}

// HalfSpaces returns a copy of the half-space list.
func (p *Polytope) HalfSpaces() []HalfSpace {
	out := make([]HalfSpace, len(p.hs))
	copy(out, p.hs)

	return out
}

// HalfSpace returns the i-th input half-space.
func (p *Polytope) HalfSpace(i int) HalfSpace { return p.hs[i] }

// Vertices returns the enumerated vertex list (shared slice; callers must
// not mutate).
func (p *Polytope) Vertices() []Vec4 { return p.verts }

// Facets returns the tight facets (shared slice; callers must not mutate).
func (p *Polytope) Facets() []Facet { return p.facets }

// Ridges returns all ridges, Lagrangian ones included (shared slice;
// callers must not mutate).
func (p *Polytope) Ridges() []Ridge { return p.ridges }

// Edges returns the 1-faces (shared slice; callers must not mutate).
func (p *Polytope) Edges() []Edge { return p.edges }

// FacetByHS resolves a half-space index to its facet, if that half-space is
// tight.
func (p *Polytope) FacetByHS(hs int) (Facet, bool) {
	if hs < 0 || hs >= len(p.facetByHS) || p.facetByHS[hs] < 0 {
		return Facet{}, false
	}

	return p.facets[p.facetByHS[hs]], true
}

// RidgeBetween resolves the ridge shared by two half-space indices.
func (p *Polytope) RidgeBetween(a, b int) (Ridge, bool) {
	if a > b {
		a, b = b, a
	}
	i, ok := p.ridgeIdx[[2]int{a, b}]
	if !ok {
		return Ridge{}, false
	}

	return p.ridges[i], true
}
