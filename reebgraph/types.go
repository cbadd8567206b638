// Package reebgraph — graph types, options and sentinel errors.
package reebgraph

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/symcap/convex"
	"github.com/katalvlaran/symcap/polytope"
)

// DefaultEpsTau is the symmetric tolerance window for first-exit
// tie-breaking between co-facets.
const DefaultEpsTau = 1e-9

var (
	// ErrNilPolytope is returned when a nil polytope is passed to a builder.
	ErrNilPolytope = errors.New("reebgraph: polytope is nil")

	// ErrNoRidges is returned when the polytope has no non-Lagrangian
	// ridges, leaving the search graph without nodes.
	ErrNoRidges = errors.New("reebgraph: no non-Lagrangian ridges")
)

// EdgeData is the immutable per-edge payload of the ridge digraph: the
// affine geometry of crossing facet Facet from ridge From to ridge To.
// It is derived once from the two facets' geometry and never mutates.
type EdgeData struct {
	// From and To are ridge indices (into Polytope.Ridges).
	From, To int

	// Facet is the half-space index of the facet the trajectory travels on.
	Facet int

	// Exit is the half-space index of the co-facet whose plane the
	// trajectory hits, i.e. the facet of To other than Facet.
	Exit int

	// Domain is the polygon in From's chart where To is provably the first
	// exit of the Reeb flow on Facet.
	Domain convex.Region

	// Map is the affine first-hit map from Domain into To's chart; Inv is
	// its inverse.
	Map, Inv convex.Affine

	// Image is Map(Domain) clipped to To's extent.
	Image convex.Region

	// Action is the affine action increment over From's chart:
	// ½ · C_Facet · t_exit(x).
	Action convex.Functional

	// Rot is the rotation increment: the principal angle of the orthogonal
	// polar factor of Map's linear part, divided by π and normalized to
	// [0, 2).
	Rot float64

	// MinAction is the minimum of Action over Domain, an admissible
	// lower bound used only for deterministic branch ordering.
	MinAction float64
}

// Option configures graph construction.
type Option func(*Options)

// Options holds configurable parameters for graph construction.
type Options struct {
	// EpsTau is the first-exit tie-breaking tolerance (symmetric window).
	EpsTau float64

	// EpsOmega is the transversality threshold on ω-pairings; pairings not
	// exceeding it are treated as tangent (no arc, no exit).
	EpsOmega float64

	// Logger, when non-nil, receives debug-level notes about excluded
	// geometry (Lagrangian ridges, empty domains). Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns the standard construction tolerances and no logger.
func DefaultOptions() Options {
	return Options{EpsTau: DefaultEpsTau, EpsOmega: 1e-9, Logger: nil}
}

// WithEpsTau sets the tie-breaking tolerance; non-positive values are ignored.
func WithEpsTau(eps float64) Option {
	return func(o *Options) {
		if eps > 0 {
			o.EpsTau = eps
		}
	}
}

// WithLogger installs a structured logger for construction diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// FacetGraph is the Reeb-oriented facet adjacency: Out[f] lists the facet
// slice indices f' with an arc f → f'.
type FacetGraph struct {
	Out [][]int
}

// RidgeGraph is the primary search graph. Edges are indexed by source ridge
// index; Lagrangian (and otherwise excluded) ridges have empty edge lists
// and do not appear in Nodes.
type RidgeGraph struct {
	// Nodes lists the included ridge indices in ascending order.
	Nodes []int

	// Edges[r] holds the outgoing edges of ridge r, sorted by
	// (MinAction, To, Exit) for deterministic traversal.
	Edges [][]EdgeData

	p *polytope.Polytope
}

// Polytope returns the polytope this graph was built from.
func (g *RidgeGraph) Polytope() *polytope.Polytope { return g.p }
