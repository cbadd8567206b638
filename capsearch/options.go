package capsearch

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// Option mutates Options before a search starts.
type Option func(*Options)

// Options collects the tunable knobs of Search. Zero tolerances are
// replaced by the defaults below.
type Options struct {
	// EpsDet separates the regular fixed-point solve from the
	// rank-deficient branches.
	EpsDet float64

	// EpsFeas is the membership slack for fixed-point containment checks.
	EpsFeas float64

	// EpsRot widens the rotation cutoff: cycles with accumulated rotation
	// in (RotationBound, RotationBound+EpsRot] are kept but flagged
	// unconfirmed instead of being pruned.
	EpsRot float64

	// EpsAction widens the incumbent-action prune by the same logic.
	EpsAction float64

	// ActionBound is the initial incumbent: orbits with action at or above
	// it are never reported. Defaults to +Inf.
	ActionBound float64

	// ExactCheck enables rational re-validation of unconfirmed candidates.
	ExactCheck bool

	// Workers is the number of concurrent start-ridge explorers.
	Workers int

	// TimeLimit bounds the wall-clock search time. Zero means unlimited.
	TimeLimit time.Duration

	// Ctx cancels the search early.
	Ctx context.Context

	// Logger receives progress events; nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns the tolerances the solver was validated with.
func DefaultOptions() Options {
	return Options{
		EpsDet:      1e-10,
		EpsFeas:     1e-9,
		EpsRot:      1e-7,
		EpsAction:   1e-7,
		ActionBound: math.Inf(1),
		Workers:     1,
		Ctx:         context.Background(),
	}
}

// WithActionBound sets the initial incumbent action.
func WithActionBound(b float64) Option {
	return func(o *Options) { o.ActionBound = b }
}

// WithExactCheck toggles rational re-validation of unconfirmed candidates.
func WithExactCheck(on bool) Option {
	return func(o *Options) { o.ExactCheck = on }
}

// WithWorkers sets the number of concurrent start-ridge explorers.
// Values below 1 fall back to sequential search.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n > 1 {
			o.Workers = n
		}
	}
}

// WithTimeLimit bounds the wall-clock search time.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.TimeLimit = d }
}

// WithContext attaches a cancellation context to the search.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger attaches a structured logger to the search.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithEpsDet overrides the rank-splitting tolerance of the fixed-point solve.
func WithEpsDet(eps float64) Option {
	return func(o *Options) {
		if eps > 0 {
			o.EpsDet = eps
		}
	}
}

// WithEpsFeas overrides the membership slack of containment checks.
func WithEpsFeas(eps float64) Option {
	return func(o *Options) {
		if eps > 0 {
			o.EpsFeas = eps
		}
	}
}
