package capsearch

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/symcap/polytope"
	"github.com/katalvlaran/symcap/reebgraph"
)

// checkMask gates how often the DFS polls the context and the deadline.
const checkMask = 0x3FF

// incumbent is the best closed orbit found so far.
type incumbent struct {
	action      float64
	rot         float64
	cycle       []int
	edges       []reebgraph.EdgeData
	fp          frameFixedPoint
	unconfirmed bool
}

type engine struct {
	g      *reebgraph.RidgeGraph
	p      *polytope.Polytope
	ridges []polytope.Ridge
	o      Options

	// bound holds math.Float64bits of the current incumbent action (or the
	// caller's ActionBound); readers tolerate slightly stale values.
	bound atomic.Uint64

	mu   sync.Mutex
	best *incumbent

	deadline time.Time
	steps    atomic.Uint64
}

// Search enumerates closed Reeb orbits of g's polytope and returns the
// minimal-action certificate. It reports ErrNoCycle when nothing closes
// below the action bound, and ErrTimeLimit or the context error when the
// budget runs out before the search space is exhausted.
func Search(g *reebgraph.RidgeGraph, opts ...Option) (Result, error) {
	if g == nil || g.Polytope() == nil {
		return Result{}, ErrNilGraph
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.ActionBound <= 0 || math.IsNaN(o.ActionBound) {
		o.ActionBound = math.Inf(1)
	}

	e := &engine{g: g, p: g.Polytope(), ridges: g.Polytope().Ridges(), o: o}
	e.bound.Store(math.Float64bits(o.ActionBound))
	if o.TimeLimit > 0 {
		e.deadline = time.Now().Add(o.TimeLimit)
	}

	var err error
	if o.Workers > 1 {
		err = e.runParallel()
	} else {
		for _, s := range g.Nodes {
			if err = e.explore(s); err != nil {
				break
			}
		}
	}
	if err != nil {
		return Result{}, err
	}

	return e.finish()
}

// runParallel fans the start ridges out over Workers goroutines. The shared
// incumbent bound still prunes across workers through the atomic.
func (e *engine) runParallel() error {
	starts := make(chan int)
	var wg sync.WaitGroup
	var firstErr atomic.Value

	for w := 0; w < e.o.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range starts {
				if firstErr.Load() != nil {
					continue // drain
				}
				if err := e.explore(s); err != nil {
					firstErr.CompareAndSwap(nil, err)
				}
			}
		}()
	}
	for _, s := range e.g.Nodes {
		starts <- s
	}
	close(starts)
	wg.Wait()

	if err, ok := firstErr.Load().(error); ok {
		return err
	}

	return nil
}

// explore runs a full DFS rooted at one start ridge. Cycles through ridges
// below start were already found when those ridges were the root, so edges
// into them are skipped.
func (e *engine) explore(start int) error {
	if err := e.o.Ctx.Err(); err != nil {
		return fmt.Errorf("capsearch: search cancelled: %w", err)
	}
	if !e.deadline.IsZero() && time.Now().After(e.deadline) {
		return ErrTimeLimit
	}

	return e.dfs(start, newFrame(start, e.ridges[start]))
}

func (e *engine) dfs(start int, fr frame) error {
	if e.steps.Add(1)&checkMask == 0 {
		if err := e.o.Ctx.Err(); err != nil {
			return fmt.Errorf("capsearch: search cancelled: %w", err)
		}
		if !e.deadline.IsZero() && time.Now().After(e.deadline) {
			return ErrTimeLimit
		}
	}

	cur := fr.path[len(fr.path)-1]

	// Closing edges first: a confirmed cycle tightens the bound before the
	// deeper branches are expanded.
	for _, ed := range e.g.Edges[cur] {
		if ed.To == start && len(fr.path) > 1 {
			e.tryClose(fr, ed)
		}
	}
	for _, ed := range e.g.Edges[cur] {
		if ed.To <= start {
			continue
		}
		if ed.MinAction > math.Float64frombits(e.bound.Load())+e.o.EpsAction {
			continue
		}
		child, ok := e.extend(fr, ed, math.Float64frombits(e.bound.Load()))
		if !ok {
			continue
		}
		if err := e.dfs(start, child); err != nil {
			return err
		}
	}

	return nil
}

// tryClose appends the closing edge, solves for a fixed point of the
// composed return map, and promotes the result to incumbent if it beats
// the bound.
func (e *engine) tryClose(fr frame, ed reebgraph.EdgeData) {
	closed, ok := e.extend(fr, ed, math.Float64frombits(e.bound.Load()))
	if !ok {
		return
	}

	fp, ok := e.fixedPoint(closed)
	if !ok || fp.action <= e.o.EpsAction {
		return
	}

	e.improve(incumbent{
		action:      fp.action,
		rot:         closed.rot,
		cycle:       closed.path[:len(closed.path)-1],
		edges:       closed.edges,
		fp:          fp,
		unconfirmed: closed.unconfirmed || fp.marginal,
	})
}

func (e *engine) improve(inc incumbent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Strictly better actions always win. On an exact tie the
	// lexicographically smaller cycle wins, so the certificate does not
	// depend on which worker reports first.
	switch cur := math.Float64frombits(e.bound.Load()); {
	case inc.action < cur:
	case e.best != nil && inc.action == e.best.action && lessCycle(inc.cycle, e.best.cycle):
	default:
		return
	}
	e.best = &inc
	e.bound.Store(math.Float64bits(inc.action))
	if e.o.Logger != nil {
		e.o.Logger.Debug("incumbent improved",
			"action", inc.action,
			"cycle_len", len(inc.cycle),
			"unconfirmed", inc.unconfirmed)
	}
}

// lessCycle orders ridge cycles lexicographically, shorter prefix first.
func lessCycle(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return len(a) < len(b)
}

// finish lifts the incumbent to a 4D certificate and, when requested,
// re-validates unconfirmed candidates with exact rational arithmetic.
func (e *engine) finish() (Result, error) {
	if e.best == nil {
		return Result{}, ErrNoCycle
	}
	best := *e.best

	orbit, err := liftOrbit(e.p, best.edges, best.fp.point)
	if err != nil {
		return Result{}, fmt.Errorf("capsearch: lifting certificate: %w", err)
	}

	res := Result{
		Capacity:   best.action,
		Cycle:      best.cycle,
		FixedPoint: best.fp.point,
		Orbit:      orbit,
		Rotation:   best.rot,
		Confirmed:  !best.unconfirmed,
	}
	if best.unconfirmed {
		if e.o.ExactCheck {
			if err := exactValidate(e.p, best.edges, best.fp.point, best.action); err != nil {
				return Result{}, fmt.Errorf("%w: %v", ErrUnconfirmed, err)
			}
			res.Confirmed = true
		} else if e.o.Logger != nil {
			e.o.Logger.Warn("reporting unconfirmed capacity",
				"action", best.action, "cycle_len", len(best.cycle))
		}
	}
	if e.o.Logger != nil {
		e.o.Logger.Info("capacity found",
			"capacity", res.Capacity,
			"cycle_len", len(res.Cycle),
			"confirmed", res.Confirmed)
	}

	return res, nil
}
