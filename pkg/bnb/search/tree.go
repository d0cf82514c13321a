// Package search implements the branch-and-bound search loop: it
// manages the tree of open subproblems, delegates relaxation solves to
// the problem hooks, tracks the incumbent, and prunes nodes that cannot
// improve on it.
package search

import (
	"fmt"
	"math"

	"github.com/optkit/bnb/internal/nodestore"
	"github.com/optkit/bnb/pkg/bnb"
	"github.com/optkit/bnb/pkg/bnb/strategy"
)

// Tree is the aggregate state of one search run: the open-node store,
// the incumbent, the global lower bound, the injected strategies and
// the problem hooks. All bounds inside the tree are in minimization
// form regardless of the declared sense; conversion happens once, on
// the way in (bound folding) and on the way out (read-out).
type Tree[P, V any] struct {
	problem  bnb.Problem[P, V]
	accessor bnb.VariableAccessor[P]
	brancher bnb.Brancher[P]
	traverse strategy.Traverse[P]
	branch   strategy.Branch
	observer bnb.Observer[P]

	sense bnb.Sense
	tol   bnb.Tolerances

	store      *nodestore.Store[P]
	branchable []int

	incumbent float64
	globalLB  float64
	solutions *solutionStore[V]
}

// Option configures a Tree at construction time.
type Option[P, V any] func(*Tree[P, V]) error

// WithTraverseStrategy replaces the default best-first node selection.
func WithTraverseStrategy[P, V any](s strategy.Traverse[P]) Option[P, V] {
	return func(t *Tree[P, V]) error {
		if s == nil {
			return fmt.Errorf("traverse strategy must not be nil")
		}
		t.traverse = s
		return nil
	}
}

// WithBranchStrategy replaces the default first-fractional index
// selection used by the built-in brancher.
func WithBranchStrategy[P, V any](s strategy.Branch) Option[P, V] {
	return func(t *Tree[P, V]) error {
		if s == nil {
			return fmt.Errorf("branch strategy must not be nil")
		}
		t.branch = s
		return nil
	}
}

// WithBrancher installs a custom splitting step, bypassing the branch
// strategy entirely. Problems using it need not implement
// bnb.VariableAccessor.
func WithBrancher[P, V any](b bnb.Brancher[P]) Option[P, V] {
	return func(t *Tree[P, V]) error {
		t.brancher = b
		return nil
	}
}

// WithSense declares the objective sense. The default is Minimize.
func WithSense[P, V any](s bnb.Sense) Option[P, V] {
	return func(t *Tree[P, V]) error {
		t.sense = s
		return nil
	}
}

// WithTolerances replaces the default 1e-6 discreteness and gap
// tolerances.
func WithTolerances[P, V any](tol bnb.Tolerances) Option[P, V] {
	return func(t *Tree[P, V]) error {
		if tol.Abs < 0 || tol.Rel < 0 {
			return fmt.Errorf("tolerances must be non-negative")
		}
		t.tol = tol
		return nil
	}
}

// WithObserver installs the per-node-close instrumentation callback.
func WithObserver[P, V any](o bnb.Observer[P]) Option[P, V] {
	return func(t *Tree[P, V]) error {
		t.observer = o
		return nil
	}
}

// New builds a fresh tree for the given problem: empty store, no
// incumbent, id counter at zero. The problem is the required capability
// set; its absence, or the absence of a variable accessor when no
// custom brancher is installed, is a construction-time error, never a
// deferred runtime failure. The root payload is consumed here only to
// derive the fixed set of branchable indices.
func New[P, V any](problem bnb.Problem[P, V], root P, opts ...Option[P, V]) (*Tree[P, V], error) {
	if problem == nil {
		return nil, fmt.Errorf("problem implementation is required")
	}
	t := &Tree[P, V]{
		problem:   problem,
		traverse:  strategy.BestFirst[P]{},
		branch:    strategy.First{},
		sense:     bnb.Minimize,
		tol:       bnb.DefaultTolerances(),
		store:     nodestore.New[P](),
		incumbent: math.Inf(1),
		globalLB:  math.Inf(-1),
		solutions: &solutionStore[V]{},
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	if t.brancher == nil {
		accessor, ok := problem.(bnb.VariableAccessor[P])
		if !ok {
			return nil, fmt.Errorf("problem does not implement bnb.VariableAccessor and no custom brancher is installed")
		}
		t.accessor = accessor
	}
	t.branchable = problem.BranchableIndices(root)
	return t, nil
}

// SetRoot installs node id 1 from the given config as the sole open
// node. It must be called exactly once, before Solve.
func (t *Tree[P, V]) SetRoot(c bnb.NodeConfig[P]) error {
	if t.store.Len() > 0 {
		return fmt.Errorf("root already installed")
	}
	id, err := t.store.Add(c)
	if err != nil {
		return err
	}
	if id != 1 {
		return fmt.Errorf("%w: root assigned id %d, want 1", bnb.ErrInvariantViolated, id)
	}
	return nil
}

// Sense returns the declared objective sense.
func (t *Tree[P, V]) Sense() bnb.Sense { return t.sense }

// OpenNodes returns the number of currently open nodes.
func (t *Tree[P, V]) OpenNodes() int { return t.store.Len() }

// Incumbent returns the best feasible objective found so far in the
// declared sense. ok is false while no feasible point exists.
func (t *Tree[P, V]) Incumbent() (float64, bool) {
	if math.IsInf(t.incumbent, 1) {
		return 0, false
	}
	return t.external(t.incumbent), true
}

// LowerBound returns the best-known global bound in the declared sense.
func (t *Tree[P, V]) LowerBound() float64 {
	return t.external(t.globalLB)
}

// Gap returns the absolute distance between the incumbent and the
// global bound; +Inf while either side is unknown.
func (t *Tree[P, V]) Gap() float64 {
	return t.incumbent - t.globalLB
}

// Solution returns the recorded solution value. It fails with
// bnb.ErrNoSolution when the search found no feasible point, and keeps
// returning the identical value on repeated calls after termination.
func (t *Tree[P, V]) Solution() (V, error) {
	return t.solutions.value()
}

// ObjectiveValue returns the recorded objective in the declared sense,
// undoing the internal minimization convention for Maximize trees.
func (t *Tree[P, V]) ObjectiveValue() (float64, error) {
	return t.solutions.objective(t.sense)
}

// external converts an internal-form value back to the declared sense.
func (t *Tree[P, V]) external(v float64) float64 {
	if t.sense == bnb.Maximize {
		return -v
	}
	return v
}

var _ bnb.TreeState = (*Tree[int, int])(nil)
