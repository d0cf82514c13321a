package bnb

import (
	"context"
	"errors"
	"math"
)

// ErrNoSolution is returned when a solution is read from a tree that
// never recorded a feasible point. An exhaustively pruned search with
// no feasible solution is a legitimate outcome, not a programming error.
var ErrNoSolution = errors.New("no feasible solution found")

// ErrIncomplete is returned when the provided Context is cancelled
// before the search proves optimality or exhausts the tree.
var ErrIncomplete = errors.New("cancelled before a solution could be found")

// ErrInvariantViolated wraps defensive assertion failures inside the
// engine (a global bound that decreased, a desynced node index). These
// indicate an engine bug and abort the run.
var ErrInvariantViolated = errors.New("search invariant violated")

// NodeID values uniquely identify nodes within a single tree. They are
// assigned monotonically starting at 1 and never reused within a run.
type NodeID uint64

// Sense declares the direction of the objective as seen by the caller.
// Internally the engine always minimizes; conversion happens exactly
// once at the boundary, when bounds are folded in and when the
// objective is read out.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

// WorstObjective returns the objective value a node reports when it has
// not produced a feasible point: +Inf when minimizing, -Inf when
// maximizing.
func WorstObjective(s Sense) float64 {
	if s == Maximize {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// Bounds is the pair returned by Problem.Evaluate, expressed in the
// declared objective sense. Lower carries the relaxation's optimistic
// bound on the subtree; Upper carries the objective of a feasible point
// found at the node, or WorstObjective(sense) when there is none. Under
// Maximize both values are negated on the way into the tree.
type Bounds struct {
	Lower float64
	Upper float64
}

// Infeasible is the protocol sentinel for a node whose relaxation has
// no feasible point. It is recognized by the search loop and is not an
// error: the node is closed and the search continues.
func Infeasible() Bounds {
	return Bounds{Lower: math.NaN(), Upper: math.NaN()}
}

// IsInfeasible reports whether b is the infeasible sentinel.
func (b Bounds) IsInfeasible() bool {
	return math.IsNaN(b.Lower) || math.IsNaN(b.Upper)
}

// Tolerances decide when a value counts as discrete and when the
// optimality gap counts as closed. A value passes when either the
// absolute or the relative test passes.
type Tolerances struct {
	Abs float64
	Rel float64
}

// DefaultTolerances returns the engine defaults of 1e-6 for both tests.
func DefaultTolerances() Tolerances {
	return Tolerances{Abs: 1e-6, Rel: 1e-6}
}

// IsDiscrete reports whether v is acceptably close to its nearest
// integer under either tolerance.
func (t Tolerances) IsDiscrete(v float64) bool {
	d := math.Abs(v - math.Round(v))
	return d <= t.Abs || d <= t.Rel*math.Abs(v)
}

// GapClosed reports whether the distance between incumbent and bound
// proves optimality under either tolerance. Both arguments are in the
// internal minimization form.
func (t Tolerances) GapClosed(incumbent, bound float64) bool {
	gap := incumbent - bound
	return gap <= t.Abs || gap <= t.Rel*math.Abs(incumbent)
}

// TreeState is the read-only view of the tree aggregate handed to
// observers and problem hooks.
type TreeState interface {
	// Sense returns the declared objective sense.
	Sense() Sense
	// Incumbent returns the best feasible objective found so far in
	// the declared sense; ok is false while no feasible point exists.
	Incumbent() (obj float64, ok bool)
	// LowerBound returns the best-known global bound in the declared
	// sense.
	LowerBound() float64
	// OpenNodes returns the number of nodes still open.
	OpenNodes() int
}

// Problem supplies the three hooks every search requires. The engine
// computes no bounds itself; Evaluate is the opaque relaxation step
// (an embedded LP solve, a SAT call, ...) and may mutate the node's
// payload as a side effect.
type Problem[P, V any] interface {
	// BranchableIndices derives, once at construction time, the fixed
	// set of dimensions eligible for splitting.
	BranchableIndices(root P) []int
	// Evaluate performs the relaxation solve for the node and returns
	// its bounds in the declared sense, or the Infeasible sentinel.
	Evaluate(ctx context.Context, t TreeState, n *Node[P]) (Bounds, error)
	// Solution reconstructs the feasible point found at the node. It
	// is called exactly once per incumbent update, and only after
	// Evaluate succeeded on that node.
	Solution(t TreeState, n *Node[P]) (V, error)
}

// VariableAccessor exposes per-dimension relaxation values and variable
// bounds of a payload. The default brancher requires it to read the
// fractional value of the chosen dimension and to derive the two child
// payloads; problems that install a custom Brancher may omit it.
type VariableAccessor[P any] interface {
	// Value returns the relaxation value of dimension i.
	Value(p P, i int) float64
	// VarBounds returns the domain of dimension i.
	VarBounds(p P, i int) (lb, ub float64)
	// WithBounds returns a copy of p with dimension i restricted to
	// [lb, ub]. The receiver payload must not be mutated.
	WithBounds(p P, i int, lb, ub float64) P
}

// Brancher replaces the default splitting step entirely. Implementations
// inspect the just-closed node and enqueue child configurations through
// the adder; returning without adding any closes the subtree.
type Brancher[P any] interface {
	Branch(ctx context.Context, t TreeState, n *Node[P], add func(NodeConfig[P]) (NodeID, error)) error
}

// NodeSet is the view of the open nodes a traverse strategy selects
// from. Min returns the node with the smallest (lower bound, id) key;
// Ascend visits open nodes in that order until fn returns false.
type NodeSet[P any] interface {
	Len() int
	Min() *Node[P]
	Ascend(fn func(*Node[P]) bool)
}
