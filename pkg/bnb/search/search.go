package search

import (
	"context"
	"fmt"
	"math"

	"github.com/optkit/bnb/pkg/bnb"
	"github.com/optkit/bnb/pkg/bnb/strategy"
)

// Solve runs the search to completion: it repeatedly selects an open
// node, evaluates its relaxation, folds the bounds, prunes what cannot
// beat the incumbent, and branches. It returns nil when the tree is
// exhausted or the optimality gap closes within tolerance, and
// bnb.ErrIncomplete when the context is cancelled between iterations.
// Whether a feasible solution was found is reported by the read-out
// methods, not by Solve.
func (t *Tree[P, V]) Solve(ctx context.Context) error {
	if t.store.Len() == 0 {
		return fmt.Errorf("no root installed")
	}
	for t.store.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return bnb.ErrIncomplete
		}
		done, err := t.step(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return nil
}

// step performs one full iteration of the state machine. It reports
// done=true when a new incumbent closed the optimality gap.
func (t *Tree[P, V]) step(ctx context.Context) (bool, error) {
	node := t.traverse.Select(t.store)
	if node == nil {
		return false, fmt.Errorf("%w: traverse strategy selected no node from a non-empty store", bnb.ErrInvariantViolated)
	}

	bounds, err := t.problem.Evaluate(ctx, t, node)
	if err != nil {
		return false, fmt.Errorf("evaluating node %d: %w", node.ID(), err)
	}
	if bounds.IsInfeasible() {
		return false, t.close(node, bnb.CloseInfeasible)
	}

	if err := t.foldBounds(node, bounds); err != nil {
		return false, err
	}

	// Local prune: the node's own bound already proves it cannot beat
	// the incumbent.
	if node.LowerBound() >= t.incumbent {
		return false, t.close(node, bnb.CloseDominated)
	}

	if !math.IsInf(node.UpperBound(), 1) && node.UpperBound() < t.incumbent {
		done, err := t.recordIncumbent(node)
		if err != nil || done {
			if err == nil {
				err = t.close(node, bnb.CloseNormal)
			}
			return done, err
		}
	}

	if err := t.close(node, bnb.CloseNormal); err != nil {
		return false, err
	}

	if t.brancher != nil {
		return false, t.brancher.Branch(ctx, t, node, t.store.Add)
	}
	return false, t.defaultBranch(node)
}

// foldBounds converts the evaluated pair to internal form, tightens the
// node, re-keys its priority entry, and recomputes the global bound.
func (t *Tree[P, V]) foldBounds(node *bnb.Node[P], bounds bnb.Bounds) error {
	lower, upper := bounds.Lower, bounds.Upper
	if t.sense == bnb.Maximize {
		lower, upper = -lower, -upper
	}
	if err := t.store.Update(node, func() { node.Fold(lower, upper) }); err != nil {
		return err
	}
	global := t.store.MinLower()
	if global < t.globalLB {
		return fmt.Errorf("%w: global lower bound decreased from %g to %g", bnb.ErrInvariantViolated, t.globalLB, global)
	}
	t.globalLB = global
	return nil
}

// recordIncumbent stores the node's feasible point as the new best
// solution, runs the global fathoming pass, and reports whether the
// optimality gap closed.
func (t *Tree[P, V]) recordIncumbent(node *bnb.Node[P]) (bool, error) {
	value, err := t.problem.Solution(t, node)
	if err != nil {
		return false, fmt.Errorf("extracting solution from node %d: %w", node.ID(), err)
	}
	t.incumbent = node.UpperBound()
	t.solutions.record(t.incumbent, value, node.ID())
	if _, err := t.store.PruneDominated(t.incumbent, node.ID()); err != nil {
		return false, err
	}
	return t.tol.GapClosed(t.incumbent, t.globalLB), nil
}

// close removes the node from the store and notifies the observer.
func (t *Tree[P, V]) close(node *bnb.Node[P], reason bnb.CloseReason) error {
	if err := t.store.Close(node.ID()); err != nil {
		return err
	}
	if t.observer != nil {
		t.observer.NodeClosed(t, node, reason)
	}
	return nil
}

// defaultBranch asks the branch strategy for a dimension and, if one is
// returned, splits its domain around the fractional value: one child
// with the upper bound floored, one with the lower bound ceiled. The
// two children partition the parent's domain exhaustively with no
// overlap. Both inherit the parent's lower bound.
func (t *Tree[P, V]) defaultBranch(node *bnb.Node[P]) error {
	value := func(i int) float64 { return t.accessor.Value(node.Payload, i) }
	idx := t.branch.Select(value, t.branchable, t.tol.IsDiscrete)
	if idx == strategy.NoBranch {
		return nil
	}
	v := value(idx)
	lb, ub := t.accessor.VarBounds(node.Payload, idx)
	children := []bnb.NodeConfig[P]{
		bnb.NewNodeConfig(t.accessor.WithBounds(node.Payload, idx, lb, math.Floor(v))).WithLowerBound(node.LowerBound()),
		bnb.NewNodeConfig(t.accessor.WithBounds(node.Payload, idx, math.Ceil(v), ub)).WithLowerBound(node.LowerBound()),
	}
	for _, c := range children {
		if _, err := t.store.Add(c); err != nil {
			return fmt.Errorf("branching node %d on dimension %d: %w", node.ID(), idx, err)
		}
	}
	return nil
}
